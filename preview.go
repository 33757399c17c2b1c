package lightscale

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder for previews.
	_ "image/jpeg" // Register JPEG decoder for previews.
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// PreviewOptions controls ApplyImage.
type PreviewOptions struct {
	// Width and Height of the output, 0 keeps the aspect ratio of the other
	// dimension, both 0 keep the source size.
	Width  uint
	Height uint
	// Interpolation used when resizing.
	Interpolation Interpolation
	// KeepAlpha maps only colour channels; when false alpha is forced opaque.
	KeepAlpha bool
	OnResult  func(img *image.NRGBA)
}

// Interpolation selects the resize filter.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[string]Interpolation{
	"nearest":  InterpolationNearest,
	"bilinear": InterpolationBilinear,
	"bicubic":  InterpolationBicubic,
	"mitchell": InterpolationMitchellNetravali,
	"lanczos2": InterpolationLanczos2,
	"lanczos3": InterpolationLanczos3,
}

// ParseInterpolation resolves an interpolation by name, e.g. "lanczos3".
func ParseInterpolation(name string) (Interpolation, error) {
	if i, ok := interpolationNames[name]; ok {
		return i, nil
	}
	return InterpolationNearest, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) filter() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// ApplyImage renders how img looks when every 8-bit colour channel is driven
// through s, e.g. to preview a dimming curve on an LED matrix.
//
// Outputs are clamped to 0..255 for display, the Scale itself never clamps.
func ApplyImage(img image.Image, s *Scale, opts ...func(o *PreviewOptions)) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New("preview: nil image")
	}
	if b := img.Bounds(); b.Empty() {
		return nil, errors.New("preview: empty image")
	}

	var opt PreviewOptions
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Width > 0 || opt.Height > 0 {
		img = resize.Resize(opt.Width, opt.Height, img, opt.Interpolation.filter())
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	lut := channelTable(s)

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		dst.Pix[i] = lut[dst.Pix[i]]
		dst.Pix[i+1] = lut[dst.Pix[i+1]]
		dst.Pix[i+2] = lut[dst.Pix[i+2]]
		if !opt.KeepAlpha {
			dst.Pix[i+3] = 0xff
		}
	}

	if opt.OnResult != nil {
		opt.OnResult(dst)
	}
	return dst, nil
}

// ApplyImageFile reads an image from inPath, applies s and writes a PNG to outPath.
func ApplyImageFile(inPath, outPath string, s *Scale, opts ...func(o *PreviewOptions)) error {
	f, err := os.Open(filepath.Clean(inPath))
	if err != nil {
		return err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	dst, err := ApplyImage(src, s, opts...)
	if err != nil {
		return err
	}
	out, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return err
	}
	if err := png.Encode(out, dst); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return out.Close()
}

// channelTable expands s over 8-bit inputs, clamped to 8-bit outputs.
func channelTable(s *Scale) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		v := s.Raw(uint(i))
		if v < 0 {
			v = 0
		}
		if v > 0xff {
			v = 0xff
		}
		lut[i] = uint8(v)
	}
	return lut
}
