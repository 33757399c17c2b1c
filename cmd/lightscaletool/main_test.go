package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/lightscale"
)

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_usage(t *testing.T) {
	code, _, stderr := runTool(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage: lightscaletool")

	code, _, stderr = runTool(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Commands:")

	code, _, _ = runTool(t, "eval", "-h")
	assert.Equal(t, 0, code)
}

func TestRun_eval(t *testing.T) {
	code, stdout, stderr := runTool(t, "eval", "-x", "0", "-x", "128", "-x", "255", "-x", "300")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "0\t0\n128\t56\n255\t255\n300\t346\n", stdout)

	code, stdout, _ = runTool(t, "eval", "-gamma", "1", "-x", "128")
	require.Equal(t, 0, code)
	assert.Equal(t, "128\t128\n", stdout)

	code, stdout, _ = runTool(t, "eval", "-max-in", "4", "-max-out", "4", "-gamma", "1", "-invert", "-all")
	require.Equal(t, 0, code)
	assert.Equal(t, "0\t4\n1\t3\n2\t2\n3\t1\n4\t0\n", stdout)

	code, stdout, _ = runTool(t, "eval", "-invert", "-x", "300")
	require.Equal(t, 0, code)
	assert.Equal(t, "300\t-91\n", stdout)
}

func TestRun_eval_errors(t *testing.T) {
	code, _, stderr := runTool(t, "eval")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "missing -x or -all")

	code, _, stderr = runTool(t, "eval", "-gamma", "0", "-x", "1")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "gamma must be positive")

	code, _, _ = runTool(t, "eval", "-x", "minus-one")
	assert.Equal(t, 2, code)
}

func TestRun_env(t *testing.T) {
	t.Setenv("LIGHTSCALE_GAMMA", "1")
	t.Setenv("LIGHTSCALE_MAX_OUT", "100")

	code, stdout, _ := runTool(t, "eval", "-x", "255")
	require.Equal(t, 0, code)
	assert.Equal(t, "255\t100\n", stdout)

	// Flags win over environment.
	code, stdout, _ = runTool(t, "eval", "-max-out", "255", "-x", "255")
	require.Equal(t, 0, code)
	assert.Equal(t, "255\t255\n", stdout)

	t.Setenv("LIGHTSCALE_INVERT", "maybe")

	code, stdout, stderr := runTool(t, "eval", "-x", "255")
	require.Equal(t, 0, code)
	assert.Equal(t, "255\t100\n", stdout)
	assert.Contains(t, stderr, "ignoring invalid environment value")
}

func TestRun_table(t *testing.T) {
	code, stdout, stderr := runTool(t, "table")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[1], "0-31")
	assert.Contains(t, lines[1], "21")
	assert.Contains(t, lines[8], "224-255")
	assert.Contains(t, lines[8], "-67948")

	code, stdout, _ = runTool(t, "table", "-gamma", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, "identity (no segments)\n", stdout)

	code, stdout, _ = runTool(t, "table", "-gamma", "1", "-max-out", "100")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "0-255")
}

func TestRun_bundle(t *testing.T) {
	code, stdout, _ := runTool(t, "table", "-json", "-invert")
	require.Equal(t, 0, code)

	var b lightscale.TableBundle
	require.NoError(t, json.Unmarshal([]byte(stdout), &b))
	assert.Equal(t, lightscale.TableBundleFormat(), b.Format)
	assert.Len(t, b.Segments, 8)
	assert.True(t, b.InvertOut)

	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, []byte(stdout), 0o600))

	// Curve flags are ignored when a bundle is given.
	code, stdout, _ = runTool(t, "eval", "-bundle", path, "-gamma", "1", "-x", "128")
	require.Equal(t, 0, code)
	assert.Equal(t, "128\t199\n", stdout)

	require.NoError(t, os.WriteFile(path, []byte(`{"format":"other"}`), 0o600))
	code, _, stderr := runTool(t, "eval", "-bundle", path, "-x", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unsupported table bundle format")
}

func TestRun_report(t *testing.T) {
	code, stdout, _ := runTool(t, "report")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "segments:            8")
	assert.Contains(t, stdout, "monotonic:           true")
	assert.Contains(t, stdout, "fits 16-bit:         false")

	code, stdout, _ = runTool(t, "report", "-json", "-gamma", "1", "-max-out", "100")
	require.Equal(t, 0, code)

	var acc lightscale.Accuracy
	require.NoError(t, json.Unmarshal([]byte(stdout), &acc))
	assert.Equal(t, 256, acc.Samples)
	assert.True(t, acc.Fits16)
	assert.Less(t, acc.MaxAbsError, 1.0)

	code, _, stderr := runTool(t, "report", "-max-in", "1000")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "approximation is not monotonic")
}

func TestRun_verbose(t *testing.T) {
	code, _, stderr := runTool(t, "eval", "-v", "-x", "1")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "lightscale: table built")
}

func TestRun_plot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "curve.png")

	code, _, stderr := runTool(t, "plot", "-out", out, "-w", "320", "-h", "200")
	require.Equal(t, 0, code, stderr)

	f, err := os.Open(out)
	require.NoError(t, err)

	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 200), img.Bounds())

	code, _, _ = runTool(t, "plot")
	assert.Equal(t, 2, code)

	code, _, _ = runTool(t, "plot", "-out", out, "-w", "10")
	assert.Equal(t, 2, code)
}

func TestRun_gen(t *testing.T) {
	code, stdout, stderr := runTool(t, "gen", "-lang", "go", "-pkg", "leds", "-name", "curve")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "package leds")
	assert.Contains(t, stdout, "var curve = [8][2]int32{")

	out := filepath.Join(t.TempDir(), "table.h")
	code, _, _ = runTool(t, "gen", "-lang", "c", "-out", out)
	require.Equal(t, 0, code)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "static const int32_t gammaTable[8][2]")

	code, _, stderr = runTool(t, "gen", "-lang", "rust")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown language "rust"`)
}

func TestRun_preview(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")

	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := 0; i < 8*4; i++ {
		src.SetNRGBA(i%8, i/8, color.NRGBA{R: 128, G: 128, B: 128, A: 0xff})
	}
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	code, _, stderr := runTool(t, "preview", "-in", in, "-out", out, "-w", "4", "-interp", "nearest")
	require.Equal(t, 0, code, stderr)

	f, err = os.Open(out)
	require.NoError(t, err)

	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	r, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(56), r>>8)

	code, _, _ = runTool(t, "preview", "-in", in, "-out", out, "-interp", "sinc")
	assert.Equal(t, 2, code)

	code, _, _ = runTool(t, "preview", "-in", filepath.Join(dir, "missing.png"), "-out", out)
	assert.Equal(t, 1, code)
}
