package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vearutop/lightscale"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	lightscale.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
	defer lightscale.SetLogger(nil)
	var err error
	switch args[0] {
	case "table":
		err = runTable(args[1:], stdout, stderr)
	case "eval":
		err = runEval(args[1:], stdout, stderr)
	case "report":
		err = runReport(args[1:], stdout, stderr)
	case "plot":
		err = runPlot(args[1:], stderr)
	case "gen":
		err = runGen(args[1:], stdout, stderr)
	case "preview":
		err = runPreview(args[1:], stderr)
	default:
		usage(stderr)
		return 2
	}
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "error:", err)
		return 2
	case err != nil:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lightscaletool <command> [args]")
	fmt.Fprintln(w, "Curve flags (all commands): -max-in 255 -max-out 255 [-invert] -gamma 2.2 [-v]")
	fmt.Fprintln(w, "  (defaults from LIGHTSCALE_MAX_IN, LIGHTSCALE_MAX_OUT, LIGHTSCALE_INVERT, LIGHTSCALE_GAMMA)")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  table   [-json]")
	fmt.Fprintln(w, "  eval    -x 128 [-x 200] | -all")
	fmt.Fprintln(w, "  report  [-json]")
	fmt.Fprintln(w, "  plot    -out curve.png [-w 640 -h 480]")
	fmt.Fprintln(w, "  gen     -lang go|c [-name gammaTable] [-pkg main] [-out file]")
	fmt.Fprintln(w, "  preview -in input.jpg -out output.png [-w 320] [-h 0] [-interp lanczos3]")
	fmt.Fprintln(w, "  (-bundle table.json replaces curve flags with a saved table)")
}

// curveFlags registers flags shared by all commands and returns a loader for
// the Scale they describe.
func curveFlags(fs *flag.FlagSet, stderr io.Writer) func() (*lightscale.Scale, error) {
	maxIn := fs.Uint("max-in", envUint("LIGHTSCALE_MAX_IN", 255), "upper bound of input intensity")
	maxOut := fs.Uint("max-out", envUint("LIGHTSCALE_MAX_OUT", 255), "upper bound of output value")
	invert := fs.Bool("invert", envBool("LIGHTSCALE_INVERT", false), "output decreases as intensity increases")
	gamma := fs.Float64("gamma", envFloat("LIGHTSCALE_GAMMA", 2.2), "gamma exponent, 1 for linear")
	bundle := fs.String("bundle", "", "load table from JSON bundle instead of building it")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	return func() (*lightscale.Scale, error) {
		if *verbose {
			lightscale.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
		if *bundle != "" {
			return loadBundle(*bundle)
		}
		cfg := lightscale.Config{
			MaxIn:     *maxIn,
			MaxOut:    *maxOut,
			InvertOut: *invert,
			Gamma:     float32(*gamma),
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		return lightscale.NewWithConfig(cfg), nil
	}
}

func loadBundle(path string) (*lightscale.Scale, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var b lightscale.TableBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bundle %s: %w", path, err)
	}
	return lightscale.FromBundle(&b)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags reports bad flag values as usage errors, flag.ErrHelp passes through.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", errUsage, err)
}

func runTable(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("table", stderr)
	load := curveFlags(fs, stderr)
	asJSON := fs.Bool("json", false, "print table bundle as JSON")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s, err := load()
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(stdout, s.Bundle())
	}
	if s.IsIdentity() {
		fmt.Fprintln(stdout, "identity (no segments)")
		return nil
	}
	fmt.Fprintf(stdout, "%-5s %-11s %8s %8s %10s %10s\n", "#", "range", "scale", "offset", "gradient", "intercept")

	cfg := s.Config()
	segs := s.Segments()

	for i, seg := range segs {
		lo, hi := uint(i)*lightscale.Step, uint(i+1)*lightscale.Step-1
		if len(segs) == 1 {
			lo, hi = 0, cfg.MaxIn
		}
		if hi > cfg.MaxIn || i == len(segs)-1 {
			hi = cfg.MaxIn
		}
		fmt.Fprintf(stdout, "%-5d %-11s %8d %8d %10.4f %10.4f\n",
			i, fmt.Sprintf("%d-%d", lo, hi), seg.Scale, seg.Offset, seg.Gradient(), seg.Intercept())
	}
	return nil
}

type intList []uint

func (l *intList) String() string { return fmt.Sprint([]uint(*l)) }

func (l *intList) Set(v string) error {
	u, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		return err
	}
	*l = append(*l, uint(u))
	return nil
}

func runEval(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("eval", stderr)
	load := curveFlags(fs, stderr)

	var xs intList
	fs.Var(&xs, "x", "intensity to evaluate, repeatable")
	all := fs.Bool("all", false, "evaluate every intensity in 0..max-in")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s, err := load()
	if err != nil {
		return err
	}
	if *all {
		xs = xs[:0]
		for x := uint(0); x <= s.Config().MaxIn; x++ {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return fmt.Errorf("%w: missing -x or -all", errUsage)
	}
	for _, x := range xs {
		fmt.Fprintf(stdout, "%d\t%d\n", x, s.Raw(x))
	}
	return nil
}

func runReport(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("report", stderr)
	load := curveFlags(fs, stderr)
	asJSON := fs.Bool("json", false, "print report as JSON")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s, err := load()
	if err != nil {
		return err
	}
	acc := s.Accuracy()

	if *asJSON {
		return writeJSON(stdout, acc)
	}
	fmt.Fprintf(stdout, "segments:            %d\n", s.Len())
	fmt.Fprintf(stdout, "samples:             %d\n", acc.Samples)
	fmt.Fprintf(stdout, "max abs error:       %.3f at %d\n", acc.MaxAbsError, acc.MaxAbsErrorAt)
	fmt.Fprintf(stdout, "mean abs error:      %.3f\n", acc.MeanAbsError)
	fmt.Fprintf(stdout, "stddev error:        %.3f\n", acc.StdDevError)
	fmt.Fprintf(stdout, "p95 abs error:       %.3f\n", acc.P95AbsError)
	fmt.Fprintf(stdout, "breakpoint max error: %.3f\n", acc.BreakpointMaxAbsError)
	fmt.Fprintf(stdout, "monotonic:           %t\n", acc.Monotonic)
	fmt.Fprintf(stdout, "fits 16-bit:         %t\n", acc.Fits16)

	if !acc.Monotonic {
		lightscale.Logger().Warn("approximation is not monotonic", slog.Float64("max_abs_error", acc.MaxAbsError))
	}
	return nil
}

func runPlot(args []string, stderr io.Writer) error {
	fs := newFlagSet("plot", stderr)
	load := curveFlags(fs, stderr)
	outPath := fs.String("out", "", "output PNG")
	width := fs.Int("w", 640, "image width")
	height := fs.Int("h", 480, "image height")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *outPath == "" {
		return fmt.Errorf("%w: missing -out", errUsage)
	}
	s, err := load()
	if err != nil {
		return err
	}
	return writePlotFile(*outPath, s, *width, *height)
}

func runGen(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("gen", stderr)
	load := curveFlags(fs, stderr)
	lang := fs.String("lang", "go", "output language: go or c")
	name := fs.String("name", "gammaTable", "identifier of the generated table")
	pkg := fs.String("pkg", "main", "package name for Go output")
	outPath := fs.String("out", "", "output file, stdout if empty")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s, err := load()
	if err != nil {
		return err
	}
	src, err := generate(s, genOptions{Lang: *lang, Name: *name, Package: *pkg})
	if err != nil {
		return err
	}
	if *outPath == "" {
		_, err = stdout.Write(src)
		return err
	}
	return os.WriteFile(filepath.Clean(*outPath), src, 0o644)
}

func runPreview(args []string, stderr io.Writer) error {
	fs := newFlagSet("preview", stderr)
	load := curveFlags(fs, stderr)
	inPath := fs.String("in", "", "input image (JPEG, PNG or GIF)")
	outPath := fs.String("out", "", "output PNG")
	width := fs.Uint("w", 0, "output width, 0 keeps aspect ratio")
	height := fs.Uint("h", 0, "output height, 0 keeps aspect ratio")
	interp := fs.String("interp", "lanczos3", "resize filter: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3")
	keepAlpha := fs.Bool("keep-alpha", false, "keep source alpha")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return fmt.Errorf("%w: missing -in or -out", errUsage)
	}
	in, err := lightscale.ParseInterpolation(*interp)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	s, err := load()
	if err != nil {
		return err
	}
	return lightscale.ApplyImageFile(*inPath, *outPath, s, func(o *lightscale.PreviewOptions) {
		o.Width = *width
		o.Height = *height
		o.Interpolation = in
		o.KeepAlpha = *keepAlpha
	})
}

func writeJSON(w io.Writer, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", payload)
	return err
}
