// Command lsys builds an L-system and renders one generation to PNG.
//
// Usage:
//
//	lsys -preset plant -output plant.png
//	lsys -config fern.toml -iterations 6 -frames 60 -output fern.png
//	lsys -preset bush3d -yaw 30 -pitch 15 -seed 7 -cbor bush.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/lsys"
	"github.com/gogpu/lsys/export"
	"github.com/gogpu/lsys/raster"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type config struct {
	preset     string
	configFile string
	list       bool

	iterations int
	angle      float64
	twist      float64
	seed       uint64
	maxSymbols int

	gen    int
	prefix int
	frames int

	output    string
	cborOut   string
	width     int
	height    int
	yaw       float64
	pitch     float64
	lineWidth float64
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.preset, "preset", "plant", "built-in preset name (see -list)")
	flag.StringVar(&cfg.configFile, "config", "", "TOML preset file (overrides -preset)")
	flag.BoolVar(&cfg.list, "list", false, "list built-in presets and exit")
	flag.IntVar(&cfg.iterations, "iterations", 0, "override iteration count")
	flag.Float64Var(&cfg.angle, "angle", 0, "override turn angle in degrees")
	flag.Float64Var(&cfg.twist, "twist", 0, "override random twist factor [0,1]")
	flag.Uint64Var(&cfg.seed, "seed", 0, "seed for the twist source (0 = unseeded)")
	flag.IntVar(&cfg.maxSymbols, "max-symbols", lsys.DefaultMaxSymbols, "per-generation symbol cap")
	flag.IntVar(&cfg.gen, "gen", -1, "generation to render (-1 = last usable)")
	flag.IntVar(&cfg.prefix, "prefix", -1, "number of segments to draw (-1 = all)")
	flag.IntVar(&cfg.frames, "frames", 0, "write this many growth frames instead of one image")
	flag.StringVar(&cfg.output, "output", "lsys.png", "output PNG file")
	flag.StringVar(&cfg.cborOut, "cbor", "", "also write the build result as CBOR to this file")
	flag.IntVar(&cfg.width, "width", 800, "image width")
	flag.IntVar(&cfg.height, "height", 800, "image height")
	flag.Float64Var(&cfg.yaw, "yaw", 0, "camera yaw in degrees")
	flag.Float64Var(&cfg.pitch, "pitch", 0, "camera pitch in degrees")
	flag.Float64Var(&cfg.lineWidth, "line-width", 1.5, "stroke width in pixels")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	lsys.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, set); err != nil {
		fmt.Fprintf(os.Stderr, "lsys: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, set map[string]bool) error {
	out := message.NewPrinter(language.English)

	if cfg.list {
		for _, p := range lsys.Presets() {
			out.Printf("%-12s axiom %-4q %2d iterations, %g°\n", p.Name, p.Axiom, p.Iterations, p.Angle)
		}
		return nil
	}

	params, err := loadParams(cfg, set)
	if err != nil {
		return err
	}

	opts := []lsys.BuilderOption{lsys.WithMaxSymbols(cfg.maxSymbols)}
	if cfg.seed != 0 {
		opts = append(opts, lsys.WithBuildRandom(rand.New(rand.NewPCG(cfg.seed, cfg.seed))))
	}
	res, err := lsys.NewBuilder(opts...).Build(ctx, params)
	if err != nil {
		return err
	}

	for _, f := range res.Frames {
		if f.TooComplex() {
			out.Printf("gen %2d: skipped, %v\n", f.Index, f.Err)
			continue
		}
		out.Printf("gen %2d: %d symbols, %d segments\n", f.Index, f.Generation.Len(), f.Buffer.Len())
	}

	if cfg.cborOut != "" {
		data, err := export.MarshalResult(res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.cborOut, data, 0o644); err != nil {
			return err
		}
		out.Printf("wrote %s (%d bytes)\n", cfg.cborOut, len(data))
	}

	frame, err := pickFrame(res, cfg.gen)
	if err != nil {
		return err
	}

	canvas := raster.New(cfg.width, cfg.height,
		raster.WithView(cfg.yaw, cfg.pitch),
		raster.WithLineWidth(cfg.lineWidth),
		raster.WithBackground(lsys.Hex("#101418")))

	if cfg.frames > 0 {
		return writeGrowth(ctx, out, canvas, frame.Buffer, cfg.frames, cfg.output)
	}

	k := frame.Buffer.Len()
	if cfg.prefix >= 0 {
		k = cfg.prefix
	}
	if err := canvas.RenderPrefix(frame.Buffer, k); err != nil {
		return err
	}
	if err := canvas.SavePNG(cfg.output); err != nil {
		return err
	}
	out.Printf("wrote %s: generation %d, %d of %d segments\n",
		cfg.output, frame.Index, min(max(k, 0), frame.Buffer.Len()), frame.Buffer.Len())
	return nil
}

func loadParams(cfg config, set map[string]bool) (lsys.Params, error) {
	var preset *lsys.Preset
	if cfg.configFile != "" {
		p, err := lsys.LoadPreset(cfg.configFile)
		if err != nil {
			return lsys.Params{}, err
		}
		preset = p
	} else {
		p, ok := lsys.LookupPreset(cfg.preset)
		if !ok {
			return lsys.Params{}, fmt.Errorf("unknown preset %q (try -list)", cfg.preset)
		}
		preset = p
	}

	params, err := preset.Params()
	if err != nil {
		return lsys.Params{}, err
	}
	if set["iterations"] {
		params.Iterations = cfg.iterations
	}
	if set["angle"] {
		params.Angle = cfg.angle
	}
	if set["twist"] {
		params.Twist = cfg.twist
	}
	return params, params.Validate()
}

// pickFrame returns generation gen, or the last usable one for gen < 0.
func pickFrame(res *lsys.Result, gen int) (lsys.Frame, error) {
	if gen < 0 {
		f, ok := res.Usable()
		if !ok {
			return lsys.Frame{}, fmt.Errorf("%w: no generation fits the symbol cap", lsys.ErrTooComplex)
		}
		return f, nil
	}
	if gen >= res.Len() {
		return lsys.Frame{}, fmt.Errorf("generation %d out of range [0, %d]", gen, res.Len()-1)
	}
	f := res.Frames[gen]
	if f.Err != nil {
		return lsys.Frame{}, f.Err
	}
	return f, nil
}

// writeGrowth renders n evenly spaced prefixes, ending with the full
// buffer, as name-0000.png, name-0001.png, ...
func writeGrowth(ctx context.Context, out *message.Printer, c *raster.Canvas, buf *lsys.Buffer, n int, output string) error {
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	if ext == "" {
		ext = ".png"
	}

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		k := buf.Len() * i / n
		if err := c.RenderPrefix(buf, k); err != nil {
			return err
		}
		name := fmt.Sprintf("%s-%04d%s", base, i-1, ext)
		if err := c.SavePNG(name); err != nil {
			return err
		}
	}
	out.Printf("wrote %d frames %s-0000%s .. %s-%04d%s (%d segments)\n",
		n, base, ext, base, n-1, ext, buf.Len())
	return nil
}
