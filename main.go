package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene            string
	scenesDir        string
	output           string
	ppm              bool
	quality          bool
	width            int
	height           int
	subpixels        int
	samples          int
	depth            int
	gamma            float64
	mode             string
	diffuseBounces   bool
	workers          int
	seed             uint64
	snapshotInterval time.Duration
}

func main() {
	var opts options

	// Parse command line flags
	flag.StringVar(&opts.scene, "scene", "default", "Scene: a built-in id, file:<name> from -scenes-dir, or a path to a .txt scene file")
	flag.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "Directory containing *.txt scene files")
	flag.StringVar(&opts.output, "output", "", "Output file (default output/<scene>/render_<timestamp>.png)")
	flag.BoolVar(&opts.ppm, "ppm", false, "Write a plain-text PPM instead of PNG")
	flag.BoolVar(&opts.quality, "quality", false, "Start from the high quality sampling preset")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 = preset)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 = preset)")
	flag.IntVar(&opts.subpixels, "subpixels", 0, "Sub-pixel grid size per axis (0 = preset)")
	flag.IntVar(&opts.samples, "samples", 0, "Number of progressive passes (0 = preset)")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum ray depth (0 = preset)")
	flag.Float64Var(&opts.gamma, "gamma", 0, "Display gamma (0 = preset)")
	flag.StringVar(&opts.mode, "mode", "color", "Render mode: color, depth, normal, normal-abs, ray-dir, ray-depth")
	flag.BoolVar(&opts.diffuseBounces, "diffuse-bounces", false, "Continue paths off diffuse surfaces with Russian roulette")
	flag.IntVar(&opts.workers, "workers", 0, "Number of render workers (0 = logical CPU count)")
	flag.Uint64Var(&opts.seed, "seed", renderer.DefaultProgressiveConfig().Seed, "Random seed")
	flag.DurationVar(&opts.snapshotInterval, "snapshot-interval", 2*time.Second, "How often the preview image is rewritten (0 = only at the end)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: path-tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.BuiltinScenes() {
			fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
		}
		if files, err := scene.ListSceneFiles(opts.scenesDir); err == nil {
			for _, info := range files {
				fmt.Printf("  %s - %s\n", info.ID, info.Name)
			}
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders the selected scene, writing previews while the passes run
func run(ctx context.Context, opts options, out io.Writer, logger core.Logger) error {
	sampling, err := buildSampling(opts)
	if err != nil {
		return err
	}

	selectedScene, name, err := createScene(opts.scene, opts.scenesDir, sampling)
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = createOutputPath(name, opts.ppm, time.Now())
	}

	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = opts.workers
	config.Seed = opts.seed

	raytracer, err := renderer.NewProgressiveRaytracer(selectedScene, config, logger)
	if err != nil {
		return err
	}

	printBanner(out, selectedScene, raytracer.NumWorkers())

	writer := renderer.NewSnapshotWriter(raytracer.Framebuffer(), opts.snapshotInterval,
		func(frame *renderer.Framebuffer) error {
			return loaders.SaveImage(outputPath, frame.Snapshot())
		}, logger)
	writer.Start()

	startTime := time.Now()
	passChan, errChan := raytracer.RenderProgressive(ctx)

	var renderErr error
	for passChan != nil || errChan != nil {
		select {
		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			logger.Printf("Pass %d/%d: average luminance %.4f\n",
				result.PassNumber, sampling.Samples, result.Stats.AverageLuminance)
		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			renderErr = err
		}
	}

	// The final flush runs after every pass has completed
	if err := writer.Stop(); err != nil {
		return fmt.Errorf("failed to save image: %v", err)
	}
	if renderErr != nil {
		return fmt.Errorf("rendering stopped: %w", renderErr)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Generated %s rays.\n", formatCount(raytracer.TotalRays()))
	fmt.Fprintf(out, "Calculation time: %v\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Fprintf(out, "Render saved as %s\n", outputPath)
	return nil
}

// buildSampling applies the command line overrides to the selected preset
func buildSampling(opts options) (scene.SamplingConfig, error) {
	base := scene.DefaultSamplingConfig()
	if opts.quality {
		base = scene.HighQualitySamplingConfig()
	}

	mode, err := scene.ParseRenderMode(opts.mode)
	if err != nil {
		return scene.SamplingConfig{}, err
	}

	sampling := scene.MergeSamplingConfig(base, scene.SamplingConfig{
		Width:          opts.width,
		Height:         opts.height,
		Subpixels:      opts.subpixels,
		Samples:        opts.samples,
		MaxDepth:       opts.depth,
		Gamma:          opts.gamma,
		Mode:           mode,
		DiffuseBounces: opts.diffuseBounces,
	})

	if err := sampling.Validate(); err != nil {
		return scene.SamplingConfig{}, err
	}
	return sampling, nil
}

// createScene resolves the -scene argument. It returns the scene and a name
// usable as a directory.
func createScene(sceneArg, scenesDir string, sampling scene.SamplingConfig) (*scene.Scene, string, error) {
	if sceneArg == "" {
		return nil, "", fmt.Errorf("no scene given")
	}

	// Direct path to a scene file
	if strings.EqualFold(filepath.Ext(sceneArg), ".txt") {
		s, err := scene.LoadFile(sceneArg, sampling)
		if err != nil {
			return nil, "", err
		}
		return s, strings.TrimSuffix(filepath.Base(sceneArg), filepath.Ext(sceneArg)), nil
	}

	s, err := scene.LoadByID(sceneArg, scenesDir, sampling)
	if err != nil {
		return nil, "", err
	}
	return s, strings.TrimPrefix(sceneArg, "file:"), nil
}

// createOutputPath returns output/<name>/render_<timestamp>.<ext>
func createOutputPath(name string, ppm bool, now time.Time) string {
	ext := ".png"
	if ppm {
		ext = ".ppm"
	}
	return filepath.Join("output", name, fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), ext))
}

// printBanner describes the render before it starts
func printBanner(out io.Writer, s *scene.Scene, workers int) {
	host, err := renderer.DescribeHost()
	if err != nil {
		fmt.Fprintf(out, "Host description incomplete: %v\n", err)
	}

	c := s.Sampling
	fmt.Fprintf(out, "Host:                   %s\n", host)
	fmt.Fprintf(out, "Workers:                %d\n", workers)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Resolution (in pixels): %dx%d\n", c.Width, c.Height)
	fmt.Fprintf(out, "Subpixels per pixel:    %dx%d\n", c.Subpixels, c.Subpixels)
	fmt.Fprintf(out, "Samples per subpixel:   %d\n", c.Samples)
	fmt.Fprintf(out, "Maximum ray depth:      %d\n", c.MaxDepth)
	fmt.Fprintf(out, "Render mode:            %s\n", c.Mode)
	fmt.Fprintf(out, "Objects in scene:       %d\n", s.ShapeCount())
	if bounds, ok := s.Bounds(); ok {
		fmt.Fprintf(out, "Scene extent:           %v\n", bounds.Size())
	}
	fmt.Fprintf(out, "Minimum ray count:      %s\n", formatCount(c.MinRays()))
	fmt.Fprintf(out, "Maximum ray count:      %s\n", formatCount(c.MaxRays()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Generating rays ...")
}

// formatCount formats n with thousands separators
func formatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
