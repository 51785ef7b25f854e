package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/imageio"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

const appName = "spheretracer"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// flagBindings maps command line flags to config keys
var flagBindings = map[string]string{
	"width":        "image.width",
	"aspect-ratio": "image.aspect_ratio",
	"output":       "image.output",
	"samples":      "render.samples_per_pixel",
	"max-depth":    "render.max_depth",
	"workers":      "render.workers",
	"seed":         "render.seed",
	"scene":        "render.scene",
	"log-level":    "log.level",
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Render diffuse spheres with a Monte Carlo path tracer",
		Long:          "Renders the built-in sphere scene and writes it as a PNG image.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return run(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultFileName+" if present)")

	defaults := config.Default()
	flags := rootCmd.Flags()
	flags.Int("width", defaults.Image.Width, "image width in pixels")
	flags.Float64("aspect-ratio", defaults.Image.AspectRatio, "image aspect ratio (width / height)")
	flags.StringP("output", "o", defaults.Image.Output, "output PNG path")
	flags.IntP("samples", "s", defaults.Render.SamplesPerPixel, "samples per pixel")
	flags.Int("max-depth", defaults.Render.MaxDepth, "maximum bounces per path")
	flags.IntP("workers", "w", defaults.Render.Workers, "number of render workers (0 = one per CPU)")
	flags.Uint64("seed", defaults.Render.Seed, "random seed")
	flags.String("scene", defaults.Render.Scene, "built-in scene to render")
	flags.String("log-level", defaults.Log.Level, "log level: debug, info, warn, error")
	bindFlags(v, flags)

	rootCmd.AddCommand(newInitConfigCmd(), newScenesCmd())
	return rootCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagBindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the default configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, info := range scene.ListScenes() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %s\n", info.ID, info.Description)
			}
		},
	}
}

// run renders the configured scene and saves it. A failed render is an
// error; a failed save is only logged.
func run(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	logger, err := core.NewLogger(stderr, cfg.Log.Level)
	if err != nil {
		logger.Zerolog().Warn().Err(err).Msg("Falling back to info logging")
	}
	log := logger.Zerolog()

	pix, stats, err := renderImage(ctx, cfg, logger, newProgress(stderr))
	if err != nil {
		log.Error().Err(err).Msg("Render failed")
		return err
	}

	log.Info().
		Int("width", cfg.Image.Width).
		Int("height", cfg.Height()).
		Int("spp", stats.SamplesPerPixel).
		Int("workers", stats.Workers).
		Dur("elapsed", stats.Elapsed).
		Msg(stats.String())

	logger.Printf("Saving image as %s\n", cfg.Image.Output)
	if err := imageio.SaveRGB(cfg.Image.Output, pix, cfg.Image.Width, cfg.Height()); err != nil {
		log.Error().Err(err).Str("output", cfg.Image.Output).Msg("Failed to save image")
		return nil
	}

	log.Info().Str("output", cfg.Image.Output).Msg("Image saved")
	return nil
}

// renderImage builds the scene, runs the worker pool and tone maps the result
func renderImage(ctx context.Context, cfg *config.Config, logger core.Logger, progress renderer.ProgressReporter) ([]byte, renderer.RenderStats, error) {
	s, err := scene.NewScene(cfg.Render.Scene, cfg.CameraConfig())
	if err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("failed to create scene: %w", err)
	}
	s.SetBackgroundColors(cfg.SkyColors())

	logger.Printf("Rendering %s scene (%d spheres) at %dx%d, %d spp\n",
		cfg.Render.Scene, s.GetPrimitiveCount(), cfg.Image.Width, cfg.Height(), cfg.Render.SamplesPerPixel)

	raytracer := renderer.NewRaytracer(s, cfg.SamplingConfig())
	pool := renderer.NewWorkerPool(raytracer, cfg.WorkerPoolConfig(), logger)
	pool.SetProgressReporter(progress)

	fb, stats, err := pool.Render(ctx)
	if err != nil {
		return nil, stats, err
	}

	logger.Printf("Creating image\n")
	start := time.Now()
	pix := fb.Finalize(cfg.Render.SamplesPerPixel)
	stats.SetSampling(cfg.Render.SamplesPerPixel)
	stats.SetLuminance(pix)
	stats.Elapsed += time.Since(start)

	return pix, stats, nil
}

// newProgress reports in place on a terminal and in steps elsewhere
func newProgress(w io.Writer) renderer.ProgressReporter {
	if f, ok := w.(*os.File); ok {
		return renderer.NewConsoleProgress(f)
	}
	return renderer.NewConsoleProgressWriter(w, false)
}
