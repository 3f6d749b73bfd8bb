package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/backend"
	wgpubackend "github.com/gogpu/flashlight/backend/wgpu"
	"github.com/gogpu/flashlight/capture"
	"github.com/gogpu/flashlight/config"
	"github.com/gogpu/flashlight/internal/app"
	"github.com/gogpu/flashlight/window"
)

var errOffscreen = errors.New("the software backend renders offscreen; use --snapshot")

// flags holds the raw command-line values. Only flags the user actually
// set override the .env and environment configuration.
type flags struct {
	backend  string
	gpuAPI   string
	image    string
	display  int
	radius   float32
	damping  string
	keyMode  string
	logLevel string
	windowed bool

	snapshot string
	width    int
	height   int
	light    bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "flashlight",
		Short: "Zoom into a screenshot of the desktop",
		Long: `flashlight captures the screen once and shows the capture full screen.
Scroll to zoom, drag to pan, press F for a spotlight around the cursor and
Ctrl+scroll to resize it. Esc quits.

Settings are read from a .env file and FLASHLIGHT_* environment variables;
flags override both.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), &f)
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)
			if cfg.EnvPath != "" {
				flashlight.Logger().Info("config: loaded env file", "path", cfg.EnvPath)
			}

			if f.snapshot != "" {
				return runSnapshot(cmd.Context(), cfg, f)
			}
			return runOverlay(cmd.Context(), cfg, f)
		},
	}

	bindFlags(cmd.Flags(), &f)
	cmd.AddCommand(newBackendsCmd())
	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.StringVarP(&f.backend, "backend", "b", config.DefaultBackend, "render backend: wgpu or software")
	fs.StringVar(&f.gpuAPI, "gpu-api", "all", "graphics API for the wgpu backend: vulkan, gl, metal, dx12 or all")
	fs.StringVarP(&f.image, "image", "i", "", "load this image instead of capturing the screen")
	fs.IntVarP(&f.display, "display", "d", 0, "index of the display to capture")
	fs.Float32VarP(&f.radius, "radius", "r", flashlight.DefaultRadius, "initial spotlight radius in pixels")
	fs.StringVar(&f.damping, "damping", "frame", "momentum damping: frame or time")
	fs.StringVar(&f.keyMode, "key-mode", "compat", "Ctrl and reset key handling: compat or strict")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVarP(&f.windowed, "windowed", "w", false, "open a decorated window instead of full screen")
	fs.StringVar(&f.snapshot, "snapshot", "", "render one frame with the software backend to this PNG and exit")
	fs.IntVar(&f.width, "width", 0, "window or snapshot width (0: default or capture width)")
	fs.IntVar(&f.height, "height", 0, "window or snapshot height (0: default or capture height)")
	fs.BoolVar(&f.light, "light", false, "enable the spotlight at the center of the snapshot")
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the registered render backends in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := ""
			if b := backend.Default(); b != nil {
				def = b.Name()
			}
			for _, name := range backend.Available() {
				mark := " "
				if name == def {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
			}
			return nil
		},
	}
}

// resolveConfig loads the file and environment configuration and
// applies the flags that were set explicitly.
func resolveConfig(fs *pflag.FlagSet, f *flags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	var errs []error
	if fs.Changed("backend") {
		cfg.Backend = f.backend
	}
	if fs.Changed("gpu-api") {
		cfg.GPUAPI = f.gpuAPI
	}
	if fs.Changed("image") {
		cfg.Image = f.image
	}
	if fs.Changed("display") {
		cfg.Display = f.display
	}
	if fs.Changed("radius") {
		cfg.Radius = f.radius
	}
	if fs.Changed("windowed") {
		cfg.Windowed = f.windowed
	}
	if fs.Changed("damping") {
		m, err := config.ParseDamping(f.damping)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.Damping = m
	}
	if fs.Changed("key-mode") {
		m, err := config.ParseKeyMode(f.keyMode)
		if err != nil {
			errs = append(errs, err)
		}
		cfg.KeyMode = m
	}
	if fs.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(f.logLevel)); err != nil {
			errs = append(errs, fmt.Errorf("%w: log level %q", config.ErrInvalid, f.logLevel))
		}
	}
	return cfg, errors.Join(errs...)
}

func setupLogging(level slog.Level) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	flashlight.SetLogger(slog.New(h))
}

func provider(cfg config.Config) capture.Provider {
	if cfg.Image != "" {
		return capture.File{Path: cfg.Image}
	}
	return capture.Screen{Display: cfg.Display}
}

// runOverlay captures, opens the window and runs until the user quits.
func runOverlay(ctx context.Context, cfg config.Config, f flags) error {
	if cfg.Backend == backend.BackendSoftware {
		return errOffscreen
	}
	if err := wgpubackend.SetGraphicsAPI(cfg.GPUAPI); err != nil {
		return err
	}

	// Capture before the window exists so the overlay is not in the shot.
	img, err := provider(cfg).Capture(ctx)
	if err != nil {
		return err
	}

	rb, err := backend.Open(cfg.Backend)
	if err != nil {
		return err
	}
	defer rb.Close()

	win, err := window.Open(window.Config{Windowed: cfg.Windowed, Width: f.width, Height: f.height})
	if err != nil {
		return err
	}
	defer win.Close()

	surf, err := rb.NewSurface(win, img)
	if err != nil {
		return err
	}
	defer surf.Release()

	return app.New(win, surf, cfg.StateOptions()...).Run(ctx)
}

// runSnapshot renders one frame offscreen and writes it as PNG.
func runSnapshot(ctx context.Context, cfg config.Config, f flags) error {
	img, err := provider(cfg).Capture(ctx)
	if err != nil {
		return err
	}

	size := backend.FixedSize{Width: f.width, Height: f.height}
	if size.Width <= 0 {
		size.Width = img.Width
	}
	if size.Height <= 0 {
		size.Height = img.Height
	}

	rb, err := backend.Open(backend.BackendSoftware)
	if err != nil {
		return err
	}
	defer rb.Close()

	surf, err := rb.NewSurface(size, img)
	if err != nil {
		return err
	}
	defer surf.Release()

	state := flashlight.NewState(cfg.StateOptions()...)
	state.Apply(flashlight.PointerMove{X: float64(size.Width) / 2, Y: float64(size.Height) / 2})
	if f.light {
		state.Apply(flashlight.KeyPress{Key: flashlight.KeyFlashlight})
	}

	if err := app.Snapshot(surf, size, state); err != nil {
		return err
	}
	frame, ok := surf.(interface{ Frame() *image.RGBA })
	if !ok {
		return fmt.Errorf("backend %s cannot read back frames", rb.Name())
	}
	return app.WritePNG(f.snapshot, frame.Frame())
}
