// Package config loads the flashlight application settings from a .env
// file and FLASHLIGHT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gogpu/flashlight"
)

// Environment variables.
const (
	EnvFile     = "FLASHLIGHT_ENV_FILE"
	EnvBackend  = "FLASHLIGHT_BACKEND"
	EnvGPUAPI   = "FLASHLIGHT_GPU_API"
	EnvDisplay  = "FLASHLIGHT_DISPLAY"
	EnvImage    = "FLASHLIGHT_IMAGE"
	EnvRadius   = "FLASHLIGHT_RADIUS"
	EnvDamping  = "FLASHLIGHT_DAMPING"
	EnvKeyMode  = "FLASHLIGHT_KEY_MODE"
	EnvLogLevel = "FLASHLIGHT_LOG_LEVEL"
	EnvWindowed = "FLASHLIGHT_WINDOWED"
)

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = "wgpu"

// ErrInvalid wraps every value that cannot be parsed.
var ErrInvalid = errors.New("config: invalid value")

// Config is the resolved application configuration.
type Config struct {
	// Backend names the render backend ("wgpu" or "software").
	Backend string
	// GPUAPI selects the graphics API for the wgpu backend
	// (vulkan, gl, metal, dx12 or all).
	GPUAPI string
	// Display is the index of the display to capture.
	Display int
	// Image, when set, is loaded instead of capturing the screen.
	Image string
	// Radius is the initial flashlight radius in pixels.
	Radius  float32
	Damping flashlight.DampingMode
	KeyMode flashlight.KeyMode
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level
	// Windowed opens a decorated window instead of going full screen.
	Windowed bool
	// EnvPath is the .env file that was loaded, if any.
	EnvPath string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Backend:  DefaultBackend,
		GPUAPI:   "all",
		Radius:   flashlight.DefaultRadius,
		Damping:  flashlight.DampingPerFrame,
		KeyMode:  flashlight.KeyModeCompat,
		LogLevel: slog.LevelWarn,
	}
}

// Load resolves the configuration:
//  1. .env next to the executable, else .env in the working directory,
//     else the file named by FLASHLIGHT_ENV_FILE
//  2. FLASHLIGHT_* environment variables (already set variables win over
//     the .env file)
//
// Unparsable values are reported, never silently replaced.
func Load() (Config, error) {
	cfg := Default()

	cfg.EnvPath = resolveEnvPath()
	if cfg.EnvPath != "" {
		if err := godotenv.Load(cfg.EnvPath); err != nil {
			return cfg, fmt.Errorf("config: load %s: %w", cfg.EnvPath, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays the values returned by getenv on cfg.
func (c *Config) applyEnv(getenv func(string) string) error {
	var errs []error
	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvGPUAPI)); v != "" {
		c.GPUAPI = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvImage)); v != "" {
		c.Image = v
	}
	if v := strings.TrimSpace(getenv(EnvDisplay)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, invalid(EnvDisplay, v))
		} else {
			c.Display = n
		}
	}
	if v := strings.TrimSpace(getenv(EnvRadius)); v != "" {
		r, err := strconv.ParseFloat(v, 32)
		if err != nil || r <= 0 {
			errs = append(errs, invalid(EnvRadius, v))
		} else {
			c.Radius = float32(r)
		}
	}
	if v := strings.TrimSpace(getenv(EnvDamping)); v != "" {
		m, err := ParseDamping(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			c.Damping = m
		}
	}
	if v := strings.TrimSpace(getenv(EnvKeyMode)); v != "" {
		m, err := ParseKeyMode(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			c.KeyMode = m
		}
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, invalid(EnvLogLevel, v))
		} else {
			c.LogLevel = l
		}
	}
	if v := strings.TrimSpace(getenv(EnvWindowed)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, invalid(EnvWindowed, v))
		} else {
			c.Windowed = b
		}
	}
	return errors.Join(errs...)
}

func invalid(key, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalid, key, value)
}

// ParseDamping accepts "frame" and "time".
func ParseDamping(s string) (flashlight.DampingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frame", "":
		return flashlight.DampingPerFrame, nil
	case "time", "second":
		return flashlight.DampingPerSecond, nil
	default:
		return 0, invalid("damping", s)
	}
}

// ParseKeyMode accepts "compat" and "strict".
func ParseKeyMode(s string) (flashlight.KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compat", "":
		return flashlight.KeyModeCompat, nil
	case "strict":
		return flashlight.KeyModeStrict, nil
	default:
		return 0, invalid("key mode", s)
	}
}

// StateOptions returns the flashlight options for this configuration.
func (c Config) StateOptions() []flashlight.Option {
	return []flashlight.Option{
		flashlight.WithRadius(c.Radius),
		flashlight.WithDamping(c.Damping),
		flashlight.WithKeyMode(c.KeyMode),
	}
}

func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}

	if alt := os.Getenv(EnvFile); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}
