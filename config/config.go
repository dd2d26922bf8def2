// Package config loads the TOML configuration of the sketch binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/sketch"
)

// DefaultPath is where the binaries look for a config file.
const DefaultPath = "~/.config/sketch/config.toml"

// Config is the complete configuration file.
type Config struct {
	Server    Server    `toml:"server"`
	Sketch    Surface   `toml:"sketch"`
	Editor    Surface   `toml:"editor"`
	Generator Generator `toml:"generator"`
	Log       Log       `toml:"log"`
}

// Server configures the websocket bridge.
type Server struct {
	Addr string `toml:"addr"`

	// GenerateTimeout bounds one generate or edit request, as a Go
	// duration string. Empty means no bound.
	GenerateTimeout string `toml:"generate_timeout"`

	// AllowedOrigins lists the origins allowed to open a websocket, in
	// addition to same-origin requests. "*" allows any.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Surface configures a sketch or edit surface. Zero values keep the
// surface's defaults. Policy, Width, Height and Background do not apply to
// edit surfaces, which always match the edited image.
type Surface struct {
	Policy      string  `toml:"policy"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Background  string  `toml:"background"`
	Ink         string  `toml:"ink"`
	LineWidth   float64 `toml:"line_width"`
	EraseRadius float64 `toml:"erase_radius"`
	Mode        string  `toml:"mode"`

	// MaxResolution limits either intrinsic edge, in pixels. It caps
	// viewport-matched sketches and bounds the images an editor accepts.
	MaxResolution int `toml:"max_resolution"`
}

// Generator configures the image generation service.
type Generator struct {
	Model string `toml:"model"`

	// APIKey is used when the variable named by APIKeyEnv is unset.
	APIKey    string `toml:"api_key"`
	APIKeyEnv string `toml:"api_key_env"`
}

// Log configures logging.
type Log struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            "127.0.0.1:8080",
			GenerateTimeout: "2m",
		},
		Sketch: Surface{
			Policy: sketch.FixedResolution.String(),
			Width:  sketch.DefaultResolution,
			Height: sketch.DefaultResolution,
		},
		Generator: Generator{
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path over Default. A leading ~ is expanded.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, err
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Decode reads TOML from r into cfg and validates the result.
func Decode(r io.Reader, cfg *Config) error {
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}
		return err
	}
	return cfg.Validate()
}

// Validate checks every value that is parsed later.
func (c Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.SketchOptions(); err != nil {
		return err
	}
	if _, err := c.EditorOptions(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// Timeout returns the parsed generation timeout.
func (c Config) Timeout() (time.Duration, error) {
	if c.Server.GenerateTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.GenerateTimeout)
	if err != nil {
		return 0, fmt.Errorf("config: generate_timeout: %w", err)
	}
	return d, nil
}

// APIKey returns the credential: the environment variable named by
// api_key_env when set, api_key otherwise.
func (c Config) APIKey() string {
	if c.Generator.APIKeyEnv != "" {
		if v := strings.TrimSpace(os.Getenv(c.Generator.APIKeyEnv)); v != "" {
			return v
		}
	}
	return c.Generator.APIKey
}

// SketchOptions translates the [sketch] table into surface options.
func (c Config) SketchOptions() ([]sketch.Option, error) {
	return c.Sketch.options(sketch.DefaultSketchPen(), true)
}

// EditorOptions translates the [editor] table into surface options.
func (c Config) EditorOptions() ([]sketch.Option, error) {
	return c.Editor.options(sketch.DefaultEditPen(), false)
}

func (s Surface) options(pen sketch.Pen, sized bool) ([]sketch.Option, error) {
	var opts []sketch.Option
	if sized {
		if s.Policy != "" {
			p, err := sketch.ParsePolicy(s.Policy)
			if err != nil {
				return nil, err
			}
			opts = append(opts, sketch.WithPolicy(p))
		}
		if s.Width < 0 || s.Height < 0 {
			return nil, fmt.Errorf("config: negative resolution %dx%d", s.Width, s.Height)
		}
		opts = append(opts, sketch.WithResolution(s.Width, s.Height))
		if s.Background != "" {
			bg, err := sketch.ParseHex(s.Background)
			if err != nil {
				return nil, err
			}
			opts = append(opts, sketch.WithBackground(bg))
		}
	}

	if s.MaxResolution < 0 {
		return nil, fmt.Errorf("config: negative max_resolution %d", s.MaxResolution)
	}
	if s.MaxResolution > 0 {
		opts = append(opts, sketch.WithMaxResolution(s.MaxResolution))
	}

	if s.Ink != "" {
		ink, err := sketch.ParseHex(s.Ink)
		if err != nil {
			return nil, err
		}
		pen = pen.WithColor(ink)
	}
	if s.LineWidth > 0 {
		pen = pen.WithWidth(s.LineWidth)
	}
	if s.EraseRadius > 0 {
		pen = pen.WithEraseRadius(s.EraseRadius)
	}
	opts = append(opts, sketch.WithPen(pen))

	if s.Mode != "" {
		m, err := sketch.ParseMode(s.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sketch.WithMode(m))
	}
	return opts, nil
}

// Logger builds the logger described by the [log] table, writing to w.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}
