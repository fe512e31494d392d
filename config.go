package gameshare

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/junioryono/gameshare/internal/reflection"
)

// Config is the file form of the injector options.
//
//	strict: false
//	tag: share
//	log_level: debug
//	log_format: json
//	metrics: true
type Config struct {
	Strict    bool   `config:"strict"`
	TagName   string `config:"tag" validate:"required,alphanum"`
	LogLevel  string `config:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `config:"log_format" validate:"oneof=text json"`
	Metrics   bool   `config:"metrics"`
}

// ConfigError reports which stage of LoadConfig failed: "parse", "decode"
// or "validate".
type ConfigError struct {
	Stage string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s error: %v", e.Stage, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Strict:    true,
		TagName:   reflection.DefaultTagName,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

var configValidator = validator.New()

// LoadConfig reads YAML from r on top of DefaultConfig. Keys missing from
// the document keep their defaults; scalar values are weakly typed, so
// strict: "false" is accepted.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return Config{}, &ConfigError{Stage: "parse", Err: err}
	}

	if raw != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			TagName:          "config",
		})
		if err != nil {
			return Config{}, &ConfigError{Stage: "decode", Err: err}
		}
		if err := decoder.Decode(raw); err != nil {
			return Config{}, &ConfigError{Stage: "decode", Err: err}
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, &ConfigError{Stage: "validate", Err: err}
	}

	return cfg, nil
}

// NewLogger builds a logger writing to w at the configured level and format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Options converts the configuration into options. metrics is only used when
// the configuration enables metrics.
func (c Config) Options(logger *slog.Logger, metrics *Metrics) []Option {
	opts := []Option{
		WithStrictMode(c.Strict),
		WithTagName(c.TagName),
		WithLogger(logger),
	}
	if c.Metrics {
		opts = append(opts, WithMetrics(metrics))
	}
	return opts
}
