// Package config loads the generator settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/skdltmxn/classwrap/accessor"
	"github.com/skdltmxn/classwrap/classmodel"
)

// MaxFileSize bounds the configuration file read by Load.
const MaxFileSize = 1 << 20

// Config is the contents of a classwrap configuration file.
//
//	cplusplus: true
//	no_default: false
//	inherit: [functions, variables]
//	naming:
//	  member: "%c_%m"
//	log_level: info
type Config struct {
	// CPlusPlus selects C++ input. Defaults to true when absent.
	CPlusPlus *bool `yaml:"cplusplus"`

	// NoDefault disables synthesized constructors and destructors.
	NoDefault bool `yaml:"no_default"`

	// Inherit lists the member kinds replayed into derived classes.
	Inherit []string `yaml:"inherit" validate:"omitempty,dive,oneof=functions variables constants all"`

	// Naming overrides accessor name formats. Empty fields keep the default.
	Naming accessor.Naming `yaml:"naming"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	on := true
	return &Config{
		CPlusPlus: &on,
		Inherit:   []string{"all"},
		Naming:    accessor.DefaultNaming(),
		LogLevel:  "info",
	}
}

var validate = newValidator()

// newValidator reports fields by their yaml names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes and validates YAML configuration. Missing fields get their
// defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("config: %s exceeds maximum size (%d > %d)", path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("config loaded", "path", path, "cplusplus", *cfg.CPlusPlus, "inherit", cfg.Inherit)
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.CPlusPlus == nil {
		c.CPlusPlus = d.CPlusPlus
	}
	if len(c.Inherit) == 0 {
		c.Inherit = d.Inherit
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	c.Naming = c.Naming.WithDefaults()
}

// Validate checks field values and name formats.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s: %q", fe.Field(), fmt.Sprint(fe.Value()))
		}
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Naming.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Options converts the configuration into pipeline options. Logger, tracer
// and observer are left for the caller.
func (c *Config) Options() (classmodel.Options, error) {
	mode, err := classmodel.ParseInheritMode(c.Inherit)
	if err != nil {
		return classmodel.Options{}, fmt.Errorf("config: %w", err)
	}
	opts := classmodel.DefaultOptions()
	if c.CPlusPlus != nil {
		opts.CPlusPlus = *c.CPlusPlus
	}
	opts.GenerateDefault = !c.NoDefault
	opts.InheritMode = mode
	opts.Naming = c.Naming.WithDefaults()
	return opts, nil
}
