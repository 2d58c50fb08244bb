package dumpy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/brother79/dumpy/encode"
	"github.com/brother79/dumpy/sanitize"
)

// Config holds the tuning values of a Dumper.
//
// Values are read from DUMPY_* environment variables by ConfigFromEnv and
// may be overridden by a YAML file with LoadConfig.
type Config struct {
	// MaxDepth is the depth budget used when a caller gives none.
	MaxDepth int `env:"DUMPY_MAX_DEPTH,default=1" yaml:"max_depth"`

	// MaxDepthLimit caps any depth budget, including the argument of the
	// dumpy filter. Cyclic graphs are expanded until the budget runs out.
	MaxDepthLimit int `env:"DUMPY_MAX_DEPTH_LIMIT,default=10" yaml:"max_depth_limit"`

	// ContainerCap is the number of elements shown per container.
	ContainerCap int `env:"DUMPY_CONTAINER_CAP,default=20" yaml:"container_cap"`

	// CountLimit bounds counting of iterables without a length.
	CountLimit int `env:"DUMPY_COUNT_LIMIT,default=1000" yaml:"count_limit"`

	// Indent is the YAML indentation width.
	Indent int `env:"DUMPY_INDENT,default=2" yaml:"indent"`

	// HTML escapes dumps and renders class labels as HTML.
	HTML bool `env:"DUMPY_HTML,default=false" yaml:"html"`

	// IncludeFields lists exported struct fields next to accessor methods.
	IncludeFields bool `env:"DUMPY_INCLUDE_FIELDS,default=true" yaml:"include_fields"`

	// LogLevel is the minimum level logged by the command line tool.
	LogLevel string `env:"DUMPY_LOG_LEVEL,default=warn" yaml:"log_level"`
}

// DefaultMaxDepthLimit is the largest depth budget accepted by default.
const DefaultMaxDepthLimit = 10

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		MaxDepth:      1,
		MaxDepthLimit: DefaultMaxDepthLimit,
		ContainerCap:  sanitize.DefaultContainerCap,
		CountLimit:    sanitize.DefaultCountLimit,
		Indent:        encode.DefaultIndent,
		HTML:          false,
		IncludeFields: true,
		LogLevel:      "warn",
	}
}

// ConfigFromEnv reads the configuration from the environment. Unset
// variables take their defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, NewError(ErrConfig, "cannot decode environment").WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads the environment and then applies the YAML file at path on
// top of it. Keys present in the file win over environment variables.
func LoadConfig(path string) (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, NewError(ErrConfig, "cannot read config file").WithCause(err)
	}
	if err := cfg.merge(data); err != nil {
		return Config{}, NewError(ErrConfig, fmt.Sprintf("cannot parse %s", path)).WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the configuration for values the Dumper cannot use.
func (c Config) Validate() error {
	switch {
	case c.MaxDepth < 0:
		return NewError(ErrConfig, fmt.Sprintf("max_depth must not be negative, got %d", c.MaxDepth))
	case c.MaxDepthLimit < 1:
		return NewError(ErrConfig, fmt.Sprintf("max_depth_limit must be positive, got %d", c.MaxDepthLimit))
	case c.MaxDepth > c.MaxDepthLimit:
		return NewError(ErrConfig, fmt.Sprintf("max_depth (%d) must not exceed max_depth_limit (%d)", c.MaxDepth, c.MaxDepthLimit))
	case c.ContainerCap < 1:
		return NewError(ErrConfig, fmt.Sprintf("container_cap must be positive, got %d", c.ContainerCap))
	case c.CountLimit < c.ContainerCap:
		return NewError(ErrConfig, fmt.Sprintf("count_limit (%d) must be at least container_cap (%d)", c.CountLimit, c.ContainerCap))
	case c.Indent < 2 || c.Indent > 9:
		return NewError(ErrConfig, fmt.Sprintf("indent must be between 2 and 9, got %d", c.Indent))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return NewError(ErrConfig, "invalid log_level").WithCause(err)
	}
	return nil
}

// Level returns the parsed log level, falling back to warn.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.WarnLevel
	}
	return lvl
}

// depthLimit returns MaxDepthLimit, or DefaultMaxDepthLimit for a
// configuration built by hand without one.
func (c Config) depthLimit() int {
	if c.MaxDepthLimit < 1 {
		return DefaultMaxDepthLimit
	}
	return c.MaxDepthLimit
}

func (c Config) clampDepth(depth int) int {
	return max(0, min(depth, c.depthLimit()))
}

// Policy converts the configuration into a sanitizer policy.
func (c Config) Policy() sanitize.Policy {
	p := sanitize.DefaultPolicy()
	p.ContainerCap = c.ContainerCap
	p.CountLimit = c.CountLimit
	p.IncludeFields = c.IncludeFields
	return p
}
