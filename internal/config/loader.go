package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "KEYMASK_"

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Path is a TOML or YAML config file. Empty uses the defaults only.
	Path string

	// EnvFile is an optional dotenv file. Variables already present in
	// the environment win over the file.
	EnvFile string

	// Environ replaces the process environment when non-nil.
	Environ map[string]string
}

// Load resolves the configuration from defaults, the config file and the
// environment, then validates it.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", opts.Path, err)
		}
		if err := cfg.decode(opts.Path, data); err != nil {
			return nil, err
		}
	}

	environ, err := environment(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.parseEnv(environ); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data in the format implied by name's extension on top of
// the defaults. It does not read the environment or validate.
func Parse(name string, data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(name, data); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// decode overlays file data on c. A file that declares fields replaces
// the configured ones.
func (c *Config) decode(path string, data []byte) error {
	fields := c.Fields
	c.Fields = nil

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(path, data, c)
	case ".yaml", ".yml":
		err = decodeYAML(path, data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}

	if c.Fields == nil {
		c.Fields = fields
	}
	return nil
}

func decodeTOML(path string, data []byte, out *Config) error {
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(out); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			pe.Message = serr.String()
		}
		return pe
	}
	return nil
}

func decodeYAML(path string, data []byte, out *Config) error {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)
	if err := d.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// envSections are the parts of Config the environment may override.
type envSections struct {
	Logging  LoggingConfig  `envPrefix:"LOG_"`
	Theme    ThemeConfig    `envPrefix:"THEME_"`
	Defaults DefaultsConfig `envPrefix:"DEFAULT_"`
}

func (c *Config) parseEnv(environ map[string]string) error {
	sec := envSections{Logging: c.Logging, Theme: c.Theme, Defaults: c.Defaults}
	if err := env.ParseWithOptions(&sec, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return err
	}
	c.Logging, c.Theme, c.Defaults = sec.Logging, sec.Theme, sec.Defaults
	return nil
}

// environment merges the dotenv file under the process (or supplied)
// environment. A nil map means the process environment.
func environment(opts LoadOptions) (map[string]string, error) {
	environ := opts.Environ
	if opts.EnvFile == "" {
		return environ, nil
	}
	if environ == nil {
		environ = make(map[string]string)
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				environ[k] = v
			}
		}
	}

	vars, err := godotenv.Read(opts.EnvFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts.Environ, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", opts.EnvFile, err)
	}

	merged := make(map[string]string, len(environ)+len(vars))
	for k, v := range vars {
		merged[k] = v
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}
