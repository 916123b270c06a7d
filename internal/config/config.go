// Package config reads and writes the YAML run configuration of sed-go.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rwtodd/tealsed/internal/regex"
)

// DefaultPath is where sed-go looks for a configuration when --config is
// not given.
const DefaultPath = ".tealsed.yaml"

// Config holds the settings that can also be given on the command line.
// Flags always win over the file.
type Config struct {
	DialectName string   `yaml:"dialect"`
	Quiet       bool     `yaml:"quiet"`
	Expressions []string `yaml:"expressions,omitempty"`
	ScriptFiles []string `yaml:"script_files,omitempty"`
	Verbose     bool     `yaml:"verbose"`
}

// Default is the configuration used when no file exists.
func Default() Config {
	return Config{DialectName: regex.Basic.String()}
}

// Dialect parses DialectName.
func (c Config) Dialect() (regex.Dialect, error) {
	return regex.ParseDialect(c.DialectName)
}

// Load reads the configuration at path. A missing file is not an error:
// the defaults are returned instead.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a configuration from r. Fields the document leaves out keep
// their default values.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if _, err := cfg.Dialect(); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// Write stores cfg at path, replacing any existing file.
func Write(path string, cfg Config) error {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(d); err != nil {
		return err
	}
	return f.Close()
}
