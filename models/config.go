// Package models defines configuration and run summary structures.
package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/wordbucket/pkg/tokenizer"
	"github.com/dtnitsch/wordbucket/pkg/wordcount"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime configuration for a counting run. Values come from an
// optional YAML or TOML file and are then overridden by CLI flags.
type Config struct {
	Alphabet         string `yaml:"alphabet" toml:"alphabet"`
	ExcludedFile     string `yaml:"excluded_file" toml:"excluded_file"`
	OutputDir        string `yaml:"output_dir" toml:"output_dir"`
	Tokenizer        string `yaml:"tokenizer" toml:"tokenizer"`
	TrailingNewline  bool   `yaml:"trailing_newline" toml:"trailing_newline"`
	ExcludedCountKey string `yaml:"excluded_count_key" toml:"excluded_count_key"`
	Top              int    `yaml:"top" toml:"top"`
	HTML             bool   `yaml:"html" toml:"html"`
	History          bool   `yaml:"history" toml:"history"`
	HistoryDB        string `yaml:"history_db" toml:"history_db"`
	DetectLanguage   bool   `yaml:"detect_language" toml:"detect_language"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Alphabet:         wordcount.DefaultAlphabet,
		ExcludedFile:     "excluded",
		OutputDir:        "out",
		Tokenizer:        string(tokenizer.Fields),
		TrailingNewline:  true,
		ExcludedCountKey: wordcount.DefaultExcludedCountKey,
		Top:              10,
		HTML:             true,
		History:          true,
		DetectLanguage:   true,
	}
}

// LoadConfig reads path on top of DefaultConfig. The format is chosen by
// extension: .toml for TOML, anything else is parsed as YAML. Keys missing
// from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty file decodes to io.EOF; keep the defaults.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Alphabet == "" {
		return fmt.Errorf("%w: alphabet must not be empty", ErrInvalidConfig)
	}
	if _, err := tokenizer.ParsePolicy(c.Tokenizer); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Top < 0 {
		return fmt.Errorf("%w: top must not be negative", ErrInvalidConfig)
	}
	if err := validateName("excluded_file", c.ExcludedFile); err != nil {
		return err
	}
	if err := validateName("output_dir", c.OutputDir); err != nil {
		return err
	}
	if c.ExcludedFile == c.OutputDir {
		return fmt.Errorf("%w: excluded_file and output_dir must differ", ErrInvalidConfig)
	}
	for _, r := range c.Alphabet {
		if !validLetter(r) {
			return fmt.Errorf("%w: alphabet letter %q can not be used as a file name", ErrInvalidConfig, r)
		}
	}
	if c.ExcludedCountKey != "" {
		if err := validateName("excluded_count_key", c.ExcludedCountKey); err != nil {
			return err
		}
		if strings.Contains(c.Alphabet, c.ExcludedCountKey) && utf8.RuneCountInString(c.ExcludedCountKey) == 1 {
			return fmt.Errorf("%w: excluded_count_key %q collides with an alphabet letter", ErrInvalidConfig, c.ExcludedCountKey)
		}
	}
	return nil
}

// validLetter reports whether r names an output file on its own.
func validLetter(r rune) bool {
	switch r {
	case '/', '\\', '.', utf8.RuneError:
		return false
	}
	return !unicode.IsControl(r) && !unicode.IsSpace(r)
}

func validateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, field)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %s must be a plain name inside the input directory", ErrInvalidConfig, field)
	}
	return nil
}
