// Package config loads the optional cfront.toml configuration file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raymyers/cfront/pkg/lexer"
)

// DefaultPath is looked up in the working directory when no path is given
const DefaultPath = "cfront.toml"

// Output formats of the parse dump
const (
	FormatC    = "c"
	FormatYAML = "yaml"
)

// Config holds the complete front end configuration
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Parser ParserConfig `toml:"parser"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

// LexerConfig holds token filtering settings
type LexerConfig struct {
	Discard []Kind `toml:"discard"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	TypeNames []string `toml:"type_names"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// OutputConfig holds dump settings
type OutputConfig struct {
	Format string `toml:"format"`
}

// Kind wraps lexer.TokenKind for TOML parsing by name
type Kind struct {
	lexer.TokenKind
}

// UnmarshalText parses a token kind name such as "COMMENT"
func (k *Kind) UnmarshalText(text []byte) error {
	var err error
	k.TokenKind, err = lexer.KindByName(strings.ToUpper(string(text)))
	return err
}

// MarshalText formats the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.TokenKind.String()), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. Unknown keys are an error.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse config: unknown key %q", undecoded[0].String())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover loads path when set. Otherwise it loads DefaultPath if that file
// exists and falls back to Default.
func Discover(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Lexer.Discard == nil {
		for _, k := range lexer.DefaultDiscard {
			c.Lexer.Discard = append(c.Lexer.Discard, Kind{k})
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatC
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Output.Format {
	case FormatC, FormatYAML:
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	return nil
}

// DiscardKinds returns the token kinds filtered out before parsing
func (c *Config) DiscardKinds() []lexer.TokenKind {
	kinds := make([]lexer.TokenKind, len(c.Lexer.Discard))
	for i, k := range c.Lexer.Discard {
		kinds[i] = k.TokenKind
	}
	return kinds
}
