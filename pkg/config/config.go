// Package config reads the LiteCode configuration file.
//
// The file is YAML:
//
//	substitution: exact   # or naive
//	history: true         # record REPL lines in the database
//	db: /path/to/db.bolt  # history database
//	prompt: "lc> "
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"src.litecode.dev/pkg/env"
	"src.litecode.dev/pkg/eval"
)

// DefaultPrompt is the REPL prompt when none is configured.
const DefaultPrompt = "lc> "

// Config is the effective configuration.
type Config struct {
	Substitution eval.Substitution
	History      bool
	DB           string
	Prompt       string
}

// Default returns the configuration used when there is no configuration
// file.
func Default() Config {
	return Config{Substitution: eval.ExactSubstitution, History: true, Prompt: DefaultPrompt}
}

type configFile struct {
	Substitution *string `yaml:"substitution"`
	History      *bool   `yaml:"history"`
	DB           *string `yaml:"db"`
	Prompt       *string `yaml:"prompt"`
}

// Path returns the path of the configuration file: explicit if not empty,
// else $LITECODE_CONFIG, else config.yaml in the litecode directory under
// the user configuration directory. The second return value reports whether
// the path was chosen explicitly, in which case the file must exist.
func Path(explicit string) (path string, required bool, err error) {
	if explicit != "" {
		return explicit, true, nil
	}
	if p := os.Getenv(env.LITECODE_CONFIG); p != "" {
		return p, true, nil
	}
	dir := os.Getenv(env.XDG_CONFIG_HOME)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, fmt.Errorf("config: cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "litecode", "config.yaml"), false, nil
}

// Load finds the configuration file with Path and reads it. A missing
// default file yields Default().
func Load(explicit string) (Config, error) {
	path, required, err := Path(explicit)
	if err != nil {
		return Default(), err
	}
	cfg, err := Read(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	return cfg, err
}

// Read reads the configuration file at path. Keys absent from the file keep
// their values from Default().
func Read(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if raw.Substitution != nil {
		s, err := eval.ParseSubstitution(*raw.Substitution)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
		cfg.Substitution = s
	}
	if raw.History != nil {
		cfg.History = *raw.History
	}
	if raw.DB != nil {
		cfg.DB = *raw.DB
	}
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	return cfg, nil
}
