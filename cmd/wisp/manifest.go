package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package     packageConfig     `toml:"package"`
	Tokenize    tokenizeConfig    `toml:"tokenize"`
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type tokenizeConfig struct {
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"`
}

type diagnosticsConfig struct {
	Max int `toml:"max"`
}

// findWispToml ищет wisp.toml вверх от startDir до корня.
func findWispToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "wisp.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest возвращает (nil, false, nil), если манифеста нет:
// wisp.toml необязателен, в отличие от явных флагов.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findWispToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if meta.IsDefined("tokenize", "format") {
		switch cfg.Tokenize.Format {
		case "pretty", "json", "msgpack":
		default:
			return projectConfig{}, fmt.Errorf("%s: [tokenize].format must be pretty, json, or msgpack", path)
		}
	}
	if meta.IsDefined("tokenize", "jobs") && cfg.Tokenize.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [tokenize].jobs must be non-negative", path)
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max <= 0 {
		return projectConfig{}, fmt.Errorf("%s: [diagnostics].max must be positive", path)
	}
	return cfg, nil
}
