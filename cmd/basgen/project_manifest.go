package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// basgen.toml is optional: a run works from flags alone, and the manifest
// only supplies defaults that flags can still override.

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project  projectSection  `toml:"project"`
	Generate generateSection `toml:"generate"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type generateSection struct {
	Out          string `toml:"out"`
	Seed         int64  `toml:"seed"`
	Workers      int    `toml:"workers"`
	UIElements   int    `toml:"ui_elements"`
	Macros       int    `toml:"macros"`
	Modules      int    `toml:"modules"`
	TargetSizeMB int    `toml:"target_size_mb"`
	Rules        string `toml:"rules"`
	FailFast     bool   `toml:"fail_fast"`
}

func findBasgenToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "basgen.toml")
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

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findBasgenToml(startDir)
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
	if meta.IsDefined("project") {
		if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
			return projectConfig{}, fmt.Errorf("%s: [project] requires a non-empty name", path)
		}
	}
	if cfg.Generate.TargetSizeMB < 0 {
		return projectConfig{}, fmt.Errorf("%s: [generate].target_size_mb must not be negative", path)
	}
	if cfg.Generate.Workers < 0 {
		return projectConfig{}, fmt.Errorf("%s: [generate].workers must not be negative", path)
	}
	return cfg, nil
}
