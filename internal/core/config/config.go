package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"theoremdex/internal/engine/scanner"
)

type Config struct {
	Version int     `toml:"version"`
	Scan    Scan    `toml:"scan"`
	Exclude Exclude `toml:"exclude"`
	Engine  Engine  `toml:"engine"`
	Watch   Watch   `toml:"watch"`
	History History `toml:"history"`
	Output  Output  `toml:"output"`
	Tracing Tracing `toml:"tracing"`
}

type Scan struct {
	Roots      []string `toml:"roots"`
	Extensions []string `toml:"extensions"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

// Engine holds the knobs the three tool surfaces share. The boolean options
// default to true, hence the pointer fields.
type Engine struct {
	Kinds             []string `toml:"kinds"`
	IncludeSymbols    *bool    `toml:"include_symbols"`
	IncludeReferences *bool    `toml:"include_references"`
	BuildDependencies *bool    `toml:"build_dependencies"`
	FuzzyMatch        *bool    `toml:"fuzzy_match"`
}

type Watch struct {
	Debounce      time.Duration `toml:"debounce"`
	RescansPerSec float64       `toml:"rescans_per_sec"`
	RescanBurst   int           `toml:"rescan_burst"`
}

type History struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Output struct {
	Markdown       string             `toml:"markdown"`
	Mermaid        string             `toml:"mermaid"`
	UpdateMarkdown *MarkdownInjection `toml:"update_markdown"`
}

type MarkdownInjection struct {
	File   string `toml:"file"`
	Marker string `toml:"marker"`
}

type Tracing struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if len(cfg.Scan.Roots) == 0 {
		cfg.Scan.Roots = []string{"."}
	}
	if len(cfg.Scan.Extensions) == 0 {
		cfg.Scan.Extensions = []string{".tex"}
	}
	if len(cfg.Engine.Kinds) == 0 {
		cfg.Engine.Kinds = append([]string(nil), scanner.DefaultKinds...)
	}
	if cfg.Engine.IncludeSymbols == nil {
		cfg.Engine.IncludeSymbols = boolPtr(true)
	}
	if cfg.Engine.IncludeReferences == nil {
		cfg.Engine.IncludeReferences = boolPtr(true)
	}
	if cfg.Engine.BuildDependencies == nil {
		cfg.Engine.BuildDependencies = boolPtr(true)
	}
	if cfg.Engine.FuzzyMatch == nil {
		cfg.Engine.FuzzyMatch = boolPtr(true)
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RescansPerSec == 0 {
		cfg.Watch.RescansPerSec = 2
	}
	if cfg.Watch.RescanBurst == 0 {
		cfg.Watch.RescanBurst = 4
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "data/history.db"
	}
	if strings.TrimSpace(cfg.History.ProjectKey) == "" {
		cfg.History.ProjectKey = "default"
	}
}

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d", cfg.Version)
	}
	for _, ext := range cfg.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan extension %q must start with a dot", ext)
		}
	}
	for _, kind := range cfg.Engine.Kinds {
		if strings.TrimSpace(kind) == "" {
			return fmt.Errorf("engine kinds must not contain blank entries")
		}
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative")
	}
	if cfg.Output.UpdateMarkdown != nil {
		if strings.TrimSpace(cfg.Output.UpdateMarkdown.File) == "" ||
			strings.TrimSpace(cfg.Output.UpdateMarkdown.Marker) == "" {
			return fmt.Errorf("output.update_markdown requires both file and marker")
		}
	}
	if cfg.Tracing.Enabled && strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }
