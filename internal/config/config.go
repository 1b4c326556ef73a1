package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Spec struct {
		Source string `yaml:"source"` // file path or afs URL of the specification
	} `yaml:"spec"`
	Notes struct {
		DB string `yaml:"db"` // SQLite file holding TODO notes
	} `yaml:"notes"`
	View View `yaml:"view"`
}

// View holds display toggles shared by all views.
type View struct {
	ShowArgType       bool `yaml:"show_arg_type"`
	ShowArgIntent     bool `yaml:"show_arg_intent"`
	ShowArgOrder      bool `yaml:"show_arg_order"`
	ShowAnalysisGroup bool `yaml:"show_analysis_group"`
	ShowAnalysisOrder bool `yaml:"show_analysis_order"`
	Highlight         bool `yaml:"highlight"`
}

const (
	DefaultSource = "mpi_specification.xml"
	DefaultDB     = "specview.db"
)

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Spec.Source = DefaultSource
	cfg.Notes.DB = DefaultDB
	return cfg
}

// LoadConfig reads the YAML config at path. A missing file leaves the
// defaults in place; environment variables override both.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	cfg := DefaultConfig()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	}

	// 3. Override with Environment Variables if present
	if source := os.Getenv("SPECVIEW_SOURCE"); source != "" {
		cfg.Spec.Source = source
	}
	if db := os.Getenv("SPECVIEW_DB"); db != "" {
		cfg.Notes.DB = db
	}

	if cfg.Spec.Source == "" {
		cfg.Spec.Source = DefaultSource
	}
	if cfg.Notes.DB == "" {
		cfg.Notes.DB = DefaultDB
	}
	return cfg, nil
}
