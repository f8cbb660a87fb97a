package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"transitscore.colosseumlihtc.org/internal/refdata"
)

// StopSourceConfig is one stop dataset entry in the configuration file.
type StopSourceConfig struct {
	Name string `yaml:"name" validate:"required"`
	Kind string `yaml:"kind" validate:"required,oneof=gtfs geojson"`
	Path string `yaml:"path" validate:"required"`
}

// ServerConfig is the server section of the configuration file.
type ServerConfig struct {
	Port      int      `yaml:"port" validate:"omitempty,gt=0"`
	Env       string   `yaml:"env" validate:"omitempty,oneof=development production test"`
	ApiKeys   []string `yaml:"apiKeys"`
	RateLimit int      `yaml:"rateLimit" validate:"omitempty,gt=0"`
	DBPath    string   `yaml:"dbPath"`
}

// DatasetsConfig is the datasets section of the configuration file.
type DatasetsConfig struct {
	Stops          []StopSourceConfig `yaml:"stops" validate:"dive"`
	HQTA           string             `yaml:"hqta"`
	HQTS           string             `yaml:"hqts"`
	ReloadInterval string             `yaml:"reloadInterval"`
}

// FileConfig is the YAML configuration file schema. Everything in it can
// also be supplied through flags; the file is for installations with many
// stop sources.
type FileConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Datasets DatasetsConfig `yaml:"datasets"`
}

// LoadFileConfig reads and validates a YAML configuration file.
func LoadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validating config file: %w", err)
	}

	if cfg.Datasets.ReloadInterval != "" {
		if _, err := time.ParseDuration(cfg.Datasets.ReloadInterval); err != nil {
			return cfg, fmt.Errorf("validating config file: invalid reloadInterval: %w", err)
		}
	}

	return cfg, nil
}

// Apply merges the file configuration into the server and dataset configs.
// Values present in the file win over values already set from flags.
func (fc FileConfig) Apply(cfg *Config, dataCfg *refdata.Config) {
	if fc.Server.Port > 0 {
		cfg.Port = fc.Server.Port
	}
	if fc.Server.Env != "" {
		cfg.Env = fc.Server.Env
	}
	if len(fc.Server.ApiKeys) > 0 {
		cfg.ApiKeys = fc.Server.ApiKeys
	}
	if fc.Server.RateLimit > 0 {
		cfg.RateLimit = fc.Server.RateLimit
	}
	if fc.Server.DBPath != "" {
		cfg.DBPath = fc.Server.DBPath
	}

	if len(fc.Datasets.Stops) > 0 {
		sources := make([]refdata.StopSource, 0, len(fc.Datasets.Stops))
		for _, stop := range fc.Datasets.Stops {
			sources = append(sources, refdata.StopSource{
				Name: strings.TrimSpace(stop.Name),
				Kind: stop.Kind,
				Path: stop.Path,
			})
		}
		dataCfg.StopSources = sources
	}
	if fc.Datasets.HQTA != "" {
		dataCfg.HQTAPath = fc.Datasets.HQTA
	}
	if fc.Datasets.HQTS != "" {
		dataCfg.HQTSPath = fc.Datasets.HQTS
	}
	if fc.Datasets.ReloadInterval != "" {
		if interval, err := time.ParseDuration(fc.Datasets.ReloadInterval); err == nil {
			dataCfg.ReloadInterval = interval
		}
	}
}
