package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GONODAL_LOG_LEVEL
const EnvPrefix = "GONODAL"

// Config captures the runtime settings of the CLI.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Workers  int            `mapstructure:"workers"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// AnalysisConfig holds defaults applied when a case file leaves a value unset.
type AnalysisConfig struct {
	Points             int     `mapstructure:"points"`
	IPRPoints          int     `mapstructure:"ipr_points"`
	MinRate            float64 `mapstructure:"min_rate"`
	MaxRate            float64 `mapstructure:"max_rate"`
	SurfaceTemperature float64 `mapstructure:"surface_temperature"`
}

// ChartConfig sets the exported image size in points.
type ChartConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	File string `mapstructure:"file"`
}

// flagKeys maps persistent CLI flags onto config keys
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-json":     "log.json",
	"workers":      "workers",
	"metrics-file": "metrics.file",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("analysis.points", 50)
	v.SetDefault("analysis.ipr_points", 500)
	v.SetDefault("analysis.min_rate", 0.0)
	v.SetDefault("analysis.max_rate", 0.0)
	v.SetDefault("analysis.surface_temperature", 60.0)
	v.SetDefault("chart.width", 640.0)
	v.SetDefault("chart.height", 480.0)
	v.SetDefault("metrics.file", "")
}

// Load resolves settings in increasing precedence: defaults, the optional
// YAML config file at path, GONODAL_* environment variables, then any
// flags in fs that were set explicitly. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must be >= 0", c.Workers))
	}
	if c.Analysis.Points < 2 {
		errs = append(errs, fmt.Errorf("analysis.points %d must be >= 2", c.Analysis.Points))
	}
	if c.Analysis.IPRPoints < 2 {
		errs = append(errs, fmt.Errorf("analysis.ipr_points %d must be >= 2", c.Analysis.IPRPoints))
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size %.0fx%.0f must be positive", c.Chart.Width, c.Chart.Height))
	}
	return errors.Join(errs...)
}
