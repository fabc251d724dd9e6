package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Densify   DensifyConfig   `yaml:"densify" mapstructure:"densify"`
	Hausdorff HausdorffConfig `yaml:"hausdorff" mapstructure:"hausdorff"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DensifyConfig holds the default densification knobs. A spacing knob set to
// zero is treated as unset.
type DensifyConfig struct {
	MaxSegmentLengthMeters float64 `yaml:"max_segment_length_m" mapstructure:"max_segment_length_m"`
	MaxSegmentAngleDegrees float64 `yaml:"max_segment_angle_deg" mapstructure:"max_segment_angle_deg"`
	SampleCap              int     `yaml:"sample_cap" mapstructure:"sample_cap"`
}

// HausdorffConfig holds the default evaluation mode.
type HausdorffConfig struct {
	Symmetric bool `yaml:"symmetric" mapstructure:"symmetric"`
}

// BatchConfig configures batch distance evaluation.
type BatchConfig struct {
	MaxConcurrentPairs int `yaml:"max_concurrent_pairs" mapstructure:"max_concurrent_pairs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEODIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("densify.max_segment_length_m", 100.0)
	v.SetDefault("densify.max_segment_angle_deg", 0.1)
	v.SetDefault("densify.sample_cap", 50_000)
	v.SetDefault("hausdorff.symmetric", true)
	v.SetDefault("batch.max_concurrent_pairs", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
