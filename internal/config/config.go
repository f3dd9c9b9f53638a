package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level configuration read from configs/config.yaml.
type Config struct {
	Vcover   VcoverConfig   `mapstructure:"vcover"`
	Coverage CoverageConfig `mapstructure:"coverage"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// VcoverConfig describes how to invoke the coverage analysis tool.
type VcoverConfig struct {
	Path        string `mapstructure:"path"`
	DesignUnit  string `mapstructure:"design_unit"`
	Timeout     int    `mapstructure:"timeout"` // seconds
	Concurrency int    `mapstructure:"concurrency"`
}

// CoverageConfig locates the coverage database. The first entry of
// Databases that exists under Dir is used.
type CoverageConfig struct {
	Dir       string   `mapstructure:"dir"`
	Databases []string `mapstructure:"databases"`
}

// OutputConfig controls how the assembled model is written.
type OutputConfig struct {
	Format string `mapstructure:"format"` // json, yaml or yml
	Path   string `mapstructure:"path"`   // empty means stdout
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// OutputFormats lists the accepted values of output.format and --format.
var OutputFormats = []string{"json", "yaml", "yml"}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

const envPrefix = "COVMODEL"

func setDefaults(v *viper.Viper) {
	v.SetDefault("vcover.path", "vcover")
	v.SetDefault("vcover.design_unit", "cpm")
	v.SetDefault("vcover.timeout", 120)
	v.SetDefault("vcover.concurrency", 4)
	v.SetDefault("coverage.dir", "coverage")
	v.SetDefault("coverage.databases", []string{"merged.ucdb", "CpmMainTest.ucdb"})
	v.SetDefault("output.format", "json")
	v.SetDefault("output.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configs/config.yaml, if present, on top of the built-in
// defaults. A missing file is not an error.
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig reading an explicit file instead of searching
// the configs directories. An empty path falls back to the search.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if !isOutputFormat(c.Output.Format) {
		return fmt.Errorf("unsupported output format %q (want one of %s)", c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	if c.Vcover.Path == "" {
		return fmt.Errorf("vcover.path must not be empty")
	}
	if c.Vcover.Timeout < 0 {
		return fmt.Errorf("vcover.timeout must not be negative")
	}
	if c.Vcover.Concurrency < 1 {
		return fmt.Errorf("vcover.concurrency must be at least 1")
	}
	return nil
}
