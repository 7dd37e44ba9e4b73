package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration, loaded hierarchically:
// defaults, then an optional config file, then CONCILIADOR_* environment
// variables.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Statement struct {
		// Columns are the canonical header names the statement importer
		// requires, in order: date, statement label, description, amount.
		// Matching against file headers is diacritic- and case-insensitive.
		Columns []string `mapstructure:"columns" yaml:"columns"`
	} `mapstructure:"statement" yaml:"statement"`

	Export struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig loads the configuration from defaults, config file and
// environment.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.conciliador")
	v.AddConfigPath(".conciliador")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CONCILIADOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars; a broken config file
			// should not block imports.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "data")

	v.SetDefault("statement.columns", []string{"Data", "Lançamento", "Descrição", "Valor"})

	v.SetDefault("export.format", "xlsx")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.Statement.Columns) != 4 {
		return fmt.Errorf("statement.columns must name exactly 4 columns (date, label, description, amount), got %d", len(config.Statement.Columns))
	}

	if config.Export.Format != "xlsx" && config.Export.Format != "csv" {
		return fmt.Errorf("invalid export format: %s (must be 'xlsx' or 'csv')", config.Export.Format)
	}

	return nil
}
