// Package config loads application configuration using Viper, with
// defaults for every key and an optional YAML file.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Recipes RecipesConfig `mapstructure:"recipes"`
	Log     LogConfig     `mapstructure:"log"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// RecipesConfig locates the recipe source directory
type RecipesConfig struct {
	Dir       string `mapstructure:"dir" validate:"required"`
	Extension string `mapstructure:"extension" validate:"required,startswith=."`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format      string `mapstructure:"format" validate:"oneof=console json"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from configPath, or from recipe-calc.yaml in the
// working directory or ./config when configPath is empty. A missing default
// file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("recipe-calc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "recipe-calc")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("recipes.dir", "recipes")
	v.SetDefault("recipes.extension", ".txt")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.development", false)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
