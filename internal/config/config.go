package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/workoutlog/internal/api"
)

type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DashboardConfig struct {
	RecentDays  int    `mapstructure:"recent_days" validate:"min=1,max=90"`
	HistoryDays int    `mapstructure:"history_days" validate:"min=1,max=30"`
	Address     string `mapstructure:"address" validate:"required"`
	LogPath     string `mapstructure:"log_path" validate:"required,startswith=/"`
}

type TemplatesConfig struct {
	DashboardHTMLTemplate     string `mapstructure:"dashboard_html_template" validate:"omitempty,file"`
	LogHTMLTemplate           string `mapstructure:"log_html_template" validate:"omitempty,file"`
	DashboardMarkdownTemplate string `mapstructure:"dashboard_markdown_template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/workoutlog")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("api.timeout", 0)
	v.SetDefault("dashboard.recent_days", api.DefaultDays)
	v.SetDefault("dashboard.history_days", api.DefaultHistoryDays)
	v.SetDefault("dashboard.address", ":3000")
	v.SetDefault("dashboard.log_path", "/log")
	// Templates are optional - if not specified, embedded fallback templates are used
	v.SetDefault("templates.dashboard_html_template", "")
	v.SetDefault("templates.log_html_template", "")
	v.SetDefault("templates.dashboard_markdown_template", "")

	if err := v.BindEnv("api.base_url", "WORKOUT_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind WORKOUT_API_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		errorMsgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
