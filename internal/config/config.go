/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SupportedLocales lists the locale identifiers accepted by seeding
// operations. Generated values themselves are not localized; the list exists
// for input validation and reporting.
var SupportedLocales = []string{
	"uk_UA", "en_US", "ru_RU", "de_DE", "fr_FR",
	"es_ES", "ja_JP", "zh_CN", "pt_BR", "it_IT",
	"pl_PL", "nl_NL", "ko_KR", "tr_TR", "ar_SA",
}

// IsSupportedLocale reports whether the locale is in SupportedLocales.
func IsSupportedLocale(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// Config holds all configuration for the application.
type Config struct {
	Database DatabaseConfig         `mapstructure:"database" yaml:"database"`
	Settings GlobalSettings         `mapstructure:"global_settings" yaml:"global_settings"`
	Tables   map[string]TableConfig `mapstructure:"tables" yaml:"tables,omitempty"`
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Dialect                        string `mapstructure:"dialect" yaml:"dialect"`
	Host                           string `mapstructure:"host" yaml:"host,omitempty"`
	Port                           int    `mapstructure:"port" yaml:"port,omitempty"`
	User                           string `mapstructure:"user" yaml:"user,omitempty"`
	Password                       string `mapstructure:"password" yaml:"password,omitempty"`
	DBName                         string `mapstructure:"dbname" yaml:"dbname,omitempty"`
	SSLMode                        string `mapstructure:"sslmode" yaml:"sslmode,omitempty"`
	FilePath                       string `mapstructure:"file" yaml:"file,omitempty"` // sqlite database file
	CloudSQLInstanceConnectionName string `mapstructure:"cloudsql_instance_connection_name" yaml:"cloudsql_instance_connection_name,omitempty"`
	UsePrivateIP                   bool   `mapstructure:"use_private_ip" yaml:"use_private_ip,omitempty"`
}

// GlobalSettings holds seeding defaults and limits.
type GlobalSettings struct {
	DefaultCount  int    `mapstructure:"default_count" yaml:"default_count"`
	MaxCount      int    `mapstructure:"max_count" yaml:"max_count"`
	SampleLimit   int    `mapstructure:"sample_limit" yaml:"sample_limit"`
	DefaultLocale string `mapstructure:"default_locale" yaml:"default_locale"`
}

// TableConfig holds per-table seeding configuration.
type TableConfig struct {
	Count        int                      `mapstructure:"count" yaml:"count,omitempty"`
	Locale       string                   `mapstructure:"locale" yaml:"locale,omitempty"`
	CustomValues map[string][]interface{} `mapstructure:"custom_values" yaml:"custom_values,omitempty"`
}

var globalConfig *Config

// GetConfig returns the global configuration, or a default one when none has
// been set. Connection values are overridden by flags in root.go or by a
// loaded configuration file.
func GetConfig() *Config {
	if globalConfig != nil {
		return globalConfig
	}
	return &Config{
		Database: DatabaseConfig{
			Dialect: "postgres",
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Settings: GlobalSettings{
			DefaultCount:  10,
			MaxCount:      1000,
			SampleLimit:   100,
			DefaultLocale: "en_US",
		},
	}
}

// SetConfig sets the global configuration.
func SetConfig(cfg *Config) {
	globalConfig = cfg
}

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	cfg := GetConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Settings.DefaultCount <= 0 {
		cfg.Settings.DefaultCount = 10
	}
	if cfg.Settings.MaxCount <= 0 {
		cfg.Settings.MaxCount = 1000
	}
	if cfg.Settings.SampleLimit <= 0 {
		cfg.Settings.SampleLimit = 100
	}
	if cfg.Settings.DefaultLocale == "" {
		cfg.Settings.DefaultLocale = "en_US"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the table sections against the seeding limits.
func (c *Config) Validate() error {
	if c.Database.Dialect == "" {
		return fmt.Errorf("database configuration must contain 'dialect'")
	}
	if !IsSupportedLocale(c.Settings.DefaultLocale) {
		return fmt.Errorf("unsupported default locale %q", c.Settings.DefaultLocale)
	}

	for tableName, tableCfg := range c.Tables {
		if err := validateTableConfig(tableName, tableCfg, c.Settings.MaxCount); err != nil {
			return err
		}
	}
	return nil
}

func validateTableConfig(tableName string, cfg TableConfig, maxCount int) error {
	if cfg.Count < 0 {
		return fmt.Errorf("'count' for table '%s' must be a positive integer", tableName)
	}
	if cfg.Count > maxCount {
		return fmt.Errorf("'count' for table '%s' cannot exceed %d", tableName, maxCount)
	}
	if cfg.Locale != "" && !IsSupportedLocale(cfg.Locale) {
		return fmt.Errorf("unsupported locale '%s' for table '%s'", cfg.Locale, tableName)
	}
	for colName, values := range cfg.CustomValues {
		if len(values) == 0 {
			return fmt.Errorf("custom values for column '%s' in table '%s' cannot be empty", colName, tableName)
		}
	}
	return nil
}

// WriteExample writes an example configuration file to path.
func WriteExample(path string) error {
	example := &Config{
		Database: DatabaseConfig{
			Dialect: "postgres",
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "mydb",
			SSLMode: "disable",
		},
		Settings: GlobalSettings{
			DefaultCount:  10,
			MaxCount:      1000,
			SampleLimit:   100,
			DefaultLocale: "en_US",
		},
		Tables: map[string]TableConfig{
			"users": {
				Count:  50,
				Locale: "en_US",
				CustomValues: map[string][]interface{}{
					"role":   {"admin", "user", "moderator"},
					"status": {"active", "inactive"},
				},
			},
			"products": {
				Count:  100,
				Locale: "en_US",
			},
			"orders": {
				Count:  200,
				Locale: "en_US",
			},
			"order_items": {
				Count:  500,
				Locale: "en_US",
			},
		},
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example configuration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write example configuration: %w", err)
	}
	return nil
}
