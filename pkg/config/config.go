package config

// Package config provides a reusable loader for the host's configuration
// files and environment variables, in the same viper-based shape the
// teacher repository's config package uses.

import (
	"fmt"

	"github.com/spf13/viper"

	"soroban-host/pkg/utils"
)

// Config is the unified configuration for a hostctl/hostserver process.
// It mirrors the structure of the YAML files under cmd/config.
type Config struct {
	Ledger struct {
		ProtocolVersion uint32 `mapstructure:"protocol_version" json:"protocol_version"`
		NetworkID       string `mapstructure:"network_id" json:"network_id"`
	} `mapstructure:"ledger" json:"ledger"`

	Budget struct {
		CPULimit uint64 `mapstructure:"cpu_limit" json:"cpu_limit"`
		MemLimit uint64 `mapstructure:"mem_limit" json:"mem_limit"`
	} `mapstructure:"budget" json:"budget"`

	Storage struct {
		DBPath string `mapstructure:"db_path" json:"db_path"`
	} `mapstructure:"storage" json:"storage"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`

	Server struct {
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr"`
	} `mapstructure:"server" json:"server"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is
// loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the HOST_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("HOST_ENV", ""))
}
