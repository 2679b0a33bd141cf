// Package vaultconfig holds operational configuration for the vault
// engine: knobs that change where things run, never how the wire
// format or cryptographic parameters work. Argon2id costs, Shamir M/N,
// and AES-GCM sizes stay compile-time constants in cryptoengine/shamir
// and are never exposed here.
package vaultconfig

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved set of operational settings.
type Config struct {
	// HostChunkDir overrides the OS-default host share directory.
	// Empty means use the platform default.
	HostChunkDir string
	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string
	// LogFormat is either "json" or "text".
	LogFormat string
}

// defaults mirror the zero-configuration behavior: platform default
// host chunk dir, info-level JSON logging.
func defaults() Config {
	return Config{
		HostChunkDir: "",
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

// Load builds a Config from environment variables (prefixed URSAFE_)
// and, if present, a config file named ursafe.yaml/.json/.toml on the
// given search paths. Missing config file is not an error; missing
// environment variables fall back to defaults().
func Load(configPaths ...string) (Config, error) {
	v := viper.New()
	d := defaults()

	v.SetDefault("host_chunk_dir", d.HostChunkDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	v.SetEnvPrefix("URSAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("ursafe")
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		HostChunkDir: v.GetString("host_chunk_dir"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
	}, nil
}
