// Package config loads runtime configuration for the compiler-core HTTP
// service via viper: environment variables (QREDUCE_ prefix), an optional
// config file, and sane defaults. It existed as an unused dependency in
// go.mod; this package gives it a caller.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config wraps a viper instance with the handful of keys the server reads.
type Config struct {
	v *viper.Viper
}

// Options seeds Config with defaults before the environment and an
// optional file override them.
type Options struct {
	// Path is an optional config file path (yaml, json, toml, ...). If
	// empty, only defaults and environment variables apply.
	Path string
}

// Load builds a Config. A missing Path, or a Path pointing at a file that
// doesn't exist, is not an error: defaults and the environment still
// apply.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("qreduce")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("port", 8080)
	v.SetDefault("local_only", false)
	v.SetDefault("default_backend", "qsim")
	v.SetDefault("default_shots", 1000)
	v.SetDefault("default_method", "deterministic_greedy")
	v.SetDefault("cors_allow_origin", "")

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	return &Config{v: v}, nil
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }
