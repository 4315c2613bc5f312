// Package config loads whiteboard settings from .whiteboard files and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Transport names accepted by the `transport` key.
const (
	TransportNone    = "none"
	TransportJournal = "journal"
	TransportRedis   = "redis"
)

// Config is the resolved configuration.
type Config struct {
	File      string
	Transport string
	Journal   JournalConfig
	Redis     RedisConfig
	Log       string
	Debug     bool
}

type JournalConfig struct {
	Path string
}

type RedisConfig struct {
	Addr    string
	Channel string
}

// Load reads .whiteboard.{yaml,json,toml} from WHITEBOARD_CONFIG_PATH and the
// working directory. WHITEBOARD_* environment variables override the file; a
// missing file is fine.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("file", "")
	v.SetDefault("transport", TransportNone)
	v.SetDefault("journal.path", "~/.whiteboard/journal")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.channel", "whiteboard")
	v.SetDefault("log", "")
	v.SetDefault("debug", false)

	v.SetConfigName(".whiteboard") // .yaml is implicit
	v.SetEnvPrefix("WHITEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("WHITEBOARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{
		File:      v.GetString("file"),
		Transport: strings.ToLower(strings.TrimSpace(v.GetString("transport"))),
		Journal:   JournalConfig{Path: v.GetString("journal.path")},
		Redis: RedisConfig{
			Addr:    v.GetString("redis.addr"),
			Channel: v.GetString("redis.channel"),
		},
		Log:   v.GetString("log"),
		Debug: v.GetBool("debug"),
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the transport selection.
func (c *Config) Validate() error {
	switch c.Transport {
	case "", TransportNone, TransportJournal, TransportRedis:
		return nil
	default:
		return fmt.Errorf("config: unknown transport %q", c.Transport)
	}
}

func (c *Config) expand() error {
	for _, p := range []*string{&c.File, &c.Journal.Path, &c.Log} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
