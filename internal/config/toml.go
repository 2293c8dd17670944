// Package config loads the optional ffstats TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil so
// callers can tell them apart from zero values.
type FileConfig struct {
	Fetch   FetchConfig   `toml:"fetch"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Analyze AnalyzeConfig `toml:"analyze"`
}

// FetchConfig maps [fetch].
type FetchConfig struct {
	Timeout   *Duration `toml:"timeout"`
	UserAgent *string   `toml:"user_agent"`
}

// CacheConfig maps [cache].
type CacheConfig struct {
	RedisURL *string   `toml:"redis_url"`
	TTL      *Duration `toml:"ttl"`
}

// ServerConfig maps [server].
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// AnalyzeConfig maps [analyze].
type AnalyzeConfig struct {
	Model *string `toml:"model"`
}

// Duration is a time.Duration written as a string such as "30s" or "10m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// String returns *p or def.
func String(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// Dur returns p's duration or def.
func Dur(p *Duration, def time.Duration) time.Duration {
	if p == nil {
		return def
	}
	return p.Duration
}
