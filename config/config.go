// Package config loads the YAML configuration shared by the inflammation
// commands.
//
// Load(path) reads the file, applies defaults (5m cache TTL, zero-max rows
// normalised to zero, server on :8080), expands ~ in data_dir, then validates
// enums and required fields. A missing file at DefaultPath is not an error;
// all defaults are used instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/mtraver/inflammation/inflammation"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultCacheTTL = 5 * time.Minute
	DefaultZeroMax  = "zero"
	DefaultAddr     = ":8080"
	DefaultTokenEnv = "INFLUXDB_TOKEN"

	dateLayout = "2006-01-02"
)

var (
	// dotDir is joined with the user's home directory.
	dotDir = ".inflammation"

	DefaultPath = filepath.Join("~", dotDir, "config.yaml")
)

type Config struct {
	// DataDir holds the <dataset>.csv files served and published by name.
	DataDir string `yaml:"data_dir"`

	// CacheTTL is how long a loaded table is reused before re-reading it.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	Normalise NormaliseConfig `yaml:"normalise"`
	Server    ServerConfig    `yaml:"server"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Publish   PublishConfig   `yaml:"publish"`
}

type NormaliseConfig struct {
	// ZeroMax is one of: zero | error.
	ZeroMax string `yaml:"zero_max"`
}

// Policy returns the parsed ZeroMax setting.
func (n NormaliseConfig) Policy() inflammation.ZeroMaxPolicy {
	p, err := inflammation.ParseZeroMaxPolicy(n.ZeroMax)
	if err != nil {
		return inflammation.ZeroMaxAsZero
	}
	return p
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type InfluxDBConfig struct {
	URL    string `yaml:"url"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`

	// TokenEnv is the name of the environment variable that holds the token.
	TokenEnv string `yaml:"token_env"`

	// StartDate is the date of day 0, formatted as 2006-01-02.
	StartDate string `yaml:"start_date"`
}

// Token returns the API token resolved from the environment.
func (c InfluxDBConfig) Token() string {
	if c.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.TokenEnv)
}

// Start returns the parsed StartDate, or the Unix epoch if it's unset.
func (c InfluxDBConfig) Start() time.Time {
	t, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

type PublishConfig struct {
	// CronSpec schedules repeated publication. Empty means publish once.
	CronSpec string `yaml:"cronspec"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: expand %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", expanded, err)
	}

	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	applyDefaults(cfg)

	if cfg.DataDir != "" {
		dir, err := homedir.Expand(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("config: data_dir: %w", err)
		}
		cfg.DataDir = dir
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Normalise.ZeroMax == "" {
		cfg.Normalise.ZeroMax = DefaultZeroMax
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.InfluxDB.TokenEnv == "" {
		cfg.InfluxDB.TokenEnv = DefaultTokenEnv
	}
}

func validate(cfg *Config) error {
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("config: cache_ttl must not be negative, got %v", cfg.CacheTTL)
	}
	if _, err := inflammation.ParseZeroMaxPolicy(cfg.Normalise.ZeroMax); err != nil {
		return fmt.Errorf("config: normalise.zero_max: %w", err)
	}
	if cfg.InfluxDB.StartDate != "" {
		if _, err := time.Parse(dateLayout, cfg.InfluxDB.StartDate); err != nil {
			return fmt.Errorf("config: influxdb.start_date: %w", err)
		}
	}
	return nil
}

// RequireDataDir reports an error if no data directory is configured.
func (c *Config) RequireDataDir() error {
	if c.DataDir == "" {
		return errors.New("config: data_dir must be set")
	}
	return nil
}

// RequireInfluxDB reports an error if InfluxDB publication isn't configured.
func (c *Config) RequireInfluxDB() error {
	switch {
	case c.InfluxDB.URL == "":
		return errors.New("config: influxdb.url must be set")
	case c.InfluxDB.Org == "":
		return errors.New("config: influxdb.org must be set")
	case c.InfluxDB.Bucket == "":
		return errors.New("config: influxdb.bucket must be set")
	}
	return nil
}
