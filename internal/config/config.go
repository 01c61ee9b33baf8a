// Package config loads the YAML configuration of hooksctl.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/hooks/codec"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

var backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendPostgres, BackendRedis, BackendMongo}

type Config struct {
	Store StoreConfig `yaml:"store"`
	Fetch FetchConfig `yaml:"fetch"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`

	// directory of the file backend, database file of the sqlite one
	Path string `yaml:"path"`
	// postgres DSN or mongo URI
	DSN string `yaml:"dsn"`
	// redis address
	Addr string `yaml:"addr"`
	// mongo database
	Database string `yaml:"database"`
	// redis key prefix, sql table or mongo collection
	Prefix string `yaml:"prefix"`

	Codec   string        `yaml:"codec"`
	Timeout time.Duration `yaml:"timeout"`

	// queue writes to remote backends on a background goroutine
	WriteBehind bool `yaml:"write_behind"`
}

type FetchConfig struct {
	LogErrors bool          `yaml:"log_errors"`
	Detailed  bool          `yaml:"detailed"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend:  BackendMemory,
			Database: "hooks",
			Codec:    "json",
			Timeout:  5 * time.Second,
		},
		Fetch: FetchConfig{
			LogErrors: true,
			Timeout:   30 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("%w: fetch.timeout must not be negative", ErrInvalid)
	}

	return nil
}

func (c StoreConfig) Validate() error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Backend)
	}

	if _, err := codec.ByName(c.Codec); err != nil {
		return fmt.Errorf("%w: store.codec: %v", ErrInvalid, err)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: store.timeout must not be negative", ErrInvalid)
	}

	var missing string
	switch c.Backend {
	case BackendFile, BackendSQLite:
		if c.Path == "" {
			missing = "store.path"
		}
	case BackendPostgres:
		if c.DSN == "" {
			missing = "store.dsn"
		}
	case BackendMongo:
		if c.DSN == "" {
			missing = "store.dsn"
		} else if c.Database == "" {
			missing = "store.database"
		}
	case BackendRedis:
		if c.Addr == "" {
			missing = "store.addr"
		}
	}
	if missing != "" {
		return fmt.Errorf("%w: %s is required by the %s backend", ErrInvalid, missing, c.Backend)
	}

	return nil
}
