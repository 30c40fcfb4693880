package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	pkgconfig "github.com/weiawesome/wes-io-live/pkg/config"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/scheduler"
	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sfid"
)

const (
	// MaxProfileCount caps how many ids a single profile may request.
	MaxProfileCount = 1_000_000

	// DefaultWorkers is the enumeration worker count when none is configured.
	DefaultWorkers = 50
)

type Config struct {
	Enum     EnumConfig
	Output   OutputConfig
	Parse    ParseConfig
	Log      LogConfig
	Profiles []Profile
}

type EnumConfig struct {
	Workers          int           `mapstructure:"workers"`
	QueueSize        int           `mapstructure:"queue_size"`
	ProgressInterval time.Duration `mapstructure:"progress_interval"`
}

type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	Stem string `mapstructure:"stem"`
}

type ParseConfig struct {
	StrictChecksum bool `mapstructure:"strict_checksum"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Profile is a named enumeration preset.
type Profile struct {
	Name      string `mapstructure:"name"`
	BaseID    string `mapstructure:"base_id"`
	Count     int    `mapstructure:"count"`
	Direction string `mapstructure:"direction"` // up or down
	To18      bool   `mapstructure:"to18"`
	Outfile   string `mapstructure:"outfile"`
}

// flagKeys maps command-line flags onto config keys so flags win over the
// file and the environment.
var flagKeys = map[string]string{
	"threads":    "enum.workers",
	"queue-size": "enum.queue_size",
	"output-dir": "output.dir",
	"strict":     "parse.strict_checksum",
	"log-level":  "log.level",
	"log-pretty": "log.pretty",
}

// Load reads sfid.yaml (or file, when set), SFID_* environment variables and
// any recognised flags in fs that the user set.
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v, err := pkgconfig.Load(pkgconfig.Options{
		File:      file,
		Paths:     []string{"./config", "."},
		Name:      "sfid",
		EnvPrefix: "SFID",
	})
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("enum.workers", DefaultWorkers)
	v.SetDefault("enum.queue_size", scheduler.DefaultQueueSize)
	v.SetDefault("enum.progress_interval", "2s")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.stem", "sfidenum")
	v.SetDefault("parse.strict_checksum", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", false)

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the enumeration settings and every profile.
func (c *Config) Validate() error {
	if c.Enum.Workers < 1 {
		return fmt.Errorf("enum.workers must be at least 1, got %d", c.Enum.Workers)
	}
	if c.Enum.QueueSize < 1 {
		return fmt.Errorf("enum.queue_size must be at least 1, got %d", c.Enum.QueueSize)
	}
	seen := make(map[string]bool, len(c.Profiles))
	for i, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profiles[%d]: %w", i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("profiles[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// ErrProfileNotFound is returned by Profile for an unknown name.
var ErrProfileNotFound = errors.New("profile not found")

// Profile returns the profile called name.
func (c *Config) Profile(name string) (Profile, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}

// Validate applies the preset rules: a name, a count in 1..MaxProfileCount,
// a known direction and a parseable base id.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if p.Count <= 0 {
		return fmt.Errorf("profile %s: count must be positive", p.Name)
	}
	if p.Count > MaxProfileCount {
		return fmt.Errorf("profile %s: count cannot exceed %d", p.Name, MaxProfileCount)
	}
	switch p.Direction {
	case "", "up", "down":
	default:
		return fmt.Errorf("profile %s: direction must be up or down, got %q", p.Name, p.Direction)
	}
	if strings.TrimSpace(p.BaseID) == "" {
		return fmt.Errorf("profile %s: base_id is required", p.Name)
	}
	if _, err := sfid.Parse(p.BaseID); err != nil {
		return fmt.Errorf("profile %s: base_id: %w", p.Name, err)
	}
	return nil
}

// Steps converts the profile's count and direction to a signed step count.
func (p Profile) Steps() int64 {
	if p.Direction == "down" {
		return -int64(p.Count)
	}
	return int64(p.Count)
}
