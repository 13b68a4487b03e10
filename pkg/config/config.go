// Package config loads the optional relviz configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/relviz/config.toml
// (~/.config/relviz/config.toml) unless a path is given:
//
//	styles = ["~/styles/team.style"]
//	default_style = true
//	strict = false
//	format = "svg"
//
//	[cache]
//	backend = "redis"              # "file" (default), "redis" or "none"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
// Command-line flags override every value.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/relviz/pkg/errors"
)

const appName = "relviz"

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatDOT, FormatSVG, FormatJSON}

var backends = []string{BackendFile, BackendRedis, BackendNone}

// Config is the decoded configuration file.
type Config struct {
	Styles       []string    `toml:"styles"`
	DefaultStyle bool        `toml:"default_style"`
	Strict       bool        `toml:"strict"`
	Format       string      `toml:"format"`
	Cache        CacheConfig `toml:"cache"`
}

// CacheConfig selects and tunes the artifact cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
	Dir      string        `toml:"dir"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		DefaultStyle: true,
		Format:       FormatDOT,
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     7 * 24 * time.Hour,
		},
	}
}

// Load reads the file at path over [Defaults]. With an empty path the
// default location is used, and a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config")
	}
	return Parse(path, data, cfg)
}

// Parse decodes TOML data over base and validates the result. Unknown
// keys are rejected so that typos do not pass silently.
func Parse(name string, data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}

	for i, s := range cfg.Styles {
		cfg.Styles[i] = expandHome(s)
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks enumerated values and backend requirements.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want %s)", c.Format, strings.Join(Formats, ", "))
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_url")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "negative cache ttl %s", c.Cache.TTL)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the file cache directory, honouring XDG_CACHE_HOME.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
