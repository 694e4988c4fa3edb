package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings shared by stargaze and stargaze-proxy.
type Config struct {
	APIURL        string
	APIKey        string
	Timeout       time.Duration
	RangeDays     int
	ExcerptLength int
	LogFile       string
	Proxy         ProxyConfig
}

// ProxyConfig configures stargaze-proxy.
type ProxyConfig struct {
	Bind     string
	Upstream string
}

const (
	defaultConfigPath    = "~/.config/stargaze/config.toml"
	defaultAPIURL        = "https://api.nasa.gov/planetary/apod"
	defaultTimeout       = 10 * time.Second
	defaultRangeDays     = 9
	defaultExcerptLength = 180
	defaultLogFile       = "~/.local/share/stargaze/stargaze.log"
	defaultProxyBind     = "127.0.0.1:8787"

	// DemoKey is NASA's public, heavily rate-limited key.
	DemoKey = "DEMO_KEY"

	envAPIKey = "NASA_API_KEY"
	envAPIURL = "STARGAZE_API_URL"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:        defaultAPIURL,
		Timeout:       defaultTimeout,
		RangeDays:     defaultRangeDays,
		ExcerptLength: defaultExcerptLength,
		LogFile:       mustExpand(defaultLogFile),
		Proxy:         ProxyConfig{Bind: defaultProxyBind, Upstream: defaultAPIURL},
	}
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are named. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load parses the config at path, falling back to defaults when it is
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL        string `toml:"api_url"`
		APIKey        string `toml:"api_key"`
		Timeout       string `toml:"timeout"`
		RangeDays     int    `toml:"range_days"`
		ExcerptLength int    `toml:"excerpt_length"`
		LogFile       string `toml:"log_file"`
		Proxy         struct {
			Bind     string `toml:"bind"`
			Upstream string `toml:"upstream"`
		} `toml:"proxy"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timeout: %w", err)
		}
		if d > 0 {
			cfg.Timeout = d
		}
	}
	if raw.RangeDays > 0 {
		cfg.RangeDays = raw.RangeDays
	}
	if raw.ExcerptLength > 0 {
		cfg.ExcerptLength = raw.ExcerptLength
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Proxy.Bind); v != "" {
		cfg.Proxy.Bind = v
	}
	if v := strings.TrimSpace(raw.Proxy.Upstream); v != "" {
		cfg.Proxy.Upstream = v
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
}

// ClientKey is the key the TUI sends. Without a configured key it falls
// back to DemoKey only when talking to NASA directly; any other api_url is
// assumed to be a proxy holding its own key.
func (c Config) ClientKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if strings.TrimRight(c.APIURL, "/") == defaultAPIURL {
		return DemoKey
	}
	return ""
}

// UpstreamKey is the key the proxy attaches to upstream requests.
func (c Config) UpstreamKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return DemoKey
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
