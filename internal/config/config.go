package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"go.yaml.in/yaml/v4"
)

const (
	configEnv          = "HABITDASH_CONFIG"
	defaultConfigPath  = "~/.config/habitdash/config.yaml"
	defaultAPIBaseURL  = "http://localhost:8000/api/v1"
	defaultStatePath   = "~/.local/state/habitdash/state.db"
	defaultLogFile     = "~/.local/state/habitdash/habitdash.log"
	defaultListenAddr  = ":8000"
	defaultServerDB    = "habitdash-server.db"
	defaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	// Zero means no client-side timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StatePath      string        `yaml:"state_path"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	Server         ServerConfig  `yaml:"server"`
	Nudge          NudgeConfig   `yaml:"nudge"`
}

type ServerConfig struct {
	ListenAddr   string `yaml:"listen_addr"`
	DBPath       string `yaml:"db_path"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
}

type NudgeConfig struct {
	ResendAPIKey string  `yaml:"resend_api_key"`
	Email        string  `yaml:"email"`
	From         string  `yaml:"from"`
	Threshold    float64 `yaml:"threshold"`
}

func Default() *Config {
	return &Config{
		APIBaseURL:     defaultAPIBaseURL,
		StatePath:      defaultStatePath,
		LogFile:        defaultLogFile,
		LogLevel:       "info",
		Server: ServerConfig{
			ListenAddr:  defaultListenAddr,
			DBPath:      defaultServerDB,
			GeminiModel: defaultGeminiModel,
		},
		Nudge: NudgeConfig{
			From:      "onboarding@resend.dev",
			Threshold: 0.5,
		},
	}
}

// Load reads the YAML config file and applies environment overrides. A path
// given through HABITDASH_CONFIG must exist; the default path is optional.
func Load() (*Config, error) {
	cfg := Default()

	path, explicit := os.LookupEnv(configEnv)
	if !explicit {
		path = defaultConfigPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.APIBaseURL = getenv("HABITDASH_API_BASE", c.APIBaseURL)
	c.StatePath = getenv("HABITDASH_STATE_PATH", c.StatePath)
	c.LogFile = getenv("HABITDASH_LOG_FILE", c.LogFile)
	c.LogLevel = getenv("HABITDASH_LOG_LEVEL", c.LogLevel)
	c.Server.ListenAddr = getenv("HABITDASH_LISTEN_ADDR", c.Server.ListenAddr)
	c.Server.DBPath = getenv("HABITDASH_DB_PATH", c.Server.DBPath)
	c.Server.GeminiAPIKey = getenv("HABITDASH_GEMINI_API_KEY", c.Server.GeminiAPIKey)
	c.Server.GeminiModel = getenv("HABITDASH_GEMINI_MODEL", c.Server.GeminiModel)
	c.Nudge.ResendAPIKey = getenv("HABITDASH_RESEND_API_KEY", c.Nudge.ResendAPIKey)
	c.Nudge.Email = getenv("HABITDASH_NOTIFY_EMAIL", c.Nudge.Email)

	if v := os.Getenv("HABITDASH_NUDGE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("HABITDASH_NUDGE_THRESHOLD must be a number: %w", err)
		}
		c.Nudge.Threshold = f
	}
	if v := os.Getenv("HABITDASH_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HABITDASH_REQUEST_TIMEOUT must be a duration: %w", err)
		}
		c.RequestTimeout = d
	}
	return nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.StatePath, &c.LogFile, &c.Server.DBPath} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %s: %w", *p, err)
		}
		*p = filepath.Clean(expanded)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
