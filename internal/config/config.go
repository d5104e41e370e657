// Package config loads the digest's run configuration: secrets and
// coordinates from the environment (optionally seeded from a .env file) and
// non-secret tuning from digest.yml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingEnv is returned when required environment variables are unset.
var ErrMissingEnv = errors.New("config: missing required environment variables")

// Environment variable names.
const (
	EnvTelegramBotToken   = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID     = "TELEGRAM_CHAT_ID"
	EnvClaudeAPIKey       = "CLAUDE_API_KEY"
	EnvNWSLatitude        = "NWS_LATITUDE"
	EnvNWSLongitude       = "NWS_LONGITUDE"
	EnvZAIAPIKey          = "Z_AI_API_KEY"
	EnvZAIWebSearchAPIKey = "Z_AI_WEB_SEARCH_API_KEY"
)

// Settings holds non-secret settings loaded from digest.yml.
type Settings struct {
	ChunkLimit      int           `yaml:"chunkLimit,omitempty"`
	ClaudeModel     string        `yaml:"claudeModel,omitempty"`
	ZAIModel        string        `yaml:"zaiModel,omitempty"`
	ZAIBaseURL      string        `yaml:"zaiBaseURL,omitempty"`
	ZAISearchURL    string        `yaml:"zaiSearchURL,omitempty"`
	NWSBaseURL      string        `yaml:"nwsBaseURL,omitempty"`
	NWSUserAgent    string        `yaml:"nwsUserAgent,omitempty"`
	CalendarCommand []string      `yaml:"calendarCommand,omitempty"`
	HTTPTimeout     time.Duration `yaml:"httpTimeout,omitempty"`
	SendInterval    time.Duration `yaml:"sendInterval,omitempty"`
}

// Config is the complete run configuration.
type Config struct {
	Settings

	TelegramBotToken   string
	TelegramChatID     string
	ClaudeAPIKey       string
	Latitude           float64
	Longitude          float64
	ZAIAPIKey          string
	ZAIWebSearchAPIKey string
}

// Defaults returns the settings used when digest.yml omits a field.
func Defaults() Settings {
	return Settings{
		ChunkLimit:      4096,
		ClaudeModel:     "claude-sonnet-4-5",
		ZAIModel:        "glm-4.7",
		ZAIBaseURL:      "https://api.z.ai/api/coding/paas/v4",
		ZAISearchURL:    "https://api.z.ai/api/paas/v4",
		NWSBaseURL:      "https://api.weather.gov",
		NWSUserAgent:    "daily-digest (github.com/dusk-indust/digest)",
		CalendarCommand: []string{"gog", "calendar", "events", "--start", "today", "--end", "tomorrow", "--json"},
		HTTPTimeout:     30 * time.Second,
		SendInterval:    time.Second,
	}
}

// LoadSettings attempts to read digest.yml or digest.yaml from dir and
// overlays it on Defaults. A missing file is not an error.
func LoadSettings(dir string) (Settings, error) {
	s := Defaults()
	for _, name := range []string{"digest.yml", "digest.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		break
	}
	return s, nil
}

// Options controls Load.
type Options struct {
	// Dir is searched for .env and digest.yml. Defaults to ".".
	Dir string

	// DryRun relaxes the Telegram requirements since nothing is sent.
	DryRun bool

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Load reads .env (if present) into the process environment without
// overriding variables that are already set, then builds a Config.
func Load(opts Options) (*Config, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Getenv == nil {
		envPath := filepath.Join(opts.Dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", envPath, err)
			}
		}
		opts.Getenv = os.Getenv
	}

	settings, err := LoadSettings(opts.Dir)
	if err != nil {
		return nil, err
	}
	return FromEnv(settings, opts.Getenv, opts.DryRun)
}

// FromEnv builds a Config from settings and environment lookups. Every
// missing required variable is reported in a single error.
func FromEnv(settings Settings, getenv func(string) string, dryRun bool) (*Config, error) {
	required := []string{EnvClaudeAPIKey, EnvNWSLatitude, EnvNWSLongitude}
	if !dryRun {
		required = append([]string{EnvTelegramBotToken, EnvTelegramChatID}, required...)
	}

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	lat, err := parseCoordinate(EnvNWSLatitude, getenv(EnvNWSLatitude), 90)
	if err != nil {
		return nil, err
	}
	lon, err := parseCoordinate(EnvNWSLongitude, getenv(EnvNWSLongitude), 180)
	if err != nil {
		return nil, err
	}

	return &Config{
		Settings:           settings,
		TelegramBotToken:   getenv(EnvTelegramBotToken),
		TelegramChatID:     getenv(EnvTelegramChatID),
		ClaudeAPIKey:       getenv(EnvClaudeAPIKey),
		Latitude:           lat,
		Longitude:          lon,
		ZAIAPIKey:          getenv(EnvZAIAPIKey),
		ZAIWebSearchAPIKey: getenv(EnvZAIWebSearchAPIKey),
	}, nil
}

func parseCoordinate(key, raw string, bound float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if v < -bound || v > bound {
		return 0, fmt.Errorf("config: %s: %v out of range [-%v, %v]", key, v, bound, bound)
	}
	return v, nil
}
