// Package config assembles the settings of a run from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/guilherme-santos/calendarbot/internal"
)

var ErrMissingValue = errors.New("missing configuration value")

const (
	PlatformGoogle = "google"
	PlatformICS    = "ics"

	defaultTimeout   = 30 * time.Second
	defaultParseMode = "Markdown"
)

type Calendar struct {
	Platform string `yaml:"platform"`
	// ID is the google calendar id or the ics feed URL.
	ID              string `yaml:"id"`
	Credentials     string `yaml:"credentials,omitempty"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

type Telegram struct {
	Token          string `yaml:"token"`
	ChatID         string `yaml:"chat_id"`
	ParseMode      string `yaml:"parse_mode"`
	DisablePreview bool   `yaml:"disable_preview"`
}

type Config struct {
	Calendar  Calendar           `yaml:"calendar"`
	Telegram  Telegram           `yaml:"telegram"`
	RangeType internal.RangeType `yaml:"range_type"`
	// Timezone is an IANA name; empty means UTC.
	Timezone string        `yaml:"timezone"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		Calendar: Calendar{
			Platform: PlatformGoogle,
		},
		Telegram: Telegram{
			ParseMode: defaultParseMode,
		},
		RangeType: internal.DefaultRangeType,
		Timeout:   defaultTimeout,
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path, when path is not empty, over the defaults
// and then applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CALENDAR_PLATFORM", &c.Calendar.Platform)
	// Each platform reads its calendar id from its own variable.
	switch c.Calendar.Platform {
	case PlatformGoogle:
		str("GOOGLE_CALENDAR_ID", &c.Calendar.ID)
	case PlatformICS:
		str("ICS_URL", &c.Calendar.ID)
	}
	str("GOOGLE_CREDENTIALS", &c.Calendar.Credentials)
	str("GOOGLE_CREDENTIALS_FILE", &c.Calendar.CredentialsFile)
	str("TELEGRAM_API", &c.Telegram.Token)
	str("TELEGRAM_CHAT_ID", &c.Telegram.ChatID)
	str("TIMEZONE", &c.Timezone)
	str("LOG_LEVEL", &c.LogLevel)

	// An empty parse mode is meaningful: it sends plain text.
	if v, ok := lookup("TELEGRAM_PARSE_MODE"); ok {
		c.Telegram.ParseMode = v
	}
	if v, ok := lookup("TELEGRAM_DISABLE_PREVIEW"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TELEGRAM_DISABLE_PREVIEW: %w", err)
		}
		c.Telegram.DisablePreview = b
	}
	if v, ok := lookup("RANGE_TYPE"); ok && v != "" {
		if err := c.RangeType.Set(v); err != nil {
			return fmt.Errorf("RANGE_TYPE: %w", err)
		}
	}
	if v, ok := lookup("REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks everything needed to read the calendar.
func (c *Config) Validate() error {
	var errs []error
	if _, err := internal.ParseRangeType(c.RangeType.String()); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	switch c.Calendar.Platform {
	case PlatformGoogle:
		if c.Calendar.ID == "" {
			errs = append(errs, missing("calendar id", "GOOGLE_CALENDAR_ID"))
		}
		if c.Calendar.Credentials == "" && c.Calendar.CredentialsFile == "" {
			errs = append(errs, missing("google credentials", "GOOGLE_CREDENTIALS"))
		}
	case PlatformICS:
		if c.Calendar.ID == "" {
			errs = append(errs, missing("feed url", "ICS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown calendar platform %q", c.Calendar.Platform))
	}
	return errors.Join(errs...)
}

// ValidateSink checks everything needed to deliver messages.
func (c *Config) ValidateSink() error {
	var errs []error
	if c.Telegram.Token == "" {
		errs = append(errs, missing("bot token", "TELEGRAM_API"))
	}
	if c.Telegram.ChatID == "" {
		errs = append(errs, missing("chat id", "TELEGRAM_CHAT_ID"))
	}
	return errors.Join(errs...)
}

// CalendarAuth returns the provider credentials, reading CredentialsFile when
// no inline credentials are set.
func (c *Config) CalendarAuth() (string, error) {
	if c.Calendar.Platform != PlatformGoogle {
		return "", nil
	}
	if c.Calendar.Credentials != "" {
		return c.Calendar.Credentials, nil
	}
	data, err := os.ReadFile(c.Calendar.CredentialsFile)
	if err != nil {
		return "", fmt.Errorf("reading credentials file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Location is where ranges are computed and times rendered. It is nil when no
// timezone is configured, ranges then use UTC and times keep the provider
// offsets.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func missing(what, env string) error {
	return fmt.Errorf("%w: %s (set %s)", ErrMissingValue, what, env)
}
