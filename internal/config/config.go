// Package config provides configuration loading and validation for the
// dashboard CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultSessionCookie is the cookie the backend stores its session token in.
const DefaultSessionCookie = "access_token"

// Duration is a time.Duration that reads "30s"-style strings or a number of
// seconds from JSON.
type Duration struct {
	time.Duration
}

// UnmarshalJSON parses a Go duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = parsed
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	d.Duration = time.Duration(seconds * float64(time.Second))
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from flags, the environment
// or defaults.
type Config struct {
	// Backend
	BackendURL    string `json:"backend_url,omitempty" validate:"required,url"` // Origin of the review backend
	SessionToken  string `json:"session_token,omitempty"`                       // Value of the session cookie, if already known
	SessionCookie string `json:"session_cookie,omitempty"`                      // Name of the session cookie

	// Timing
	RequestTimeout  Duration `json:"request_timeout,omitempty"`   // Per-request timeout, 0 means none
	PollInterval    Duration `json:"poll_interval,omitempty"`     // First delay between job status polls
	PollMaxInterval Duration `json:"poll_max_interval,omitempty"` // Upper bound on the poll delay
	PollMaxAttempts int      `json:"poll_max_attempts,omitempty" validate:"gte=0"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Log every request
}

// Defaults returns the values used for anything left unset.
func Defaults() Config {
	return Config{
		BackendURL:      "http://localhost:8000",
		SessionCookie:   DefaultSessionCookie,
		RequestTimeout:  Duration{30 * time.Second},
		PollInterval:    Duration{2 * time.Second},
		PollMaxInterval: Duration{30 * time.Second},
		PollMaxAttempts: 60,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills fields that are still empty from environment variables:
// BACKEND_URL, SESSION_TOKEN, SESSION_COOKIE, REQUEST_TIMEOUT, POLL_INTERVAL,
// POLL_MAX_INTERVAL and POLL_MAX_ATTEMPTS.
func (c *Config) ApplyEnv(lookup func(string) string) error {
	if lookup == nil {
		lookup = os.Getenv
	}

	if c.BackendURL == "" {
		c.BackendURL = lookup("BACKEND_URL")
	}
	if c.SessionToken == "" {
		c.SessionToken = lookup("SESSION_TOKEN")
	}
	if c.SessionCookie == "" {
		c.SessionCookie = lookup("SESSION_COOKIE")
	}

	durations := []struct {
		key string
		dst *Duration
	}{
		{"REQUEST_TIMEOUT", &c.RequestTimeout},
		{"POLL_INTERVAL", &c.PollInterval},
		{"POLL_MAX_INTERVAL", &c.PollMaxInterval},
	}
	for _, d := range durations {
		if d.dst.Duration != 0 {
			continue
		}
		raw := lookup(d.key)
		if raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", d.key, err)
		}
		d.dst.Duration = parsed
	}

	if c.PollMaxAttempts == 0 {
		if raw := lookup("POLL_MAX_ATTEMPTS"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid POLL_MAX_ATTEMPTS: %v", err)
			}
			c.PollMaxAttempts = n
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.SessionToken == "" {
		result.SessionToken = defaults.SessionToken
	}
	if result.SessionCookie == "" {
		result.SessionCookie = defaults.SessionCookie
	}
	if result.RequestTimeout.Duration == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.PollInterval.Duration == 0 {
		result.PollInterval = defaults.PollInterval
	}
	if result.PollMaxInterval.Duration == 0 {
		result.PollMaxInterval = defaults.PollMaxInterval
	}
	if result.PollMaxAttempts == 0 {
		result.PollMaxAttempts = defaults.PollMaxAttempts
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config error: 'backend_url' must be an absolute http(s) URL, got %q", c.BackendURL)
	}

	if c.RequestTimeout.Duration < 0 {
		return fmt.Errorf("config error: 'request_timeout' must be non-negative")
	}
	if c.PollInterval.Duration < 0 || c.PollMaxInterval.Duration < 0 {
		return fmt.Errorf("config error: poll intervals must be non-negative")
	}
	if c.PollMaxInterval.Duration > 0 && c.PollInterval.Duration > c.PollMaxInterval.Duration {
		return fmt.Errorf("config error: 'poll_interval' exceeds 'poll_max_interval'")
	}
	if strings.ContainsAny(c.SessionCookie, " ;=") {
		return fmt.Errorf("config error: invalid 'session_cookie' name %q", c.SessionCookie)
	}

	return nil
}

// BaseURL returns the backend origin without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.BackendURL, "/")
}
