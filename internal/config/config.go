package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aquilahq/aquila/internal/schedule"
	"github.com/joho/godotenv"
)

// Config holds all application settings. Values come from environment
// variables with a .env file as a convenience layer; unset keys fall
// back to defaults.
type Config struct {
	// Aquila backend API.
	APIURL     string
	APIToken   string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool

	// Google Calendar target for the commit step. Empty means the
	// user's primary calendar.
	CalendarID string

	// Working-hours window for slot generation.
	DayStartMin int
	DayEndMin   int
	SlotMin     int
}

// Default returns the configuration used when nothing is set: local
// backend, 09:00–17:00 window, 30-minute slots.
func Default() Config {
	return Config{
		APIURL:      "http://localhost:8000",
		TimeoutMs:   10000,
		MaxRetries:  1,
		DayStartMin: 9 * 60,
		DayEndMin:   17 * 60,
		SlotMin:     30,
	}
}

// Load reads configuration from the environment, after loading a .env
// file if one is present in the working directory.
func Load() (Config, error) {
	// Missing .env is not an error; plain env vars still apply.
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("AQUILA_API_URL"); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("AQUILA_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("AQUILA_CALENDAR_ID"); v != "" {
		cfg.CalendarID = v
	}
	if v := os.Getenv("AQUILA_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("AQUILA_API_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("AQUILA_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	var err error
	if cfg.DayStartMin, err = clockEnv("AQUILA_DAY_START", cfg.DayStartMin); err != nil {
		return cfg, err
	}
	if cfg.DayEndMin, err = clockEnv("AQUILA_DAY_END", cfg.DayEndMin); err != nil {
		return cfg, err
	}
	if v := os.Getenv("AQUILA_SLOT_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("AQUILA_SLOT_MIN: %q is not a positive minute count", v)
		}
		cfg.SlotMin = n
	}

	if err := cfg.Window().Validate(); err != nil {
		return cfg, fmt.Errorf("working-hours window: %w", err)
	}
	return cfg, nil
}

// Window returns the configured working-hours window.
func (c Config) Window() schedule.Window {
	return schedule.Window{StartMin: c.DayStartMin, EndMin: c.DayEndMin, SlotMin: c.SlotMin}
}

// clockEnv parses an HH:MM environment value into minutes since
// midnight, keeping the fallback when unset.
func clockEnv(name string, fallback int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return fallback, nil
	}
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%s: %q is not HH:MM", name, v)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("%s: %q is not HH:MM", name, v)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%s: %q is not HH:MM", name, v)
	}
	return hour*60 + minute, nil
}
