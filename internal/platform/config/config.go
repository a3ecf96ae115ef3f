// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEmailDebounce is the quiet period before the email message is recomputed.
const DefaultEmailDebounce = 1000 * time.Millisecond

// DefaultMaxFormsPerOwner caps the forms one user may hold open.
const DefaultMaxFormsPerOwner = 20

// Config holds all server settings.
type Config struct {
	Port             string
	EmailDebounce    time.Duration
	MaxFormsPerOwner int
	Firebase         FirebaseConfig
}

// FirebaseConfig holds the settings used for token verification.
type FirebaseConfig struct {
	ProjectID                    string
	GoogleApplicationCredentials string // path to a service account JSON (optional)
}

// Load reads .env files (when present) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	debounce, err := durationEnv("EMAIL_DEBOUNCE", DefaultEmailDebounce)
	if err != nil {
		return nil, err
	}
	maxForms, err := positiveIntEnv("MAX_FORMS_PER_OWNER", DefaultMaxFormsPerOwner)
	if err != nil {
		return nil, err
	}
	port := getEnv("PORT", "8080")
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", port)
	}

	return &Config{
		Port:             port,
		EmailDebounce:    debounce,
		MaxFormsPerOwner: maxForms,
		Firebase: FirebaseConfig{
			ProjectID:                    os.Getenv("FIREBASE_PROJECT_ID"),
			GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func positiveIntEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, raw)
	}
	return n, nil
}

// durationEnv accepts Go durations ("750ms") and bare integers as milliseconds.
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		if ms <= 0 {
			return 0, fmt.Errorf("invalid %s: must be positive", key)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
