package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PassiveMode       bool
	ForwardMouseMove  bool
	ClipboardFallback bool
	EnableFileLogging bool
	DoubleClickTime   time.Duration

	// comma-separated program name lists; Include takes precedence over
	// Exclude when both are set
	IncludePrograms          []string
	ExcludePrograms          []string
	ClipboardExcludePrograms []string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or executable directory
	envPaths := []string{".env"}

	// If running as executable, also try the executable's directory
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		envPaths = append(envPaths, filepath.Join(execDir, ".env"))
	}

	// Try to load .env file (ignore errors if file doesn't exist)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	cfg := &Config{
		PassiveMode:              envBool("SELECTION_PASSIVE_MODE"),
		ForwardMouseMove:         envBool("SELECTION_MOUSE_MOVE"),
		ClipboardFallback:        envBool("SELECTION_CLIPBOARD"),
		EnableFileLogging:        envBool("SELECTION_FILE_LOGGING"),
		DoubleClickTime:          envDuration("SELECTION_DOUBLE_CLICK_MS"),
		IncludePrograms:          envList("SELECTION_INCLUDE_PROGRAMS"),
		ExcludePrograms:          envList("SELECTION_EXCLUDE_PROGRAMS"),
		ClipboardExcludePrograms: envList("SELECTION_CLIPBOARD_EXCLUDE_PROGRAMS"),
	}

	return cfg, nil
}

func envBool(key string) bool {
	return strings.ToLower(os.Getenv(key)) == "true"
}

// envDuration reads a millisecond count; zero means unset.
func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}

// envList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
