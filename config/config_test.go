package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SELECTION_PASSIVE_MODE", "SELECTION_MOUSE_MOVE", "SELECTION_CLIPBOARD",
		"SELECTION_FILE_LOGGING", "SELECTION_DOUBLE_CLICK_MS",
		"SELECTION_INCLUDE_PROGRAMS", "SELECTION_EXCLUDE_PROGRAMS",
		"SELECTION_CLIPBOARD_EXCLUDE_PROGRAMS",
	} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PassiveMode || cfg.ForwardMouseMove || cfg.ClipboardFallback || cfg.EnableFileLogging {
		t.Errorf("all toggles must default off: %+v", cfg)
	}
	if cfg.DoubleClickTime != 0 {
		t.Errorf("DoubleClickTime = %v, want 0 (unset)", cfg.DoubleClickTime)
	}
	if cfg.IncludePrograms != nil || cfg.ExcludePrograms != nil {
		t.Errorf("filter lists must default empty")
	}
}

func TestLoadTogglesAndLists(t *testing.T) {
	t.Setenv("SELECTION_PASSIVE_MODE", "TRUE")
	t.Setenv("SELECTION_CLIPBOARD", "true")
	t.Setenv("SELECTION_MOUSE_MOVE", "false")
	t.Setenv("SELECTION_DOUBLE_CLICK_MS", "750")
	t.Setenv("SELECTION_EXCLUDE_PROGRAMS", " keepass.exe, 1password , ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.PassiveMode {
		t.Errorf("PassiveMode should accept TRUE case-insensitively")
	}
	if !cfg.ClipboardFallback || cfg.ForwardMouseMove {
		t.Errorf("toggles wrong: %+v", cfg)
	}
	if cfg.DoubleClickTime != 750*time.Millisecond {
		t.Errorf("DoubleClickTime = %v, want 750ms", cfg.DoubleClickTime)
	}
	want := []string{"keepass.exe", "1password"}
	if len(cfg.ExcludePrograms) != len(want) {
		t.Fatalf("ExcludePrograms = %v, want %v", cfg.ExcludePrograms, want)
	}
	for i := range want {
		if cfg.ExcludePrograms[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, cfg.ExcludePrograms[i], want[i])
		}
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SELECTION_DOUBLE_CLICK_MS", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DoubleClickTime != 0 {
		t.Errorf("invalid value must fall back to unset, got %v", cfg.DoubleClickTime)
	}
}
