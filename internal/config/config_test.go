package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", SettingsFile, err)
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("expected storage %q, got %q", StorageFile, cfg.Storage)
	}
	if cfg.Notifier != NotifierLocal {
		t.Errorf("expected notifier %q, got %q", NotifierLocal, cfg.Notifier)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("expected time.Local, got %v (err %v)", loc, err)
	}
}

func TestNew_ReadsSettings(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, "storage: sqlite\nnotifier: gcal\ncalendar: Reminders\ntimezone: UTC\n")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != StorageSQLite || cfg.Notifier != NotifierGoogleCalendar || cfg.Calendar != "Reminders" {
		t.Errorf("unexpected settings: %+v", cfg.Settings)
	}
	if !cfg.UsesGoogleCalendar() {
		t.Error("expected gcal notifier")
	}
	loc, _ := cfg.Location()
	if loc != time.UTC {
		t.Errorf("expected UTC, got %v", loc)
	}
}

func TestNew_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "storage: [", "invalid config.yaml"},
		{"bad storage", "storage: redis\n", "invalid storage"},
		{"bad notifier", "notifier: pager\n", "invalid notifier"},
		{"bad timezone", "timezone: Mars/Olympus\n", "invalid timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSettings(t, dir, tt.content)
			_, err := New(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("expected %q, got %q", filepath.Join("/tmp/xdg", AppName), got)
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/cfg"}
	if cfg.TasksPath() != "/cfg/tasks.json" {
		t.Errorf("unexpected tasks path %q", cfg.TasksPath())
	}
	if cfg.DatabasePath() != "/cfg/timemgr.db" {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.TokenPath() != "/cfg/token.json" {
		t.Errorf("unexpected token path %q", cfg.TokenPath())
	}
}
