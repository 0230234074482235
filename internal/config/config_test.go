package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func isolateConfigDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("config dir isolation relies on XDG_CONFIG_HOME")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadCreatesDefaults(t *testing.T) {
	dir := isolateConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir == "" {
		t.Fatal("expected default data dir")
	}
	if cfg.ReminderPollSeconds != 5 {
		t.Fatalf("expected default poll of 5s, got %d", cfg.ReminderPollSeconds)
	}

	// First load writes the file for next time.
	if _, err := os.Stat(filepath.Join(dir, "studylog", "config.toml")); err != nil {
		t.Fatalf("expected config file created: %v", err)
	}
}

func TestLoadReadsExisting(t *testing.T) {
	dir := isolateConfigDir(t)

	path := filepath.Join(dir, "studylog", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "data_dir = \"/tmp/studylog-test\"\nreminder_poll_seconds = 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/studylog-test" {
		t.Fatalf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.ReminderPollSeconds != 30 {
		t.Fatalf("expected 30s poll, got %d", cfg.ReminderPollSeconds)
	}
}

func TestLoadClampsBadPoll(t *testing.T) {
	dir := isolateConfigDir(t)

	path := filepath.Join(dir, "studylog", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("reminder_poll_seconds = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReminderPollSeconds != 5 {
		t.Fatalf("expected fallback to 5s, got %d", cfg.ReminderPollSeconds)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandPath("~/studylog"); got != filepath.Join(home, "studylog") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("absolute path must pass through, got %q", got)
	}
}
