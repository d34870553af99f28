package cfg

import (
	"os"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// Version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestLoadDefaults(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	t.Setenv("TZ", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil {
		t.Fatal("Expected configuration, got nil")
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.DBPath != "./data/radio.db" {
		t.Errorf("Expected DB path './data/radio.db', got '%s'", cfg.DBPath)
	}
	if cfg.ProgramsDir != "./programs" {
		t.Errorf("Expected programs dir './programs', got '%s'", cfg.ProgramsDir)
	}
	if cfg.AdminPassword != "admin" {
		t.Errorf("Expected admin password 'admin', got '%s'", cfg.AdminPassword)
	}
	if cfg.SchedulerInterval != 300 {
		t.Errorf("Expected scheduler interval 300, got %d", cfg.SchedulerInterval)
	}
	if Get() != cfg {
		t.Error("Get should return the loaded configuration")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"test"}
	defer func() { os.Args = oldArgs }()

	t.Setenv("TZ", "UTC")
	t.Setenv("PORT", "9090")
	t.Setenv("API_ACCESS_KEY", "secret")
	t.Setenv("BACKUP_URL", "https://example.com/backup.json")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if cfg.APIAccessKey != "secret" {
		t.Errorf("Expected API key 'secret', got '%s'", cfg.APIAccessKey)
	}
	if cfg.BackupURL != "https://example.com/backup.json" {
		t.Errorf("Expected backup URL, got '%s'", cfg.BackupURL)
	}
}

func TestSelfURL(t *testing.T) {
	cfg := &Cfg{Port: "8080"}
	if got := cfg.SelfURL(); got != "http://localhost:8080" {
		t.Errorf("Expected localhost URL, got '%s'", got)
	}

	cfg.BaseUrl = "https://radio.example.com"
	if got := cfg.SelfURL(); got != "https://radio.example.com" {
		t.Errorf("Expected base URL, got '%s'", got)
	}
}
