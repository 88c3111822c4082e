package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RectSelect/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMaxNodes = 42
	cfg.RecentProjects = []string{"/tmp/p.json"}

	if err := ExportAllData(path, cfg); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
	if backup.Config.DefaultMaxNodes != 42 {
		t.Errorf("expected DefaultMaxNodes=42, got %d", backup.Config.DefaultMaxNodes)
	}
	if backup.Settings.MaxNodes != 42 {
		t.Errorf("expected settings snapshot MaxNodes=42, got %d", backup.Settings.MaxNodes)
	}
	if len(backup.Config.RecentProjects) != 1 {
		t.Errorf("expected 1 recent project, got %d", len(backup.Config.RecentProjects))
	}
}

func TestImportAllDataLegacySettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	// A backup written before the settings snapshot existed
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"default_max_nodes":7,"recent_projects":[]}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Settings.MaxNodes != 7 {
		t.Errorf("expected settings derived from config, got MaxNodes=%d", backup.Settings.MaxNodes)
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for backup without version")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing backup file")
	}
}

func TestImportAllDataNilRecentProjects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_projects":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after import")
	}
}
