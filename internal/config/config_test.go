package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LIBRARY_DIR", "MAX_UPLOAD_BYTES", "DOCUMENT_TTL", "LIBRARY_WATCH"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port %q, got %q", "8090", cfg.Port)
	}
	if cfg.LibraryDir != "./data" {
		t.Errorf("expected library dir %q, got %q", "./data", cfg.LibraryDir)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.DocumentTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %s", cfg.DocumentTTL)
	}
	if !cfg.LibraryWatch {
		t.Error("expected library watch enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LIBRARY_CACHE_SIZE", "-3")
	t.Setenv("DOCUMENT_TTL", "90s")
	t.Setenv("LIBRARY_WATCH", "false")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.LibraryCacheSize != 64 {
		t.Errorf("expected invalid cache size to fall back to 64, got %d", cfg.LibraryCacheSize)
	}
	if cfg.DocumentTTL != 90*time.Second {
		t.Errorf("expected 90s, got %s", cfg.DocumentTTL)
	}
	if cfg.LibraryWatch {
		t.Error("expected library watch disabled")
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := Config{Port: "http", LibraryDir: "x"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ANNOVIEW_TEST_VALUE=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANNOVIEW_TEST_VALUE", "")
	os.Unsetenv("ANNOVIEW_TEST_VALUE")
	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("ANNOVIEW_TEST_VALUE"); got != "from-file" {
		t.Errorf("expected %q, got %q", "from-file", got)
	}
}
