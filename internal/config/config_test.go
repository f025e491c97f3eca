package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"helictag/internal/herr"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lookup.ReleaseCandidateLimit != Default().Lookup.ReleaseCandidateLimit {
		t.Errorf("expected default candidate limit, got %d", cfg.Lookup.ReleaseCandidateLimit)
	}
}

func TestLoadMalformedTOMLIsConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
	if !errors.Is(err, herr.ErrConfigInvalid) {
		t.Errorf("expected herr.ErrConfigInvalid, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeCandidateLimit(t *testing.T) {
	cfg := Default()
	cfg.Lookup.ReleaseCandidateLimit = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for release_candidate_limit=0")
	}
	cfg.Lookup.ReleaseCandidateLimit = 101
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for release_candidate_limit=101")
	}
}

func TestValidateRejectsUnknownAnalyzer(t *testing.T) {
	cfg := Default()
	cfg.Analyzers.Enabled = []string{"not_a_real_analyzer"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown analyzer")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helictag.toml")
	cfg := Default()
	cfg.Paths.LibraryPath = "/tmp/library"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Paths.LibraryPath != "/tmp/library" {
		t.Errorf("LibraryPath = %q, want /tmp/library", loaded.Paths.LibraryPath)
	}
}

func TestExpandLibraryPathTilde(t *testing.T) {
	cfg := Default()
	cfg.Paths.LibraryPath = "~/Music"
	home, _ := os.UserHomeDir()

	expanded, err := cfg.ExpandLibraryPath()
	if err != nil {
		t.Fatalf("ExpandLibraryPath: %v", err)
	}
	if expanded != filepath.Join(home, "Music") {
		t.Errorf("expanded = %q, want %q", expanded, filepath.Join(home, "Music"))
	}
}
