package importer

import (
	"os"
	"path/filepath"
	"testing"

	"helictag/internal/pathfmt"
	"helictag/internal/taggedfile"
)

func TestMoveRendersPathAndRenamesFile(t *testing.T) {
	srcDir := t.TempDir()
	libraryDir := t.TempDir()

	src := filepath.Join(srcDir, "original.flac")
	if err := os.WriteFile(src, []byte("audio-bytes"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := &taggedfile.TaggedFile{Path: src}
	fields := pathfmt.Fields{
		AlbumArtist: "Artist",
		AlbumTitle:  "Album",
		TrackNumber: 1,
		TrackTitle:  "Song",
	}

	dest, err := Move(f, libraryDir, "{album_artist}/{album_title}/{track_number} {track_title}", fields)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("destination file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source file should no longer exist, stat err = %v", err)
	}
	if f.Path != dest {
		t.Errorf("f.Path = %q, want %q", f.Path, dest)
	}
}

func TestMoveCreatesMissingParentDirectories(t *testing.T) {
	srcDir := t.TempDir()
	libraryDir := t.TempDir()
	src := filepath.Join(srcDir, "track.flac")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f := &taggedfile.TaggedFile{Path: src}
	fields := pathfmt.Fields{AlbumArtist: "A", AlbumTitle: "B", TrackNumber: 1, TrackTitle: "C"}

	dest, err := Move(f, libraryDir, "{album_artist}/{album_title}/{track_number} {track_title}", fields)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if filepath.Dir(dest) == libraryDir {
		t.Errorf("expected nested destination directory, got %q", dest)
	}
}
