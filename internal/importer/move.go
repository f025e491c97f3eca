package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"helictag/internal/pathfmt"
	"helictag/internal/taggedfile"
)

// Move renders f's destination path from template and moves f to it,
// creating any missing parent directories. Rename is tried first; if it
// fails (commonly EXDEV, a cross-filesystem move), Move falls back to a
// copy into a temp file in the destination directory, fsync, rename over
// it, then removes the source (spec.md §4.11: "a partially written
// destination file must never replace the source until the write is
// known-durable").
func Move(f *taggedfile.TaggedFile, libraryPath, template string, fields pathfmt.Fields) (string, error) {
	dest := pathfmt.Render(libraryPath, template, fields, f.Extension())

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("importer: mkdir %s: %w", filepath.Dir(dest), err)
	}

	if err := os.Rename(f.Path, dest); err == nil {
		f.Path = dest
		return dest, nil
	}

	if err := copyThenRemove(f.Path, dest); err != nil {
		return "", fmt.Errorf("importer: move %s to %s: %w", f.Path, dest, err)
	}
	f.Path = dest
	return dest, nil
}

// copyThenRemove copies src into a temp file beside dest, fsyncs it,
// renames it atomically onto dest, and only then removes src — the same
// temp-file-plus-rename idiom internal/tagio uses for tag writes.
func copyThenRemove(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".helictag-move-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return err
	}
	return os.Remove(src)
}
