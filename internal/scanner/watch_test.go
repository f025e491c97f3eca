package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReturnsWhenFileIsWritten(t *testing.T) {
	dir := t.TempDir()

	done := make(chan error, 1)
	go func() {
		done <- Watch(dir, nil)
	}()

	// give the watcher a moment to register dir before mutating it.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "new.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after a file was written")
	}
}
