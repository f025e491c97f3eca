package itunes

import "testing"

func TestLocationToPathDecodesFileURL(t *testing.T) {
	got, ok := locationToPath("file:///Users/me/Music/track.mp3")
	if !ok {
		t.Fatal("expected ok=true for a file:// URL")
	}
	if got != "/Users/me/Music/track.mp3" {
		t.Errorf("got %q", got)
	}
}

func TestLocationToPathDecodesSpaces(t *testing.T) {
	got, ok := locationToPath("file:///Users/me/Music/My%20Album/track.mp3")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != "/Users/me/Music/My Album/track.mp3" {
		t.Errorf("got %q", got)
	}
}

func TestLocationToPathRejectsNonFileScheme(t *testing.T) {
	if _, ok := locationToPath("http://example.com/track.mp3"); ok {
		t.Error("expected ok=false for a non-file:// scheme")
	}
}

func TestHintForMissingPath(t *testing.T) {
	l := &Library{hints: map[string]Hint{}}
	if _, ok := l.HintFor("/nowhere.mp3"); ok {
		t.Error("expected ok=false for a path with no hint")
	}
}

func TestHintForReturnsStoredHint(t *testing.T) {
	l := &Library{hints: map[string]Hint{
		"/music/track.mp3": {TrackTitle: "Song", Artist: "Artist", TrackNumber: 3},
	}}
	h, ok := l.HintFor("/music/track.mp3")
	if !ok || h.TrackTitle != "Song" || h.TrackNumber != 3 {
		t.Errorf("HintFor = %+v, ok=%v", h, ok)
	}
}
