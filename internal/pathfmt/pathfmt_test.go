package pathfmt

import "testing"

func TestRenderSanitizesIllegalCharacters(t *testing.T) {
	f := Fields{
		TrackTitle:  "AC/DC: Back in Black",
		TrackArtist: "AC/DC",
		TrackNumber: 1,
		AlbumTitle:  "Back  in   Black",
		AlbumArtist: "AC/DC",
	}
	got := Render("/music", "{album_artist}/{album_title}/{track_number} {track_title}", f, "mp3")
	want := "/music/AC_DC/Back in Black/01 AC_DC_ Back in Black.mp3"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderAppendsExtensionWithoutReplacingDot(t *testing.T) {
	f := Fields{TrackTitle: "Track 1.5", TrackNumber: 1}
	got := Render("/lib", "{track_title}", f, "flac")
	if got != "/lib/Track 1.5.flac" {
		t.Errorf("Render() = %q, want /lib/Track 1.5.flac", got)
	}
}

func TestRenderStripsControlCharacters(t *testing.T) {
	f := Fields{TrackTitle: "Bad\x00Title\x1f", TrackNumber: 1}
	got := Render("/lib", "{track_title}", f, "mp3")
	if got != "/lib/BadTitle.mp3" {
		t.Errorf("Render() = %q, want /lib/BadTitle.mp3", got)
	}
}
