package taggedfile

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"helictag/internal/tagio"
	"helictag/internal/tagkey"
)

// TaggedFile is one on-disk audio file plus its parsed tag container and
// optional analysis results (spec.md §3). Equality and ordering are by
// Path.
type TaggedFile struct {
	Path     string
	Tags     tagio.Container
	Analysis *AnalysisResult
}

// Stem returns the filename without directory or extension, used as a
// display fallback when a file carries no title tag (spec.md §4.4).
func (f *TaggedFile) Stem() string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extension returns the file's extension without the leading dot, lower-cased.
func (f *TaggedFile) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Path), "."))
}

func (f *TaggedFile) getString(key tagkey.Key) *string {
	if f.Tags == nil {
		return nil
	}
	v, ok := f.Tags.Get(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// TrackTitle implements track.Like. It falls back to the file stem when the
// file has no title tag; since track.Detect reads titles through
// TrackTitle, such a file is scored by its stem, not as an absent title.
// TagTitle returns the raw tag value without the fallback.
func (f *TaggedFile) TrackTitle() *string {
	if t := f.getString(tagkey.TrackTitle); t != nil {
		return t
	}
	stem := f.Stem()
	return &stem
}

// TagTitle returns the raw tag title, or nil if absent — used where the
// spec's "option-lifted" semantics must see a true absence rather than the
// stem fallback.
func (f *TaggedFile) TagTitle() *string { return f.getString(tagkey.TrackTitle) }

func (f *TaggedFile) TrackArtist() *string { return f.getString(tagkey.TrackArtist) }
func (f *TaggedFile) TrackNumber() *string { return f.getString(tagkey.TrackNumber) }

func (f *TaggedFile) TrackLength() *time.Duration {
	if f.Analysis != nil && f.Analysis.TrackLength.IsOK() {
		d := f.Analysis.TrackLength.Value
		return &d
	}
	return nil
}

func (f *TaggedFile) MusicBrainzRecordingID() *string {
	return f.getString(tagkey.MusicBrainzRecordingID)
}

// ReleaseField reads a single release-level key's raw tag value for
// consensus computation.
func (f *TaggedFile) ReleaseField(key tagkey.Key) *string { return f.getString(key) }

// DiscNumber and parsing helpers used by consensus/medium views.
func (f *TaggedFile) DiscNumber() *string { return f.getString(tagkey.DiscNumber) }

// TrackNumberInt best-effort parses the numeric prefix of a track number
// string (which may contain letters, e.g. "A1" — spec.md §4.4), for the
// numeric track_number field of the library path template.
func (f *TaggedFile) TrackNumberInt() int {
	s := f.TrackNumber()
	if s == nil {
		return 0
	}
	var digits []rune
	for _, r := range *s {
		if r < '0' || r > '9' {
			break
		}
		digits = append(digits, r)
	}
	n, _ := strconv.Atoi(string(digits))
	return n
}
