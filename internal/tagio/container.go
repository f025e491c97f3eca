// Package tagio implements the container-agnostic tag abstraction of
// spec.md §3/§4.11: reading ID3v2.{2,3,4} and Vorbis/FLAC tags into a
// common Container, and writing fields back into the container's own
// frame/field vocabulary.
//
// Reading is grounded on github.com/dhowden/tag's frame tables and format
// detection. dhowden/tag exposes no writer, so the write path (including
// the ID3v2.2/2.4 -> 2.3 migration of spec.md §4.11) is implemented here
// directly against the frame layout dhowden/tag documents.
package tagio

import (
	"fmt"
	"strings"

	"helictag/internal/herr"
	"helictag/internal/tagkey"
)

// Type identifies the concrete container format backing a Container.
type Type int

const (
	TypeUnknown Type = iota
	TypeID3v22
	TypeID3v23
	TypeID3v24
	TypeVorbis
)

func (t Type) String() string {
	switch t {
	case TypeID3v22:
		return "ID3v2.2"
	case TypeID3v23:
		return "ID3v2.3"
	case TypeID3v24:
		return "ID3v2.4"
	case TypeVorbis:
		return "Vorbis"
	default:
		return "unknown"
	}
}

// Container is the opaque key->value(s) bag spec.md §3 describes: a
// tag_type plus get/set/clear operations over the finite tagkey.Key
// vocabulary, with a special multi-valued Performers entry.
type Container interface {
	Type() Type

	// Get returns the first value stored for key, or ("", false) if unset
	// or unmapped for this container type.
	Get(key tagkey.Key) (string, bool)

	// GetMultiple returns every value stored for key (e.g. multiple
	// Performer(instrument) entries share a field name in some formats).
	GetMultiple(key tagkey.Key) []string

	// Set stores a single value for key, replacing any existing value(s).
	// A no-op (not an error) if key has no mapping in this container type.
	Set(key tagkey.Key, value string)

	// SetMultiple stores several values under key, replacing any existing
	// value(s).
	SetMultiple(key tagkey.Key, values []string)

	// Clear removes any value(s) stored for key.
	Clear(key tagkey.Key)

	// Performers returns the performer credits stored in the container.
	Performers() []tagkey.PerformerCredit

	// SetPerformers clears any existing performer credits and writes the
	// given ones, one multi-valued Performer(instrument) entry per
	// distinct involvement (spec.md §4.11).
	SetPerformers(credits []tagkey.PerformerCredit)

	// Raw exposes the underlying field map for encoding.
	Raw() map[string][]string
}

// Open reads path's tag container by file extension: .mp3 -> ID3v2
// (whichever minor version is present), .flac -> Vorbis comments. Any
// other extension is a fatal herr.ErrUnknownFileType.
func Open(path string) (Container, error) {
	ext := strings.ToLower(extOf(path))
	switch ext {
	case "mp3":
		return readID3v2(path)
	case "flac":
		return readVorbis(path)
	default:
		return nil, fmt.Errorf("tagio: open %s: %w", path, herr.ErrUnknownFileType)
	}
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i+1:]
}

// SupportedExtensions is the extension allowlist from spec.md §6.
var SupportedExtensions = map[string]bool{"mp3": true, "flac": true}

// IsSupported reports whether path's extension is scannable.
func IsSupported(path string) bool {
	return SupportedExtensions[strings.ToLower(extOf(path))]
}
