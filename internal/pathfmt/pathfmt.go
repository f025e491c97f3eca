// Package pathfmt renders the output path for an imported track from a
// template string plus field values (spec.md §4.12 "Path formatter",
// §6 "Path template"), generalized from
// stojg-playlist-sorter/format.go's small pure string-formatting-helper
// style.
package pathfmt

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Fields holds the values a path template may interpolate (spec.md §6).
type Fields struct {
	TrackTitle  string
	TrackArtist string
	TrackNumber int
	TrackCount  int
	AlbumTitle  string
	AlbumArtist string
	DiscNumber  int
	DiscCount   int
}

// placeholderPattern matches "{field_name}" tokens in a template.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// illegalChars is replaced with "_" in every interpolated value: "/" is
// always illegal (it is a path separator), plus the Windows-illegal set,
// applied unconditionally so templates render identically cross-platform
// (spec.md §6).
var illegalChars = regexp.MustCompile(`[/\\:*?"<>|]`)

// controlChars strips C0 control characters from interpolated values.
var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// whitespaceRun collapses any run of whitespace to a single ASCII space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// sanitize applies spec.md §6's per-value rules: strip control characters,
// collapse whitespace, replace platform-illegal characters with "_".
func sanitize(s string) string {
	s = controlChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = illegalChars.ReplaceAllString(s, "_")
	return strings.TrimSpace(s)
}

func fieldValue(name string, f Fields) (string, bool) {
	switch name {
	case "track_title":
		return f.TrackTitle, true
	case "track_artist":
		return f.TrackArtist, true
	case "track_number":
		return fmt.Sprintf("%02d", f.TrackNumber), true
	case "track_count":
		return strconv.Itoa(f.TrackCount), true
	case "album_title":
		return f.AlbumTitle, true
	case "album_artist":
		return f.AlbumArtist, true
	case "disc_number":
		return strconv.Itoa(f.DiscNumber), true
	case "disc_count":
		return strconv.Itoa(f.DiscCount), true
	default:
		return "", false
	}
}

// Render interpolates template with f's values (each sanitized
// independently), joins the result under libraryPath, and appends
// extension (never replacing a dot already inside a rendered title —
// spec.md §6: "the extension is appended, never replacing a dot inside a
// title").
func Render(libraryPath, template string, f Fields, extension string) string {
	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(tok string) string {
		name := tok[1 : len(tok)-1]
		v, ok := fieldValue(name, f)
		if !ok {
			return tok
		}
		return sanitize(v)
	})

	// Each path segment is sanitized for its separator-replacement rule
	// independently, but "/" in the template itself is a directory
	// separator, not an illegal character to escape — split and rejoin so
	// the template's own structure is preserved.
	segments := strings.Split(rendered, "/")
	for i, seg := range segments {
		segments[i] = strings.TrimSpace(seg)
	}
	rel := filepath.Join(segments...)

	ext := strings.TrimPrefix(extension, ".")
	return filepath.Join(libraryPath, rel) + "." + ext
}

// FormatMinimalPrecision returns curr formatted with the minimum number of
// decimal digits that distinguishes it from prev, plus one extra digit of
// clarity — grounded on stojg-playlist-sorter/format.go's
// FormatMinimalPrecision, generalized from telling two fitness scores
// apart to telling two candidates' distance scores apart when a picker
// lists them ranked back to back.
func FormatMinimalPrecision(prev, curr float64) string {
	const maxPrecision = 10

	if math.IsNaN(prev) || math.IsNaN(curr) || math.IsInf(prev, 0) || math.IsInf(curr, 0) || prev == curr {
		return fmt.Sprintf("%.2f", curr)
	}

	for precision := 1; precision <= maxPrecision; precision++ {
		format := fmt.Sprintf("%%.%df", precision)
		if fmt.Sprintf(format, prev) != fmt.Sprintf(format, curr) {
			clarity := precision + 1
			if clarity > maxPrecision {
				clarity = maxPrecision
			}
			return fmt.Sprintf(fmt.Sprintf("%%.%df", clarity), curr)
		}
	}
	return fmt.Sprintf(fmt.Sprintf("%%.%df", maxPrecision), curr)
}
