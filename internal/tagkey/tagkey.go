// Package tagkey defines the finite, stable vocabulary of tag fields
// helictag reads and writes, and maps each key to the concrete frame or tag
// name of every supported container format (spec.md §3, §4.11).
package tagkey

// Key names one entry in the container-agnostic tag vocabulary. Keys are
// comparable and usable as map keys so Performer(instrument) can be
// constructed dynamically.
type Key struct {
	name       string
	instrument string // only set for Performer(instrument) keys
}

func plain(name string) Key { return Key{name: name} }

// Performer returns the parameterized performer-by-instrument key, e.g.
// Performer("guitar").
func Performer(instrument string) Key {
	return Key{name: "performer", instrument: instrument}
}

// Instrument returns the instrument this key was parameterized with, or ""
// for non-performer keys.
func (k Key) Instrument() string { return k.instrument }

// String returns a stable, human-readable identifier for the key.
func (k Key) String() string {
	if k.name == "performer" {
		return "performer:" + k.instrument
	}
	return k.name
}

// Track-level keys.
var (
	TrackTitle             = plain("track_title")
	TrackArtist             = plain("track_artist")
	TrackArtistSort        = plain("track_artist_sort")
	TrackNumber            = plain("track_number")
	TrackTotal             = plain("track_total")
	TrackLength             = plain("track_length")
	TrackGenre             = plain("track_genre")
	TrackComposer          = plain("track_composer")
	TrackBPM               = plain("track_bpm")
	TrackKey               = plain("track_key")
	TrackISRC              = plain("track_isrc")
	TrackLyrics            = plain("track_lyrics")
	TrackComment           = plain("track_comment")
	TrackCompilation       = plain("track_compilation")
	MusicBrainzRecordingID = plain("musicbrainz_recording_id")
	MusicBrainzWorkID      = plain("musicbrainz_work_id")
	MusicBrainzTrackID     = plain("musicbrainz_track_id")
	AcoustIDFingerprint    = plain("acoustid_fingerprint")
	AcoustIDID             = plain("acoustid_id")
	ReplayGainTrackGain    = plain("replaygain_track_gain")
	ReplayGainTrackPeak    = plain("replaygain_track_peak")
)

// Medium-level keys.
var (
	DiscNumber = plain("disc_number")
	DiscTotal  = plain("disc_total")
	MediaFormat = plain("media_format")
)

// Release-level keys.
var (
	AlbumTitle              = plain("album_title")
	AlbumArtist             = plain("album_artist")
	AlbumArtistSort         = plain("album_artist_sort")
	RecordLabel             = plain("record_label")
	CatalogNumber           = plain("catalog_number")
	Barcode                 = plain("barcode")
	ReleaseDate             = plain("release_date")
	OriginalReleaseDate     = plain("original_release_date")
	Copyright               = plain("copyright")
	Script                  = plain("script")
	Language                = plain("language")
	ArtistsCredit           = plain("artists_credit")
	MusicBrainzReleaseID    = plain("musicbrainz_release_id")
	MusicBrainzReleaseGroupID = plain("musicbrainz_release_group_id")
	MusicBrainzArtistID     = plain("musicbrainz_artist_id")
	ReplayGainAlbumGain     = plain("replaygain_album_gain")
	ReplayGainAlbumPeak     = plain("replaygain_album_peak")
)

// Performers is the special multi-valued key: clearing it removes every
// Performer(instrument) entry at once (spec.md §4.11).
var Performers = plain("performers")

// AllSingleValued lists every non-parameterized key, for round-trip tests
// and for the Vorbis/ID3 mapping tables below.
var AllSingleValued = []Key{
	TrackTitle, TrackArtist, TrackArtistSort, TrackNumber, TrackTotal, TrackLength,
	TrackGenre, TrackComposer, TrackBPM, TrackKey, TrackISRC, TrackLyrics, TrackComment,
	TrackCompilation, MusicBrainzRecordingID, MusicBrainzWorkID, MusicBrainzTrackID,
	AcoustIDFingerprint, AcoustIDID, ReplayGainTrackGain, ReplayGainTrackPeak,
	DiscNumber, DiscTotal, MediaFormat,
	AlbumTitle, AlbumArtist, AlbumArtistSort, RecordLabel, CatalogNumber, Barcode,
	ReleaseDate, OriginalReleaseDate, Copyright, Script, Language, ArtistsCredit,
	MusicBrainzReleaseID, MusicBrainzReleaseGroupID, MusicBrainzArtistID,
	ReplayGainAlbumGain, ReplayGainAlbumPeak,
}

// Performer involvement/involvee pair, the value shape of the Performers
// multi-valued key (spec.md §3).
type PerformerCredit struct {
	Involvement string
	Involvee    string
}
