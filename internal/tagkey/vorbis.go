package tagkey

// vorbisFields maps every single-valued Key to its uppercase Vorbis comment
// field name (spec.md §4.11). Keys absent from this table (e.g. TrackKey,
// which has no canonical Vorbis field in this system) are intentionally
// unmapped.
var vorbisFields = map[Key]string{
	TrackTitle:      "TITLE",
	TrackArtist:     "ARTIST",
	TrackArtistSort: "ARTISTSORT",
	TrackNumber:     "TRACKNUMBER",
	TrackTotal:      "TRACKTOTAL",
	TrackGenre:      "GENRE",
	TrackComposer:   "COMPOSER",
	TrackBPM:        "BPM",
	TrackISRC:       "ISRC",
	TrackLyrics:     "LYRICS",
	TrackComment:    "COMMENT",
	TrackCompilation: "COMPILATION",

	MusicBrainzRecordingID: "MUSICBRAINZ_TRACKID",
	MusicBrainzWorkID:      "MUSICBRAINZ_WORKID",
	MusicBrainzTrackID:     "MUSICBRAINZ_RELEASETRACKID",
	AcoustIDFingerprint:    "ACOUSTID_FINGERPRINT",
	AcoustIDID:             "ACOUSTID_ID",
	ReplayGainTrackGain:    "REPLAYGAIN_TRACK_GAIN",
	ReplayGainTrackPeak:    "REPLAYGAIN_TRACK_PEAK",

	DiscNumber:  "DISCNUMBER",
	DiscTotal:   "DISCTOTAL",
	MediaFormat: "MEDIA",

	AlbumTitle:      "ALBUM",
	AlbumArtist:     "ALBUMARTIST",
	AlbumArtistSort: "ALBUMARTISTSORT",
	RecordLabel:     "LABEL",
	CatalogNumber:   "CATALOGNUMBER",
	Barcode:         "BARCODE",
	ReleaseDate:     "DATE",
	OriginalReleaseDate: "ORIGINALDATE",
	Copyright:       "COPYRIGHT",
	Script:          "SCRIPT",
	Language:        "LANGUAGE",
	ArtistsCredit:   "ARTISTS",

	MusicBrainzReleaseID:      "MUSICBRAINZ_ALBUMID",
	MusicBrainzReleaseGroupID: "MUSICBRAINZ_RELEASEGROUPID",
	MusicBrainzArtistID:       "MUSICBRAINZ_ALBUMARTISTID",

	ReplayGainAlbumGain: "REPLAYGAIN_ALBUM_GAIN",
	ReplayGainAlbumPeak: "REPLAYGAIN_ALBUM_PEAK",

	// The bare Performers key maps here too, so a generic Clear/Get against
	// it (with no instrument parameter) still reaches the PERFORMER field;
	// Performer(instrument) variants are built by Vorbis() below instead.
	Performers: performerVorbisField,
}

// performerVorbisField is the Vorbis field that holds instrument-tagged
// performer credits; the tagio container stores each value as
// "instrument|name", e.g. "PERFORMER=guitar|John Doe".
const performerVorbisField = "PERFORMER"

// Vorbis returns the Vorbis comment field name for key, and whether it is
// mapped. Gapless-playback-style keys with no Vorbis analogue return false.
func Vorbis(key Key) (string, bool) {
	if key.instrument != "" {
		return performerVorbisField, true
	}
	f, ok := vorbisFields[key]
	return f, ok
}
