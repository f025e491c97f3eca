package tagkey

// ID3v2Frame describes where a Key lands in an ID3v2 tag: either a standard
// text frame (TALB, TPE1, ...) or an extended TXXX frame keyed by
// description, per spec.md §4.11. Version-dependent frames carry an
// alternate id for ID3v2.4 vs 2.2/2.3.
type ID3v2Frame struct {
	Frame        string // standard frame id, e.g. "TALB"; "" if TXXX-only
	TXXXDesc     string // TXXX description, e.g. "MusicBrainz Album Id"; "" if not TXXX
	V24Frame     string // overrides Frame on ID3v2.4 when non-empty (e.g. TDRC vs TYER/TDAT)
	URLFrame     string // WOAR-style URL frame id, when the value is a URL rather than text
}

// id3v2Frames maps every single-valued Key to its ID3v2 frame location.
// Keys not in this table (e.g. TrackLength, which has no frame here) are
// intentionally unmapped — spec.md §4.11 notes some keys are left out per
// container.
var id3v2Frames = map[Key]ID3v2Frame{
	TrackTitle:   {Frame: "TIT2"},
	TrackArtist:  {Frame: "TPE1"},
	TrackArtistSort: {Frame: "TSOP"},
	TrackNumber:  {Frame: "TRCK"},
	TrackTotal:   {Frame: "TRCK"}, // shares TRCK with TrackNumber; Get returns the whole frame value (e.g. "3/12"), Set replaces it
	TrackGenre:   {Frame: "TCON"},
	TrackComposer: {Frame: "TCOM"},
	TrackBPM:     {Frame: "TBPM"},
	TrackKey:     {Frame: "TKEY"},
	TrackISRC:    {Frame: "TSRC"},
	TrackLyrics:  {Frame: "USLT"},
	TrackComment: {Frame: "COMM"},
	TrackCompilation: {Frame: "TCMP"},

	MusicBrainzRecordingID: {TXXXDesc: "MusicBrainz Track Id"},
	MusicBrainzWorkID:      {TXXXDesc: "MusicBrainz Work Id"},
	MusicBrainzTrackID:     {TXXXDesc: "MusicBrainz Release Track Id"},
	AcoustIDFingerprint:    {TXXXDesc: "Acoustid Fingerprint"},
	AcoustIDID:             {TXXXDesc: "Acoustid Id"},
	ReplayGainTrackGain:    {TXXXDesc: "REPLAYGAIN_TRACK_GAIN"},
	ReplayGainTrackPeak:    {TXXXDesc: "REPLAYGAIN_TRACK_PEAK"},

	DiscNumber:  {Frame: "TPOS"},
	DiscTotal:   {Frame: "TPOS"},
	MediaFormat: {Frame: "TMED"},

	AlbumTitle:      {Frame: "TALB"},
	AlbumArtist:     {Frame: "TPE2"},
	AlbumArtistSort: {Frame: "TSO2"},
	RecordLabel:     {Frame: "TPUB"},
	CatalogNumber:   {TXXXDesc: "CATALOGNUMBER"},
	Barcode:         {TXXXDesc: "BARCODE"},
	ReleaseDate:     {Frame: "TYER", V24Frame: "TDRC"},
	OriginalReleaseDate: {Frame: "TORY", V24Frame: "TDOR"},
	Copyright:       {Frame: "TCOP"},
	Script:          {TXXXDesc: "SCRIPT"},
	Language:        {Frame: "TLAN"},
	ArtistsCredit:   {TXXXDesc: "ARTISTS"},

	MusicBrainzReleaseID:      {TXXXDesc: "MusicBrainz Album Id"},
	MusicBrainzReleaseGroupID: {TXXXDesc: "MusicBrainz Release Group Id"},
	MusicBrainzArtistID:       {TXXXDesc: "MusicBrainz Artist Id"},

	ReplayGainAlbumGain: {TXXXDesc: "REPLAYGAIN_ALBUM_GAIN"},
	ReplayGainAlbumPeak: {TXXXDesc: "REPLAYGAIN_ALBUM_PEAK"},
}

// ID3v2 returns the frame location for key in the given minor version (2, 3,
// or 4), and whether the key is mapped at all.
func ID3v2(key Key, minorVersion int) (ID3v2Frame, bool) {
	f, ok := id3v2Frames[key]
	if !ok {
		return ID3v2Frame{}, false
	}
	if minorVersion == 4 && f.V24Frame != "" {
		f.Frame = f.V24Frame
	}
	return f, true
}

// id3v24OnlyFrames lists ID3v2.4-only standard frames (mood, subtitle) with
// no 2.2/2.3 equivalent (spec.md §4.11: TMOO, TSST).
var id3v24OnlyFrames = map[Key]string{
	plain("mood"):     "TMOO",
	plain("subtitle"): "TSST",
}
