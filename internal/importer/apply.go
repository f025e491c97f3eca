// Package importer writes a chosen MusicBrainz release's fields back onto
// the local files that were matched to it, and moves those files into the
// configured library layout (spec.md §4.11, §6).
package importer

import (
	"fmt"
	"strconv"

	"helictag/internal/analyzer"
	"helictag/internal/musicbrainz"
	"helictag/internal/tagkey"
	"helictag/internal/taggedfile"
	"helictag/internal/track"
)

// ApplyTags copies release- and track-level fields from chosen onto every
// local file the assignment matched to one of its tracks. Medium-level
// fields (disc number, media format) are not written.
// Unmatched local files are left untouched (spec.md §4.11: "a file with no
// assigned candidate track keeps its existing tags").
//
// Analysis-derived fields (ReplayGain, AcoustID fingerprint, BPM) are
// always written from the file's own AnalysisResult rather than from
// chosen — a file's own measurement always outranks metadata pulled from
// the network (spec.md §4.11: "analysis wins over external metadata").
func ApplyTags(collection *taggedfile.Collection, chosen *musicbrainz.Release, assignment track.Assignment) error {
	leftToRight := assignment.MapLeftToRight()
	chosenTracks := chosen.Tracks()
	albumPeak, albumLoudness, albumGain := aggregateAlbumLoudness(collection)

	for i, f := range collection.Files {
		j, matched := leftToRight[i]
		if !matched {
			continue
		}
		remote, ok := chosenTracks[j].(*musicbrainz.Track)
		if !ok {
			return fmt.Errorf("importer: candidate track %d is not a musicbrainz.Track", j)
		}

		applyReleaseFields(f, chosen)
		applyTrackFields(f, remote)
		applyPerformerFields(f, chosen, remote)
		applyAnalysisFields(f, albumPeak, albumLoudness, albumGain)
	}
	return nil
}

func applyReleaseFields(f *taggedfile.TaggedFile, chosen *musicbrainz.Release) {
	f.Tags.Set(tagkey.AlbumTitle, chosen.Title)
	f.Tags.Set(tagkey.AlbumArtist, chosen.ArtistCredit)
	f.Tags.Set(tagkey.MusicBrainzReleaseID, chosen.ID)
	if chosen.Label != "" {
		f.Tags.Set(tagkey.RecordLabel, chosen.Label)
	}
	if chosen.CatalogNum != "" {
		f.Tags.Set(tagkey.CatalogNumber, chosen.CatalogNum)
	}
	if chosen.Barcode != "" {
		f.Tags.Set(tagkey.Barcode, chosen.Barcode)
	}
	if chosen.Date != "" {
		f.Tags.Set(tagkey.ReleaseDate, chosen.Date)
	}
}

func applyTrackFields(f *taggedfile.TaggedFile, remote *musicbrainz.Track) {
	f.Tags.Set(tagkey.TrackTitle, remote.Title)
	if remote.ArtistCredit != "" {
		f.Tags.Set(tagkey.TrackArtist, remote.ArtistCredit)
	}
	if remote.Number != "" {
		f.Tags.Set(tagkey.TrackNumber, remote.Number)
	}
	if remote.RecordingID != "" {
		f.Tags.Set(tagkey.MusicBrainzRecordingID, remote.RecordingID)
	}
}

// applyPerformerFields writes one multi-valued Performer(involvement) entry
// per distinct involvement (spec.md §4.11: "on write, clear any existing
// Performers key, then for each distinct involvement write a multi-valued
// Performer(involvement) entry") — SetPerformers itself clears any existing
// entry before writing, so this always leaves the container in sync with
// chosen/remote, including clearing a stale credit list down to none.
// Release-level credits (e.g. production roles) and the matched track's
// own recording-level credits are merged, since both describe the same
// file once it's tagged.
func applyPerformerFields(f *taggedfile.TaggedFile, chosen *musicbrainz.Release, remote *musicbrainz.Track) {
	credits := make([]tagkey.PerformerCredit, 0, len(chosen.Performers)+len(remote.Performers))
	credits = append(credits, chosen.Performers...)
	credits = append(credits, remote.Performers...)
	f.Tags.SetPerformers(credits)
}

// applyAnalysisFields writes back the file's own fingerprint/BPM plus
// track and album ReplayGain (spec.md §4.7, §4.11).
func applyAnalysisFields(f *taggedfile.TaggedFile, albumPeak, albumLoudness, albumGain float64) {
	if f.Analysis == nil {
		return
	}
	if f.Analysis.Fingerprint.IsOK() {
		f.Tags.Set(tagkey.AcoustIDFingerprint, f.Analysis.Fingerprint.Value.Base64)
	}
	if f.Analysis.BPM.IsOK() {
		f.Tags.Set(tagkey.TrackBPM, strconv.Itoa(int(f.Analysis.BPM.Value+0.5)))
	}
	if f.Analysis.Loudness.IsOK() {
		l := f.Analysis.Loudness.Value
		f.Tags.Set(tagkey.ReplayGainTrackGain, formatGain(l.TrackGain()))
		f.Tags.Set(tagkey.ReplayGainTrackPeak, formatPeak(l.Peak()))
	}
	if albumLoudness != 0 || albumPeak != 0 {
		f.Tags.Set(tagkey.ReplayGainAlbumGain, formatGain(albumGain))
		f.Tags.Set(tagkey.ReplayGainAlbumPeak, formatPeak(albumPeak))
	}
}

func formatGain(db float64) string { return fmt.Sprintf("%.2f dB", db) }
func formatPeak(linear float64) string { return fmt.Sprintf("%.6f", linear) }

// aggregateAlbumLoudness collects every successfully analyzed file's
// loudness into one album-level ReplayGain figure (spec.md §4.7:
// "ReplayGain album gain is computed once per reassembled group, from
// every file that completed EBU R128 analysis").
func aggregateAlbumLoudness(collection *taggedfile.Collection) (peak, loudness, gain float64) {
	var results []taggedfile.LoudnessResult
	for _, f := range collection.Files {
		if f.Analysis != nil && f.Analysis.Loudness.IsOK() {
			results = append(results, f.Analysis.Loudness.Value)
		}
	}
	if len(results) == 0 {
		return 0, 0, 0
	}
	return analyzer.AggregateAlbumLoudness(results)
}
