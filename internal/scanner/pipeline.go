// Package scanner implements the concurrent scan/analyze/lookup pipeline
// of spec.md §4.9: a directory walker/grouper, an analyzer worker pool, a
// per-album reassembler, and a MusicBrainz matcher, connected by bounded
// FIFO channels.
package scanner

import (
	"context"
	"log"
	"strconv"
	"time"

	"helictag/internal/analyzer"
	"helictag/internal/audio"
	"helictag/internal/itunes"
	"helictag/internal/musicbrainz"
	"helictag/internal/release"
	"helictag/internal/tagio"
	"helictag/internal/tagkey"
	"helictag/internal/taggedfile"
)

// Channel buffer sizes from spec.md §4.9: "reassembler and result channel
// ~20, group cardinality ~5".
const (
	analyzerInputBuffer  = 20
	analyzerOutputBuffer = 20
	cardinalityBuffer    = 5
	resultBuffer         = 20
)

// Params configures one pipeline run.
type Params struct {
	Root                  string
	NumParallelJobs       int
	EnabledAnalyzers      []analyzer.Kind
	ReleaseWeights        release.Weights
	ReleaseCandidateLimit int
	Logger                *log.Logger

	// ITunesLibrary, if set, pre-seeds TrackTitle/TrackArtist/TrackNumber
	// for files that carry no such tag of their own, from an iTunes
	// Library XML export (spec.md's consensus-seeding supplement).
	ITunesLibrary *itunes.Library

	// Progress, if non-nil, receives a throttled stream of scan-progress
	// updates as the grouper discovers groups; it is closed once the
	// grouper finishes. ProgressReportEvery sets the throttle (report
	// once every N groups discovered); 0 disables reporting even if a
	// channel is set.
	Progress            chan<- Progress
	ProgressReportEvery int
}

// Result pairs a scanned album with its ranked MusicBrainz candidates
// (spec.md §4.9 step 4).
type Result struct {
	Collection *taggedfile.Collection
	Candidates *release.Collection[*musicbrainz.Release]
	Dir        string
}

type groupFile struct {
	groupID int
	file    *taggedfile.TaggedFile
}

type groupCardinality struct {
	groupID int
	count   int
	dir     string
}

// groupResult pairs a reassembled collection with the directory it was
// scanned from, so callers can report/re-derive per-album file paths.
type groupResult struct {
	collection *taggedfile.Collection
	dir        string
}

// Run starts the pipeline and returns a channel of Results, closed once
// every stage has drained (spec.md §4.9 "Cancellation"). Results leave in
// completion order, not directory order (spec.md §4.9 "Ordering
// guarantee").
func Run(ctx context.Context, client *musicbrainz.Client, p Params) <-chan Result {
	fileChan := make(chan groupFile, analyzerInputBuffer)
	cardinalityChan := make(chan groupCardinality, cardinalityBuffer)
	analyzedChan := make(chan groupFile, analyzerOutputBuffer)
	resultChan := make(chan Result, resultBuffer)

	go runGrouper(p.Root, p.ITunesLibrary, newProgressTracker(p.Progress, p.ProgressReportEvery), fileChan, cardinalityChan)
	go runAnalyzerPool(p.NumParallelJobs, p.EnabledAnalyzers, fileChan, analyzedChan)
	collectionChan := make(chan groupResult, resultBuffer)
	go runReassembler(cardinalityChan, analyzedChan, collectionChan)
	go runMatcher(ctx, client, p, collectionChan, resultChan)

	return resultChan
}

// runGrouper walks the tree, parses tags for every supported file in a
// non-empty directory, assigns a monotonic group id, and emits per-file
// and per-group-cardinality records (spec.md §4.9 step 1). When library
// is non-nil, files missing a title/number tag of their own are seeded
// from the matching iTunes Library hint before grouping.
func runGrouper(root string, library *itunes.Library, progress *progressTracker, fileChan chan<- groupFile, cardinalityChan chan<- groupCardinality) {
	defer close(fileChan)
	defer close(cardinalityChan)
	defer progress.close()

	groupID, filesSeen := 0, 0
	for _, entry := range Walk(root) {
		if entry.Err != nil || len(entry.Files) == 0 {
			continue
		}

		var files []*taggedfile.TaggedFile
		for _, path := range entry.Files {
			tags, err := tagio.Open(path)
			if err != nil {
				continue
			}
			f := &taggedfile.TaggedFile{Path: path, Tags: tags}
			seedFromITunes(f, library)
			files = append(files, f)
		}
		if len(files) == 0 {
			continue
		}

		gid := groupID
		groupID++
		filesSeen += len(files)
		progress.report(groupID, filesSeen)

		cardinalityChan <- groupCardinality{groupID: gid, count: len(files), dir: entry.Dir}
		for _, f := range files {
			fileChan <- groupFile{groupID: gid, file: f}
		}
	}
}

// seedFromITunes fills TrackTitle/TrackArtist/TrackNumber from an iTunes
// Library hint when the file's own tags don't already carry a value,
// pre-seeding a usable identity before MusicBrainz lookup for files
// ripped without embedded tags.
func seedFromITunes(f *taggedfile.TaggedFile, library *itunes.Library) {
	if library == nil {
		return
	}
	hint, ok := library.HintFor(f.Path)
	if !ok {
		return
	}
	if f.TagTitle() == nil && hint.TrackTitle != "" {
		f.Tags.Set(tagkey.TrackTitle, hint.TrackTitle)
	}
	if f.TrackArtist() == nil && hint.Artist != "" {
		f.Tags.Set(tagkey.TrackArtist, hint.Artist)
	}
	if f.TrackNumber() == nil && hint.TrackNumber > 0 {
		f.Tags.Set(tagkey.TrackNumber, strconv.Itoa(hint.TrackNumber))
	}
}

// runAnalyzerPool runs the compound analyzer over every file, attaching
// results (success or per-analyzer failure) rather than dropping the file
// on analysis error (spec.md §4.9 step 2, §7).
func runAnalyzerPool(numWorkers int, enabled []analyzer.Kind, in <-chan groupFile, out chan<- groupFile) {
	pool := newWorkerPool(numWorkers, analyzerOutputBuffer)
	for gf := range in {
		gf := gf
		pool.submit(func() {
			gf.file.Analysis = analyzeFile(gf.file.Path, enabled)
			out <- gf
		})
	}
	pool.wait()
	pool.close()
	close(out)
}

// analyzeFile opens the audio stream and runs the compound analyzer over
// it. A demux/decode failure is fatal to analysis as a whole (spec.md §7:
// "per-file fatal, no analysis results") — it yields an AnalysisResult
// whose every slot failed with the same underlying error, rather than
// dropping the file from its group.
func analyzeFile(path string, enabled []analyzer.Kind) *taggedfile.AnalysisResult {
	reader, err := audio.Open(path)
	if err != nil {
		result := &taggedfile.AnalysisResult{}
		result.TrackLength = taggedfile.Failed[time.Duration](err)
		result.Fingerprint = taggedfile.Failed[taggedfile.FingerprintResult](err)
		result.Loudness = taggedfile.Failed[taggedfile.LoudnessResult](err)
		result.BPM = taggedfile.Failed[float64](err)
		return result
	}
	defer reader.Close()
	return analyzer.Run(enabled, reader)
}

// runReassembler maintains group_id -> expected_count / accumulated files,
// emitting a Collection only once a group reaches its expected count
// (spec.md §4.9 step 3, §5: "emitted only once, only when every file in
// its group has completed analysis").
func runReassembler(cardinalityChan <-chan groupCardinality, analyzedChan <-chan groupFile, out chan<- groupResult) {
	defer close(out)

	expected := map[int]int{}
	dirs := map[int]string{}
	accumulated := map[int][]*taggedfile.TaggedFile{}

	cardinalityOpen, analyzedOpen := true, true
	for cardinalityOpen || analyzedOpen {
		select {
		case c, ok := <-cardinalityChan:
			if !ok {
				cardinalityOpen = false
				cardinalityChan = nil
				continue
			}
			expected[c.groupID] = c.count
			dirs[c.groupID] = c.dir
			if _, seen := accumulated[c.groupID]; !seen {
				accumulated[c.groupID] = nil
			}
			flushIfComplete(c.groupID, expected, dirs, accumulated, out)

		case gf, ok := <-analyzedChan:
			if !ok {
				analyzedOpen = false
				analyzedChan = nil
				continue
			}
			accumulated[gf.groupID] = append(accumulated[gf.groupID], gf.file)
			flushIfComplete(gf.groupID, expected, dirs, accumulated, out)
		}
	}
}

func flushIfComplete(groupID int, expected map[int]int, dirs map[int]string, accumulated map[int][]*taggedfile.TaggedFile, out chan<- groupResult) {
	exp, hasExpected := expected[groupID]
	if !hasExpected {
		return
	}
	files := accumulated[groupID]
	if len(files) != exp {
		return
	}
	out <- groupResult{collection: taggedfile.New(files), dir: dirs[groupID]}
	delete(expected, groupID)
	delete(dirs, groupID)
	delete(accumulated, groupID)
}

// runMatcher looks each reassembled collection up against MusicBrainz and
// ranks candidates (spec.md §4.9 step 4).
func runMatcher(ctx context.Context, client *musicbrainz.Client, p Params, in <-chan groupResult, out chan<- Result) {
	defer close(out)
	for gr := range in {
		candidates, err := client.SearchBySimilarity(ctx, gr.collection, p.ReleaseWeights, p.ReleaseCandidateLimit)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Printf("scanner: musicbrainz lookup failed: %v", err)
			}
			candidates = release.NewCollection[*musicbrainz.Release]()
		}
		out <- Result{Collection: gr.collection, Candidates: candidates, Dir: gr.dir}
	}
}
