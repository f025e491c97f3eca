package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"helictag/internal/analyzer"
	"helictag/internal/config"
	"helictag/internal/musicbrainz"
	"helictag/internal/release"
	"helictag/internal/scanner"
	"helictag/internal/track"
)

// commonFlags are registered on every subcommand's FlagSet, mirroring the
// teacher's top-level flag.String/flag.Bool calls in main.go.
type commonFlags struct {
	configPath *string
	verbose    *bool
}

func registerCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configPath: fs.String("config", "", "path to helictag.toml (default: "+config.DefaultPath()+")"),
		verbose:    fs.Bool("v", false, "enable verbose logging"),
	}
}

func loadConfig(cf *commonFlags) (config.Config, error) {
	path := *cf.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func applyVerbosity(logger *log.Logger, cf *commonFlags) {
	if *cf.verbose {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// releaseWeights converts config.WeightsConfig into release.Weights.
func releaseWeights(cfg config.Config) release.Weights {
	w := cfg.Weights
	return release.Weights{
		ReleaseTitle:         w.Release.ReleaseTitle,
		ReleaseArtist:        w.Release.ReleaseArtist,
		MusicBrainzReleaseID: w.Release.MusicBrainzReleaseID,
		MediaFormat:          w.Release.MediaFormat,
		RecordLabel:          w.Release.RecordLabel,
		CatalogNumber:        w.Release.CatalogNumber,
		Barcode:              w.Release.Barcode,
		TrackAssignment:      w.Release.TrackAssignment,
		Track:                trackWeights(cfg),
	}
}

func trackWeights(cfg config.Config) track.Weights {
	t := cfg.Weights.Track
	return track.Weights{
		TrackTitle:             t.TrackTitle,
		TrackArtist:            t.TrackArtist,
		TrackNumber:            t.TrackNumber,
		TrackLength:            t.TrackLength,
		MusicBrainzRecordingID: t.MusicBrainzRecordingID,
	}
}

// enabledAnalyzerKinds parses the configured analyzer names, skipping and
// logging any that don't match the known vocabulary (config.Validate
// already guards this at load time, but stay defensive for hand-edited
// files loaded with -config).
func enabledAnalyzerKinds(cfg config.Config, logger *log.Logger) []analyzer.Kind {
	var kinds []analyzer.Kind
	for _, name := range cfg.EnabledAnalyzerNames() {
		kind, ok := analyzer.ParseKind(name)
		if !ok {
			logger.Printf("unknown analyzer %q in config, skipping", name)
			continue
		}
		kinds = append(kinds, kind)
	}
	return kinds
}

const userAgent = "helictag/0.1 (+https://github.com/helictag/helictag)"

func newMusicBrainzClient(cfg config.Config, logger *log.Logger) (*musicbrainz.Client, error) {
	cacheDir, err := musicbrainz.DefaultCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache directory: %w", err)
	}
	cache := musicbrainz.NewCache(cacheDir)
	return musicbrainz.NewClient(userAgent, cache, logger), nil
}

func numParallelJobs(cfg config.Config) int {
	return cfg.NumParallelJobs(runtime.NumCPU())
}

// logProgress drains ch until it closes, logging a line per update. Run in
// its own goroutine alongside a scanner.Run pass; it returns on its own once
// the grouper finishes and closes ch.
func logProgress(ch <-chan scanner.Progress, logger *log.Logger) {
	for p := range ch {
		logger.Printf("scanning: %d group(s), %d file(s) discovered", p.GroupsDiscovered, p.FilesDiscovered)
	}
}
