package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"helictag/internal/config"
	"helictag/internal/importer"
	"helictag/internal/itunes"
	"helictag/internal/musicbrainz"
	"helictag/internal/pathfmt"
	"helictag/internal/release"
	"helictag/internal/scanner"
	"helictag/internal/tagio"
	"helictag/internal/taggedfile"
	"helictag/internal/track"
	"helictag/internal/ui"
)

// runImport scans PATH and, for each group, prompts the user to accept a
// candidate, enter a MusicBrainz ID manually, or skip, then writes tags
// and moves the files into the configured library layout.
func runImport(args []string, logger *log.Logger) int {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	watch := fs.Bool("watch", false, "after importing, wait for library changes and re-scan rather than exit")
	itunesXML := fs.String("itunes-library", "", "optional iTunes Library XML export used to seed missing titles")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: helictag import [flags] PATH")
		return 2
	}
	root := fs.Arg(0)

	cfg, err := loadConfig(cf)
	if err != nil {
		logger.Printf("load config: %v", err)
		return 1
	}
	applyVerbosity(logger, cf)

	libraryPath, err := cfg.ExpandLibraryPath()
	if err != nil {
		logger.Printf("expand library path: %v", err)
		return 1
	}

	client, err := newMusicBrainzClient(cfg, logger)
	if err != nil {
		logger.Printf("create musicbrainz client: %v", err)
		return 1
	}

	var iTunesLibrary *itunes.Library
	if *itunesXML != "" {
		iTunesLibrary, err = itunes.Load(*itunesXML)
		if err != nil {
			logger.Printf("load iTunes library %s: %v (continuing without it)", *itunesXML, err)
		}
	}

	ctx := context.Background()
	for {
		progressChan := make(chan scanner.Progress, 1)
		params := scanner.Params{
			Root:                  root,
			NumParallelJobs:       numParallelJobs(cfg),
			EnabledAnalyzers:      enabledAnalyzerKinds(cfg, logger),
			ReleaseWeights:        releaseWeights(cfg),
			ReleaseCandidateLimit: cfg.Lookup.ReleaseCandidateLimit,
			Logger:                logger,
			ITunesLibrary:         iTunesLibrary,
			Progress:              progressChan,
			ProgressReportEvery:   10,
		}
		go logProgress(progressChan, logger)

		imported, skipped, failed := runImportPass(ctx, client, params, libraryPath, cfg, logger)
		logger.Printf("imported %d, skipped %d, failed %d", imported, skipped, failed)
		if !*watch {
			if failed > 0 {
				return 1
			}
			return 0
		}
		logger.Printf("watching %s for changes", root)
		if err := scanner.Watch(root, logger); err != nil {
			logger.Printf("watch: %v", err)
			return 1
		}
	}
}

func runImportPass(ctx context.Context, client *musicbrainz.Client, params scanner.Params, libraryPath string, cfg config.Config, logger *log.Logger) (imported, skipped, failed int) {
	for result := range scanner.Run(ctx, client, params) {
		switch importOne(ctx, client, result, libraryPath, cfg, logger) {
		case importOutcomeImported:
			imported++
		case importOutcomeSkipped:
			skipped++
		default:
			failed++
		}
	}
	return imported, skipped, failed
}

type importOutcome int

const (
	importOutcomeFailed importOutcome = iota
	importOutcomeImported
	importOutcomeSkipped
)

// importOne prompts for result's candidates and, on acceptance, applies
// tags and moves every matched file. A manual MBID entry re-looks-up and
// re-prompts against the freshly fetched release (spec.md §4.11).
func importOne(ctx context.Context, client *musicbrainz.Client, result scanner.Result, libraryPath string, cfg config.Config, logger *log.Logger) importOutcome {
	candidates := result.Candidates

	for {
		res, err := ui.Run(result.Dir, candidates)
		if err != nil {
			logger.Printf("%s: candidate picker: %v", result.Dir, err)
			return importOutcomeFailed
		}

		switch res.Action {
		case ui.ActionSkip, ui.ActionNone:
			return importOutcomeSkipped

		case ui.ActionManualMBID:
			r, err := client.LookupByID(ctx, res.ManualMBID)
			if err != nil {
				logger.Printf("%s: lookup %s: %v", result.Dir, res.ManualMBID, err)
				continue
			}
			candidates = manualCandidateCollection(r)
			continue

		case ui.ActionSelect:
			chosen, ok := candidates.SelectIndex(res.Index)
			if !ok {
				logger.Printf("%s: candidate index %d out of range", result.Dir, res.Index)
				return importOutcomeFailed
			}
			if err := commitImport(result, chosen.Release, libraryPath, cfg); err != nil {
				logger.Printf("%s: %v", result.Dir, err)
				return importOutcomeFailed
			}
			return importOutcomeImported
		}
	}
}

// manualCandidateCollection wraps a manually looked-up release as a
// single-entry candidate collection so the picker can re-prompt on it
// with the same acceptance flow as a ranked match.
func manualCandidateCollection(r *musicbrainz.Release) *release.Collection[*musicbrainz.Release] {
	c := release.NewCollection[*musicbrainz.Release]()
	c.Insert(r, release.Similarity{}, release.Weights{})
	return c
}

func commitImport(result scanner.Result, chosen *musicbrainz.Release, libraryPath string, cfg config.Config) error {
	local := make([]track.Like, len(result.Collection.Files))
	for i, f := range result.Collection.Files {
		local[i] = f
	}
	assignment := track.ComputeAssignment(local, chosen.Tracks(), trackWeights(cfg))

	if err := importer.ApplyTags(result.Collection, chosen, assignment); err != nil {
		return fmt.Errorf("apply tags: %w", err)
	}

	template := cfg.Paths.AlbumFormat
	if isVariousArtists(chosen) {
		template = cfg.Paths.CompilationFormat
	}

	leftToRight := assignment.MapLeftToRight()
	for i, f := range result.Collection.Files {
		if _, matched := leftToRight[i]; !matched {
			continue
		}
		if err := tagio.WriteTags(f.Path, f.Tags); err != nil {
			return fmt.Errorf("write tags %s: %w", f.Path, err)
		}
		fields := fieldsFor(f, chosen)
		if _, err := importer.Move(f, libraryPath, template, fields); err != nil {
			return fmt.Errorf("move %s: %w", f.Path, err)
		}
	}
	return nil
}

func fieldsFor(f *taggedfile.TaggedFile, chosen *musicbrainz.Release) pathfmt.Fields {
	fields := pathfmt.Fields{TrackNumber: f.TrackNumberInt()}
	if t := f.TrackTitle(); t != nil {
		fields.TrackTitle = *t
	}
	if a := f.TrackArtist(); a != nil {
		fields.TrackArtist = *a
	}
	if t := chosen.ReleaseTitle(); t != nil {
		fields.AlbumTitle = *t
	}
	if a := chosen.ReleaseArtist(); a != nil {
		fields.AlbumArtist = *a
	}
	return fields
}

func isVariousArtists(r *musicbrainz.Release) bool {
	a := r.ReleaseArtist()
	return a != nil && release.IsVAArtist(*a)
}
