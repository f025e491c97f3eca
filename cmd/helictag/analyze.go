package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"helictag/internal/pathfmt"
	"helictag/internal/scanner"
)

// runAnalyze scans PATH and prints each group's ranked MusicBrainz
// candidates without writing or moving anything, mirroring the teacher's
// main.go dry-run reporting style before it commits any playlist change.
func runAnalyze(args []string, logger *log.Logger) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: helictag analyze [flags] PATH")
		return 2
	}
	root := fs.Arg(0)

	cfg, err := loadConfig(cf)
	if err != nil {
		logger.Printf("load config: %v", err)
		return 1
	}
	applyVerbosity(logger, cf)

	client, err := newMusicBrainzClient(cfg, logger)
	if err != nil {
		logger.Printf("create musicbrainz client: %v", err)
		return 1
	}

	progressChan := make(chan scanner.Progress, 1)
	params := scanner.Params{
		Root:                  root,
		NumParallelJobs:       numParallelJobs(cfg),
		EnabledAnalyzers:      enabledAnalyzerKinds(cfg, logger),
		ReleaseWeights:        releaseWeights(cfg),
		ReleaseCandidateLimit: cfg.Lookup.ReleaseCandidateLimit,
		Logger:                logger,
		Progress:              progressChan,
		ProgressReportEvery:   10,
	}
	go logProgress(progressChan, logger)

	ctx := context.Background()
	groupCount, matchCount := 0, 0
	for result := range scanner.Run(ctx, client, params) {
		groupCount++
		printAnalysis(result)
		if result.Candidates != nil && result.Candidates.Len() > 0 {
			matchCount++
		}
	}
	logger.Printf("scanned %d group(s), %d with at least one candidate", groupCount, matchCount)
	return 0
}

func printAnalysis(result scanner.Result) {
	fmt.Printf("%s (%d file(s))\n", result.Dir, len(result.Collection.Files))
	if result.Candidates == nil || result.Candidates.Len() == 0 {
		fmt.Println("  no candidates found")
		return
	}
	prevDistance := math.Inf(1)
	for i, c := range result.Candidates.All() {
		title, artist := "", ""
		if t := c.Release.ReleaseTitle(); t != nil {
			title = *t
		}
		if a := c.Release.ReleaseArtist(); a != nil {
			artist = *a
		}
		fmt.Printf("  %d. %s - %s (distance %s)\n", i+1, artist, title, pathfmt.FormatMinimalPrecision(prevDistance, c.Distance()))
		prevDistance = c.Distance()
	}
}
