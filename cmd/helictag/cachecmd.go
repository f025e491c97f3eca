package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"helictag/internal/musicbrainz"
)

// runCache inspects or clears the MusicBrainz disk cache, supplementing
// spec.md with the cache subcommand of original_source/src/cli/cache.rs.
func runCache(args []string, logger *log.Logger) int {
	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	cf := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: helictag cache [flags] <stats|clear>")
		return 2
	}
	applyVerbosity(logger, cf)

	cacheDir, err := musicbrainz.DefaultCacheDir()
	if err != nil {
		logger.Printf("resolve cache directory: %v", err)
		return 1
	}
	cache := musicbrainz.NewCache(cacheDir)

	switch fs.Arg(0) {
	case "stats":
		stats, err := cache.GetStats()
		if err != nil {
			logger.Printf("read cache stats: %v", err)
			return 1
		}
		fmt.Printf("releases: %d (%d bytes)\n", stats.ReleaseCount, stats.ReleaseBytes)
		fmt.Printf("searches: %d (%d bytes)\n", stats.SearchCount, stats.SearchBytes)
		return 0

	case "clear":
		if err := cache.Clear(); err != nil {
			logger.Printf("clear cache: %v", err)
			return 1
		}
		fmt.Println("cache cleared")
		return 0

	default:
		fmt.Fprintf(os.Stderr, "unknown cache subcommand %q\n", fs.Arg(0))
		return 2
	}
}
