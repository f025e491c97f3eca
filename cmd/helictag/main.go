// Command helictag scans a directory of audio files, analyzes them
// acoustically, matches them against MusicBrainz, and rewrites their tags
// (spec.md §1). Entry point and subcommand dispatch follow
// stojg-playlist-sorter/main.go's flag-parse-then-route style, generalized
// from a single-mode CLI to four subcommands.
package main

import (
	"log"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	logger := log.New(os.Stderr, "helictag: ", log.LstdFlags)

	switch args[0] {
	case "analyze":
		return runAnalyze(args[1:], logger)
	case "import":
		return runImport(args[1:], logger)
	case "config":
		return runConfig(args[1:], logger)
	case "cache":
		return runCache(args[1:], logger)
	case "-h", "--help", "help":
		printUsage()
		return 0
	default:
		log.Printf("helictag: unknown subcommand %q", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	os.Stderr.WriteString(`Usage: helictag <command> [flags]

Commands:
  analyze PATH   scan PATH and print candidate matches without writing
  import PATH    scan PATH, prompt for each group, write tags and move files
  config         print the effective configuration, or write defaults with -init
  cache          inspect or clear the MusicBrainz disk cache

Run "helictag <command> -h" for flags specific to a command.
`)
}
