// Package config loads and saves helictag's TOML configuration file
// (spec.md §6), grounded on stojg-playlist-sorter/config/config.go's
// LoadConfig/default-fallback pattern generalized from a flat GA parameter
// struct to the analyzers/paths/lookup/weights/user_interface key tree.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"helictag/internal/herr"
)

// Config is the full TOML-backed configuration tree.
type Config struct {
	Analyzers     AnalyzersConfig     `toml:"analyzers"`
	Paths         PathsConfig         `toml:"paths"`
	Lookup        LookupConfig        `toml:"lookup"`
	Weights       WeightsConfig       `toml:"weights"`
	UserInterface UserInterfaceConfig `toml:"user_interface"`
}

type AnalyzersConfig struct {
	Enabled         []string `toml:"enabled"`
	NumParallelJobs int      `toml:"num_parallel_jobs"`
}

type PathsConfig struct {
	LibraryPath       string `toml:"library_path"`
	AlbumFormat       string `toml:"album_format"`
	CompilationFormat string `toml:"compilation_format"`
}

type LookupConfig struct {
	ConnectionLimit       int `toml:"connection_limit"`
	ReleaseCandidateLimit int `toml:"release_candidate_limit"`
}

type TrackWeights struct {
	TrackTitle             float64 `toml:"track_title"`
	TrackArtist            float64 `toml:"track_artist"`
	TrackNumber            float64 `toml:"track_number"`
	TrackLength            float64 `toml:"track_length"`
	MusicBrainzRecordingID float64 `toml:"musicbrainz_recording_id"`
}

type ReleaseWeights struct {
	ReleaseTitle         float64 `toml:"release_title"`
	ReleaseArtist        float64 `toml:"release_artist"`
	MusicBrainzReleaseID float64 `toml:"musicbrainz_release_id"`
	MediaFormat          float64 `toml:"media_format"`
	RecordLabel          float64 `toml:"record_label"`
	CatalogNumber        float64 `toml:"catalog_number"`
	Barcode              float64 `toml:"barcode"`
	TrackAssignment      float64 `toml:"track_assignment"`
}

type WeightsConfig struct {
	Track   TrackWeights   `toml:"track"`
	Release ReleaseWeights `toml:"release"`
}

// UserInterfaceConfig is purely presentational (spec.md §6) — a minimal
// implementation may ignore it, but it is still parsed and saved. Load
// does not reject unknown keys in this or any other table.
type UserInterfaceConfig struct {
	ColorEnabled  bool `toml:"color_enabled"`
	CandidatePageSize int `toml:"candidate_page_size"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Analyzers: AnalyzersConfig{
			Enabled:         []string{"track_length", "chromaprint_fingerprint", "ebu_r128", "soundtouch_bpm"},
			NumParallelJobs: 0,
		},
		Paths: PathsConfig{
			LibraryPath:       "~/Music/Library",
			AlbumFormat:       "{album_artist}/{album_title}/{track_number} {track_title}",
			CompilationFormat: "Compilations/{album_title}/{track_number} {track_artist} - {track_title}",
		},
		Lookup: LookupConfig{
			ConnectionLimit:       4,
			ReleaseCandidateLimit: 5,
		},
		Weights: WeightsConfig{
			Track: TrackWeights{
				TrackTitle:             3.0,
				TrackArtist:            2.0,
				TrackNumber:            1.0,
				TrackLength:            1.0,
				MusicBrainzRecordingID: 4.0,
			},
			Release: ReleaseWeights{
				ReleaseTitle:         3.0,
				ReleaseArtist:        3.0,
				MusicBrainzReleaseID: 4.0,
				MediaFormat:          0.5,
				RecordLabel:          0.5,
				CatalogNumber:        0.5,
				Barcode:              0.5,
				TrackAssignment:      1.0,
			},
		},
		UserInterface: UserInterfaceConfig{
			ColorEnabled:      true,
			CandidatePageSize: 10,
		},
	}
}

// DefaultPath returns the default config file location: first the current
// directory's helictag.toml, then the XDG-style ~/.config fallback,
// mirroring the teacher's GetConfigPath.
func DefaultPath() string {
	if _, err := os.Stat("./helictag.toml"); err == nil {
		return "./helictag.toml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "./helictag.toml"
	}
	return filepath.Join(home, ".config", "helictag", "config.toml")
}

// Load reads path, falling back to defaults when the file is absent;
// malformed TOML is a fatal herr.ErrConfigInvalid.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w: %w", path, herr.ErrConfigInvalid, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w: %w", path, herr.ErrConfigInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w: %w", path, herr.ErrConfigInvalid, err)
	}
	return cfg, nil
}

// Validate checks the required-key ranges from spec.md §6.
func (c Config) Validate() error {
	if c.Analyzers.NumParallelJobs < 0 {
		return fmt.Errorf("analyzers.num_parallel_jobs must be >= 0")
	}
	if c.Lookup.ReleaseCandidateLimit < 1 || c.Lookup.ReleaseCandidateLimit > 100 {
		return fmt.Errorf("lookup.release_candidate_limit must be in 1..=100")
	}
	if c.Lookup.ConnectionLimit < 1 {
		return fmt.Errorf("lookup.connection_limit must be >= 1")
	}
	for _, k := range c.Analyzers.Enabled {
		switch k {
		case "track_length", "chromaprint_fingerprint", "ebu_r128", "soundtouch_bpm":
		default:
			return fmt.Errorf("analyzers.enabled: unknown analyzer %q", k)
		}
	}
	return nil
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// ExpandLibraryPath tilde-expands Paths.LibraryPath (spec.md §6).
func (c Config) ExpandLibraryPath() (string, error) {
	p := c.Paths.LibraryPath
	if p == "~" || len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: expand library_path: %w", err)
		}
		if p == "~" {
			return home, nil
		}
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}

// NumParallelJobs resolves the 0=auto convention: a configured value of 0
// (or less) yields cpuCount, which the caller supplies (e.g.
// runtime.NumCPU()); any positive value is returned as is.
func (c Config) NumParallelJobs(cpuCount int) int {
	if c.Analyzers.NumParallelJobs <= 0 {
		return cpuCount
	}
	return c.Analyzers.NumParallelJobs
}

// EnabledAnalyzerNames returns the configured analyzer key list, so the
// scanner package can ParseKind each without importing config directly
// into internal/analyzer (keeping the dependency direction one way).
func (c Config) EnabledAnalyzerNames() []string { return c.Analyzers.Enabled }
