package analyzer

import (
	"time"

	"helictag/internal/audio"
	"helictag/internal/herr"
)

// TrackLength reads the track duration from demuxer metadata; it needs no
// sample data at all (spec.md §4.7).
type TrackLength struct {
	duration time.Duration
}

func (a *TrackLength) Kind() Kind { return KindTrackLength }

func (a *TrackLength) Initialize(params audio.CodecParams) error {
	if params.SampleRate == 0 {
		return herr.ErrMissingSampleRate
	}
	if params.Channels == 0 {
		return herr.ErrMissingAudioChannels
	}
	a.duration = params.Duration
	return nil
}

func (a *TrackLength) Feed(samples []int16) error { return nil }

func (a *TrackLength) IsComplete() bool { return true }

func (a *TrackLength) Finalize() (any, error) { return a.duration, nil }
