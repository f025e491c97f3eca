package analyzer

import (
	"time"

	"helictag/internal/audio"
	"helictag/internal/taggedfile"
)

// Compound runs several analyzers concurrently over one sample stream,
// isolating failures per analyzer slot (spec.md §4.7, §9: "a tagged list,
// not inheritance").
type Compound struct {
	active map[Kind]Analyzer
	failed map[Kind]error // Initialize/Feed failures, recorded but not fatal to siblings
}

// NewCompound initializes one Analyzer per enabled kind. An analyzer whose
// Initialize fails is recorded in its result slot and excluded from Feed.
func NewCompound(enabled []Kind, params audio.CodecParams) *Compound {
	c := &Compound{active: map[Kind]Analyzer{}, failed: map[Kind]error{}}
	for _, k := range enabled {
		az := New(k)
		if err := az.Initialize(params); err != nil {
			c.failed[k] = err
			continue
		}
		c.active[k] = az
	}
	return c
}

// Feed distributes samples to every surviving analyzer, in stream order
// (spec.md §5: "within a single file, samples are fed ... strictly in
// stream order"). A child whose Feed fails is dropped from the active set.
func (c *Compound) Feed(samples []int16) {
	for k, az := range c.active {
		if err := az.Feed(samples); err != nil {
			c.failed[k] = err
			delete(c.active, k)
		}
	}
}

// IsComplete is true only when every surviving child reports complete
// (spec.md §4.7).
func (c *Compound) IsComplete() bool {
	if len(c.active) == 0 {
		return true
	}
	for _, az := range c.active {
		if !az.IsComplete() {
			return false
		}
	}
	return true
}

// Finalize runs every surviving child's Finalize and assembles the
// per-slot AnalysisResult, without aborting on a single child's failure.
func (c *Compound) Finalize() *taggedfile.AnalysisResult {
	result := &taggedfile.AnalysisResult{}

	finalize := func(k Kind) (any, error, bool) {
		if err, failedAlready := c.failed[k]; failedAlready {
			return nil, err, true
		}
		az, ok := c.active[k]
		if !ok {
			return nil, nil, false
		}
		v, err := az.Finalize()
		return v, err, true
	}

	if v, err, ran := finalize(KindTrackLength); ran {
		if err != nil {
			result.TrackLength = taggedfile.Failed[time.Duration](err)
		} else {
			result.TrackLength = taggedfile.Ok(v.(time.Duration))
		}
	}
	if v, err, ran := finalize(KindChromaprintFingerprint); ran {
		if err != nil {
			result.Fingerprint = taggedfile.Failed[taggedfile.FingerprintResult](err)
		} else {
			result.Fingerprint = taggedfile.Ok(v.(taggedfile.FingerprintResult))
		}
	}
	if v, err, ran := finalize(KindEbuR128); ran {
		if err != nil {
			result.Loudness = taggedfile.Failed[taggedfile.LoudnessResult](err)
		} else {
			result.Loudness = taggedfile.Ok(v.(taggedfile.LoudnessResult))
		}
	}
	if v, err, ran := finalize(KindSoundTouchBpm); ran {
		if err != nil {
			result.BPM = taggedfile.Failed[float64](err)
		} else {
			result.BPM = taggedfile.Ok(v.(float64))
		}
	}

	return result
}

// Run drives a Compound end to end over reader, returning the assembled
// AnalysisResult. The caller owns reader's lifecycle (Close).
func Run(enabled []Kind, reader *audio.Reader) *taggedfile.AnalysisResult {
	c := NewCompound(enabled, reader.Params())

	buf := make([]int16, 1<<15)
	for !c.IsComplete() {
		chunk, err := reader.ReadChunk(buf)
		if len(chunk) > 0 {
			c.Feed(chunk)
		}
		if err != nil {
			break
		}
	}
	return c.Finalize()
}
