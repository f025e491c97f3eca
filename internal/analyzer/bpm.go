package analyzer

import (
	"errors"
	"math"

	"helictag/internal/audio"
	"helictag/internal/herr"
)

// bpmMinDetect and bpmMaxDetect bound the tempo search range.
const (
	bpmMinDetect = 60.0
	bpmMaxDetect = 200.0
)

// SoundTouchBpm estimates tempo via autocorrelation of the signal envelope,
// grounded on original_source's soundtouch_bpm.rs arithmetic (no pack repo
// wraps the real SoundTouch BPM detector — see DESIGN.md). is_complete is
// always false; the full file is required (spec.md §4.7).
type SoundTouchBpm struct {
	sampleRate int
	channels   int
	envelope   []float32 // decimated rectified mono envelope
	decimation int
	acc        float32
	accCount   int
}

const bpmEnvelopeTargetRate = 200 // Hz, envelope sample rate after decimation

func (a *SoundTouchBpm) Kind() Kind { return KindSoundTouchBpm }

func (a *SoundTouchBpm) Initialize(params audio.CodecParams) error {
	if params.SampleRate == 0 {
		return herr.ErrMissingSampleRate
	}
	if params.Channels == 0 {
		return herr.ErrMissingAudioChannels
	}
	a.sampleRate = params.SampleRate
	a.channels = params.Channels
	a.decimation = params.SampleRate / bpmEnvelopeTargetRate
	if a.decimation < 1 {
		a.decimation = 1
	}
	return nil
}

func (a *SoundTouchBpm) Feed(samples []int16) error {
	for i := 0; i < len(samples); i += a.channels {
		frame := samples[i:min(i+a.channels, len(samples))]
		var sum float32
		for _, s := range frame {
			f := float32(s) / float32(math.MaxInt16)
			sum += f * f
		}
		a.acc += sum
		a.accCount++
		if a.accCount >= a.decimation {
			a.envelope = append(a.envelope, a.acc/float32(a.accCount))
			a.acc, a.accCount = 0, 0
		}
	}
	return nil
}

func (a *SoundTouchBpm) IsComplete() bool { return false }

func (a *SoundTouchBpm) Finalize() (any, error) {
	if len(a.envelope) < bpmEnvelopeTargetRate { // need at least ~1s
		return nil, errors.New("analyzer: bpm: too little audio to estimate tempo")
	}

	rate := bpmEnvelopeTargetRate
	minLag := int(60.0 / bpmMaxDetect * float64(rate))
	maxLag := int(60.0 / bpmMinDetect * float64(rate))
	if maxLag >= len(a.envelope) {
		maxLag = len(a.envelope) - 1
	}
	if minLag < 1 {
		minLag = 1
	}

	var mean float32
	for _, v := range a.envelope {
		mean += v
	}
	mean /= float32(len(a.envelope))

	bestLag, bestScore := minLag, float32(-1)
	for lag := minLag; lag <= maxLag; lag++ {
		var score float32
		n := len(a.envelope) - lag
		for i := 0; i < n; i++ {
			score += (a.envelope[i] - mean) * (a.envelope[i+lag] - mean)
		}
		if n > 0 {
			score /= float32(n)
		}
		if score > bestScore {
			bestScore, bestLag = score, lag
		}
	}

	bpm := 60.0 * float64(rate) / float64(bestLag)
	return bpm, nil
}
