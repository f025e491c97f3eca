package analyzer

import (
	"math"

	"helictag/internal/audio"
	"helictag/internal/herr"
	"helictag/internal/taggedfile"
)

// ebuR128ReferenceOffset is BS.1770's K-weighting calibration constant,
// applied when converting a block's mean-square energy into LUFS.
const ebuR128ReferenceOffset = -0.691

// EbuR128 computes a simplified EBU R128 loudness summary: no pack repo
// wraps the real libebur128 (see DESIGN.md), so this estimates integrated
// loudness from un-weighted mean-square energy over fixed-size gating
// blocks, following the block-then-aggregate structure spec.md §4.7
// describes. is_complete is always false — the full file is required.
type EbuR128 struct {
	sampleRate int
	channels   int
	chunkSize  int // sample_rate * channels, per spec.md §4.7

	pending []int16
	peaks   []float64

	blockCount int
	energySum  float64
}

func (a *EbuR128) Kind() Kind { return KindEbuR128 }

func (a *EbuR128) Initialize(params audio.CodecParams) error {
	if params.SampleRate == 0 {
		return herr.ErrMissingSampleRate
	}
	if params.Channels == 0 {
		return herr.ErrMissingAudioChannels
	}
	a.sampleRate = params.SampleRate
	a.channels = params.Channels
	a.chunkSize = params.SampleRate * params.Channels
	a.peaks = make([]float64, params.Channels)
	return nil
}

func (a *EbuR128) Feed(samples []int16) error {
	a.pending = append(a.pending, samples...)
	for len(a.pending) >= a.chunkSize {
		a.processBlock(a.pending[:a.chunkSize])
		a.pending = a.pending[a.chunkSize:]
	}
	return nil
}

func (a *EbuR128) processBlock(block []int16) {
	var sumSquares float64
	for i, s := range block {
		f := float64(s) / float64(math.MaxInt16)
		sumSquares += f * f
		ch := i % a.channels
		if abs := math.Abs(f); abs > a.peaks[ch] {
			a.peaks[ch] = abs
		}
	}
	a.energySum += sumSquares / float64(len(block))
	a.blockCount++
}

func (a *EbuR128) IsComplete() bool { return false }

// energyToLoudness converts mean-square energy into LUFS using BS.1770's
// offset constant.
func energyToLoudness(meanSquareEnergy float64) float64 {
	if meanSquareEnergy <= 0 {
		return -70.0
	}
	return ebuR128ReferenceOffset + 10*math.Log10(meanSquareEnergy)
}

func (a *EbuR128) Finalize() (any, error) {
	if len(a.pending) > 0 {
		a.processBlock(a.pending)
		a.pending = nil
	}
	if a.blockCount == 0 {
		return nil, herr.ErrGatingStatsUnavailable
	}
	meanEnergy := a.energySum / float64(a.blockCount)
	return taggedfile.LoudnessResult{
		IntegratedLoudness: energyToLoudness(meanEnergy),
		ChannelPeaks:       append([]float64(nil), a.peaks...),
		GatingBlockCount:   a.blockCount,
		GatingEnergy:       a.energySum,
	}, nil
}

// AggregateAlbumLoudness combines per-track LoudnessResults into album-wide
// ReplayGain 2.0 figures (spec.md §4.7): album peak is the max of track
// peaks, album energy is the gating-block-weighted sum.
func AggregateAlbumLoudness(tracks []taggedfile.LoudnessResult) (peak, loudness, gain float64) {
	var totalEnergy float64
	var totalBlocks int
	for _, t := range tracks {
		if p := t.Peak(); p > peak {
			peak = p
		}
		totalEnergy += t.GatingEnergy
		totalBlocks += t.GatingBlockCount
	}
	if totalBlocks == 0 {
		return peak, -70.0, -18.0 - (-70.0)
	}
	loudness = energyToLoudness(totalEnergy / float64(totalBlocks))
	gain = -18.0 - loudness
	return peak, loudness, gain
}
