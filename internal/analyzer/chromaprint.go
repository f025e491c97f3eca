package analyzer

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"

	"helictag/internal/audio"
	"helictag/internal/herr"
	"helictag/internal/taggedfile"
)

// chromaprintBudgetSeconds bounds Chromaprint analysis to the first 120
// seconds of audio (spec.md §4.7).
const chromaprintBudgetSeconds = 120

// ChromaprintFingerprint wraps an fpcalc-compatible fingerprinting binary,
// grounded on github.com/Ambrevar/demlo's fingerprint.go subprocess idiom
// (no pure-Go Chromaprint binding exists in the retrieval pack).
type ChromaprintFingerprint struct {
	sampleRate int
	channels   int
	cap        int // sample budget: 120 * sample_rate * channels
	buf        []int16
	complete   bool
}

func (a *ChromaprintFingerprint) Kind() Kind { return KindChromaprintFingerprint }

func (a *ChromaprintFingerprint) Initialize(params audio.CodecParams) error {
	if params.SampleRate == 0 {
		return herr.ErrMissingSampleRate
	}
	if params.Channels == 0 {
		return herr.ErrMissingAudioChannels
	}
	a.sampleRate = params.SampleRate
	a.channels = params.Channels
	a.cap = chromaprintBudgetSeconds * params.SampleRate * params.Channels
	return nil
}

func (a *ChromaprintFingerprint) Feed(samples []int16) error {
	if a.complete {
		return nil
	}
	remaining := a.cap - len(a.buf)
	if remaining <= 0 {
		a.complete = true
		return nil
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}
	a.buf = append(a.buf, samples...)
	if len(a.buf) >= a.cap {
		a.complete = true
	}
	return nil
}

func (a *ChromaprintFingerprint) IsComplete() bool { return a.complete }

func (a *ChromaprintFingerprint) Finalize() (any, error) {
	if _, err := exec.LookPath("fpcalc"); err != nil {
		return nil, fmt.Errorf("analyzer: fpcalc not found: %w", herr.ErrFingerprinterReset)
	}

	tmp, err := os.CreateTemp("", "helictag-fp-*.wav")
	if err != nil {
		return nil, fmt.Errorf("analyzer: fingerprint temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeWAV(tmp, a.buf, a.sampleRate, a.channels); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("analyzer: write fingerprint wav: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("analyzer: close fingerprint wav: %w", err)
	}

	out, err := exec.Command("fpcalc", "-plain", tmp.Name()).Output()
	if err != nil {
		return nil, fmt.Errorf("analyzer: fpcalc: %w", err)
	}
	raw := bytes.TrimSpace(out)

	return taggedfile.FingerprintResult{
		Raw:    raw,
		Base64: base64.RawURLEncoding.EncodeToString(raw),
	}, nil
}

// writeWAV emits a minimal canonical 16-bit PCM WAV file so fpcalc can read
// the Chromaprint analysis window back from disk.
func writeWAV(w *os.File, samples []int16, sampleRate, channels int) error {
	dataSize := len(samples) * 2
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2

	var hdr bytes.Buffer
	hdr.WriteString("RIFF")
	binary.Write(&hdr, binary.LittleEndian, uint32(36+dataSize))
	hdr.WriteString("WAVE")
	hdr.WriteString("fmt ")
	binary.Write(&hdr, binary.LittleEndian, uint32(16))
	binary.Write(&hdr, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&hdr, binary.LittleEndian, uint16(channels))
	binary.Write(&hdr, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&hdr, binary.LittleEndian, uint32(byteRate))
	binary.Write(&hdr, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&hdr, binary.LittleEndian, uint16(16))
	hdr.WriteString("data")
	binary.Write(&hdr, binary.LittleEndian, uint32(dataSize))
	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}

	body := make([]byte, dataSize)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(body[i*2:], uint16(s))
	}
	_, err := w.Write(body)
	return err
}
