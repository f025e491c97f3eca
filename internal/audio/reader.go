// Package audio wraps an external demuxer (ffprobe/ffmpeg, shelled out to
// exactly like github.com/Ambrevar/demlo's ffmpegutil.go) to decode a file
// into interleaved 16-bit PCM sample chunks (spec.md §2, §4.8).
package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os/exec"
	"time"

	"helictag/internal/herr"
)

// CodecParams carries the sample rate, channel count, and probed duration
// of a file's audio track. Analyzer.Initialize requires sample rate and
// channel count to be set.
type CodecParams struct {
	SampleRate int
	Channels   int
	CodecName  string
	Duration   time.Duration
}

// Reader decodes one file's audio track into interleaved int16 sample
// chunks. Each opened Reader owns one subprocess, released by Close.
type Reader struct {
	path   string
	params CodecParams
	cmd    *exec.Cmd
	stdout *bufio.Reader
	buf    []int16
}

// probeFunc and decodeFunc are package-level seams so tests can substitute
// a fake demuxer without shelling out to real ffprobe/ffmpeg binaries.
var (
	probeFunc  = probeWithFFprobe
	decodeFunc = startFFmpegDecode
)

// Open probes path's audio track and starts decoding it to raw PCM. Returns
// herr.ErrNoSupportedAudioTracks if probing finds no usable (non-"null")
// codec track.
func Open(path string) (*Reader, error) {
	params, err := probeFunc(path)
	if err != nil {
		return nil, err
	}
	if params.CodecName == "" || params.CodecName == "null" {
		return nil, fmt.Errorf("audio: %s: %w", path, herr.ErrNoSupportedAudioTracks)
	}

	cmd, stdout, err := decodeFunc(path)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	return &Reader{path: path, params: params, cmd: cmd, stdout: stdout, buf: make([]int16, 0, 4096)}, nil
}

// Params returns the probed codec parameters.
func (r *Reader) Params() CodecParams { return r.params }

// ReadChunk reads up to len(buf) interleaved int16 samples into buf,
// returning the slice actually filled. Returns (nil, io.EOF) once the
// decoder's stdout is exhausted — spec.md §4.8: "end-of-stream simply ends
// the loop."
func (r *Reader) ReadChunk(buf []int16) ([]int16, error) {
	raw := make([]byte, len(buf)*2)
	n, err := r.stdout.Read(raw)
	if n == 0 {
		return nil, err
	}
	samples := n / 2
	for i := 0; i < samples; i++ {
		buf[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	if err != nil && err.Error() != "EOF" {
		return buf[:samples], err
	}
	return buf[:samples], nil
}

// Close releases the subprocess and its pipes.
func (r *Reader) Close() error {
	if r.cmd == nil || r.cmd.Process == nil {
		return nil
	}
	_ = r.cmd.Process.Kill()
	return r.cmd.Wait()
}
