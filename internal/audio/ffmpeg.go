package audio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// probeWithFFprobe shells out to ffprobe (grounded on Ambrevar-demlo's
// subprocess demuxer idiom) to find the file's first non-"null" audio
// track's sample rate and channel count.
func probeWithFFprobe(path string) (CodecParams, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return CodecParams{}, fmt.Errorf("audio: ffprobe not found: %w", err)
	}

	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return CodecParams{}, fmt.Errorf("audio: ffprobe %s: %w", path, err)
	}

	var probe struct {
		Streams []struct {
			CodecName  string `json:"codec_name"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
			Duration   string `json:"duration"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return CodecParams{}, fmt.Errorf("audio: parse ffprobe output: %w", err)
	}

	for _, s := range probe.Streams {
		if s.CodecName == "" || s.CodecName == "null" {
			continue
		}
		rate, _ := strconv.Atoi(s.SampleRate)
		durSeconds, _ := strconv.ParseFloat(s.Duration, 64)
		return CodecParams{
			SampleRate: rate,
			Channels:   s.Channels,
			CodecName:  s.CodecName,
			Duration:   time.Duration(durSeconds * float64(time.Second)),
		}, nil
	}
	return CodecParams{}, nil
}

// startFFmpegDecode starts an ffmpeg process decoding path to interleaved
// signed 16-bit little-endian PCM on stdout, matching the subprocess-pipe
// idiom of Ambrevar-demlo's ffmpegutil.go.
func startFFmpegDecode(path string) (*exec.Cmd, *bufio.Reader, error) {
	cmd := exec.Command("ffmpeg",
		"-v", "quiet",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	return cmd, bufio.NewReaderSize(stdout, 1<<16), nil
}
