package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// ffprobe invocation constants
const (
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
)

// go-mp3 always decodes to 16-bit stereo
const mp3BytesPerFrame = 4

// ProbeDuration returns the playback duration of an audio file. It asks
// ffprobe first; MP3 files fall back to a pure-Go decode when ffprobe is
// missing or fails.
func ProbeDuration(ctx context.Context, ffprobePath, filePath string) (time.Duration, error) {
	if ffprobePath == "" {
		ffprobePath = FFprobeCommand
	}

	duration, err := probeWithFFprobe(ctx, ffprobePath, filePath)
	if err == nil {
		return duration, nil
	}

	if strings.EqualFold(filepath.Ext(filePath), ".mp3") {
		if mp3Duration, mp3Err := ProbeMP3Duration(filePath); mp3Err == nil {
			return mp3Duration, nil
		}
	}
	return 0, err
}

func probeWithFFprobe(ctx context.Context, ffprobePath, filePath string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, ffprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	return ParseDurationSeconds(string(output))
}

// ParseDurationSeconds parses ffprobe's "123.456000" output
func ParseDurationSeconds(s string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration: %v", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// ProbeMP3Duration decodes the MP3 frame index to compute its length
func ProbeMP3Duration(filePath string) (time.Duration, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("error opening MP3 file: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("error decoding MP3 file: %w", err)
	}

	length := decoder.Length()
	rate := decoder.SampleRate()
	if length <= 0 || rate <= 0 {
		return 0, fmt.Errorf("unknown MP3 length: %s", filePath)
	}

	samples := length / mp3BytesPerFrame
	return time.Duration(samples) * time.Second / time.Duration(rate), nil
}
