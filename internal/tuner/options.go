package tuner

// External tool defaults
const (
	FFmpegCommand     = "ffmpeg"
	FFprobeCommand    = "ffprobe"
	DefaultFilterName = "rubberband"
)

// Options configures the tuning service
type Options struct {
	// FFmpegPath is the pitch-shift binary, looked up in PATH when bare
	FFmpegPath string
	// FFprobePath is used for duration probing when TrackProgress is set
	FFprobePath string
	// FilterName is the audio filter taking a pitch= parameter
	FilterName string
	// ContinueOnError keeps the batch going after a failed conversion and
	// reports an aggregate *BatchError at the end
	ContinueOnError bool
	// TrackProgress probes source durations and parses FFmpeg stats so that
	// update callbacks receive fractional progress
	TrackProgress bool
	// Verbose logs every job start and finish
	Verbose bool
}

// DefaultOptions returns options that invoke ffmpeg with rubberband and abort
// on the first failure
func DefaultOptions() Options {
	return Options{
		FFmpegPath:  FFmpegCommand,
		FFprobePath: FFprobeCommand,
		FilterName:  DefaultFilterName,
	}
}

// withDefaults fills empty fields
func (o Options) withDefaults() Options {
	if o.FFmpegPath == "" {
		o.FFmpegPath = FFmpegCommand
	}
	if o.FFprobePath == "" {
		o.FFprobePath = FFprobeCommand
	}
	if o.FilterName == "" {
		o.FilterName = DefaultFilterName
	}
	return o
}
