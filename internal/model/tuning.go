package model

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Frequency is a target tuning reference pitch in Hz
type Frequency int

// Supported tuning frequencies
const (
	Frequency432 Frequency = 432
	Frequency639 Frequency = 639
)

// DefaultFrequency is used when no frequency is requested
const DefaultFrequency = Frequency432

// Reference pitches the scale factors are computed against
const (
	StandardPitchHz = 440.0
	Pitch639BaseHz  = 622.25
)

// scaleFactors maps each supported frequency to its rubberband pitch ratio
var scaleFactors = map[Frequency]float64{
	Frequency432: float64(Frequency432) / StandardPitchHz,
	Frequency639: float64(Frequency639) / Pitch639BaseHz,
}

// SupportedFrequencies returns the supported frequencies in ascending order
func SupportedFrequencies() []Frequency {
	return []Frequency{Frequency432, Frequency639}
}

// ParseFrequency parses "432", "432hz" or "432Hz"
func ParseFrequency(s string) (Frequency, error) {
	trimmed := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "hz")
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFrequency, s)
	}
	f := Frequency(value)
	if !f.IsSupported() {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedFrequency, value)
	}
	return f, nil
}

// IsSupported reports whether f has a scale factor
func (f Frequency) IsSupported() bool {
	_, ok := scaleFactors[f]
	return ok
}

// ScaleFactor returns the pitch ratio applied by the pitch-shift filter
func (f Frequency) ScaleFactor() (float64, error) {
	factor, ok := scaleFactors[f]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedFrequency, int(f))
	}
	return factor, nil
}

// DirName returns the output directory name, e.g. "432Hz"
func (f Frequency) DirName() string {
	return strconv.Itoa(int(f)) + "Hz"
}

// String returns the frequency with its unit
func (f Frequency) String() string {
	return f.DirName()
}

// Extension is an audio file extension including the leading dot
type Extension string

// Supported audio extensions. ExtensionKeep writes every output in the format
// of its source file.
const (
	ExtensionKeep Extension = ""
	ExtensionMP3  Extension = ".mp3"
	ExtensionOpus Extension = ".opus"
	ExtensionFLAC Extension = ".flac"
)

// AudioCodec holds the encoder settings for one output format
type AudioCodec struct {
	Codec   string
	Bitrate string
}

var audioCodecs = map[Extension]AudioCodec{
	ExtensionMP3:  {Codec: "libmp3lame", Bitrate: "256k"},
	ExtensionOpus: {Codec: "libopus", Bitrate: "128k"},
	ExtensionFLAC: {Codec: "flac", Bitrate: "48k"},
}

// SupportedExtensions returns the extensions recognised as audio
func SupportedExtensions() []Extension {
	return []Extension{ExtensionMP3, ExtensionOpus, ExtensionFLAC}
}

// ParseExtension accepts "mp3", ".MP3" and friends. An empty string or "keep"
// yields ExtensionKeep.
func ParseExtension(s string) (Extension, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" || normalized == "keep" {
		return ExtensionKeep, nil
	}
	if !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	ext := Extension(normalized)
	if !ext.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExtension, s)
	}
	return ext, nil
}

// ExtensionOf returns the lower-cased extension of path. A dotfile such as
// ".mp3" has no extension.
func ExtensionOf(path string) Extension {
	_, ext := splitName(path)
	return Extension(strings.ToLower(ext))
}

// splitName splits the base name of path into stem and extension
func splitName(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	if ext == base {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), ext
}

// IsSupported reports whether e has an encoder entry
func (e Extension) IsSupported() bool {
	_, ok := audioCodecs[e]
	return ok
}

// Codec returns the encoder settings for e
func (e Extension) Codec() (AudioCodec, error) {
	codec, ok := audioCodecs[e]
	if !ok {
		return AudioCodec{}, fmt.Errorf("%w: %q", ErrUnsupportedExtension, string(e))
	}
	return codec, nil
}

// String returns the extension, or "keep" for ExtensionKeep
func (e Extension) String() string {
	if e == ExtensionKeep {
		return "keep"
	}
	return string(e)
}

// TuningRequest describes one tuning run
type TuningRequest struct {
	RootPath  string
	Frequency Frequency
	Extension Extension // ExtensionKeep preserves each source format
	DryRun    bool
}

// Validate checks frequency and extension without touching the filesystem
func (r TuningRequest) Validate() error {
	if strings.TrimSpace(r.RootPath) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if !r.Frequency.IsSupported() {
		return fmt.Errorf("%w: %d", ErrUnsupportedFrequency, int(r.Frequency))
	}
	if r.Extension != ExtensionKeep && !r.Extension.IsSupported() {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, string(r.Extension))
	}
	return nil
}

// OutputExtension resolves the extension to write for source
func (r TuningRequest) OutputExtension(source string) Extension {
	if r.Extension == ExtensionKeep {
		return ExtensionOf(source)
	}
	return r.Extension
}
