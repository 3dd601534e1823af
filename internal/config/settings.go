package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/platform"
	"github.com/ytget/hz-tuner/internal/tuner"
)

// Settings keys for Fyne preferences
const (
	KeyLastPath        = "last_path"
	KeyFrequency       = "frequency"
	KeyFileType        = "file_type"
	KeyDryRun          = "dry_run"
	KeyFFmpegPath      = "ffmpeg_path"
	KeyFFprobePath     = "ffprobe_path"
	KeyFilterName      = "filter_name"
	KeyContinueOnError = "continue_on_error"
	KeyLanguage        = "app_language"
	KeyAutoReveal      = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultFrequency       = model.DefaultFrequency
	DefaultFileType        = model.ExtensionKeep
	DefaultContinueOnError = false
	DefaultLanguage        = "system"
	DefaultAutoReveal      = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLastPath returns the last tuned file or directory, or the Music folder
func (s *Settings) GetLastPath() string {
	path := s.app.Preferences().String(KeyLastPath)
	if path == "" {
		musicDir, err := platform.GetHomeMusicDir()
		if err != nil {
			return ""
		}
		return musicDir
	}
	return path
}

// SetLastPath stores the last tuned path
func (s *Settings) SetLastPath(path string) {
	s.app.Preferences().SetString(KeyLastPath, path)
}

// GetFrequency returns the stored frequency, repairing unsupported values
func (s *Settings) GetFrequency() model.Frequency {
	value := model.Frequency(s.app.Preferences().Int(KeyFrequency))
	if !value.IsSupported() {
		s.SetFrequency(DefaultFrequency)
		return DefaultFrequency
	}
	return value
}

// SetFrequency stores the frequency; unsupported values are ignored
func (s *Settings) SetFrequency(frequency model.Frequency) {
	if !frequency.IsSupported() {
		return
	}
	s.app.Preferences().SetInt(KeyFrequency, int(frequency))
}

// GetFileType returns the output extension, ExtensionKeep by default
func (s *Settings) GetFileType() model.Extension {
	ext, err := model.ParseExtension(s.app.Preferences().String(KeyFileType))
	if err != nil {
		s.SetFileType(DefaultFileType)
		return DefaultFileType
	}
	return ext
}

// SetFileType stores the output extension
func (s *Settings) SetFileType(ext model.Extension) {
	if ext != model.ExtensionKeep && !ext.IsSupported() {
		return
	}
	s.app.Preferences().SetString(KeyFileType, string(ext))
}

// GetDryRun returns whether the dry-run box was checked last time
func (s *Settings) GetDryRun() bool {
	return s.app.Preferences().Bool(KeyDryRun)
}

// SetDryRun stores the dry-run flag
func (s *Settings) SetDryRun(dryRun bool) {
	s.app.Preferences().SetBool(KeyDryRun, dryRun)
}

// GetFFmpegPath returns the pitch-shift binary
func (s *Settings) GetFFmpegPath() string {
	return s.app.Preferences().StringWithFallback(KeyFFmpegPath, tuner.FFmpegCommand)
}

// SetFFmpegPath sets the pitch-shift binary; empty restores the default
func (s *Settings) SetFFmpegPath(path string) {
	if path == "" {
		path = tuner.FFmpegCommand
	}
	s.app.Preferences().SetString(KeyFFmpegPath, path)
}

// GetFFprobePath returns the duration probe binary
func (s *Settings) GetFFprobePath() string {
	return s.app.Preferences().StringWithFallback(KeyFFprobePath, tuner.FFprobeCommand)
}

// SetFFprobePath sets the duration probe binary; empty restores the default
func (s *Settings) SetFFprobePath(path string) {
	if path == "" {
		path = tuner.FFprobeCommand
	}
	s.app.Preferences().SetString(KeyFFprobePath, path)
}

// GetFilterName returns the pitch-shift filter name
func (s *Settings) GetFilterName() string {
	return s.app.Preferences().StringWithFallback(KeyFilterName, tuner.DefaultFilterName)
}

// SetFilterName sets the pitch-shift filter name; empty restores the default
func (s *Settings) SetFilterName(name string) {
	if name == "" {
		name = tuner.DefaultFilterName
	}
	s.app.Preferences().SetString(KeyFilterName, name)
}

// GetContinueOnError returns whether a batch keeps going after a failure
func (s *Settings) GetContinueOnError() bool {
	return s.app.Preferences().BoolWithFallback(KeyContinueOnError, DefaultContinueOnError)
}

// SetContinueOnError sets the batch failure policy
func (s *Settings) SetContinueOnError(keepGoing bool) {
	s.app.Preferences().SetBool(KeyContinueOnError, keepGoing)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the output folder after a run
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoReveal, DefaultAutoReveal)
}

// SetAutoRevealOnComplete sets whether to reveal the output folder after a run
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoReveal, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// TunerOptions builds service options from the stored settings. The desktop
// app always tracks progress.
func (s *Settings) TunerOptions() tuner.Options {
	return tuner.Options{
		FFmpegPath:      s.GetFFmpegPath(),
		FFprobePath:     s.GetFFprobePath(),
		FilterName:      s.GetFilterName(),
		ContinueOnError: s.GetContinueOnError(),
		TrackProgress:   true,
	}
}

// Request builds a tuning request for path from the stored selections
func (s *Settings) Request(path string) model.TuningRequest {
	return model.TuningRequest{
		RootPath:  path,
		Frequency: s.GetFrequency(),
		Extension: s.GetFileType(),
		DryRun:    s.GetDryRun(),
	}
}
