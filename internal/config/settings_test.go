package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/tuner"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestLastPath(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Default falls back to the Music folder
	if settings.GetLastPath() == "" {
		t.Error("Last path should not be empty by default")
	}

	settings.SetLastPath("/music/library")
	if settings.GetLastPath() != "/music/library" {
		t.Errorf("Expected /music/library, got %s", settings.GetLastPath())
	}
}

func TestFrequency(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFrequency() != DefaultFrequency {
		t.Errorf("Expected default frequency %d, got %d", DefaultFrequency, settings.GetFrequency())
	}

	settings.SetFrequency(model.Frequency639)
	if settings.GetFrequency() != model.Frequency639 {
		t.Errorf("Expected 639, got %d", settings.GetFrequency())
	}

	// Unsupported values are not stored
	settings.SetFrequency(model.Frequency(500))
	if settings.GetFrequency() != model.Frequency639 {
		t.Errorf("Expected 639 to be kept, got %d", settings.GetFrequency())
	}

	// Corrupted stored values are repaired
	app.Preferences().SetInt(KeyFrequency, 123)
	if settings.GetFrequency() != DefaultFrequency {
		t.Errorf("Expected repair to default, got %d", settings.GetFrequency())
	}
}

func TestFileType(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFileType() != model.ExtensionKeep {
		t.Errorf("Expected keep by default, got %q", settings.GetFileType())
	}

	settings.SetFileType(model.ExtensionOpus)
	if settings.GetFileType() != model.ExtensionOpus {
		t.Errorf("Expected .opus, got %q", settings.GetFileType())
	}

	app.Preferences().SetString(KeyFileType, ".wav")
	if settings.GetFileType() != DefaultFileType {
		t.Errorf("Expected repair to default, got %q", settings.GetFileType())
	}
}

func TestToolPaths(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFFmpegPath() != tuner.FFmpegCommand {
		t.Errorf("Expected default ffmpeg, got %s", settings.GetFFmpegPath())
	}
	if settings.GetFilterName() != tuner.DefaultFilterName {
		t.Errorf("Expected default filter, got %s", settings.GetFilterName())
	}

	settings.SetFFmpegPath("/opt/ffmpeg/bin/ffmpeg")
	settings.SetFFprobePath("/opt/ffmpeg/bin/ffprobe")
	settings.SetFilterName("rubberband")
	if settings.GetFFmpegPath() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Unexpected ffmpeg path %s", settings.GetFFmpegPath())
	}

	// Empty restores defaults
	settings.SetFFmpegPath("")
	if settings.GetFFmpegPath() != tuner.FFmpegCommand {
		t.Errorf("Expected default ffmpeg after reset, got %s", settings.GetFFmpegPath())
	}
}

func TestTunerOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetFFprobePath("/usr/local/bin/ffprobe")
	settings.SetContinueOnError(true)

	opts := settings.TunerOptions()
	if opts.FFprobePath != "/usr/local/bin/ffprobe" {
		t.Errorf("Unexpected ffprobe path %s", opts.FFprobePath)
	}
	if !opts.ContinueOnError || !opts.TrackProgress {
		t.Errorf("Expected ContinueOnError and TrackProgress, got %+v", opts)
	}
}

func TestRequest(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetFrequency(model.Frequency639)
	settings.SetFileType(model.ExtensionFLAC)
	settings.SetDryRun(true)

	request := settings.Request("/music")
	if request.RootPath != "/music" || request.Frequency != model.Frequency639 ||
		request.Extension != model.ExtensionFLAC || !request.DryRun {
		t.Errorf("Unexpected request %+v", request)
	}
	if err := request.Validate(); err != nil {
		t.Errorf("Request from settings should be valid: %v", err)
	}
}

func TestLanguageSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetLanguage() != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, settings.GetLanguage())
	}

	settings.SetLanguage("pt")
	if settings.GetLanguage() != "pt" {
		t.Errorf("Expected pt, got %s", settings.GetLanguage())
	}

	if len(settings.GetLanguageOptions()) != 4 {
		t.Errorf("Expected 4 language options, got %d", len(settings.GetLanguageOptions()))
	}
}

func TestAutoReveal(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoRevealOnComplete() != DefaultAutoReveal {
		t.Error("Unexpected auto-reveal default")
	}
	settings.SetAutoRevealOnComplete(true)
	if !settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto-reveal to be enabled")
	}
}
