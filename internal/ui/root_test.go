package ui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/hz-tuner/internal/config"
	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/tuner"
)

// writingExecutor stands in for ffmpeg by creating the destination file
type writingExecutor struct{}

func (writingExecutor) Run(ctx context.Context, binary string, args []string, stderr io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(args[len(args)-1], []byte("tuned"), 0644)
}

func newTestRootUI(t *testing.T) (*RootUI, *config.Settings) {
	t.Helper()
	app := test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	settings := config.NewSettings(app)
	settings.SetLanguage("en")
	factory := func(opts tuner.Options) *tuner.Service {
		svc := tuner.NewService(opts)
		svc.SetExecutor(writingExecutor{})
		svc.SetProbe(func(context.Context, string, string) (time.Duration, error) {
			return 0, nil
		})
		return svc
	}
	return NewRootUI(window, settings, factory), settings
}

func writeAudio(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestRootUI_Defaults(t *testing.T) {
	ui, _ := newTestRootUI(t)

	if ui.frequencySelect.Selected != "432Hz" {
		t.Errorf("frequency = %q, want 432Hz", ui.frequencySelect.Selected)
	}
	if ui.fileTypeSelect.Selected != ui.localization.GetText(KeyKeepFormat) {
		t.Errorf("file type = %q, want keep label", ui.fileTypeSelect.Selected)
	}
	if !ui.stopBtn.Disabled() {
		t.Error("stop should be disabled while idle")
	}
	if ui.jobCount() != 0 {
		t.Errorf("jobCount = %d, want 0", ui.jobCount())
	}
}

func TestRootUI_SelectionsAreStored(t *testing.T) {
	ui, settings := newTestRootUI(t)

	ui.frequencySelect.SetSelected("639Hz")
	if settings.GetFrequency() != model.Frequency639 {
		t.Errorf("frequency = %v, want 639", settings.GetFrequency())
	}

	ui.fileTypeSelect.SetSelected(".opus")
	if settings.GetFileType() != model.ExtensionOpus {
		t.Errorf("file type = %q, want .opus", settings.GetFileType())
	}

	ui.fileTypeSelect.SetSelected(ui.localization.GetText(KeyKeepFormat))
	if settings.GetFileType() != model.ExtensionKeep {
		t.Errorf("file type = %q, want keep", settings.GetFileType())
	}

	ui.dryRunCheck.SetChecked(true)
	if !settings.GetDryRun() {
		t.Error("dry run should be stored")
	}
}

func TestRootUI_EmptyPath(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.pathEntry.SetText("  ")
	ui.onTuneClick()
	ui.runWG.Wait()

	if ui.notificationLabel.Text != ui.localization.GetText(KeyPleaseEnterPath) {
		t.Errorf("notification = %q", ui.notificationLabel.Text)
	}
	if len(ui.Jobs()) != 0 {
		t.Error("no jobs should be created for an empty path")
	}
}

func TestRootUI_TuneTree(t *testing.T) {
	ui, settings := newTestRootUI(t)
	root := t.TempDir()
	writeAudio(t, filepath.Join(root, "a.mp3"))
	writeAudio(t, filepath.Join(root, "sub", "b.flac"))

	ui.pathEntry.SetText(root)
	ui.onTuneClick()
	ui.runWG.Wait()

	jobs := ui.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	for _, job := range jobs {
		if job.Status != model.JobStatusCompleted {
			t.Errorf("job %s status = %s, want completed", job.GetDisplayTitle(), job.Status)
		}
	}
	for _, path := range []string{
		filepath.Join(root, "432Hz", "a_(432Hz).mp3"),
		filepath.Join(root, "sub", "432Hz", "b_(432Hz).flac"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}

	if settings.GetLastPath() != root {
		t.Errorf("last path = %q, want %q", settings.GetLastPath(), root)
	}
	if ui.tuneBtn.Disabled() || !ui.stopBtn.Disabled() {
		t.Error("form should be idle after the run")
	}
}

func TestRootUI_DryRun(t *testing.T) {
	ui, _ := newTestRootUI(t)
	root := t.TempDir()
	writeAudio(t, filepath.Join(root, "a.opus"))

	ui.dryRunCheck.SetChecked(true)
	ui.pathEntry.SetText(root)
	ui.onTuneClick()
	ui.runWG.Wait()

	jobs := ui.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}
	if jobs[0].Status != model.JobStatusPlanned {
		t.Errorf("status = %s, want planned", jobs[0].Status)
	}
	if jobs[0].Command == "" {
		t.Error("planned job should carry its command")
	}
	if _, err := os.Stat(filepath.Join(root, "432Hz")); !os.IsNotExist(err) {
		t.Error("dry run must not create the output directory")
	}
}

func TestRootUI_OnJobUpdate(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.onJobUpdate(&model.ConversionJob{ID: "a", Status: model.JobStatusRunning})
	ui.onJobUpdate(&model.ConversionJob{ID: "b", Status: model.JobStatusPending})
	ui.onJobUpdate(&model.ConversionJob{ID: "a", Status: model.JobStatusCompleted, Percent: 100})

	jobs := ui.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].ID != "a" || jobs[1].ID != "b" {
		t.Errorf("order = %s,%s, want a,b", jobs[0].ID, jobs[1].ID)
	}
	if jobs[0].Status != model.JobStatusCompleted || jobs[0].Percent != 100 {
		t.Errorf("job a = %s %d%%, want completed 100%%", jobs[0].Status, jobs[0].Percent)
	}
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, settings := newTestRootUI(t)
	settings.SetFileType(model.ExtensionKeep)

	ui.onLanguageChange("pt")

	if ui.tuneBtn.Text != "Afinar" {
		t.Errorf("tune button = %q, want Afinar", ui.tuneBtn.Text)
	}
	if ui.fileTypeSelect.Selected != "Igual ao original" {
		t.Errorf("file type = %q, want the Portuguese keep label", ui.fileTypeSelect.Selected)
	}
	if settings.GetLanguage() != "pt" {
		t.Errorf("stored language = %s, want pt", settings.GetLanguage())
	}
}
