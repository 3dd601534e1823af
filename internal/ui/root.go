package ui

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hz-tuner/internal/config"
	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/platform"
	"github.com/ytget/hz-tuner/internal/tuner"
)

// TunerFactory creates the service for one run from the current settings
type TunerFactory func(opts tuner.Options) *tuner.Service

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	newTuner     TunerFactory

	pathEntry       *widget.Entry
	browseFileBtn   *widget.Button
	browseFolderBtn *widget.Button
	frequencySelect *widget.Select
	fileTypeSelect  *widget.Select
	dryRunCheck     *widget.Check
	tuneBtn         *widget.Button
	stopBtn         *widget.Button
	settingsBtn     *widget.Button
	jobList         *widget.List

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	jobsMutex sync.Mutex
	jobs      []*model.ConversionJob
	jobIndex  map[string]int

	runMutex sync.Mutex
	cancel   context.CancelFunc
	runWG    sync.WaitGroup

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI. A nil factory uses
// tuner.NewService.
func NewRootUI(window fyne.Window, settings *config.Settings, newTuner TunerFactory) *RootUI {
	if newTuner == nil {
		newTuner = tuner.NewService
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		newTuner:     newTuner,
		jobIndex:     make(map[string]int),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()
	l := ui.localization

	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetPlaceHolder(l.GetText(KeyEnterPath))
	ui.pathEntry.SetText(ui.settings.GetLastPath())
	ui.pathEntry.OnSubmitted = func(string) {
		ui.onTuneClick()
	}

	ui.browseFileBtn = widget.NewButtonWithIcon(l.GetText(KeyBrowseFile), theme.FileAudioIcon(), ui.onBrowseFile)
	ui.browseFolderBtn = widget.NewButtonWithIcon(l.GetText(KeyBrowseFolder), theme.FolderOpenIcon(), ui.onBrowseFolder)

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	pathRow := container.NewBorder(nil, nil, ui.settingsBtn,
		container.NewHBox(ui.browseFileBtn, ui.browseFolderBtn), ui.pathEntry)

	ui.frequencySelect = widget.NewSelect(frequencyOptions(), func(selected string) {
		if frequency, err := model.ParseFrequency(selected); err == nil {
			ui.settings.SetFrequency(frequency)
		}
	})
	ui.frequencySelect.SetSelected(ui.settings.GetFrequency().DirName())

	ui.fileTypeSelect = widget.NewSelect(ui.fileTypeOptions(), func(selected string) {
		if ext, ok := ui.parseFileType(selected); ok {
			ui.settings.SetFileType(ext)
		}
	})
	ui.fileTypeSelect.SetSelected(ui.fileTypeLabel(ui.settings.GetFileType()))

	ui.dryRunCheck = widget.NewCheck(l.GetText(KeyDryRun), ui.settings.SetDryRun)
	ui.dryRunCheck.SetChecked(ui.settings.GetDryRun())

	ui.tuneBtn = widget.NewButtonWithIcon(l.GetText(KeyTune), theme.MediaPlayIcon(), ui.onTuneClick)
	ui.tuneBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButtonWithIcon(l.GetText(KeyStop), theme.MediaStopIcon(), ui.onStopClick)
	ui.stopBtn.Disable()

	optionsRow := container.NewHBox(
		widget.NewIcon(theme.MediaMusicIcon()),
		ui.frequencySelect,
		ui.fileTypeSelect,
		ui.dryRunCheck,
		layout.NewSpacer(),
		ui.stopBtn,
		ui.tuneBtn,
	)

	// Notification panel (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(pathRow, optionsRow, ui.notificationContainer, widget.NewSeparator())

	ui.jobList = widget.NewList(
		ui.jobCount,
		func() fyne.CanvasObject { return ui.createJobItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateJobItem(id, obj) },
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.jobList))
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.pathEntry.SetPlaceHolder(l.GetText(KeyEnterPath))
	ui.browseFileBtn.SetText(l.GetText(KeyBrowseFile))
	ui.browseFolderBtn.SetText(l.GetText(KeyBrowseFolder))
	ui.dryRunCheck.Text = l.GetText(KeyDryRun)
	ui.dryRunCheck.Refresh()
	ui.tuneBtn.SetText(l.GetText(KeyTune))
	ui.stopBtn.SetText(l.GetText(KeyStop))

	ui.fileTypeSelect.Options = ui.fileTypeOptions()
	ui.fileTypeSelect.SetSelected(ui.fileTypeLabel(ui.settings.GetFileType()))

	ui.jobList.Refresh()
}

// frequencyOptions lists the select labels, e.g. "432Hz"
func frequencyOptions() []string {
	var options []string
	for _, f := range model.SupportedFrequencies() {
		options = append(options, f.DirName())
	}
	return options
}

// fileTypeOptions lists the keep-format label followed by the extensions
func (ui *RootUI) fileTypeOptions() []string {
	options := []string{ui.localization.GetText(KeyKeepFormat)}
	for _, ext := range model.SupportedExtensions() {
		options = append(options, string(ext))
	}
	return options
}

func (ui *RootUI) fileTypeLabel(ext model.Extension) string {
	if ext == model.ExtensionKeep {
		return ui.localization.GetText(KeyKeepFormat)
	}
	return string(ext)
}

func (ui *RootUI) parseFileType(label string) (model.Extension, bool) {
	if label == ui.localization.GetText(KeyKeepFormat) {
		return model.ExtensionKeep, true
	}
	ext, err := model.ParseExtension(label)
	if err != nil {
		return "", false
	}
	return ext, true
}

// onBrowseFile picks a single audio file
func (ui *RootUI) onBrowseFile() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		ui.pathEntry.SetText(reader.URI().Path())
	}, ui.window)

	var exts []string
	for _, ext := range model.SupportedExtensions() {
		exts = append(exts, string(ext), strings.ToUpper(string(ext)))
	}
	fd.SetFilter(storage.NewExtensionFileFilter(exts))
	if location := ui.browseLocation(); location != nil {
		fd.SetLocation(location)
	}
	fd.Show()
}

// onBrowseFolder picks a directory tree
func (ui *RootUI) onBrowseFolder() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.pathEntry.SetText(uri.Path())
	}, ui.window)
	if location := ui.browseLocation(); location != nil {
		fd.SetLocation(location)
	}
	fd.Show()
}

// browseLocation is the directory of the current path, if it exists
func (ui *RootUI) browseLocation() fyne.ListableURI {
	dir := strings.TrimSpace(ui.pathEntry.Text)
	if dir == "" {
		return nil
	}
	if info, err := os.Stat(dir); err != nil {
		return nil
	} else if !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return lister
}

// onTuneClick validates the form and starts a run in the background
func (ui *RootUI) onTuneClick() {
	path := strings.TrimSpace(ui.pathEntry.Text)
	if path == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterPath), false)
		return
	}

	ui.settings.SetLastPath(path)
	request := ui.settings.Request(path)
	if err := request.Validate(); err != nil {
		ui.showNotification(ui.localization.GetText(KeyTuningFailed)+": "+err.Error(), false)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.runMutex.Lock()
	if ui.cancel != nil {
		ui.runMutex.Unlock()
		cancel()
		return
	}
	ui.cancel = cancel
	ui.runMutex.Unlock()

	svc := ui.newTuner(ui.settings.TunerOptions())
	svc.SetOutput(io.Discard)
	svc.SetUpdateCallback(ui.onJobUpdate)

	ui.clearJobs()
	ui.setRunning(true)
	ui.showNotification(ui.localization.GetText(KeyTuningStarted), true)
	log.Printf("Tuning %s to %s (extension %s, dry run %v)", request.RootPath, request.Frequency.DirName(), request.Extension, request.DryRun)

	ui.runWG.Add(1)
	go ui.runTraverse(ctx, svc, request)
}

// runTraverse runs on its own goroutine until the service returns
func (ui *RootUI) runTraverse(ctx context.Context, svc *tuner.Service, request model.TuningRequest) {
	defer ui.runWG.Done()

	summary, err := svc.Traverse(ctx, request)

	ui.runMutex.Lock()
	if ui.cancel != nil {
		ui.cancel()
		ui.cancel = nil
	}
	ui.runMutex.Unlock()

	log.Printf("Tuning finished: %s", summary)
	if err != nil {
		log.Printf("Tuning error: %v", err)
	}

	fyne.Do(func() {
		ui.onRunFinished(request, summary, err)
	})
}

// onRunFinished reports the outcome; runs on the UI goroutine
func (ui *RootUI) onRunFinished(request model.TuningRequest, summary tuner.Summary, err error) {
	ui.setRunning(false)
	ui.jobList.Refresh()

	l := ui.localization
	switch {
	case errors.Is(err, context.Canceled):
		ui.showNotification(l.GetText(KeyTuningStopped)+MiddleDotSeparator+summary.String(), false)
	case err != nil:
		ui.showNotification(l.GetText(KeyTuningFailed)+": "+err.Error(), false)
		dialog.ShowError(err, ui.window)
	default:
		ui.showNotification(IconDone+" "+l.GetText(KeyTuningFinished)+MiddleDotSeparator+summary.String(), false)
		if !request.DryRun && summary.Converted > 0 {
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   l.GetText(KeyTuningFinished),
				Content: summary.String(),
			})
			if ui.settings.GetAutoRevealOnComplete() {
				if dest := ui.firstCompletedDestination(); dest != "" {
					ui.onRevealFile(dest)
				}
			}
		}
	}
}

// onStopClick cancels the running traversal
func (ui *RootUI) onStopClick() {
	ui.runMutex.Lock()
	cancel := ui.cancel
	ui.runMutex.Unlock()

	if cancel == nil {
		return
	}
	ui.showNotification(ui.localization.GetText(KeyStopping), true)
	cancel()
}

// setRunning toggles the form between idle and running
func (ui *RootUI) setRunning(running bool) {
	controls := []fyne.Disableable{
		ui.pathEntry, ui.browseFileBtn, ui.browseFolderBtn,
		ui.frequencySelect, ui.fileTypeSelect, ui.dryRunCheck, ui.tuneBtn,
	}
	for _, c := range controls {
		if running {
			c.Disable()
		} else {
			c.Enable()
		}
	}
	if running {
		ui.stopBtn.Enable()
	} else {
		ui.stopBtn.Disable()
	}
}

// showNotification displays a message in the notification panel under the form.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.refreshUITexts()
		ui.createMenu()
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// createJobItem creates a new job row for the list
func (ui *RootUI) createJobItem() fyne.CanvasObject {
	row := NewJobRow(&model.ConversionJob{Status: model.JobStatusPending}, ui.localization)
	row.SetCallbacks(ui.onRevealFile, ui.onOpenFile, ui.onCopyCommand)
	return row
}

// updateJobItem binds the job at id to a recycled row
func (ui *RootUI) updateJobItem(id widget.ListItemID, item fyne.CanvasObject) {
	job := ui.jobAt(id)
	if job == nil {
		return
	}
	if row, ok := item.(*JobRow); ok {
		row.UpdateJob(job)
	}
}

func (ui *RootUI) jobCount() int {
	ui.jobsMutex.Lock()
	defer ui.jobsMutex.Unlock()
	return len(ui.jobs)
}

func (ui *RootUI) jobAt(id int) *model.ConversionJob {
	ui.jobsMutex.Lock()
	defer ui.jobsMutex.Unlock()
	if id < 0 || id >= len(ui.jobs) {
		return nil
	}
	return ui.jobs[id]
}

// Jobs returns the jobs of the current or last run in discovery order
func (ui *RootUI) Jobs() []*model.ConversionJob {
	ui.jobsMutex.Lock()
	defer ui.jobsMutex.Unlock()
	jobs := make([]*model.ConversionJob, len(ui.jobs))
	copy(jobs, ui.jobs)
	return jobs
}

func (ui *RootUI) clearJobs() {
	ui.jobsMutex.Lock()
	ui.jobs = nil
	ui.jobIndex = make(map[string]int)
	ui.jobsMutex.Unlock()
	ui.jobList.Refresh()
}

// firstCompletedDestination returns the first converted file of the run
func (ui *RootUI) firstCompletedDestination() string {
	for _, job := range ui.Jobs() {
		if job.Status == model.JobStatusCompleted {
			return job.DestinationPath
		}
	}
	return ""
}

// onJobUpdate receives job snapshots from the tuner goroutine
func (ui *RootUI) onJobUpdate(job *model.ConversionJob) {
	ui.jobsMutex.Lock()
	idx, exists := ui.jobIndex[job.ID]
	statusChanged := true
	if exists {
		statusChanged = ui.jobs[idx].Status != job.Status
		ui.jobs[idx] = job
	} else {
		idx = len(ui.jobs)
		ui.jobIndex[job.ID] = idx
		ui.jobs = append(ui.jobs, job)
	}
	ui.jobsMutex.Unlock()

	if statusChanged && job.Status == model.JobStatusError {
		log.Printf("Job %s failed: %s", job.ID, job.LastError)
	}

	// Progress ticks are debounced; new rows and status changes always redraw
	if !statusChanged && !ui.debouncedUIUpdate() {
		return
	}

	fyne.Do(func() {
		if exists {
			ui.jobList.RefreshItem(idx)
			return
		}
		ui.jobList.Refresh()
		ui.jobList.ScrollToBottom()
	})
}

// debouncedUIUpdate reports whether enough time passed since the last redraw
func (ui *RootUI) debouncedUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onOpenFile opens a tuned file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error(), false)
	}
}

// onCopyCommand copies the FFmpeg command line of a job
func (ui *RootUI) onCopyCommand(command string) {
	if command == "" {
		return
	}
	fyne.CurrentApp().Clipboard().SetContent(command)
	ui.showNotification(ui.localization.GetText(KeyCommandCopied), false)
}
