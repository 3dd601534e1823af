package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hz-tuner/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	ffmpegEntry     *widget.Entry
	ffprobeEntry    *widget.Entry
	filterEntry     *widget.Entry
	continueCheck   *widget.Check
	autoRevealCheck *widget.Check
	languageSelect  *widget.Select

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs after
// the values were stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, window, localization)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder("ffmpeg")
	ffmpegRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(l.GetText(KeyBrowseFile), func() { sd.onBrowseBinary(sd.ffmpegEntry) }), sd.ffmpegEntry)

	sd.ffprobeEntry = widget.NewEntry()
	sd.ffprobeEntry.SetPlaceHolder("ffprobe")
	ffprobeRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(l.GetText(KeyBrowseFile), func() { sd.onBrowseBinary(sd.ffprobeEntry) }), sd.ffprobeEntry)

	sd.filterEntry = widget.NewEntry()
	sd.filterEntry.SetPlaceHolder("rubberband")

	sd.continueCheck = widget.NewCheck(l.GetText(KeyContinueOnError), nil)
	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	sd.languageCodes = make(map[string]string)
	var languageOptions []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyFFmpegPath), ffmpegRow),
		widget.NewFormItem(l.GetText(KeyFFprobePath), ffprobeRow),
		widget.NewFormItem(l.GetText(KeyFilterName), sd.filterEntry),
		widget.NewFormItem("", sd.continueCheck),
		widget.NewFormItem("", sd.autoRevealCheck),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegPath())
	sd.ffprobeEntry.SetText(sd.settings.GetFFprobePath())
	sd.filterEntry.SetText(sd.settings.GetFilterName())
	sd.continueCheck.SetChecked(sd.settings.GetContinueOnError())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

// onBrowseBinary lets the user pick an executable for entry
func (sd *SettingsDialog) onBrowseBinary(entry *widget.Entry) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		entry.SetText(reader.URI().Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Empty entries restore the defaults
	sd.settings.SetFFmpegPath(sd.ffmpegEntry.Text)
	sd.settings.SetFFprobePath(sd.ffprobeEntry.Text)
	sd.settings.SetFilterName(sd.filterEntry.Text)
	sd.settings.SetContinueOnError(sd.continueCheck.Checked)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
		sd.localization.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
