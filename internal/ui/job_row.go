package ui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hz-tuner/internal/model"
)

// JobRow renders one conversion job in the job list
type JobRow struct {
	widget.BaseWidget

	job          *model.ConversionJob
	localization *Localization

	titleLabel   *widget.Label
	detailLabel  *widget.Label
	statusLabel  *widget.Label
	percentLabel *widget.Label
	progressBar  *widget.ProgressBar
	revealBtn    *widget.Button
	openBtn      *widget.Button
	copyBtn      *widget.Button

	onReveal func(path string)
	onOpen   func(path string)
	onCopy   func(command string)
}

// NewJobRow creates a row for job
func NewJobRow(job *model.ConversionJob, localization *Localization) *JobRow {
	row := &JobRow{localization: localization}

	row.titleLabel = widget.NewLabel("")
	row.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	row.titleLabel.Truncation = fyne.TextTruncateEllipsis
	row.detailLabel = widget.NewLabel("")
	row.detailLabel.Truncation = fyne.TextTruncateEllipsis
	row.statusLabel = widget.NewLabel("")
	row.percentLabel = widget.NewLabel("")
	row.progressBar = widget.NewProgressBar()
	row.progressBar.TextFormatter = func() string { return "" }

	row.revealBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		if row.onReveal != nil && row.job != nil {
			row.onReveal(row.job.DestinationPath)
		}
	})
	row.openBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if row.onOpen != nil && row.job != nil {
			row.onOpen(row.job.DestinationPath)
		}
	})
	row.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		if row.onCopy != nil && row.job != nil {
			row.onCopy(row.job.Command)
		}
	})
	for _, btn := range []*widget.Button{row.revealBtn, row.openBtn, row.copyBtn} {
		btn.Importance = widget.LowImportance
	}

	row.ExtendBaseWidget(row)
	row.UpdateJob(job)
	return row
}

// SetCallbacks wires the row actions
func (r *JobRow) SetCallbacks(onReveal, onOpen func(path string), onCopy func(command string)) {
	r.onReveal = onReveal
	r.onOpen = onOpen
	r.onCopy = onCopy
}

// UpdateJob refreshes the row from a job snapshot
func (r *JobRow) UpdateJob(job *model.ConversionJob) {
	r.job = job
	if job == nil {
		return
	}

	r.titleLabel.SetText(job.GetDisplayTitle())
	r.statusLabel.SetText(r.localization.StatusText(job.Status))
	r.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, job.Percent))
	r.progressBar.SetValue(job.Progress)
	r.detailLabel.SetText(r.detailText(job))

	if job.Status == model.JobStatusCompleted {
		r.revealBtn.Enable()
		r.openBtn.Enable()
	} else {
		r.revealBtn.Disable()
		r.openBtn.Disable()
	}
	if job.Command != "" {
		r.copyBtn.Enable()
	} else {
		r.copyBtn.Disable()
	}
}

// detailText is the second line: the error, the planned command or the destination
func (r *JobRow) detailText(job *model.ConversionJob) string {
	switch {
	case job.Status == model.JobStatusError && job.LastError != "":
		return IconError + " " + job.LastError
	case job.Status == model.JobStatusPlanned:
		return job.Command
	case job.DestinationPath != "":
		return job.Frequency.DirName() + MiddleDotSeparator + filepath.Base(job.DestinationPath)
	default:
		return DashPlaceholder
	}
}

// CreateRenderer implements fyne.Widget
func (r *JobRow) CreateRenderer() fyne.WidgetRenderer {
	status := container.NewGridWrap(fyne.NewSize(StatusLabelWidth, r.statusLabel.MinSize().Height), r.statusLabel)
	percent := container.NewGridWrap(fyne.NewSize(PercentLabelWidth, r.percentLabel.MinSize().Height), r.percentLabel)
	actions := container.NewHBox(r.copyBtn, r.openBtn, r.revealBtn)

	text := container.NewVBox(r.titleLabel, r.detailLabel)
	top := container.NewBorder(nil, nil, nil, container.NewHBox(status, percent, actions), text)

	return widget.NewSimpleRenderer(container.NewVBox(top, r.progressBar))
}
