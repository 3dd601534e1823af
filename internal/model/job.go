package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// ConversionJob represents the conversion of one source file
type ConversionJob struct {
	ID              string
	SourcePath      string // absolute
	DestinationPath string // absolute
	Frequency       Frequency
	ScaleFactor     float64
	Codec           string
	Bitrate         string
	Status          JobStatus
	Progress        float64 // 0.0 to 1.0
	Percent         int     // 0 to 100
	Command         string  // shell-quoted command line, set once the job runs
	LastError       string  // last error message if any
	StartedAt       time.Time
	FinishedAt      time.Time
}

// DestinationName builds "<stem>_(<f>Hz)<ext>" for source
func DestinationName(source string, frequency Frequency, ext Extension) string {
	stem, _ := splitName(source)
	return fmt.Sprintf("%s_(%s)%s", stem, frequency.DirName(), string(ext))
}

// GetDisplayTitle returns the source file name without directories
func (j *ConversionJob) GetDisplayTitle() string {
	if j.SourcePath == "" {
		return j.ID
	}
	return filepath.Base(j.SourcePath)
}

// Elapsed returns the run time of a started job
func (j *ConversionJob) Elapsed() time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if j.FinishedAt.IsZero() {
		return time.Since(j.StartedAt)
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
