package tuner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrExternalProcess matches every *ExternalProcessError via errors.Is
var ErrExternalProcess = errors.New("external process failed")

// ExternalProcessError describes a failed pitch-shift invocation
type ExternalProcessError struct {
	Binary   string
	Args     []string
	ExitCode int    // -1 if the process never started or was killed
	Stderr   string // last lines of the tool's stderr
	Err      error
}

func (e *ExternalProcessError) Error() string {
	var b strings.Builder
	if e.ExitCode < 0 {
		fmt.Fprintf(&b, "failed to run %s: %v", e.Binary, e.Err)
	} else {
		fmt.Fprintf(&b, "%s exited with status %d", e.Binary, e.ExitCode)
	}
	if e.Stderr != "" {
		b.WriteString(": ")
		b.WriteString(e.Stderr)
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying exec error
func (e *ExternalProcessError) Unwrap() []error {
	return []error{ErrExternalProcess, e.Err}
}

// CommandLine returns the failed invocation in shell-quoted form
func (e *ExternalProcessError) CommandLine() string {
	return shellquote.Join(append([]string{e.Binary}, e.Args...)...)
}

// BatchError is returned by Traverse when ContinueOnError is set and at least
// one job failed. The run itself went to completion.
type BatchError struct {
	Failed int
	Errs   []error
}

func (e *BatchError) Error() string {
	noun := "conversions"
	if e.Failed == 1 {
		noun = "conversion"
	}
	return fmt.Sprintf("%d %s failed", e.Failed, noun)
}

// Unwrap allows errors.Is/As to look at the individual failures
func (e *BatchError) Unwrap() []error {
	return e.Errs
}
