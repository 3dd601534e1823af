package tuner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/platform"
)

// FFmpeg argument constants
const (
	InputFlag       = "-i"
	AudioFilterFlag = "-af"
	OverwriteFlag   = "-y"
	AudioCodecFlag  = "-acodec"
	AudioBitrateArg = "-b:a"
	PitchParam      = "pitch"
	JobIDPrefix     = "tune-"
)

// ProbeFunc returns the playback duration of a media file
type ProbeFunc func(ctx context.Context, ffprobePath, filePath string) (time.Duration, error)

// Service handles pitch-shift conversions
type Service struct {
	opts     Options
	executor Executor
	probe    ProbeFunc
	out      io.Writer // dry-run command lines

	jobsMutex sync.Mutex
	onUpdate  func(*model.ConversionJob) // callback for UI updates
}

var _ Tuner = (*Service)(nil)

// NewService creates a new tuning service backed by os/exec
func NewService(opts Options) *Service {
	return &Service{
		opts:     opts.withDefaults(),
		executor: NewExecExecutor(),
		probe:    platform.ProbeDuration,
		out:      os.Stdout,
	}
}

// Options returns the effective options
func (s *Service) Options() Options {
	return s.opts
}

// SetExecutor replaces the process runner
func (s *Service) SetExecutor(executor Executor) {
	s.executor = executor
}

// SetProbe replaces the duration probe used for progress tracking
func (s *Service) SetProbe(probe ProbeFunc) {
	s.probe = probe
}

// SetOutput sets where dry-run command lines are written
func (s *Service) SetOutput(w io.Writer) {
	s.out = w
}

// SetUpdateCallback sets the callback function for job updates. The callback
// receives a snapshot and may run on a different goroutine than the caller
// of Traverse.
func (s *Service) SetUpdateCallback(callback func(*model.ConversionJob)) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	s.onUpdate = callback
}

// IsAudio reports whether path names an existing regular file with a
// supported audio extension. Extension matching ignores case.
func IsAudio(path string) bool {
	if !model.ExtensionOf(path).IsSupported() {
		return false
	}
	return platform.IsRegularFile(path)
}

// BuildJob prepares the conversion of sourcePath into outputDir
func (s *Service) BuildJob(sourcePath, outputDir string, frequency model.Frequency, ext model.Extension) (*model.ConversionJob, error) {
	factor, err := frequency.ScaleFactor()
	if err != nil {
		return nil, err
	}
	if ext == model.ExtensionKeep {
		ext = model.ExtensionOf(sourcePath)
	}
	codec, err := ext.Codec()
	if err != nil {
		return nil, err
	}

	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", sourcePath, err)
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", outputDir, err)
	}

	return &model.ConversionJob{
		ID:              generateJobID(),
		SourcePath:      absSource,
		DestinationPath: filepath.Join(absOutput, model.DestinationName(absSource, frequency, ext)),
		Frequency:       frequency,
		ScaleFactor:     factor,
		Codec:           codec.Codec,
		Bitrate:         codec.Bitrate,
		Status:          model.JobStatusPending,
	}, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(job *model.ConversionJob) []string {
	return []string{
		InputFlag, job.SourcePath, // Input file
		AudioFilterFlag, s.filterArg(job.ScaleFactor), // Pitch shift
		OverwriteFlag,                // Overwrite output file
		AudioCodecFlag, job.Codec, // Audio codec
		AudioBitrateArg, job.Bitrate, // Audio bitrate
		job.DestinationPath, // Output file
	}
}

// CommandLine returns the shell-quoted invocation for job
func (s *Service) CommandLine(job *model.ConversionJob) string {
	return shellquote.Join(append([]string{s.opts.FFmpegPath}, s.BuildFFmpegArgs(job)...)...)
}

// filterArg renders "rubberband=pitch=0.9818181818181818"
func (s *Service) filterArg(factor float64) string {
	return fmt.Sprintf("%s=%s=%s", s.opts.FilterName, PitchParam, strconv.FormatFloat(factor, 'f', -1, 64))
}

// RunJob converts one file synchronously. A dry run only prints the command.
func (s *Service) RunJob(ctx context.Context, job *model.ConversionJob, dryRun bool) error {
	args := s.BuildFFmpegArgs(job)
	job.Command = s.CommandLine(job)

	if dryRun {
		if _, err := fmt.Fprintln(s.out, job.Command); err != nil {
			return fmt.Errorf("failed to write command: %w", err)
		}
		s.updateJob(job, func(j *model.ConversionJob) {
			j.Status = model.JobStatusPlanned
		})
		return nil
	}

	s.updateJob(job, func(j *model.ConversionJob) {
		j.Status = model.JobStatusRunning
		j.StartedAt = time.Now()
	})
	if s.opts.Verbose {
		log.Printf("Converting %s -> %s", job.SourcePath, job.DestinationPath)
	}

	monitor := newStderrMonitor(s.sourceDuration(ctx, job), func(progress float64) {
		s.updateJob(job, func(j *model.ConversionJob) {
			j.Progress = progress
			j.Percent = int(progress * 100)
		})
	})

	// Outputs of earlier runs are never removed
	_, statErr := os.Lstat(job.DestinationPath)
	preexisting := statErr == nil

	err := s.executor.Run(ctx, s.opts.FFmpegPath, args, monitor)
	monitor.Flush()

	if err != nil {
		if !preexisting {
			// Remove partial output file
			os.Remove(job.DestinationPath)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			s.finishJob(job, model.JobStatusStopped, ctxErr)
			return ctxErr
		}

		procErr := &ExternalProcessError{
			Binary:   s.opts.FFmpegPath,
			Args:     args,
			ExitCode: exitCode(err),
			Stderr:   monitor.Tail(),
			Err:      err,
		}
		s.finishJob(job, model.JobStatusError, procErr)
		return fmt.Errorf("convert %s: %w", job.SourcePath, procErr)
	}

	s.finishJob(job, model.JobStatusCompleted, nil)
	if s.opts.Verbose {
		log.Printf("Finished %s in %s", job.DestinationPath, job.Elapsed().Round(time.Millisecond))
	}
	return nil
}

// sourceDuration probes the input when progress tracking is on; 0 disables
// fractional progress
func (s *Service) sourceDuration(ctx context.Context, job *model.ConversionJob) time.Duration {
	if !s.opts.TrackProgress || s.probe == nil {
		return 0
	}
	duration, err := s.probe(ctx, s.opts.FFprobePath, job.SourcePath)
	if err != nil {
		log.Printf("Failed to get duration for %s: %v", job.SourcePath, err)
		return 0
	}
	return duration
}

// finishJob moves job into a terminal state
func (s *Service) finishJob(job *model.ConversionJob, status model.JobStatus, err error) {
	s.updateJob(job, func(j *model.ConversionJob) {
		j.Status = status
		j.FinishedAt = time.Now()
		if err != nil {
			j.LastError = err.Error()
			return
		}
		j.Progress = 1.0
		j.Percent = 100
	})
}

// updateJob applies mutate under the lock and notifies the callback with a copy
func (s *Service) updateJob(job *model.ConversionJob, mutate func(*model.ConversionJob)) {
	s.jobsMutex.Lock()
	mutate(job)
	snapshot := *job
	callback := s.onUpdate
	s.jobsMutex.Unlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// exitCode extracts the process exit status, -1 if it never ran
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// generateJobID generates a unique job ID using UUID v7 for time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
