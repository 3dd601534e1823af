package tuner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/platform"
)

// Summary reports what a Traverse call did
type Summary struct {
	Directories int // directories listed
	SkippedDirs int // existing output directories not descended into
	Discovered  int // audio files found
	Converted   int
	Planned     int // dry-run jobs
	Failed      int
	Duration    time.Duration
}

// String renders a one-line run summary
func (s Summary) String() string {
	return fmt.Sprintf("%d audio files in %d directories: %d converted, %d planned, %d failed, %d output directories skipped (%s)",
		s.Discovered, s.Directories, s.Converted, s.Planned, s.Failed, s.SkippedDirs, s.Duration.Round(time.Millisecond))
}

// run carries the mutable state of one Traverse call
type run struct {
	request  model.TuningRequest
	summary  Summary
	failures []error
}

// Traverse tunes a single audio file or every audio file below a directory.
// The request is validated before the filesystem is touched.
func (s *Service) Traverse(ctx context.Context, request model.TuningRequest) (Summary, error) {
	started := time.Now()
	r := &run{request: request}

	err := s.traverse(ctx, r)
	r.summary.Duration = time.Since(started)
	if err != nil {
		return r.summary, err
	}
	if len(r.failures) > 0 {
		return r.summary, &BatchError{Failed: len(r.failures), Errs: r.failures}
	}
	return r.summary, nil
}

func (s *Service) traverse(ctx context.Context, r *run) error {
	if err := r.request.Validate(); err != nil {
		return err
	}

	root := r.request.RootPath
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", model.ErrInvalidPath, root)
		}
		return fmt.Errorf("%w: %v", model.ErrInvalidPath, err)
	}

	// Tuning inside an output directory would nest <f>Hz/<f>Hz
	inputDir := root
	if !info.IsDir() {
		inputDir = filepath.Dir(root)
	}
	if filepath.Base(filepath.Clean(inputDir)) == r.request.Frequency.DirName() {
		return fmt.Errorf("%w: %s is a %s output directory", model.ErrInvalidPath, inputDir, r.request.Frequency.DirName())
	}

	switch {
	case info.Mode().IsRegular():
		if !IsAudio(root) {
			return fmt.Errorf("%w: %s is not a supported audio file", model.ErrInvalidPath, root)
		}
		r.summary.Discovered++
		return s.tuneFiles(ctx, r, filepath.Dir(root), []string{root})
	case info.IsDir():
		return s.walk(ctx, r, root)
	default:
		return fmt.Errorf("%w: %s is neither a file nor a directory", model.ErrInvalidPath, root)
	}
}

// walk visits directories breadth-first from an explicit queue. Each
// directory is listed exactly once and the same listing supplies both its
// audio files and its subdirectories, so output directories created while
// tuning are never picked up as input.
func (s *Service) walk(ctx context.Context, r *run, root string) error {
	outputName := r.request.Frequency.DirName()
	queue := []string{root}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		dir := queue[0]
		queue = queue[1:]

		entries, err := platform.ListDirectory(dir)
		if err != nil {
			if dir == root {
				return fmt.Errorf("%w: %v", model.ErrInvalidPath, err)
			}
			if ferr := s.recordFailure(r, err); ferr != nil {
				return ferr
			}
			continue
		}
		r.summary.Directories++

		var audioFiles []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if entry.Name() == outputName {
					r.summary.SkippedDirs++
					if s.opts.Verbose {
						log.Printf("Skipping output directory %s", path)
					}
					continue
				}
				queue = append(queue, path)
				continue
			}
			if IsAudio(path) {
				audioFiles = append(audioFiles, path)
			}
		}

		if len(audioFiles) == 0 {
			continue
		}
		r.summary.Discovered += len(audioFiles)
		if err := s.tuneFiles(ctx, r, dir, audioFiles); err != nil {
			return err
		}
	}
	return nil
}

// tuneFiles ensures <dir>/<f>Hz exists and converts files into it
func (s *Service) tuneFiles(ctx context.Context, r *run, dir string, files []string) error {
	outputDir := filepath.Join(dir, r.request.Frequency.DirName())
	if !r.request.DryRun {
		if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
			return s.recordFailure(r, fmt.Errorf("create output directory: %w", err))
		}
	}

	for _, file := range files {
		job, err := s.BuildJob(file, outputDir, r.request.Frequency, r.request.OutputExtension(file))
		if err != nil {
			return err
		}

		err = s.RunJob(ctx, job, r.request.DryRun)
		switch {
		case err == nil && r.request.DryRun:
			r.summary.Planned++
		case err == nil:
			r.summary.Converted++
		case ctx.Err() != nil:
			return err
		default:
			if ferr := s.recordFailure(r, err); ferr != nil {
				return ferr
			}
		}
	}
	return nil
}

// recordFailure counts a failed step. It returns err when the run must abort.
func (s *Service) recordFailure(r *run, err error) error {
	r.summary.Failed++
	if !s.opts.ContinueOnError {
		return err
	}
	log.Printf("Continuing after failure: %v", err)
	r.failures = append(r.failures, err)
	return nil
}
