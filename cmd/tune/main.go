// Command tune pitch-shifts audio files to 432 Hz or 639 Hz tuning.
//
//	tune <path> [--hz {432,639}] [--filetype {.mp3,.opus,.flac}] [-d|--dryrun]
//
// A directory is walked recursively; results land in a "<hz>Hz" folder next
// to each group of source files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ytget/hz-tuner/internal/model"
	"github.com/ytget/hz-tuner/internal/tuner"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// cliOptions holds the parsed command line
type cliOptions struct {
	request model.TuningRequest
	tuner   tuner.Options
	version bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("tune: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "tune: %v\n", err)
		return ExitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "tune %s\n", version)
		return ExitOK
	}

	service := tuner.NewService(opts.tuner)
	service.SetOutput(stdout)
	if !opts.request.DryRun {
		service.SetUpdateCallback(func(job *model.ConversionJob) {
			switch job.Status {
			case model.JobStatusRunning:
				fmt.Fprintf(stdout, "Tuning %s -> %s\n", job.SourcePath, job.DestinationPath)
			case model.JobStatusError:
				fmt.Fprintf(stderr, "tune: failed %s: %s\n", job.SourcePath, job.LastError)
			}
		})
	}

	summary, err := service.Traverse(ctx, opts.request)
	if err != nil {
		var batchErr *tuner.BatchError
		if errors.As(err, &batchErr) {
			fmt.Fprintln(stdout, summary.String())
		}
		fmt.Fprintf(stderr, "tune: %v\n", err)
		for _, command := range failedCommands(err) {
			fmt.Fprintf(stderr, "tune: failed command: %s\n", command)
		}
		return ExitError
	}

	if opts.tuner.Verbose {
		fmt.Fprintln(stdout, summary.String())
	}
	fmt.Fprintln(stdout, "Done!")
	return ExitOK
}

// parseArgs parses flags and the positional path. Flags may appear before or
// after the path.
func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	var (
		opts     cliOptions
		hz       string
		fileType string
	)
	defaults := tuner.DefaultOptions()

	fs := pflag.NewFlagSet("tune", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tune <path> [--hz {432,639}] [--filetype {.mp3,.opus,.flac}] [--dryrun]")
		fs.PrintDefaults()
	}

	fs.StringVar(&hz, "hz", strconv.Itoa(int(model.DefaultFrequency)), "desired output tuning frequency ("+joinFrequencies()+")")
	fs.StringVar(&fileType, "filetype", "", "output file type ("+joinExtensions()+"); keeps the source type when empty")
	fs.BoolVarP(&opts.request.DryRun, "dryrun", "d", false, "print the generated commands without running them")
	fs.StringVar(&opts.tuner.FFmpegPath, "ffmpeg", defaults.FFmpegPath, "pitch-shift binary")
	fs.StringVar(&opts.tuner.FFprobePath, "ffprobe", defaults.FFprobePath, "duration probe binary")
	fs.StringVar(&opts.tuner.FilterName, "filter", defaults.FilterName, "audio filter taking a pitch= parameter")
	fs.BoolVarP(&opts.tuner.ContinueOnError, "keep-going", "k", false, "continue after a failed conversion and report a summary")
	fs.BoolVarP(&opts.tuner.Verbose, "verbose", "v", false, "log every conversion and print a summary")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected exactly one path, got %d", fs.NArg())
	}
	opts.request.RootPath = fs.Arg(0)

	frequency, err := model.ParseFrequency(hz)
	if err != nil {
		return opts, err
	}
	opts.request.Frequency = frequency

	ext, err := model.ParseExtension(fileType)
	if err != nil {
		return opts, err
	}
	opts.request.Extension = ext

	return opts, nil
}

// failedCommands returns the shell-quoted invocations behind err, one per
// failed conversion
func failedCommands(err error) []string {
	errs := []error{err}
	var batchErr *tuner.BatchError
	if errors.As(err, &batchErr) {
		errs = batchErr.Errs
	}

	var commands []string
	for _, e := range errs {
		var procErr *tuner.ExternalProcessError
		if errors.As(e, &procErr) {
			commands = append(commands, procErr.CommandLine())
		}
	}
	return commands
}

func joinFrequencies() string {
	var parts []string
	for _, f := range model.SupportedFrequencies() {
		parts = append(parts, strconv.Itoa(int(f)))
	}
	return strings.Join(parts, ", ")
}

func joinExtensions() string {
	var parts []string
	for _, ext := range model.SupportedExtensions() {
		parts = append(parts, string(ext))
	}
	return strings.Join(parts, ", ")
}
