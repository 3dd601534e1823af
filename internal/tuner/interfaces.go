package tuner

import (
	"context"
	"io"

	"github.com/ytget/hz-tuner/internal/model"
)

// Tuner defines the interface for the tuning service.
type Tuner interface {
	SetUpdateCallback(func(*model.ConversionJob))
	BuildJob(sourcePath, outputDir string, frequency model.Frequency, ext model.Extension) (*model.ConversionJob, error)
	RunJob(ctx context.Context, job *model.ConversionJob, dryRun bool) error
	Traverse(ctx context.Context, request model.TuningRequest) (Summary, error)
}

// Executor runs an external program to completion. Implementations stream
// the program's stderr into the given writer.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stderr io.Writer) error
}
