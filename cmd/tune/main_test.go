package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/hz-tuner/internal/model"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		path      string
		frequency model.Frequency
		ext       model.Extension
		dryRun    bool
	}{
		{"defaults", []string{"/music"}, "/music", model.Frequency432, model.ExtensionKeep, false},
		{"flags after path", []string{"/music", "--hz", "639", "--filetype", ".opus"}, "/music", model.Frequency639, model.ExtensionOpus, false},
		{"flags before path", []string{"--hz=639", "-d", "song.mp3"}, "song.mp3", model.Frequency639, model.ExtensionKeep, true},
		{"long dryrun", []string{"/music", "--dryrun", "--filetype", "flac"}, "/music", model.Frequency432, model.ExtensionFLAC, true},
	}

	for _, test := range tests {
		opts, err := parseArgs(test.args, &bytes.Buffer{})
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
			continue
		}
		r := opts.request
		if r.RootPath != test.path || r.Frequency != test.frequency || r.Extension != test.ext || r.DryRun != test.dryRun {
			t.Errorf("%s: unexpected request %+v", test.name, r)
		}
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := [][]string{
		{},
		{"a", "b"},
		{"/music", "--hz", "500"},
		{"/music", "--filetype", ".wav"},
		{"/music", "--unknown"},
	}

	for _, args := range tests {
		if _, err := parseArgs(args, &bytes.Buffer{}); err == nil {
			t.Errorf("parseArgs(%v): expected error", args)
		}
	}
}

func TestParseArgs_ToolFlags(t *testing.T) {
	opts, err := parseArgs([]string{"/music", "--ffmpeg", "/opt/ffmpeg", "--filter", "rubberband", "-k", "-v"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.tuner.FFmpegPath != "/opt/ffmpeg" || opts.tuner.FilterName != "rubberband" {
		t.Errorf("Unexpected tool options %+v", opts.tuner)
	}
	if !opts.tuner.ContinueOnError || !opts.tuner.Verbose {
		t.Errorf("Expected keep-going and verbose, got %+v", opts.tuner)
	}
}

func TestRun_DryRun(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.mp3"), []byte("audio"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{root, "--hz", "639", "--dryrun"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("Expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, "rubberband=pitch=1.0269184411410206") {
		t.Errorf("Expected the generated command in output, got %q", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "Done!") {
		t.Errorf("Expected Done! at the end, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "639Hz")); !os.IsNotExist(err) {
		t.Error("Dry run must not create the output directory")
	}
}

func TestRun_UnsupportedFrequency(t *testing.T) {
	root := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{root, "--hz", "500"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Errorf("Expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr.String(), "unsupported frequency") {
		t.Errorf("Expected frequency error, got %q", stderr.String())
	}
}

func TestRun_InvalidPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr)
	if code != ExitError {
		t.Errorf("Expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "invalid path") {
		t.Errorf("Expected invalid path error, got %q", stderr.String())
	}
}

func TestRun_MissingTool(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.flac"), []byte("audio"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{root, "--ffmpeg", "hz-tuner-no-such-ffmpeg"}, &stdout, &stderr)
	if code != ExitError {
		t.Errorf("Expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "hz-tuner-no-such-ffmpeg") {
		t.Errorf("Expected the missing binary in the error, got %q", stderr.String())
	}
	wantCommand := "tune: failed command: hz-tuner-no-such-ffmpeg -i "
	if !strings.Contains(stderr.String(), wantCommand) {
		t.Errorf("Expected %q in stderr, got %q", wantCommand, stderr.String())
	}
}

func TestRun_KeepGoingListsEveryFailedCommand(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.flac", "b.mp3"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("audio"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{root, "-k", "--ffmpeg", "hz-tuner-no-such-ffmpeg"}, &stdout, &stderr)
	if code != ExitError {
		t.Errorf("Expected exit %d, got %d", ExitError, code)
	}
	if got := strings.Count(stderr.String(), "tune: failed command: "); got != 2 {
		t.Errorf("Expected 2 failed commands, got %d in %q", got, stderr.String())
	}
	if !strings.Contains(stdout.String(), "2 failed") {
		t.Errorf("Expected the summary on stdout, got %q", stdout.String())
	}
}

func TestRun_Version(t *testing.T) {
	var stdout bytes.Buffer
	if code := run(context.Background(), []string{"--version"}, &stdout, &bytes.Buffer{}); code != ExitOK {
		t.Errorf("Expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "tune ") {
		t.Errorf("Unexpected version output %q", stdout.String())
	}
}
