package tuner

import (
	"strings"
	"testing"
	"time"
)

func TestParseStatsTime(t *testing.T) {
	tests := []struct {
		line     string
		expected time.Duration
		ok       bool
	}{
		{"size=     512kB time=00:01:02.50 bitrate=  67.4kbits/s speed=12x", 62500 * time.Millisecond, true},
		{"size=0kB time=01:00:00.00 bitrate=N/A", time.Hour, true},
		{"size=0kB time=N/A bitrate=N/A speed=N/A", 0, true},
		{"size=0kB time=-00:00:00.02 bitrate=N/A", 0, true},
		{"Stream #0:0: Audio: mp3, 44100 Hz, stereo", 0, false},
		{"time=garbage", 0, false},
	}

	for _, test := range tests {
		result, ok := parseStatsTime(test.line)
		if ok != test.ok || result != test.expected {
			t.Errorf("parseStatsTime(%q) = (%v, %v), expected (%v, %v)", test.line, result, ok, test.expected, test.ok)
		}
	}
}

func TestStderrMonitor_ProgressAcrossWrites(t *testing.T) {
	var got []float64
	monitor := newStderrMonitor(20*time.Second, func(p float64) {
		got = append(got, p)
	})

	// Split a stats line across two writes
	monitor.Write([]byte("size=1kB time=00:00:"))
	monitor.Write([]byte("05.00 bitrate=1k\rsize=2kB time=00:00:30.00 bitrate=1k\r"))
	monitor.Flush()

	if len(got) != 2 {
		t.Fatalf("Expected 2 progress updates, got %d", len(got))
	}
	if got[0] != 0.25 {
		t.Errorf("Expected 0.25, got %v", got[0])
	}
	if got[1] != 1.0 {
		t.Errorf("Expected progress clamped to 1.0, got %v", got[1])
	}
}

func TestStderrMonitor_Tail(t *testing.T) {
	monitor := newStderrMonitor(0, nil)
	for i := 0; i < StderrTailLines+3; i++ {
		monitor.Write([]byte("line " + string(rune('a'+i)) + "\n"))
	}
	monitor.Write([]byte("last without newline"))
	monitor.Flush()

	tail := monitor.Tail()
	parts := strings.Split(tail, "; ")
	if len(parts) != StderrTailLines {
		t.Fatalf("Expected %d tail lines, got %d: %q", StderrTailLines, len(parts), tail)
	}
	if parts[len(parts)-1] != "last without newline" {
		t.Errorf("Expected flushed line at the end, got %q", parts[len(parts)-1])
	}
	if strings.Contains(tail, "line a") {
		t.Errorf("Oldest lines should be dropped: %q", tail)
	}
}
