package tuner

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FFmpeg stats parsing constants
const (
	ProgressTimePrefix = "time="
	StderrTailLines    = 8
)

// stderrMonitor consumes FFmpeg stderr. FFmpeg terminates stats updates with
// '\r', so both '\r' and '\n' end a line. The last StderrTailLines lines are
// retained for error reports.
type stderrMonitor struct {
	mu         sync.Mutex
	pending    bytes.Buffer
	tail       []string
	duration   time.Duration
	onProgress func(float64)
}

func newStderrMonitor(duration time.Duration, onProgress func(float64)) *stderrMonitor {
	return &stderrMonitor{duration: duration, onProgress: onProgress}
}

// Write implements io.Writer
func (m *stderrMonitor) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending.Write(p)
	for {
		data := m.pending.Bytes()
		idx := bytes.IndexAny(data, "\r\n")
		if idx < 0 {
			break
		}
		line := string(data[:idx])
		m.pending.Next(idx + 1)
		m.handleLine(line)
	}
	return len(p), nil
}

// Flush processes a trailing line without terminator
func (m *stderrMonitor) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending.Len() > 0 {
		line := m.pending.String()
		m.pending.Reset()
		m.handleLine(line)
	}
}

// Tail returns the retained stderr lines joined by "; "
func (m *stderrMonitor) Tail() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.tail, "; ")
}

func (m *stderrMonitor) handleLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if elapsed, ok := parseStatsTime(line); ok {
		if m.onProgress != nil && m.duration > 0 {
			progress := float64(elapsed) / float64(m.duration)
			if progress > 1.0 {
				progress = 1.0
			}
			m.onProgress(progress)
		}
		return
	}

	m.tail = append(m.tail, line)
	if len(m.tail) > StderrTailLines {
		m.tail = m.tail[len(m.tail)-StderrTailLines:]
	}
}

// parseStatsTime extracts the position from a stats line such as
// "size=  512kB time=00:01:02.50 bitrate= 67.4kbits/s speed=12x".
func parseStatsTime(line string) (time.Duration, bool) {
	idx := strings.Index(line, ProgressTimePrefix)
	if idx < 0 {
		return 0, false
	}
	value := line[idx+len(ProgressTimePrefix):]
	if end := strings.IndexByte(value, ' '); end >= 0 {
		value = value[:end]
	}

	if value == "N/A" {
		return 0, true
	}

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}

	if negative {
		return 0, true
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return total, true
}
