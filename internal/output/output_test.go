package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("🔍", "Searching...")

	// Then: output contains icon and message
	output := buf.String()
	assert.Contains(t, output, "🔍")
	assert.Contains(t, output, "Searching...")
}

func TestWriter_Status_NoIconIndents(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Status("", "indented")

	assert.Equal(t, "   indented\n", buf.String())
}

func TestWriter_MessageIcons(t *testing.T) {
	tests := []struct {
		name  string
		write func(*Writer)
		icon  string
		text  string
	}{
		{"success", func(w *Writer) { w.Success("Report saved") }, "✅", "Report saved"},
		{"warning", func(w *Writer) { w.Warning("Report not saved") }, "⚠️", "Report not saved"},
		{"error", func(w *Writer) { w.Error("Search failed") }, "❌", "Search failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.write(New(buf))

			assert.Contains(t, buf.String(), tt.icon)
			assert.Contains(t, buf.String(), tt.text)
		})
	}
}

func TestNew_BufferIsNotColoured(t *testing.T) {
	// A bytes.Buffer is never a terminal
	w := New(&bytes.Buffer{})
	assert.False(t, w.useColor)
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestWriter_Progress_UpdatesInPlace(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: reporting partial progress
	w.Progress(5, 10, "files")

	// Then: carriage return, bar, percentage and no newline yet
	output := buf.String()
	assert.True(t, strings.HasPrefix(output, "\r["))
	assert.Contains(t, output, "50%")
	assert.Contains(t, output, "files")
	assert.NotContains(t, output, "\n")

	// When: progress completes
	w.Progress(10, 10, "files")

	// Then: the line is terminated
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestWriter_Progress_ZeroTotalPrintsNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Progress(0, 0, "files")
	assert.Empty(t, buf.String())
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		filled  int
	}{
		{"empty", 0, 10, 0},
		{"half", 5, 10, 5},
		{"full", 10, 10, 10},
		{"over", 20, 10, 10},
		{"negative", -5, 10, 0},
		{"zero total", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderProgressBar(tt.current, tt.total, 10)

			assert.Equal(t, 10, len([]rune(bar)))
			assert.Equal(t, tt.filled, strings.Count(bar, "█"))
		})
	}
}
