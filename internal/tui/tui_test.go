package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"nerja/internal/processor"
)

func TestModelAccumulatesUpdates(t *testing.T) {
	updates := make(chan processor.ProgressUpdate, 4)
	var m tea.Model = NewModel(updates, 4)

	m, _ = m.Update(updateMsg{FilesDelta: 1, ImagesDelta: 1, HDDelta: 1, CopiedDelta: 1, BytesDelta: 2048})
	m, _ = m.Update(updateMsg{FilesDelta: 1, SkippedDelta: 1})
	m, _ = m.Update(updateMsg{FilesDelta: 1, FailedDelta: 1, Warning: "copy a.jpg: denied"})

	model := m.(Model)
	assert.Equal(t, 3, model.files)
	assert.Equal(t, 1, model.copied)
	assert.Equal(t, 1, model.skipped)
	assert.Equal(t, 1, model.failed)
	assert.Equal(t, int64(2048), model.bytes)
	assert.Equal(t, 1, model.warnings)
	assert.InDelta(t, 0.75, model.ratio(), 1e-9)

	view := model.View()
	assert.Contains(t, view, "Files: 3/4")
	assert.Contains(t, view, "2.0 KiB")
	assert.Contains(t, view, "copy a.jpg: denied")
}

func TestModelQuitsWhenUpdatesClose(t *testing.T) {
	updates := make(chan processor.ProgressUpdate)
	close(updates)
	m := NewModel(updates, 0)

	msg := m.Init()()
	assert.Equal(t, doneMsg{}, msg)

	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}

func TestModelRatioClamps(t *testing.T) {
	m := NewModel(nil, 0)
	assert.Equal(t, 0.0, m.ratio())

	m.total = 1
	m.files = 3
	assert.Equal(t, 1.0, m.ratio())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(1536*1024))
	assert.Equal(t, "2.0 GiB", FormatBytes(2<<30))
}

func TestStatsRows(t *testing.T) {
	stats := processor.Stats{Files: 3, Images: 2, HD: 1, Landscape: 1, Suitable: 1, Copied: 1, Bytes: 10}

	reportOnly := StatsRows(stats, true)
	assert.Len(t, reportOnly, 5)

	full := StatsRows(stats, false)
	assert.Len(t, full, 10)
	assert.Equal(t, SummaryRow{Label: "Copied", Value: "1"}, full[5])

	table := RenderSummary(full)
	assert.Contains(t, table, "Files scanned")
	assert.Contains(t, table, "10 (10 B)")
}

func TestRenderRatios(t *testing.T) {
	assert.Contains(t, RenderRatios(nil), "No landscape HD images")

	out := RenderRatios([]string{"64:27", "16:9"})
	assert.Contains(t, out, "64:27")
	assert.Contains(t, out, "16:9")
}

func TestModelInterrupt(t *testing.T) {
	calls := 0
	m := NewModel(nil, 1).WithInterrupt(func() { calls++ })

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Equal(t, 1, calls)
	assert.Contains(t, next.View(), "Stopping after the current file")
}
