package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/drone-escort/internal/sim"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// ThoughtEntry is a single line in the thought log.
type ThoughtEntry struct {
	Tick     int
	Label    string // "D0".."D9", "P" or "--"
	Category string // band, shot, roster
	Message  string
}

// ThoughtLog is a ring buffer of drone events rendered on-screen.
type ThoughtLog struct {
	entries []ThoughtEntry
	head    int
	count   int

	// lastTick is the newest sim tick already pulled by Sync.
	lastTick int
}

// NewThoughtLog creates a thought log with a fixed capacity.
func NewThoughtLog() *ThoughtLog {
	return &ThoughtLog{
		entries: make([]ThoughtEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest when full.
func (tl *ThoughtLog) Add(tick int, label, category, msg string) {
	tl.entries[tl.head] = ThoughtEntry{
		Tick:     tick,
		Label:    label,
		Category: category,
		Message:  msg,
	}
	tl.head = (tl.head + 1) % logMaxEntries
	if tl.count < logMaxEntries {
		tl.count++
	}
}

// Sync copies every non-move SimLog entry newer than the last sync.
func (tl *ThoughtLog) Sync(sl *sim.SimLog, tick int) {
	if tick <= tl.lastTick {
		return
	}
	for _, e := range sl.FilterTickRange(tl.lastTick+1, tick) {
		if e.Category == "move" {
			continue
		}
		tl.Add(e.Tick, e.Unit, e.Category, fmt.Sprintf("%s %s", e.Key, e.Value))
	}
	tl.lastTick = tick
}

// Reset empties the log and rewinds the sync cursor.
func (tl *ThoughtLog) Reset() {
	tl.head, tl.count, tl.lastTick = 0, 0, 0
}

// Recent returns entries in chronological order (oldest first).
func (tl *ThoughtLog) Recent() []ThoughtEntry {
	result := make([]ThoughtEntry, tl.count)
	for i := 0; i < tl.count; i++ {
		idx := (tl.head - tl.count + i + logMaxEntries) % logMaxEntries
		result[i] = tl.entries[idx]
	}
	return result
}

// categoryColor picks the marker colour for an entry.
func categoryColor(category string) color.RGBA {
	switch category {
	case "shot":
		return color.RGBA{R: 120, G: 230, B: 120, A: 255}
	case "band":
		return color.RGBA{R: 90, G: 150, B: 230, A: 255}
	case "roster":
		return color.RGBA{R: 230, G: 90, B: 80, A: 255}
	}
	return color.RGBA{R: 160, G: 160, B: 160, A: 255}
}

// Draw renders the thought log panel on the right side of the screen.
func (tl *ThoughtLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "DRONE LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := tl.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	const recent = 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)

		line := fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
