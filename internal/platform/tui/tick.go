// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, rendering and SSH serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
// A non-positive interval falls back to core.DefaultTick.
func tickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = core.DefaultTick
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
