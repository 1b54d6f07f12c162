package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

// KeyMap defines the key bindings for a game session.
// It also feeds the help line at the bottom of the screen.
type KeyMap struct {
	Rock    key.Binding
	Paper   key.Binding
	Scissor key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rock, k.Paper, k.Scissor, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rock, k.Paper, k.Scissor},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rock: key.NewBinding(
			key.WithKeys("r", "1"),
			key.WithHelp("r/1", "rock"),
		),
		Paper: key.NewBinding(
			key.WithKeys("p", "2"),
			key.WithHelp("p/2", "paper"),
		),
		Scissor: key.NewBinding(
			key.WithKeys("s", "3"),
			key.WithHelp("s/3", "scissor"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
// Unbound keys map to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	case key.Matches(msg, k.Rock):
		return core.ActionRock
	case key.Matches(msg, k.Paper):
		return core.ActionPaper
	case key.Matches(msg, k.Scissor):
		return core.ActionScissor
	}
	return core.ActionNone
}

// MapKeyToFrame records a key message in an input frame.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := k.MapKey(msg)
	frame.Set(action)
	return action == core.ActionQuit
}
