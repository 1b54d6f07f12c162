package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"r", runeKey('r'), core.ActionRock},
		{"1", runeKey('1'), core.ActionRock},
		{"p", runeKey('p'), core.ActionPaper},
		{"2", runeKey('2'), core.ActionPaper},
		{"s", runeKey('s'), core.ActionScissor},
		{"3", runeKey('3'), core.ActionScissor},
		{"q", runeKey('q'), core.ActionQuit},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"?", runeKey('?'), core.ActionHelp},
		{"unbound", runeKey('x'), core.ActionNone},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.MapKey(tt.msg))
		})
	}
}

func TestKeyMapMapKeyToFrame(t *testing.T) {
	km := DefaultKeyMap()

	frame := core.NewInputFrame()
	assert.False(t, km.MapKeyToFrame(runeKey('p'), &frame))
	assert.True(t, frame.Has(core.ActionPaper))

	frame.Clear()
	assert.False(t, km.MapKeyToFrame(runeKey('x'), &frame))
	assert.True(t, frame.Empty(), "unbound keys leave the frame empty")

	assert.True(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame))
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	short := km.ShortHelp()
	assert.Len(t, short, 5)
	for _, b := range short {
		assert.NotEmpty(t, b.Help().Key)
		assert.NotEmpty(t, b.Help().Desc)
	}

	var full int
	for _, col := range km.FullHelp() {
		full += len(col)
	}
	assert.Equal(t, len(short), full)
}
