package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rps-arcade/internal/core"
	"github.com/vovakirdan/rps-arcade/internal/games/rps"
	"github.com/vovakirdan/rps-arcade/internal/storage"
)

const testSession = "test-session"

func newTestModel(t *testing.T, picker rps.Picker) (Model, *quartz.Mock, *storage.Store) {
	t.Helper()

	clk := quartz.NewMock(t)
	game := rps.New(rps.WithPicker(picker), rps.WithGameClock(clk))

	store, err := storage.Open(storage.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Tick: 40 * time.Millisecond, Seed: 1}
	m := NewModel(game, store, cfg, WithSessionID(testSession))
	require.NotNil(t, m.Init(), "Init starts the tick loop")
	return m, clk, store
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func advance(t *testing.T, clk *quartz.Mock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	clk.Advance(d).MustWait(ctx)
}

func TestModelScreenLeavesRoomForHelp(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))

	assert.Equal(t, 80, m.screen.Width())
	assert.Equal(t, 23, m.screen.Height())
	assert.Equal(t, testSession, m.SessionID())
}

func TestModelKeyPlaysRound(t *testing.T) {
	m, clk, store := newTestModel(t, rps.Sequence(rps.Scissor))

	m, cmd := send(t, m, runeKey('r'))
	assert.Nil(t, cmd)
	assert.Equal(t, rps.PhaseIdle, m.Game().Machine().Phase(), "keys take effect on the next tick")

	m, cmd = send(t, m, TickMsg(time.Now()))
	require.NotNil(t, cmd, "ticks keep ticking")
	assert.Equal(t, rps.PhaseRevealing, m.Game().Machine().Phase())
	assert.True(t, m.inputFrame.Empty(), "input is cleared after each tick")

	player, computer, ok := m.Game().Machine().Round().Choices()
	require.True(t, ok)
	assert.Equal(t, rps.Rock, player)
	assert.Equal(t, rps.Scissor, computer)

	advance(t, clk, m.Game().Machine().Timing().Reveal())
	m, _ = send(t, m, TickMsg(time.Now()))

	assert.Equal(t, rps.PhaseScored, m.Game().Machine().Phase())
	assert.Equal(t, rps.Score{Player: 1, Computer: 0}, m.Game().Score())

	tally, err := store.SessionTally(testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Rounds)
	assert.Equal(t, 1, tally.Wins)

	// Further ticks during the hold do not journal the round again
	m, _ = send(t, m, TickMsg(time.Now()))
	tally, err = store.SessionTally(testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.Rounds)
}

func TestModelMousePressSelectsButton(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))

	layout := rps.NewLayout(80, 23)
	cx, cy := layout.Buttons[rps.Paper].Rect.Center()

	m, _ = send(t, m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, TickMsg(time.Now()))

	player, _, ok := m.Game().Machine().Round().Choices()
	require.True(t, ok)
	assert.Equal(t, rps.Paper, player)
}

func TestModelIgnoresOtherMouseButtons(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))

	layout := rps.NewLayout(80, 23)
	cx, cy := layout.Buttons[rps.Rock].Rect.Center()

	m, _ = send(t, m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m, _ = send(t, m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, TickMsg(time.Now()))

	assert.Equal(t, rps.PhaseIdle, m.Game().Machine().Phase())
}

func TestModelQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))

			// Quit works mid-round too
			m, _ = send(t, m, runeKey('s'))
			m, _ = send(t, m, TickMsg(time.Now()))
			require.Equal(t, rps.PhaseRevealing, m.Game().Machine().Phase())

			m, cmd := send(t, m, msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.Quitting())
			assert.Empty(t, m.View())
		})
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))
	assert.False(t, m.help.ShowAll)

	m, cmd := send(t, m, runeKey('?'))
	assert.Nil(t, cmd)
	assert.True(t, m.help.ShowAll)
	assert.True(t, m.inputFrame.Empty(), "help is not a game input")

	m, _ = send(t, m, runeKey('?'))
	assert.False(t, m.help.ShowAll)
}

func TestModelViewFitsWindowInBothHelpModes(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))

	for _, full := range []bool{false, true} {
		if m.help.ShowAll != full {
			m, _ = send(t, m, runeKey('?'))
		}
		helpRows := lipgloss.Height(m.help.View(m.keys))
		if full {
			require.Greater(t, helpRows, 1, "full help spans several rows")
		}

		view := m.View()
		assert.LessOrEqual(t, strings.Count(view, "\n")+1, 24, "full help %v", full)
		assert.Equal(t, 24-helpRows, m.screen.Height(), "full help %v", full)
		assert.True(t, strings.HasPrefix(view, m.palette.Render(m.screen)), "board starts on the top row")
	}
}

func TestModelFullHelpKeepsClicksOnButtons(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))
	m, _ = send(t, m, runeKey('?'))

	// The top border row of a button is the first to slip off when the
	// board overflows.
	layout := rps.NewLayout(80, m.screen.Height())
	r := layout.Buttons[rps.Paper].Rect
	cx, _ := r.Center()

	m, _ = send(t, m, tea.MouseMsg{X: cx, Y: r.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, TickMsg(time.Now()))

	player, _, ok := m.Game().Machine().Round().Choices()
	require.True(t, ok)
	assert.Equal(t, rps.Paper, player)
}

func TestModelHoverWithoutButtonHeld(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))
	require.NotContains(t, m.View(), "┏", "nothing is highlighted before the pointer moves")

	layout := rps.NewLayout(80, m.screen.Height())
	cx, cy := layout.Buttons[rps.Scissor].Rect.Center()

	m, _ = send(t, m, tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.Contains(t, m.View(), "┏", "hovered button is highlighted")
	m, _ = send(t, m, TickMsg(time.Now()))
	assert.Equal(t, rps.PhaseIdle, m.Game().Machine().Phase(), "hover does not pick")

	m, _ = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.NotContains(t, m.View(), "┏")
}

func TestModelResizeKeepsScore(t *testing.T) {
	m, clk, _ := newTestModel(t, rps.Sequence(rps.Scissor))

	m, _ = send(t, m, runeKey('r'))
	m, _ = send(t, m, TickMsg(time.Now()))
	advance(t, clk, m.Game().Machine().Timing().Reveal())
	m, _ = send(t, m, TickMsg(time.Now()))
	require.Equal(t, rps.Score{Player: 1}, m.Game().Score())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height())
	assert.Equal(t, 100, m.help.Width)
	assert.Equal(t, rps.Score{Player: 1}, m.Game().Score())
	assert.Equal(t, rps.PhaseScored, m.Game().Machine().Phase())
}

func TestModelView(t *testing.T) {
	m, _, _ := newTestModel(t, rps.Sequence(rps.Rock))

	view := m.View()
	assert.Contains(t, view, "Pick your hand")
	assert.Contains(t, view, "YOU")
	assert.Contains(t, view, "r/1", "help line is shown")

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg(time.Now()))
	assert.Contains(t, m.View(), rps.Captions[0])
}

func TestModelJournalFailureKeepsPlaying(t *testing.T) {
	m, clk, store := newTestModel(t, rps.Sequence(rps.Rock))
	require.NoError(t, store.Close())

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg(time.Now()))
	advance(t, clk, m.Game().Machine().Timing().Reveal())
	m, cmd := send(t, m, TickMsg(time.Now()))

	assert.NotNil(t, cmd)
	assert.Equal(t, rps.Score{Player: 1}, m.Game().Score())
}

func TestModelWithoutJournal(t *testing.T) {
	clk := quartz.NewMock(t)
	game := rps.New(rps.WithPicker(rps.Sequence(rps.Paper)), rps.WithGameClock(clk))
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m.Init()

	assert.Equal(t, core.DefaultTick, m.config.Tick)
	assert.NotEmpty(t, m.SessionID())

	m, _ = send(t, m, runeKey('s'))
	m, _ = send(t, m, TickMsg(time.Now()))
	advance(t, clk, m.Game().Machine().Timing().Reveal())
	m, _ = send(t, m, TickMsg(time.Now()))

	assert.Equal(t, rps.Score{Player: 1}, m.Game().Score())
}
