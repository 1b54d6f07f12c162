package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/rps-arcade/internal/core"
	"github.com/vovakirdan/rps-arcade/internal/games/rps"
	"github.com/vovakirdan/rps-arcade/internal/storage"
)

// Model is the Bubble Tea model for one player's session.
type Model struct {
	game       *rps.Game
	screen     *core.Screen
	store      *storage.Store // optional round journal
	palette    Palette
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	config     core.RuntimeConfig
	sessionID  string
	inputFrame core.InputFrame
	quitting   bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPalette renders with p instead of the default palette.
func WithPalette(p Palette) ModelOption {
	return func(m *Model) {
		m.palette = p
	}
}

// WithModelLogger sets the logger used for journal failures.
func WithModelLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) ModelOption {
	return func(m *Model) {
		m.sessionID = id
	}
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case rounds are not journaled.
func NewModel(game *rps.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Tick <= 0 {
		cfg.Tick = core.DefaultTick
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(0, 0),
		store:      store,
		palette:    defaultPalette,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		logger:     log.New(io.Discard),
		config:     cfg,
		sessionID:  uuid.NewString(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	m.fitBoard()
	return m
}

// helpLines is the number of rows the key help takes in its current mode.
func (m Model) helpLines() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// fitBoard sizes the board to the window rows the key help leaves free.
func (m Model) fitBoard() {
	h := max(m.config.ScreenH-m.helpLines(), 0)
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// game is a pointer, so the reset survives the value receiver
	m.game.Reset(m.boardConfig())
	return tickCmd(m.config.Tick)
}

func (m Model) boardConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenW, cfg.ScreenH = m.screen.Width(), m.screen.Height()
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.fitBoard()
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleMouse turns a left press into a pointer action and motion into hover.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.inputFrame.Press(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		m.game.Hover(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize processes window resize events. Unlike a restart, the score
// and any round in play survive.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.fitBoard()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)

	// Journal scored rounds; best effort, the game continues regardless
	if result.Resolved != nil && m.store != nil {
		if _, err := m.store.RecordResolution(m.sessionID, *result.Resolved); err != nil {
			m.logger.Warn("could not journal round", "session", m.sessionID, "round", result.Resolved.Round, "error", err)
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.Tick)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// SessionID identifies this session's rounds in the journal.
func (m Model) SessionID() string {
	return m.sessionID
}

// Game returns the game driven by this model.
func (m Model) Game() *rps.Game {
	return m.game
}

// Quitting reports whether the player asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program and blocks until the player quits.
// The final model is returned so callers can summarise the session.
func Run(game *rps.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (Model, error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(model, programOptions()...)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		model = m
	}
	return model, err
}

// programOptions are shared by local and SSH sessions. Hover needs motion
// reports with no button held, which only all-motion tracking sends.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}
