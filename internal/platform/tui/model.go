package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
	"github.com/vovakirdan/hostile-breakout/internal/games/breakout"
	"github.com/vovakirdan/hostile-breakout/internal/storage"
)

// Options configures one game session.
type Options struct {
	Config     config.BreakoutConfig
	ConfigPath string // reloaded on edit when Watch is set
	Watch      bool
	Preset     config.DifficultyPreset
	StartLevel int // 0 means level 1
	Player     string
	Logger     *log.Logger
}

// configReloadMsg carries the result of re-reading a watched config file.
type configReloadMsg struct {
	cfg config.BreakoutConfig
	err error
}

// Model is the Bubble Tea model for a running game.
type Model struct {
	game    *breakout.Game
	opts    Options
	seed    uint64
	screen  *core.Screen
	store   *storage.Store
	runtime core.RuntimeConfig
	keys    *KeyMapper
	help    help.Model
	frame   core.InputFrame
	logger  *log.Logger
	loop    int64

	watcher *config.Watcher
	pending *config.BreakoutConfig // applied on the next restart

	started time.Time
	saved   bool // the current run has been recorded

	message      string
	messageStyle lipgloss.Style
	messageTicks int

	embedded   bool // running inside a SessionModel
	quitting   bool
	backToMenu bool
}

// NewModel creates a model and starts the first run.
func NewModel(opts Options, store *storage.Store, rt core.RuntimeConfig) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	m := Model{
		opts:    opts,
		screen:  core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		store:   store,
		runtime: rt,
		keys:    NewKeyMapper(opts.Config),
		help:    help.New(),
		frame:   core.NewInputFrame(),
		logger:  opts.Logger,
		loop:    newLoopID(),
	}
	m.help.Width = rt.ScreenW

	game, err := m.newGame(opts.Config, uint64(rt.Seed), opts.StartLevel) //#nosec G115 -- seed bits
	if err != nil {
		return Model{}, err
	}
	m.game = game
	m.started = time.Now()

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			return Model{}, fmt.Errorf("cannot watch config: %w", err)
		}
		m.watcher = w
	}
	return m, nil
}

func (m *Model) newGame(cfg config.BreakoutConfig, seed uint64, level int) (*breakout.Game, error) {
	opts := []breakout.Option{breakout.WithSeed(seed), breakout.WithLogger(m.logger)}
	if level > 0 {
		opts = append(opts, breakout.WithStartLevel(level))
	}
	game, err := breakout.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	m.seed = seed
	return game, nil
}

// Init starts the tick loop and, if enabled, the config watch.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return tea.Batch(tickCmd(m.runtime.TickRate, m.loop), waitForConfig(m.watcher, m.opts.Preset))
	}
	return tickCmd(m.runtime.TickRate, m.loop)
}

// waitForConfig blocks until the watched file changes, then reloads it.
func waitForConfig(w *config.Watcher, preset config.DifficultyPreset) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Events
		if !ok {
			return nil
		}
		cfg, err := config.LoadFile(path)
		if err == nil {
			config.ApplyPreset(&cfg, preset)
		}
		return configReloadMsg{cfg: cfg, err: err}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()

	case configReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.Keys
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, k.Back):
		if m.game.IsRunning() {
			return m, nil
		}
		m.recordRun(storage.OutcomeQuit)
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Restart):
		// Mid-run restarts go through the pause screen.
		if m.game.IsRunning() {
			return m, nil
		}
	}

	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.recordRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies queued intents and advances the simulation one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.frame.Has(core.ActionRestart) {
		m.restart()
	}

	m.game.Apply(m.frame)
	m.frame.Clear()
	m.noteEvents()

	m.game.Step(m.runtime.Dt())
	m.noteEvents()

	switch m.game.State() {
	case breakout.StateWon:
		m.recordRun(storage.OutcomeWon)
	case breakout.StateLost:
		m.recordRun(storage.OutcomeLost)
	}

	if m.messageTicks > 0 {
		m.messageTicks--
	}
	return m, tickCmd(m.runtime.TickRate, m.loop)
}

// restart records an abandoned run and swaps in a reloaded config if one
// is waiting. The game's own Restart intent then resets the run.
func (m *Model) restart() {
	m.recordRun(storage.OutcomeQuit)
	if m.pending != nil {
		game, err := m.newGame(*m.pending, uint64(time.Now().UnixNano()), 0) //#nosec G115 -- seed bits
		if err != nil {
			m.flash(warningStyle, "reloaded config rejected: %v", err)
		} else {
			m.game = game
			m.opts.Config = *m.pending
			m.keys = NewKeyMapper(*m.pending)
			m.flash(statusStyle, "config reloaded")
		}
		m.pending = nil
	}
	m.saved = false
	m.started = time.Now()
}

func (m Model) handleReload(msg configReloadMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("config reload failed", "path", m.opts.ConfigPath, "error", msg.err)
		m.flash(warningStyle, "config error: %v", msg.err)
	} else {
		m.logger.Info("config changed", "path", m.opts.ConfigPath)
		cfg := msg.cfg
		m.pending = &cfg
		m.flash(statusStyle, "config changed, applies on restart")
	}
	if m.watcher == nil {
		return m, nil
	}
	return m, waitForConfig(m.watcher, m.opts.Preset)
}

// noteEvents turns notable game events into status messages.
func (m *Model) noteEvents() {
	for _, e := range m.game.Events() {
		switch e.Kind {
		case breakout.EventPowerUpCollected:
			m.flash(statusStyle, "power-up: %s", e.Type)
		case breakout.EventLevelStarted:
			if e.Type != "" {
				m.flash(statusStyle, "level %d: %s", e.Value, e.Type)
			} else {
				m.flash(statusStyle, "level %d", e.Value)
			}
		case breakout.EventLifeLost:
			m.flash(warningStyle, "life lost, %d left", e.Value)
		case breakout.EventLoadFailed:
			m.flash(warningStyle, "%v", m.game.Err())
		case breakout.EventBlockHit, breakout.EventBlockDestroyed, breakout.EventBallCaught,
			breakout.EventSpriteCollision, breakout.EventHostileFired,
			breakout.EventGameLost, breakout.EventGameWon:
		}
	}
}

func (m *Model) flash(style lipgloss.Style, format string, args ...any) {
	m.message = fmt.Sprintf(format, args...)
	m.messageStyle = style
	m.messageTicks = 2 * max(m.runtime.TickRate, 1)
}

// recordRun saves the current run once. Quit runs without points are
// not worth a scoreboard row.
func (m *Model) recordRun(outcome string) {
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil || (outcome == storage.OutcomeQuit && m.game.Score() == 0) {
		return
	}

	run := storage.Run{
		Player:     m.opts.Player,
		Score:      m.game.Score(),
		Level:      m.game.Level(),
		Outcome:    outcome,
		Difficulty: string(m.opts.Preset),
		Seed:       m.seed,
		Duration:   time.Since(m.started),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "score", run.Score, "outcome", outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.flash(warningStyle, "screenshot failed: %v", err)
		return
	}

	name := fmt.Sprintf("breakout_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.flash(warningStyle, "screenshot failed: %v", err)
		return
	}
	m.flash(statusStyle, "saved %s", path)
}

// View renders the game and a status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	frame := RenderScreen(m.screen)
	status := m.statusLine()

	// The full help view is taller than the single status row.
	if extra := lipgloss.Height(status) - 1; extra > 0 {
		lines := strings.Split(frame, "\n")
		frame = strings.Join(lines[:max(len(lines)-extra, 0)], "\n")
	}
	return frame + "\n" + status
}

func (m Model) statusLine() string {
	if m.messageTicks > 0 && m.message != "" {
		return m.messageStyle.Render(m.message)
	}
	return helpStyle.Render(m.help.View(m.keys.Keys))
}

// Game returns the running game.
func (m Model) Game() *breakout.Game { return m.game }

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Close releases the config watcher.
func (m Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// Run plays one session in the current terminal.
// Returns true if the user asked to go back to the menu, false if quitting.
func Run(opts Options, store *storage.Store, rt core.RuntimeConfig) (goBack bool, err error) {
	model, err := NewModel(opts, store, rt)
	if err != nil {
		return false, err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
