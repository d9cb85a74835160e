package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

const rulesText = `Break every block on the field to clear the level.

Throw the ball off the paddle with SPACE and keep it in play.
When the ball drops past the paddle you lose a life.

Some blocks hide power-ups. Destroy the block and let the
ball or a bullet touch the power-up to collect it:
  speed     the paddle moves faster (toggle)
  slow      the ball is thrown slower (toggle)
  growth    the paddle grows (toggle)
  multiply  extra balls join the fight
  heal      the paddle is fully repaired

From the third level on the blocks shoot back. Hostile
bullets damage the paddle; when it breaks you lose a life.
Your own bullets hurt blocks, and the paddle too if they
bounce back.

Clear the last level to win.`

const storyText = `The blocks were supposed to be inert.

Somewhere between the second and third level they learned
to shoot back. You have a paddle, a ball and a handful of
bullets. Take the field back, one row at a time.`

// menuPage is the screen the menu is showing.
type menuPage int

const (
	pageMain menuPage = iota
	pageLevels
	pageText
)

// menuEntry is one line of the main menu.
type menuEntry struct {
	title  string
	action func(m *MenuModel) tea.Cmd
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cfg         config.BreakoutConfig
	keys        *KeyMapper
	entries     []menuEntry
	cursor      int
	levelCursor int
	page        menuPage
	textTitle   string
	text        string
	config      core.RuntimeConfig

	embedded       bool // running inside a SessionModel
	quitting       bool
	startLevel     int // set when the user starts a game
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg config.BreakoutConfig, rt core.RuntimeConfig) MenuModel {
	m := MenuModel{
		cfg:    cfg,
		keys:   NewKeyMapper(cfg),
		config: rt,
	}
	m.entries = []menuEntry{
		{"Play", func(m *MenuModel) tea.Cmd {
			m.startLevel = 1
			return m.finish()
		}},
		{"Select level", func(m *MenuModel) tea.Cmd {
			m.page = pageLevels
			m.levelCursor = 0
			return nil
		}},
		{"High scores", func(m *MenuModel) tea.Cmd {
			m.openScoreboard = true
			return m.finish()
		}},
		{"Rules", func(m *MenuModel) tea.Cmd {
			m.showText("RULES", rulesText)
			return nil
		}},
		{"Cheat codes", func(m *MenuModel) tea.Cmd {
			m.showText("CHEAT CODES", m.cheatText())
			return nil
		}},
		{"Story", func(m *MenuModel) tea.Cmd {
			m.showText("STORY", storyText)
			return nil
		}},
		{"Exit", func(m *MenuModel) tea.Cmd {
			m.quitting = true
			return m.finish()
		}},
	}
	return m
}

// finish ends a standalone menu program. Embedded menus are read by
// their session instead.
func (m *MenuModel) finish() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

func (m *MenuModel) showText(title, text string) {
	m.page = pageText
	m.textTitle = title
	m.text = text
}

// cheatText lists the cheat keys, including the configured power-up keys.
func (m *MenuModel) cheatText() string {
	k := m.keys.Keys
	var b strings.Builder
	line := func(keys, desc string) {
		fmt.Fprintf(&b, "  %-8s %s\n", keys, desc)
	}
	line(k.God.Help().Key, "toggle god mode (paddle cannot be hurt, floor bounces)")
	line(k.Reset.Help().Key, "put paddle and ball back on their marks")
	line(k.Nuke.Help().Key, "give up the run")
	line(k.Jump.Help().Key, fmt.Sprintf("jump to level (1-%d)", m.cfg.LastLevel()))

	byName := m.keys.PowerUpKeys()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line(byName[name], "activate "+name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(MapKeyToMenuAction(msg))

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	if action == MenuActionQuit {
		m.quitting = true
		return m, m.finish()
	}

	switch m.page {
	case pageText:
		if action == MenuActionBack || action == MenuActionSelect {
			m.page = pageMain
		}

	case pageLevels:
		switch action {
		case MenuActionUp:
			if m.levelCursor > 0 {
				m.levelCursor--
			}
		case MenuActionDown:
			if m.levelCursor < m.cfg.LastLevel()-1 {
				m.levelCursor++
			}
		case MenuActionSelect:
			m.startLevel = m.levelCursor + 1
			return m, m.finish()
		case MenuActionBack:
			m.page = pageMain
		}

	case pageMain:
		switch action {
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			cmd := m.entries[m.cursor].action(&m)
			return m, cmd
		}
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.page {
	case pageText:
		body = m.viewText()
	case pageLevels:
		body = m.viewLevels()
	default:
		body = m.viewMain()
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

func (m MenuModel) viewMain() string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("H O S T I L E   B R E A K O U T"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		if i == m.cursor {
			b.WriteString(menuCursor.Render("> " + e.title))
		} else {
			b.WriteString("  " + e.title)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: navigate  enter: select  q: quit"))
	return b.String()
}

func (m MenuModel) viewLevels() string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("SELECT LEVEL"))
	b.WriteString("\n\n")

	for i, lvl := range m.cfg.Levels {
		name := lvl.Name
		if name == "" {
			name = "Level"
		}
		line := fmt.Sprintf("%2d. %-20s %3d blocks", i+1, name, lvl.BlockTotal())
		if lvl.HostileFireEvery > 0 {
			line += "  hostile"
		}
		if i == m.levelCursor {
			b.WriteString(menuCursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: start  esc: back  q: quit"))
	return b.String()
}

func (m MenuModel) viewText() string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(m.textTitle))
	b.WriteString("\n\n")
	b.WriteString(menuBoxStyle.Render(m.text))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc/enter: back"))
	return b.String()
}

// StartLevel returns the level chosen to play, or 0 if none.
func (m MenuModel) StartLevel() int {
	return m.startLevel
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	StartLevel      int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg config.BreakoutConfig, rt core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, rt), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: rt}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: rt, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.StartLevel() > 0:
		result.StartLevel = m.StartLevel()
	default:
		result.Quit = true
	}
	return result, nil
}
