package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Preview Model
// ============================================================================

// chromeLines is the height of the tab bar, divider and status line
const chromeLines = 3

// reloadMsg carries freshly built tabs after a reload
type reloadMsg struct {
	tabs []tab
	err  error
}

// previewModel is the Bubble Tea model showing one template's pipeline
type previewModel struct {
	preview  Preview
	tabs     []tab
	active   int
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	err      error
}

func newPreviewModel(p Preview, tabs []tab) previewModel {
	return previewModel{preview: p, tabs: tabs}
}

// reload rebuilds the tabs from disk
func (m previewModel) reload() tea.Cmd {
	p := m.preview
	return func() tea.Msg {
		tabs, err := buildTabs(p)
		return reloadMsg{tabs: tabs, err: err}
	}
}

// Init implements tea.Model
func (m previewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(msg.Height-chromeLines, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
			m.syncContent()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		return m, nil

	case reloadMsg:
		m.err = msg.err
		if msg.err == nil {
			m.tabs = msg.tabs
			m.active = clamp(m.active, 0, len(m.tabs)-1)
			m.syncContent()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.switchTab(1)
			return m, nil
		case "shift+tab", "left", "h":
			m.switchTab(-1)
			return m, nil
		case "r":
			return m, m.reload()
		case "1", "2", "3", "4":
			m.active = clamp(int(msg.String()[0]-'1'), 0, len(m.tabs)-1)
			m.syncContent()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *previewModel) switchTab(delta int) {
	if len(m.tabs) == 0 {
		return
	}
	m.active = (m.active + delta + len(m.tabs)) % len(m.tabs)
	m.syncContent()
}

func (m *previewModel) syncContent() {
	if !m.ready || len(m.tabs) == 0 {
		return
	}
	m.viewport.SetContent(m.tabs[m.active].content)
	m.viewport.GotoTop()
}

// View implements tea.Model
func (m previewModel) View() string {
	if !m.ready {
		return "loading..."
	}

	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m previewModel) renderTabBar() string {
	parts := []string{styles.Title.Render(m.preview.Path)}
	for i, t := range m.tabs {
		style := styles.Tab
		if i == m.active {
			style = styles.ActiveTab
		}
		parts = append(parts, style.Render(t.title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m previewModel) renderStatus() string {
	if m.err != nil {
		return styles.Error.Render("reload failed: " + m.err.Error())
	}
	return styles.Status.Render("tab/←→ switch • 1-4 jump • r reload • ↑↓ scroll • q quit")
}

func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// ============================================================================
// Run TUI
// ============================================================================

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// RunPreview launches the preview TUI for one template
func RunPreview(p Preview) error {
	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()
	RefreshStyles() // Refresh after getTTY sets up the renderer

	tabs, err := buildTabs(p)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(newPreviewModel(p, tabs), tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	_, err = prog.Run()
	return err
}
