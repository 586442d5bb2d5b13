// Package browser is an interactive folder picker for choosing the
// directory to scan. It navigates any storage backend, shows video
// counts per directory, and returns the confirmed path.
package browser

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zygboom-max/tv-rename-tool/internal/naming"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
	"github.com/zygboom-max/tv-rename-tool/internal/ui"
)

// ErrCancelled is returned when the user backs out without choosing.
var ErrCancelled = errors.New("folder selection cancelled")

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	curPathStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	folderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// maxFilePreview is how many plain files to show under the folder list.
const maxFilePreview = 8

type listLoadedMsg struct {
	path    string
	entries []storage.FileEntry
}

type listErrorMsg struct{ err error }

// Model is the folder picker state.
type Model struct {
	backend storage.Backend
	ctx     context.Context

	path    string
	folders []storage.FileEntry
	files   []storage.FileEntry
	videos  int

	cursor int
	offset int
	width  int
	height int

	loading bool
	spin    spinner.Model
	err     error

	selected string
	aborted  bool
}

// New creates a picker rooted at the backend's configured root path.
func New(ctx context.Context, backend storage.Backend) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	return Model{
		backend: backend,
		ctx:     ctx,
		path:    backend.RootPath(),
		loading: true,
		spin:    sp,
	}
}

// Run drives the picker to completion and returns the chosen directory.
func Run(ctx context.Context, backend storage.Backend) (string, error) {
	final, err := tea.NewProgram(New(ctx, backend)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(Model)
	if !ok || m.aborted || m.selected == "" {
		return "", ErrCancelled
	}
	return m.selected, nil
}

// Init starts the spinner and the first directory load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadDir(m.path))
}

// loadDir lists a directory in the background.
func (m Model) loadDir(dir string) tea.Cmd {
	backend := m.backend
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := backend.List(ctx, dir)
		if err != nil {
			return listErrorMsg{err}
		}
		return listLoadedMsg{path: dir, entries: entries}
	}
}

func (m Model) hasParent() bool {
	return m.path != "/"
}

// rowCount is the number of selectable rows: parent link plus folders.
func (m Model) rowCount() int {
	n := len(m.folders)
	if m.hasParent() {
		n++
	}
	return n
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case listLoadedMsg:
		// A stale response from a directory we already left
		if msg.path != m.path {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.folders = nil
		m.files = nil
		m.videos = 0
		for _, e := range msg.entries {
			if e.IsDir {
				m.folders = append(m.folders, e)
				continue
			}
			m.files = append(m.files, e)
			if naming.IsVideoFile(e.Name) {
				m.videos++
			}
		}
		sort.Slice(m.folders, func(i, j int) bool {
			return strings.ToLower(m.folders[i].Name) < strings.ToLower(m.folders[j].Name)
		})
		sort.Slice(m.files, func(i, j int) bool {
			return strings.ToLower(m.files[i].Name) < strings.ToLower(m.files[j].Name)
		})
		m.cursor = 0
		m.offset = 0
		return m, nil

	case listErrorMsg:
		m.loading = false
		m.err = msg.err
		m.folders = nil
		m.files = nil
		m.videos = 0
		m.cursor = 0
		m.offset = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit

	case "c":
		// Confirm the directory we are standing in
		m.selected = m.path
		return m, tea.Quit
	}

	if m.loading {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
			if m.cursor >= m.offset+m.visibleRows() {
				m.offset = m.cursor - m.visibleRows() + 1
			}
		}

	case "enter", "right", "l":
		return m.descend()

	case "backspace", "left", "h":
		return m.ascend()
	}

	return m, nil
}

// descend enters the directory under the cursor.
func (m Model) descend() (tea.Model, tea.Cmd) {
	idx := m.cursor
	if m.hasParent() {
		if idx == 0 {
			return m.ascend()
		}
		idx--
	}
	if idx < 0 || idx >= len(m.folders) {
		return m, nil
	}
	m.path = path.Join(m.path, m.folders[idx].Name)
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spin.Tick, m.loadDir(m.path))
}

// ascend moves to the parent directory, stopping at the filesystem root.
func (m Model) ascend() (tea.Model, tea.Cmd) {
	if !m.hasParent() {
		return m, nil
	}
	m.path = path.Dir(m.path)
	m.loading = true
	m.err = nil
	return m, tea.Batch(m.spin.Tick, m.loadDir(m.path))
}

func (m Model) visibleRows() int {
	rows := m.height - 10
	if rows < 5 {
		rows = 10
	}
	return rows
}

// View renders the picker
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select a directory") + "\n")
	b.WriteString(curPathStyle.Render("📁 "+m.path) + "\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + " loading...\n")
		b.WriteString("\n" + helpStyle.Render("c confirm this directory · q cancel") + "\n")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("cannot list directory: "+m.err.Error()) + "\n\n")
	}

	rows := m.rowCount()
	if rows == 0 && m.err == nil {
		b.WriteString(fileStyle.Render("no subdirectories") + "\n")
	}

	end := m.offset + m.visibleRows()
	if end > rows {
		end = rows
	}
	for i := m.offset; i < end; i++ {
		label := ""
		idx := i
		if m.hasParent() {
			if i == 0 {
				label = folderStyle.Render("[..] parent directory")
			}
			idx--
		}
		if label == "" {
			label = folderStyle.Render("📁 " + m.folders[idx].Name + "/")
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("▸ ") + label + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}
	if end < rows {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  ... %d more", rows-end)) + "\n")
	}

	if len(m.files) > 0 {
		b.WriteString("\n" + fileStyle.Render(fmt.Sprintf("files: %d (videos: %d)", len(m.files), m.videos)) + "\n")
		for i, f := range m.files {
			if i >= maxFilePreview {
				b.WriteString(fileStyle.Render(fmt.Sprintf("  ... %d more", len(m.files)-maxFilePreview)) + "\n")
				break
			}
			icon := "📄"
			if naming.IsVideoFile(f.Name) {
				icon = "🎬"
			}
			b.WriteString(fileStyle.Render(fmt.Sprintf("  %s %s (%s)", icon, f.Name, ui.FormatBytes(f.Size))) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ move · enter open · backspace up · c confirm · q cancel") + "\n")
	return b.String()
}
