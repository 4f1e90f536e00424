// Command cardboard-top is a read-only live monitor: it polls the
// running daemon over its IPC socket and renders outputs, workspaces,
// and views in a terminal UI, refreshing on an interval.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cardboardwm/cardboard/internal/command"
	"github.com/cardboardwm/cardboard/internal/introspect"
	"github.com/cardboardwm/cardboard/internal/ipc"
)

// viewItem adapts a view snapshot to list.Item, the same Title/Description/
// FilterValue shape as termtile's agentItem.
type viewItem struct {
	snap introspect.ViewSnapshot
}

func (i viewItem) Title() string {
	state := "tiled"
	if i.snap.Fullscreen {
		state = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("fullscreen")
	} else if i.snap.Floating {
		state = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("floating")
	}
	title := fmt.Sprintf("0x%x  ws=%d  %s", i.snap.Handle, i.snap.WorkspaceIndex, state)
	if !i.snap.Mapped {
		title += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("unmapped")
	}
	return title
}

func (i viewItem) Description() string {
	return fmt.Sprintf("%d,%d  %dx%d", i.snap.X, i.snap.Y, i.snap.W, i.snap.H)
}

func (i viewItem) FilterValue() string { return fmt.Sprintf("%x", i.snap.Handle) }

func newViewsList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "VIEWS"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.Styles.Title = l.Styles.Title.
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62"))
	return l
}

func viewItems(views []introspect.ViewSnapshot) []list.Item {
	items := make([]list.Item, len(views))
	for i, v := range views {
		items[i] = viewItem{snap: v}
	}
	return items
}

func main() {
	socket := flag.String("socket", "", "IPC socket path (defaults to the environment-derived default)")
	interval := flag.Duration("interval", time.Second, "refresh interval")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "cardboard-top: stdin/stdout must be a terminal")
		os.Exit(1)
	}

	m := newModel(*socket, *interval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cardboard-top: %v\n", err)
		os.Exit(1)
	}
}

type snapshot struct {
	outputs    []introspect.OutputSnapshot
	workspaces []introspect.WorkspaceSnapshot
	views      []introspect.ViewSnapshot
	status     introspect.Status
}

type snapshotMsg struct {
	snap snapshot
	err  error
}

type tickMsg time.Time

// sendQuery is a package-level seam, the same style as mcpserver's
// sendQueryCommand, so the polling logic is testable without a live daemon.
var sendQuery = ipc.Send

type model struct {
	socketPath string
	interval   time.Duration

	snap      snapshot
	lastErr   error
	connected bool

	viewsList list.Model

	width  int
	height int
}

func newModel(socketPath string, interval time.Duration) model {
	return model{socketPath: socketPath, interval: interval, viewsList: newViewsList()}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(fetchCmd(m.socketPath), tickCmd(m.interval))
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func fetchCmd(socketPath string) tea.Cmd {
	return func() tea.Msg {
		snap, err := fetchSnapshot(socketPath)
		return snapshotMsg{snap: snap, err: err}
	}
}

func fetchSnapshot(socketPath string) (snapshot, error) {
	var snap snapshot

	outReply, err := sendQuery(&command.Data{Kind: command.KindListOutputs}, socketPath)
	if err != nil {
		return snap, fmt.Errorf("cardboard-top: list_outputs: %w", err)
	}
	if err := json.Unmarshal([]byte(outReply), &snap.outputs); err != nil {
		return snap, fmt.Errorf("cardboard-top: decode list_outputs: %w", err)
	}

	wsReply, err := sendQuery(&command.Data{Kind: command.KindListWorkspaces}, socketPath)
	if err != nil {
		return snap, fmt.Errorf("cardboard-top: list_workspaces: %w", err)
	}
	if err := json.Unmarshal([]byte(wsReply), &snap.workspaces); err != nil {
		return snap, fmt.Errorf("cardboard-top: decode list_workspaces: %w", err)
	}

	viewReply, err := sendQuery(&command.Data{Kind: command.KindListViews}, socketPath)
	if err != nil {
		return snap, fmt.Errorf("cardboard-top: list_views: %w", err)
	}
	if err := json.Unmarshal([]byte(viewReply), &snap.views); err != nil {
		return snap, fmt.Errorf("cardboard-top: decode list_views: %w", err)
	}

	statusReply, err := sendQuery(&command.Data{Kind: command.KindGetStatus}, socketPath)
	if err != nil {
		return snap, fmt.Errorf("cardboard-top: get_status: %w", err)
	}
	if err := json.Unmarshal([]byte(statusReply), &snap.status); err != nil {
		return snap, fmt.Errorf("cardboard-top: decode get_status: %w", err)
	}

	return snap, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewsList.SetSize(msg.Width, viewsListHeight(msg.Height))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewsList, cmd = m.viewsList.Update(msg)
		return m, cmd

	case tickMsg:
		return m, tea.Batch(fetchCmd(m.socketPath), tickCmd(m.interval))

	case snapshotMsg:
		m.lastErr = msg.err
		m.connected = msg.err == nil
		if msg.err == nil {
			m.snap = msg.snap
			m.viewsList.SetItems(viewItems(msg.snap.views))
		}
		return m, nil
	}
	return m, nil
}

// viewsListHeight reserves space above the list for the status line,
// outputs, and workspaces sections.
func viewsListHeight(totalHeight int) int {
	h := totalHeight - 10
	if h < 5 {
		h = 5
	}
	return h
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) View() string {
	if m.lastErr != nil && !m.connected {
		return titleStyle.Render("cardboard-top") + "\n\n" +
			errStyle.Render(fmt.Sprintf("disconnected: %v", m.lastErr)) + "\n"
	}

	status := fmt.Sprintf("outputs=%d workspaces=%d views=%d focused=%d",
		m.snap.status.OutputCount, m.snap.status.WorkspaceCount, m.snap.status.ViewCount, m.snap.status.FocusedHandle)

	out := titleStyle.Render("cardboard-top") + "  " + okStyle.Render(status) + "\n\n"

	out += headerStyle.Render("OUTPUTS") + "\n"
	for _, o := range m.snap.outputs {
		out += fmt.Sprintf("  %-12s %5d,%-5d %5dx%-5d ws=%d\n", o.Name, o.X, o.Y, o.W, o.H, o.WorkspaceIndex)
	}

	out += "\n" + headerStyle.Render("WORKSPACES") + "\n"
	workspaces := append([]introspect.WorkspaceSnapshot(nil), m.snap.workspaces...)
	sort.Slice(workspaces, func(i, j int) bool { return workspaces[i].Index < workspaces[j].Index })
	for _, ws := range workspaces {
		marker := " "
		if ws.Active {
			marker = "*"
		}
		out += fmt.Sprintf(" %s%-3d %-12s cols=%-3d views=%d\n", marker, ws.Index, ws.OutputName, ws.Columns, ws.ViewCount)
	}

	out += "\n" + m.viewsList.View()

	out += "\n" + dimStyle.Render("q to quit")
	return out
}
