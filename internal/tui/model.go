package tui

import (
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"nanowhale/internal/config"
	"nanowhale/internal/docker"
	"nanowhale/internal/stream"
	"nanowhale/pkg/logging"
)

// maxActivityEntries caps the in-model application log shown at the bottom of
// the dashboard.
const maxActivityEntries = 200

// Deps bundles everything the model needs. Tests substitute fakes behind the
// same types (fake runner inside the client, fake owner inside the manager).
type Deps struct {
	Config      *config.Config
	Client      *docker.Client
	Cache       *docker.Cache
	Details     *docker.DetailCache
	Stats       *stream.StatsTable
	StatsStream *stream.StatsStreamer
	LogStream   *stream.LogStreamer
	Takeover    SessionManager
	// StreamCh is the coalesced stream-notification channel.
	StreamCh chan struct{}
	// LogCh delivers application log entries for the activity pane.
	LogCh <-chan logging.Entry
}

// SessionManager is the slice of term.Manager the model drives: run one
// foreground session, cancel it, and report whether one is in progress.
type SessionManager interface {
	Run(label string, cmd *exec.Cmd) error
	Cancel()
	Active() bool
}

type confirmState struct {
	prompt string
	cmd    tea.Cmd
}

// Model is the dashboard's single bubbletea model.
type Model struct {
	cfg      *config.Config
	client   *docker.Client
	cache    *docker.Cache
	details  *docker.DetailCache
	stats    *stream.StatsTable
	statsStr *stream.StatsStreamer
	logs     *stream.LogStreamer
	takeover SessionManager
	sel      *Selection
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	logView  viewport.Model
	streamCh chan struct{}
	logCh    <-chan logging.Entry

	width  int
	height int

	pinged   bool
	fatalErr error

	kind    docker.EntityKind
	detail  DetailTab
	tickGen int

	lastPoll   time.Time
	toast      string
	toastIsErr bool
	toastID    int
	confirm    *confirmState
	showHelp   bool

	activity []logging.Entry
}

// NewModel assembles the dashboard model.
func NewModel(d Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		cfg:      d.Config,
		client:   d.Client,
		cache:    d.Cache,
		details:  d.Details,
		stats:    d.Stats,
		statsStr: d.StatsStream,
		logs:     d.LogStream,
		takeover: d.Takeover,
		sel:      NewSelection(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		logView:  viewport.New(0, 0),
		streamCh: d.StreamCh,
		logCh:    d.LogCh,
		kind:     docker.KindContainer,
		detail:   DetailLogs,
	}
}

// Init probes the engine; everything else starts only after the probe
// succeeds.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, pingCmd(m.client)}
	if m.streamCh != nil {
		cmds = append(cmds, waitStreamCmd(m.streamCh))
	}
	if m.logCh != nil {
		cmds = append(cmds, listenLogsCmd(m.logCh))
	}
	return tea.Batch(cmds...)
}

// identities returns the current identity list for a kind, in list order.
func (m Model) identities(kind docker.EntityKind) []string {
	return m.cache.Identities(kind)
}

// activeIdentity returns the identity under the cursor for the focused kind,
// or "" when the list is empty.
func (m Model) activeIdentity() string {
	ids := m.identities(m.kind)
	idx := m.sel.Active(m.kind)
	if idx < 0 || idx >= len(ids) {
		return ""
	}
	return ids[idx]
}

// activeContainer returns the container under the cursor when the containers
// tab is focused.
func (m Model) activeContainer() (docker.Container, bool) {
	if m.kind != docker.KindContainer {
		return docker.Container{}, false
	}
	containers := m.cache.Containers()
	idx := m.sel.Active(docker.KindContainer)
	if idx < 0 || idx >= len(containers) {
		return docker.Container{}, false
	}
	return containers[idx], true
}

// syncLogFollow keeps the log stream pointed at the container under the
// cursor while the log tab is visible. Switching away stops nothing; the
// stream keeps following until another container takes its place.
func (m *Model) syncLogFollow() tea.Cmd {
	if m.detail != DetailLogs || m.kind != docker.KindContainer {
		return nil
	}
	c, ok := m.activeContainer()
	if !ok || c.Name == m.logs.Container() {
		return nil
	}
	logs := m.logs
	name := c.Name
	return func() tea.Msg {
		_ = logs.Follow(name)
		return nil
	}
}

// fetchDetail returns the command that fills the visible detail tab for the
// container under the cursor, or nil for the stream-backed tabs.
func (m *Model) fetchDetail() tea.Cmd {
	if m.kind != docker.KindContainer {
		return nil
	}
	if m.detail != DetailEnv && m.detail != DetailInspect && m.detail != DetailTop {
		return nil
	}
	c, ok := m.activeContainer()
	if !ok {
		return nil
	}
	return loadDetailCmd(m.details, c.Name, m.detail)
}

// setToast replaces the transient status notification and arms its expiry.
func (m *Model) setToast(text string, isErr bool) tea.Cmd {
	m.toast = text
	m.toastIsErr = isErr
	m.toastID++
	return expireToastCmd(m.toastID)
}

// bindTerminal points a foreground child directly at the real terminal.
func bindTerminal(cmd *exec.Cmd) *exec.Cmd {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
