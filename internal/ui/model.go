package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"hnsearch/internal/config"
	"hnsearch/internal/domain"
	"hnsearch/internal/search"
	"hnsearch/internal/ui/input"
	inputtypes "hnsearch/internal/ui/input/types"
	"hnsearch/internal/ui/logic"
	"hnsearch/internal/ui/views"
)

// wheelStep is how many rows one mouse wheel notch scrolls
const wheelStep = 3

const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	ctx      context.Context
	config   *config.Config
	features config.Features
	session  *search.Session
	log      logrus.FieldLogger

	// UI-specific state not owned by the session
	width         int
	height        int
	nbHits        int // total matches reported for the current query
	statusMessage string
	initialQuery  string
	inPagerMode   bool
	spinning      bool
	showInfo      bool

	help         help.Model
	spinner      spinner.Model
	inputHandler *input.Handler
	navigator    *logic.Navigator
	list         views.Renderer
	screen       *views.Screen
	popup        *views.PopupRenderer
	ops          Ops

	// Program reference for terminal management
	program *tea.Program
}

// Option configures a Model
type Option func(*Model)

// WithOps replaces the browser, clipboard and pager integration
func WithOps(ops Ops) Option {
	return func(m *Model) { m.ops = ops }
}

// WithLogger sets the model logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithInitialQuery submits query as soon as the program starts
func WithInitialQuery(query string) Option {
	return func(m *Model) { m.initialQuery = query }
}

// NewModel creates a new UI model around session
func NewModel(ctx context.Context, cfg *config.Config, session *search.Session, opts ...Option) (*Model, error) {
	features, err := cfg.Variant.Features()
	if err != nil {
		return nil, err
	}

	styles := views.NewStyles()
	keys := inputtypes.DefaultKeyMap()

	m := &Model{
		ctx:          ctx,
		config:       cfg,
		features:     features,
		session:      session,
		log:          logrus.StandardLogger(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.StatusLoad)),
		inputHandler: input.New(keys),
		navigator:    logic.NewNavigator(),
		list:         views.NewListRenderer(features, styles),
		screen:       views.NewScreen(styles),
		popup:        views.NewPopupRenderer(styles),
		ops:          NewExternalOps(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("component", "ui")
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if ops, ok := m.ops.(interface{ SetProgram(*tea.Program) }); ok {
		ops.SetProgram(p)
	}
}

// Init submits the initial query, or starts in the search box
func (m *Model) Init() tea.Cmd {
	if m.initialQuery != "" {
		m.inputHandler.SetQuery(m.initialQuery)
		return m.submit(m.initialQuery)
	}
	return m.inputHandler.SetMode(inputtypes.ModeSearch, m.inputContext())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.showInfo {
			return m, m.handleInfoKey(msg)
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if !m.config.UISettings.MouseWheel || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.processAction(inputtypes.ScrollAction{Delta: -wheelStep})
		case tea.MouseButtonWheelDown:
			return m, m.processAction(inputtypes.ScrollAction{Delta: wheelStep})
		}
		return m, nil

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		return m, m.completeFetch(msg.completion)

	case spinner.TickMsg:
		if !m.session.State().IsLoading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opsDoneMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("op", msg.op).Warn("external operation failed")
			return m, m.setStatus(fmt.Sprintf("Failed to %s: %v", msg.op, msg.err))
		}
		if msg.op == "copy" {
			return m, m.setStatus("Copied " + msg.target)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	// Cursor blink and other text input messages
	if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		var cmd tea.Cmd
		*m.inputHandler.TextInput(), cmd = m.inputHandler.TextInput().Update(msg)
		return m, cmd
	}
	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.WithField("action", action.Type()).Debug("processAction")
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.navigator.Up()
		case "down":
			m.navigator.Down()
		case "pageup":
			m.navigator.PageUp()
		case "pagedown":
			m.navigator.PageDown()
		case "home":
			m.navigator.Home()
		case "end":
			m.navigator.End()
		}
		return m.scrolled()

	case inputtypes.ScrollAction:
		m.navigator.Scroll(a.Delta)
		return m.scrolled()

	case inputtypes.SubmitSearchAction:
		return m.submit(a.Query)

	case inputtypes.CancelTextAction:
		return nil

	case inputtypes.LoadMoreAction:
		if !m.features.More {
			return nil
		}
		pending, err := m.session.More(m.ctx)
		return m.runFetch(pending, err)

	case inputtypes.RetryAction:
		if !m.features.ErrorRetry {
			return nil
		}
		pending, err := m.session.Retry(m.ctx)
		return m.runFetch(pending, err)

	case inputtypes.OpenAction:
		hit, ok := m.selectedHit()
		if !ok {
			return nil
		}
		url := hit.Link()
		if a.Discussion {
			url = hit.DiscussionURL()
		}
		return m.openURL(url)

	case inputtypes.CopyURLAction:
		hit, ok := m.selectedHit()
		if !ok {
			return nil
		}
		return m.copyURL(hit.Link())

	case inputtypes.ShowInfoAction:
		_, m.showInfo = m.selectedHit()
		return nil

	case inputtypes.OpenPagerAction:
		st := m.session.State()
		if len(st.Hits) == 0 {
			return nil
		}
		return m.showPager(ResultsDocument(m.session.Query(), st.Hits, m.nbHits))

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		m.updateViewportHeight()
		return nil

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// handleInfoKey handles keys while the details popup is open
func (m *Model) handleInfoKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.inputHandler.Keys()
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, keys.Info), key.Matches(msg, keys.Quit):
		m.showInfo = false
	case key.Matches(msg, keys.Open):
		m.showInfo = false
		return m.processAction(inputtypes.OpenAction{})
	case key.Matches(msg, keys.Discussion):
		m.showInfo = false
		return m.processAction(inputtypes.OpenAction{Discussion: true})
	}
	return nil
}

// submit starts a new search
func (m *Model) submit(query string) tea.Cmd {
	pending, err := m.session.Submit(m.ctx, query)
	if errors.Is(err, search.ErrEmptyQuery) {
		return m.setStatus("Type something to search")
	}
	return m.runFetch(pending, err)
}

// scrolled runs the infinite scroll trigger after the viewport moved
func (m *Model) scrolled() tea.Cmd {
	if !m.features.InfiniteScroll {
		return nil
	}
	pending, err := m.session.Scroll(m.ctx, m.navigator.Viewport())
	if err != nil {
		// Most scroll events are nowhere near the bottom
		return nil
	}
	return m.runFetch(pending, nil)
}

// runFetch turns a pending request into a command, or reports why a
// trigger was refused
func (m *Model) runFetch(pending search.Pending, err error) tea.Cmd {
	if err != nil {
		m.log.WithError(err).Debug("trigger refused")
		if errors.Is(err, search.ErrBusy) {
			return m.setStatus("Still loading...")
		}
		return nil
	}

	cmds := []tea.Cmd{func() tea.Msg {
		return fetchDoneMsg{completion: pending()}
	}}
	if m.features.Loading && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) completeFetch(c search.Completion) tea.Cmd {
	st := m.session.Complete(c)
	m.navigator.SetCount(len(st.Hits))

	if c.Err != nil {
		m.log.WithError(c.Err).WithField("page", c.Request.Page).Debug("page failed")
		return nil
	}
	if c.Result != nil {
		m.nbHits = c.Result.NbHits
	}
	if c.Request.Page == 0 {
		m.navigator.Reset()
	}
	return nil
}

func (m *Model) openURL(url string) tea.Cmd {
	ops := m.ops
	return func() tea.Msg {
		return opsDoneMsg{op: "open", target: url, err: ops.OpenURL(url)}
	}
}

func (m *Model) copyURL(url string) tea.Cmd {
	ops := m.ops
	return func() tea.Msg {
		return opsDoneMsg{op: "copy", target: url, err: ops.CopyToClipboard(url)}
	}
}

// showPager returns a command that shows content in the pager, pausing
// rendering while it owns the terminal
func (m *Model) showPager(content string) tea.Cmd {
	ops := m.ops
	program := m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
			defer program.Send(resumeRenderingMsg{})
		}
		return opsDoneMsg{op: "pager", err: ops.ShowInPager(content)}
	}
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.statusMessage = status
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) selectedHit() (domain.Hit, bool) {
	hits := m.session.State().Hits
	i := m.navigator.SelectedIndex()
	if i < 0 || i >= len(hits) {
		return domain.Hit{}, false
	}
	return hits[i], true
}

// updateViewportHeight gives the list whatever the rest of the screen leaves
func (m *Model) updateViewportHeight() {
	if m.height == 0 {
		return
	}
	helpLines := lipgloss.Height(m.help.View(m.inputHandler.Keys()))
	m.navigator.SetHeight(m.height - views.ReservedLines + 1 - helpLines)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	st := m.session.State()
	frame := m.list.Render(views.Props{
		Hits:        st.Hits,
		Page:        st.Page,
		IsLoading:   st.IsLoading,
		IsError:     st.IsError,
		Selected:    m.navigator.SelectedIndex(),
		Offset:      m.navigator.ViewportOffset(),
		Height:      m.navigator.ViewportHeight(),
		Width:       m.width,
		ShowDetails: m.config.UISettings.ShowDetails,
		Spinner:     m.spinner.View(),
	})

	screen := m.screen.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Variant:       string(m.config.Variant),
		Query:         m.session.Query(),
		InputView:     m.inputHandler.TextInput().View(),
		Searching:     m.inputHandler.CurrentMode() == inputtypes.ModeSearch,
		List:          frame,
		HitCount:      len(st.Hits),
		Page:          st.Page,
		NbHits:        m.nbHits,
		StatusMessage: m.statusMessage,
		HelpView:      m.help.View(m.inputHandler.Keys()),
	})

	if hit, ok := m.selectedHit(); ok && m.showInfo {
		return m.popup.RenderPopupOverlay(screen, m.popup.HitDetails(hit), m.height, m.width)
	}
	return screen
}

// modelContext exposes the state the input handler needs
type modelContext struct {
	m *Model
}

func (c modelContext) HasResults() bool {
	return len(c.m.session.State().Hits) > 0
}

func (c modelContext) CurrentURL() string {
	hit, ok := c.m.selectedHit()
	if !ok {
		return ""
	}
	return hit.Link()
}

func (m *Model) inputContext() inputtypes.Context {
	return modelContext{m: m}
}
