// Package tui renders the BizFindr dashboard document in the terminal. The
// core handlers mutate the shared page.Document; the model redraws whenever
// the document signals a change.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/core/stats"
	"github.com/bizfindr/bizfindr/internal/core/widgets"
)

// linePixels converts viewport lines into the pixel offsets the back-to-top
// threshold is expressed in.
const linePixels = 20

// Options wires the model to the core handlers. Doc, Center, Refresh, Tabs,
// Search, Forms and BackToTop are required.
type Options struct {
	Doc       *page.Document
	Center    *notify.Center
	History   notify.Store // may be nil
	State     *stats.State // may be nil
	Refresh   *widgets.RefreshButton
	Tabs      *widgets.TabMemory
	Search    *widgets.SearchForm
	Forms     *widgets.FormLoading
	Draft     *widgets.SearchDraft // may be nil
	BackToTop *widgets.BackToTop
	Buffer    *NotificationBuffer // may be nil

	// Open shows a URL to the user, usually in a browser.
	Open func(ctx context.Context, url string) error
	// Now defaults to time.Now.
	Now func() time.Time
}

type (
	docChangedMsg    struct{}
	refreshDoneMsg   struct{}
	historyLoadedMsg struct {
		items []notify.Notification
		err   error
	}
	openedMsg struct {
		url string
		err error
	}
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx  context.Context
	opts Options
	log  zerolog.Logger

	keys       keyMap
	searchKeys searchKeys

	width  int
	height int

	spinner   spinner.Model
	input     textinput.Model
	searching bool
	viewport  viewport.Model

	history    []notify.Notification
	historyErr error
	lastOpened string
}

// New builds the model and restores the remembered tab and search draft.
func New(ctx context.Context, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Buffer == nil {
		opts.Buffer = NewNotificationBuffer()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "Search businesses..."
	in.CharLimit = 200
	in.Prompt = ""

	m := Model{
		ctx:        ctx,
		opts:       opts,
		log:        logging.Component("tui"),
		keys:       defaultKeyMap(),
		searchKeys: defaultSearchKeys(),
		spinner:    s,
		input:      in,
		viewport:   viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
	}

	opts.Tabs.Restore(ctx)
	if opts.Draft != nil {
		if q := opts.Draft.Load(ctx); q != "" {
			m.input.SetValue(q)
		}
	}

	m.syncContent()
	return m
}

// Init starts the spinner and the document and notification watchers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForChange(m.opts.Doc),
		m.opts.Buffer.WaitForSignal(),
		m.loadHistory(),
	)
}

func waitForChange(doc *page.Document) tea.Cmd {
	return func() tea.Msg {
		<-doc.Changed()
		return docChangedMsg{}
	}
}

func (m Model) loadHistory() tea.Cmd {
	store := m.opts.History
	if store == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		items, err := store.List(ctx)
		return historyLoadedMsg{items: items, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-4, 10))
		m.resizeViewport()
		m.syncContent()
		return m, nil

	case docChangedMsg:
		m.syncContent()
		return m, waitForChange(m.opts.Doc)

	case drainNotificationsMsg:
		drained := m.opts.Buffer.Drain()
		for _, n := range drained {
			m.history = append([]notify.Notification{n}, m.history...)
		}
		m.syncContent()
		return m, m.opts.Buffer.WaitForSignal()

	case historyLoadedMsg:
		m.historyErr = msg.err
		if msg.err == nil {
			m.history = msg.items
		}
		m.syncContent()
		return m, nil

	case refreshDoneMsg:
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("url", msg.url).Msg("failed to open url")
			m.opts.Center.Errorf("Error: could not open %s", msg.url)
			return m, nil
		}
		m.lastOpened = msg.url
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		if m.opts.Refresh.Busy() {
			return m, nil
		}
		refresh := m.opts.Refresh
		ctx := m.ctx
		return m, func() tea.Msg {
			refresh.Click(ctx)
			return refreshDoneMsg{}
		}

	case key.Matches(msg, m.keys.Dismiss):
		m.opts.Center.DismissNewest()
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		m.opts.Center.DismissAll()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.opts.Tabs.Next(m.ctx)
		m.viewport.GotoTop()
		m.opts.BackToTop.Scroll(0)
		m.syncContent()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		trigger := m.opts.Doc.ByID(page.IDClearFilters)
		url, ok := m.opts.Search.ClearFilters(trigger)
		if !ok {
			return m, nil
		}
		m.input.SetValue("")
		if m.opts.Draft != nil {
			m.opts.Draft.Discard(m.ctx)
		}
		return m, m.open(url)

	case key.Matches(msg, m.keys.Top):
		m.viewport.SetYOffset(m.opts.BackToTop.Click())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.opts.BackToTop.Scroll(m.viewport.YOffset() * linePixels)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.searchKeys.Cancel):
		m.searching = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.searchKeys.Submit):
		form := m.opts.Search.Form()
		if form == nil {
			return m, nil
		}
		m.opts.Search.SetQuery(form, m.input.Value())
		m.opts.Forms.Submit(form)
		url, ok := m.opts.Search.Submit(form)
		if !ok {
			return m, nil
		}
		m.searching = false
		m.input.Blur()
		if m.opts.Draft != nil {
			m.opts.Draft.Discard(m.ctx)
		}
		return m, m.open(url)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.opts.Draft != nil {
		m.opts.Draft.Update(m.input.Value())
	}
	return m, cmd
}

func (m Model) open(url string) tea.Cmd {
	if m.opts.Open == nil {
		return func() tea.Msg { return openedMsg{url: url} }
	}
	open := m.opts.Open
	ctx := m.ctx
	return func() tea.Msg {
		return openedMsg{url: url, err: open(ctx, url)}
	}
}

// chromeHeight is the number of rows used outside the viewport: navbar,
// banners, tabs, search line and footer.
func (m Model) chromeHeight() int {
	return 5 + len(m.opts.Center.Active())
}

func (m *Model) resizeViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(max(m.height-m.chromeHeight(), 1))
}

func (m *Model) syncContent() {
	m.resizeViewport()
	m.viewport.SetContent(m.renderBody())
}

// View renders the dashboard.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}
