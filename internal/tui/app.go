package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dm/elasticstat/internal/client"
	"github.com/dm/elasticstat/internal/engine"
	"github.com/dm/elasticstat/internal/format"
	"github.com/dm/elasticstat/internal/metrics"
)

// chromeHeight is the number of lines around the node viewport: the header
// bar, cluster heading and row, a blank line, the node heading and the footer.
const chromeHeight = 6

// App is the root Bubble Tea model for elasticstat.
type App struct {
	client       client.ESClient
	engine       *engine.Engine
	metrics      *metrics.Metrics
	log          *zap.Logger
	pollInterval time.Duration

	// Poll state
	fetching    bool // true while a fetchCmd goroutine is in-flight
	tickGen     int  // generation of the only live tick; older ticks are stale
	result      *engine.CycleResult
	lastUpdated time.Time
	err         error // fatal fetch failure; the program quits once set

	// Layout
	width, height int
	nodes         viewport.Model

	// UI state
	showHelp bool
}

// Option customizes an App.
type Option func(*App)

// WithMetrics records every cycle and fetch failure in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(app *App) { app.metrics = m }
}

// WithLogger sets the logger used for fetch failures.
func WithLogger(log *zap.Logger) Option {
	return func(app *App) { app.log = log }
}

// NewApp creates a new App polling c every interval and diffing through e.
func NewApp(c client.ESClient, e *engine.Engine, interval time.Duration, opts ...Option) *App {
	app := &App{
		client:       c,
		engine:       e,
		log:          zap.NewNop(),
		pollInterval: interval,
		nodes:        viewport.New(80, 1),
		fetching:     true, // Init() always issues an immediate fetchCmd
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Err returns the fetch failure that ended the program, if any.
func (app *App) Err() error { return app.err }

// Init implements tea.Model. Starts the first fetch immediately on launch.
func (app *App) Init() tea.Cmd {
	return fetchCmd(app.client)
}

// Update implements tea.Model and is the single state-mutation entry point.
// The engine only ever runs here, so cycles never overlap.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height
		app.nodes.Width = msg.Width
		app.nodes.Height = max(msg.Height-chromeHeight, 1)
		app.refreshNodes()

	case SnapshotMsg:
		app.fetching = false
		res := app.engine.Cycle(msg.Snapshot)
		if app.metrics != nil {
			app.metrics.ObserveCycle(res, app.engine.Topology())
		}
		app.result = &res
		app.lastUpdated = res.Cluster.CapturedAt
		app.refreshNodes()
		app.tickGen++
		return app, tickCmd(app.pollInterval, app.tickGen)

	case FetchErrorMsg:
		app.fetching = false
		app.err = msg.Err
		if app.metrics != nil {
			app.metrics.ObserveFetchFailure()
		}
		app.log.Error("snapshot fetch failed", zap.Error(msg.Err))
		return app, tea.Quit

	case TickMsg:
		if msg.Gen != app.tickGen || app.fetching || app.err != nil {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.client)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.fetching {
				return app, nil
			}
			// The pending tick is superseded; the refreshed snapshot
			// starts a new schedule.
			app.tickGen++
			app.fetching = true
			return app, fetchCmd(app.client)
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		case key.Matches(msg, keys.scroll()...):
			var cmd tea.Cmd
			app.nodes, cmd = app.nodes.Update(msg)
			return app, cmd
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	parts := []string{renderHeader(app)}
	if app.result != nil {
		parts = append(parts, renderCluster(app.result.Cluster)...)
		parts = append(parts, "", StyleTableHeader.Render(format.NodeHeader()), app.nodes.View())
	}
	parts = append(parts, renderFooter(app))
	return strings.Join(parts, "\n")
}

// refreshNodes re-renders the node rows into the viewport, keeping the
// scroll position where possible.
func (app *App) refreshNodes() {
	if app.result == nil {
		return
	}
	app.nodes.SetContent(strings.Join(renderNodes(app.result.Nodes), "\n"))
}

// tickCmd schedules the next poll after duration d, stamped with gen.
func tickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// fetchCmd acquires one snapshot. Per-request timeouts are enforced by the
// client, so the command itself carries no deadline.
func fetchCmd(c client.ESClient) tea.Cmd {
	return func() tea.Msg {
		snap, err := engine.FetchAll(context.Background(), c)
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}
