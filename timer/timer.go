// Package timer runs the interactive countdown on top of the timer engine
package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/focuslog/focuslog/internal/config"
	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/models"
)

const (
	padding  = 2
	maxWidth = 80
)

// Recorder saves finished intervals.
type Recorder interface {
	Record(ctx context.Context, mode engine.Mode, secs int) (*models.Session, error)
}

// Options holds the collaborators of the timer model.
type Options struct {
	Store      engine.SnapshotStore
	Notifier   engine.Notifier
	Clock      engine.Clock
	Recorder   Recorder
	Logger     *slog.Logger
	Title      string
	StatusPath string
}

type styles struct {
	base   lipgloss.Style
	main   lipgloss.Style
	hint   lipgloss.Style
	flash  lipgloss.Style
	errMsg lipgloss.Style
}

func newStyles() styles {
	return styles{
		base:   lipgloss.NewStyle().Padding(1, padding),
		main:   lipgloss.NewStyle().Bold(true),
		hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
		flash:  lipgloss.NewStyle().Foreground(lipgloss.Color("#39D353")),
		errMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// Model is the bubbletea model of the countdown screen.
type Model struct {
	ctx        context.Context
	engine     *engine.Engine
	cfg        *config.Config
	recorder   Recorder
	clock      engine.Clock
	logger     *slog.Logger
	keys       keymap
	styles     styles
	help       help.Model
	progress   progress.Model
	flash      string
	title      string
	statusPath string
	lastStatus string
	pending    []int
	inflight   int
	flashErr   bool
	quitting   bool
}

type tickMsg time.Time

type recordedMsg struct {
	sess *models.Session
	err  error
}

type sessionCmdMsg struct {
	err error
}

// New creates the timer model. A snapshot found in opts.Store is resumed;
// otherwise the mode requested on the command line is loaded.
func New(ctx context.Context, cfg *config.Config, opts Options) *Model {
	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		recorder:   opts.Recorder,
		clock:      opts.Clock,
		logger:     opts.Logger,
		keys:       defaultKeymap,
		styles:     newStyles(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		title:      opts.Title,
		statusPath: opts.StatusPath,
	}

	if m.clock == nil {
		m.clock = engine.SystemClock
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	m.progress.Width = maxWidth - padding*2

	engineOpts := []engine.Option{
		engine.WithClock(m.clock),
		engine.WithLogger(m.logger),
		engine.WithAnomalyThreshold(cfg.Timer.AnomalyThreshold),
		engine.WithOnComplete(m.complete),
	}

	if opts.Store != nil {
		engineOpts = append(engineOpts, engine.WithStore(opts.Store))
	}

	if opts.Notifier != nil {
		engineOpts = append(engineOpts, engine.WithNotifier(opts.Notifier))
	}

	m.engine = engine.New(cfg.Catalog(), engineOpts...)

	if mode := cfg.CLI.Mode; mode != "" && m.engine.State().Status() == engine.Idle {
		m.engine.SwitchMode(mode, int(cfg.CLI.CustomDuration.Seconds()))
	}

	return m
}

// complete queues a finished interval for recording. The engine calls it
// synchronously from Tick and while restoring, before m.engine is set.
func (m *Model) complete(totalSeconds int) {
	m.pending = append(m.pending, totalSeconds)
}

// Engine exposes the underlying engine.
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Timer.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	m.writeStatus()

	return tea.Batch(m.tick(), m.drain())
}
