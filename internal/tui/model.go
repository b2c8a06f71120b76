package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"sortdir/internal/config"
	"sortdir/internal/dirlock"
	"sortdir/internal/history"
	"sortdir/internal/logging"
	"sortdir/internal/organizer"
	"sortdir/internal/runexec"
	"sortdir/internal/runlog"
	"sortdir/internal/textutil"
)

type state int

const (
	stateReady state = iota
	stateRunning
	stateSaving
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rows used by everything except the log view
	chromeRows = 11
)

// Options configures the interactive front end.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *history.Store
	// Dir pre-fills the path input.
	Dir string
	// Run defaults to runexec.Run.
	Run RunFunc
	// CopyToClipboard defaults to clipboard.WriteAll.
	CopyToClipboard func(string) error
}

// Model is the bubbletea model for the organizer front end.
type Model struct {
	ctx  context.Context
	opts Options

	state     state
	input     textinput.Model
	saveInput textinput.Model
	bar       progress.Model
	logView   viewport.Model

	log      *runlog.Log
	events   chan tea.Msg
	runDir   string
	fraction float64

	status string
	notice string
	banner string

	width    int
	height   int
	quitting bool
}

// New returns a ready model.
func New(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Run == nil {
		opts.Run = runexec.Run
	}
	if opts.CopyToClipboard == nil {
		opts.CopyToClipboard = clipboard.WriteAll
	}

	in := textinput.New()
	in.Placeholder = "~/Downloads (type, paste or drop a folder)"
	in.CharLimit = 4096
	in.SetValue(opts.Dir)
	in.CursorEnd()
	in.Focus()

	si := textinput.New()
	si.Placeholder = "path for the saved log"
	si.CharLimit = 4096

	m := Model{
		ctx:       ctx,
		opts:      opts,
		input:     in,
		saveInput: si,
		bar:       progress.New(progress.WithDefaultGradient()),
		logView:   viewport.New(defaultWidth, defaultHeight-chromeRows),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case progressMsg:
		m.fraction = msg.evt.Fraction
		m.refreshLog()
		return m, waitForEvent(m.events)

	case runFinishedMsg:
		return m.finish(msg)

	case tea.KeyMsg:
		switch m.state {
		case stateRunning:
			return m.updateRunning(msg)
		case stateSaving:
			return m.updateSaving(msg)
		default:
			return m.updateReady(msg)
		}
	}
	return m, nil
}

func (m Model) updateReady(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		return m.start()

	case "ctrl+s":
		if m.log == nil {
			m.notice = "Nothing to save yet."
			return m, nil
		}
		m.state = stateSaving
		m.notice = ""
		m.banner = ""
		m.saveInput.SetValue(m.suggestedLogPath())
		m.saveInput.CursorEnd()
		m.input.Blur()
		return m, m.saveInput.Focus()

	case "ctrl+y":
		m.copyLog()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}

	if msg.Paste {
		m.input.SetValue(ParseDroppedPath(string(msg.Runes)))
		m.input.CursorEnd()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateRunning ignores the path input; only the log can be scrolled.
func (m Model) updateRunning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.notice = "A run is in progress and cannot be interrupted; please wait."
		return m, nil
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSaving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.state = stateReady
		m.saveInput.Blur()
		m.notice = "Save cancelled."
		return m, m.input.Focus()

	case "enter":
		m.state = stateReady
		m.saveInput.Blur()
		m.saveLog(ParseDroppedPath(m.saveInput.Value()))
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

func (m Model) start() (tea.Model, tea.Cmd) {
	dir := ParseDroppedPath(m.input.Value())
	if dir == "" {
		m.banner = "Please select a directory first."
		return m, nil
	}
	if expanded, err := config.ExpandPath(dir); err == nil {
		dir = expanded
	}
	m.input.SetValue(dir)
	m.input.CursorEnd()
	m.input.Blur()

	m.state = stateRunning
	m.runDir = dir
	m.fraction = 0
	m.status = ""
	m.notice = ""
	m.banner = ""
	m.log = runlog.New()
	m.events = make(chan tea.Msg, 16)
	m.refreshLog()

	opts := runexec.Options{
		Config:   m.opts.Config,
		Logger:   m.opts.Logger,
		Store:    m.opts.Store,
		Frontend: "tui",
		Dir:      dir,
		Log:      m.log,
	}
	return m, tea.Batch(
		startRun(m.ctx, m.opts.Run, opts, m.events),
		waitForEvent(m.events),
	)
}

func (m Model) finish(msg runFinishedMsg) (tea.Model, tea.Cmd) {
	m.state = stateReady
	m.events = nil
	if msg.out.Log != nil {
		m.log = msg.out.Log
	}
	m.refreshLog()

	if msg.err != nil {
		m.fraction = 0
		m.banner = describeError(msg.err, m.runDir)
		m.opts.Logger.Debug("tui run failed", logging.Error(msg.err))
		return m, m.input.Focus()
	}

	m.fraction = 1
	m.status = runexec.CompletionMessage(msg.out.Result.Moved)
	if n := len(msg.out.Result.Failures); n > 0 {
		m.notice = fmt.Sprintf("%d file(s) could not be moved; see the log for details.", n)
	}
	return m, m.input.Focus()
}

func describeError(err error, dir string) string {
	switch {
	case errors.Is(err, organizer.ErrNotADirectory):
		return fmt.Sprintf("Please select a valid directory: %q is not an existing folder.", dir)
	case errors.Is(err, dirlock.ErrBusy):
		return "This folder is already being organized by another sortdir process."
	default:
		return "An unexpected error occurred: " + err.Error()
	}
}

func (m *Model) saveLog(path string) {
	if path == "" {
		m.banner = "Failed to save log: no path given."
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := m.log.Save(path); err != nil {
		m.banner = "Failed to save log: " + err.Error()
		return
	}
	m.notice = "Log saved to: " + path
}

func (m *Model) copyLog() {
	if m.log == nil {
		m.notice = "Nothing to copy yet."
		return
	}
	if err := m.opts.CopyToClipboard(m.log.String()); err != nil {
		m.banner = "Failed to copy log: " + err.Error()
		return
	}
	m.notice = "Log copied to clipboard."
}

func (m Model) suggestedLogPath() string {
	prefix := "sortdir-log"
	if m.opts.Config != nil && m.opts.Config.RunLog.Prefix != "" {
		prefix = m.opts.Config.RunLog.Prefix
	}
	name := runlog.FileName(prefix, m.log.Failed(), time.Now())
	if m.runDir != "" && organizer.CheckDirectory(m.runDir) == nil {
		return filepath.Join(m.runDir, name)
	}
	return name
}

func (m *Model) refreshLog() {
	if m.log == nil {
		m.logView.SetContent("")
		return
	}
	m.logView.SetContent(m.log.String())
	m.logView.GotoBottom()
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height
	m.input.Width = max(10, width-16)
	m.saveInput.Width = max(10, width-16)
	m.bar.Width = max(10, width-4)
	m.logView.Width = max(10, width-4)
	m.logView.Height = max(3, height-chromeRows)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("sortdir") + dimStyle.Render("  sort a folder's files into category subfolders") + "\n\n")

	if m.state == stateSaving {
		b.WriteString(labelStyle.Render("Save log as: ") + inputStyle.Render(m.saveInput.View()) + "\n\n")
	} else {
		b.WriteString(labelStyle.Render("Directory:   ") + inputStyle.Render(m.input.View()) + "\n\n")
	}

	b.WriteString(m.bar.ViewAs(m.fraction) + "\n")

	switch {
	case m.banner != "":
		b.WriteString(errorBannerStyle.Render(m.banner))
	case m.state == stateRunning:
		b.WriteString(dimStyle.Render("Organizing " + textutil.ShortenPath(m.runDir, m.width-20) + " ..."))
	case m.status != "":
		b.WriteString(successStyle.Render(m.status))
	}
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n")

	if m.log == nil {
		b.WriteString(logStyle.Render(dimStyle.Render("Run details appear here.")) + "\n")
	} else {
		b.WriteString(logStyle.Render(m.logView.View()) + "\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHelp() string {
	switch m.state {
	case stateRunning:
		return helpStyle.Render("  organizing...  PgUp/PgDn: scroll log")
	case stateSaving:
		return helpStyle.Render("  Enter: save  Esc: cancel")
	default:
		return helpStyle.Render("  Enter: organize  Ctrl+S: save log  Ctrl+Y: copy log  PgUp/PgDn: scroll  Esc: quit")
	}
}
