package tui

import (
	"context"
	"fmt"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/chartlog/capture"
	"github.com/rustyeddy/chartlog/config"
	"github.com/rustyeddy/chartlog/entry"
	"github.com/rustyeddy/chartlog/journal"
	"github.com/rustyeddy/chartlog/notify"
)

type state int

const (
	stateIdle state = iota
	stateCapturing
	stateSelecting
	stateSaving
	stateEntry
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCapturing:
		return "capturing"
	case stateSelecting:
		return "selecting"
	case stateSaving:
		return "saving"
	case stateEntry:
		return "entry"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Deps are the collaborators an App drives.
type Deps struct {
	// Mode is config.ModeSnip or config.ModeQuick.
	Mode     string
	Capturer capture.Capturer
	Store    *capture.Store
	Flow     *entry.Flow
	// TablePath is watched for lock release after a locked save.
	TablePath string
	Notifier  notify.Notifier
	Log       zerolog.Logger
	// Once runs a single flow on start and quits when it ends.
	Once bool
	// HotkeyLabel is shown on the idle screen.
	HotkeyLabel string
}

// App is the root model. It holds at most one active flow: a trigger while
// capturing, selecting or editing is dropped.
type App struct {
	deps  Deps
	state state

	selector SelectModel
	form     FormModel

	stopWatch context.CancelFunc

	status string
	saved  int
	width  int
	height int

	styles Styles
}

// NewApp returns an idle app.
func NewApp(deps Deps) *App {
	if deps.Notifier == nil {
		deps.Notifier = notify.Log{Logger: deps.Log}
	}
	if deps.Mode == "" {
		deps.Mode = config.ModeSnip
	}
	return &App{
		deps:   deps,
		width:  80,
		height: 24,
		styles: DefaultStyles(),
	}
}

// Saved returns how many entries were written while the app ran.
func (a *App) Saved() int { return a.saved }

// Init starts the flow right away in once mode.
func (a *App) Init() tea.Cmd {
	if a.deps.Once {
		return func() tea.Msg { return TriggerMsg{} }
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.state == stateSelecting {
			var cmd tea.Cmd
			a.selector, cmd = a.selector.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.stopWatching()
			return a, tea.Quit
		case "q":
			if a.state == stateIdle {
				return a, tea.Quit
			}
		}

	case TriggerMsg:
		if a.state != stateIdle {
			a.deps.Log.Debug().Stringer("state", a.state).Msg("trigger ignored, flow active")
			return a, nil
		}
		a.state = stateCapturing
		a.status = ""
		return a, a.captureCmd()

	case capturedMsg:
		if msg.err != nil {
			a.deps.Log.Error().Err(msg.err).Msg("screen capture failed")
			a.deps.Notifier.Error("Capture failed", msg.err.Error())
			return a.finish("capture failed")
		}
		if a.deps.Mode == config.ModeQuick {
			a.state = stateSaving
			return a, a.saveCmd(msg.img)
		}
		a.state = stateSelecting
		a.selector = NewSelect(msg.img, a.width, a.height)
		return a, nil

	case selectedMsg:
		if !msg.ok {
			a.deps.Log.Debug().Msg("selection too small, discarded")
			return a.finish("selection discarded")
		}
		a.state = stateSaving
		return a, a.saveCmd(msg.img)

	case imageSavedMsg:
		if msg.err != nil {
			a.deps.Log.Error().Err(msg.err).Msg("could not save capture")
			a.deps.Notifier.Error("Save failed", msg.err.Error())
			return a.finish("capture not saved")
		}
		a.deps.Log.Info().Str("path", msg.path).Msg("capture saved")
		a.state = stateEntry
		a.form = NewForm(msg.path, msg.img, a.deps.Flow.Prefill(), a.deps.Mode == config.ModeQuick)
		return a, a.form.Init()

	case submitMsg:
		if a.state != stateEntry {
			return a, nil
		}
		return a.submit(msg.in)

	case cancelMsg:
		return a.finish("cancelled")

	case unlockedMsg:
		if a.state == stateEntry && msg.err == nil {
			a.form.Released()
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case stateSelecting:
		a.selector, cmd = a.selector.Update(msg)
	case stateEntry:
		a.form, cmd = a.form.Update(msg)
	}
	return a, cmd
}

func (a *App) submit(in entry.Input) (tea.Model, tea.Cmd) {
	res := a.deps.Flow.Submit(a.form.ImagePath(), in)
	switch res.Outcome {
	case entry.OutcomeSaved:
		a.saved++
		return a.finish(fmt.Sprintf("Saved %s at %s", res.Entry.Ticker, res.Entry.Clock()))

	case entry.OutcomeInvalid:
		a.form.Invalid(res.Reason)
		return a, nil

	case entry.OutcomeLocked:
		msg := entry.LockedMessage(a.deps.TablePath)
		a.form.Locked(msg)
		a.deps.Notifier.Warn("Journal locked", msg)
		return a, a.watchCmd()

	default:
		a.deps.Notifier.Error("Save failed", res.Err.Error())
		return a.finish("entry not saved")
	}
}

// finish closes the active flow and returns to idle.
func (a *App) finish(status string) (tea.Model, tea.Cmd) {
	a.stopWatching()
	a.state = stateIdle
	a.status = status
	a.form = FormModel{}
	a.selector = SelectModel{}
	if a.deps.Once {
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) captureCmd() tea.Cmd {
	c := a.deps.Capturer
	return func() tea.Msg {
		img, err := c.CaptureFullScreen()
		return capturedMsg{img: img, err: err}
	}
}

func (a *App) saveCmd(img image.Image) tea.Cmd {
	s := a.deps.Store
	return func() tea.Msg {
		path, err := s.Save(img)
		return imageSavedMsg{path: path, img: img, err: err}
	}
}

// watchCmd waits for the owner lock file to go away. Locks without an
// owner file (sharing violations, sqlite) are not watched.
func (a *App) watchCmd() tea.Cmd {
	a.stopWatching()
	path := a.deps.TablePath
	if path == "" || len(journal.HeldBy(path)) == 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	return func() tea.Msg {
		return unlockedMsg{err: journal.WaitUnlocked(ctx, path)}
	}
}

func (a *App) stopWatching() {
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.state {
	case stateSelecting:
		return a.selector.View()
	case stateEntry:
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.form.View())
	}

	s := a.styles
	var body string
	switch a.state {
	case stateCapturing:
		body = s.Muted.Render("Capturing screen...")
	case stateSaving:
		body = s.Muted.Render("Saving capture...")
	default:
		label := a.deps.HotkeyLabel
		if label == "" {
			label = "the hotkey"
		}
		lines := []string{
			s.Title.Render("chartlog"),
			s.Label.Render(fmt.Sprintf("Mode: %s", a.deps.Mode)),
			s.Muted.Render(fmt.Sprintf("Press %s to capture · q to quit", label)),
		}
		if a.status != "" {
			lines = append(lines, "", s.Success.Render(a.status))
		}
		if a.saved > 0 {
			lines = append(lines, s.Muted.Render(fmt.Sprintf("%d saved this session", a.saved)))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

// Program wraps app in a full-screen program with mouse tracking. Send
// TriggerMsg to it from other goroutines to start a capture.
func Program(ctx context.Context, app *App, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, opts...)
	return tea.NewProgram(app, opts...)
}
