// Package tui implements the terminal transport: a bubbletea program
// whose frame tick pumps the playback clock's frame source, making the
// TUI itself the frame-synchronized host.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/term"

	"github.com/openreelio/reel/cmd/reel/internal/project"
	"github.com/openreelio/reel/pkg/playback"
	"github.com/openreelio/reel/pkg/state"
	"github.com/openreelio/reel/pkg/timing"
	"github.com/openreelio/reel/pkg/util"
)

// frameInterval is the TUI render cadence; each frame pumps the clock's
// frame source once.
const frameInterval = time.Second / 60

// Options configures the transport TUI.
type Options struct {
	// Project supplies the timeline. Required.
	Project *project.Project

	// StartAt seeks to this position (seconds) before the first frame.
	StartAt mo.Option[float64]

	// TargetFPS enables tick throttling on the clock when > 0.
	TargetFPS float64

	// SeekStep is the distance of a seek key press in seconds.
	SeekStep float64
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	timecodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badgeOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	paneStyle     = lipgloss.NewStyle().Padding(1, 2)
)

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type model struct {
	clock *playback.Clock
	store *state.Store
	pump  *timing.FramePump
	vis   *timing.Visibility

	keymap    keymap
	helpC     help.Model
	progressC progress.Model
	seekC     textinput.Model
	seeking   bool

	projectName string
	stepFPS     float64
	seekStep    float64

	width    int
	quitting bool
}

func newModel(opts Options) *model {
	proj := opts.Project
	pump := timing.NewFramePump()
	vis := timing.NewVisibility()
	store := state.NewStore()

	clk := playback.New(playback.Options{
		Duration:     proj.Timeline.Duration,
		PlaybackRate: proj.Timeline.Rate,
		Loop:         proj.Timeline.Loop,
		TargetFPS:    opts.TargetFPS,
		Clock:        timing.System(),
		Frames:       pump,
		Timers:       timing.SystemTimers{},
		Visibility:   vis,
		Store:        store,
	})
	store.SetPlaybackRate(clk.PlaybackRate())
	store.SetLoop(clk.Loop())

	if start, ok := opts.StartAt.Get(); ok {
		clk.Seek(start)
	}

	seekC := textinput.New()
	seekC.Placeholder = "mm:ss or seconds"
	seekC.Prompt = "seek to: "
	seekC.CharLimit = 16

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	m := &model{
		clock:       clk,
		store:       store,
		pump:        pump,
		vis:         vis,
		keymap:      newKeymap(),
		helpC:       help.New(),
		progressC:   progress.New(progress.WithDefaultGradient()),
		seekC:       seekC,
		projectName: proj.Project.Name,
		stepFPS:     proj.Timeline.FPS,
		seekStep:    lo.Ternary(opts.SeekStep > 0, opts.SeekStep, 5.0),
		width:       width,
	}
	m.resize(width)
	return m
}

// Run drives the transport until the user quits, then disposes the
// clock.
func Run(opts Options) error {
	m := newModel(opts)
	defer m.clock.Dispose()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return frameTick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.pump.Step(time.Time(msg))
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.seeking {
			return m.updateSeekInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.playPause):
		m.clock.TogglePlayback()
	case key.Matches(msg, k.seekBack):
		m.clock.SeekBackward(m.seekStep)
	case key.Matches(msg, k.seekForward):
		m.clock.SeekForward(m.seekStep)
	case key.Matches(msg, k.stepBack):
		m.clock.StepBackward(m.stepFPS)
	case key.Matches(msg, k.stepForward):
		m.clock.StepForward(m.stepFPS)
	case key.Matches(msg, k.goToStart):
		m.clock.GoToStart()
	case key.Matches(msg, k.goToEnd):
		m.clock.GoToEnd()
	case key.Matches(msg, k.rateUp):
		m.setRate(m.clock.PlaybackRate() * 2)
	case key.Matches(msg, k.rateDown):
		m.setRate(m.clock.PlaybackRate() / 2)
	case key.Matches(msg, k.loop):
		m.clock.ToggleLoop()
		m.store.SetLoop(m.clock.Loop())
	case key.Matches(msg, k.background):
		m.vis.Set(!m.vis.Visible())
	case key.Matches(msg, k.seekTo):
		m.seeking = true
		m.seekC.SetValue("")
		return m, m.seekC.Focus()
	}
	return m, nil
}

func (m *model) updateSeekInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if target, err := parseTimecode(m.seekC.Value()); err == nil {
			m.clock.Seek(target)
		}
		m.seeking = false
		m.seekC.Blur()
		return m, nil
	case tea.KeyEsc:
		m.seeking = false
		m.seekC.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.seekC, cmd = m.seekC.Update(msg)
	return m, cmd
}

func (m *model) setRate(rate float64) {
	m.clock.SetPlaybackRate(rate)
	m.store.SetPlaybackRate(m.clock.PlaybackRate())
}

func (m *model) resize(width int) {
	m.width = width
	m.progressC.Width = util.Clamp(width-8, 10, 120)
	m.helpC.Width = width
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.store.Snapshot()

	title := titleStyle.Render(m.projectName)
	status := lo.Ternary(snap.IsPlaying, "▶", "⏸")

	timecode := timecodeStyle.Render(fmt.Sprintf("%s %s / %s",
		status,
		util.FormatTimecode(snap.CurrentTime),
		util.FormatTimecode(snap.Duration)))

	percent := 0.0
	if snap.Duration > 0 {
		percent = util.Clamp(snap.CurrentTime/snap.Duration, 0, 1)
	}
	bar := m.progressC.ViewAs(percent)

	badges := []string{
		fmt.Sprintf("rate %gx", snap.PlaybackRate),
		lo.Ternary(snap.Loop, badgeOnStyle.Render("loop on"), badgeOffStyle.Render("loop off")),
		lo.Ternary(m.clock.IsBackgrounded(),
			badgeOnStyle.Render("background timer"),
			badgeOffStyle.Render("frame synced")),
	}
	if stats := m.clock.FrameStats(); stats.EstimatedFPS > 0 {
		badges = append(badges, dimStyle.Render(
			fmt.Sprintf("%.0f fps, %d dropped", stats.EstimatedFPS, stats.DroppedFrames)))
	}

	lines := []string{
		title,
		"",
		timecode,
		bar,
		strings.Join(badges, dimStyle.Render("  ·  ")),
	}

	if m.seeking {
		lines = append(lines, "", m.seekC.View())
	}
	lines = append(lines, "", m.helpC.View(m.keymap))

	return paneStyle.Render(strings.Join(lines, "\n"))
}

// parseTimecode accepts "mm:ss", "mm:ss.mmm", or plain seconds.
func parseTimecode(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	if mins, secs, found := strings.Cut(s, ":"); found {
		minutes, err := strconv.ParseFloat(mins, 64)
		if err != nil {
			return 0, fmt.Errorf("bad minutes %q: %w", mins, err)
		}
		seconds, err := strconv.ParseFloat(secs, 64)
		if err != nil {
			return 0, fmt.Errorf("bad seconds %q: %w", secs, err)
		}
		return minutes*60 + seconds, nil
	}

	return strconv.ParseFloat(s, 64)
}
