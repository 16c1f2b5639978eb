package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/player"
	"github.com/desertthunder/tapedeck/internal/shared"
	"github.com/desertthunder/tapedeck/internal/tasks"
)

const (
	seekStep   = 0.05 // Fraction of the rail moved by one seek key press
	volumeStep = 0.1
)

// Options configures a [Model].
type Options struct {
	Discoverer *tasks.Discoverer // Nil disables background duration discovery
	Discovery  tasks.DiscoveryOpts
	Logger     *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	decks        []*Deck
	active       int
	discoverer   *tasks.Discoverer
	discovery    tasks.DiscoveryOpts
	pending      int // Decks with discovery still running
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	hoverVolume  bool
	width        int
	height       int
	help         help.Model
	keys         keyMap
	logger       *log.Logger
}

// NewModel creates a new TUI model over the given decks.
func NewModel(ctx context.Context, decks []*Deck, opts Options) (*Model, error) {
	if len(decks) == 0 {
		return nil, fmt.Errorf("%w: at least one deck is required", shared.ErrMissingArgument)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		ctx:        ctx,
		cancel:     cancel,
		decks:      decks,
		discoverer: opts.Discoverer,
		discovery:  opts.Discovery,
		help:       help.New(),
		keys:       newKeyMap(),
		logger:     opts.Logger,
	}
	m.resize()
	return m, nil
}

// Init starts listening to every engine and launches duration discovery.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.decks {
		cmds = append(cmds, m.waitForEvent(i))
	}
	cmds = append(cmds, m.startDiscovery()...)
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case Msg:
		return m, m.handleMsg(msg)
	}
	return m, nil
}

// View renders the active deck.
func (m *Model) View() string {
	return m.render()
}

// Decks returns the decks in tab order.
func (m *Model) Decks() []*Deck { return m.decks }

// Active returns the index of the deck receiving input.
func (m *Model) Active() int { return m.active }

// Close cancels discovery. Engines are owned by the caller.
func (m *Model) Close() { m.cancel() }

func (m *Model) deck() *Deck { return m.decks[m.active] }

func (m *Model) layout() layout {
	return computeLayout(m.decks, m.deck(), m.width, m.height)
}

// resize pushes the rail width of the current terminal size into every player.
func (m *Model) resize() {
	for _, d := range m.decks {
		l := computeLayout(m.decks, d, m.width, m.height)
		if w := l.railWidth(); w > 0 {
			d.player.SetRailWidth(float64(w))
		}
		d.scrollTo(visibleRows(m.height))
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.deck()
	p := d.player

	switch {
	case key.Matches(msg, m.keys.quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.play):
		p.TogglePlay()
	case key.Matches(msg, m.keys.next):
		p.Next()
	case key.Matches(msg, m.keys.prev):
		p.Prev()
	case key.Matches(msg, m.keys.shuffle):
		p.ToggleShuffle()
	case key.Matches(msg, m.keys.repeat):
		p.ToggleRepeat()
	case key.Matches(msg, m.keys.mute):
		p.ToggleMute()
	case key.Matches(msg, m.keys.louder):
		m.nudgeVolume(-volumeStep)
	case key.Matches(msg, m.keys.quieter):
		m.nudgeVolume(volumeStep)
	case key.Matches(msg, m.keys.forward):
		m.nudgeSeek(seekStep)
	case key.Matches(msg, m.keys.rewind):
		m.nudgeSeek(-seekStep)
	case key.Matches(msg, m.keys.playlist):
		p.TogglePlaylist()
	case key.Matches(msg, m.keys.up):
		d.moveCursor(-1)
		d.scrollTo(visibleRows(m.height))
	case key.Matches(msg, m.keys.down):
		d.moveCursor(1)
		d.scrollTo(visibleRows(m.height))
	case key.Matches(msg, m.keys.enter):
		p.ClickRow(d.cursor)
	case key.Matches(msg, m.keys.nextDeck):
		return m, m.switchDeck((m.active + 1) % len(m.decks))
	case key.Matches(msg, m.keys.prevDeck):
		return m, m.switchDeck((m.active - 1 + len(m.decks)) % len(m.decks))
	}
	return m, nil
}

// nudgeVolume moves the slider by delta; negative is louder.
func (m *Model) nudgeVolume(delta float64) {
	c := m.deck().player.Controls()
	if c.VolumeSlider == nil {
		return
	}
	m.deck().player.SetVolume(c.VolumeSlider.Value + delta)
}

// nudgeSeek seeks by a fraction of the rail from the handle position.
func (m *Model) nudgeSeek(delta float64) {
	p := m.deck().player
	c := p.Controls()
	if c.Rail == nil || c.Bar == nil {
		return
	}
	x := (c.Bar.Percent/100 + delta) * c.Rail.Width
	p.SeekTo(x)
}

func (m *Model) switchDeck(i int) tea.Cmd {
	if i == m.active {
		return nil
	}
	cmd := m.hover(false)
	if d := m.deck(); d.player.State().DraggingProgress {
		d.player.EndDrag(d.player.Controls().Handle.Offset)
	}
	m.active = i
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	d := m.deck()
	p := d.player
	l := m.layout()

	switch msg.Action {
	case tea.MouseActionMotion:
		if p.State().DraggingProgress {
			p.DragTo(l.railPos(msg.X))
			return nil
		}
		return m.hover(l.overVolume(msg.X, msg.Y))

	case tea.MouseActionRelease:
		if p.State().DraggingProgress {
			p.EndDrag(l.railPos(msg.X))
		}
		return nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.click(l.hitTest(msg.X, msg.Y))
	}
	return nil
}

// click delivers a press to exactly one target.
func (m *Model) click(t target) tea.Cmd {
	d := m.deck()
	p := d.player

	switch t.kind {
	case targetTab:
		return m.switchDeck(t.index)
	case targetPrev:
		p.Prev()
	case targetPlay:
		p.TogglePlay()
	case targetNext:
		p.Next()
	case targetShuffle:
		p.ToggleShuffle()
	case targetRepeat:
		p.ToggleRepeat()
	case targetMute:
		p.ToggleMute()
	case targetPlaylistToggle:
		p.TogglePlaylist()
	case targetHandle:
		p.BeginDrag()
		p.DragTo(t.pos)
	case targetRail:
		p.SeekTo(t.pos)
	case targetSlider:
		p.SetVolume(t.pos)
	case targetRowPlay:
		d.cursor = t.index
		p.ClickRowPlay(t.index)
	case targetRow:
		d.cursor = t.index
		p.ClickRow(t.index)
	}
	return nil
}

// hover tracks the pointer entering and leaving the volume area and schedules the delayed hide.
func (m *Model) hover(over bool) tea.Cmd {
	if over == m.hoverVolume {
		return nil
	}
	m.hoverVolume = over
	p := m.deck().player
	if over {
		p.EnterVolume()
		return nil
	}

	deck := m.active
	gen, delay := p.LeaveVolume()
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return popoverExpiredMsg(deck, gen)
	})
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	if msg.deck >= len(m.decks) {
		return nil
	}

	switch msg.kind {
	case MsgEngineEvent:
		ev := msg.data.(player.Event)
		m.decks[msg.deck].player.Dispatch(ev)
		return m.waitForEvent(msg.deck)

	case MsgDurationFound:
		res := msg.data.(tasks.DurationResult)
		if res.Err == nil {
			m.decks[msg.deck].player.ApplyDiscoveredDuration(res.Index, res.Seconds)
		}
		return m.waitForDuration(msg.deck)

	case MsgDiscoveryDone:
		m.decks[msg.deck].durations = nil
		m.pending--
		if m.pending == 0 && m.progressChan != nil {
			close(m.progressChan)
			m.progressChan = nil
		}
		return nil

	case MsgPopoverExpired:
		m.decks[msg.deck].player.ExpireVolumePopover(msg.data.(uint64))
		return nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m.waitForProgress()
	}
	return nil
}

// startDiscovery launches one discovery run per deck.
func (m *Model) startDiscovery() []tea.Cmd {
	if m.discoverer == nil {
		return nil
	}
	m.progressChan = make(chan tasks.ProgressUpdate, 50)

	var cmds []tea.Cmd
	for i, d := range m.decks {
		results, err := m.discoverer.Discover(m.ctx, m.progressChan, d.player.Tracks(), m.discovery)
		if err != nil {
			m.logger.Warn("duration discovery not started", "deck", d.name, "err", err)
			continue
		}
		d.durations = results
		m.pending++
		cmds = append(cmds, m.waitForDuration(i))
	}
	if m.pending == 0 {
		close(m.progressChan)
		m.progressChan = nil
		return cmds
	}
	return append(cmds, m.waitForProgress())
}

func (m *Model) waitForEvent(deck int) tea.Cmd {
	ch := m.decks[deck].events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return engineEventMsg(deck, ev)
	}
}

func (m *Model) waitForDuration(deck int) tea.Cmd {
	ch := m.decks[deck].durations
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return discoveryDoneMsg(deck)
		}
		return durationFoundMsg(deck, res)
	}
}

func (m *Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func tabLabel(d *Deck) string {
	return fmt.Sprintf(" %s ", d.name)
}

func (m *Model) render() string {
	d := m.deck()
	p := d.player
	c := p.Controls()
	pal := d.palette
	l := m.layout()

	lines := make([]string, rowsLine)

	var tabs []string
	for i, other := range m.decks {
		label := tabLabel(other)
		if i == m.active {
			label = pal.active.Render(label)
		} else {
			label = pal.dim.Render(label)
		}
		tabs = append(tabs, label)
	}
	lines[tabLine] = strings.Join(tabs, strings.Repeat(" ", buttonGap))

	if c.Cover != nil {
		lines[coverLine] = pal.dim.Render("cover: " + c.Cover.Source)
	}
	lines[titleLine] = pal.title.Render(c.Title.Value)
	lines[artistLine] = c.Artist.Value

	var buttons []string
	for _, b := range l.buttons {
		if b.active {
			buttons = append(buttons, pal.accent.Render(b.label))
		} else {
			buttons = append(buttons, b.label)
		}
	}
	lines[controlsLine] = strings.Join(buttons, strings.Repeat(" ", buttonGap))

	if w := l.railWidth(); w > 0 {
		lines[progressLine] = fmt.Sprintf("%*s %s %s", timeWidth, c.Elapsed.Value, m.renderRail(l, c), c.Duration.Value)
	}

	if l.slider.x1 > 0 {
		lines[volumeLine] = sliderLabel + renderSlider(c.VolumeSlider.Value, pal)
	}

	if l.rowsShown {
		rows := c.Playlist.Rows
		for i := l.firstRow; i < l.firstRow+l.rowCount; i++ {
			lines = append(lines, renderRow(rows[i], i == d.cursor, pal))
		}
	}

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if msg := m.progress.Message; msg != "" {
		footer = fmt.Sprintf("%s\n%s", footer, styles.help.Render(msg))
	}
	return strings.Join(lines, "\n") + "\n\n" + footer
}

func (m *Model) renderRail(l layout, c player.ControlSet) string {
	w := l.railWidth()
	filled := int(c.Bar.Percent / 100 * float64(w))
	handle := l.handleX - l.rail.x0

	var sb strings.Builder
	for i := range w {
		switch {
		case i == handle:
			sb.WriteString("●")
		case i < filled:
			sb.WriteString("━")
		default:
			sb.WriteString("─")
		}
	}
	return m.deck().palette.accent.Render(sb.String())
}

func renderSlider(ui float64, pal *Palette) string {
	level := int((1 - ui) * float64(sliderWidth-1))
	var sb strings.Builder
	for i := range sliderWidth {
		switch {
		case i == level:
			sb.WriteString("●")
		case i < level:
			sb.WriteString("━")
		default:
			sb.WriteString("─")
		}
	}
	return pal.accent.Render(sb.String())
}

func renderRow(r player.Row, focused bool, pal *Palette) string {
	text := fmt.Sprintf("%2d. %s", r.Index+1, r.Title)
	if r.Artist != "" {
		text = fmt.Sprintf("%s · %s", text, r.Artist)
	}
	text = fmt.Sprintf("%s  %s", text, r.Duration)

	switch {
	case r.Active:
		text = pal.accent.Render(text)
	case focused:
		text = pal.cursor.Render(text)
	}
	return " ▶ " + text
}
