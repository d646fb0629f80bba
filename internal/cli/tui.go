package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nekodev/skillring/pkg/carousel"
	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/content"
)

const (
	// cellPx converts terminal cells to carousel pixels for pointer
	// positions and the viewport width.
	cellPx = 8

	// wheelDelta is the pixel delta reported per wheel notch.
	wheelDelta = 100

	// frameInterval paces transition animation.
	frameInterval = time.Second / 30

	// Screen rows above and below the ring.
	headerRows = 2
	footerRows = 3
)

// State indicator styles
var (
	stateIdleStyle        = lipgloss.NewStyle().Foreground(colorGreen)
	stateInteractingStyle = lipgloss.NewStyle().Foreground(colorYellow)
	stateCooldownStyle    = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Command
// =============================================================================

// tuiOpts holds the command-line flags for the tui command.
type tuiOpts struct {
	content  string
	interval int
}

// tuiCommand creates the tui command, an interactive terminal carousel.
func (c *CLI) tuiCommand() *cobra.Command {
	var opts tuiOpts

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the carousel in the terminal",
		Long: `Run the skill carousel in the terminal.

Keys: ←/→ or h/l move one card, 1-9 jump, g returns to the first card, q quits.
Mouse: click a card to focus it, drag sideways to swipe, scroll over the ring
to step through cards. Resting the pointer on the ring pauses auto-advance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "deck file (JSON or TOML)")
	cmd.Flags().IntVar(&opts.interval, "interval", 0, "auto-advance interval in milliseconds (overrides config)")

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, opts tuiOpts) error {
	deck, err := c.loadDeck(ctx, opts.content, nil)
	if err != nil {
		return err
	}

	copts := c.config().CarouselOptions()
	if opts.interval > 0 {
		copts = append(copts, carousel.WithAutoAdvanceInterval(time.Duration(opts.interval)*time.Millisecond))
	}
	ctrl, err := carousel.New(deck.Len(), copts...)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	p := tea.NewProgram(newCarouselModel(ctrl, deck),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// =============================================================================
// carouselModel - Interactive carousel
// =============================================================================

type (
	changedMsg   struct{}
	closedMsg    struct{}
	animFrameMsg time.Time
)

// pressState tracks a held left button. A press that moves becomes a swipe;
// one released in place is a click.
type pressState struct {
	x, y     int
	dragging bool
}

// carouselModel renders a controller and forwards terminal input to it.
type carouselModel struct {
	ctrl *carousel.Controller
	deck *content.Deck
	snap carousel.Snapshot

	// shown are the frames on screen; they trail snap.Frames while a
	// transition runs.
	shown     []layout.Frame
	anim      layout.Transition
	animStart time.Time
	animating bool

	width, height int
	canvas        canvas
	press         *pressState
	now           func() time.Time
}

func newCarouselModel(ctrl *carousel.Controller, deck *content.Deck) carouselModel {
	snap := ctrl.Snapshot()
	m := carouselModel{
		ctrl:   ctrl,
		deck:   deck,
		snap:   snap,
		shown:  snap.Frames,
		width:  80,
		height: 24,
		now:    time.Now,
	}
	m.canvas = m.paint()
	return m
}

// waitForChange blocks on the controller's notification channel.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

func animTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return animFrameMsg(t) })
}

func (m carouselModel) Init() tea.Cmd {
	return waitForChange(m.ctrl.Changes())
}

func (m carouselModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.width > 0 {
			_ = m.ctrl.Resize(float64(m.width * cellPx))
		}
		m.ctrl.SetBounds(m.ringBounds())
		m.canvas = m.paint()
	case changedMsg:
		return m, tea.Batch(waitForChange(m.ctrl.Changes()), m.sync())
	case closedMsg:
		return m, tea.Quit
	case animFrameMsg:
		return m, m.step(time.Time(msg))
	}
	return m, nil
}

func (m carouselModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		m.ctrl.Close()
		return m, tea.Quit
	case "right", "l":
		m.ctrl.Advance(1)
	case "left", "h":
		m.ctrl.Advance(-1)
	case "home", "g":
		m.ctrl.GoTo(0)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < m.snap.Total {
				m.ctrl.GoTo(i)
			}
		}
	}
	return m, nil
}

func (m *carouselModel) handleMouse(msg tea.MouseMsg) {
	p := cellPoint(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.Wheel(p, -wheelDelta)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.Wheel(p, wheelDelta)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press = &pressState{x: msg.X, y: msg.Y}
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.PointerMove(p)
		if m.press == nil || msg.Button != tea.MouseButtonLeft {
			return
		}
		if !m.press.dragging {
			if !m.ctrl.TouchStart(cellPoint(m.press.x, m.press.y)) {
				m.press = nil
				return
			}
			m.press.dragging = true
		}
		m.ctrl.TouchMove(p)
	case msg.Action == tea.MouseActionRelease:
		if m.press == nil {
			return
		}
		if m.press.dragging {
			m.ctrl.TouchEnd()
		} else if i, ok := m.canvas.hit(msg.X, msg.Y-headerRows); ok {
			m.ctrl.Click(i)
		}
		m.press = nil
	}
}

// sync reads the controller and starts a transition when the ring moved.
func (m *carouselModel) sync() tea.Cmd {
	snap := m.ctrl.Snapshot()
	if snap.Closed {
		return nil
	}
	moved := snap.Focus != m.snap.Focus || snap.Radius != m.snap.Radius
	m.snap = snap
	if !moved {
		m.canvas = m.paint()
		return nil
	}

	m.anim = layout.NewTransition(m.shown, snap.Frames, layout.DefaultTransitionDuration)
	m.animStart = m.now()
	if m.animating {
		return nil
	}
	m.animating = true
	return animTick()
}

// step advances the running transition to now.
func (m *carouselModel) step(now time.Time) tea.Cmd {
	if !m.animating {
		return nil
	}
	elapsed := now.Sub(m.animStart)
	if m.anim.Done(elapsed) {
		m.shown = m.anim.To
		m.animating = false
		m.canvas = m.paint()
		return nil
	}
	m.shown = m.anim.At(elapsed)
	m.canvas = m.paint()
	return animTick()
}

func (m carouselModel) ringHeight() int {
	return max(m.height-headerRows-footerRows, cardRows+1)
}

// ringBounds is the ring area in carousel pixels.
func (m carouselModel) ringBounds() carousel.Rect {
	return carousel.Rect{
		X: 0,
		Y: float64(headerRows * cellPx),
		W: float64(m.width * cellPx),
		H: float64(m.ringHeight() * cellPx),
	}
}

func cellPoint(x, y int) carousel.Point {
	return carousel.Point{X: float64(x * cellPx), Y: float64(y * cellPx)}
}

func (m carouselModel) paint() canvas {
	return paintRing(m.deck, m.shown, max(m.width, 1), m.ringHeight())
}

func (m carouselModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Skills"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("←/→ move · 1-9 jump · click, drag or scroll the ring · q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.canvas.render(m.deck, m.shown))
	b.WriteString("\n\n")

	card := m.deck.Cards[m.snap.Focus]
	b.WriteString(m.statusLine(card))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(truncate(card.Description, max(m.width-2, 10))))

	return b.String()
}

func (m carouselModel) statusLine(card content.Card) string {
	var state string
	switch m.snap.State {
	case carousel.Interacting:
		state = stateInteractingStyle.Render("● " + m.snap.State.String())
	case carousel.Cooldown:
		state = stateCooldownStyle.Render("● " + m.snap.State.String())
	default:
		state = stateIdleStyle.Render("● " + m.snap.State.String())
	}

	auto := "paused"
	if m.snap.TimerRunning() {
		auto = "on"
	}

	parts := []string{
		state,
		StyleDim.Render("autoplay " + auto),
		StyleDim.Render(fmt.Sprintf("%d/%d", m.snap.Focus+1, m.snap.Total)),
		StyleValue.Render(card.Icon.Glyph() + " " + card.Title),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
