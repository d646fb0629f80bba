package cli

import (
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/content"
)

// Full-scale card box, in cells.
const (
	cardCols = 22
	cardRows = 7
)

// noCard marks canvas cells no card covers.
const noCard = -1

// canvas is the painted ring: one string per cell (empty for the second
// half of a wide rune) and the card that owns it.
type canvas struct {
	w, h  int
	cells [][]string
	owner [][]int
}

func newCanvas(w, h int) canvas {
	cv := canvas{w: w, h: h, cells: make([][]string, h), owner: make([][]int, h)}
	for y := range h {
		cv.cells[y] = make([]string, w)
		cv.owner[y] = make([]int, w)
		for x := range w {
			cv.cells[y][x] = " "
			cv.owner[y][x] = noCard
		}
	}
	return cv
}

// hit returns the topmost card at (x, y).
func (cv canvas) hit(x, y int) (int, bool) {
	if y < 0 || y >= cv.h || x < 0 || x >= cv.w {
		return 0, false
	}
	i := cv.owner[y][x]
	return i, i != noCard
}

// put writes s starting at (x, y) for card, clipping at the edges.
func (cv canvas) put(x, y int, s string, card int) {
	if y < 0 || y >= cv.h {
		return
	}
	for _, r := range s {
		g := string(r)
		gw := lipgloss.Width(g)
		if gw == 0 {
			continue
		}
		if x >= 0 && x+gw <= cv.w {
			cv.cells[y][x] = g
			cv.owner[y][x] = card
			for k := 1; k < gw; k++ {
				cv.cells[y][x+k] = ""
				cv.owner[y][x+k] = card
			}
		}
		x += gw
	}
}

// paintRing draws frames back to front into a w×h canvas. Lateral offsets
// map to columns at cellPx pixels per cell; cards further back sit higher
// and are painted first.
func paintRing(deck *content.Deck, frames []layout.Frame, w, h int) canvas {
	cv := newCanvas(w, h)

	order := slices.Clone(frames)
	slices.SortStableFunc(order, func(a, b layout.Frame) int {
		if a.StackOrder != b.StackOrder {
			return a.StackOrder - b.StackOrder
		}
		switch {
		case a.DepthOffset < b.DepthOffset:
			return -1
		case a.DepthOffset > b.DepthOffset:
			return 1
		}
		return 0
	})

	cx, cy := w/2, h/2
	for _, f := range order {
		bw := max(int(math.Round(cardCols*f.Scale)), 6)
		bh := max(int(math.Round(cardRows*f.Scale)), 3)

		lift := 0
		if f.Radius > 0 {
			lift = int(math.Round((1 - f.DepthOffset/f.Radius) * 1.5))
		}
		left := cx + int(math.Round(f.LateralOffset/cellPx)) - bw/2
		top := cy - bh/2 - lift

		paintCard(cv, left, top, bw, bh, deck.Cards[f.Index], f)
	}
	return cv
}

func paintCard(cv canvas, left, top, bw, bh int, card content.Card, f layout.Frame) {
	border := lipgloss.RoundedBorder()
	if f.Active {
		border = lipgloss.ThickBorder()
	}
	inner := bw - 2

	cv.put(left, top, border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight, f.Index)
	for y := top + 1; y < top+bh-1; y++ {
		cv.put(left, y, border.Left+strings.Repeat(" ", inner)+border.Right, f.Index)
	}
	cv.put(left, top+bh-1, border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight, f.Index)

	lines := []string{card.Icon.Glyph(), card.Title}
	if f.Active {
		lines = append(lines, "")
		lines = append(lines, wrap(card.Description, inner)...)
	}
	for i, line := range lines {
		if i >= bh-2 {
			break
		}
		line = truncate(line, inner)
		pad := (inner - lipgloss.Width(line)) / 2
		cv.put(left+1+pad, top+1+i, line, f.Index)
	}
}

// wrap splits s into lines of at most n cells on word boundaries.
func wrap(s string, n int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && lipgloss.Width(cur.String())+1+lipgloss.Width(word) > n {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// render styles each run of cells by its owning card: the card's color,
// bold when active, faint when mostly transparent.
func (cv canvas) render(deck *content.Deck, frames []layout.Frame) string {
	styles := make([]lipgloss.Style, len(frames))
	for _, f := range frames {
		st := lipgloss.NewStyle().Foreground(colorGray)
		if c := deck.Cards[f.Index].Color; c != "" {
			st = st.Foreground(lipgloss.Color(c))
		}
		if f.Active {
			st = st.Bold(true)
		} else if f.Opacity < 0.6 {
			st = st.Faint(true)
		}
		styles[f.Index] = st
	}

	var b strings.Builder
	for y := range cv.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		run, owner := strings.Builder{}, noCard
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if owner == noCard {
				b.WriteString(run.String())
			} else {
				b.WriteString(styles[owner].Render(run.String()))
			}
			run.Reset()
		}
		for x := range cv.w {
			if o := cv.owner[y][x]; o != owner {
				flush()
				owner = o
			}
			run.WriteString(cv.cells[y][x])
		}
		flush()
	}
	return b.String()
}
