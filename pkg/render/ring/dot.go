package ring

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/content"
)

// Node size of a full-scale card, in inches.
const (
	cardWidth  = 1.6
	cardHeight = 0.9
	fontSize   = 14.0
)

// Options configures ring diagram rendering.
type Options struct {
	// Detailed adds scale, opacity and stack order to each label.
	Detailed bool
	// Title is drawn above the diagram when set.
	Title string
}

// ToDOT converts frames to Graphviz DOT. frames[i] describes deck.Cards[i];
// a nil deck labels cards by index.
func ToDOT(deck *content.Deck, frames []layout.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph ring {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [style=dashed, color=\"#999999\"];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	for _, f := range frames {
		var card content.Card
		if deck != nil && f.Index < deck.Len() {
			card = deck.Cards[f.Index]
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(f.Index), strings.Join(fmtAttrs(f, card, opts.Detailed), ", "))
	}

	if len(frames) > 2 {
		buf.WriteString("\n")
		for i := range frames {
			next := (i + 1) % len(frames)
			fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(frames[i].Index), nodeID(frames[next].Index))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "card" + strconv.Itoa(i) }

func fmtLabel(f layout.Frame, card content.Card, detailed bool) string {
	title := card.Title
	if title == "" {
		title = "#" + strconv.Itoa(f.Index)
	}
	label := card.Icon.Glyph() + " " + title
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nscale: %.2f\nopacity: %.2f\nz: %d", label, f.Scale, f.Opacity, f.StackOrder)
}

func fmtAttrs(f layout.Frame, card content.Card, detailed bool) []string {
	// Viewer sits at the bottom: positive depth is drawn downward.
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(f, card, detailed)),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", f.LateralOffset, -f.DepthOffset),
		fmt.Sprintf("width=%.2f", cardWidth*f.Scale),
		fmt.Sprintf("height=%.2f", cardHeight*f.Scale),
		"fixedsize=true",
		fmt.Sprintf("fontsize=%.1f", fontSize*f.Scale),
		fmt.Sprintf("fillcolor=%q", fillColor(card, f.Opacity)),
	}
	if f.Active {
		attrs = append(attrs, "penwidth=3")
	} else {
		attrs = append(attrs, "color=\"#00000066\"")
	}
	return attrs
}

// fillColor is the card's accent with alpha from opacity, or white.
func fillColor(card content.Card, opacity float64) string {
	r, g, b, ok := card.RGB()
	if !ok {
		r, g, b = 0xff, 0xff, 0xff
	}
	a := int(opacity*255 + 0.5)
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root tag so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
