package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nekodev/skillring/pkg/cache"
	"github.com/nekodev/skillring/pkg/carousel"
	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/content"
	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/render/ring"
)

// Output formats for the frames command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatDOT   = "dot"
	formatSVG   = "svg"
)

// framesOpts holds the command-line flags for the frames command.
type framesOpts struct {
	focus    int
	width    float64
	format   string
	output   string
	content  string
	detailed bool
	noCache  bool
}

// framesCommand creates the frames command, which prints the ring layout for
// one focus position.
func (c *CLI) framesCommand() *cobra.Command {
	opts := framesOpts{width: carousel.DefaultViewportWidth, format: formatTable}

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Print card frames for a focus position",
		Long: `Print the layout of every card when the given card is focused.

Formats:
  table  aligned table of offsets, rotation, scale and opacity (default)
  json   frame document joined with card titles
  dot    Graphviz DOT of the ring seen from above
  svg    rendered ring, cached under the cache directory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFrames(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.focus, "focus", 0, "focused card index")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&opts.content, "content", "", "deck file (JSON or TOML)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show scale, opacity and stack order in diagrams")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render SVG without the cache")

	return cmd
}

func (c *CLI) runFrames(ctx context.Context, opts framesOpts) error {
	switch opts.format {
	case formatTable, formatJSON, formatDOT, formatSVG:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want table, json, dot or svg)", opts.format)
	}

	deck, err := c.loadDeck(ctx, opts.content, nil)
	if err != nil {
		return err
	}
	if err := errors.ValidateIndex(opts.focus, deck.Len()); err != nil {
		return err
	}
	if err := errors.ValidateWidth(opts.width); err != nil {
		return err
	}

	frames := layout.Default().Frames(opts.focus, deck.Len(), opts.width)

	var data []byte
	switch opts.format {
	case formatTable:
		data = []byte(framesTable(deck, frames) + "\n")
	case formatJSON:
		if data, err = ring.RenderJSON(deck, frames, opts.width); err != nil {
			return err
		}
		data = append(data, '\n')
	case formatDOT:
		data = []byte(ring.ToDOT(deck, frames, ring.Options{Detailed: opts.detailed}))
	case formatSVG:
		if data, err = c.renderSVG(ctx, deck, frames, opts); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote %s frames for focus %d", opts.format, opts.focus)
	printFile(opts.output)
	return nil
}

// renderSVG lays out the ring with Graphviz, reusing a cached rendering of
// the same deck, focus and width when one exists.
func (c *CLI) renderSVG(ctx context.Context, deck *content.Deck, frames []layout.Frame, opts framesOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	store, err := newCache(opts.noCache)
	if err != nil {
		logger.Warn("cache unavailable", "err", err)
		store = cache.NewNullCache()
	}
	defer store.Close()
	store = cache.Instrument(store, formatSVG)

	key := cacheKeyer().FramesKey(deck.Hash(), cache.FramesKeyOpts{
		Focus:    opts.focus,
		Width:    opts.width,
		Format:   formatSVG,
		Detailed: opts.detailed,
	})
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		logger.Debug("svg cache hit", "key", key)
		if opts.output != "" {
			printStats(deck.Len(), frames[0].Radius, true)
		}
		return data, nil
	}

	spin := newSpinner(ctx, "Rendering ring...")
	spin.Start()
	data, err := ring.RenderSVG(ctx, ring.ToDOT(deck, frames, ring.Options{Detailed: opts.detailed}))
	spin.Stop()
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, key, data, c.config().CacheTTL); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
	if opts.output != "" {
		printStats(deck.Len(), frames[0].Radius, false)
	}
	return data, nil
}

// framesTable renders frames as a bordered table with the active card
// highlighted.
func framesTable(deck *content.Deck, frames []layout.Frame) string {
	rows := make([][]string, len(frames))
	active := -1
	for i, f := range frames {
		card := deck.Cards[f.Index]
		if f.Active {
			active = i
		}
		rows[i] = []string{
			strconv.Itoa(f.Index),
			strings.TrimSpace(card.Icon.Glyph() + " " + card.Title),
			fmt.Sprintf("%.1f", f.LateralOffset),
			fmt.Sprintf("%.1f", f.DepthOffset),
			fmt.Sprintf("%.1f°", f.Rotation),
			fmt.Sprintf("%.2f", f.Scale),
			fmt.Sprintf("%.2f", f.Opacity),
			strconv.Itoa(f.StackOrder),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Card", "X", "Z", "Rot", "Scale", "Opacity", "Stack").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case row == active:
				return cellStyle.Inherit(StyleHighlight).Bold(true)
			case col == 1:
				return cellStyle.Foreground(colorWhite)
			}
			return cellStyle.Foreground(colorGray)
		})

	return t.Render()
}
