package maze

import (
	"strings"

	"github.com/gookit/color"
)

// String provides a textual representation of the carved maze.
// E marks the entry, X the exit and ? a cell left without a room.
func (r *Result) String() string {
	return r.render(false)
}

// Colored is String with the entry, exit and empty cells highlighted for terminals.
func (r *Result) Colored() string {
	return r.render(true)
}

func (r *Result) render(colored bool) string {
	open := make(map[Passage]struct{}, len(r.Passages))
	for _, p := range r.Passages {
		open[p] = struct{}{}
		open[Passage{From: p.To, To: p.From}] = struct{}{}
	}
	connected := func(a, b Cell) bool {
		_, ok := open[Passage{From: a, To: b}]
		return ok
	}

	empty := make(map[Cell]struct{}, len(r.Skipped)+len(r.Failed))
	for _, c := range r.Skipped {
		empty[c] = struct{}{}
	}
	for _, c := range r.Failed {
		empty[c] = struct{}{}
	}

	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", r.Width) + "\n")

	for y := 0; y < r.Height; y++ {
		// Cell rows
		output.WriteString("|")
		for x := 0; x < r.Width; x++ {
			c := Cell{X: x, Y: y}
			output.WriteString(r.cellLabel(c, empty, colored))

			if x+1 < r.Width && connected(c, Cell{X: x + 1, Y: y}) {
				output.WriteString(" ")
			} else {
				output.WriteString("|")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for x := 0; x < r.Width; x++ {
			c := Cell{X: x, Y: y}
			if y+1 < r.Height && connected(c, Cell{X: x, Y: y + 1}) {
				output.WriteString("   +")
			} else {
				output.WriteString("---+")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}

func (r *Result) cellLabel(c Cell, empty map[Cell]struct{}, colored bool) string {
	label, paint := "   ", color.Normal
	switch _, isEmpty := empty[c]; {
	case c == r.Entry:
		label, paint = " E ", color.Green
	case c == r.Exit:
		label, paint = " X ", color.Red
	case isEmpty:
		label, paint = " ? ", color.Yellow
	}

	if !colored || paint == color.Normal {
		return label
	}
	return paint.Sprint(label)
}
