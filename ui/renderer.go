package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wormwars/game"
	"wormwars/game/types"
)

const (
	emptyGlyph = "·"
	foodGlyph  = "*"
	headGlyph  = "@"
	bodyGlyph  = "o"
	deadGlyph  = "x"
)

type Renderer struct {
	boardStyle lipgloss.Style
	panelStyle lipgloss.Style
	foodStyle  lipgloss.Style
	dimStyle   lipgloss.Style
}

func NewRenderer() *Renderer {
	return &Renderer{
		boardStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		panelStyle: lipgloss.NewStyle().PaddingLeft(2),
		foodStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
		dimStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5f5f5f")),
	}
}

// Frame draws the board next to a score panel.
func (r *Renderer) Frame(g *game.Game) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		r.boardStyle.Render(r.board(g)),
		r.panelStyle.Render(r.panel(g)),
	)
}

func (r *Renderer) board(g *game.Game) string {
	cells := make([][]string, g.Grid.Height)
	for y := range cells {
		cells[y] = make([]string, g.Grid.Width)
		for x := range cells[y] {
			cells[y][x] = r.dimStyle.Render(emptyGlyph)
		}
	}
	put := func(c types.Cell, s string) {
		if g.Grid.Contains(c) {
			cells[c.Y][c.X] = s
		}
	}

	if food, ok := g.Food(); ok {
		put(food, r.foodStyle.Render(foodGlyph))
	}
	for _, w := range g.Worms() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(w.Color.Hex()))
		body := w.Body()
		if w.Failed() {
			style = r.dimStyle
		}
		for i := len(body) - 1; i >= 1; i-- {
			put(body[i], style.Render(bodyGlyph))
		}
		head := headGlyph
		if w.Failed() {
			head = deadGlyph
		}
		put(body[0], style.Bold(true).Render(head))
	}

	var sb strings.Builder
	for y, row := range cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, ""))
	}
	return sb.String()
}

func (r *Renderer) panel(g *game.Game) string {
	st := g.State()
	lines := []string{
		fmt.Sprintf("Tick       %d", g.Tick),
		fmt.Sprintf("High Score %d", st.GetHighScore()),
		"",
	}
	for _, w := range g.Worms() {
		line := fmt.Sprintf("%-16s %3d  len %-3d", w.ID(), st.Score(w.ID()), w.Len())
		if w.Failed() {
			line = r.dimStyle.Render(line + " " + w.FailureReason())
		} else {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(w.Color.Hex())).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
