// Package styles renders the pipeline board for terminal output.
package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/dealflow/internal/config/colors"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// ColumnWidth is the outer width of one rendered stage column
var ColumnWidth = 26

var (
	ColumnStyle lipgloss.Style
	HeaderStyle lipgloss.Style
	CardStyle   lipgloss.Style
	SubtleStyle lipgloss.Style

	// GapStyle marks a deal whose stored index does not match its position
	GapStyle lipgloss.Style
)

func init() {
	Apply(*colors.Default())
}

// Apply rebuilds the board styles from a color scheme
func Apply(scheme colors.ColorScheme) {
	scheme.ApplyDefaults()

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(scheme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(scheme.Title)).
		Background(lipgloss.Color(scheme.Accent)).
		Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Normal))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Subtle))

	GapStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(scheme.Warning))
}

// RenderColumn renders one stage header and its deals top to bottom
func RenderColumn(stage models.Stage, deals []*models.Deal) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s (%d)", stage.Label, len(deals))))

	if len(deals) == 0 {
		b.WriteString("\n" + SubtleStyle.Render("empty"))
	}
	for pos, d := range deals {
		b.WriteString("\n")
		b.WriteString(RenderCard(pos, d))
	}

	return ColumnStyle.Render(b.String())
}

// RenderCard renders a deal line; indices that disagree with the position are flagged
func RenderCard(pos int, d *models.Deal) string {
	line := CardStyle.Render(fmt.Sprintf("#%d %s", d.ID, d.Name))
	if d.Index != pos {
		line += " " + GapStyle.Render(fmt.Sprintf("(index %d)", d.Index))
	}
	return line
}

// RenderBoard lays the stage columns out side by side in configured order
func RenderBoard(stages []models.Stage, grouped map[string][]*models.Deal) string {
	columns := make([]string, 0, len(stages))
	for _, s := range stages {
		columns = append(columns, RenderColumn(s, grouped[s.Value]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
