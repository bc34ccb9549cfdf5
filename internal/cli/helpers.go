package cli

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// ResolveStage finds a configured stage by value or label, ignoring case
func ResolveStage(stages []models.Stage, name string) (models.Stage, error) {
	name = strings.TrimSpace(name)
	for _, s := range stages {
		if strings.EqualFold(s.Value, name) || strings.EqualFold(s.Label, name) {
			return s, nil
		}
	}
	return models.Stage{}, fmt.Errorf("%w: %q (available: %s)", models.ErrUnknownStage, name, FormatAvailableStages(stages))
}

// FormatAvailableStages lists stage values for error messages
func FormatAvailableStages(stages []models.Stage) string {
	return strings.Join(models.StageValues(stages), ", ")
}

// ParseSortOrder accepts asc or desc in any case; empty means ascending
func ParseSortOrder(s string) (models.SortOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(models.SortAsc):
		return models.SortAsc, nil
	case string(models.SortDesc):
		return models.SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order %q (must be: asc, desc)", s)
	}
}

// FormatDeal renders a deal as a single line
func FormatDeal(d *models.Deal) string {
	line := fmt.Sprintf("#%d %s [%s:%d]", d.ID, d.Name, d.Stage, d.Index)
	if d.Amount > 0 {
		line += " " + FormatAmount(d.Amount)
	}
	return line
}

// FormatAmount groups thousands: 1234567 -> 1,234,567
func FormatAmount(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
