package deal

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/dealflow/internal/models"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

// dealFormValues backs the interactive create form
type dealFormValues struct {
	Name        string
	Stage       string
	Amount      string
	Category    string
	Description string
}

func stageOptions(stages []models.Stage) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(stages))
	for _, s := range stages {
		options = append(options, huh.NewOption(s.Label, s.Value))
	}
	return options
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return dealservice.ErrInvalidAmount
	}
	return nil
}

// newDealForm builds the form used by deal create --interactive.
// Values already set on v are used as defaults.
func newDealForm(v *dealFormValues, stages []models.Stage) *huh.Form {
	keymap := huh.NewDefaultKeyMap()
	keymap.Text.NewLine = key.NewBinding(
		key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
		key.WithHelp("shift+enter / alt+enter / ctrl+j", "new line"),
	)

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Deal Name").
			Placeholder("Enter deal name...").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return dealservice.ErrEmptyName
				}
				return nil
			}).
			Value(&v.Name),

		huh.NewSelect[string]().
			Key("stage").
			Title("Stage").
			Options(stageOptions(stages)...).
			Value(&v.Stage),

		huh.NewInput().
			Key("amount").
			Title("Amount").
			Placeholder("0").
			Validate(validateAmount).
			Value(&v.Amount),

		huh.NewInput().
			Key("category").
			Title("Category (optional)").
			Value(&v.Category),

		huh.NewText().
			Key("description").
			Title("Description (markdown, optional)").
			CharLimit(5000).
			Lines(5).
			Value(&v.Description),
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithKeyMap(keymap)
}

// request converts submitted form values into a create request
func (v *dealFormValues) request() (dealservice.CreateDealRequest, error) {
	if err := validateAmount(v.Amount); err != nil {
		return dealservice.CreateDealRequest{}, err
	}
	var amount int64
	if s := strings.TrimSpace(v.Amount); s != "" {
		amount, _ = strconv.ParseInt(s, 10, 64)
	}
	return dealservice.CreateDealRequest{
		Name:        v.Name,
		Description: v.Description,
		Category:    v.Category,
		Amount:      amount,
		Stage:       v.Stage,
	}, nil
}
