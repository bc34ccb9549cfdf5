package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/renumber"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err in the formatter's mode and returns it as a CommandError
// with an exit code matching its kind.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	if fmtErr := f.Error(code, err.Error()); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "failed to format error message: %v\n", fmtErr)
	}
	return &CommandError{Code: exit, Err: err}
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrDealNotFound):
		return "DEAL_NOT_FOUND", ExitNotFound
	case errors.Is(err, models.ErrUnknownStage):
		return "UNKNOWN_STAGE", ExitValidation
	case errors.Is(err, dealservice.ErrEmptyName),
		errors.Is(err, dealservice.ErrNameTooLong),
		errors.Is(err, dealservice.ErrInvalidDealID),
		errors.Is(err, dealservice.ErrInvalidIndex),
		errors.Is(err, dealservice.ErrInvalidAmount),
		errors.Is(err, dealservice.ErrInvalidPage):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, renumber.ErrFetchFailed), errors.Is(err, renumber.ErrWriteFailed):
		return "RENUMBER_FAILED", ExitError
	default:
		return "ERROR", ExitError
	}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	switch v := data.(type) {
	case *models.Deal:
		fmt.Println(FormatDeal(v))
	case []*models.Deal:
		for _, d := range v {
			fmt.Println(FormatDeal(d))
		}
	case string:
		fmt.Println(v)
	default:
		fmt.Printf("%+v\n", data)
	}
	return nil
}
