// Package validation holds the field-level input contracts shared by the
// list and task mutation endpoints.
package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
)

// Field limits shared by lists and tasks
const (
	TitleMinLength       = 3
	TitleMaxLength       = 150
	DescriptionMaxLength = 500
)

// dueDateLayouts are the accepted due date formats, most specific first
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// PriorityGetter is the read access needed to check that a priority exists
type PriorityGetter interface {
	GetByID(ctx context.Context, priorityID int) (*models.Priority, error)
}

// ValidateTitle checks that a title is present and within bounds after
// trimming. An all-whitespace title counts as missing.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return apperrors.Validation("Title is required")
	}

	length := len([]rune(trimmed))
	if length < TitleMinLength || length > TitleMaxLength {
		return apperrors.Validation(fmt.Sprintf("Title must be between %d and %d characters", TitleMinLength, TitleMaxLength))
	}

	return nil
}

// ValidateDescription checks an optional description. Empty after trim is
// treated as absent.
func ValidateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return nil
	}

	if len([]rune(trimmed)) > DescriptionMaxLength {
		return apperrors.Validation(fmt.Sprintf("Description must be less than %d characters", DescriptionMaxLength))
	}

	return nil
}

// ValidatePriorityID coerces an optional priority reference to an int and
// checks it against the priorities table. Returns nil when the value is
// absent.
func ValidatePriorityID(ctx context.Context, priorities PriorityGetter, value any) (*int, error) {
	if value == nil {
		return nil, nil
	}

	priorityID, ok := ParseIntValue(value)
	if !ok {
		return nil, apperrors.Validation("Priority ID must be a valid number")
	}

	if _, err := priorities.GetByID(ctx, priorityID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Validation("Invalid priority ID")
		}
		return nil, err
	}

	return &priorityID, nil
}

// ValidateDueDate parses an optional due date string
func ValidateDueDate(value string) (*time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.Validation("Due date must be a valid date (YYYY-MM-DD)")
}

// ValidateIsCompleted checks that a completion flag belongs to the accepted
// set {true, false, "true", "false", 1, 0, "1", "0"}
func ValidateIsCompleted(value any) error {
	switch v := value.(type) {
	case bool:
		return nil
	case float64:
		if v == 0 || v == 1 {
			return nil
		}
	case string:
		if v == "true" || v == "false" || v == "0" || v == "1" {
			return nil
		}
	case json.Number:
		if v.String() == "0" || v.String() == "1" {
			return nil
		}
	}
	return apperrors.Validation("is_completed must be a boolean value")
}

// ParseIsCompleted maps a validated completion flag to a bool. Truthy forms
// are true, "true", 1 and "1"; everything else in the accepted set is false.
func ParseIsCompleted(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case string:
		return v == "true" || v == "1"
	case json.Number:
		return v.String() == "1"
	}
	return false
}

// ParseIntValue coerces a JSON-decoded scalar into an int. Clients send IDs
// both as numbers and as strings.
func ParseIntValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
