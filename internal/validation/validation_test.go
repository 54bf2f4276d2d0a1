package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
)

type stubPriorityGetter struct {
	priority *models.Priority
	err      error
}

func (s *stubPriorityGetter) GetByID(ctx context.Context, priorityID int) (*models.Priority, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.priority, nil
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name            string
		title           string
		expectedError   bool
		expectedMessage string
	}{
		{name: "valid", title: "Groceries"},
		{name: "minimum length", title: "abc"},
		{name: "maximum length", title: strings.Repeat("a", 150)},
		{name: "trimmed before checking", title: "  abc  "},
		{name: "empty", title: "", expectedError: true, expectedMessage: "Title is required"},
		{name: "whitespace only", title: "   ", expectedError: true, expectedMessage: "Title is required"},
		{name: "too short", title: "ab", expectedError: true, expectedMessage: "Title must be between 3 and 150 characters"},
		{name: "too long", title: strings.Repeat("a", 151), expectedError: true, expectedMessage: "Title must be between 3 and 150 characters"},
		{name: "multibyte runes count as single characters", title: strings.Repeat("あ", 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				assert.Equal(t, tt.expectedMessage, apperrors.MessageOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription("   "))
	assert.NoError(t, ValidateDescription(strings.Repeat("a", 500)))

	err := ValidateDescription(strings.Repeat("a", 501))
	assert.Error(t, err)
	assert.Equal(t, "Description must be less than 500 characters", apperrors.MessageOf(err))
}

func TestValidatePriorityID(t *testing.T) {
	existing := &stubPriorityGetter{priority: &models.Priority{ID: 2, Name: "Medium", Level: 2}}
	missing := &stubPriorityGetter{err: apperrors.NotFound("Priority not found")}

	tests := []struct {
		name            string
		value           any
		getter          *stubPriorityGetter
		expectedID      *int
		expectedError   bool
		expectedMessage string
	}{
		{name: "absent value passes through", value: nil, getter: existing, expectedID: nil},
		{name: "numeric value", value: float64(2), getter: existing, expectedID: intPtr(2)},
		{name: "string value", value: "2", getter: existing, expectedID: intPtr(2)},
		{name: "non-numeric value", value: "abc", getter: existing, expectedError: true, expectedMessage: "Priority ID must be a valid number"},
		{name: "fractional value", value: float64(2.5), getter: existing, expectedError: true, expectedMessage: "Priority ID must be a valid number"},
		{name: "unknown priority", value: float64(99), getter: missing, expectedError: true, expectedMessage: "Invalid priority ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ValidatePriorityID(context.Background(), tt.getter, tt.value)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedMessage, apperrors.MessageOf(err))
				return
			}

			assert.NoError(t, err)
			if tt.expectedID == nil {
				assert.Nil(t, id)
			} else {
				require.NotNil(t, id)
				assert.Equal(t, *tt.expectedID, *id)
			}
		})
	}
}

func TestValidateDueDate(t *testing.T) {
	tests := []struct {
		name          string
		value         string
		expectedError bool
	}{
		{name: "date only", value: "2026-09-15"},
		{name: "date and time", value: "2026-09-15 10:30:00"},
		{name: "RFC3339", value: "2026-09-15T10:30:00Z"},
		{name: "garbage", value: "next tuesday", expectedError: true},
		{name: "wrong order", value: "15-09-2026", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ValidateDueDate(tt.value)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, parsed)
				assert.Equal(t, "Due date must be a valid date (YYYY-MM-DD)", apperrors.MessageOf(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, parsed)
				assert.Equal(t, 2026, parsed.Year())
				assert.Equal(t, time.September, parsed.Month())
			}
		})
	}
}

func TestValidateIsCompleted(t *testing.T) {
	valid := []any{true, false, "true", "false", float64(1), float64(0), "1", "0"}
	for _, v := range valid {
		assert.NoError(t, ValidateIsCompleted(v), "value %v should be accepted", v)
	}

	invalid := []any{"yes", "no", float64(2), "", nil, []any{}}
	for _, v := range invalid {
		err := ValidateIsCompleted(v)
		assert.Error(t, err, "value %v should be rejected", v)
		assert.Equal(t, "is_completed must be a boolean value", apperrors.MessageOf(err))
	}
}

func TestParseIsCompleted(t *testing.T) {
	truthy := []any{true, "true", float64(1), "1"}
	for _, v := range truthy {
		assert.True(t, ParseIsCompleted(v), "value %v should parse as true", v)
	}

	falsy := []any{false, "false", float64(0), "0"}
	for _, v := range falsy {
		assert.False(t, ParseIsCompleted(v), "value %v should parse as false", v)
	}
}

func TestParseIntValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected int
		ok       bool
	}{
		{name: "int", value: 7, expected: 7, ok: true},
		{name: "float64 whole", value: float64(7), expected: 7, ok: true},
		{name: "float64 fractional", value: float64(7.5), ok: false},
		{name: "string", value: "7", expected: 7, ok: true},
		{name: "string with spaces", value: " 7 ", expected: 7, ok: true},
		{name: "non-numeric string", value: "abc", ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "bool", value: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ParseIntValue(tt.value)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, n)
			}
		})
	}
}

func intPtr(n int) *int {
	return &n
}
