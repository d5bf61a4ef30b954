package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10xdevs/task-manager-api/internal/domain"
)

func violationFields(vErr *ValidationError) []string {
	fields := make([]string, 0, len(vErr.Violations))
	for _, v := range vErr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestValidateCreateTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      CreateTaskInput
		wantFields []string
	}{
		{
			name:  "valid minimal payload",
			input: CreateTaskInput{Title: "Buy milk"},
		},
		{
			name: "valid full payload",
			input: CreateTaskInput{
				Title:       "Buy milk",
				Description: "Semi-skimmed",
				Status:      "in_progress",
			},
		},
		{
			name:       "empty title",
			input:      CreateTaskInput{Title: ""},
			wantFields: []string{"title"},
		},
		{
			name:       "whitespace-only title",
			input:      CreateTaskInput{Title: " \t\n "},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			input:      CreateTaskInput{Title: strings.Repeat("a", domain.MaxTaskTitleLength+1)},
			wantFields: []string{"title"},
		},
		{
			name: "description too long",
			input: CreateTaskInput{
				Title:       "ok",
				Description: strings.Repeat("d", domain.MaxTaskDescriptionLength+1),
			},
			wantFields: []string{"description"},
		},
		{
			name:       "unknown status",
			input:      CreateTaskInput{Title: "ok", Status: "someday"},
			wantFields: []string{"status"},
		},
		{
			name: "multiple violations reported together",
			input: CreateTaskInput{
				Title:  "",
				Status: "someday",
			},
			wantFields: []string{"title", "status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := tt.input
			vErr := ValidateCreateTask(&input)

			if len(tt.wantFields) == 0 {
				assert.Nil(t, vErr)
				return
			}
			require.NotNil(t, vErr)
			assert.ElementsMatch(t, tt.wantFields, violationFields(vErr))
			assert.ErrorIs(t, vErr, domain.ErrValidation)
		})
	}

	t.Run("trims the title in place", func(t *testing.T) {
		t.Parallel()
		input := CreateTaskInput{Title: "  padded  "}
		require.Nil(t, ValidateCreateTask(&input))
		assert.Equal(t, "padded", input.Title)
	})

	t.Run("title at the limit is accepted", func(t *testing.T) {
		t.Parallel()
		input := CreateTaskInput{Title: strings.Repeat("a", domain.MaxTaskTitleLength)}
		assert.Nil(t, ValidateCreateTask(&input))
	})
}

func TestValidateUpdateTask(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name       string
		input      UpdateTaskInput
		wantFields []string
	}{
		{
			name:  "title only",
			input: UpdateTaskInput{Title: strPtr("new title")},
		},
		{
			name:  "status only",
			input: UpdateTaskInput{Status: strPtr("done")},
		},
		{
			name:  "clearing the description is allowed",
			input: UpdateTaskInput{Description: strPtr("")},
		},
		{
			name:       "no fields",
			input:      UpdateTaskInput{},
			wantFields: []string{"payload"},
		},
		{
			name:       "blank title",
			input:      UpdateTaskInput{Title: strPtr("   ")},
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			input:      UpdateTaskInput{Title: strPtr(strings.Repeat("a", domain.MaxTaskTitleLength+1))},
			wantFields: []string{"title"},
		},
		{
			name:       "unknown status",
			input:      UpdateTaskInput{Status: strPtr("blocked")},
			wantFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := tt.input
			vErr := ValidateUpdateTask(&input)

			if len(tt.wantFields) == 0 {
				assert.Nil(t, vErr)
				return
			}
			require.NotNil(t, vErr)
			assert.ElementsMatch(t, tt.wantFields, violationFields(vErr))
		})
	}
}

func TestValidateListTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   ListTasksInput
		wantErr bool
	}{
		{name: "empty options", input: ListTasksInput{}},
		{name: "status filter", input: ListTasksInput{Status: "pending"}},
		{name: "pagination", input: ListTasksInput{Limit: 10, Offset: 20}},
		{name: "unknown status", input: ListTasksInput{Status: "someday"}, wantErr: true},
		{name: "negative limit", input: ListTasksInput{Limit: -1}, wantErr: true},
		{name: "negative offset", input: ListTasksInput{Offset: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := tt.input
			vErr := ValidateListTasks(&input)
			if tt.wantErr {
				assert.NotNil(t, vErr)
			} else {
				assert.Nil(t, vErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	vErr := &ValidationError{Violations: []FieldViolation{
		{Field: "title", Message: "is required"},
		{Field: "status", Message: "must be one of: pending, in_progress, done"},
	}}

	msg := vErr.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "title: is required")
	assert.Contains(t, msg, "status: must be one of")
}
