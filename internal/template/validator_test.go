package template

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateTemplateRequest {
	return CreateTemplateRequest{
		Name:            "Power Pilates",
		Category:        "pilates",
		DurationMinutes: 45,
		Capacity:        15,
		PriceCents:      1800,
		StartTimeOfDay:  "18:30",
		Recurrence:      "weekly",
	}
}

func TestValidate_ValidRequest(t *testing.T) {
	result := Validate(validRequest(), time.Now().Add(24*time.Hour), nil)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateTemplateRequest)
		wantErr string
	}{
		{"missing name", func(r *CreateTemplateRequest) { r.Name = "" }, "name is required"},
		{"bad time of day", func(r *CreateTemplateRequest) { r.StartTimeOfDay = "25:00" }, "start_time_of_day"},
		{"zero duration", func(r *CreateTemplateRequest) { r.DurationMinutes = 0 }, "duration_minutes"},
		{"negative capacity", func(r *CreateTemplateRequest) { r.Capacity = -1 }, "capacity"},
		{"unknown recurrence", func(r *CreateTemplateRequest) { r.Recurrence = "fortnightly" }, "recurrence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			result := Validate(req, time.Now().Add(24*time.Hour), nil)

			assert.False(t, result.IsValid)
			require.NotEmpty(t, result.Errors)
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error mentioning %q, got %v", tt.wantErr, result.Errors)
		})
	}
}

func TestValidate_InstructorConflictBlocks(t *testing.T) {
	req := validRequest()
	instructorID := 3
	req.InstructorID = &instructorID

	first := time.Date(2024, time.June, 1, 18, 30, 0, 0, time.UTC)
	existing := []Assignment{
		{InstanceID: "x", ClassName: "Spin Express", StartTime: first.Add(-15 * time.Minute), EndTime: first.Add(15 * time.Minute)},
	}

	result := Validate(req, first, existing)

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Spin Express")
}

func TestValidate_BackToBackAssignmentIsNotAConflict(t *testing.T) {
	req := validRequest()
	instructorID := 3
	req.InstructorID = &instructorID

	first := time.Date(2024, time.June, 1, 18, 30, 0, 0, time.UTC)
	end := first.Add(45 * time.Minute)
	existing := []Assignment{
		{InstanceID: "x", ClassName: "Stretch", StartTime: end, EndTime: end.Add(30 * time.Minute)},
	}

	result := Validate(req, first, existing)

	assert.True(t, result.IsValid)
}

func TestValidate_Warnings(t *testing.T) {
	req := validRequest()
	req.Capacity = 80
	req.DurationMinutes = 180

	result := Validate(req, time.Now().Add(24*time.Hour), nil)

	// Warnings never block.
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "capacity")
	assert.Contains(t, result.Warnings[1], "duration")
}
