package cmd

import (
	"errors"
	"testing"

	"feedbackdesk/internal/domain/customfield"
)

func TestApplyFieldAssignments(t *testing.T) {
	fields := []customfield.Definition{
		{ID: "f1", Label: "Order ID", Type: customfield.TypeText, Value: customfield.Empty(customfield.TypeText)},
		{ID: "f2", Label: "Plan", Type: customfield.TypeSelect, Options: []string{"Free", "Pro"}, Value: customfield.Empty(customfield.TypeSelect)},
	}

	testCases := []struct {
		name        string
		assignments []string
		wantErr     error
		check       func(t *testing.T, got []customfield.Definition)
	}{
		{
			name:        "case insensitive label",
			assignments: []string{"order id=A-17", "PLAN=Pro"},
			check: func(t *testing.T, got []customfield.Definition) {
				if got[0].Value.Text() != "A-17" || got[1].Value.Text() != "Pro" {
					t.Fatalf("values = %q, %q", got[0].Value.String(), got[1].Value.String())
				}
			},
		},
		{
			name:        "value may contain equals",
			assignments: []string{"Order ID=a=b"},
			check: func(t *testing.T, got []customfield.Definition) {
				if got[0].Value.Text() != "a=b" {
					t.Fatalf("value = %q", got[0].Value.String())
				}
			},
		},
		{
			name:        "option outside list",
			assignments: []string{"Plan=Enterprise"},
			wantErr:     customfield.ErrInvalidValue,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := applyFieldAssignments(fields, testCase.assignments)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("applyFieldAssignments() error = %v, want %v", err, testCase.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyFieldAssignments() error = %v", err)
			}
			testCase.check(t, got)
		})
	}

	if !fields[0].Value.IsEmpty() {
		t.Fatalf("input fields were mutated")
	}
}

func TestApplyFieldAssignmentsRejectsMalformedInput(t *testing.T) {
	if _, err := applyFieldAssignments(nil, []string{"no-equals"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	if _, err := applyFieldAssignments(nil, []string{"ghost=1"}); err == nil {
		t.Fatalf("expected error for unknown label")
	}
}

func TestDescribeField(t *testing.T) {
	field := customfield.Definition{
		Label:    "",
		Type:     customfield.TypeSelect,
		Options:  []string{"A", "B"},
		Required: true,
		Value:    customfield.Choice("B"),
	}
	got := describeField(2, field)
	want := `2. Custom field [select] required options=A|B value="B"`
	if got != want {
		t.Fatalf("describeField() = %q, want %q", got, want)
	}
}
