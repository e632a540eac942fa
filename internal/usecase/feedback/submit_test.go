package feedback

import (
	"context"
	"errors"
	"testing"

	"feedbackdesk/internal/domain/customfield"
	domainfeedback "feedbackdesk/internal/domain/feedback"
)

func TestSubmitBuildsRecord(t *testing.T) {
	svc, _ := setupService(t)

	fields := []customfield.Definition{
		{ID: "f1", Label: "Browser", Type: customfield.TypeText, Required: true, Value: customfield.Text("Firefox")},
		{ID: "f2", Label: "Subscribe", Type: customfield.TypeCheckbox, Value: customfield.Checkbox(true)},
	}
	record, err := svc.Submit(context.Background(), SubmitInput{
		Name:         " Bob ",
		Rating:       4,
		Category:     "Suggestion",
		Message:      "Add dark mode",
		Attachments:  []domainfeedback.Attachment{{Name: "a.png", Type: "image/png", URL: "blob:feedbackdesk/1"}},
		CustomFields: fields,
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if record.ID != "fb-1" {
		t.Fatalf("ID = %q", record.ID)
	}
	if record.Timestamp != "2025-03-04T15:07:00.000Z" {
		t.Fatalf("Timestamp = %q", record.Timestamp)
	}
	if record.Name != "Bob" || record.Category != domainfeedback.CategorySuggestion {
		t.Fatalf("record = %+v", record)
	}
	if len(record.CustomFields) != 2 || record.CustomFields[1] != (customfield.Snapshot{Label: "Subscribe", Value: "true"}) {
		t.Fatalf("custom fields = %+v", record.CustomFields)
	}
	if len(record.Attachments) != 1 || record.Attachments[0].URL != "blob:feedbackdesk/1" {
		t.Fatalf("attachments = %+v", record.Attachments)
	}

	fields[0].Label = "Changed later"
	if svc.Feedbacks()[0].CustomFields[0].Label != "Browser" {
		t.Fatalf("custom field snapshot not decoupled from definitions")
	}
}

func TestSubmitInvalidLeavesStoreUntouched(t *testing.T) {
	svc, store := setupService(t)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Message: "   ",
		CustomFields: []customfield.Definition{
			{ID: "f1", Label: "Order ID", Type: customfield.TypeText, Required: true},
		},
	})

	var verr *domainfeedback.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit() error = %v, want ValidationError", err)
	}
	if len(verr.Messages()) != 4 {
		t.Fatalf("messages = %q", verr.Messages())
	}
	if len(svc.Feedbacks()) != 0 || store.saves != 0 {
		t.Fatalf("store touched: feedbacks=%d saves=%d", len(svc.Feedbacks()), store.saves)
	}
}
