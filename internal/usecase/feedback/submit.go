package feedback

import (
	"context"
	"log/slog"
	"strings"

	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/domain/customfield"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/errs"
)

type SubmitInput struct {
	Name         string
	Email        string
	Rating       int
	Category     string
	Message      string
	Attachments  []domainfeedback.Attachment
	CustomFields []customfield.Definition
}

// Submit validates input and, when every rule passes, stores a new record
// with a fresh id and the current time. Validation failures are returned as
// *domainfeedback.ValidationError and leave the store untouched.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (domainfeedback.Record, error) {
	logCtx := logging.WithComponent(ctx, "usecase.feedback")

	category := strings.ToLower(strings.TrimSpace(input.Category))
	if err := domainfeedback.Validate(domainfeedback.Draft{
		Rating:       input.Rating,
		Message:      input.Message,
		Category:     category,
		CustomFields: input.CustomFields,
	}); err != nil {
		logging.Info(logCtx, "feedback rejected by validation", slog.Any("err", errs.Loggable(err)))
		return domainfeedback.Record{}, err
	}

	record := domainfeedback.Record{
		ID:           s.newID(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Rating:       input.Rating,
		Message:      input.Message,
		Category:     domainfeedback.Category(category),
		Timestamp:    s.now().UTC().Format(domainfeedback.TimestampLayout),
		Attachments:  cloneAttachments(input.Attachments),
		CustomFields: customfield.SnapshotAll(input.CustomFields),
	}

	s.AddFeedback(ctx, record)
	logging.Info(logCtx, "feedback submitted",
		slog.String("feedback_id", record.ID),
		slog.String("category", string(record.Category)),
		slog.Int("attachments", len(record.Attachments)),
	)
	return record, nil
}

func cloneAttachments(in []domainfeedback.Attachment) []domainfeedback.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]domainfeedback.Attachment, len(in))
	copy(out, in)
	return out
}
