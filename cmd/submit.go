package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"feedbackdesk/internal/bootstrap"
	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/domain/customfield"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/usecase/feedback"
	"feedbackdesk/internal/usecase/intake"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a piece of feedback",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		rating, _ := cmd.Flags().GetInt("rating")
		category, _ := cmd.Flags().GetString("category")
		message, _ := cmd.Flags().GetString("message")
		attachPaths, _ := cmd.Flags().GetStringSlice("attach")
		assignments, _ := cmd.Flags().GetStringArray("field")

		fields, err := applyFieldAssignments(app.Fields.Live(), assignments)
		if err != nil {
			return err
		}

		pending := intake.NewPending(app.Blobs)
		files := make([]intake.File, 0, len(attachPaths))
		for _, path := range attachPaths {
			file, err := intake.FileFromPath(path)
			if err != nil {
				logging.Warn(ctx, "attachment skipped", slog.String("path", path), slog.Any("err", errs.Loggable(err)))
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "File could not be read: %s\n", path)
				continue
			}
			files = append(files, file)
		}
		_, rejections := pending.AddFiles(ctx, files)
		for _, rejection := range rejections {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), rejection.Message())
		}

		record, err := app.Feedback.Submit(ctx, feedback.SubmitInput{
			Name:         name,
			Email:        email,
			Rating:       rating,
			Category:     category,
			Message:      message,
			Attachments:  pending.Snapshot(),
			CustomFields: fields,
		})
		if err != nil {
			pending.ReleaseAll()

			var validationErr *domainfeedback.ValidationError
			if errors.As(err, &validationErr) {
				for _, line := range validationErr.Messages() {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), line)
				}
			}
			return errs.Wrap(err, "submit feedback")
		}
		pending.Detach()

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Thank you for your feedback! id=%s\n", record.ID); err != nil {
			return errs.Wrap(err, "write submit output")
		}
		return nil
	}),
}

// applyFieldAssignments fills form values from label=value pairs.
func applyFieldAssignments(fields []customfield.Definition, assignments []string) ([]customfield.Definition, error) {
	for _, assignment := range assignments {
		label, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --field %q, expected label=value", assignment)
		}
		index := customfield.IndexByLabel(fields, label)
		if index < 0 {
			return nil, fmt.Errorf("unknown custom field %q", strings.TrimSpace(label))
		}

		next, err := customfield.Update(fields, index, customfield.Patch{Value: &value})
		if err != nil {
			return nil, errs.Wrapf(err, "set custom field %q", strings.TrimSpace(label))
		}
		fields = next
	}
	return fields, nil
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().String("name", "", "Your name (optional)")
	submitCmd.Flags().String("email", "", "Your email (optional)")
	submitCmd.Flags().Int("rating", 0, "Rating from 1 to 5")
	submitCmd.Flags().String("category", "", "bug|suggestion|compliment|question|other")
	submitCmd.Flags().String("message", "", "Feedback message")
	submitCmd.Flags().StringSlice("attach", nil, "Attachment file path (repeatable; jpeg, png, gif, pdf, doc, docx up to 5MB)")
	submitCmd.Flags().StringArray("field", nil, "Custom field value as label=value (repeatable)")
}
