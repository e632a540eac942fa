package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"feedbackdesk/internal/bootstrap"
	"feedbackdesk/internal/bootstrap/logging"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/usecase/feedback"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin session and feedback management",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the admin dashboard",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		password, _ := cmd.Flags().GetString("password")
		if err := app.Feedback.Login(ctx, password); err != nil {
			if errors.Is(err, feedback.ErrInvalidPassword) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Invalid password")
			}
			return errs.Wrap(err, "admin login")
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "logged in"); err != nil {
			return errs.Wrap(err, "write login output")
		}
		return nil
	}),
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the admin dashboard",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		app.Feedback.Logout(ctx)

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), "logged out"); err != nil {
			return errs.Wrap(err, "write logout output")
		}
		return nil
	}),
}

var adminStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session state and submission count",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		state := app.Feedback.Snapshot()
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "authenticated=%t feedbacks=%d\n", state.IsAuthenticated, len(state.Feedbacks)); err != nil {
			return errs.Wrap(err, "write status output")
		}
		return nil
	}),
}

var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List feedback submissions, newest first",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		if err := app.Feedback.RequireAuthenticated(); err != nil {
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		rawCategory, _ := cmd.Flags().GetString("category")
		category, err := domainfeedback.ParseCategory(rawCategory)
		if err != nil {
			return err
		}

		filter := domainfeedback.Filter{Search: search, Category: category}
		total := len(app.Feedback.Feedbacks())
		records := app.Feedback.List(filter)

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			message := "No feedback submissions yet"
			if total > 0 {
				message = "No results found"
			}
			_, err := fmt.Fprintln(out, message)
			return errs.Wrap(err, "write list output")
		}

		for _, r := range records {
			if _, err := fmt.Fprintf(out, "%s  %s  %s  [%s]  %s\n",
				r.ID,
				domainfeedback.Stars(r.Rating),
				r.DisplayName(),
				r.Category.Label(),
				domainfeedback.FormatTimestamp(r.Time()),
			); err != nil {
				return errs.Wrap(err, "write list output")
			}
			if _, err := fmt.Fprintf(out, "    %s\n", r.Message); err != nil {
				return errs.Wrap(err, "write list output")
			}
			for _, field := range r.CustomFields {
				if _, err := fmt.Fprintf(out, "    %s: %s\n", field.Label, field.Value); err != nil {
					return errs.Wrap(err, "write list output")
				}
			}
			for _, attachment := range r.Attachments {
				if _, err := fmt.Fprintf(out, "    attachment: %s (%s)\n", attachment.Name, attachment.Type); err != nil {
					return errs.Wrap(err, "write list output")
				}
			}
		}
		_, err = fmt.Fprintf(out, "showing %d of %d\n", len(records), total)
		return errs.Wrap(err, "write list output")
	}),
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a feedback submission by id",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		if err := app.Feedback.RequireAuthenticated(); err != nil {
			return err
		}

		id, _ := cmd.Flags().GetString("id")
		result := "not found"
		if app.Feedback.DeleteFeedback(ctx, id) {
			result = "deleted"
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result, id); err != nil {
			return errs.Wrap(err, "write delete output")
		}
		return nil
	}),
}

var adminExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every submission as CSV",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		if err := app.Feedback.RequireAuthenticated(); err != nil {
			return err
		}

		toStdout, _ := cmd.Flags().GetBool("stdout")
		if toStdout {
			if _, err := app.Feedback.ExportCSV(cmd.OutOrStdout()); err != nil {
				return errs.Wrap(err, "export csv")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout())
			return errs.Wrap(err, "write export output")
		}

		dir, _ := cmd.Flags().GetString("out-dir")
		if dir == "" {
			dir = app.Config.Export.Dir
		}
		path, err := app.Feedback.ExportToDir(ctx, dir)
		if err != nil {
			logging.Error(ctx, "export feedback failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export csv")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", path); err != nil {
			return errs.Wrap(err, "write export output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminLoginCmd, adminLogoutCmd, adminStatusCmd, adminListCmd, adminDeleteCmd, adminExportCmd)

	adminLoginCmd.Flags().String("password", "", "Admin password")
	_ = adminLoginCmd.MarkFlagRequired("password")

	adminListCmd.Flags().String("search", "", "Case-insensitive search over message, name and email")
	adminListCmd.Flags().String("category", "", "Category filter (empty for all)")

	adminDeleteCmd.Flags().String("id", "", "Feedback id")
	_ = adminDeleteCmd.MarkFlagRequired("id")

	adminExportCmd.Flags().String("out-dir", "", "Directory for feedback_export_<date>.csv (defaults to export.dir)")
	adminExportCmd.Flags().Bool("stdout", false, "Write CSV to stdout instead of a file")
}
