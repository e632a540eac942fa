package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"feedbackdesk/internal/bootstrap"
	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/usecase/adminconsole"
)

var consoleAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Start the admin dashboard console",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		if err := app.Feedback.RequireAuthenticated(); err != nil {
			return err
		}

		// The alt screen owns the terminal, so console logs go to a file.
		logPath, _ := cmd.Flags().GetString("log-file")
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return errs.Wrapf(err, "create console log directory for %q", logPath)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errs.Wrapf(err, "open console log %q", logPath)
		}
		defer logFile.Close()

		ctx := withConfiguredLogger(cmd.Context(), logFile, app)
		ctx = logging.WithAttrs(ctx, slog.String("command", cmd.CommandPath()))

		exportDir, _ := cmd.Flags().GetString("out-dir")
		if exportDir == "" {
			exportDir = app.Config.Export.Dir
		}

		model := adminconsole.NewAdminModel(ctx, app.Feedback, adminconsole.Options{ExportDir: exportDir})
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run admin console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleAdminCmd)
	consoleAdminCmd.Flags().String("out-dir", "", "Export directory (defaults to export.dir)")
	consoleAdminCmd.Flags().String("log-file", ".feedbackdesk/console.log", "Log file used while the console is open")
}
