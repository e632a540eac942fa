package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"feedbackdesk/internal/bootstrap"
	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/domain/customfield"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/usecase/fieldconfig"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Configure the custom fields shown on the feedback form",
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured custom fields",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		fields := app.Fields.Live()
		out := cmd.OutOrStdout()
		if len(fields) == 0 {
			_, err := fmt.Fprintln(out, "no custom fields")
			return errs.Wrap(err, "write fields output")
		}
		for i, field := range fields {
			if _, err := fmt.Fprintln(out, describeField(i, field)); err != nil {
				return errs.Wrap(err, "write fields output")
			}
		}
		return nil
	}),
}

var fieldsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a custom field",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}
		return editFields(cmd, app, "add", func(session *fieldconfig.Session) error {
			if err := session.Add(); err != nil {
				return err
			}
			return applyPatch(session, len(session.Fields())-1, patch)
		})
	}),
}

var fieldsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change a custom field's label, type, required flag or value",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		index, _ := cmd.Flags().GetInt("index")
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}
		return editFields(cmd, app, "set", func(session *fieldconfig.Session) error {
			return applyPatch(session, index, patch)
		})
	}),
}

var fieldsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a custom field",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		index, _ := cmd.Flags().GetInt("index")
		return editFields(cmd, app, "remove", func(session *fieldconfig.Session) error {
			return session.Remove(index)
		})
	}),
}

var fieldsOptionCmd = &cobra.Command{
	Use:   "option",
	Short: "Edit the options of a select field",
}

var fieldsOptionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an option",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		index, _ := cmd.Flags().GetInt("index")
		return editFields(cmd, app, "option add", func(session *fieldconfig.Session) error {
			return session.AddOption(index)
		})
	}),
}

var fieldsOptionSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Rename an option",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		index, _ := cmd.Flags().GetInt("index")
		option, _ := cmd.Flags().GetInt("option")
		value, _ := cmd.Flags().GetString("value")
		return editFields(cmd, app, "option set", func(session *fieldconfig.Session) error {
			return session.UpdateOption(index, option, value)
		})
	}),
}

var fieldsOptionRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an option (the last option is kept)",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		index, _ := cmd.Flags().GetInt("index")
		option, _ := cmd.Flags().GetInt("option")
		return editFields(cmd, app, "option remove", func(session *fieldconfig.Session) error {
			return session.RemoveOption(index, option)
		})
	}),
}

var fieldsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load custom fields from a TOML file",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App) error {
		path, _ := cmd.Flags().GetString("file")
		appendMode, _ := cmd.Flags().GetBool("append")

		raw, err := os.ReadFile(path)
		if err != nil {
			return errs.Wrapf(err, "read fields file %q", path)
		}
		imported, err := fieldconfig.ParseTOML(raw)
		if err != nil {
			return errs.Wrapf(err, "parse fields file %q", path)
		}

		return editFields(cmd, app, "import", func(session *fieldconfig.Session) error {
			if appendMode {
				imported = append(session.Fields(), imported...)
			}
			return session.Replace(imported)
		})
	}),
}

// editFields runs edit against a fresh session and saves it, or cancels it
// when edit fails so the live set stays as it was.
func editFields(cmd *cobra.Command, app *bootstrap.App, action string, edit func(*fieldconfig.Session) error) error {
	ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

	session := app.Fields.Begin()
	if err := edit(session); err != nil {
		session.Cancel()
		logging.Warn(ctx, "custom field edit canceled", slog.String("action", action), slog.Any("err", errs.Loggable(err)))
		return errs.Wrapf(err, "fields %s", action)
	}
	if err := session.Save(ctx); err != nil {
		return errs.Wrapf(err, "save fields %s", action)
	}

	fields := app.Fields.Live()
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "fields %s: %d configured\n", action, len(fields)); err != nil {
		return errs.Wrap(err, "write fields output")
	}
	return nil
}

// patchFromFlags builds a patch from the flags the user actually passed.
func patchFromFlags(cmd *cobra.Command) (customfield.Patch, error) {
	var patch customfield.Patch
	flags := cmd.Flags()

	if flags.Changed("label") {
		label, _ := flags.GetString("label")
		patch.Label = &label
	}
	if flags.Changed("type") {
		raw, _ := flags.GetString("type")
		t, err := customfield.ParseType(raw)
		if err != nil {
			return customfield.Patch{}, err
		}
		patch.Type = &t
	}
	if flags.Changed("required") {
		required, _ := flags.GetBool("required")
		patch.Required = &required
	}
	if flags.Changed("value") {
		value, _ := flags.GetString("value")
		patch.Value = &value
	}
	return patch, nil
}

// applyPatch sets the value after any type change, since a type change
// clears the value.
func applyPatch(session *fieldconfig.Session, index int, patch customfield.Patch) error {
	value := patch.Value
	patch.Value = nil
	if err := session.Update(index, patch); err != nil {
		return err
	}
	if value == nil {
		return nil
	}
	return session.Update(index, customfield.Patch{Value: value})
}

func describeField(index int, field customfield.Definition) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%d. %s [%s]", index, field.DisplayLabel(), field.Type)
	if field.Required {
		builder.WriteString(" required")
	}
	if field.Type == customfield.TypeSelect {
		fmt.Fprintf(&builder, " options=%s", strings.Join(field.Options, "|"))
	}
	if !field.Value.IsEmpty() {
		fmt.Fprintf(&builder, " value=%q", field.Value.String())
	}
	return builder.String()
}

func addPatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("label", "", "Field label")
	cmd.Flags().String("type", "", "text|number|checkbox|select")
	cmd.Flags().Bool("required", false, "Whether the field must be filled")
	cmd.Flags().String("value", "", "Default value")
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.AddCommand(fieldsListCmd, fieldsAddCmd, fieldsSetCmd, fieldsRemoveCmd, fieldsOptionCmd, fieldsImportCmd)
	fieldsOptionCmd.AddCommand(fieldsOptionAddCmd, fieldsOptionSetCmd, fieldsOptionRemoveCmd)

	addPatchFlags(fieldsAddCmd)
	addPatchFlags(fieldsSetCmd)

	for _, c := range []*cobra.Command{fieldsSetCmd, fieldsRemoveCmd, fieldsOptionAddCmd, fieldsOptionSetCmd, fieldsOptionRemoveCmd} {
		c.Flags().Int("index", -1, "Field index as shown by fields list")
		_ = c.MarkFlagRequired("index")
	}
	for _, c := range []*cobra.Command{fieldsOptionSetCmd, fieldsOptionRemoveCmd} {
		c.Flags().Int("option", -1, "Option index")
		_ = c.MarkFlagRequired("option")
	}
	fieldsOptionSetCmd.Flags().String("value", "", "New option text")

	fieldsImportCmd.Flags().String("file", "fields.toml", "TOML file with [[field]] tables")
	fieldsImportCmd.Flags().Bool("append", false, "Append to the existing fields instead of replacing them")
}
