package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/spf13/cobra"
)

func newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"applications"},
		Short:   "Track job applications",
	}
	cmd.AddCommand(
		newAppsListCmd(),
		newAppsDashboardCmd(),
		newAppsAddCmd(),
		newAppsStatusCmd(),
		newAppsRemindCmd(),
		newAppsDismissCmd(),
		newAppsDeleteCmd(),
		newAppsExportCmd(),
	)
	return cmd
}

func newAppsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.printer.PrintApplications(rt.app.Dashboard.Applications(cmd.Context()))
			return nil
		},
	}
}

func newAppsDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show applications per status and pending reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			today := rt.app.Dashboard.Today()
			rt.printer.PrintStatusChart(rt.app.Dashboard.StatusCounts(ctx))
			rt.printer.PrintReminders(rt.app.Dashboard.Reminders(ctx, today))
			fmt.Fprintf(cmd.OutOrStdout(), "Lembretes para hoje ou atrasados: %d\n", rt.app.Dashboard.NotificationCount(ctx, today))
			return nil
		},
	}
}

func newAppsAddCmd() *cobra.Command {
	var in screens.ApplicationInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.app.Dashboard.Add(cmd.Context(), in)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Candidatura registrada: %s (%s)\n", app.JobTitle, app.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.JobTitle, "title", "", "Job title")
	cmd.Flags().StringVar(&in.CompanyName, "company", "", "Company name")
	cmd.Flags().StringVar(&in.DateApplied, "date", "", "Date applied, YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&in.JobURL, "url", "", "Job posting URL")
	cmd.Flags().StringVar(&in.Status, "status", "", "Status (applied, viewed, interviewing, offer, rejected, ghosted)")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&in.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&in.ReminderDate, "remind", "", "Reminder date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")
	return cmd
}

func newAppsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of an application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.app.Dashboard.UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", app.JobTitle, app.Status)
			return nil
		},
	}
}

func newAppsRemindCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "remind <id> <YYYY-MM-DD>",
		Short: "Set a follow-up reminder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.app.Dashboard.SetReminder(cmd.Context(), args[0], args[1], note)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Lembrete para %s em %s.\n", app.JobTitle, app.ReminderDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "Reminder note")
	return cmd
}

func newAppsDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Clear the reminder of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.app.Dashboard.DismissReminder(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Lembrete de %s removido.\n", app.JobTitle)
			return nil
		},
	}
}

func newAppsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.app.Dashboard.Delete(cmd.Context(), args[0]); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Candidatura %s excluída.\n", args[0])
			return nil
		},
	}
}

func newAppsExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export applications as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			var buf bytes.Buffer
			if err := rt.app.Dashboard.ExportCSV(cmd.Context(), &buf); err != nil {
				return err
			}
			if out == "" {
				out = export.ApplicationsFileName
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (\"-\" for stdout)")
	return cmd
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Arquivo salvo: %s\n", path)
	return nil
}
