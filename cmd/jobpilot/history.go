package main

import (
	"bytes"

	"github.com/jonathan/jobpilot/internal/types"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past generations and saved lead searches",
	}

	var kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List history records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			items := rt.app.History.List(cmd.Context())
			if kind != "" {
				filtered := items[:0]
				for _, item := range items {
					if item.Kind == types.HistoryKind(kind) {
						filtered = append(filtered, item)
					}
				}
				items = filtered
			}
			rt.printer.PrintHistory(items)
			return nil
		},
	}
	list.Flags().StringVar(&kind, "kind", "", "Only show generation or lead_search records")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.app.History.ExportItemText(cmd.Context(), args[0], cmd.OutOrStdout()); err != nil {
				return userError(err)
			}
			return nil
		},
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full history as text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			var buf bytes.Buffer
			if err := rt.app.History.ExportText(cmd.Context(), &buf); err != nil {
				return err
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "historico.txt", "Output file (\"-\" for stdout)")

	cmd.AddCommand(list, show, exportCmd)
	return cmd
}
