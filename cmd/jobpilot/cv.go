package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/spf13/cobra"
)

func newCVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cv",
		Short: "Manage stored CVs",
	}
	cmd.AddCommand(newCVListCmd(), newCVAddCmd(), newCVDeleteCmd(), newCVImportCmd(), newCVAnalyzeCmd())
	return cmd
}

func newCVListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored CVs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.printer.PrintCVs(rt.app.CVs.List(cmd.Context()))
			return nil
		},
	}
}

func newCVAddCmd() *cobra.Command {
	var (
		name    string
		file    string
		content string
		years   int
		links   []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a CV and analyze it",
		Long: `Save a CV from --content or from a PDF, DOCX or text --file. The saved CV is
analyzed right away and layout suggestions are generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			in := screens.CVInput{Name: name, Content: content, PortfolioLinks: links}
			if cmd.Flags().Changed("years") {
				in.YearsOfExperience = &years
			}
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read CV file: %w", err)
				}
				imported, err := rt.app.CVs.Import(file, data)
				if err != nil {
					return userError(err)
				}
				in.Content = imported.Content
				if in.Name == "" {
					in.Name = imported.Name
				}
			}

			saved, err := rt.app.CVs.Add(cmd.Context(), in)
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Currículo salvo: %s (%s)\n", saved.CV.Name, saved.CV.ID)
			if saved.AnalysisErr != "" {
				fmt.Fprintf(out, "Análise indisponível: %s\n", saved.AnalysisErr)
			} else {
				rt.printer.PrintText("ANÁLISE", saved.Analysis)
			}
			if saved.LayoutsErr == "" {
				rt.printer.PrintLayouts(saved.Layouts)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "CV name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the CV from a PDF, DOCX or text file")
	cmd.Flags().StringVar(&content, "content", "", "CV text")
	cmd.Flags().IntVar(&years, "years", 0, "Years of experience")
	cmd.Flags().StringSliceVar(&links, "link", nil, "Portfolio link (repeatable)")
	return cmd
}

func newCVDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a CV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.app.CVs.Delete(cmd.Context(), args[0]); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Currículo %s excluído.\n", args[0])
			return nil
		},
	}
}

func newCVImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Print the text extracted from a PDF, DOCX or text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read CV file: %w", err)
			}
			imported, err := rt.app.CVs.Import(args[0], data)
			if err != nil {
				return userError(err)
			}
			rt.printer.PrintText(imported.Name, imported.Content)
			return nil
		},
	}
}

func newCVAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id>",
		Short: "Analyze a stored CV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			analysis, err := rt.app.CVs.Analyze(cmd.Context(), args[0])
			if err != nil {
				return userError(err)
			}
			rt.printer.PrintText("ANÁLISE", analysis)
			return nil
		},
	}
}
