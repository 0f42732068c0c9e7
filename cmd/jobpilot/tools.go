package main

import (
	"fmt"
	"os"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/spf13/cobra"
)

func newToolCmd(tool screens.Tool, use, short string) *cobra.Command {
	var (
		cvID    string
		jobPath string
		jobURL  string
		jobText string
		out     string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

The job description comes from --job (a text file), --job-url (fetched and
cleaned) or --job-text. The result is saved to the generation history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sources := 0
			for _, s := range []string{jobPath, jobURL, jobText} {
				if s != "" {
					sources++
				}
			}
			if sources > 1 {
				return fmt.Errorf("--job, --job-url and --job-text are mutually exclusive; provide only one")
			}

			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			description := jobText
			switch {
			case jobPath != "":
				data, err := os.ReadFile(jobPath)
				if err != nil {
					return fmt.Errorf("failed to read job file: %w", err)
				}
				description = string(data)
			case jobURL != "":
				description, err = rt.app.Tools.JobDescriptionFromURL(ctx, jobURL)
				if err != nil {
					return userError(err)
				}
			}

			rec, err := rt.app.Tools.Run(ctx, tool, cvID, description)
			if err != nil {
				return userError(err)
			}

			if out == "" {
				rt.printer.PrintText(string(rec.Type), rec.Output)
				return nil
			}
			return writeOutput(cmd, defaultName(out, export.GenerationFileName(rec.Type)), []byte(rec.Output))
		},
	}

	cmd.Flags().StringVar(&cvID, "cv", "", "ID of the stored CV")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to a job description text file")
	cmd.Flags().StringVar(&jobURL, "job-url", "", "URL of the job posting")
	cmd.Flags().StringVar(&jobText, "job-text", "", "Job description text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the result to a file (\".\" for the default name)")
	cmd.Flags().Bool("browser", false, "Use a headless browser to fetch --job-url (requires Chrome)")
	return cmd
}
