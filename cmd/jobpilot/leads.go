package main

import (
	"bytes"
	"fmt"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/spf13/cobra"
)

func newLeadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Find companies and contacts hiring for a role",
	}
	cmd.AddCommand(newLeadsSearchCmd(), newLeadsDraftCmd())
	return cmd
}

func newLeadsSearchCmd() *cobra.Command {
	var (
		title    string
		location string
		jobType  string
		source   string
		skills   string
		save     bool
		csvOut   string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for leads",
		Long: `Search for companies (or social groups, with --source social) hiring for a role.
Results can be saved to the history with --save and exported with --csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jt, err := generation.ParseJobType(jobType)
			if err != nil {
				return err
			}
			src, err := generation.ParseLeadSource(source)
			if err != nil {
				return err
			}

			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			leads, err := rt.app.Leads.Search(ctx, generation.LeadQuery{
				JobTitle: title,
				Location: location,
				JobType:  jt,
				Source:   src,
				Skills:   skills,
			})
			if err != nil {
				return userError(err)
			}
			rt.printer.PrintLeads(leads, rt.app.Leads.Policy())

			if save {
				added, err := rt.app.Leads.SaveToHistory(ctx)
				if err != nil {
					return userError(err)
				}
				if added {
					fmt.Fprintln(cmd.OutOrStdout(), "Busca salva no histórico.")
				}
			}
			if csvOut != "" {
				var buf bytes.Buffer
				name, err := rt.app.Leads.ExportCSV(&buf)
				if err != nil {
					return userError(err)
				}
				return writeOutput(cmd, defaultName(csvOut, name), buf.Bytes())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Job title")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Location")
	cmd.Flags().StringVar(&jobType, "type", "", "Job type: any, onsite, remote or hybrid")
	cmd.Flags().StringVar(&source, "source", "", "Lead source: companies or social")
	cmd.Flags().StringVar(&skills, "skills", "", "Key skills")
	cmd.Flags().BoolVar(&save, "save", false, "Save the results to the history")
	cmd.Flags().StringVar(&csvOut, "csv", "", "Export the results as CSV (\".\" for the default name)")
	return cmd
}

func newLeadsDraftCmd() *cobra.Command {
	var (
		lead       types.Lead
		templateID string
		jobTitle   string
	)

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Build a mailto link for a lead from an email template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			link, err := rt.app.Leads.EmailDraft(cmd.Context(), lead, templateID, jobTitle)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}

	cmd.Flags().StringVar(&lead.CompanyName, "company", "", "Company name")
	cmd.Flags().StringVar(&lead.ContactInfo, "contact", "", "Contact email")
	cmd.Flags().StringVar(&templateID, "template", "", "Template ID (defaults to the first template)")
	cmd.Flags().StringVar(&jobTitle, "title", "", "Job title")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage outreach email templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.printer.PrintTemplates(rt.app.Leads.Templates(cmd.Context()))
			return nil
		},
	}

	var name, body string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a template; {empresa}, {cargo} and {seu_nome} are replaced when drafting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			tmpl, err := rt.app.Leads.CreateTemplate(cmd.Context(), name, body)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Modelo salvo: %s (%s)\n", tmpl.Name, tmpl.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Template name")
	add.Flags().StringVar(&body, "body", "", "Template body")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			tmpl, err := rt.app.Leads.UpdateTemplate(cmd.Context(), args[0], name, body)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Modelo atualizado: %s\n", tmpl.Name)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "Template name")
	update.Flags().StringVar(&body, "body", "", "Template body")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.app.Leads.DeleteTemplate(cmd.Context(), args[0]); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Modelo %s excluído.\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
