package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the theme and your name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			name := rt.app.Settings.UserName(ctx)
			if name == "" {
				name = "(não definido)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tema: %s\nNome: %s\n", rt.app.Settings.Theme(ctx).Mode, name)
			return nil
		},
	}

	themeCmd := &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Set or toggle the theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			choice := "toggle"
			if len(args) == 1 {
				choice = args[0]
			}

			if choice == "toggle" {
				th, err := rt.app.Settings.ToggleTheme(ctx)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tema: %s\n", th.Mode)
				return nil
			}
			th, err := rt.app.Settings.SetTheme(ctx, choice)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tema: %s\n", th.Mode)
			return nil
		},
	}

	nameCmd := &cobra.Command{
		Use:   "name <your name>",
		Short: "Set the name used to sign outreach emails",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.app.Settings.SetUserName(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Nome salvo: %s\n", rt.app.Settings.UserName(cmd.Context()))
			return nil
		},
	}

	cmd.AddCommand(themeCmd, nameCmd)
	return cmd
}
