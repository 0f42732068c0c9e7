package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the career advisor",
		Long: `Send a message to the career advisor and print its reply. Without a message the
conversation so far is printed. --reset starts a new conversation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.TrimSpace(strings.Join(args, " "))

			rt, err := setup(cmd, message != "")
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			if reset {
				if err := rt.app.Studio.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Conversa reiniciada.")
			}
			if message == "" {
				if !reset {
					rt.printer.PrintChat(rt.app.Studio.Messages(ctx))
				}
				return nil
			}

			if _, err := rt.app.Studio.Send(ctx, message); err != nil {
				return userError(err)
			}
			msgs := rt.app.Studio.Messages(ctx)
			rt.printer.PrintChat(msgs[len(msgs)-2:])
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Start a new conversation")
	return cmd
}

func newLayoutsCmd() *cobra.Command {
	var (
		cvID    string
		pick    int
		pdfOut  string
		textOut string
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Suggest CV layouts and restructure a CV with one of them",
		Long: `Generate layout suggestions. With --cv the chosen suggestion (--pick, 1-based)
is applied to that CV; the result can be exported with --pdf and --txt and
stored as a new CV with --save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			layouts, err := rt.app.Layouts.Suggest(ctx)
			if err != nil {
				return userError(err)
			}
			rt.printer.PrintLayouts(layouts)
			if cvID == "" {
				return nil
			}
			if pick < 1 || pick > len(layouts) {
				return fmt.Errorf("--pick must be between 1 and %d", len(layouts))
			}

			restructured, err := rt.app.Layouts.Apply(ctx, layouts[pick-1].ID, cvID)
			if err != nil {
				return userError(err)
			}
			rt.printer.PrintText(restructured.Layout.Name, restructured.Content)

			if pdfOut != "" {
				var buf bytes.Buffer
				name, err := rt.app.Layouts.ExportPDF(ctx, &buf)
				if err != nil {
					return userError(err)
				}
				if err := writeOutput(cmd, defaultName(pdfOut, name), buf.Bytes()); err != nil {
					return err
				}
			}
			if textOut != "" {
				var buf bytes.Buffer
				name, err := rt.app.Layouts.ExportText(&buf)
				if err != nil {
					return userError(err)
				}
				if err := writeOutput(cmd, defaultName(textOut, name), buf.Bytes()); err != nil {
					return err
				}
			}
			if save {
				saved, err := rt.app.CVs.SaveStyled(ctx, restructured.CVID, restructured.Layout.Name, restructured.Content)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Currículo salvo: %s (%s)\n", saved.CV.Name, saved.CV.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cvID, "cv", "", "ID of the CV to restructure")
	cmd.Flags().IntVar(&pick, "pick", 1, "Suggestion to apply, 1-based")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "Export the result as PDF (\".\" for the default name)")
	cmd.Flags().StringVar(&textOut, "txt", "", "Export the result as text (\".\" for the default name)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the result as a new CV")
	return cmd
}

func newPhotoCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "photo <image>",
		Short: "Retouch a profile photo into a professional headshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}

			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			img, err := rt.app.Photo.Enhance(cmd.Context(), filepath.Base(args[0]), data)
			if err != nil {
				return userError(err)
			}
			if out == "" {
				out = "foto_profissional" + imageExt(img.MIMEType)
			}
			return writeOutput(cmd, out, img.Data)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to foto_profissional with the image extension)")
	return cmd
}

// defaultName resolves "." to the export's own file name.
func defaultName(flag, name string) string {
	if flag == "." {
		return name
	}
	return flag
}

func imageExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
