package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/prompttune/internal/db"
	"github.com/alexanderramin/prompttune/internal/repository"
)

const previewWidth = 60

func newListCmd(app *App) *cobra.Command {
	var promptsDBPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List prompts and tags in the prompt library",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := promptsDBPath
			if path == "" {
				var err error
				if path, err = defaultLibraryPath(); err != nil {
					return fmt.Errorf("resolving prompt library path: %w", err)
				}
			}

			library, err := db.OpenPromptLibrary(path)
			if err != nil {
				return err
			}
			defer library.Close()

			prompts := repository.NewSQLitePromptRepo(library)
			ctx := cmd.Context()

			entries, err := prompts.List(ctx)
			if err != nil {
				return fmt.Errorf("listing prompts: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(app.Out, styleDim.Render("The prompt library is empty."))
				return nil
			}

			fmt.Fprintln(app.Out, styleHeader.Render("Prompts"))
			for _, e := range entries {
				tag := e.Tag
				if tag == "" {
					tag = "-"
				}
				fmt.Fprintf(app.Out, "  %s %s  %s\n",
					styleBold.Render(fmt.Sprintf("%4d", e.ID)),
					styleGreen.Render(fmt.Sprintf("%-12s", tag)),
					preview(e.Template))
			}

			tags, err := prompts.ListTags(ctx)
			if err != nil {
				return fmt.Errorf("listing tags: %w", err)
			}
			if len(tags) > 0 {
				fmt.Fprintln(app.Out)
				fmt.Fprintln(app.Out, styleHeader.Render("Tags"))
				for _, tc := range tags {
					fmt.Fprintf(app.Out, "  %s %s\n",
						styleGreen.Render(fmt.Sprintf("%-12s", tc.Tag)),
						styleDim.Render(fmt.Sprintf("%d prompt(s)", tc.Count)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&promptsDBPath, "prompts-db", "", "prompt library path (default $PROMPTTUNE_PROMPTS_DB or ~/.prompttune/prompts.db)")

	return cmd
}

// preview returns the first line of a template, truncated for table display.
func preview(tmpl string) string {
	line := tmpl
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if runes := []rune(line); len(runes) > previewWidth {
		line = string(runes[:previewWidth-1]) + "…"
	}
	return line
}
