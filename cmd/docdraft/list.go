package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

type listEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Fields      int    `json:"fields"`
}

func newListCmd(app *cli) *cobra.Command {
	var (
		category string
		search   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var templates []model.Template
			switch {
			case search != "":
				templates = app.store.Search(search)
			case category != "":
				templates = app.store.ByCategory(category)
			default:
				templates = app.store.Templates()
			}
			if search != "" && category != "" {
				templates = filterCategory(templates, category)
			}

			entries := make([]listEntry, 0, len(templates))
			for _, tpl := range templates {
				entries = append(entries, listEntry{
					ID:          tpl.ID,
					Name:        tpl.Name,
					Category:    tpl.Category,
					Description: tpl.Description,
					Fields:      len(tpl.Fields),
				})
			}

			out := cmd.OutOrStdout()
			if app.jsonOutput {
				return printJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tFIELDS\tNAME")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.ID, e.Category, e.Fields, e.Name)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only templates in this category")
	cmd.Flags().StringVar(&search, "search", "", "fuzzy search names and descriptions")
	return cmd
}

func filterCategory(templates []model.Template, category string) []model.Template {
	out := templates[:0:0]
	for _, tpl := range templates {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}
