package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
)

type showOutput struct {
	model.Template
	Placeholders []string `json:"placeholders"`
}

func newShowCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template's fields and referenced placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.store.Template(args[0])
			if err != nil {
				return err
			}
			placeholders := render.Placeholders(tpl.Markup)

			out := cmd.OutOrStdout()
			if app.jsonOutput {
				return printJSON(out, showOutput{Template: tpl, Placeholders: placeholders})
			}

			fmt.Fprintf(out, "ID:           %s\n", tpl.ID)
			fmt.Fprintf(out, "Name:         %s\n", tpl.Name)
			if tpl.Category != "" {
				fmt.Fprintf(out, "Category:     %s\n", tpl.Category)
			}
			if tpl.Description != "" {
				fmt.Fprintf(out, "Description:  %s\n", tpl.Description)
			}
			fmt.Fprintf(out, "Format:       %s\n", formatOf(tpl))
			fmt.Fprintf(out, "Placeholders: %s\n\n", strings.Join(placeholders, ", "))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tTYPE\tREQUIRED\tDEFAULT\tLABEL")
			for _, field := range tpl.Fields {
				writeFieldRow(w, field, "")
				for _, child := range field.Children {
					writeFieldRow(w, child, field.ID+"[].")
				}
			}
			return w.Flush()
		},
	}
}

func writeFieldRow(w *tabwriter.Writer, field model.Field, prefix string) {
	required := ""
	if field.Required {
		required = "yes"
	}
	fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n", prefix, field.ID, field.Kind, required, field.Default, field.DisplayLabel())
}

func formatOf(tpl model.Template) model.Format {
	if tpl.Format == "" {
		return model.FormatHTML
	}
	return tpl.Format
}
