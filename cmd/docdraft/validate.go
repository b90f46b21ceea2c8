package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/validation"
)

func newValidateCmd(app *cli) *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "validate <template-id>",
		Short: "Report required fields missing from a data file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.store.Template(args[0])
			if err != nil {
				return err
			}
			data, err := readRecord(dataPath, stdinReader(cmd))
			if err != nil {
				return err
			}
			result := validation.Required(tpl.Fields, model.ApplyDefaults(tpl.Fields, data))

			out := cmd.OutOrStdout()
			if app.jsonOutput {
				if err := printJSON(out, result); err != nil {
					return err
				}
			} else if result.Valid {
				fmt.Fprintf(out, "%s: all required fields present\n", tpl.ID)
			} else {
				for _, issue := range result.Missing {
					fmt.Fprintf(out, "%s: %s\n", issue.Path, issue.Message)
				}
			}

			if !result.Valid {
				return &exitError{code: 1, msg: fmt.Sprintf("%s: %d required field(s) missing", tpl.ID, len(result.Missing))}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "data file (JSON or YAML, - for stdin)")
	return cmd
}
