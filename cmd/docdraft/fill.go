package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/fill"
)

func newFillCmd(app *cli) *cobra.Command {
	var (
		outPath  string
		seedPath string
	)
	cmd := &cobra.Command{
		Use:   "fill <template-id>",
		Short: "Prompt for a template's fields and write the data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.store.Template(args[0])
			if err != nil {
				return err
			}
			seed, err := readRecord(seedPath, stdinReader(cmd))
			if err != nil {
				return err
			}

			driver := app.driver
			if driver == nil {
				driver = fill.NewSurveyDriver()
			}
			record, err := fill.New(fill.WithPromptDriver(driver)).Collect(cmd.Context(), tpl.Fields, seed)
			if errors.Is(err, fill.ErrAborted) {
				app.log.Warn("fill aborted")
				return &exitError{code: 130, msg: "aborted"}
			}
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				return printJSON(cmd.OutOrStdout(), record)
			}
			data, err := record.MarshalJSON()
			if err != nil {
				return err
			}
			if err := writeFile(outPath, append(data, '\n')); err != nil {
				return err
			}
			app.log.WithField("path", outPath).Info("data written")
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write collected data to this file (stdout if empty)")
	cmd.Flags().StringVar(&seedPath, "data", "", "existing data file whose values become prompt defaults")
	return cmd
}
