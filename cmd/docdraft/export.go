package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/export"
	"github.com/finaccosolutions/Document-Draft/pkg/generator"
)

func newExportCmd(app *cli) *cobra.Command {
	var (
		markupPath string
		dataPath   string
		format     string
		output     string
		title      string
		escape     string
		shellDir   string
		strict     bool
	)
	cmd := &cobra.Command{
		Use:   "export [template-id]",
		Short: "Render a template and write it as a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readRecord(dataPath, stdinReader(cmd))
			if err != nil {
				return err
			}
			renderer, err := app.renderer(escape)
			if err != nil {
				return err
			}

			req := generator.Request{
				Data:            data,
				Format:          format,
				RequireComplete: strict,
				Title:           title,
			}
			if markupPath != "" || len(args) == 0 {
				tpl, err := app.resolveTemplate(args, markupPath)
				if err != nil {
					return err
				}
				req.Template = &tpl
			} else {
				req.TemplateID = args[0]
			}

			options := []generator.Option{
				generator.WithCatalog(app.store),
				generator.WithRenderer(renderer),
				generator.WithDefaultFormat(app.cfg.DefaultFormat),
			}
			if dir := firstNonEmpty(shellDir, app.cfg.ShellDir); dir != "" {
				registry, err := export.NewDefaultRegistry(export.WithShellDir(dir))
				if err != nil {
					return err
				}
				options = append(options, generator.WithRegistry(registry))
			}
			gen := generator.New(options...)
			doc, err := gen.Generate(cmd.Context(), req)
			var incomplete *generator.IncompleteError
			if errors.As(err, &incomplete) {
				for _, issue := range incomplete.Missing {
					app.log.WithField("field", issue.Path).Error(issue.Message)
				}
				return &exitError{code: 1, msg: err.Error()}
			}
			if err != nil {
				return err
			}
			for _, issue := range doc.Missing {
				app.log.WithField("field", issue.Path).Warn(issue.Message)
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(doc.Body)
				return err
			}
			path := app.outputPath(output, doc.Filename)
			if err := writeFile(path, doc.Body); err != nil {
				return err
			}
			app.log.WithFields(logrus.Fields{
				"path":         path,
				"content_type": doc.ContentType,
				"missing":      len(doc.Missing),
			}).Info("document written")
			return nil
		},
	}
	cmd.Flags().StringVar(&markupPath, "markup", "", "export an ad-hoc template file instead of a catalog entry")
	cmd.Flags().StringVar(&dataPath, "data", "", "data file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&format, "format", "", "exporter: html or markup (default from config)")
	cmd.Flags().StringVar(&output, "output", "", "file or directory to write (default output_dir); - for stdout")
	cmd.Flags().StringVar(&title, "title", "", "document title (defaults to the template name)")
	cmd.Flags().StringVar(&escape, "escape", "", "value escaping: none, html or strip")
	cmd.Flags().StringVar(&shellDir, "shell-dir", "", "directory of go-template document shells (default shell_dir)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when required fields are missing")
	return cmd
}

// outputPath resolves --output: empty writes into output_dir, an existing
// directory receives the generated filename, anything else is a file path.
func (app *cli) outputPath(output, filename string) string {
	if output == "" {
		return filepath.Join(app.cfg.OutputDir, filename)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filename)
	}
	return output
}
