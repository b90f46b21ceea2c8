package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
)

func newRenderCmd(app *cli) *cobra.Command {
	var (
		markupPath string
		dataPath   string
		escape     string
	)
	cmd := &cobra.Command{
		Use:   "render [template-id]",
		Short: "Print a template's markup with placeholders substituted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.resolveTemplate(args, markupPath)
			if err != nil {
				return err
			}
			data, err := readRecord(dataPath, stdinReader(cmd))
			if err != nil {
				return err
			}
			renderer, err := app.renderer(escape)
			if err != nil {
				return err
			}

			for _, issue := range render.Lint(tpl.Markup) {
				app.log.WithField("template", tpl.ID).Warnf("markup: %s", issue)
			}

			data = model.ApplyDefaults(tpl.Fields, data)
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderer.Render(tpl.Markup, data))
			return err
		},
	}
	cmd.Flags().StringVar(&markupPath, "markup", "", "render an ad-hoc template file instead of a catalog entry")
	cmd.Flags().StringVar(&dataPath, "data", "", "data file (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&escape, "escape", "", "value escaping: none, html or strip")
	return cmd
}

func (app *cli) resolveTemplate(args []string, markupPath string) (model.Template, error) {
	switch {
	case markupPath != "" && len(args) > 0:
		return model.Template{}, errors.New("pass either a template id or --markup, not both")
	case markupPath != "":
		return readMarkupFile(markupPath)
	case len(args) == 0:
		return model.Template{}, errors.New("template id or --markup is required")
	default:
		return app.store.Template(args[0])
	}
}

func (app *cli) renderer(escape string) (*render.Renderer, error) {
	mode := app.cfg.Escape
	if escape != "" {
		mode = escape
	}
	escaping, err := render.ParseEscaping(mode)
	if err != nil {
		return nil, err
	}
	return render.New(render.WithEscaping(escaping)), nil
}

func stdinReader(cmd *cobra.Command) func() ([]byte, error) {
	return func() ([]byte, error) {
		return io.ReadAll(cmd.InOrStdin())
	}
}
