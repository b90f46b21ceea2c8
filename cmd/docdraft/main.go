package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finaccosolutions/Document-Draft/pkg/catalog"
	"github.com/finaccosolutions/Document-Draft/pkg/fill"
)

// cli carries state shared by every subcommand for one invocation.
type cli struct {
	configPath string
	logLevel   string
	catalogDir string
	jsonOutput bool

	cfg    Config
	log    *logrus.Logger
	store  *catalog.Store
	driver fill.PromptDriver
}

// exitError carries a process exit code for failures that are not crashes,
// such as a record with missing fields.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func newRootCmd(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "docdraft",
		Short:         "Fill document templates from structured data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/docdraft/config.toml)")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&app.catalogDir, "catalog", "", "directory of extra template files")
	root.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "output as JSON")

	root.AddCommand(newListCmd(app))
	root.AddCommand(newShowCmd(app))
	root.AddCommand(newRenderCmd(app))
	root.AddCommand(newValidateCmd(app))
	root.AddCommand(newFillCmd(app))
	root.AddCommand(newExportCmd(app))
	return root
}

func (app *cli) setup(cmd *cobra.Command) error {
	cfg, location, err := loadConfig(app.configPath)
	if err != nil {
		return err
	}
	if app.logLevel != "" {
		cfg.LogLevel = app.logLevel
	}
	if app.catalogDir != "" {
		cfg.CatalogDir = app.catalogDir
	}
	app.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app.log = logger
	if location != "" {
		app.log.WithField("path", location).Debug("loaded config")
	}

	store, err := loadCatalog(cfg.CatalogDir)
	if err != nil {
		return err
	}
	app.store = store
	app.log.WithFields(logrus.Fields{
		"templates":   store.Len(),
		"catalog_dir": cfg.CatalogDir,
	}).Debug("catalog ready")
	return nil
}

func main() {
	app := &cli{}
	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(2)
	}
}
