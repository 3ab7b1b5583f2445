package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/session"
	"github.com/goliatone/go-sampleform/pkg/workbook"
)

// errDocumentInvalid marks a run that completed but found validation errors.
// The report has already been printed, so main only sets the exit status.
var errDocumentInvalid = errors.New("document has validation errors")

type rootOptions struct {
	configPath   string
	schemaPath   string
	verbose      bool
	initialRows  int
	sheetName    string
	samplePrefix string

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "sampleform",
		Short:         "Validate and convert sample metadata workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: ./sampleform.yaml when present)")
	flags.StringVar(&opts.schemaPath, "schema", "", "Field catalog document (JSON or YAML)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.IntVar(&opts.initialRows, "initial-rows", 0, "Rows allocated in the sample grid")
	flags.StringVar(&opts.sheetName, "sheet", "", "Worksheet name to read and write")
	flags.StringVar(&opts.samplePrefix, "sample-prefix", "", "Prefix for generated sample ids")

	cmd.AddCommand(
		newValidateCmd(opts),
		newTemplateCmd(opts),
		newCSVCmd(opts),
		newReportCmd(opts),
		newFillCmd(opts),
	)
	return cmd
}

// resolve merges the config file under explicitly set flags and builds the
// logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("schema") && cfg.Schema != "" {
		o.schemaPath = cfg.Schema
	}
	if !flags.Changed("initial-rows") && cfg.InitialRows > 0 {
		o.initialRows = cfg.InitialRows
	}
	if !flags.Changed("sheet") && cfg.SheetName != "" {
		o.sheetName = cfg.SheetName
	}
	if !flags.Changed("sample-prefix") && cfg.SamplePrefix != "" {
		o.samplePrefix = cfg.SamplePrefix
	}
	if o.schemaPath == "" {
		return errors.New("a field catalog is required: pass --schema or set schema in the config file")
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(stderr(cmd), &slog.HandlerOptions{Level: level}))
	return nil
}

func (o *rootOptions) openSession() (*session.Session, error) {
	catalog, err := schema.Load(o.schemaPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("catalog loaded", "path", o.schemaPath, "fields", catalog.Len())

	var wopts []workbook.Option
	if o.sheetName != "" {
		wopts = append(wopts, workbook.WithSheetName(o.sheetName))
	}
	if o.samplePrefix != "" {
		wopts = append(wopts, workbook.WithSamplePrefix(o.samplePrefix))
	}
	return session.New(catalog,
		session.WithLogger(o.logger),
		session.WithInitialRows(o.initialRows),
		session.WithWorkbookOptions(wopts...),
	)
}

// importFile opens a session and loads path into it, printing importer
// warnings to stderr.
func (o *rootOptions) importFile(cmd *cobra.Command, path string) (*session.Session, error) {
	s, err := o.openSession()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	result, _, err := s.Import(path, data)
	for _, warning := range result.Warnings {
		fmt.Fprintf(stderr(cmd), "warning: %s\n", warning)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// writeOutput writes data to path, or to the command output when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(stderr(cmd), "written to %s\n", path)
	return nil
}

func stderr(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
