package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sampleform/pkg/report"
	"github.com/goliatone/go-sampleform/pkg/schema"
	"github.com/goliatone/go-sampleform/pkg/session"
	"github.com/goliatone/go-sampleform/pkg/tui"
	"github.com/goliatone/go-sampleform/pkg/visibility"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "validate <workbook.xlsx>",
		Short: "Import a workbook and report validation errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.importFile(cmd, args[0])
			if err != nil {
				return err
			}
			rep := s.Report()
			if html {
				err = report.WriteHTML(cmd.OutOrStdout(), rep)
			} else {
				err = report.WriteText(cmd.OutOrStdout(), rep)
			}
			if err != nil {
				return err
			}
			if !rep.Valid {
				return errDocumentInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "Render the report as an HTML fragment")
	return cmd
}

func newTemplateCmd(root *rootOptions) *cobra.Command {
	var output string
	var project []string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty submission workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.openSession()
			if err != nil {
				return err
			}
			if err := applyProjectFlags(s, project); err != nil {
				return err
			}
			s.EnsureProjectUUID()
			data, err := s.Template()
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "template.xlsx", "Output workbook path")
	cmd.Flags().StringArrayVar(&project, "project", nil, "Project value as field=value (repeatable)")
	return cmd
}

func newCSVCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "csv <workbook.xlsx>",
		Short: "Convert the samples of a workbook to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.importFile(cmd, args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := s.ExportCSV(&buf); err != nil {
				return err
			}
			return writeOutput(cmd, output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (stdout when empty)")
	return cmd
}

func newReportCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report <workbook.xlsx>",
		Short: "Write an HTML validation report for a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.importFile(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := report.RenderHTML(s.Report())
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, []byte(out+"\n"))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (stdout when empty)")
	return cmd
}

func newFillCmd(root *rootOptions) *cobra.Command {
	var output string
	var input string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Enter project metadata and samples interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var s *session.Session
			var err error
			if input != "" {
				s, err = root.importFile(cmd, input)
			} else {
				s, err = root.openSession()
			}
			if err != nil {
				return err
			}
			if err := fillSession(cmd, s, tui.NewSurveyDriver()); err != nil {
				return err
			}
			if err := report.WriteText(cmd.ErrOrStderr(), s.Report()); err != nil {
				return err
			}
			data, err := s.Export()
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "samples.xlsx", "Output workbook path")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Workbook to start from")
	return cmd
}

// fillSession prompts for the project block and then for samples until the
// user declines to add another one.
func fillSession(cmd *cobra.Command, s *session.Session, driver tui.PromptDriver) error {
	ctx := cmd.Context()
	filler, err := tui.NewFiller(s.Catalog(), s.Validator(),
		tui.WithPromptDriver(driver),
		tui.WithVisibility(visibility.EvaluatorFunc(s.Visible)),
		tui.WithOptions(s),
	)
	if err != nil {
		return err
	}

	project, err := filler.Fill(ctx, schema.ScopeProject, s.Project())
	if err != nil {
		return err
	}
	for id, value := range project {
		if err := s.SetProjectValue(id, value); err != nil {
			return err
		}
	}
	s.EnsureProjectUUID()

	for {
		more, err := filler.More(ctx, fmt.Sprintf("Add sample %d?", len(s.Samples())+1))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		record, err := filler.Fill(ctx, schema.ScopeSample, nil)
		if err != nil {
			return err
		}
		if !record.IsEmpty() {
			s.Store().BulkImport([]schema.Record{record})
		}
	}
}

func applyProjectFlags(s *session.Session, pairs []string) error {
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --project %q: expected field=value", pair)
		}
		if err := s.SetProjectValue(strings.TrimSpace(id), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}
