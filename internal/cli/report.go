package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/report"
)

// openOutput returns stdout for "" or "-", otherwise creates path. The
// returned func closes the file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func (e *env) reportCmd() *cobra.Command {
	var format, output string
	var save bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a performance report",
		Long: `Write the performance report as CSV (the default), a plain-text
personal report, or JSON. --save writes it under its conventional file name
in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := e.mgr.Snapshot()
			if save {
				output = report.FileName(format, st.UserCode)
			}
			w, closeFn, err := openOutput(cmd, output)
			if err != nil {
				return err
			}

			now := e.clock.Now()
			switch format {
			case "csv":
				err = report.WriteCSV(w, report.Build(st, now))
			case "text":
				_, err = io.WriteString(w, report.Text(st, now))
			case "json":
				err = report.WriteJSON(w, report.Build(st, now))
			default:
				err = fmt.Errorf("unknown format %q (want csv, text or json)", format)
			}
			if closeErr := closeFn(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}
			if save {
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv, text, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&save, "save", false, "write to the conventional report file name")
	return cmd
}

func (e *env) exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of all dashboard data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, closeFn, err := openOutput(cmd, output)
			if err != nil {
				return err
			}
			backup := report.NewBackup(e.mgr.Snapshot(), e.mgr.Variant(), e.clock.Now())
			err = report.WriteJSON(w, backup)
			if closeErr := closeFn(); err == nil {
				err = closeErr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
