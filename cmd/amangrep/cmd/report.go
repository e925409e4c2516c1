package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amangrep/internal/config"
	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
	"github.com/Aman-CERP/amangrep/internal/output"
)

func newReportCmd() *cobra.Command {
	var (
		jsonOutput bool
		benchmark  bool
	)

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Show a saved search report",
		Long: `Render a report saved by a previous search run with -b or --report.

Without [file] the configured report path is used (default
search_report.json).`,
		Example: `  # Re-read the last benchmark report with its performance block
  amangrep report --benchmark

  # Pretty-print a report written elsewhere
  amangrep report --json out/report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runReport(cmd, path, jsonOutput, benchmark)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVarP(&benchmark, "benchmark", "b", false, "Include performance statistics")

	return cmd
}

func runReport(cmd *cobra.Command, path string, jsonOutput, benchmark bool) error {
	if path == "" {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		path = cfg.Output.ReportPath
	}

	report, err := output.LoadReport(path)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if jsonOutput {
		if err := out.JSON(report); err != nil {
			return amanerrors.InternalError("failed to write JSON output", err)
		}
		return nil
	}

	out.Statusf("📄", "Report %s", path)
	out.Report(report, benchmark)
	return nil
}
