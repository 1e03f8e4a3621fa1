package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"devcatalyst/internal/adapters/backend"
	"devcatalyst/internal/domain"
)

var (
	diagnoseSuite string
	diagnoseJSON  bool
)

// errChecksFailed makes the command exit non-zero when any check fails.
var errChecksFailed = errors.New("one or more checks failed")

// diagnoseCmd runs the backend checks from the command line
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Check connectivity to the content API",
	Long: `Run the same checks as the /admin/test (suite "connection") or /debug
(suite "debug") pages and print the report. Exits non-zero when a check fails.`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseSuite, "suite", string(domain.SuiteDebug), "connection or debug")
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "print the report as JSON")
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	client := backend.NewClient(cfg.APIURL, cfg.BackendTimeout)
	report, err := newDiagnostics(cfg, client).Run(cmd.Context(), domain.Suite(diagnoseSuite))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if diagnoseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(out, report)
	}
	if !report.Passed() {
		return errChecksFailed
	}
	return nil
}

func printReport(w io.Writer, report *domain.DiagnosticsReport) {
	fmt.Fprintf(w, "API URL:     %s\nEnvironment: %s\nSuite:       %s\n\n", report.APIURL, report.Environment, report.Suite)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tSTATUS\tHTTP\tTIME\tERROR")
	for _, c := range report.Checks {
		status := ""
		if c.HTTPStatus != 0 {
			status = fmt.Sprint(c.HTTPStatus)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dms\t%s\n", c.Name, c.Status, status, c.DurationMS, c.Error)
	}
	_ = tw.Flush()
}
