package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
	"github.com/Aman-CERP/readycheck/internal/readiness"
)

func newDoctorCmd() *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Explain which deployment requirements fail and why",
		Long: `Run the deployment checklist with diagnostic detail.

Checks:
  - Required files (Dockerfile, requirements.txt, start scripts, backend sources)
  - Application modules import without errors

Use --verbose to show what each item is for and the underlying failure cause.
Use --json for machine-readable output.`,
		Example: `  # Diagnose the current directory
  readycheck doctor

  # Verbose output with causes
  readycheck doctor --verbose

  # JSON output for CI
  readycheck doctor --json --dir ./deploy`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, dir, verbose, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions and failure causes")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: working directory)")

	return cmd
}

func runDoctor(cmd *cobra.Command, dir string, verbose, jsonOutput bool) error {
	report, err := evaluate(cmd.Context(), dir)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := outputJSON(cmd, report); err != nil {
			return err
		}
		return report.Err()
	}

	readiness.PrintReport(cmd.OutOrStdout(), report, readiness.PrintOptions{
		Title:   "Deployment readiness",
		Verbose: verbose,
	})
	return report.Err()
}

// JSONOutput is the structure for JSON output.
type JSONOutput struct {
	Status  string            `json:"status"`
	Ready   bool              `json:"ready"`
	Summary string            `json:"summary"`
	Checks  []JSONCheckResult `json:"checks"`
	Errors  []string          `json:"errors,omitempty"`
}

// JSONCheckResult is a single check result for JSON output.
type JSONCheckResult struct {
	Kind        string `json:"kind"`
	Target      string `json:"target"`
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

func outputJSON(cmd *cobra.Command, report readiness.Report) error {
	out := JSONOutput{
		Status:  "ready",
		Ready:   report.Passed(),
		Summary: readiness.SummaryLine(report),
		Checks:  make([]JSONCheckResult, len(report.Results)),
	}
	if !out.Ready {
		out.Status = "not_ready"
	}

	for i, r := range report.Results {
		out.Checks[i] = JSONCheckResult{
			Kind:        r.Item.Kind.String(),
			Target:      r.Item.Target,
			Status:      statusToString(r.Passed),
			Detail:      r.Detail,
			Code:        rerrors.GetCode(r.Err),
			Description: r.Item.Description,
		}
		if !r.Passed {
			out.Errors = append(out.Errors, r.Item.Target+": "+r.Detail)
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func statusToString(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}
