package readiness

import (
	"errors"
	"fmt"
	"io"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
	"github.com/Aman-CERP/readycheck/internal/output"
)

// PrintOptions controls PrintReport.
type PrintOptions struct {
	// Title is printed as an underlined header when non-empty.
	Title string
	// Verbose adds item descriptions and failure causes.
	Verbose bool
}

// PrintReport writes the checklist, one line per item in configuration
// order, followed by the summary line:
//
//	✅ Dockerfile
//	❌ start.sh (missing)
//	❌ backend.db (ModuleNotFoundError: No module named 'backend')
//
//	Not ready: 2 of 3 checks failed
func PrintReport(w io.Writer, r Report, opts PrintOptions) {
	PrintReportTo(output.New(w), r, opts)
}

// PrintReportTo is PrintReport with an explicit output writer.
func PrintReportTo(out *output.Writer, r Report, opts PrintOptions) {
	if opts.Title != "" {
		out.Header(opts.Title)
	}

	for _, res := range r.Results {
		line := Line(res)
		if res.Passed {
			out.Pass(line)
		} else {
			out.Fail(line)
		}
		if !opts.Verbose {
			continue
		}
		if res.Item.Description != "" {
			out.Detail(res.Item.Description)
		}
		if cause := errors.Unwrap(res.Err); cause != nil && cause.Error() != res.Detail {
			out.Detail("cause: " + cause.Error())
		}
	}

	out.Newline()
	out.Summary(r.Passed(), SummaryLine(r))

	if opts.Verbose {
		if failures := r.Failures(); len(failures) > 0 {
			out.Newline()
			out.Detail(fmt.Sprintf("%d item(s) to fix before deploying:", len(failures)))
			for _, f := range failures {
				out.Detail("  - " + f.Item.Target + ": " + f.Detail)
			}
		}
	}
}

// Line renders a result without its symbol: "{target}" on success,
// "{target} (missing)" for a missing file, "{target} ({detail})" for an
// import failure.
func Line(res CheckResult) string {
	if res.Passed {
		return res.Item.Target
	}
	if errors.Is(res.Err, rerrors.MissingFile("", nil)) {
		return res.Item.Target + " (missing)"
	}
	return fmt.Sprintf("%s (%s)", res.Item.Target, res.Detail)
}

// SummaryLine renders the aggregate verdict.
func SummaryLine(r Report) string {
	passed, failed := r.Counts()
	total := passed + failed
	if failed == 0 {
		return fmt.Sprintf("Ready: %d/%d checks passed", passed, total)
	}
	return fmt.Sprintf("Not ready: %d of %d checks failed", failed, total)
}
