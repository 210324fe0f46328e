// Package cmd provides the CLI commands for readycheck.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
	"github.com/Aman-CERP/readycheck/internal/loader"
	"github.com/Aman-CERP/readycheck/internal/logging"
	"github.com/Aman-CERP/readycheck/internal/manifest"
	"github.com/Aman-CERP/readycheck/internal/readiness"
	"github.com/Aman-CERP/readycheck/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// loadChecklist and newChecker are replaced in tests.
var (
	loadChecklist = manifest.Default

	newChecker = func(dir string) *readiness.Checker {
		return readiness.New(
			readiness.WithDir(dir),
			readiness.WithLoader(readiness.DefaultLoader, loader.NewPython(loader.WithPythonDir(dir))),
			readiness.WithLoader("go", loader.NewGo(loader.WithGoPath(dir))),
			readiness.WithLogger(slog.Default()),
		)
	}
)

// NewRootCmd creates the root command for the readycheck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readycheck",
		Short: "Verify a project is ready to deploy",
		Long: `readycheck evaluates the built-in deployment checklist in the current
directory: required files must exist and application modules must import
cleanly.

Every item is reported, then a one-line verdict. The exit status is 0 when
all items pass and 1 otherwise.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}

	cmd.SetVersionTemplate("readycheck version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.readycheck/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging routes slog to the rotating log file under --debug and
// discards it otherwise; stdout belongs to the checklist.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		slog.SetDefault(logging.Discard())
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, NewRootCmd())
}

// run executes cmd and closes the debug log afterwards. Cobra skips
// PersistentPostRunE when RunE fails, and not-ready is a failing RunE.
func run(ctx context.Context, cmd *cobra.Command) error {
	defer func() { _ = stopLogging(cmd, nil) }()
	return cmd.ExecuteContext(ctx)
}

// PrintError writes err for the terminal. The not-ready verdict has already
// been printed with the checklist, so it is not repeated.
func PrintError(w io.Writer, err error) {
	if err == nil || rerrors.GetCode(err) == rerrors.ErrCodeNotReady {
		return
	}
	var re *rerrors.ReadyError
	if errors.As(err, &re) {
		_, _ = fmt.Fprint(w, rerrors.FormatForCLI(err))
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

func runCheck(cmd *cobra.Command) error {
	report, err := evaluate(cmd.Context(), "")
	if err != nil {
		return err
	}
	readiness.PrintReport(cmd.OutOrStdout(), report, readiness.PrintOptions{})
	return report.Err()
}

// evaluate runs the built-in checklist in dir, or the working directory
// when dir is empty. Only a broken checklist is an error here; failed items
// are in the report.
func evaluate(ctx context.Context, dir string) (readiness.Report, error) {
	items, err := loadChecklist()
	if err != nil {
		return readiness.Report{}, err
	}

	dir, err = resolveDir(dir)
	if err != nil {
		return readiness.Report{}, err
	}
	return newChecker(dir).Run(ctx, items), nil
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", rerrors.InternalError("resolve working directory", err)
	}
	return wd, nil
}
