package readiness

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
)

// CheckResult holds the result of a single requirement.
type CheckResult struct {
	Item   RequirementItem
	Passed bool
	// Detail is "missing: {path}" for a missing file and the raised message
	// for an import failure. Empty on success.
	Detail string
	// Err is the structured failure (ERR_201_MISSING_FILE or
	// ERR_601_IMPORT_FAILURE); nil on success.
	Err error
}

// Report is the ordered outcome of one run. Results[i] belongs to the i-th
// configured item.
type Report struct {
	Results []CheckResult
}

// Passed is the aggregate verdict: true when every result passed.
// An empty report passes.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed results in configuration order.
func (r Report) Failures() []CheckResult {
	var failed []CheckResult
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Counts returns the number of passed and failed results.
func (r Report) Counts() (passed, failed int) {
	for _, res := range r.Results {
		if res.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Err returns nil when the report passed and the aggregate not-ready error
// otherwise.
func (r Report) Err() error {
	passed, failed := r.Counts()
	if failed == 0 {
		return nil
	}
	return rerrors.NotReady(failed, passed+failed)
}

// Loader imports a module by name. A returned error is the raised message.
type Loader interface {
	Load(ctx context.Context, name string) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, name string) error

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, name string) error {
	return f(ctx, name)
}

// Checker evaluates requirement items.
type Checker struct {
	dir         string
	loaders     map[string]Loader
	parallelism int
	logger      *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithDir sets the directory file paths are resolved against.
// Defaults to the working directory.
func WithDir(dir string) Option {
	return func(c *Checker) {
		c.dir = dir
	}
}

// WithLoader registers a loader under name. Items select it through
// RequirementItem.Loader.
func WithLoader(name string, l Loader) Option {
	return func(c *Checker) {
		c.loaders[name] = l
	}
}

// WithParallelism bounds how many items are evaluated at once.
// 1 evaluates strictly sequentially; values below 1 are ignored.
func WithParallelism(n int) Option {
	return func(c *Checker) {
		if n >= 1 {
			c.parallelism = n
		}
	}
}

// WithLogger sets the logger for per-item debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		dir:         ".",
		loaders:     make(map[string]Loader),
		parallelism: runtime.NumCPU(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the directory file paths are resolved against.
func (c *Checker) Dir() string {
	return c.dir
}

// Run evaluates every item and returns the report in configuration order.
// A failing item never stops evaluation of the others.
func (c *Checker) Run(ctx context.Context, items []RequirementItem) Report {
	results := make([]CheckResult, len(items))

	var g errgroup.Group
	g.SetLimit(c.parallelism)
	for i, item := range items {
		g.Go(func() error {
			results[i] = c.check(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Results: results}
	passed, failed := report.Counts()
	c.logger.Info("readiness check complete",
		slog.String("dir", c.dir),
		slog.Int("passed", passed),
		slog.Int("failed", failed),
		slog.Bool("ready", failed == 0))
	return report
}

func (c *Checker) check(ctx context.Context, item RequirementItem) CheckResult {
	result := CheckResult{Item: item, Passed: true}

	var err error
	switch item.Kind {
	case KindFileExists:
		err = c.checkFile(item.Target)
	case KindModuleImportable:
		err = c.checkModule(ctx, item)
	default:
		err = rerrors.InternalError("unknown requirement kind "+item.Kind.String(), nil)
	}

	if err != nil {
		result.Passed = false
		result.Err = err
		result.Detail = detailOf(err)
		attrs := append([]slog.Attr{slog.String("item", item.String())}, rerrors.LogAttrs(err)...)
		c.logger.LogAttrs(ctx, slog.LevelDebug, "requirement failed", attrs...)
		return result
	}

	c.logger.Debug("requirement passed", slog.String("item", item.String()))
	return result
}

func (c *Checker) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}

// detailOf returns the operator-facing message of a check failure.
func detailOf(err error) string {
	var re *rerrors.ReadyError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}
