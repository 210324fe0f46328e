package readiness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	rerrors "github.com/Aman-CERP/readycheck/internal/errors"
	"github.com/Aman-CERP/readycheck/internal/logging"
)

// fakePython imports only the modules it was given.
func fakePython(known ...string) Loader {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	return LoaderFunc(func(_ context.Context, name string) error {
		if set[name] {
			return nil
		}
		return fmt.Errorf("ModuleNotFoundError: No module named '%s'", name)
	})
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func newTestChecker(dir string, opts ...Option) *Checker {
	base := []Option{WithDir(dir), WithLogger(logging.Discard())}
	return New(append(base, opts...)...)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "file", KindFileExists.String())
	assert.Equal(t, "module", KindModuleImportable.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestRequirementItem_Constructors(t *testing.T) {
	f := FileExists("Dockerfile")
	assert.Equal(t, KindFileExists, f.Kind)
	assert.Equal(t, "file:Dockerfile", f.String())

	m := ModuleImportable("backend.config_cloud")
	assert.Equal(t, DefaultLoader, m.Loader)
	assert.Equal(t, "module:backend.config_cloud", m.String())
	assert.Equal(t, "module(go):example.com/app", ModuleImportable("example.com/app").WithLoader("go").String())
}

func TestRequirementItem_WithReturnsCopy(t *testing.T) {
	// Given: a base item
	base := FileExists("start.sh")

	// When: deriving a described copy
	described := base.WithDescription("start script")

	// Then: the original is unchanged
	assert.Empty(t, base.Description)
	assert.Equal(t, "start script", described.Description)
}

func TestChecker_New_Defaults(t *testing.T) {
	c := New()

	assert.Equal(t, ".", c.Dir())
	assert.GreaterOrEqual(t, c.parallelism, 1)
	assert.Empty(t, c.loaders)
}

func TestChecker_WithParallelism_IgnoresInvalid(t *testing.T) {
	c := New(WithParallelism(0))
	assert.GreaterOrEqual(t, c.parallelism, 1)

	c = New(WithParallelism(3))
	assert.Equal(t, 3, c.parallelism)
}

func TestChecker_Run_AllPass(t *testing.T) {
	// Given: every file exists and every module imports
	dir := t.TempDir()
	writeFiles(t, dir, "Dockerfile", "requirements.txt", "backend/app_simple.py")
	checker := newTestChecker(dir, WithLoader("python", fakePython("backend.config_cloud")))

	// When: running the checklist
	report := checker.Run(context.Background(), []RequirementItem{
		FileExists("Dockerfile"),
		FileExists("requirements.txt"),
		FileExists("backend/app_simple.py"),
		ModuleImportable("backend.config_cloud"),
	})

	// Then: the verdict is pass
	assert.True(t, report.Passed())
	assert.NoError(t, report.Err())
	assert.Empty(t, report.Failures())
	for _, r := range report.Results {
		assert.Empty(t, r.Detail)
		assert.NoError(t, r.Err)
	}
}

func TestChecker_Run_DeploymentExample(t *testing.T) {
	// Given: both files exist but the module does not
	dir := t.TempDir()
	writeFiles(t, dir, "Dockerfile", "requirements.txt")
	checker := newTestChecker(dir, WithLoader("python", fakePython()))

	// When: running the checklist
	report := checker.Run(context.Background(), []RequirementItem{
		FileExists("Dockerfile"),
		FileExists("requirements.txt"),
		ModuleImportable("nonexistent_module"),
	})

	// Then: two passes, one failure, aggregate fail
	require.Len(t, report.Results, 3)
	assert.True(t, report.Results[0].Passed)
	assert.True(t, report.Results[1].Passed)
	assert.False(t, report.Results[2].Passed)
	assert.Equal(t, "ModuleNotFoundError: No module named 'nonexistent_module'", report.Results[2].Detail)
	assert.True(t, errors.Is(report.Results[2].Err, rerrors.ImportFailure("", nil)))
	assert.False(t, report.Passed())

	passed, failed := report.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, rerrors.ErrCodeNotReady, rerrors.GetCode(report.Err()))
}

func TestChecker_Run_MissingFileDetail(t *testing.T) {
	checker := newTestChecker(t.TempDir())

	report := checker.Run(context.Background(), []RequirementItem{FileExists("start.sh")})

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.False(t, res.Passed)
	assert.Equal(t, "missing: start.sh", res.Detail)
	assert.True(t, errors.Is(res.Err, os.ErrNotExist))
	assert.Equal(t, rerrors.ErrCodeMissingFile, rerrors.GetCode(res.Err))
}

func TestChecker_Run_AnySingleFailureFailsReport(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a", "b", "c", "d")
	items := []RequirementItem{FileExists("a"), FileExists("b"), FileExists("c"), FileExists("d")}

	for i := range items {
		t.Run(items[i].Target, func(t *testing.T) {
			// Given: the checklist with only item i pointing at a missing path
			broken := make([]RequirementItem, len(items))
			copy(broken, items)
			broken[i] = FileExists("missing-" + items[i].Target)

			// When: running it
			report := newTestChecker(dir).Run(context.Background(), broken)

			// Then: the report fails with exactly one failure
			assert.False(t, report.Passed())
			require.Len(t, report.Failures(), 1)
			assert.Equal(t, broken[i], report.Failures()[0].Item)
		})
	}
}

func TestChecker_Run_EmptyConfigurationPasses(t *testing.T) {
	report := newTestChecker(t.TempDir()).Run(context.Background(), nil)

	assert.Empty(t, report.Results)
	assert.True(t, report.Passed())
	assert.NoError(t, report.Err())
}

func TestChecker_Run_DirectoriesAndDanglingSymlinksExist(t *testing.T) {
	// Given: a directory and a symlink pointing nowhere
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "backend"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), filepath.Join(dir, "link")))

	// When: checking both
	report := newTestChecker(dir).Run(context.Background(), []RequirementItem{
		FileExists("backend"),
		FileExists("link"),
	})

	// Then: any filesystem entry counts
	assert.True(t, report.Passed())
}

func TestChecker_Run_AbsolutePathIgnoresDir(t *testing.T) {
	other := t.TempDir()
	writeFiles(t, other, "abs.txt")

	report := newTestChecker(t.TempDir()).Run(context.Background(), []RequirementItem{
		FileExists(filepath.Join(other, "abs.txt")),
	})

	assert.True(t, report.Passed())
}

func TestChecker_Run_UnknownLoader(t *testing.T) {
	report := newTestChecker(t.TempDir()).Run(context.Background(), []RequirementItem{
		ModuleImportable("app").WithLoader("ruby"),
	})

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Passed)
	assert.Equal(t, "no ruby loader available", report.Results[0].Detail)
}

func TestChecker_Run_EmptyLoaderUsesDefault(t *testing.T) {
	checker := newTestChecker(t.TempDir(), WithLoader(DefaultLoader, fakePython("app")))

	report := checker.Run(context.Background(), []RequirementItem{
		{Kind: KindModuleImportable, Target: "app"},
	})

	assert.True(t, report.Passed())
}

func TestChecker_Run_LoaderPanicIsImportFailure(t *testing.T) {
	// Given: a loader whose import-time code panics
	panicky := LoaderFunc(func(context.Context, string) error { panic("boom") })
	checker := newTestChecker(t.TempDir(), WithLoader("python", panicky))

	// When: running it next to a passing item
	report := checker.Run(context.Background(), []RequirementItem{
		ModuleImportable("explodes"),
		FileExists("."),
	})

	// Then: the panic is recorded and evaluation continued
	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].Passed)
	assert.Equal(t, "panic: boom", report.Results[0].Detail)
	assert.True(t, report.Results[1].Passed)
}

func TestChecker_Run_UnknownKind(t *testing.T) {
	report := newTestChecker(t.TempDir()).Run(context.Background(), []RequirementItem{{Kind: Kind(9), Target: "x"}})

	assert.False(t, report.Passed())
	assert.Equal(t, rerrors.ErrCodeInternal, rerrors.GetCode(report.Results[0].Err))
}

func TestChecker_Run_PreservesOrderUnderParallelism(t *testing.T) {
	// Given: loaders that finish in reverse order of submission
	var items []RequirementItem
	for i := 0; i < 8; i++ {
		items = append(items, ModuleImportable(fmt.Sprintf("m%d", i)))
	}
	slowFirst := LoaderFunc(func(_ context.Context, name string) error {
		var n int
		_, _ = fmt.Sscanf(name, "m%d", &n)
		time.Sleep(time.Duration(8-n) * 5 * time.Millisecond)
		return nil
	})
	checker := newTestChecker(t.TempDir(), WithLoader("python", slowFirst), WithParallelism(8))

	// When: running
	report := checker.Run(context.Background(), items)

	// Then: exactly one result per item, in configuration order
	require.Len(t, report.Results, len(items))
	for i, r := range report.Results {
		assert.Equal(t, items[i], r.Item)
	}
}

func TestChecker_Run_SequentialWithParallelismOne(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	tracking := LoaderFunc(func(context.Context, string) error {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	checker := newTestChecker(t.TempDir(), WithLoader("python", tracking), WithParallelism(1))

	report := checker.Run(context.Background(), []RequirementItem{
		ModuleImportable("a"), ModuleImportable("b"), ModuleImportable("c"),
	})

	assert.True(t, report.Passed())
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestChecker_Run_Idempotent(t *testing.T) {
	// Given: an unchanged directory and loader
	dir := t.TempDir()
	writeFiles(t, dir, "Dockerfile")
	checker := newTestChecker(dir, WithLoader("python", fakePython("ok")))
	items := []RequirementItem{
		FileExists("Dockerfile"),
		FileExists("start.sh"),
		ModuleImportable("ok"),
		ModuleImportable("broken"),
	}

	// When: running twice
	first := checker.Run(context.Background(), items)
	second := checker.Run(context.Background(), items)

	// Then: the reports are identical
	if diff := cmp.Diff(first, second, cmpopts.IgnoreFields(CheckResult{}, "Err")); diff != "" {
		t.Errorf("reports differ (-first +second):\n%s", diff)
	}
	for i := range first.Results {
		assert.Equal(t, rerrors.GetCode(first.Results[i].Err), rerrors.GetCode(second.Results[i].Err))
	}
}

func TestChecker_Run_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	checker := newTestChecker(t.TempDir(), WithLoader("python", fakePython()))
	for i := 0; i < 5; i++ {
		_ = checker.Run(context.Background(), []RequirementItem{
			FileExists("a"), ModuleImportable("b"), FileExists("c"),
		})
	}
}
