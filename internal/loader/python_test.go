package loader

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

// fakeRunner records calls and replays a canned result.
type fakeRunner struct {
	calls  []call
	stderr string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	return []byte(f.stderr), f.err
}

func TestPython_Load_Success(t *testing.T) {
	// Given: an interpreter that imports cleanly
	runner := &fakeRunner{}
	p := NewPython(WithRunner(runner), WithInterpreter("/usr/bin/python3"), WithPythonDir("/srv/app"))

	// When: importing a dotted module
	err := p.Load(context.Background(), "backend.config_cloud")

	// Then: the interpreter ran the import in the project directory
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, call{
		dir:  "/srv/app",
		name: "/usr/bin/python3",
		args: []string{"-c", "import backend.config_cloud"},
	}, runner.calls[0])
}

func TestPython_Load_ReportsRaisedException(t *testing.T) {
	// Given: a traceback on stderr
	runner := &fakeRunner{
		stderr: "Traceback (most recent call last):\n" +
			"  File \"<string>\", line 1, in <module>\n" +
			"ModuleNotFoundError: No module named 'nonexistent_module'\n\n",
		err: errors.New("exit status 1"),
	}
	p := NewPython(WithRunner(runner), WithInterpreter("python3"))

	// When: importing
	err := p.Load(context.Background(), "nonexistent_module")

	// Then: the error is the exception line
	require.Error(t, err)
	assert.Equal(t, "ModuleNotFoundError: No module named 'nonexistent_module'", err.Error())
}

func TestPython_Load_NoStderrKeepsExitError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("signal: killed")}
	p := NewPython(WithRunner(runner), WithInterpreter("python3"))

	err := p.Load(context.Background(), "app")

	require.Error(t, err)
	assert.Equal(t, "python3: signal: killed", err.Error())
}

func TestPython_Load_RejectsInvalidNames(t *testing.T) {
	runner := &fakeRunner{}
	p := NewPython(WithRunner(runner), WithInterpreter("python3"))

	for _, name := range []string{"", "os; import shutil", "backend..db", "1abc", "back-end", ".rel"} {
		t.Run(name, func(t *testing.T) {
			err := p.Load(context.Background(), name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid module name")
		})
	}
	assert.Empty(t, runner.calls, "nothing must be executed for invalid names")
}

func TestPython_ResolveInterpreter(t *testing.T) {
	tests := []struct {
		name      string
		available map[string]string
		want      string
		wantErr   error
	}{
		{
			name:      "python3 preferred",
			available: map[string]string{"python3": "/usr/bin/python3", "python": "/usr/bin/python"},
			want:      "/usr/bin/python3",
		},
		{
			name:      "falls back to python",
			available: map[string]string{"python": "/usr/bin/python"},
			want:      "/usr/bin/python",
		},
		{
			name:      "none available",
			available: map[string]string{},
			wantErr:   ErrNoInterpreter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPython(WithRunner(&fakeRunner{}))
			p.lookPath = func(name string) (string, error) {
				if path, ok := tt.available[name]; ok {
					return path, nil
				}
				return "", exec.ErrNotFound
			}

			got, err := p.resolveInterpreter()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPython_Load_MissingInterpreter(t *testing.T) {
	p := NewPython(WithRunner(&fakeRunner{}))
	p.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	err := p.Load(context.Background(), "app")

	assert.ErrorIs(t, err, ErrNoInterpreter)
}

func TestExecRunner_CapturesStderr(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	stderr, err := ExecRunner{}.Run(context.Background(), t.TempDir(), sh, "-c", "echo boom >&2; exit 3")

	require.Error(t, err)
	assert.Equal(t, "boom", lastLine(stderr))
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "", lastLine(nil))
	assert.Equal(t, "c", lastLine([]byte("a\nb\n  c  \n\n")))
}
