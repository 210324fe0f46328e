package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Interpreters tried, in order, when none is configured.
var defaultInterpreters = []string{"python3", "python"}

var moduleNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ErrNoInterpreter is returned when no Python interpreter can be found.
var ErrNoInterpreter = errors.New("python interpreter not found")

// Runner runs a command in dir and returns its standard error.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Python imports modules by running `<interpreter> -c "import <name>"`.
type Python struct {
	dir         string
	interpreter string
	runner      Runner
	lookPath    func(string) (string, error)
}

// PythonOption configures a Python loader.
type PythonOption func(*Python)

// WithPythonDir sets the directory the interpreter runs in, which is also
// the first entry on its import path.
func WithPythonDir(dir string) PythonOption {
	return func(p *Python) {
		p.dir = dir
	}
}

// WithInterpreter pins the interpreter instead of searching PATH.
func WithInterpreter(path string) PythonOption {
	return func(p *Python) {
		p.interpreter = path
	}
}

// WithRunner replaces the command runner.
func WithRunner(r Runner) PythonOption {
	return func(p *Python) {
		p.runner = r
	}
}

// NewPython creates a Python loader.
func NewPython(opts ...PythonOption) *Python {
	p := &Python{
		dir:      ".",
		runner:   ExecRunner{},
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load imports name. The returned error carries the raised exception line,
// e.g. "ModuleNotFoundError: No module named 'backend'".
func (p *Python) Load(ctx context.Context, name string) error {
	if !moduleNamePattern.MatchString(name) {
		return fmt.Errorf("invalid module name %q", name)
	}

	interp, err := p.resolveInterpreter()
	if err != nil {
		return err
	}

	stderr, err := p.runner.Run(ctx, p.dir, interp, "-c", "import "+name)
	if err == nil {
		return nil
	}
	if msg := lastLine(stderr); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", interp, err)
}

func (p *Python) resolveInterpreter() (string, error) {
	if p.interpreter != "" {
		return p.interpreter, nil
	}
	for _, name := range defaultInterpreters {
		if path, err := p.lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoInterpreter
}

// lastLine returns the last non-empty line of a traceback.
func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
