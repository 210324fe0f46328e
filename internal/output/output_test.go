package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Pass_PrintsCheckmark(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a passing line
	w.Pass("Dockerfile")

	// Then: the line is "{symbol} {target}" without styling
	assert.Equal(t, "✅ Dockerfile\n", buf.String())
}

func TestWriter_Fail_PrintsCross(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Fail("start.sh (missing)")

	assert.Equal(t, "❌ start.sh (missing)\n", buf.String())
}

func TestWriter_Detail_Indents(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Detail("Docker build file")

	assert.Equal(t, "   Docker build file\n", buf.String())
}

func TestWriter_Header_Underlines(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Header("Deployment readiness")

	assert.Equal(t, "Deployment readiness\n====================\n", buf.String())
}

func TestWriter_Summary_Plain(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Summary(true, "Ready: 2/2 checks passed")
	w.Summary(false, "Not ready: 1 of 2 checks failed")

	assert.Equal(t, "Ready: 2/2 checks passed\nNot ready: 1 of 2 checks failed\n", buf.String())
}

func TestIsTTY_NonTerminals(t *testing.T) {
	// A buffer is never a terminal
	assert.False(t, IsTTY(&bytes.Buffer{}))

	// Neither is a regular file
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTTY(f))
}
