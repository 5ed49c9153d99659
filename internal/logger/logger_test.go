package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withCapture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_SilentWhenNotVerbose(t *testing.T) {
	buf := withCapture(t)
	SetVerbose(false)

	Debug("hidden %d", 1)

	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWhenVerbose(t *testing.T) {
	buf := withCapture(t)
	SetVerbose(true)

	Debug("computed %d samples", 3)

	assert.Contains(t, buf.String(), "[DEBUG] computed 3 samples")
}

func TestSectionInfoWarn(t *testing.T) {
	buf := withCapture(t)
	SetVerbose(true)

	Section("Pipeline Run")
	Info("ok")
	Warn("careful")

	out := buf.String()
	assert.Contains(t, out, "=== Pipeline Run ===")
	assert.Contains(t, out, "[INFO] ok")
	assert.Contains(t, out, "[WARN] careful")
}

func TestIsVerbose(t *testing.T) {
	withCapture(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
