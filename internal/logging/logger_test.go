package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false, true)

	l.Info("added profile %s", "main")
	l.Warn("endpoint override active")
	l.Error("call failed")
	l.Debug("not shown")

	out := buf.String()
	assert.Contains(t, out, "✓ added profile main")
	assert.Contains(t, out, "⚠ endpoint override active")
	assert.Contains(t, out, "✗ call failed")
	assert.NotContains(t, out, "not shown")
}

func TestLoggerDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, true, true)

	l.Debug("resolving credentials from profile %s", "main")
	assert.Contains(t, buf.String(), "[DEBUG] resolving credentials from profile main")
}

func TestSecretNeverPrints(t *testing.T) {
	s := Secret("hunter22")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", s))
}

func TestRedact(t *testing.T) {
	out := Redact("passwd=hunter22&login=u", []string{"hunter22", "ab"})
	assert.Equal(t, "passwd=[REDACTED]&login=u", out)
}
