package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSONFormat: true, Stderr: &buf})

	Info("role ensured", "account", "111122223333")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "role ensured", rec["msg"])
	assert.Equal(t, "111122223333", rec["account"])
}

func TestInit_DebugHiddenUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})
	Debug("hidden")
	assert.Empty(t, buf.String())

	Init(Options{Verbose: true, Stderr: &buf})
	Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	With("account", "111122223333").Warn("partial provisioning")
	out := buf.String()
	assert.True(t, strings.Contains(out, "account=111122223333"), out)
	assert.Contains(t, out, "level=WARN")
}
