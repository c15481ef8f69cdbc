package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) { //nolint:paralleltest // Cobra commands share package-level flag state
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Version:")
	assert.Contains(t, out.String(), "Platform:")
}

func TestVersionCommandJSON(t *testing.T) { //nolint:paralleltest // Cobra commands share package-level flag state
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"version", "--format", "json"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"version"`)
	assert.Contains(t, out.String(), `"platform"`)
}

func TestServeRejectsUnknownTransport(t *testing.T) { //nolint:paralleltest // Cobra commands share package-level flag state
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--transport", "carrier-pigeon"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
