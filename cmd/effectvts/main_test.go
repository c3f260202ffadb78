package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faultyManifest = `
factories:
  - name: vendor
    implementations:
      - name: BassBoostHw
        implementor: Vendor Inc.
        strength_supported: true
        fault: accept_all
`

const compliantManifest = `
factories:
  - name: vendor
    implementations:
      - name: BassBoostHw
        implementor: Vendor Inc.
        uuid: 3a6e3cb4-9a47-4d4c-8f43-3f2a2b1c0d11
        strength_supported: true
`

func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("EFFECT_VTS_USE_SIMULATION", "true")
	t.Setenv("EFFECT_VTS_PARALLEL", "")
	t.Setenv("EFFECT_VTS_PROBE_MAX_PLUS_ONE", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCLIConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      *CLIConfig
		wantErr     bool
		errContains string
	}{
		{name: "defaults", config: &CLIConfig{logLevel: "warn", logFormat: "text"}},
		{name: "json debug", config: &CLIConfig{logLevel: "debug", logFormat: "json"}},
		{
			name:        "bad level",
			config:      &CLIConfig{logLevel: "loud", logFormat: "text"},
			wantErr:     true,
			errContains: "invalid log level",
		},
		{
			name:        "bad format",
			config:      &CLIConfig{logLevel: "info", logFormat: "xml"},
			wantErr:     true,
			errContains: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCLIConfig(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestListDefaultSimulation(t *testing.T) {
	out, _, err := executeCmd(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "FACTORY")
	assert.Contains(t, out, "BassBoostSw")
	assert.Contains(t, out, "BassBoostNoStrength")
	assert.Contains(t, out, "unsupported")
	assert.Contains(t, out, "[0, 1000]")
}

func TestListManifest(t *testing.T) {
	out, _, err := executeCmd(t, "list", "--manifest", writeManifest(t, compliantManifest))
	require.NoError(t, err)

	assert.Contains(t, out, "vendor")
	assert.Contains(t, out, "3a6e3cb4-9a47-4d4c-8f43-3f2a2b1c0d11")
	assert.NotContains(t, out, "BassBoostNoStrength")
}

func TestRunDefaultSimulationPasses(t *testing.T) {
	out, _, err := executeCmd(t, "run", "--parallel", "4", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "16 cases, 16 passed, 0 failed")
}

func TestRunWithoutMaxPlusOne(t *testing.T) {
	out, _, err := executeCmd(t, "run", "--probe-max-plus-one=false")
	require.NoError(t, err)
	assert.Contains(t, out, "14 cases, 14 passed, 0 failed")
}

func TestRunFaultyManifestFails(t *testing.T) {
	out, errOut, err := executeCmd(t, "run", "--manifest", writeManifest(t, faultyManifest))
	require.ErrorIs(t, err, errSuiteFailed)

	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "8 cases, 3 passed, 5 failed")
	assert.Contains(t, errOut, errSuiteFailed.Error())
}

func TestRunRejectsBadParallel(t *testing.T) {
	_, _, err := executeCmd(t, "run", "--parallel", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run configuration")
}

func TestRunMissingManifest(t *testing.T) {
	_, _, err := executeCmd(t, "run", "--manifest", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := executeCmd(t, "list", "--log-level", "loud")
	require.Error(t, err)
}
