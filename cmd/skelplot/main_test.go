package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const humanoid = "../../assets/mjcf/amp_humanoid.xml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJointsCommand(t *testing.T) {
	out, err := run(t, "joints", humanoid)
	require.NoError(t, err)
	assert.Contains(t, out, "right_lower_arm")
	assert.Contains(t, out, "right_elbow")
	assert.Contains(t, out, "0.460")
	assert.NotContains(t, out, "1.460")
}

func TestChainsCommand(t *testing.T) {
	out, err := run(t, "chains", humanoid)
	require.NoError(t, err)
	assert.Contains(t, out, "hands")
	assert.Contains(t, out, "(7 joints)")
	assert.Contains(t, out, "spine")
}

func TestChainsCommandUnknownJoint(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "skelplot.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chains:\n  tail: [pelvis, tail]\n"), 0644))

	_, err := run(t, "--config", cfgPath, "chains", humanoid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tail")
}

func TestRenderCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "fig.png")
	out, err := run(t, "render", humanoid, "--output", output, "--size", "96", "--supersample", "1", "--chains")
	require.NoError(t, err)
	assert.Contains(t, out, output)

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestRenderTurntableWritesManifest(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "render", humanoid, "-o", filepath.Join(dir, "spin.webp"), "--size", "48", "--supersample", "1", "--views", "3", "--label-size", "0")
	require.NoError(t, err)

	for _, name := range []string{"spin_000.webp", "spin_001.webp", "spin_002.webp"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	assert.Len(t, entries, 3)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := run(t, "render", humanoid, "-o", filepath.Join(t.TempDir(), "fig.gif"), "--size", "32", "--supersample", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 views failed")
}

func TestRenderMissingModel(t *testing.T) {
	_, err := run(t, "render", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}
