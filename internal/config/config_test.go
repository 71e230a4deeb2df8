package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := NewViper()
	cfg, err := Load(v)
	require.NoError(t, err)

	wd, _ := os.Getwd()
	assert.Equal(t, filepath.Join(wd, DefaultModel), cfg.Model)
	assert.Equal(t, filepath.Join(wd, "skeleton.png"), cfg.Output)
	assert.Equal(t, 640, cfg.Size)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, -60.0, cfg.Azimuth)
	assert.Equal(t, 30.0, cfg.Elevation)
	assert.Equal(t, 1.0, cfg.AxisRange)
	assert.Equal(t, 6.0, cfg.LabelSize)
	assert.Equal(t, 1, cfg.Views)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, DefaultChains(), cfg.Chains)
	assert.False(t, cfg.DrawChains)
}

func TestReadFileResolvesAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skelplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: robots/arm.xml
output: out/arm.webp
size: 320
axis_range: 2.5
views: 8
chains:
  arm: [base, elbow, wrist]
`), 0644))

	v := NewViper()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BaseDir)
	assert.Equal(t, filepath.Join(dir, "robots", "arm.xml"), cfg.Model)
	assert.Equal(t, filepath.Join(dir, "out", "arm.webp"), cfg.Output)
	assert.Equal(t, 320, cfg.Size)
	assert.Equal(t, 2.5, cfg.AxisRange)
	assert.Equal(t, 8, cfg.Views)
	assert.Equal(t, map[string][]string{"arm": {"base", "elbow", "wrist"}}, cfg.Chains)
}

func TestReadFileMissing(t *testing.T) {
	v := NewViper()
	assert.Error(t, ReadFile(v, filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SKELPLOT_SIZE", "200")
	t.Setenv("SKELPLOT_AZIMUTH", "45")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Size)
	assert.Equal(t, 45.0, cfg.Azimuth)
}

func TestResolveKeepsAbsolutePaths(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "m.xml")
	cfg := Config{BaseDir: "/elsewhere", Model: abs, LabelSize: -3, Workers: 3}
	cfg.Resolve()

	assert.Equal(t, abs, cfg.Model)
	assert.Equal(t, filepath.Join("/elsewhere", "skeleton.png"), cfg.Output)
	assert.Equal(t, 0.0, cfg.LabelSize)
	assert.Equal(t, 3, cfg.Workers)
}
