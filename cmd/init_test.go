package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
)

func TestInit_WritesProjectRecord(t *testing.T) {
	dir := t.TempDir()
	resetFlags(t, dir)

	out, err := execute(t, initCmd, initRunE)
	require.NoError(t, err)

	path := filepath.Join(dir, ".releaserc.json")
	require.Equal(t, "wrote "+path+"\n", out)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(config.Default(), cfg))

	found, err := config.Discover(dir)
	require.NoError(t, err)
	require.Equal(t, path, found)
}

func TestInit_Formats(t *testing.T) {
	for format, name := range map[string]string{
		"yaml": ".releaserc.yaml",
		"toml": ".releaserc.toml",
		"js":   "release.config.js",
	} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			resetFlags(t, dir)
			flagInitFormat = format

			_, err := execute(t, initCmd, initRunE)
			require.NoError(t, err)
			require.FileExists(t, filepath.Join(dir, name))
		})
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".releaserc.json", `{"branches": ["release"]}`)
	resetFlags(t, dir)

	_, err := execute(t, initCmd, initRunE)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "release")
}

func TestInit_Force(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, ".releaserc.json", `{"branches": ["release"]}`)
	resetFlags(t, dir)
	flagForce = true

	_, err := execute(t, initCmd, initRunE)
	require.NoError(t, err)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, cfg.BranchNames())
}

func TestInit_UnknownFormat(t *testing.T) {
	resetFlags(t, t.TempDir())
	flagInitFormat = "xml"

	_, err := execute(t, initCmd, initRunE)
	require.Error(t, err)
}
