package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/semver"

	"github.com/stretchr/testify/require"
)

// The project's release.config.js, expressed in each readable format.
const (
	projectJSON = `{
  // releases are cut from main only
  "branches": ["main"],
  "plugins": [
    ["@semantic-release/commit-analyzer", {
      "preset": "conventionalcommits",
      "releaseRules": [
        { "type": "feat", "release": "minor" },
        { "type": "fix", "release": "patch" },
        { "type": "chore", "release": "patch" }, // chore triggers a release too
      ]
    }],
    "@semantic-release/release-notes-generator",
    "@semantic-release/github"
  ],
  "preset": "conventionalcommits",
}`

	projectYAML = `branches:
  - main
plugins:
  - - "@semantic-release/commit-analyzer"
    - preset: conventionalcommits
      releaseRules:
        - type: feat
          release: minor
        - type: fix
          release: patch
        - type: chore
          release: patch
  - "@semantic-release/release-notes-generator"
  - "@semantic-release/github"
preset: conventionalcommits
`

	projectTOML = `branches = ["main"]
plugins = [
  ["@semantic-release/commit-analyzer", { preset = "conventionalcommits", releaseRules = [{ type = "feat", release = "minor" }, { type = "fix", release = "patch" }, { type = "chore", release = "patch" }] }],
  "@semantic-release/release-notes-generator",
  "@semantic-release/github",
]
preset = "conventionalcommits"
`
)

func TestLoadFromBytes_ProjectRecord(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatJSON, projectJSON},
		{FormatYAML, projectYAML},
		{FormatTOML, projectTOML},
		{FormatAuto, projectJSON},
		{FormatAuto, projectYAML},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			cfg, err := LoadFromBytes([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadFromBytes_Minimal(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""), FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Nil(t, cfg.Branches)
	require.Nil(t, cfg.Plugins)
	require.Empty(t, cfg.Preset)
}

func TestLoadFromBytes_OptionalKeys(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
branches:
  - main
  - name: beta
    prerelease: true
tagFormat: release-${version}
repositoryUrl: git@github.com:acme/widgets.git
dryRun: true
ci: false
`), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, "release-${version}", cfg.TagFormat)
	require.Equal(t, "git@github.com:acme/widgets.git", cfg.RepositoryURL)
	require.True(t, *cfg.DryRun)
	require.False(t, *cfg.CI)
	require.True(t, cfg.Branches[1].IsPrerelease())
}

func TestLoadFromBytes_ReleaseFalse(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
plugins:
  - - "@semantic-release/commit-analyzer"
    - releaseRules:
        - type: docs
          release: false
`), FormatYAML)
	require.NoError(t, err)
	opts, ok, err := cfg.AnalyzerOptions()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, semver.ReleaseTypeNone, opts.ReleaseRules[0].Release)
}

func TestLoadFromBytes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"invalid yaml", "::bad yaml{{", FormatYAML},
		{"invalid json", "{", FormatJSON},
		{"invalid toml", "branches = [", FormatTOML},
		{"top-level list", "- main", FormatYAML},
		{"bad branch", `{"branches": [1]}`, FormatJSON},
		{"bad plugin", `{"plugins": [{"name": "x"}]}`, FormatJSON},
		{"bad format", "", Format("xml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data), tt.format)
			require.Error(t, err)
		})
	}
}

func TestLoadFromBytes_PackageJSON(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`{"name": "widgets", "release": {"branches": ["main"], "preset": "angular"}}`), FormatPackageJSON)
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, cfg.BranchNames())
	require.Equal(t, "angular", cfg.Preset)

	_, err = LoadFromBytes([]byte(`{"name": "widgets"}`), FormatPackageJSON)
	require.True(t, errors.Is(err, ErrNoReleaseKey))
}

func TestLoadFromBytes_JavaScript(t *testing.T) {
	_, err := LoadFromBytes([]byte("module.exports = {}"), FormatJS)
	require.True(t, errors.Is(err, ErrScriptConfig))
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{".releaserc", FormatAuto},
		{".releaserc.json", FormatJSON},
		{"/repo/.releaserc.yml", FormatYAML},
		{".releaserc.YAML", FormatYAML},
		{"release.toml", FormatTOML},
		{"release.config.js", FormatJS},
		{".releaserc.cjs", FormatJS},
		{"package.json", FormatPackageJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatForPath(tt.path)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := FormatForPath("release.xml")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"json": FormatJSON, "YML": FormatYAML, "toml": FormatTOML, "javascript": FormatJS} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("ini")
	require.Error(t, err)
}

func TestLoadFromFile_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".releaserc.json")
	require.NoError(t, os.WriteFile(path, []byte(projectJSON), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFromFile_Extensionless(t *testing.T) {
	for name, content := range map[string]string{"json": projectJSON, "yaml": projectYAML} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".releaserc")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			cfg, err := LoadFromFile(path)
			require.NoError(t, err)
			require.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/.releaserc.yml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading config file")
}

func TestLoadFromFile_JavaScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "release.config.js")
	require.NoError(t, os.WriteFile(path, []byte("module.exports = {};\n"), 0o644))

	_, err := LoadFromFile(path)
	require.True(t, errors.Is(err, ErrScriptConfig))
}
