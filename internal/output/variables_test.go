package output

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
)

func TestGetVariables_ProjectRecord(t *testing.T) {
	vars := GetVariables(config.Default())

	require.Equal(t, "main", vars["Branches"])
	require.Equal(t, "@semantic-release/commit-analyzer,@semantic-release/release-notes-generator,@semantic-release/github", vars["Plugins"])
	require.Equal(t, "conventionalcommits", vars["Preset"])
	require.Equal(t, "feat=minor,fix=patch,chore=patch", vars["ReleaseRules"])
	require.Equal(t, "minor", vars["MaxRelease"])
	require.Equal(t, DefaultTagFormat, vars["TagFormat"])
	require.Equal(t, "conventional-changelog-conventionalcommits", vars["ExtraPackages"])
	require.Equal(t, "GITHUB_TOKEN|GH_TOKEN", vars["RequiredEnv"])
}

func TestGetVariables_NoAnalyzer(t *testing.T) {
	cfg := &config.Config{
		Branches:  []config.Branch{{Name: "main"}},
		Plugins:   []config.Plugin{{Name: config.PluginReleaseNotesGenerator}},
		TagFormat: "release-${version}",
	}
	vars := GetVariables(cfg)

	require.Equal(t, "", vars["Preset"])
	require.Equal(t, "", vars["ReleaseRules"])
	require.Equal(t, "none", vars["MaxRelease"])
	require.Equal(t, "release-${version}", vars["TagFormat"])
	require.Equal(t, "", vars["RequiredEnv"])
}
