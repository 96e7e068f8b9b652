package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// resetFlags restores every package-level flag to its default and points
// --path at dir.
func resetFlags(t *testing.T, dir string) {
	t.Helper()
	reset := func() {
		flagPath = "."
		flagConfig = ""
		flagOutput = ""
		flagVerbosity = ""
		flagFormat = "json"
		flagPlan = false
		flagEffective = false
		flagVariables = false
		flagShowVariable = ""
		flagRemote = ""
		flagRef = ""
		flagRemoteConfigPath = ""
		flagToken = ""
		flagAppID = 0
		flagAppKey = ""
		flagAppKeyPath = ""
		flagGitHubURL = ""
		flagInitFormat = "json"
		flagForce = false
		flagBranch = ""
		flagGitRemote = "origin"
		flagGitHub = false
		flagDryRun = false
		flagNoCI = false
		flagSkipCheck = false
	}
	reset()
	flagPath = dir
	t.Cleanup(reset)
}

// clearReleaseEnv unsets the credentials and CI variables preflight reads.
func clearReleaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN", "NPM_TOKEN", "GITHUB_REF_NAME", "GH_APP_ID", "GH_APP_PRIVATE_KEY", "GH_APP_PRIVATE_KEY_PATH"} {
		t.Setenv(key, "")
	}
}

// execute runs fn as c with output captured.
func execute(t *testing.T, c *cobra.Command, fn func(*cobra.Command, []string) error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	err := fn(c, nil)
	return buf.String(), err
}
