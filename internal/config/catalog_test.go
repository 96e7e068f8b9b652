package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlan_Default(t *testing.T) {
	plan := Default().Plan()

	require.Empty(t, plan.Unresolved)
	require.Equal(t, []PlanStep{
		{Step: StepVerifyConditions, Plugins: []string{PluginGitHub}},
		{Step: StepAnalyzeCommits, Plugins: []string{PluginCommitAnalyzer}},
		{Step: StepGenerateNotes, Plugins: []string{PluginReleaseNotesGenerator}},
		{Step: StepPublish, Plugins: []string{PluginGitHub}},
		{Step: StepAddChannel, Plugins: []string{PluginGitHub}},
		{Step: StepSuccess, Plugins: []string{PluginGitHub}},
		{Step: StepFail, Plugins: []string{PluginGitHub}},
	}, plan.Steps)
}

func TestPlan_PreservesPluginOrder(t *testing.T) {
	cfg := &Config{Plugins: []Plugin{
		{Name: PluginChangelog},
		{Name: PluginNPM},
		{Name: PluginGit},
		{Name: "semantic-release-slack-bot"},
	}}
	plan := cfg.Plan()

	require.Equal(t, PlanStep{Step: StepVerifyConditions, Plugins: []string{PluginChangelog, PluginNPM, PluginGit}}, plan.Steps[0])
	require.Equal(t, PlanStep{Step: StepPrepare, Plugins: []string{PluginChangelog, PluginNPM, PluginGit}}, plan.Steps[1])
	require.Equal(t, []string{"semantic-release-slack-bot"}, plan.Unresolved)
}

func TestRequiredEnv(t *testing.T) {
	require.Equal(t, []EnvRequirement{
		{Plugin: PluginGitHub, AnyOf: []string{"GITHUB_TOKEN", "GH_TOKEN"}},
	}, Default().RequiredEnv())

	reqs := EngineDefaults().RequiredEnv()
	require.Len(t, reqs, 2)
	require.Equal(t, PluginNPM, reqs[0].Plugin)
	require.Equal(t, PluginGitHub, reqs[1].Plugin)
}

func TestExtraPackages(t *testing.T) {
	require.Equal(t, []string{"conventional-changelog-conventionalcommits"}, Default().ExtraPackages())

	cfg := &Config{
		Preset: PresetAngular,
		Plugins: []Plugin{
			{Name: PluginCommitAnalyzer},
			{Name: PluginChangelog},
			{Name: "./plugins/local.js"},
			{Name: PluginGit},
		},
	}
	require.Equal(t, []string{PluginChangelog, PluginGit}, cfg.ExtraPackages())
}

func TestLookupPlugin(t *testing.T) {
	info, ok := LookupPlugin(PluginGitHub)
	require.True(t, ok)
	require.True(t, info.Bundled)

	_, ok = LookupPlugin("semantic-release-unknown")
	require.False(t, ok)
}
