package config

import "fmt"

// Default returns the project's release configuration: releases are cut
// from main, commits follow the conventional commits preset, and the
// analyzer, notes generator and GitHub publisher run in that order.
func Default() *Config {
	return &Config{
		Branches: []Branch{{Name: "main"}},
		Plugins: []Plugin{
			mustPlugin(PluginCommitAnalyzer, CommitAnalyzerOptions{
				Preset:       PresetConventionalCommits,
				ReleaseRules: DefaultReleaseRules(),
			}),
			{Name: PluginReleaseNotesGenerator},
			{Name: PluginGitHub},
		},
		Preset: PresetConventionalCommits,
	}
}

// EngineDefaults returns the values the release engine falls back to for
// keys a configuration file does not set.
func EngineDefaults() *Config {
	return &Config{
		Branches: []Branch{
			{Name: "+([0-9])?(.{+([0-9]),x}).x"},
			{Name: "master"},
			{Name: "main"},
			{Name: "next"},
			{Name: "next-major"},
			{Name: "beta", Prerelease: Prerelease{Enabled: true}},
			{Name: "alpha", Prerelease: Prerelease{Enabled: true}},
		},
		Plugins: []Plugin{
			{Name: PluginCommitAnalyzer},
			{Name: PluginReleaseNotesGenerator},
			{Name: PluginNPM},
			{Name: PluginGitHub},
		},
		TagFormat: "v${version}",
	}
}

func mustPlugin(name string, options any) Plugin {
	p, err := NewPlugin(name, options)
	if err != nil {
		panic(fmt.Sprintf("building default plugin %s: %v", name, err))
	}
	return p
}
