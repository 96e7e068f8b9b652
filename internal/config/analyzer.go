package config

import (
	"github.com/MyCarrier-DevOps/go-releaserc/internal/semver"
)

// Commit-message presets understood by the analyzer and notes generator.
const (
	PresetAngular             = "angular"
	PresetConventionalCommits = "conventionalcommits"
)

// knownPresets lists the conventional-changelog presets published upstream.
var knownPresets = []string{
	PresetAngular,
	"atom",
	"codemirror",
	PresetConventionalCommits,
	"ember",
	"eslint",
	"express",
	"jquery",
	"jshint",
}

// conventionalTypes lists commit types defined by the conventional commits
// preset. Rules may name other types; those only produce a warning.
var conventionalTypes = []string{
	"feat", "fix", "perf", "revert", "docs", "style",
	"chore", "refactor", "test", "build", "ci",
}

// CommitAnalyzerOptions are the options of the commit-analyzer plugin.
type CommitAnalyzerOptions struct {
	Preset       string         `json:"preset,omitempty"`
	ReleaseRules []ReleaseRule  `json:"releaseRules,omitempty"`
	ParserOpts   map[string]any `json:"parserOpts,omitempty"`
	PresetConfig map[string]any `json:"presetConfig,omitempty"`
}

// ReleaseRule maps commits matching every set field to a release type.
// A rule overrides the analyzer's default mapping only for the commits it
// matches.
type ReleaseRule struct {
	Type     string             `json:"type,omitempty"`
	Scope    string             `json:"scope,omitempty"`
	Subject  string             `json:"subject,omitempty"`
	Breaking *bool              `json:"breaking,omitempty"`
	Revert   *bool              `json:"revert,omitempty"`
	Release  semver.ReleaseType `json:"release"`
}

// HasMatcher reports whether the rule constrains at least one commit field.
func (r ReleaseRule) HasMatcher() bool {
	return r.Type != "" || r.Scope != "" || r.Subject != "" || r.Breaking != nil || r.Revert != nil
}

// DefaultReleaseRules returns the project's release rules: features bump the
// minor version, fixes and chores bump the patch version.
func DefaultReleaseRules() []ReleaseRule {
	return []ReleaseRule{
		{Type: "feat", Release: semver.ReleaseTypeMinor},
		{Type: "fix", Release: semver.ReleaseTypePatch},
		{Type: "chore", Release: semver.ReleaseTypePatch},
	}
}

// AnalyzerOptions decodes the options of the commit-analyzer plugin. The
// boolean result is false when the plugin is not configured.
func (c *Config) AnalyzerOptions() (CommitAnalyzerOptions, bool, error) {
	var opts CommitAnalyzerOptions
	p, ok := c.Plugin(PluginCommitAnalyzer)
	if !ok {
		return opts, false, nil
	}
	if err := p.DecodeOptions(&opts); err != nil {
		return opts, true, err
	}
	return opts, true, nil
}

// MaxRelease returns the strongest release type any rule can produce.
func (o CommitAnalyzerOptions) MaxRelease() semver.ReleaseType {
	strongest := semver.ReleaseTypeNone
	for _, r := range o.ReleaseRules {
		strongest = semver.Higher(strongest, r.Release)
	}
	return strongest
}

// EffectivePreset returns the analyzer preset, falling back to the
// top-level preset.
func (o CommitAnalyzerOptions) EffectivePreset(c *Config) string {
	if o.Preset != "" {
		return o.Preset
	}
	return c.Preset
}
