package config

// Step is a lifecycle step of a release run.
type Step string

const (
	StepVerifyConditions Step = "verifyConditions"
	StepAnalyzeCommits   Step = "analyzeCommits"
	StepVerifyRelease    Step = "verifyRelease"
	StepGenerateNotes    Step = "generateNotes"
	StepPrepare          Step = "prepare"
	StepPublish          Step = "publish"
	StepAddChannel       Step = "addChannel"
	StepSuccess          Step = "success"
	StepFail             Step = "fail"
)

// Lifecycle lists the steps in the order the engine runs them.
var Lifecycle = []Step{
	StepVerifyConditions,
	StepAnalyzeCommits,
	StepVerifyRelease,
	StepGenerateNotes,
	StepPrepare,
	StepPublish,
	StepAddChannel,
	StepSuccess,
	StepFail,
}

// PluginInfo describes what a known plugin does during a release run.
type PluginInfo struct {
	Steps []Step
	// Bundled plugins ship with the engine and need no separate install.
	Bundled bool
	// Env lists credential alternatives: any one of them satisfies the plugin.
	Env []string
}

var catalog = map[string]PluginInfo{
	PluginCommitAnalyzer: {
		Steps:   []Step{StepAnalyzeCommits},
		Bundled: true,
	},
	PluginReleaseNotesGenerator: {
		Steps:   []Step{StepGenerateNotes},
		Bundled: true,
	},
	PluginGitHub: {
		Steps:   []Step{StepVerifyConditions, StepPublish, StepAddChannel, StepSuccess, StepFail},
		Bundled: true,
		Env:     []string{"GITHUB_TOKEN", "GH_TOKEN"},
	},
	PluginNPM: {
		Steps:   []Step{StepVerifyConditions, StepPrepare, StepPublish, StepAddChannel},
		Bundled: true,
		Env:     []string{"NPM_TOKEN"},
	},
	PluginGit: {
		Steps: []Step{StepVerifyConditions, StepPrepare},
	},
	PluginChangelog: {
		Steps: []Step{StepVerifyConditions, StepPrepare},
	},
	PluginExec: {
		Steps: Lifecycle,
	},
}

// LookupPlugin returns catalog information for a plugin name.
func LookupPlugin(name string) (PluginInfo, bool) {
	info, ok := catalog[name]
	return info, ok
}

// PlanStep lists the plugins that run a lifecycle step, in plugin order.
type PlanStep struct {
	Step    Step     `json:"step"`
	Plugins []string `json:"plugins"`
}

// Plan is the per-step view of a plugin list.
type Plan struct {
	Steps []PlanStep `json:"steps"`
	// Unresolved lists plugins the catalog does not know; their steps are
	// only discovered by the engine at load time.
	Unresolved []string `json:"unresolved,omitempty"`
}

// Plan groups the configured plugins by lifecycle step. Steps no plugin
// implements are omitted.
func (c *Config) Plan() Plan {
	var plan Plan
	for _, step := range Lifecycle {
		var names []string
		for _, p := range c.Plugins {
			info, ok := LookupPlugin(p.Name)
			if !ok {
				continue
			}
			for _, s := range info.Steps {
				if s == step {
					names = append(names, p.Name)
					break
				}
			}
		}
		if len(names) > 0 {
			plan.Steps = append(plan.Steps, PlanStep{Step: step, Plugins: names})
		}
	}
	for _, p := range c.Plugins {
		if _, ok := LookupPlugin(p.Name); !ok {
			plan.Unresolved = append(plan.Unresolved, p.Name)
		}
	}
	return plan
}

// EnvRequirement is a credential a plugin reads from the environment.
type EnvRequirement struct {
	Plugin string
	AnyOf  []string
}

// RequiredEnv lists the credentials the configured plugins need, in plugin
// order.
func (c *Config) RequiredEnv() []EnvRequirement {
	var reqs []EnvRequirement
	for _, p := range c.Plugins {
		info, ok := LookupPlugin(p.Name)
		if !ok || len(info.Env) == 0 {
			continue
		}
		reqs = append(reqs, EnvRequirement{Plugin: p.Name, AnyOf: info.Env})
	}
	return reqs
}

// ExtraPackages returns the npm packages that must be installed next to the
// engine: the preset package and every plugin the engine does not bundle.
func (c *Config) ExtraPackages() []string {
	var pkgs []string
	seen := map[string]bool{}
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			pkgs = append(pkgs, name)
		}
	}

	presets := []string{c.Preset}
	if opts, ok, err := c.AnalyzerOptions(); ok && err == nil {
		presets = append(presets, opts.Preset)
	}
	for _, preset := range presets {
		if preset != "" && preset != PresetAngular {
			add("conventional-changelog-" + preset)
		}
	}

	for _, p := range c.Plugins {
		if info, ok := LookupPlugin(p.Name); ok && info.Bundled {
			continue
		}
		if isLocalPlugin(p.Name) {
			continue
		}
		add(p.Name)
	}
	return pkgs
}
