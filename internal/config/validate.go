package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	// pluginNamePattern matches npm package names, optionally scoped.
	pluginNamePattern = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._~-]*/)?[a-z0-9][a-z0-9._~-]*$`)
	commitTypePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid release configuration: " + e.Issues[0]
	}
	return "invalid release configuration:\n  - " + strings.Join(e.Issues, "\n  - ")
}

// Validate checks the configuration for errors the engine would reject at
// load time. All problems are reported together in a *ValidationError.
func Validate(cfg *Config) error {
	var issues []string
	add := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if len(cfg.Branches) == 0 {
		add("at least one release branch is required")
	}
	seenBranches := map[string]bool{}
	for i, b := range cfg.Branches {
		if strings.TrimSpace(b.Name) == "" {
			add("branches[%d]: name must be a non-empty string", i)
			continue
		}
		if seenBranches[b.Name] {
			add("branches[%d]: duplicate branch %q", i, b.Name)
		}
		seenBranches[b.Name] = true
		if _, err := CompilePattern(b.Name); err != nil {
			add("branches[%d]: %v", i, err)
		}
	}

	seenPlugins := map[string]bool{}
	for i, p := range cfg.Plugins {
		switch {
		case p.Name == "":
			add("plugins[%d]: name must be a non-empty string", i)
			continue
		case !isLocalPlugin(p.Name) && !pluginNamePattern.MatchString(p.Name):
			add("plugins[%d]: %q is not a valid package name", i, p.Name)
		}
		if seenPlugins[p.Name] {
			add("plugins[%d]: duplicate plugin %q", i, p.Name)
		}
		seenPlugins[p.Name] = true
	}

	opts, ok, err := cfg.AnalyzerOptions()
	if err != nil {
		add("%s options: %v", PluginCommitAnalyzer, err)
	} else if ok {
		for i, r := range opts.ReleaseRules {
			if !r.HasMatcher() {
				add("releaseRules[%d]: rule must match on at least one commit field", i)
			}
			if r.Type != "" && !commitTypePattern.MatchString(r.Type) {
				add("releaseRules[%d]: %q is not a valid commit type", i, r.Type)
			}
			if !r.Release.IsValid() {
				add("releaseRules[%d]: invalid release type", i)
			}
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// Warnings reports settings the engine accepts but that are likely
// mistakes. It assumes the configuration is valid.
func Warnings(cfg *Config) []string {
	var warnings []string

	if cfg.Preset != "" && !slices.Contains(knownPresets, cfg.Preset) {
		warnings = append(warnings, fmt.Sprintf("preset %q is not a published conventional-changelog preset", cfg.Preset))
	}

	opts, ok, err := cfg.AnalyzerOptions()
	if err == nil && ok {
		if opts.Preset != "" && cfg.Preset != "" && opts.Preset != cfg.Preset {
			warnings = append(warnings, fmt.Sprintf("commit-analyzer preset %q differs from top-level preset %q", opts.Preset, cfg.Preset))
		}
		seen := map[string]bool{}
		for _, r := range opts.ReleaseRules {
			if r.Type == "" {
				continue
			}
			if !slices.Contains(conventionalTypes, r.Type) {
				warnings = append(warnings, fmt.Sprintf("release rule type %q is not a conventional commit type", r.Type))
			}
			if seen[r.Type] {
				warnings = append(warnings, fmt.Sprintf("release rule type %q appears more than once; the first match wins", r.Type))
			}
			seen[r.Type] = true
		}
	}

	plan := cfg.Plan()
	hasAnalyzer := false
	for _, s := range plan.Steps {
		if s.Step == StepAnalyzeCommits {
			hasAnalyzer = true
		}
	}
	if !hasAnalyzer && len(plan.Unresolved) == 0 {
		warnings = append(warnings, "no plugin analyzes commits; the engine will never cut a release")
	}

	return warnings
}

func isLocalPlugin(name string) bool {
	return strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") || strings.HasPrefix(name, "/")
}
