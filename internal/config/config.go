// Package config provides the release configuration record consumed by the
// external release engine: loading from disk, layering over engine defaults,
// validation, and rendering back to the engine's file formats.
package config

// Config is the release configuration record. Branches and Plugins are nil
// when unset so that the Builder can tell "not configured" apart from an
// explicit empty list.
type Config struct {
	Branches      []Branch `json:"branches,omitempty"`
	Plugins       []Plugin `json:"plugins,omitempty"`
	Preset        string   `json:"preset,omitempty"`
	TagFormat     string   `json:"tagFormat,omitempty"`
	RepositoryURL string   `json:"repositoryUrl,omitempty"`
	DryRun        *bool    `json:"dryRun,omitempty"`
	CI            *bool    `json:"ci,omitempty"`
}

// knownKeys lists the top-level keys the record models. The loader drops
// anything else with a warning, including "extends": shared configurations
// are not resolved.
var knownKeys = map[string]bool{
	"branches":      true,
	"plugins":       true,
	"preset":        true,
	"tagFormat":     true,
	"repositoryUrl": true,
	"dryRun":        true,
	"ci":            true,
}

// Plugin returns the first plugin with the given name.
func (c *Config) Plugin(name string) (Plugin, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// BranchNames returns the branch patterns in configuration order.
func (c *Config) BranchNames() []string {
	names := make([]string, 0, len(c.Branches))
	for _, b := range c.Branches {
		names = append(names, b.Name)
	}
	return names
}

// PluginNames returns the plugin names in execution order.
func (c *Config) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		names = append(names, p.Name)
	}
	return names
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Branches != nil {
		out.Branches = append([]Branch{}, c.Branches...)
	}
	if c.Plugins != nil {
		out.Plugins = make([]Plugin, len(c.Plugins))
		for i, p := range c.Plugins {
			out.Plugins[i] = Plugin{Name: p.Name, Options: cloneValue(p.Options)}
		}
	}
	if c.DryRun != nil {
		v := *c.DryRun
		out.DryRun = &v
	}
	if c.CI != nil {
		v := *c.CI
		out.CI = &v
	}
	return &out
}

func cloneValue[T any](v T) T {
	var out any
	switch t := any(v).(type) {
	case map[string]any:
		if t == nil {
			return v
		}
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		out = m
	case []any:
		if t == nil {
			return v
		}
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = cloneValue(val)
		}
		out = s
	default:
		return v
	}
	return out.(T)
}
