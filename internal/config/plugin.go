package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known plugin package names.
const (
	PluginCommitAnalyzer        = "@semantic-release/commit-analyzer"
	PluginReleaseNotesGenerator = "@semantic-release/release-notes-generator"
	PluginGitHub                = "@semantic-release/github"
	PluginNPM                   = "@semantic-release/npm"
	PluginGit                   = "@semantic-release/git"
	PluginChangelog             = "@semantic-release/changelog"
	PluginExec                  = "@semantic-release/exec"
)

// Plugin is a plugin reference. A nil Options map is written as a bare
// name; otherwise the reference is written as a [name, options] pair.
type Plugin struct {
	Name    string
	Options map[string]any
}

// NewPlugin builds a plugin reference whose options are the JSON form of
// options. A nil options value yields a bare reference.
func NewPlugin(name string, options any) (Plugin, error) {
	if options == nil {
		return Plugin{Name: name}, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return Plugin{}, fmt.Errorf("encoding options for %s: %w", name, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Plugin{}, fmt.Errorf("options for %s must be an object: %w", name, err)
	}
	return Plugin{Name: name, Options: m}, nil
}

// DecodeOptions decodes the plugin options into v. Plugins without options
// leave v untouched.
func (p Plugin) DecodeOptions(v any) error {
	if p.Options == nil {
		return nil
	}
	data, err := json.Marshal(p.Options)
	if err != nil {
		return fmt.Errorf("encoding options for %s: %w", p.Name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding options for %s: %w", p.Name, err)
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Plugin.
func (p Plugin) MarshalJSON() ([]byte, error) {
	if p.Options == nil {
		return json.Marshal(p.Name)
	}
	return json.Marshal([]any{p.Name, p.Options})
}

// UnmarshalJSON implements json.Unmarshaler for Plugin.
func (p *Plugin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Plugin{Name: name}
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.New("plugin must be a name or a [name, options] pair")
	}
	if len(pair) == 0 || len(pair) > 2 {
		return fmt.Errorf("plugin pair must have one or two elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &name); err != nil {
		return errors.New("plugin pair must start with the plugin name")
	}
	out := Plugin{Name: name}
	if len(pair) == 2 {
		var opts map[string]any
		if err := json.Unmarshal(pair[1], &opts); err != nil {
			return fmt.Errorf("options for plugin %q must be an object", name)
		}
		if opts == nil {
			opts = map[string]any{}
		}
		out.Options = opts
	}
	*p = out
	return nil
}
