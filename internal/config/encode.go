package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Marshal renders the configuration in the given format. Top-level keys are
// written as branches, plugins, preset, followed by optional keys.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(cfg)
	case FormatYAML:
		return marshalYAML(cfg)
	case FormatTOML:
		return marshalTOML(cfg)
	case FormatJS:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}
		var buf bytes.Buffer
		buf.WriteString("module.exports = ")
		buf.Write(data)
		buf.WriteString(";\n")
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteFile atomically writes the configuration to path.
func WriteFile(path string, cfg *Config, format Format) error {
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func marshalJSON(cfg *Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return append(data, '\n'), nil
}

// marshalYAML re-reads the JSON form as a YAML node tree, which keeps the
// JSON key order, then switches the tree to block style.
func marshalYAML(cfg *Config) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("converting config to yaml: %w", err)
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// tomlDocument fixes the TOML key order to the record's order; go-toml
// writes struct fields in declaration order, unlike map keys.
type tomlDocument struct {
	Branches      []any  `json:"branches" toml:"branches,inline"`
	Plugins       []any  `json:"plugins" toml:"plugins,inline"`
	Preset        string `json:"preset" toml:"preset,omitempty"`
	TagFormat     string `json:"tagFormat" toml:"tagFormat,omitempty"`
	RepositoryURL string `json:"repositoryUrl" toml:"repositoryUrl,omitempty"`
	DryRun        *bool  `json:"dryRun" toml:"dryRun,omitempty"`
	CI            *bool  `json:"ci" toml:"ci,omitempty"`
}

// marshalTOML encodes the generic form of the configuration.
func marshalTOML(cfg *Config) ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc tomlDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("converting config to toml: %w", err)
	}
	for i, b := range doc.Branches {
		doc.Branches[i] = normalizeNumbers(b)
	}
	for i, p := range doc.Plugins {
		doc.Plugins[i] = normalizeNumbers(p)
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding toml: %w", err)
	}
	return out, nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}
