package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	// FormatJS is the CommonJS module form. It can be written but not read.
	FormatJS Format = "js"
	// FormatPackageJSON reads the "release" key of a package.json file.
	FormatPackageJSON Format = "package.json"
	// FormatAuto sniffs JSON or YAML, the way an extensionless .releaserc is read.
	FormatAuto Format = "auto"
)

var (
	// ErrScriptConfig is returned for JavaScript configuration files, which
	// only the engine itself can evaluate.
	ErrScriptConfig = errors.New("javascript configuration files can only be evaluated by the release engine")
	// ErrNoReleaseKey is returned when a package.json has no "release" key.
	ErrNoReleaseKey = errors.New(`package.json has no "release" key`)
)

// ParseFormat parses an output or input format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "js", "javascript", "cjs":
		return FormatJS, nil
	default:
		return "", fmt.Errorf("unknown format %q: expected json, yaml, toml or js", s)
	}
}

// FormatForPath infers the format of a configuration file from its name.
func FormatForPath(path string) (Format, error) {
	base := filepath.Base(path)
	switch base {
	case "package.json":
		return FormatPackageJSON, nil
	case ".releaserc":
		return FormatAuto, nil
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".js", ".cjs", ".mjs":
		return FormatJS, nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("cannot infer configuration format of %s", base)
	}
}

// LoadFromFile reads and parses a release configuration file.
func LoadFromFile(path string) (*Config, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatJS {
		return nil, fmt.Errorf("%s: %w", path, ErrScriptConfig)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := LoadFromBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger := log.WithComponent("config")
	logger.Debug().Str("path", path).Str("format", string(format)).Msg("loaded release configuration")
	return cfg, nil
}

// LoadFromBytes parses a release configuration in the given format.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func decodeDocument(data []byte, format Format) (map[string]any, error) {
	var doc map[string]any
	switch format {
	case FormatJSON:
		if err := decodeJSON(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case FormatAuto:
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			return decodeDocument(data, FormatJSON)
		}
		return decodeDocument(data, FormatYAML)
	case FormatPackageJSON:
		var pkg map[string]json.RawMessage
		if err := decodeJSON(data, &pkg); err != nil {
			return nil, fmt.Errorf("parsing package.json: %w", err)
		}
		raw, ok := pkg["release"]
		if !ok {
			return nil, ErrNoReleaseKey
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf(`parsing package.json "release" key: %w`, err)
		}
	case FormatJS:
		return nil, ErrScriptConfig
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// decodeJSON tolerates comments and trailing commas.
func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(jsonc.ToJSON(data), v)
}

// fromDocument converts a generic document into a Config. Every format goes
// through encoding/json so option values have the same Go types regardless
// of the source format.
func fromDocument(doc map[string]any) (*Config, error) {
	if unknown := unknownKeys(doc); len(unknown) > 0 {
		logger := log.WithComponent("config")
		logger.Warn().Strs("keys", unknown).Msg("ignoring unrecognized top-level keys")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func unknownKeys(doc map[string]any) []string {
	var keys []string
	for k := range doc {
		if !knownKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
