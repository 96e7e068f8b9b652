package semver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ReleaseTypeNone is written as the boolean false, matching the engine's
// "release: false" convention. All other values are lowercase strings.

// MarshalJSON implements json.Marshaler for ReleaseType.
func (r ReleaseType) MarshalJSON() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot marshal release type %d", int(r))
	}
	if r == ReleaseTypeNone {
		return []byte("false"), nil
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler for ReleaseType.
func (r *ReleaseType) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return r.fromBool(b)
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("release type must be false or a string, got %s", string(data))
	}
	parsed, err := ParseReleaseType(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for ReleaseType.
func (r ReleaseType) MarshalYAML() (interface{}, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("cannot marshal release type %d", int(r))
	}
	if r == ReleaseTypeNone {
		return false, nil
	}
	return r.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ReleaseType.
func (r *ReleaseType) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!bool" {
		b, err := strconv.ParseBool(value.Value)
		if err != nil {
			return err
		}
		return r.fromBool(b)
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseReleaseType(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r *ReleaseType) fromBool(b bool) error {
	if b {
		return errors.New("release type true is not valid: use patch, minor or major")
	}
	*r = ReleaseTypeNone
	return nil
}
