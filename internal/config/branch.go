package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Branch is an entry of the branches list. It is written as a bare pattern
// when only Name is set, otherwise as an object.
type Branch struct {
	// Name is a branch name or glob pattern.
	Name string
	// Channel is the distribution channel releases from this branch go to.
	Channel string
	// Range restricts maintenance branches to a version range.
	Range string
	// Prerelease marks the branch as a pre-release branch.
	Prerelease Prerelease
}

// IsPrerelease reports whether the branch publishes pre-releases.
func (b Branch) IsPrerelease() bool {
	return b.Prerelease.Enabled
}

// Prerelease is either true (use the branch name as pre-release identifier)
// or an explicit identifier.
type Prerelease struct {
	Enabled bool
	ID      string
}

// Identifier returns the pre-release identifier for a branch named name.
func (p Prerelease) Identifier(name string) string {
	if !p.Enabled {
		return ""
	}
	if p.ID != "" {
		return p.ID
	}
	return name
}

type branchObject struct {
	Name       string          `json:"name"`
	Channel    string          `json:"channel,omitempty"`
	Range      string          `json:"range,omitempty"`
	Prerelease json.RawMessage `json:"prerelease,omitempty"`
}

// MarshalJSON implements json.Marshaler for Branch.
func (b Branch) MarshalJSON() ([]byte, error) {
	if b.Channel == "" && b.Range == "" && !b.Prerelease.Enabled {
		return json.Marshal(b.Name)
	}
	obj := branchObject{Name: b.Name, Channel: b.Channel, Range: b.Range}
	if b.Prerelease.Enabled {
		var err error
		if b.Prerelease.ID != "" {
			obj.Prerelease, err = json.Marshal(b.Prerelease.ID)
		} else {
			obj.Prerelease = json.RawMessage("true")
		}
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler for Branch.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*b = Branch{Name: name}
		return nil
	}

	var obj branchObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("branch must be a string or an object with a name")
	}
	out := Branch{Name: obj.Name, Channel: obj.Channel, Range: obj.Range}
	if len(obj.Prerelease) > 0 {
		p, err := parsePrerelease(obj.Prerelease)
		if err != nil {
			return fmt.Errorf("branch %q: %w", obj.Name, err)
		}
		out.Prerelease = p
	}
	*b = out
	return nil
}

func parsePrerelease(data json.RawMessage) (Prerelease, error) {
	var enabled bool
	if err := json.Unmarshal(data, &enabled); err == nil {
		return Prerelease{Enabled: enabled}, nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return Prerelease{}, errors.New("prerelease must be a boolean or an identifier")
	}
	if id == "" {
		return Prerelease{}, nil
	}
	return Prerelease{Enabled: true, ID: id}, nil
}
