// Package semver provides the semantic-version bump levels a release rule
// can request from the release engine.
package semver

import (
	"fmt"
	"strings"
)

// ReleaseType represents which field of a semantic version a matching
// commit bumps. ReleaseTypeNone means the commit does not trigger a release.
type ReleaseType int

const (
	ReleaseTypeNone ReleaseType = iota
	ReleaseTypePatch
	ReleaseTypeMinor
	ReleaseTypeMajor
)

func (r ReleaseType) String() string {
	switch r {
	case ReleaseTypeNone:
		return "none"
	case ReleaseTypePatch:
		return "patch"
	case ReleaseTypeMinor:
		return "minor"
	case ReleaseTypeMajor:
		return "major"
	default:
		return "unknown"
	}
}

// IsValid reports whether r is one of the defined release types.
func (r ReleaseType) IsValid() bool {
	return r >= ReleaseTypeNone && r <= ReleaseTypeMajor
}

// ParseReleaseType parses a release type name. Matching is case-insensitive.
// "false", "none" and the empty string all mean no release.
func ParseReleaseType(s string) (ReleaseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "none":
		return ReleaseTypeNone, nil
	case "patch":
		return ReleaseTypePatch, nil
	case "minor":
		return ReleaseTypeMinor, nil
	case "major":
		return ReleaseTypeMajor, nil
	default:
		return ReleaseTypeNone, fmt.Errorf("unknown release type %q: expected false, patch, minor or major", s)
	}
}

// Higher returns the larger of two release types.
func Higher(a, b ReleaseType) ReleaseType {
	if b > a {
		return b
	}
	return a
}
