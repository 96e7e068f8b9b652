package semver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReleaseType_String(t *testing.T) {
	tests := []struct {
		release ReleaseType
		want    string
	}{
		{ReleaseTypeNone, "none"},
		{ReleaseTypePatch, "patch"},
		{ReleaseTypeMinor, "minor"},
		{ReleaseTypeMajor, "major"},
		{ReleaseType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.release.String())
		})
	}
}

func TestParseReleaseType(t *testing.T) {
	tests := []struct {
		input string
		want  ReleaseType
	}{
		{"patch", ReleaseTypePatch},
		{"Minor", ReleaseTypeMinor},
		{"MAJOR", ReleaseTypeMajor},
		{"false", ReleaseTypeNone},
		{"none", ReleaseTypeNone},
		{"", ReleaseTypeNone},
		{" patch ", ReleaseTypePatch},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReleaseType(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseReleaseType_Invalid(t *testing.T) {
	_, err := ParseReleaseType("prerelease")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown release type")
}

func TestHigher(t *testing.T) {
	require.Equal(t, ReleaseTypeMinor, Higher(ReleaseTypePatch, ReleaseTypeMinor))
	require.Equal(t, ReleaseTypeMajor, Higher(ReleaseTypeMajor, ReleaseTypeNone))
	require.Equal(t, ReleaseTypePatch, Higher(ReleaseTypePatch, ReleaseTypePatch))
}

func TestReleaseType_JSON(t *testing.T) {
	data, err := json.Marshal(ReleaseTypeNone)
	require.NoError(t, err)
	require.Equal(t, "false", string(data))

	data, err = json.Marshal(ReleaseTypeMinor)
	require.NoError(t, err)
	require.Equal(t, `"minor"`, string(data))

	var r ReleaseType
	require.NoError(t, json.Unmarshal([]byte(`"major"`), &r))
	require.Equal(t, ReleaseTypeMajor, r)

	require.NoError(t, json.Unmarshal([]byte(`false`), &r))
	require.Equal(t, ReleaseTypeNone, r)

	require.Error(t, json.Unmarshal([]byte(`true`), &r))
	require.Error(t, json.Unmarshal([]byte(`3`), &r))
	require.Error(t, json.Unmarshal([]byte(`"huge"`), &r))
}

func TestReleaseType_JSONInvalidValue(t *testing.T) {
	_, err := json.Marshal(ReleaseType(42))
	require.Error(t, err)
}

func TestReleaseType_YAML(t *testing.T) {
	var holder struct {
		Release ReleaseType `yaml:"release"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("release: Patch"), &holder))
	require.Equal(t, ReleaseTypePatch, holder.Release)

	require.NoError(t, yaml.Unmarshal([]byte("release: false"), &holder))
	require.Equal(t, ReleaseTypeNone, holder.Release)

	require.Error(t, yaml.Unmarshal([]byte("release: true"), &holder))
	require.Error(t, yaml.Unmarshal([]byte("release: sometimes"), &holder))

	holder.Release = ReleaseTypeMinor
	out, err := yaml.Marshal(holder)
	require.NoError(t, err)
	require.Equal(t, "release: minor\n", string(out))

	holder.Release = ReleaseTypeNone
	out, err = yaml.Marshal(holder)
	require.NoError(t, err)
	require.Equal(t, "release: false\n", string(out))
}
