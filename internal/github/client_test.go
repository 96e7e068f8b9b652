package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"
)

// writeJSON encodes v as JSON to the response writer. Panics on error (test only).
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

// newTestClient creates a test HTTP server and a GitHub client pointed at it.
func newTestClient(t *testing.T, mux *http.ServeMux) *gh.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)
	return client
}

func clearAuthEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN", "GH_APP_ID", "GH_APP_PRIVATE_KEY", "GH_APP_PRIVATE_KEY_PATH", "GITHUB_API_URL"} {
		t.Setenv(key, "")
	}
}

func TestResolveString_FlagTakesPrecedence(t *testing.T) {
	t.Setenv("TEST_VAR", "env_value")
	require.Equal(t, "flag_value", resolveString("flag_value", "TEST_VAR"))
}

func TestResolveString_FallsBackToEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "env_value")
	require.Equal(t, "env_value", resolveString("", "TEST_VAR"))
}

func TestResolveString_ReturnsEmptyWhenBothEmpty(t *testing.T) {
	os.Unsetenv("TEST_VAR_EMPTY")
	require.Equal(t, "", resolveString("", "TEST_VAR_EMPTY"))
}

func TestTokenFromEnv(t *testing.T) {
	clearAuthEnv(t)
	require.Equal(t, "", TokenFromEnv())

	t.Setenv("GH_TOKEN", "gh_token")
	require.Equal(t, "gh_token", TokenFromEnv())

	t.Setenv("GITHUB_TOKEN", "github_token")
	require.Equal(t, "github_token", TokenFromEnv(), "GITHUB_TOKEN wins over GH_TOKEN")
}

func TestNewClient_NoAuth(t *testing.T) {
	clearAuthEnv(t)

	_, err := NewClient(context.Background(), ClientConfig{})
	require.True(t, errors.Is(err, ErrNoCredentials))
}

func TestNewClient_TokenAuth(t *testing.T) {
	client, err := NewClient(context.Background(), ClientConfig{Token: "ghp_test_token"})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_TokenFromEnv(t *testing.T) {
	clearAuthEnv(t)
	t.Setenv("GH_TOKEN", "ghp_env_token")
	client, err := NewClient(context.Background(), ClientConfig{})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_TokenWithBaseURL(t *testing.T) {
	client, err := NewClient(context.Background(), ClientConfig{
		Token:   "ghp_test",
		BaseURL: "https://ghe.example.com/api/v3",
	})
	require.NoError(t, err)
	require.Equal(t, "https://ghe.example.com/api/v3/", client.BaseURL.String())
}

func TestNewClient_AppAuthMissingKey(t *testing.T) {
	clearAuthEnv(t)

	_, err := NewClient(context.Background(), ClientConfig{AppID: 12345})
	require.True(t, errors.Is(err, ErrNoCredentials))
}

func TestNewClient_AppAuthBadKeyFile(t *testing.T) {
	clearAuthEnv(t)

	_, err := NewClient(context.Background(), ClientConfig{
		AppID:      12345,
		AppKeyPath: "/nonexistent/key.pem",
		Owner:      "testorg",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating GitHub App transport")
}

func TestNewClient_AppAuthBadKeyContent(t *testing.T) {
	clearAuthEnv(t)

	_, err := NewClient(context.Background(), ClientConfig{
		AppID:  12345,
		AppKey: "not a pem key",
		Owner:  "testorg",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating GitHub App transport")
}

func TestNewClient_AppIDFromEnv(t *testing.T) {
	clearAuthEnv(t)
	t.Setenv("GH_APP_ID", "99999")
	t.Setenv("GH_APP_PRIVATE_KEY_PATH", "/nonexistent/key.pem")

	_, err := NewClient(context.Background(), ClientConfig{Owner: "testorg"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating GitHub App transport")
}

func TestNewClient_InvalidAppIDEnv(t *testing.T) {
	clearAuthEnv(t)
	t.Setenv("GH_APP_ID", "not-a-number")

	_, err := NewClient(context.Background(), ClientConfig{})
	require.True(t, errors.Is(err, ErrNoCredentials))
}

func TestFindInstallation_Found(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/app/installations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{
			{"id": int64(111), "account": map[string]interface{}{"login": "other-org"}},
			{"id": int64(222), "account": map[string]interface{}{"login": "target-org"}},
		})
	})
	client := newTestClient(t, mux)

	id, err := findInstallation(context.Background(), client, "target-org")
	require.NoError(t, err)
	require.Equal(t, int64(222), id)
}

func TestFindInstallation_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/app/installations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]interface{}{
			{"id": int64(111), "account": map[string]interface{}{"login": "other-org"}},
		})
	})
	client := newTestClient(t, mux)

	_, err := findInstallation(context.Background(), client, "missing-org")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no GitHub App installation found")
}

func TestFindInstallation_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/app/installations", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusUnauthorized)
	})
	client := newTestClient(t, mux)

	_, err := findInstallation(context.Background(), client, "any-org")
	require.Error(t, err)
	require.Contains(t, err.Error(), "listing GitHub App installations")
}

func TestIsNotFoundError(t *testing.T) {
	require.False(t, IsNotFoundError(nil))
	require.False(t, IsNotFoundError(errors.New("boom")))
	require.True(t, IsNotFoundError(&gh.ErrorResponse{Response: &http.Response{StatusCode: http.StatusNotFound}}))
	require.False(t, IsNotFoundError(&gh.ErrorResponse{Response: &http.Response{StatusCode: http.StatusForbidden}}))
}

func TestResolveBaseURL(t *testing.T) {
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3")
	require.Equal(t, "https://ghe.example.com/api/v3", ResolveBaseURL(""))
	require.Equal(t, "https://other/api", ResolveBaseURL("https://other/api"))
}
