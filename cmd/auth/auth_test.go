package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	saved := config.Global
	config.Global = config.GlobalFlags{ConfigPath: filepath.Join(t.TempDir(), "auth.json")}
	t.Cleanup(func() { config.Global = saved })
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/issue":
			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			if in["client_id"] != "id" || in["client_secret"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"bad credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"issued","token_type":"Bearer","expires_in":3600,"refresh_token":"r1"}`))
		case "/api/users":
			if r.Header.Get("Authorization") != "Bearer issued" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"invalid token"}`))
				return
			}
			_, _ = w.Write([]byte(`{"user_id":"u1","organisations":[{"name":"acme","applications":[{"application":"shop","organisation":"acme"}]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := GetRootCmd(cmdutils.NewFactory())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginWithClientCredentials(t *testing.T) {
	setup(t)
	srv := newServer(t)

	out, err := run(t, "login", "--non-interactive", "--api-url", srv.URL+"/",
		"--client-id", "id", "--client-secret", "secret", "--org", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully logged into Airborne")

	saved, err := config.LoadAuthConfig()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, saved.BaseURL)
	assert.Equal(t, "issued", saved.Token)
	assert.Equal(t, "r1", saved.RefreshToken)
	assert.Equal(t, "acme", saved.Organisation)
	assert.False(t, saved.Expired())

	out, err = run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "u1")
	assert.Contains(t, out, "acme: shop")

	_, err = run(t, "logout")
	require.NoError(t, err)
	_, err = config.LoadAuthConfig()
	assert.Error(t, err)
}

func TestLoginErrors(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "bad secret",
			args:    []string{"--client-id", "id", "--client-secret", "nope"},
			wantErr: "login failed",
		},
		{
			name:    "missing secret",
			args:    []string{"--client-id", "id"},
			wantErr: "client id and secret are required",
		},
		{
			name:    "rejected token",
			args:    []string{"--api-token", "stale"},
			wantErr: "credential validation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			args := append([]string{"login", "--non-interactive", "--api-url", srv.URL}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, err = config.LoadAuthConfig()
			assert.Error(t, err)
		})
	}
}

func TestStatusNotLoggedIn(t *testing.T) {
	setup(t)
	_, err := run(t, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}
