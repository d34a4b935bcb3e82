package airborne

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	cerrors "github.com/juspay/airborne-cli/util/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const releaseResponse = `{
  "id": "rel-42",
  "created_at": "2025-06-01T10:00:00Z",
  "config": {"version": "3", "release_config_timeout": 4000, "boot_timeout": 2000, "properties": {"tenant_info": {}}},
  "package": {
    "name": "shop", "version": "7",
    "index": {"file_path": "index.android.bundle", "url": "https://cdn/index.android.bundle", "checksum": "abc"},
    "properties": {}, "important": [], "lazy": []
  },
  "resources": [],
  "experiment": {"experiment_id": "exp-1", "package_version": 7, "config_version": "3", "created_at": "2025-06-01T10:00:00Z", "traffic_percentage": 0, "status": "CREATED"},
  "dimensions": {"app_version": "1.2.0"}
}`

func TestCreateReleaseSerializesBodyAndHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateReleaseInput
		wantBody string
	}{
		{
			name: "package id with dimensions",
			input: CreateReleaseInput{
				Config: ReleaseConfigInput{
					BootTimeout:          2000,
					ReleaseConfigTimeout: 4000,
					Properties:           map[string]any{"theme": "dark"},
				},
				PackageID:  "pkg-7",
				Dimensions: map[string]any{"app_version": "1.2.0", "cohort": nil},
			},
			wantBody: `{
				"config": {"boot_timeout": 2000, "release_config_timeout": 4000, "properties": {"theme": "dark"}},
				"package_id": "pkg-7",
				"dimensions": {"app_version": "1.2.0"}
			}`,
		},
		{
			name: "package overrides and resources",
			input: CreateReleaseInput{
				Config: ReleaseConfigInput{BootTimeout: 1000, ReleaseConfigTimeout: 1000},
				Package: &ReleasePackageInput{
					Important: []string{"file-1", "file-2"},
					Lazy:      []string{"file-3"},
				},
				Resources: []string{"file-9"},
			},
			wantBody: `{
				"config": {"boot_timeout": 1000, "release_config_timeout": 1000, "properties": {}},
				"package": {"important": ["file-1", "file-2"], "lazy": ["file-3"]},
				"resources": ["file-9"]
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newTestServer(t, http.StatusOK, releaseResponse)
			c := newTestClient(t, srv.URL)

			rel, err := c.CreateRelease(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, http.MethodPost, got.method)
			assert.Equal(t, "/api/releases", got.path)
			assert.Equal(t, "application/json", got.header.Get("Content-Type"))
			assert.Equal(t, "acme", got.header.Get(HeaderOrganisation))
			assert.Equal(t, "shop", got.header.Get(HeaderApplication))
			assert.Equal(t, "Bearer test-token", got.header.Get("Authorization"))
			assert.JSONEq(t, tt.wantBody, got.body)

			assert.Equal(t, "rel-42", rel.ID)
			assert.Equal(t, "7", rel.Package.Version)
			require.NotNil(t, rel.Experiment)
			assert.Equal(t, "exp-1", rel.Experiment.ExperimentID)
		})
	}
}

func TestGetReleaseEscapesID(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, releaseResponse)
	c := newTestClient(t, srv.URL)

	_, err := c.GetRelease(context.Background(), GetReleaseInput{ReleaseID: "rel 42"})
	require.NoError(t, err)
	assert.Equal(t, "/api/releases/rel%2042", got.path)
}

func TestListReleasesQueryAndDimensionHeader(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, `{"data":[],"total_pages":1,"total_items":0}`)
	c := newTestClient(t, srv.URL)

	_, err := c.ListReleases(context.Background(), ListReleasesInput{
		Page:       1,
		Count:      20,
		Status:     StatusInProgress,
		Dimensions: map[string]string{"os": "android", "app_version": "1.2.0"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/releases/list", got.path)
	assert.Equal(t, "count=20&page=1&status=inprogress", got.query)
	assert.Equal(t, "app_version=1.2.0;os=android", got.header.Get(HeaderDimension))

	_, err = c.ListReleases(context.Background(), ListReleasesInput{Status: "paused"})
	assert.Error(t, err)
}

func TestDimensionHeaderRejectsSeparators(t *testing.T) {
	h, err := DimensionHeader(nil)
	require.NoError(t, err)
	assert.Empty(t, h)

	for _, dims := range []map[string]string{
		{"os": "android;ios"},
		{"os": "a=b"},
		{"o;s": "android"},
		{"o=s": "android"},
		{"": "android"},
	} {
		_, err := DimensionHeader(dims)
		var vErr *cerrors.ValidationError
		require.True(t, errors.As(err, &vErr), "dims %v", dims)
		assert.Equal(t, "dimension", vErr.Field)
	}

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)
	_, err = c.ListReleases(context.Background(), ListReleasesInput{Dimensions: map[string]string{"os": "android;x=y"}})
	require.Error(t, err)
	_, err = c.ServeRelease(context.Background(), ServeReleaseInput{Organisation: "acme", Application: "shop", Dimensions: map[string]string{"os": "a;b"}})
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestExperimentActions(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client) (*ExperimentActionResponse, error)
		wantPath string
		wantBody string
	}{
		{
			name: "ramp",
			call: func(c *Client) (*ExperimentActionResponse, error) {
				return c.RampRelease(context.Background(), RampReleaseInput{ReleaseID: "rel-42", TrafficPercentage: 25, ChangeReason: "canary"})
			},
			wantPath: "/organisations/applications/release/rel-42/ramp",
			wantBody: `{"traffic_percentage":25,"change_reason":"canary"}`,
		},
		{
			name: "ramp to zero keeps the field",
			call: func(c *Client) (*ExperimentActionResponse, error) {
				return c.RampRelease(context.Background(), RampReleaseInput{ReleaseID: "rel-42"})
			},
			wantPath: "/organisations/applications/release/rel-42/ramp",
			wantBody: `{"traffic_percentage":0}`,
		},
		{
			name: "conclude",
			call: func(c *Client) (*ExperimentActionResponse, error) {
				return c.ConcludeRelease(context.Background(), ConcludeReleaseInput{ReleaseID: "rel-42", ChosenVariant: "exp-1-experimental"})
			},
			wantPath: "/organisations/applications/release/rel-42/conclude",
			wantBody: `{"chosen_variant":"exp-1-experimental"}`,
		},
		{
			name: "discard",
			call: func(c *Client) (*ExperimentActionResponse, error) {
				return c.DiscardRelease(context.Background(), DiscardReleaseInput{ReleaseID: "rel-42", ChangeReason: "bad build"})
			},
			wantPath: "/organisations/applications/release/rel-42/discard",
			wantBody: `{"change_reason":"bad build"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newTestServer(t, http.StatusOK, `{"success":true,"message":"ok","experiment_id":"exp-1"}`)
			c := newTestClient(t, srv.URL)

			resp, err := tt.call(c)
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, http.MethodPost, got.method)
			assert.Equal(t, tt.wantPath, got.path)
			assert.JSONEq(t, tt.wantBody, got.body)
		})
	}
}

func TestServeReleaseIsPublic(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, `{"version":"3","config":{},"package":{"name":"shop","version":"7","index":{}},"resources":[]}`)
	c, err := NewClient(srv.URL, WithRetryMax(0))
	require.NoError(t, err)

	out, err := c.ServeRelease(context.Background(), ServeReleaseInput{Organisation: "acme", Application: "shop", V2: true})
	require.NoError(t, err)
	assert.Equal(t, "/release/v2/acme/shop", got.path)
	assert.Empty(t, got.header.Get("Authorization"))
	assert.Empty(t, got.header.Get(HeaderOrganisation))
	assert.Equal(t, "7", out.Package.Version)
}
