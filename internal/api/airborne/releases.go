package airborne

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

// ReleaseConfigInput is the config section of a release request.
type ReleaseConfigInput struct {
	BootTimeout          int            `json:"boot_timeout"`
	ReleaseConfigTimeout int            `json:"release_config_timeout"`
	Properties           map[string]any `json:"properties"`
}

// ReleasePackageInput overrides package contents when creating a release.
type ReleasePackageInput struct {
	Properties map[string]any `json:"properties,omitempty"`
	Important  []string       `json:"important,omitempty"`
	Lazy       []string       `json:"lazy,omitempty"`
}

// CreateReleaseInput is the body of POST /api/releases.
type CreateReleaseInput struct {
	Tenant      `json:"-"`
	Config      ReleaseConfigInput   `json:"config"`
	PackageID   string               `json:"package_id,omitempty"`
	Package     *ReleasePackageInput `json:"package,omitempty"`
	Dimensions  map[string]any       `json:"dimensions,omitempty"`
	Resources   []string             `json:"resources,omitempty"`
	SubPackages []string             `json:"sub_packages,omitempty"`
}

// MarshalJSON drops null dimension values and always sends a properties
// object.
func (in CreateReleaseInput) MarshalJSON() ([]byte, error) {
	type alias CreateReleaseInput
	out := alias(in)
	if out.Config.Properties == nil {
		out.Config.Properties = map[string]any{}
	}
	if len(in.Dimensions) > 0 {
		dims := make(map[string]any, len(in.Dimensions))
		for k, v := range in.Dimensions {
			if v != nil {
				dims[k] = v
			}
		}
		out.Dimensions = dims
	}
	return json.Marshal(out)
}

func (in CreateReleaseInput) validate() error {
	if in.Config.BootTimeout < 0 {
		return cerrors.NewValidationError("config.boot_timeout", "must not be negative")
	}
	if in.Config.ReleaseConfigTimeout < 0 {
		return cerrors.NewValidationError("config.release_config_timeout", "must not be negative")
	}
	return nil
}

// CreateRelease creates a release for the application.
func (c *Client) CreateRelease(ctx context.Context, in CreateReleaseInput) (*Release, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	r := newRequest(http.MethodPost, "/api/releases", scopeApplication, in.Tenant)
	r.body = in
	var out Release
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRelease replaces the overrides of an existing release.
func (c *Client) UpdateRelease(ctx context.Context, releaseID string, in CreateReleaseInput) (*Release, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	id, err := pathParam("release_id", releaseID)
	if err != nil {
		return nil, cerrors.NewValidationError("release_id", "is required")
	}
	r := newRequest(http.MethodPut, "/api/releases/"+id, scopeApplication, in.Tenant)
	r.body = in
	var out Release
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReleaseInput selects one release.
type GetReleaseInput struct {
	Tenant
	ReleaseID string
}

// GetRelease fetches a release by id.
func (c *Client) GetRelease(ctx context.Context, in GetReleaseInput) (*Release, error) {
	id, err := pathParam("release_id", in.ReleaseID)
	if err != nil {
		return nil, cerrors.NewValidationError("release_id", "is required")
	}
	r := newRequest(http.MethodGet, "/api/releases/"+id, scopeApplication, in.Tenant)
	var out Release
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReleasesInput filters the release listing.
type ListReleasesInput struct {
	Tenant
	Page   int
	Count  int
	All    bool
	Status ReleaseStatus
	// Dimensions is sent as the x-dimension header, "k=v;k2=v2".
	Dimensions map[string]string
}

// DimensionHeader renders dimensions as the x-dimension header value, keys
// sorted. The header has no escaping, so keys and values containing ';' or
// '=' are rejected.
func DimensionHeader(dims map[string]string) (string, error) {
	if len(dims) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := dims[k]
		if k == "" || strings.ContainsAny(k, ";=") {
			return "", cerrors.NewValidationError("dimension", fmt.Sprintf("key %q must be non-empty and not contain ';' or '='", k))
		}
		if strings.ContainsAny(v, ";=") {
			return "", cerrors.NewValidationError("dimension", fmt.Sprintf("value %q of %s must not contain ';' or '='", v, k))
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ";"), nil
}

// ListReleases lists releases, optionally filtered by status and dimensions.
func (c *Client) ListReleases(ctx context.Context, in ListReleasesInput) (*ReleaseList, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, cerrors.NewValidationError("status", "must be one of created, inprogress, concluded, discarded")
	}
	r := newRequest(http.MethodGet, "/api/releases/list", scopeApplication, in.Tenant)
	if in.Page > 0 {
		if err := r.setQuery("page", in.Page); err != nil {
			return nil, err
		}
	}
	if in.Count > 0 {
		if err := r.setQuery("count", in.Count); err != nil {
			return nil, err
		}
	}
	if in.All {
		if err := r.setQuery("all", true); err != nil {
			return nil, err
		}
	}
	if in.Status != "" {
		if err := r.setQuery("status", string(in.Status)); err != nil {
			return nil, err
		}
	}
	h, err := DimensionHeader(in.Dimensions)
	if err != nil {
		return nil, err
	}
	if h != "" {
		r.header.Set(HeaderDimension, h)
	}
	var out ReleaseList
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RampReleaseInput moves experiment traffic to the new variant.
type RampReleaseInput struct {
	Tenant            `json:"-"`
	ReleaseID         string `json:"-"`
	TrafficPercentage int    `json:"traffic_percentage"`
	ChangeReason      string `json:"change_reason,omitempty"`
}

// ConcludeReleaseInput ends an experiment with the chosen variant.
type ConcludeReleaseInput struct {
	Tenant        `json:"-"`
	ReleaseID     string `json:"-"`
	ChosenVariant string `json:"chosen_variant"`
	ChangeReason  string `json:"change_reason,omitempty"`
}

// DiscardReleaseInput discards a release that has not started ramping.
type DiscardReleaseInput struct {
	Tenant       `json:"-"`
	ReleaseID    string `json:"-"`
	ChangeReason string `json:"change_reason,omitempty"`
}

const experimentBasePath = "/organisations/applications/release/"

func (c *Client) experimentAction(ctx context.Context, tenant Tenant, releaseID, action string, body any) (*ExperimentActionResponse, error) {
	id, err := pathParam("release_id", releaseID)
	if err != nil {
		return nil, cerrors.NewValidationError("release_id", "is required")
	}
	r := newRequest(http.MethodPost, experimentBasePath+id+"/"+action, scopeApplication, tenant)
	r.body = body
	var out ExperimentActionResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RampRelease sets the traffic percentage of a release experiment.
func (c *Client) RampRelease(ctx context.Context, in RampReleaseInput) (*ExperimentActionResponse, error) {
	if in.TrafficPercentage < 0 || in.TrafficPercentage > 100 {
		return nil, cerrors.NewValidationError("traffic_percentage", "must be between 0 and 100")
	}
	return c.experimentAction(ctx, in.Tenant, in.ReleaseID, "ramp", in)
}

// ConcludeRelease concludes a release experiment.
func (c *Client) ConcludeRelease(ctx context.Context, in ConcludeReleaseInput) (*ExperimentActionResponse, error) {
	if in.ChosenVariant == "" {
		return nil, cerrors.NewValidationError("chosen_variant", "is required")
	}
	return c.experimentAction(ctx, in.Tenant, in.ReleaseID, "conclude", in)
}

// DiscardRelease discards a release. The server only allows this while the
// release is still in the created state.
func (c *Client) DiscardRelease(ctx context.Context, in DiscardReleaseInput) (*ExperimentActionResponse, error) {
	return c.experimentAction(ctx, in.Tenant, in.ReleaseID, "discard", in)
}

// ServeReleaseInput selects the public release payload.
type ServeReleaseInput struct {
	Organisation string
	Application  string
	// V2 selects /release/v2, which resolves package groups.
	V2 bool
	// Toss pins the experiment bucket the server would otherwise randomise.
	Toss string
	// Dimensions are sent as the x-dimension header.
	Dimensions map[string]string
}

// ServeRelease fetches the release a device with the given dimensions would
// receive. It needs no authentication.
func (c *Client) ServeRelease(ctx context.Context, in ServeReleaseInput) (*ServedRelease, error) {
	org, err := pathParam("organisation", in.Organisation)
	if err != nil {
		return nil, cerrors.NewValidationError("organisation", "is required")
	}
	app, err := pathParam("application", in.Application)
	if err != nil {
		return nil, cerrors.NewValidationError("application", "is required")
	}
	prefix := "/release/"
	if in.V2 {
		prefix = "/release/v2/"
	}
	r := newRequest(http.MethodGet, prefix+org+"/"+app, scopeNone, Tenant{})
	if in.Toss != "" {
		if err := r.setQuery("toss", in.Toss); err != nil {
			return nil, err
		}
	}
	h, err := DimensionHeader(in.Dimensions)
	if err != nil {
		return nil, err
	}
	if h != "" {
		r.header.Set(HeaderDimension, h)
	}
	var out ServedRelease
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
