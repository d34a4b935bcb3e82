package airborne

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

// CreatePackageInput groups uploaded files into a package.
type CreatePackageInput struct {
	Tenant `json:"-"`
	// Index is the file id of the JS bundle entry point.
	Index string   `json:"index"`
	Tag   string   `json:"tag,omitempty"`
	Files []string `json:"files"`
}

// CreatePackage creates a new package version.
func (c *Client) CreatePackage(ctx context.Context, in CreatePackageInput) (*Package, error) {
	if in.Index == "" {
		return nil, cerrors.NewValidationError("index", "is required")
	}
	if err := validateTag(in.Tag); err != nil {
		return nil, err
	}
	if in.Files == nil {
		in.Files = []string{}
	}
	r := newRequest(http.MethodPost, "/api/packages", scopeApplication, in.Tenant)
	r.body = in
	var out Package
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPackagesInput pages and searches packages.
type ListPackagesInput struct {
	Tenant
	Page   int
	Count  int
	Search string
	All    bool
}

// ListPackages lists the application's packages.
func (c *Client) ListPackages(ctx context.Context, in ListPackagesInput) (*PackageList, error) {
	r := newRequest(http.MethodGet, "/api/packages/list", scopeApplication, in.Tenant)
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
	if in.Search != "" {
		if err := r.setQuery("search", in.Search); err != nil {
			return nil, err
		}
	}
	if in.All {
		if err := r.setQuery("all", true); err != nil {
			return nil, err
		}
	}
	var out PackageList
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PackageKeyForVersion returns the package_id that selects a package by
// version, e.g. "version:7".
func PackageKeyForVersion(version int) string {
	return "version:" + strconv.Itoa(version)
}

// PackageKeyForTag returns the package_id that selects a package by tag.
func PackageKeyForTag(tag string) string {
	return "tag:" + tag
}

// ParsePackageKey accepts "version:N", "tag:T" or a bare version number and
// returns the canonical key.
func ParsePackageKey(s string) (string, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		if _, err := strconv.Atoi(s); err != nil {
			return "", cerrors.NewValidationError("package_id", "must be version:N, tag:T or a version number")
		}
		return "version:" + s, nil
	}
	switch kind {
	case "version":
		if _, err := strconv.Atoi(value); err != nil {
			return "", cerrors.NewValidationError("package_id", "version must be a number")
		}
	case "tag":
		if value == "" {
			return "", cerrors.NewValidationError("package_id", "tag must not be empty")
		}
	default:
		return "", cerrors.NewValidationError("package_id", "must be version:N or tag:T")
	}
	return s, nil
}
