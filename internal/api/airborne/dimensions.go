package airborne

import (
	"context"
	"net/http"

	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

const dimensionBasePath = "/api/organisations/applications/dimension"

// CreateDimensionInput is the body of a dimension create call.
type CreateDimensionInput struct {
	Tenant        `json:"-"`
	Dimension     string        `json:"dimension"`
	Description   string        `json:"description"`
	DimensionType DimensionType `json:"dimension_type"`
	DependsOn     string        `json:"depends_on,omitempty"`
}

// CreateDimension adds a targeting dimension to the application.
func (c *Client) CreateDimension(ctx context.Context, in CreateDimensionInput) (*Dimension, error) {
	if in.Dimension == "" {
		return nil, cerrors.NewValidationError("dimension", "is required")
	}
	if in.DimensionType == "" {
		in.DimensionType = DimensionStandard
	}
	if in.DimensionType != DimensionStandard && in.DimensionType != DimensionCohort {
		return nil, cerrors.NewValidationError("dimension_type", "must be standard or cohort")
	}
	if in.DimensionType == DimensionCohort && in.DependsOn == "" {
		return nil, cerrors.NewValidationError("depends_on", "is required for cohort dimensions")
	}
	r := newRequest(http.MethodPost, dimensionBasePath+"/create", scopeApplication, in.Tenant)
	r.body = in
	var out Dimension
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDimensionsInput pages through dimensions.
type ListDimensionsInput struct {
	Tenant
	Page  int
	Count int
}

// ListDimensions lists the application's dimensions.
func (c *Client) ListDimensions(ctx context.Context, in ListDimensionsInput) (*DimensionList, error) {
	r := newRequest(http.MethodGet, dimensionBasePath+"/list", scopeApplication, in.Tenant)
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
	var out DimensionList
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDimensionInput changes a dimension's priority.
type UpdateDimensionInput struct {
	Tenant       `json:"-"`
	Dimension    string `json:"-"`
	Position     int    `json:"position"`
	ChangeReason string `json:"change_reason"`
}

// UpdateDimension sends PUT .../dimension/{dimension} with the new position.
func (c *Client) UpdateDimension(ctx context.Context, in UpdateDimensionInput) (*Dimension, error) {
	name, err := pathParam("dimension", in.Dimension)
	if err != nil {
		return nil, cerrors.NewValidationError("dimension", "is required")
	}
	if in.Position < 0 {
		return nil, cerrors.NewValidationError("position", "must not be negative")
	}
	if in.ChangeReason == "" {
		return nil, cerrors.NewValidationError("change_reason", "is required")
	}
	r := newRequest(http.MethodPut, dimensionBasePath+"/"+name, scopeApplication, in.Tenant)
	r.body = in
	var out Dimension
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDimensionInput selects the dimension to delete.
type DeleteDimensionInput struct {
	Tenant
	Dimension string
}

// DeleteDimension removes a dimension.
func (c *Client) DeleteDimension(ctx context.Context, in DeleteDimensionInput) error {
	name, err := pathParam("dimension", in.Dimension)
	if err != nil {
		return cerrors.NewValidationError("dimension", "is required")
	}
	r := newRequest(http.MethodDelete, dimensionBasePath+"/"+name, scopeApplication, in.Tenant)
	return c.do(ctx, r, nil)
}

// CreateReleaseViewInput saves a named dimension filter.
type CreateReleaseViewInput struct {
	Tenant     `json:"-"`
	Name       string                 `json:"name"`
	Dimensions []ReleaseViewDimension `json:"dimensions"`
}

// CreateReleaseView creates a release view.
func (c *Client) CreateReleaseView(ctx context.Context, in CreateReleaseViewInput) (*ReleaseView, error) {
	if in.Name == "" {
		return nil, cerrors.NewValidationError("name", "is required")
	}
	if in.Dimensions == nil {
		in.Dimensions = []ReleaseViewDimension{}
	}
	r := newRequest(http.MethodPost, dimensionBasePath+"/release-view", scopeApplication, in.Tenant)
	r.body = in
	var out ReleaseView
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReleaseViewsInput pages through release views.
type ListReleaseViewsInput struct {
	Tenant
	Page  int
	Count int
}

// ListReleaseViews lists the application's release views.
func (c *Client) ListReleaseViews(ctx context.Context, in ListReleaseViewsInput) (*ReleaseViewList, error) {
	r := newRequest(http.MethodGet, dimensionBasePath+"/release-view/list", scopeApplication, in.Tenant)
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
	var out ReleaseViewList
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReleaseViewInput selects a release view by id.
type ReleaseViewInput struct {
	Tenant
	ID string
}

// GetReleaseView fetches a release view.
func (c *Client) GetReleaseView(ctx context.Context, in ReleaseViewInput) (*ReleaseView, error) {
	id, err := pathParam("view_id", in.ID)
	if err != nil {
		return nil, cerrors.NewValidationError("id", "is required")
	}
	r := newRequest(http.MethodGet, dimensionBasePath+"/release-view/"+id, scopeApplication, in.Tenant)
	var out ReleaseView
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReleaseViewInput replaces a release view's name and filters.
type UpdateReleaseViewInput struct {
	Tenant     `json:"-"`
	ID         string                 `json:"-"`
	Name       string                 `json:"name"`
	Dimensions []ReleaseViewDimension `json:"dimensions"`
}

// UpdateReleaseView updates a release view.
func (c *Client) UpdateReleaseView(ctx context.Context, in UpdateReleaseViewInput) (*ReleaseView, error) {
	id, err := pathParam("view_id", in.ID)
	if err != nil {
		return nil, cerrors.NewValidationError("id", "is required")
	}
	if in.Name == "" {
		return nil, cerrors.NewValidationError("name", "is required")
	}
	if in.Dimensions == nil {
		in.Dimensions = []ReleaseViewDimension{}
	}
	r := newRequest(http.MethodPut, dimensionBasePath+"/release-view/"+id, scopeApplication, in.Tenant)
	r.body = in
	var out ReleaseView
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReleaseView deletes a release view.
func (c *Client) DeleteReleaseView(ctx context.Context, in ReleaseViewInput) error {
	id, err := pathParam("view_id", in.ID)
	if err != nil {
		return cerrors.NewValidationError("id", "is required")
	}
	r := newRequest(http.MethodDelete, dimensionBasePath+"/release-view/"+id, scopeApplication, in.Tenant)
	return c.do(ctx, r, nil)
}
