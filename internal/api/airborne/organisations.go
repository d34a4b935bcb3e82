package airborne

import (
	"context"
	"net/http"

	cerrors "github.com/juspay/airborne-cli/util/common/errors"
)

// CreateOrganisation creates an organisation owned by the caller.
func (c *Client) CreateOrganisation(ctx context.Context, name string) (*Organisation, error) {
	if name == "" {
		return nil, cerrors.NewValidationError("name", "is required")
	}
	r := newRequest(http.MethodPost, "/api/organisations/create", scopeNone, Tenant{})
	r.body = map[string]string{"name": name}
	var out Organisation
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrganisations lists the organisations the caller can access.
func (c *Client) ListOrganisations(ctx context.Context) ([]Organisation, error) {
	r := newRequest(http.MethodGet, "/api/organisations", scopeNone, Tenant{})
	var out struct {
		Organisations []Organisation `json:"organisations"`
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.Organisations, nil
}

// RequestOrganisationInput asks the operators to provision an organisation.
type RequestOrganisationInput struct {
	OrganisationName string `json:"organisation_name"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AppStoreLink     string `json:"app_store_link"`
	PlayStoreLink    string `json:"play_store_link"`
}

// RequestOrganisation submits an organisation request.
func (c *Client) RequestOrganisation(ctx context.Context, in RequestOrganisationInput) (*OrganisationRequestResponse, error) {
	if in.OrganisationName == "" {
		return nil, cerrors.NewValidationError("organisation_name", "is required")
	}
	if in.Email == "" {
		return nil, cerrors.NewValidationError("email", "is required")
	}
	r := newRequest(http.MethodPost, "/api/organisations/request", scopeNone, Tenant{})
	r.body = in
	var out OrganisationRequestResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateApplicationInput creates an application in an organisation.
type CreateApplicationInput struct {
	Tenant      `json:"-"`
	Application string `json:"application"`
}

// CreateApplication creates an application. Only x-organisation is sent.
func (c *Client) CreateApplication(ctx context.Context, in CreateApplicationInput) (*Application, error) {
	if in.Application == "" {
		return nil, cerrors.NewValidationError("application", "is required")
	}
	r := newRequest(http.MethodPost, "/api/organisations/applications/create", scopeOrganisation, in.Tenant)
	r.body = in
	var out Application
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser returns the authenticated user and their organisations.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	r := newRequest(http.MethodGet, "/api/users", scopeNone, Tenant{})
	var out User
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueTokenInput exchanges client credentials for an access token.
type IssueTokenInput struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// IssueToken exchanges client credentials for a token. The server answers
// either with a user envelope or with the bare token.
func (c *Client) IssueToken(ctx context.Context, in IssueTokenInput) (*User, error) {
	if in.ClientID == "" {
		return nil, cerrors.NewValidationError("client_id", "is required")
	}
	if in.ClientSecret == "" {
		return nil, cerrors.NewValidationError("client_secret", "is required")
	}
	r := newRequest(http.MethodPost, "/api/token/issue", scopeNone, Tenant{})
	r.body = in
	var out struct {
		User
		UserToken
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	user := out.User
	if user.UserToken == nil && out.UserToken.AccessToken != "" {
		tok := out.UserToken
		user.UserToken = &tok
	}
	if user.UserToken == nil || user.UserToken.AccessToken == "" {
		return nil, cerrors.Wrap(cerrors.ErrUnauthorized, "token issue returned no access token")
	}
	return &user, nil
}
