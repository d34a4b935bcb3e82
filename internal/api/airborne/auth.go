package airborne

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Modifier modifies an outgoing request before it is sent.
type Modifier interface {
	Modify(req *http.Request) error
}

// ModifierFunc adapts a function to the Modifier interface.
type ModifierFunc func(req *http.Request) error

func (f ModifierFunc) Modify(req *http.Request) error { return f(req) }

// NewBearerAuthorizer returns a modifier that sets "Authorization: Bearer"
// from the token source on every request.
func NewBearerAuthorizer(src oauth2.TokenSource) Modifier {
	return &bearerAuthorizer{source: src}
}

type bearerAuthorizer struct {
	source oauth2.TokenSource
}

func (a *bearerAuthorizer) Modify(req *http.Request) error {
	tok, err := a.source.Token()
	if err != nil {
		return fmt.Errorf("airborne: fetch token: %w", err)
	}
	if tok.AccessToken == "" {
		return nil
	}
	// Airborne issues keycloak tokens whose token_type is "Bearer" or empty.
	tok.TokenType = "Bearer"
	tok.SetAuthHeader(req)
	return nil
}

// StaticToken wraps a raw access token in a token source.
func StaticToken(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

// userAgentModifier stamps the CLI user agent.
type userAgentModifier string

func (u userAgentModifier) Modify(req *http.Request) error {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", string(u))
	}
	return nil
}
