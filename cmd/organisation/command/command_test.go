package command

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/juspay/airborne-cli/cmd/cmdutils/cmdtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrganisations(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodGet, "/api/organisations", http.StatusOK,
		`{"organisations":[{"name":"acme","applications":[{"application":"shop"},{"application":"web"}],"access":["admin"]}]}`)

	cmdtest.SetFormat(t, "table")
	out, err := cmdtest.Run(t, NewListOrganisationCmd(srv.Factory(nil)))
	require.NoError(t, err)
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "shop, web")
	assert.Contains(t, out, "Page 1 of 1 (Total: 1)")

	reqs := srv.Find(http.MethodGet, "/api/organisations")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer test-token", reqs[0].Header.Get("Authorization"))
	assert.Empty(t, reqs[0].Header.Get("x-organisation"))
}

func TestCreateOrganisation(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodPost, "/api/organisations/create", http.StatusOK, `{"name":"acme","applications":[]}`)

	cmdtest.SetFormat(t, "json")
	out, err := cmdtest.Run(t, NewCreateOrganisationCmd(srv.Factory(nil)), "acme")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "acme"`)

	reqs := srv.Find(http.MethodPost, "/api/organisations/create")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"name":"acme"}`, string(reqs[0].Body))
}

func TestRequestOrganisation(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodPost, "/api/organisations/request", http.StatusOK,
		`{"organisation_name":"acme","message":"We will get back to you"}`)

	out, err := cmdtest.Run(t, NewRequestOrganisationCmd(srv.Factory(nil)),
		"acme", "--name", "Jane", "--email", "jane@acme.dev", "--phone", "5550100")
	require.NoError(t, err)
	assert.Contains(t, out, "Requested organisation acme")
	assert.Contains(t, out, "We will get back to you")

	reqs := srv.Find(http.MethodPost, "/api/organisations/request")
	require.Len(t, reqs, 1)
	var body map[string]string
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, "acme", body["organisation_name"])
	assert.Equal(t, "jane@acme.dev", body["email"])
	assert.Equal(t, "5550100", body["phone"])

	_, err = cmdtest.Run(t, NewRequestOrganisationCmd(srv.Factory(nil)), "acme", "--name", "Jane")
	assert.Error(t, err)
}
