package command

import (
	"net/http"
	"testing"

	"github.com/juspay/airborne-cli/cmd/cmdutils/cmdtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewsPath = "/api/organisations/applications/dimension/release-view"

func TestCreateReleaseView(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodPost, viewsPath, http.StatusOK, `{"id":"v1","name":"android-beta","dimensions":[]}`)

	out, err := cmdtest.Run(t, NewCreateReleaseViewCmd(srv.Factory(nil)), "android-beta", "--dimension", "os=android,channel=beta")
	require.NoError(t, err)
	assert.Contains(t, out, "Created release view android-beta (v1)")

	reqs := srv.Find(http.MethodPost, viewsPath)
	require.Len(t, reqs, 1)
	assert.JSONEq(t,
		`{"name":"android-beta","dimensions":[{"key":"channel","value":"beta"},{"key":"os","value":"android"}]}`,
		string(reqs[0].Body))
}

func TestUpdateReleaseViewKeepsUnsetFields(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodGet, viewsPath+"/v1", http.StatusOK,
		`{"id":"v1","name":"android-beta","dimensions":[{"key":"os","value":"android"}]}`)
	srv.Handle(http.MethodPut, viewsPath+"/v1", http.StatusOK, `{"id":"v1","name":"android-ga","dimensions":[]}`)

	_, err := cmdtest.Run(t, NewUpdateReleaseViewCmd(srv.Factory(nil)), "v1", "--name", "android-ga")
	require.NoError(t, err)

	reqs := srv.Find(http.MethodPut, viewsPath+"/v1")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"name":"android-ga","dimensions":[{"key":"os","value":"android"}]}`, string(reqs[0].Body))
}

func TestListAndDeleteReleaseViews(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodGet, viewsPath+"/list", http.StatusOK,
		`{"data":[{"id":"v1","name":"android-beta","dimensions":[]}],"total_pages":1,"total_items":1}`)
	srv.Handle(http.MethodDelete, viewsPath+"/v1", http.StatusOK, ``)

	cmdtest.SetFormat(t, "table")
	out, err := cmdtest.Run(t, NewListReleaseViewCmd(srv.Factory(nil)), "--count", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "android-beta")
	reqs := srv.Find(http.MethodGet, viewsPath+"/list")
	require.Len(t, reqs, 1)
	assert.Equal(t, "5", reqs[0].Query.Get("count"))

	_, err = cmdtest.Run(t, NewDeleteReleaseViewCmd(srv.Factory(nil)), "v1", "--force")
	require.NoError(t, err)
	assert.Len(t, srv.Find(http.MethodDelete, viewsPath+"/v1"), 1)

	_, err = cmdtest.Run(t, NewGetReleaseViewCmd(srv.Factory(nil)), "missing")
	assert.Error(t, err)
}
