package packages

import (
	"net/http"
	"testing"

	"github.com/juspay/airborne-cli/cmd/cmdutils/cmdtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePackage(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodPost, "/api/packages", http.StatusOK,
		`{"version":7,"tag":"v42","index":"idx","files":["a","b"]}`)

	out, err := cmdtest.Run(t, GetRootCmd(srv.Factory(nil)), "create", "--index", "idx", "--files", "a,b", "--tag", "v42")
	require.NoError(t, err)
	assert.Contains(t, out, "Created package version 7 (version:7)")

	reqs := srv.Find(http.MethodPost, "/api/packages")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"index":"idx","tag":"v42","files":["a","b"]}`, string(reqs[0].Body))
}

func TestListPackages(t *testing.T) {
	srv := cmdtest.NewServer(t)
	srv.Handle(http.MethodGet, "/api/packages/list", http.StatusOK,
		`{"data":[{"version":7,"tag":"v42","index":"idx","files":["a","b"]}],"total_pages":1,"total_items":1}`)

	cmdtest.SetFormat(t, "table")
	out, err := cmdtest.Run(t, GetRootCmd(srv.Factory(nil)), "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "v42")
	assert.Contains(t, out, "2 files")

	reqs := srv.Find(http.MethodGet, "/api/packages/list")
	require.Len(t, reqs, 1)
	assert.Equal(t, "true", reqs[0].Query.Get("all"))
}
