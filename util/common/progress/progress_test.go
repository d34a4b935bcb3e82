package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterReporter(&buf)
	r.Start("Uploading files")
	r.Step("index.android.bundle")
	r.Skip("assets/logo.png already uploaded")
	r.Error("fonts/a.ttf: 409 Conflict")
	r.Success("2 uploaded")
	r.End()

	assert.Equal(t, strings.Join([]string{
		"Uploading files...",
		"  - index.android.bundle",
		"  = assets/logo.png already uploaded",
		"  x fonts/a.ttf: 409 Conflict",
		"  + 2 uploaded",
		"",
	}, "\n"), buf.String())
}

func TestReaderPassesBytesThrough(t *testing.T) {
	body := strings.Repeat("a", 4096)
	r, done := Reader(int64(len(body)), strings.NewReader(body), "main.jsbundle")
	defer done()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestReportersSatisfyInterface(t *testing.T) {
	for _, r := range []Reporter{NewNopReporter(), NewConsoleReporter(), NewStyledReporter(), NewAutoReporter()} {
		assert.NotNil(t, r)
	}
}
