// Package cmdtest runs commands against a recording API server in tests.
package cmdtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/juspay/airborne-cli/cmd/cmdutils"
	"github.com/juspay/airborne-cli/config"
	"github.com/juspay/airborne-cli/internal/api/airborne"
	"github.com/juspay/airborne-cli/module/airborne/devkit"

	"github.com/spf13/cobra"
)

// Request is one call received by the Server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is an httptest server with canned responses per method and path.
// Calls to unknown routes get a 404.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	routes   map[string]http.HandlerFunc
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{routes: map[string]http.HandlerFunc{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	h, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	h(w, r)
}

// HandleFunc routes method and path to fn.
func (s *Server) HandleFunc(method, path string, fn http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = fn
}

// Handle answers method and path with a fixed status and JSON body.
func (s *Server) Handle(method, path string, status int, body string) {
	s.HandleFunc(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Find returns the calls received for method and path.
func (s *Server) Find(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Factory returns a factory whose client talks to s as organisation "acme"
// and application "shop", without retries.
func (s *Server) Factory(runner devkit.Runner) *cmdutils.Factory {
	return &cmdutils.Factory{
		AirborneClient: func() *airborne.Client {
			c, err := airborne.NewClient(s.URL,
				airborne.WithToken("test-token"),
				airborne.WithOrganisation("acme"),
				airborne.WithApplication("shop"),
				airborne.WithRetryMax(0))
			if err != nil {
				panic(err)
			}
			return c
		},
		Runner: func() devkit.Runner { return runner },
	}
}

// SetFormat sets the output format for the duration of the test.
func SetFormat(t *testing.T, format string) {
	t.Helper()
	saved := config.Global
	config.Global.Format = format
	t.Cleanup(func() { config.Global = saved })
}

// Run executes cmd with args and returns what it wrote.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
