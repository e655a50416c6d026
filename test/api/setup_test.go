package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/app"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/server"
)

// testEnv runs the full application in-process behind an httptest server:
// real routes, middleware, handlers, services, and Badger storage.
type testEnv struct {
	App    *app.App
	Server *httptest.Server
}

// setupTestEnvironment builds the application against a temporary Badger
// directory and serves it via httptest. API key environment variables are
// cleared so provider resolution depends only on stored credentials.
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	for _, name := range []string{
		"INDAGO_OPENAI_API_KEY", "OPENAI_API_KEY",
		"INDAGO_CLAUDE_API_KEY", "ANTHROPIC_API_KEY",
		"INDAGO_GEMINI_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(name, "")
	}

	cfg := common.NewDefaultConfig()
	cfg.Storage.Badger.Path = t.TempDir()

	application, err := app.New(cfg, arbor.NewLogger())
	require.NoError(t, err, "Failed to initialize application")

	srv := server.New(application)
	ts := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		ts.Close()
		if err := application.Close(); err != nil {
			t.Logf("Failed to close application: %v", err)
		}
	})

	return &testEnv{App: application, Server: ts}
}

// httpHelper wraps simple JSON request/response plumbing for API tests
type httpHelper struct {
	t       *testing.T
	baseURL string
	client  *http.Client
}

// NewHTTPTestHelper creates a helper bound to the test server
func (env *testEnv) NewHTTPTestHelper(t *testing.T) *httpHelper {
	return &httpHelper{
		t:       t,
		baseURL: env.Server.URL,
		client:  env.Server.Client(),
	}
}

// GET issues a GET request against the test server
func (h *httpHelper) GET(path string) (*http.Response, error) {
	return h.client.Get(h.baseURL + path)
}

// POST issues a POST request with a JSON body against the test server
func (h *httpHelper) POST(path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return h.client.Post(h.baseURL+path, "application/json", bytes.NewReader(payload))
}

// ParseJSONResponse decodes the response body into out and closes it
func (h *httpHelper) ParseJSONResponse(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// ErrorMessage decodes the standard error envelope and returns its message
func (h *httpHelper) ErrorMessage(resp *http.Response) string {
	h.t.Helper()

	var body struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	require.NoError(h.t, h.ParseJSONResponse(resp, &body), "Failed to parse error response")
	return body.Error
}
