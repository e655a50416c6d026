package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHealthCheck verifies the service starts against Badger storage and
// reports a healthy status with zeroed counters.
func TestHealthCheck(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.GET("/api/health")
	require.NoError(t, err, "Failed to call health endpoint")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status   string         `json:"status"`
		Version  string         `json:"version"`
		Jobs     map[string]int `json:"jobs"`
		Profiles int            `json:"profiles"`
	}
	require.NoError(t, helper.ParseJSONResponse(resp, &result))

	assert.Equal(t, "healthy", result.Status)
	assert.NotEmpty(t, result.Version)
	assert.Equal(t, 0, result.Jobs["total"])
	assert.Equal(t, 0, result.Jobs["running"])
	assert.Equal(t, 0, result.Profiles)
}

// TestAPIRoot verifies the service summary at the API root
func TestAPIRoot(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.GET("/api/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, helper.ParseJSONResponse(resp, &result))

	assert.Equal(t, "indago", result["service"])
	assert.Equal(t, "LinkedIn Lead Generation Tool API", result["message"])
}

// TestVersionEndpoint verifies version metadata is exposed
func TestVersionEndpoint(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.GET("/api/version")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]string
	require.NoError(t, helper.ParseJSONResponse(resp, &result))
	assert.NotEmpty(t, result["version"])
}

// TestUnknownAPIRouteReturnsJSON404 verifies unmatched API paths get the
// JSON not-found envelope rather than the default text response.
func TestUnknownAPIRouteReturnsJSON404(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.GET("/api/does-not-exist")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, helper.ParseJSONResponse(resp, &result))
	assert.Equal(t, "Not Found", result["error"])
	assert.Equal(t, "/api/does-not-exist", result["path"])
}

// TestCORSPreflight verifies OPTIONS requests short-circuit with
// permissive CORS headers.
func TestCORSPreflight(t *testing.T) {
	env := setupTestEnvironment(t)

	req, err := http.NewRequest("OPTIONS", env.Server.URL+"/api/scraping-jobs", nil)
	require.NoError(t, err)

	resp, err := env.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
