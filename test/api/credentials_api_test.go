package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/indago/internal/models"
)

// TestCredentialsRoundTrip saves credentials over the API and verifies the
// response and subsequent reads mask every secret.
func TestCredentialsRoundTrip(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.POST("/api/credentials", map[string]string{
		"linkedin_email":    "sales@example.com",
		"linkedin_password": "hunter2",
		"openai_api_key":    "sk-test-abc",
	})
	require.NoError(t, err, "Failed to save credentials")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved models.Credentials
	require.NoError(t, helper.ParseJSONResponse(resp, &saved))
	assert.Equal(t, "sales@example.com", saved.LinkedInEmail)
	assert.Equal(t, models.MaskedSecret, saved.LinkedInPassword)
	assert.Equal(t, models.MaskedSecret, saved.OpenAIAPIKey)

	resp, err = helper.GET("/api/credentials")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Credentials
	require.NoError(t, helper.ParseJSONResponse(resp, &fetched))
	assert.Equal(t, "sales@example.com", fetched.LinkedInEmail)
	assert.Equal(t, models.MaskedSecret, fetched.LinkedInPassword)
	assert.Empty(t, fetched.GeminiAPIKey, "Unset secrets stay empty")
}

// TestCredentialsMergeKeepsSecrets verifies that posting masked values back
// (as a UI round trip does) preserves the stored secrets.
func TestCredentialsMergeKeepsSecrets(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.POST("/api/credentials", map[string]string{
		"linkedin_email":    "first@example.com",
		"linkedin_password": "original-secret",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Echo the masked password back with a new email
	resp, err = helper.POST("/api/credentials", map[string]string{
		"linkedin_email":    "second@example.com",
		"linkedin_password": models.MaskedSecret,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err := env.App.StorageManager.CredentialsStorage().GetCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", stored.LinkedInEmail)
	assert.Equal(t, "original-secret", stored.LinkedInPassword, "Masked round trip must not clobber the stored secret")
}

// TestGetCredentialsEmpty verifies the endpoint returns an empty document
// before anything is saved.
func TestGetCredentialsEmpty(t *testing.T) {
	env := setupTestEnvironment(t)
	helper := env.NewHTTPTestHelper(t)

	resp, err := helper.GET("/api/credentials")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Credentials
	require.NoError(t, helper.ParseJSONResponse(resp, &fetched))
	assert.Empty(t, fetched.LinkedInEmail)
	assert.Empty(t, fetched.LinkedInPassword)
}
