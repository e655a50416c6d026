package interfaces

import (
	"context"

	"github.com/ternarybob/indago/internal/models"
)

// Authenticator logs a browser session into LinkedIn.
//
// Login reports (false, nil) when the portal rejected the credentials
// or presented a checkpoint; an error is returned only for mechanical
// failures such as navigation timeouts.
type Authenticator interface {
	Login(ctx context.Context, session BrowserSession, creds *models.Credentials) (bool, error)
}

// LeadExtractor walks paginated people-search results in an
// authenticated session and returns scored candidate profiles.
//
// Search degrades rather than aborts: a page that fails to load or
// parse ends the walk and the profiles collected so far are returned.
type LeadExtractor interface {
	Search(ctx context.Context, session BrowserSession, query models.StructuredQuery, maxResults int) []models.CandidateProfile
}
