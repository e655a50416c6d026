package interfaces

import (
	"context"

	"github.com/ternarybob/indago/internal/models"
)

// CredentialsStorage holds the single credentials record used by the
// whole service: LinkedIn login plus provider API keys.
type CredentialsStorage interface {
	SaveCredentials(ctx context.Context, creds *models.Credentials) error
	GetCredentials(ctx context.Context) (*models.Credentials, error)
	HasCredentials(ctx context.Context) (bool, error)
}
