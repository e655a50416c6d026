package interfaces

import (
	"context"

	"github.com/ternarybob/indago/internal/models"
)

// QueryParser turns a free-text lead request into structured search
// criteria using the selected language-model backend.
//
// Parse is total: any provider failure (transport, malformed output,
// missing fields) is absorbed and the documented fallback query is
// returned instead. Downstream stages always receive a valid query.
type QueryParser interface {
	Parse(ctx context.Context, freeText string, provider string, apiKey string) models.StructuredQuery
}
