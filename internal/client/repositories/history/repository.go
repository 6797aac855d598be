// Package history stores past analysis runs in the client's local SQLite
// database.
package history

import (
	"context"

	"github.com/rajanimaurya/internship-recommender/internal/client/models"
)

// Repository is the local analysis-history store.
type Repository interface {
	Add(ctx context.Context, rec *models.AnalysisRecord) error
	List(ctx context.Context, limit int) ([]models.AnalysisRecord, error)
	Clear(ctx context.Context) error
}
