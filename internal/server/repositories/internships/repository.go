// Package internships persists internship postings.
package internships

import (
	"context"

	"github.com/rajanimaurya/internship-recommender/internal/server/models"
)

type Repository interface {
	// Upsert inserts a posting or refreshes an existing one matched on
	// (title, department).
	Upsert(ctx context.Context, in *models.Internship) error
	List(ctx context.Context) ([]*models.Internship, error)
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	IncrementAllocated(ctx context.Context, id int64) error
}
