// Package resumes persists uploaded resume metadata and parsed profiles.
package resumes

import (
	"context"

	"github.com/rajanimaurya/internship-recommender/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, resume *models.Resume) (*models.Resume, error)
	GetByID(ctx context.Context, id string) (*models.Resume, error)
	GetLatestByUser(ctx context.Context, userID string) (*models.Resume, error)
}
