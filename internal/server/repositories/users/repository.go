// Package users persists applicant accounts.
package users

import (
	"context"

	"github.com/rajanimaurya/internship-recommender/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, location, category string, attempt int) error
}
