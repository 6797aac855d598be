package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/dbx"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, resume *models.Resume) (*models.Resume, error) {
	query :=
		`INSERT INTO resumes (user_id, file_name, mime_type, size, storage_key, parsed)
	     VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		resume.UserID, resume.FileName, resume.MimeType, resume.Size,
		resume.StorageKey, resume.Parsed).Scan(&resume.ID, &resume.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return resume, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Resume, error) {
	query :=
		`SELECT id, user_id, file_name, mime_type, size, storage_key, parsed, uploaded_at
		 FROM resumes
		 WHERE id = $1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetLatestByUser(ctx context.Context, userID string) (*models.Resume, error) {
	query :=
		`SELECT id, user_id, file_name, mime_type, size, storage_key, parsed, uploaded_at
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC
		 LIMIT 1
		 `
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Resume, error) {
	resume := &models.Resume{}
	err := row.Scan(&resume.ID, &resume.UserID, &resume.FileName, &resume.MimeType,
		&resume.Size, &resume.StorageKey, &resume.Parsed, &resume.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return resume, nil
}
