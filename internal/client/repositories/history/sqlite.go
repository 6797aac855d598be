package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/rajanimaurya/internship-recommender/internal/client/migrations"
	"github.com/rajanimaurya/internship-recommender/internal/client/models"
	"github.com/rajanimaurya/internship-recommender/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitDatabase opens the local SQLite database and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, err
	}
	return db, nil
}

// Add stores one history record and fills in its generated ID.
func (r *SQLiteRepository) Add(ctx context.Context, rec *models.AnalysisRecord) error {
	query := `INSERT INTO analyses (file_name, summary, top_title, top_score) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, rec.FileName, rec.Summary, rec.TopTitle, rec.TopScore)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, file_name, summary, top_title, top_score, created_at
		FROM analyses ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select analyses: %w", err)
	}
	defer rows.Close()

	var result []models.AnalysisRecord
	for rows.Next() {
		var item models.AnalysisRecord
		if err := rows.Scan(&item.ID, &item.FileName, &item.Summary, &item.TopTitle, &item.TopScore, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Clear wipes the whole history.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	query := `DELETE FROM analyses`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear analyses: %w", err)
	}
	return nil
}
