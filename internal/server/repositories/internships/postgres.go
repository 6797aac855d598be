package internships

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PostgresRepository) Upsert(ctx context.Context, in *models.Internship) error {
	skills, err := json.Marshal(in.RequiredSkills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	query :=
		`INSERT INTO internships (title, department, description, location, duration, stipend,
		                          required_skills, capacity, apply_url, source, scraped_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (title, department) DO UPDATE SET
		   description = EXCLUDED.description,
		   location = EXCLUDED.location,
		   duration = EXCLUDED.duration,
		   stipend = EXCLUDED.stipend,
		   required_skills = EXCLUDED.required_skills,
		   apply_url = EXCLUDED.apply_url,
		   source = EXCLUDED.source,
		   scraped_date = EXCLUDED.scraped_date
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		in.Title, in.Department, in.Description, in.Location, in.Duration, in.Stipend,
		skills, in.Capacity, in.ApplyURL, in.Source, in.ScrapedAt).Scan(&in.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Internship, error) {
	query :=
		`SELECT id, title, department, description, location, duration, stipend,
		        required_skills, capacity, allocated, apply_url, source, scraped_date
		 FROM internships
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Internship
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	query :=
		`SELECT id, title, department, description, location, duration, stipend,
		        required_skills, capacity, allocated, apply_url, source, scraped_date
		 FROM internships
		 WHERE id = $1
		 `

	row := r.db.QueryRowContext(ctx, query, id)
	in, err := scanInternship(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return in, nil
}

func (r *PostgresRepository) IncrementAllocated(ctx context.Context, id int64) error {
	query :=
		`UPDATE internships SET allocated = allocated + 1
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInternship(row rowScanner) (*models.Internship, error) {
	in := &models.Internship{}
	var skills []byte
	err := row.Scan(&in.ID, &in.Title, &in.Department, &in.Description, &in.Location,
		&in.Duration, &in.Stipend, &skills, &in.Capacity, &in.Allocated,
		&in.ApplyURL, &in.Source, &in.ScrapedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &in.RequiredSkills); err != nil {
			return nil, fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	return in, nil
}
