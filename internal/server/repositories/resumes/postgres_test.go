package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow("r-1", now)
	mock.ExpectQuery(`INSERT\s+INTO\s+resumes`).
		WithArgs("u-1", "resume.pdf", "application/pdf", int64(1024), "users/2026/1/1/key", []byte(`{}`)).
		WillReturnRows(rows)

	r := &models.Resume{
		UserID: "u-1", FileName: "resume.pdf", MimeType: "application/pdf",
		Size: 1024, StorageKey: "users/2026/1/1/key", Parsed: []byte(`{}`),
	}
	got, err := repo.Create(context.Background(), r)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "r-1" || !got.UploadedAt.Equal(now) {
		t.Fatalf("unexpected resume: %+v", got)
	}
}

func TestGetLatestByUser_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "file_name", "mime_type", "size", "storage_key", "parsed", "uploaded_at"}).
		AddRow("r-2", "u-1", "resume.pdf", "application/pdf", int64(2048), "key", []byte(`{"has_cgpa":true}`), now)
	mock.ExpectQuery(`SELECT\s+id,\s*user_id`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.GetLatestByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetLatestByUser error: %v", err)
	}
	if got.ID != "r-2" || got.Size != 2048 {
		t.Fatalf("unexpected resume: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,\s*user_id`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
