// Package repomanager vends repository implementations and owns schema
// migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/rajanimaurya/internship-recommender/internal/dbx"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/internships"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/refreshtokens"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/resumes"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Internships(db dbx.DBTX) internships.Repository
	Resumes(db dbx.DBTX) resumes.Repository
}
