package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/dbx"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/internships"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/refreshtokens"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/resumes"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/users"
)

// memManager is an in-memory RepositoryManager. The dbx handles passed to its
// accessors are ignored; the backing sql.DB exists only so dbx.WithTx has a
// real transaction to run.
type memManager struct {
	mu sync.Mutex

	usersByName map[string]*models.User
	tokens      map[string]*models.RefreshToken
	postings    map[int64]*models.Internship
	resumes     map[string]*models.Resume
	nextID      int64
}

func newMemManager() *memManager {
	return &memManager{
		usersByName: make(map[string]*models.User),
		tokens:      make(map[string]*models.RefreshToken),
		postings:    make(map[int64]*models.Internship),
		resumes:     make(map[string]*models.Resume),
	}
}

func (m *memManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memManager) Users(dbx.DBTX) users.Repository                 { return (*memUsers)(m) }
func (m *memManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return (*memTokens)(m) }
func (m *memManager) Internships(dbx.DBTX) internships.Repository     { return (*memPostings)(m) }
func (m *memManager) Resumes(dbx.DBTX) resumes.Repository             { return (*memResumes)(m) }

type memUsers memManager

func (m *memUsers) Create(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.usersByName[user.UserName]; ok {
		return nil, common.ErrAlreadyExists
	}
	m.nextID++
	user.ID = fmt.Sprintf("u-%d", m.nextID)
	m.usersByName[user.UserName] = user
	return user, nil
}

func (m *memUsers) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.usersByName[userName]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.usersByName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) UpdateProfile(_ context.Context, userID, location, category string, attempt int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.usersByName {
		if u.ID == userID {
			u.Location, u.Category, u.Attempt = location, category, attempt
			return nil
		}
	}
	return common.ErrNotFound
}

type memTokens memManager

func (m *memTokens) Create(_ context.Context, userID, token string, validity time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = &models.RefreshToken{Token: token, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (m *memTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return t, nil
}

func (m *memTokens) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

type memPostings memManager

func (m *memPostings) Upsert(_ context.Context, in *models.Internship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.postings {
		if p.Title == in.Title && p.Department == in.Department {
			in.ID = p.ID
			m.postings[p.ID] = in
			return nil
		}
	}
	m.nextID++
	in.ID = m.nextID
	m.postings[in.ID] = in
	return nil
}

func (m *memPostings) List(context.Context) ([]*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Internship
	for i := int64(1); i <= m.nextID; i++ {
		if p, ok := m.postings[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPostings) GetByID(_ context.Context, id int64) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.postings[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (m *memPostings) IncrementAllocated(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.postings[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Allocated++
	return nil
}

type memResumes memManager

func (m *memResumes) Create(_ context.Context, r *models.Resume) (*models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = fmt.Sprintf("r-%d", m.nextID)
	r.UploadedAt = time.Now()
	m.resumes[r.ID] = r
	return r, nil
}

func (m *memResumes) GetByID(_ context.Context, id string) (*models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r, nil
}

func (m *memResumes) GetLatestByUser(_ context.Context, userID string) (*models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.Resume
	for _, r := range m.resumes {
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.UploadedAt.After(latest.UploadedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, common.ErrNotFound
	}
	return latest, nil
}

// fakeStorage records stored payloads in memory.
type fakeStorage struct {
	mu     sync.Mutex
	stored map[string][]byte
	fail   bool
}

func newFakeStorage() *fakeStorage { return &fakeStorage{stored: make(map[string][]byte)} }

func (f *fakeStorage) Store(_ context.Context, _ string, payload []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", fmt.Errorf("storage unavailable")
	}
	key := fmt.Sprintf("key-%d", len(f.stored)+1)
	f.stored[key] = payload
	return key, nil
}

func (f *fakeStorage) GetPresignedGetURL(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stored[key]; !ok {
		return "", fmt.Errorf("unknown key %s", key)
	}
	return "https://storage.local/" + key, nil
}

// fakePublisher records allocation events.
type fakePublisher struct {
	mu     sync.Mutex
	events []AllocationEvent
}

func (f *fakePublisher) PublishAllocation(_ context.Context, ev AllocationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}
