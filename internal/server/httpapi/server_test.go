package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
	"github.com/rajanimaurya/internship-recommender/internal/server/auth"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
	"github.com/rajanimaurya/internship-recommender/internal/server/services"
)

var testSecret = []byte("httpapi-test-secret")

type fakeUsers struct {
	registerErr error
	loginErr    error
	user        *models.User
}

func (f *fakeUsers) Register(_ context.Context, username, _, _, _ string, _ int) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-1", UserName: username}, nil
}

func (f *fakeUsers) Login(context.Context, string, string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &services.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return &services.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (f *fakeUsers) UpdateProfile(context.Context, string, string, string, int) error { return nil }

func (f *fakeUsers) GetByID(context.Context, string) (*models.User, error) {
	if f.user == nil {
		return nil, common.ErrNotFound
	}
	return f.user, nil
}

type fakeInternships struct {
	list []*models.Internship
}

func (f *fakeInternships) List(context.Context) ([]*models.Internship, error) { return f.list, nil }
func (f *fakeInternships) Seed(context.Context) (int, error)                  { return len(f.list), nil }

type fakeRecommend struct {
	analyzeErr error
	result     *models.AnalysisResult
	allocated  []int64
}

func (f *fakeRecommend) Analyze(_ context.Context, _ *models.User, _, _ string, _ []byte) (*models.AnalysisResult, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.result, nil
}

func (f *fakeRecommend) Reanalyze(context.Context, *models.User) (*models.AnalysisResult, error) {
	if f.result == nil {
		return nil, common.ErrNotFound
	}
	return f.result, nil
}

func (f *fakeRecommend) ResumeDownloadURL(context.Context, *models.User) (string, error) {
	if f.result == nil {
		return "", common.ErrNotFound
	}
	return "https://storage.local/key-1", nil
}

func (f *fakeRecommend) Allocate(_ context.Context, _ *models.User, id int64, _ int) error {
	f.allocated = append(f.allocated, id)
	return nil
}

func newTestServer(users *fakeUsers, recommend *fakeRecommend) *Server {
	if users == nil {
		users = &fakeUsers{user: &models.User{ID: "u-1", UserName: "asha"}}
	}
	if recommend == nil {
		recommend = &fakeRecommend{}
	}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewServer(":0", testSecret,
		users,
		&fakeInternships{list: []*models.Internship{{ID: 1, Title: "Backend Developer Intern"}}},
		recommend,
		logger)
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("u-1", testSecret, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestHealth(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestRegister(t *testing.T) {
	srv := newTestServer(nil, nil)
	body := `{"username":"asha","password":"pass123","location":"Rampur village"}`
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_Validation(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"username":"asha"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestRegister_Conflict(t *testing.T) {
	srv := newTestServer(&fakeUsers{registerErr: common.ErrAlreadyExists}, nil)
	body := `{"username":"asha","password":"pass123"}`
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := newTestServer(&fakeUsers{loginErr: common.ErrUnauthorized}, nil)
	body := `{"username":"asha","password":"wrong"}`
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommend", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_BadToken(t *testing.T) {
	srv := newTestServer(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/recommend", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListInternships(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/internships", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, env.Message, "1 internships")
}

func multipartResume(t *testing.T, fieldFile, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="resume"; filename="`+fieldFile+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAnalyze_Success(t *testing.T) {
	recommend := &fakeRecommend{result: &models.AnalysisResult{
		Skills:  []string{"Python"},
		Summary: "ok",
	}}
	srv := newTestServer(nil, recommend)

	body, contentType := multipartResume(t, "resume.txt", common.MIMEText, []byte("some resume text"))
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}

func TestAnalyze_UnsupportedType(t *testing.T) {
	recommend := &fakeRecommend{analyzeErr: common.ErrUnsupportedFileType}
	srv := newTestServer(nil, recommend)

	body, contentType := multipartResume(t, "app.exe", "application/x-msdownload", []byte("MZ"))
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestAnalyze_UnreadablePayload(t *testing.T) {
	// A legacy .doc passes the allow-list but its text cannot be
	// extracted. The client must get a 4xx, not a server error.
	recommend := &fakeRecommend{
		analyzeErr: fmt.Errorf("text extraction: %w", common.ErrUnreadableFile),
	}
	srv := newTestServer(nil, recommend)

	ole := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
	body, contentType := multipartResume(t, "resume.doc", common.MIMEDoc, ole)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "could not extract text")
}

func TestAnalyze_MissingFile(t *testing.T) {
	srv := newTestServer(nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommend_NoResume(t *testing.T) {
	srv := newTestServer(nil, &fakeRecommend{})
	req := httptest.NewRequest(http.MethodGet, "/api/recommend", nil)
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport_ReturnsSpreadsheet(t *testing.T) {
	recommend := &fakeRecommend{result: &models.AnalysisResult{
		Skills:  []string{"Python"},
		Summary: "ok",
		Opportunities: []models.Opportunity{
			{Title: "Backend Developer Intern", Organization: "NIC", MatchScore: 90},
		},
	}}
	srv := newTestServer(nil, recommend)

	req := httptest.NewRequest(http.MethodGet, "/api/recommend/export", nil)
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestResumeURL(t *testing.T) {
	recommend := &fakeRecommend{result: &models.AnalysisResult{}}
	srv := newTestServer(nil, recommend)

	req := httptest.NewRequest(http.MethodGet, "/api/resume/url", nil)
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	assert.Contains(t, string(data), "storage.local")
}

func TestAllocate(t *testing.T) {
	recommend := &fakeRecommend{}
	srv := newTestServer(nil, recommend)

	req := httptest.NewRequest(http.MethodPost, "/api/allocate", strings.NewReader(`{"internship_id":1,"match_score":90}`))
	req.Header.Set("Authorization", bearer(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1}, recommend.allocated)
}
