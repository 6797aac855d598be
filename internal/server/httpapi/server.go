package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rajanimaurya/internship-recommender/internal/logging"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
	"github.com/rajanimaurya/internship-recommender/internal/server/services"
)

// Service dependencies, narrowed to what the handlers call so tests can
// substitute fakes.
type userService interface {
	Register(ctx context.Context, username, password, location, category string, attempt int) (*models.User, error)
	Login(ctx context.Context, userName, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	UpdateProfile(ctx context.Context, userID, location, category string, attempt int) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type internshipService interface {
	List(ctx context.Context) ([]*models.Internship, error)
	Seed(ctx context.Context) (int, error)
}

type recommendService interface {
	Analyze(ctx context.Context, user *models.User, fileName, mimeType string, payload []byte) (*models.AnalysisResult, error)
	Reanalyze(ctx context.Context, user *models.User) (*models.AnalysisResult, error)
	ResumeDownloadURL(ctx context.Context, user *models.User) (string, error)
	Allocate(ctx context.Context, user *models.User, internshipID int64, matchScore int) error
}

// Server is the HTTP front of the recommendation service.
type Server struct {
	addr        string
	secretKey   []byte
	users       userService
	internships internshipService
	recommend   recommendService
	logger      logging.Logger
}

func NewServer(
	addr string,
	secretKey []byte,
	users userService,
	internships internshipService,
	recommend recommendService,
	logger logging.Logger,
) *Server {
	return &Server{
		addr:        addr,
		secretKey:   secretKey,
		users:       users,
		internships: internships,
		recommend:   recommend,
		logger:      logger,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/internships", s.handleListInternships).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/internships/refresh", s.handleSeedInternships).Methods(http.MethodPost)
	authed.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	authed.HandleFunc("/resume/url", s.handleResumeURL).Methods(http.MethodGet)
	authed.HandleFunc("/recommend", s.handleRecommend).Methods(http.MethodGet)
	authed.HandleFunc("/recommend/export", s.handleExport).Methods(http.MethodGet)
	authed.HandleFunc("/allocate", s.handleAllocate).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
