package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
	"github.com/rajanimaurya/internship-recommender/internal/server/services"
)

// Uploaded resumes are capped at 10 MiB.
const maxResumeBytes = 10 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondData(w, http.StatusOK, "ok", nil)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Location string `json:"location"`
	Category string `json:"category"`
	Attempt  int    `json:"attempt"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password, req.Location, req.Category, req.Attempt)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			respondError(w, http.StatusConflict, "username already taken")
			return
		}
		s.logger.Error(r.Context(), "register failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	respondData(w, http.StatusCreated, "registered", map[string]string{"id": user.ID, "username": user.UserName})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondData(w, http.StatusOK, "logged in", tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	respondData(w, http.StatusOK, "refreshed", tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type profileRequest struct {
	Location string `json:"location"`
	Category string `json:"category"`
	Attempt  int    `json:"attempt"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.users.UpdateProfile(r.Context(), userID, req.Location, req.Category, req.Attempt); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	respondData(w, http.StatusOK, "profile updated", nil)
}

func (s *Server) handleListInternships(w http.ResponseWriter, r *http.Request) {
	list, err := s.internships.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "listing internships failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "listing failed")
		return
	}
	respondData(w, http.StatusOK, fmt.Sprintf("%d internships", len(list)), list)
}

func (s *Server) handleSeedInternships(w http.ResponseWriter, r *http.Request) {
	n, err := s.internships.Seed(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "seeding internships failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "seeding failed")
		return
	}
	respondData(w, http.StatusOK, "internships refreshed", map[string]int{"count": n})
}

func (s *Server) currentUser(r *http.Request) (*models.User, error) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		return nil, common.ErrUnauthorized
	}
	return s.users.GetByID(r.Context(), userID)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read resume")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == common.MIMEOctet {
		mimeType = common.MIMEFromFilename(header.Filename)
	}

	result, err := s.recommend.Analyze(r.Context(), user, header.Filename, mimeType, payload)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnsupportedFileType):
			respondError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		case errors.Is(err, common.ErrEmptyResume):
			respondError(w, http.StatusUnprocessableEntity, "resume has no extractable text")
		case errors.Is(err, common.ErrUnreadableFile):
			respondError(w, http.StatusUnprocessableEntity, "could not extract text from resume")
		default:
			s.logger.Error(r.Context(), "analysis failed", "error", err.Error())
			respondError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	respondData(w, http.StatusOK, "resume analyzed", result)
}

func (s *Server) handleResumeURL(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	url, err := s.recommend.ResumeDownloadURL(r.Context(), user)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no stored resume payload")
			return
		}
		s.logger.Error(r.Context(), "resume url failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "resume url failed")
		return
	}

	respondData(w, http.StatusOK, "resume url", map[string]string{"url": url})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	result, err := s.recommend.Reanalyze(r.Context(), user)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no resume on file")
			return
		}
		s.logger.Error(r.Context(), "recommendation failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "recommendation failed")
		return
	}

	respondData(w, http.StatusOK, "recommendations", result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	result, err := s.recommend.Reanalyze(r.Context(), user)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no resume on file")
			return
		}
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	data, err := services.ExportXLSX(result)
	if err != nil {
		s.logger.Error(r.Context(), "xlsx export failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="recommendations.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type allocateRequest struct {
	InternshipID int64 `json:"internship_id"`
	MatchScore   int   `json:"match_score"`
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return
	}

	var req allocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.recommend.Allocate(r.Context(), user, req.InternshipID, req.MatchScore); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			respondError(w, http.StatusNotFound, "internship not found")
			return
		}
		s.logger.Error(r.Context(), "allocation failed", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "allocation failed")
		return
	}

	respondData(w, http.StatusOK, "allocated", nil)
}
