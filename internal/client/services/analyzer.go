// Package services contains application services for the CLI client. This
// file defines the analyzer service: it hands the current selection to the
// server, records the outcome locally, and serves the history view.
package services

import (
	"context"

	"github.com/rajanimaurya/internship-recommender/internal/client/acquire"
	"github.com/rajanimaurya/internship-recommender/internal/client/models"
	"github.com/rajanimaurya/internship-recommender/internal/client/repositories/history"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
)

// analysisAPI is the slice of the API client the analyzer needs.
type analysisAPI interface {
	Analyze(ctx context.Context, fileName, mimeType string, payload []byte) (*models.AnalysisResult, error)
	Recommend(ctx context.Context) (*models.AnalysisResult, error)
}

// AnalyzerService bridges the acquisition controller, the server API, and
// the local history store.
type AnalyzerService struct {
	controller *acquire.Controller
	api        analysisAPI
	history    history.Repository
	logger     logging.Logger
}

func NewAnalyzerService(controller *acquire.Controller, api analysisAPI, hist history.Repository, logger logging.Logger) *AnalyzerService {
	return &AnalyzerService{controller: controller, api: api, history: hist, logger: logger}
}

// Analyze submits the currently selected file. With nothing selected it
// fails with common.ErrNoFileSelected and changes no state. A successful
// run is appended to local history; history failures do not fail the
// analysis.
func (s *AnalyzerService) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	file, err := s.controller.Selected()
	if err != nil {
		return nil, err
	}

	result, err := s.api.Analyze(ctx, file.Name, file.MimeType, file.Data)
	if err != nil {
		return nil, err
	}

	rec := &models.AnalysisRecord{
		FileName: file.Name,
		Summary:  result.Summary,
	}
	if len(result.Opportunities) > 0 {
		rec.TopTitle = result.Opportunities[0].Title
		rec.TopScore = result.Opportunities[0].MatchScore
	}
	if err := s.history.Add(ctx, rec); err != nil {
		s.logger.Warn(ctx, "analysis not recorded in history", "error", err.Error())
	}

	return result, nil
}

// Recommend re-ranks against the resume already stored on the server.
func (s *AnalyzerService) Recommend(ctx context.Context) (*models.AnalysisResult, error) {
	return s.api.Recommend(ctx)
}

// History returns the most recent local analysis records.
func (s *AnalyzerService) History(ctx context.Context, limit int) ([]models.AnalysisRecord, error) {
	return s.history.List(ctx, limit)
}
