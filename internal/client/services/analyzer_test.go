package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajanimaurya/internship-recommender/internal/client/acquire"
	"github.com/rajanimaurya/internship-recommender/internal/client/camera"
	"github.com/rajanimaurya/internship-recommender/internal/client/models"
	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

type fakeAPI struct {
	analyzed   []string
	result     *models.AnalysisResult
	analyzeErr error
}

func (f *fakeAPI) Analyze(_ context.Context, fileName, _ string, _ []byte) (*models.AnalysisResult, error) {
	f.analyzed = append(f.analyzed, fileName)
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.result, nil
}

func (f *fakeAPI) Recommend(context.Context) (*models.AnalysisResult, error) {
	return f.result, nil
}

type fakeHistory struct {
	records []models.AnalysisRecord
	addErr  error
}

func (f *fakeHistory) Add(_ context.Context, rec *models.AnalysisRecord) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeHistory) List(context.Context, int) ([]models.AnalysisRecord, error) {
	return f.records, nil
}

func (f *fakeHistory) Clear(context.Context) error {
	f.records = nil
	return nil
}

func TestAnalyze_NoSelection(t *testing.T) {
	ctrl := acquire.New(camera.Denied{})
	api := &fakeAPI{}
	svc := NewAnalyzerService(ctrl, api, &fakeHistory{}, testLogger())

	_, err := svc.Analyze(context.Background())
	assert.ErrorIs(t, err, common.ErrNoFileSelected)
	assert.Empty(t, api.analyzed)
	assert.Equal(t, acquire.Idle, ctrl.State())
}

func TestAnalyze_SubmitsSelectionAndRecordsHistory(t *testing.T) {
	ctrl := acquire.New(camera.Denied{})
	require.NoError(t, ctrl.Drop("resume.pdf", common.MIMEPDF, []byte("%PDF")))

	api := &fakeAPI{result: &models.AnalysisResult{
		Summary: "ok",
		Opportunities: []models.Opportunity{
			{Title: "Backend Developer Intern", MatchScore: 90},
		},
	}}
	hist := &fakeHistory{}
	svc := NewAnalyzerService(ctrl, api, hist, testLogger())

	result, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Summary)
	assert.Equal(t, []string{"resume.pdf"}, api.analyzed)

	require.Len(t, hist.records, 1)
	assert.Equal(t, "Backend Developer Intern", hist.records[0].TopTitle)
	assert.Equal(t, 90, hist.records[0].TopScore)
}

func TestAnalyze_HistoryFailureDoesNotFailAnalysis(t *testing.T) {
	ctrl := acquire.New(camera.Denied{})
	require.NoError(t, ctrl.Drop("resume.txt", common.MIMEText, []byte("text")))

	var logBuf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&logBuf, nil)))

	api := &fakeAPI{result: &models.AnalysisResult{Summary: "ok"}}
	svc := NewAnalyzerService(ctrl, api, &fakeHistory{addErr: errors.New("disk full")}, logger)

	_, err := svc.Analyze(context.Background())
	assert.NoError(t, err)

	// The failure must not vanish silently.
	assert.Contains(t, logBuf.String(), "analysis not recorded in history")
	assert.Contains(t, logBuf.String(), "disk full")
}

func TestAnalyze_APIFailureKeepsSelection(t *testing.T) {
	ctrl := acquire.New(camera.Denied{})
	require.NoError(t, ctrl.Drop("resume.pdf", common.MIMEPDF, []byte("%PDF")))

	api := &fakeAPI{analyzeErr: errors.New("server down")}
	svc := NewAnalyzerService(ctrl, api, &fakeHistory{}, testLogger())

	_, err := svc.Analyze(context.Background())
	assert.Error(t, err)
	assert.Equal(t, acquire.FileSelected, ctrl.State())
}

func TestHistory(t *testing.T) {
	hist := &fakeHistory{records: []models.AnalysisRecord{{FileName: "r.pdf"}}}
	svc := NewAnalyzerService(acquire.New(camera.Denied{}), &fakeAPI{}, hist, testLogger())

	list, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
