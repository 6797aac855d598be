// Package api is the HTTP client for the recommendation server. It speaks
// the server's JSON envelope, keeps the token pair, and exposes one method
// per endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"github.com/rajanimaurya/internship-recommender/internal/client/models"
	"github.com/rajanimaurya/internship-recommender/internal/common"
)

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client talks to one server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// IsLoggedIn reports whether a token pair is held.
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

// Logout drops the held token pair.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = "", ""
}

func (c *Client) setTokens(t tokenResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = t.AccessToken, t.RefreshToken
}

// do sends a request and decodes the envelope. On 401 it rotates the refresh
// token once and retries before giving up.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, authed bool) (*envelope, error) {
	resp, err := c.send(ctx, method, path, body, contentType, authed)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && authed {
		resp.Body.Close()
		if err := c.Refresh(ctx); err != nil {
			return nil, common.ErrUnauthorized
		}
		if resp, err = c.send(ctx, method, path, body, contentType, authed); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp)
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType string, authed bool) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		c.mu.Lock()
		token := c.accessToken
		c.mu.Unlock()
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%s: %w", msg, common.ErrUnauthorized)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", msg, common.ErrNotFound)
		case http.StatusConflict:
			return nil, fmt.Errorf("%s: %w", msg, common.ErrAlreadyExists)
		case http.StatusUnsupportedMediaType:
			return nil, fmt.Errorf("%s: %w", msg, common.ErrUnsupportedFileType)
		default:
			return nil, fmt.Errorf("server error: %s", msg)
		}
	}
	return &env, nil
}

func jsonBody(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil, "", false)
	return err
}

// Register creates an account with an optional applicant profile.
func (c *Client) Register(ctx context.Context, username, password, location, category string, attempt int) error {
	body := jsonBody(map[string]any{
		"username": username,
		"password": password,
		"location": location,
		"category": category,
		"attempt":  attempt,
	})
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", body, "application/json", false)
	return err
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := jsonBody(map[string]string{"username": username, "password": password})
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, "application/json", false)
	if err != nil {
		return err
	}
	var t tokenResponse
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return fmt.Errorf("decode tokens: %w", err)
	}
	c.setTokens(t)
	return nil
}

// Refresh rotates the refresh token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return common.ErrUnauthorized
	}

	body := jsonBody(map[string]string{"refresh_token": refresh})
	resp, err := c.send(ctx, http.MethodPost, "/api/auth/refresh", body, "application/json", false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	env, err := decodeEnvelope(resp)
	if err != nil {
		return err
	}
	var t tokenResponse
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return fmt.Errorf("decode tokens: %w", err)
	}
	c.setTokens(t)
	return nil
}

// UpdateProfile stores affirmative-action profile fields on the server.
func (c *Client) UpdateProfile(ctx context.Context, location, category string, attempt int) error {
	body := jsonBody(map[string]any{"location": location, "category": category, "attempt": attempt})
	_, err := c.do(ctx, http.MethodPut, "/api/profile", body, "application/json", true)
	return err
}

// Internships lists the stored postings.
func (c *Client) Internships(ctx context.Context) ([]models.Internship, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/internships", nil, "", false)
	if err != nil {
		return nil, err
	}
	var list []models.Internship
	if err := json.Unmarshal(env.Data, &list); err != nil {
		return nil, fmt.Errorf("decode internships: %w", err)
	}
	return list, nil
}

// Analyze uploads one resume as multipart form data and returns the analysis.
func (c *Client) Analyze(ctx context.Context, fileName, mimeType string, payload []byte) (*models.AnalysisResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, fileName))
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPost, "/api/analyze", buf.Bytes(), mw.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}
	var result models.AnalysisResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &result, nil
}

// Recommend re-ranks against the server-stored resume.
func (c *Client) Recommend(ctx context.Context) (*models.AnalysisResult, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/recommend", nil, "", true)
	if err != nil {
		return nil, err
	}
	var result models.AnalysisResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &result, nil
}

// Export downloads the recommendations workbook (xlsx bytes).
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/recommend/export", nil, "", true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, err := decodeEnvelope(resp)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("export failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Allocate accepts a recommended posting.
func (c *Client) Allocate(ctx context.Context, internshipID int64, matchScore int) error {
	body := jsonBody(map[string]any{"internship_id": internshipID, "match_score": matchScore})
	_, err := c.do(ctx, http.MethodPost, "/api/allocate", body, "application/json", true)
	return err
}
