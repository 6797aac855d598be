package match

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Explainer turns a scored result into a candidate-facing explanation.
type Explainer interface {
	ExplainMatch(ctx context.Context, r Result) (string, error)
}

// TemplateExplainer renders explanations from Explain. It never fails.
type TemplateExplainer struct{}

func (TemplateExplainer) ExplainMatch(_ context.Context, r Result) (string, error) {
	return Explain(r), nil
}

// GeminiExplainer asks the Gemini API for a short natural-language
// explanation of a match. Failures fall back to the template text so
// recommendations are never blocked on the model.
type GeminiExplainer struct {
	client *genai.Client
	model  string
}

// NewGeminiExplainer creates a client against the Gemini API backend.
func NewGeminiExplainer(ctx context.Context, apiKey, model string) (*GeminiExplainer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiExplainer{client: client, model: model}, nil
}

func (g *GeminiExplainer) ExplainMatch(ctx context.Context, r Result) (string, error) {
	prompt := fmt.Sprintf(
		"You advise internship applicants. In 2-3 sentences, explain to a candidate why the "+
			"internship %q at %q received a match score of %.0f/100. "+
			"Matched skills: %s. Missing skills: %s. Text similarity: %.2f. "+
			"Be encouraging but honest, and do not invent requirements.",
		r.Posting.Title, r.Posting.Organization, r.Score,
		joinOrNone(r.MatchedSkills), joinOrNone(r.RuleReport.Skills.MissingSkills),
		r.Similarity,
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return Explain(r), fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Explain(r), nil
	}
	return text, nil
}

func joinOrNone(xs []string) string {
	if len(xs) == 0 {
		return "none"
	}
	return strings.Join(xs, ", ")
}
