// Package gemini is the prompt-template backend: the mood and affirmation
// prompts are rendered from templates and Gemini is held to a response schema.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/model"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Provider talks to the Gemini API through google.golang.org/genai.
type Provider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewProvider creates a Gemini backend for apiKey. Each call is bounded by
// timeout; zero leaves only the caller's deadline.
func NewProvider(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	return newProvider(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, modelName, timeout)
}

func newProvider(ctx context.Context, cfg *genai.ClientConfig, modelName string, timeout time.Duration) (*Provider, error) {
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Provider{client: client, model: modelName, timeout: timeout}, nil
}

// Name identifies the backend in logs and metrics.
func (p *Provider) Name() string { return "gemini:" + p.model }

// AnalyzeMood renders the analysis template and asks for a schema-bound answer.
func (p *Provider) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysisResult, error) {
	prompt, err := llm.RenderAnalysisPrompt(text)
	if err != nil {
		return nil, llm.NewPermanentError(err)
	}
	out, err := p.generate(ctx, prompt, analysisSchema())
	if err != nil {
		return nil, err
	}
	return llm.DecodeAnalysis(out)
}

// GenerateAffirmation renders the affirmation template for a mood description.
func (p *Provider) GenerateAffirmation(ctx context.Context, mood string) (string, error) {
	prompt, err := llm.RenderAffirmationPrompt(mood)
	if err != nil {
		return "", llm.NewPermanentError(err)
	}
	out, err := p.generate(ctx, prompt, affirmationSchema())
	if err != nil {
		return "", err
	}
	return llm.DecodeAffirmation(out)
}

func (p *Provider) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	res, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return responseText(res)
}

// responseText extracts the first text part. A response without candidates
// means the prompt was blocked, which no retry will change.
func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", llm.NewPermanentError(llm.ErrEmptyResponse)
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

func analysisSchema() *genai.Schema {
	minConfidence, maxConfidence := 0.0, 1.0
	moods := make([]string, len(model.ProviderMoods))
	for i, m := range model.ProviderMoods {
		moods[i] = string(m)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"reply": {
				Type:        genai.TypeString,
				Description: "A short, kind, empathetic, and encouraging reply to the user.",
			},
			"mood": {
				Type:        genai.TypeString,
				Enum:        moods,
				Description: "The detected emotional state of the user.",
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Minimum:     &minConfidence,
				Maximum:     &maxConfidence,
				Description: "A 0-1 number representing the confidence in the mood detection.",
			},
			"suggested_quote": {
				Type:        genai.TypeString,
				Description: "A short uplifting quote or affirmation that matches the user's mood.",
			},
		},
		Required:         []string{"reply", "mood", "confidence", "suggested_quote"},
		PropertyOrdering: []string{"reply", "mood", "confidence", "suggested_quote"},
	}
}

func affirmationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"affirmation": {
				Type:        genai.TypeString,
				Description: "A personalized affirmation to uplift the user.",
			},
		},
		Required: []string{"affirmation"},
	}
}
