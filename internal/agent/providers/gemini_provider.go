package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

var ErrEmptyResponse = errors.New("gemini returned no text")

type geminiSettings struct {
	temperature float32
}

type GeminiOption func(*geminiSettings)

// WithTemperature sets the sampling temperature. The default is 0 so the same
// classification prompt always gets the same verdict.
func WithTemperature(t float32) GeminiOption {
	return func(s *geminiSettings) {
		s.temperature = t
	}
}

// GeminiProvider sends every prompt as a single-turn request to one model.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string, options ...GeminiOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = defaultGeminiModel
	}

	return &GeminiProvider{
		client: client,
		model:  configureModel(client.GenerativeModel(modelName), options...),
	}, nil
}

func configureModel(model *genai.GenerativeModel, options ...GeminiOption) *genai.GenerativeModel {
	settings := geminiSettings{}
	for _, o := range options {
		o(&settings)
	}
	model.SetTemperature(settings.temperature)
	model.SetCandidateCount(1)
	return model
}

func (g *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("gemini refused the prompt: %w", err)
		}
		return "", err
	}
	return responseText(resp)
}

// responseText joins every text part of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

func (g *GeminiProvider) Close() {
	g.client.Close()
}
