package providers

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestResponseTextJoinsParts(t *testing.T) {
	text, err := responseText(candidate(genai.Text("Thanks for "), genai.Blob{MIMEType: "image/png"}, genai.Text("reading!")))
	require.NoError(t, err)
	assert.Equal(t, "Thanks for reading!", text)
}

func TestResponseTextEmpty(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"no content":    {Candidates: []*genai.Candidate{{}}},
		"no text":       candidate(genai.Blob{MIMEType: "image/png"}),
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := responseText(resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestConfigureModelDefaultsToZeroTemperature(t *testing.T) {
	model := configureModel(&genai.GenerativeModel{})
	require.NotNil(t, model.Temperature)
	assert.Zero(t, *model.Temperature)
	require.NotNil(t, model.CandidateCount)
	assert.Equal(t, int32(1), *model.CandidateCount)

	model = configureModel(&genai.GenerativeModel{}, WithTemperature(0.4))
	assert.InDelta(t, 0.4, *model.Temperature, 1e-6)
}
