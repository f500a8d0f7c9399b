package genflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeminiGenerate(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`{"score":`, `1}`)}
	g := &GeminiGenerator{models: fake, model: "test-model"}

	raw, err := g.Generate(context.Background(), Request{Prompt: "hi", Output: reportOutSchema})
	require.NoError(t, err)
	assert.Equal(t, `{"score":1}`, string(raw))
	assert.Equal(t, "test-model", fake.model)
	assert.Equal(t, "hi", fake.prompt)
	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	require.NotNil(t, fake.config.ResponseSchema)
	assert.Equal(t, "Scored report", fake.config.ResponseSchema.Description)
}

func TestGeminiGenerateStripsCodeFence(t *testing.T) {
	fake := &fakeModels{resp: textResponse("```json\n{\"score\":2}\n```")}
	g := &GeminiGenerator{models: fake, model: "m"}
	raw, err := g.Generate(context.Background(), Request{Output: reportOutSchema})
	require.NoError(t, err)
	assert.Equal(t, `{"score":2}`, string(raw))
}

func TestGeminiGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeModels
	}{
		{"api error", &fakeModels{err: errors.New("503")}},
		{"no candidates", &fakeModels{resp: &genai.GenerateContentResponse{}}},
		{"nil response", &fakeModels{}},
		{"blank text", &fakeModels{resp: textResponse("  ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GeminiGenerator{models: tt.fake, model: "m"}
			_, err := g.Generate(context.Background(), Request{})
			assert.Error(t, err)
		})
	}
}

func TestGenaiSchema(t *testing.T) {
	s := GenaiSchema(reportInSchema)
	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"title", "items"}, s.Required)
	assert.Equal(t, []string{"title", "note", "items"}, s.PropertyOrdering)

	note := s.Properties["note"]
	require.NotNil(t, note)
	require.NotNil(t, note.Nullable)
	assert.True(t, *note.Nullable)

	items := s.Properties["items"]
	assert.Equal(t, genai.TypeArray, items.Type)
	require.NotNil(t, items.Items)
	assert.Equal(t, genai.TypeObject, items.Items.Type)
	assert.Equal(t, genai.TypeNumber, items.Items.Properties["value"].Type)
	assert.Equal(t, "Item value", items.Items.Properties["value"].Description)

	assert.Nil(t, GenaiSchema(nil))
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "")
	assert.Error(t, err)
}
