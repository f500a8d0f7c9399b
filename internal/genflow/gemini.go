package genflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator asks a Gemini model for a JSON reply constrained by the
// output descriptor.
type GeminiGenerator struct {
	models contentGenerator
	model  string
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGenerator{models: client.Models, model: model}, nil
}

func (g *GeminiGenerator) Model() string { return g.model }

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   GenaiSchema(req.Output),
	}
	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content with %s: %w", g.model, err)
	}
	text, err := replyText(resp)
	if err != nil {
		return nil, err
	}
	return []byte(stripCodeFence(text)), nil
}

func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errNoReply
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		if cand != nil && cand.FinishReason != "" {
			return "", fmt.Errorf("no content, finish reason %s", cand.FinishReason)
		}
		return "", errNoReply
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errors.New("reply has no text parts")
	}
	return b.String(), nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON in.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// GenaiSchema converts a descriptor into the response schema Gemini expects.
func GenaiSchema(d *Descriptor) *genai.Schema {
	if d == nil {
		return nil
	}
	s := objectSchema(d.Fields)
	s.Description = d.Description
	return s
}

func objectSchema(fields []Field) *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(fields)),
	}
	for _, f := range fields {
		s.Properties[f.Name] = fieldSchema(f)
		s.PropertyOrdering = append(s.PropertyOrdering, f.Name)
		if !f.Optional {
			s.Required = append(s.Required, f.Name)
		}
	}
	return s
}

func fieldSchema(f Field) *genai.Schema {
	var s *genai.Schema
	switch f.Kind {
	case KindText:
		s = &genai.Schema{Type: genai.TypeString}
	case KindNumber:
		s = &genai.Schema{Type: genai.TypeNumber}
	case KindBoolean:
		s = &genai.Schema{Type: genai.TypeBoolean}
	case KindList:
		s = &genai.Schema{Type: genai.TypeArray}
		if f.Elem != nil {
			s.Items = fieldSchema(*f.Elem)
		}
	case KindObject:
		s = objectSchema(f.Fields)
	default:
		s = &genai.Schema{Type: genai.TypeUnspecified}
	}
	s.Description = f.Description
	if f.Optional {
		s.Nullable = genai.Ptr(true)
	}
	return s
}
