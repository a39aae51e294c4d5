package service

import (
	"context"
	"fmt"
	"strings"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"

	"cloud.google.com/go/vertexai/genai"
)

// VertexGenerator implements domain.TextGenerator using the Vertex AI
// Gemini API.
type VertexGenerator struct {
	client *genai.Client
	model  string
	logger domain.Logger
}

func NewVertexGenerator(
	ctx context.Context,
	projectID string,
	location string,
	model string,
	logger domain.Logger,
) (*VertexGenerator, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	return &VertexGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends the parts in order and returns the concatenated text of
// the first candidate.
func (g *VertexGenerator) Generate(ctx context.Context, parts []domain.GenerationPart) (string, error) {
	model := g.client.GenerativeModel(g.model)

	genParts := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			genParts = append(genParts, genai.Blob{MIMEType: p.MIMEType, Data: p.Data})
		} else {
			genParts = append(genParts, genai.Text(p.Text))
		}
	}

	resp, err := model.GenerateContent(ctx, genParts...)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUpstreamGeneration, "generation request failed", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.New(apperrors.KindUpstreamGeneration, "empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}
