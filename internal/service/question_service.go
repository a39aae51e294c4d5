package service

import (
	"context"
	"strings"

	"sebbi-server/internal/domain"
	apperrors "sebbi-server/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// Max concurrent fetches of context PDFs.
const contextFetchWorkers = 4

const academicPreamble = `You are a university professor and an expert in academic writing. ` +
	`Answer in the form of an academic essay with well-structured, cohesive paragraphs. ` +
	`Use formal but accessible language, highlight key concepts in **bold**, and include ` +
	`citations in APA 7th edition format when appropriate (in-text as (Author, Year), ` +
	`references as Author, A. (Year). Title. Publisher/URL). If you mention a web source, ` +
	`link it in markdown as [name](url). Use relevant examples, and for technical questions ` +
	`give detailed step-by-step explanations. Let the answer flow naturally as an essay, ` +
	`without predefined sections.`

const groundingInstruction = `Ground your answer in the attached documents: draw your claims ` +
	`from their content and cite them where relevant.`

const autocompletePreamble = `Continue the following text. Return only the continuation: do not ` +
	`repeat the input, do not add quotes, labels, or any formatting around it.`

type QuestionService struct {
	generator domain.TextGenerator
	fetcher   domain.Fetcher
	logger    domain.Logger
}

func NewQuestionService(
	generator domain.TextGenerator,
	fetcher domain.Fetcher,
	logger domain.Logger,
) *QuestionService {
	return &QuestionService{
		generator: generator,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// Answer generates a response to the user's text. When context URLs are
// given, each is fetched independently; sources that fail to load are
// skipped, and the answer is grounded in whatever loaded. Only when every
// source fails does the operation error out.
func (s *QuestionService) Answer(ctx context.Context, text string, contextURLs []string) (string, error) {
	if len(contextURLs) == 0 {
		prompt := academicPreamble + "\n\nUser question: " + text
		return s.generator.Generate(ctx, []domain.GenerationPart{domain.TextPart(prompt)})
	}

	payloads := make([][]byte, len(contextURLs))
	sem := make(chan struct{}, contextFetchWorkers)
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range contextURLs {
		i, url := i, url
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			data, err := s.fetcher.Fetch(gctx, url)
			if err != nil {
				// Per-source failure is not fatal, skip this source.
				s.logger.Warn("Failed to fetch context source", "url", url, "error", err)
				return nil
			}
			payloads[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, "context fetch cancelled", err)
	}

	parts := make([]domain.GenerationPart, 0, len(contextURLs)+1)
	for _, payload := range payloads {
		if payload == nil {
			continue
		}
		parts = append(parts, domain.BlobPart(payload, pdfMIMEType))
	}
	if len(parts) == 0 {
		return "", apperrors.New(apperrors.KindNoValidContext, "none of the context sources could be fetched")
	}

	s.logger.Info("Answering with context", "sources_requested", len(contextURLs), "sources_loaded", len(parts))

	prompt := academicPreamble + "\n\n" + groundingInstruction + "\n\nUser question: " + text
	parts = append(parts, domain.TextPart(prompt))
	return s.generator.Generate(ctx, parts)
}

// Autocomplete asks the model for a continuation of the partial text and
// returns it with surrounding whitespace trimmed. Whether the model truly
// avoided repeating the input is not validated.
func (s *QuestionService) Autocomplete(ctx context.Context, textInput string) (string, error) {
	prompt := autocompletePreamble + "\n\n" + textInput
	out, err := s.generator.Generate(ctx, []domain.GenerationPart{domain.TextPart(prompt)})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
