package domain

import "context"

// GenerationPart is one element of a generation request: either plain text
// or a binary attachment with its MIME type.
type GenerationPart struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart builds a text part.
func TextPart(text string) GenerationPart {
	return GenerationPart{Text: text}
}

// BlobPart builds a binary attachment part.
func BlobPart(data []byte, mimeType string) GenerationPart {
	return GenerationPart{Data: data, MIMEType: mimeType}
}

// TextGenerator wraps the generative-language API. Parts are sent in order
// and the model's text output is returned verbatim.
type TextGenerator interface {
	Generate(ctx context.Context, parts []GenerationPart) (string, error)
}

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// QuestionService defines free-form question answering, optionally grounded
// in PDF context sources, plus text autocompletion.
type QuestionService interface {
	Answer(ctx context.Context, text string, contextURLs []string) (string, error)
	Autocomplete(ctx context.Context, textInput string) (string, error)
}
