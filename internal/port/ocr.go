package port

import "context"

// OCRResult carries extracted text plus optional structured markup of the
// same source.
type OCRResult struct {
	Text   string
	Markup string
}

// OCRService abstracts the upstream text-extraction collaborator. A failure
// here is fatal to the whole pipeline; there is nothing to extract from.
type OCRService interface {
	ExtractText(ctx context.Context, documentRef string) (*OCRResult, error)
}
