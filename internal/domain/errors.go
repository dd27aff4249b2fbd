package domain

import "errors"

var (
	// ErrEmptyInput rejects a request carrying neither text nor markup.
	ErrEmptyInput = errors.New("no text or markup to parse")

	// ErrUpstreamOCR marks the one unrecoverable failure class: the OCR
	// collaborator produced nothing to extract from.
	ErrUpstreamOCR = errors.New("upstream OCR service unavailable")

	// ErrNoCandidates signals that an extraction strategy found no usable
	// candidates for any critical field; it triggers the next cascade step
	// and never escapes the pipeline.
	ErrNoCandidates = errors.New("extraction produced no usable candidates")

	// ErrNoMarkup signals that a markup-based strategy was invoked without
	// usable markup.
	ErrNoMarkup = errors.New("no usable markup available")
)
