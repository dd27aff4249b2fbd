package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invox/internal/domain"
	"invox/internal/pipeline"
)

// ParseHandler exposes the parsing pipeline over HTTP.
type ParseHandler struct {
	pipeline *pipeline.Pipeline
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(p *pipeline.Pipeline) *ParseHandler {
	return &ParseHandler{pipeline: p}
}

// ParseRequest is the request body for POST /parse.
type ParseRequest struct {
	Text   string `json:"text"`
	Markup string `json:"markup"`
}

// Parse handles POST /api/v1/parse: runs the pipeline on caller-supplied
// OCR text and returns the full outcome.
func (h *ParseHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with text and optional markup")
		return
	}

	outcome, err := h.pipeline.Process(c.Request.Context(), domain.RawDocument{
		Text:   req.Text,
		Markup: req.Markup,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, outcome)
}

// ParseReferenceRequest is the request body for POST /parse/reference.
type ParseReferenceRequest struct {
	DocumentRef string `json:"document_ref" binding:"required"`
}

// ParseReference handles POST /api/v1/parse/reference: resolves a document
// reference through the OCR collaborator first, then parses.
func (h *ParseHandler) ParseReference(c *gin.Context) {
	var req ParseReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with document_ref")
		return
	}

	outcome, err := h.pipeline.ProcessReference(c.Request.Context(), req.DocumentRef)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, outcome)
}
