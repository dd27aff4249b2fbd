package port

import (
	"context"

	"invox/internal/domain"
)

// InvoiceStore accepts a finished CanonicalInvoice plus its line items for
// persistence. It is never consulted during extraction.
type InvoiceStore interface {
	SaveInvoice(ctx context.Context, inv *domain.CanonicalInvoice) error
}
