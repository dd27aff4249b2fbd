package noop

import (
	"context"
	"log"

	"invox/internal/domain"
	"invox/internal/port"
)

type noopStore struct{}

// NewNoopStore creates a no-op InvoiceStore that logs saved invoices to stdout.
func NewNoopStore() port.InvoiceStore {
	return &noopStore{}
}

func (s *noopStore) SaveInvoice(_ context.Context, inv *domain.CanonicalInvoice) error {
	log.Printf("[NOOP STORE] invoice %q from %q, total %.2f %s, %d line items",
		inv.InvoiceNumber, inv.VendorName, inv.Total, inv.Currency, len(inv.LineItems))
	return nil
}
