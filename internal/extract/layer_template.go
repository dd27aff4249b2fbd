package extract

import (
	"encoding/json"
	"strings"

	"invox/internal/docstruct"
	"invox/internal/domain"
)

// DocumentKind is the template classification of a document.
type DocumentKind string

const (
	KindInvoice   DocumentKind = "invoice"
	KindStatement DocumentKind = "statement"
	KindReceipt   DocumentKind = "receipt"
)

const (
	templateItemConfidence  = 0.75
	templateTotalConfidence = 0.70
)

// ClassifyDocument sniffs keywords to decide which template applies.
// Invoice wins ties: it is the dominant document type for this pipeline.
func ClassifyDocument(text string) DocumentKind {
	lower := strings.ToLower(text)
	scores := map[DocumentKind]int{
		KindInvoice:   strings.Count(lower, "invoice"),
		KindReceipt:   strings.Count(lower, "receipt") + strings.Count(lower, "cash") + strings.Count(lower, "change due"),
		KindStatement: strings.Count(lower, "statement") + strings.Count(lower, "account summary"),
	}
	best, bestScore := KindInvoice, scores[KindInvoice]
	if scores[KindStatement] > bestScore {
		best, bestScore = KindStatement, scores[KindStatement]
	}
	if scores[KindReceipt] > bestScore {
		best = KindReceipt
	}
	return best
}

// templateLayer applies type-specific extraction after classifying the
// document by keyword sniffing.
func templateLayer(s *docstruct.Structure, text string) []domain.Candidate {
	switch ClassifyDocument(text) {
	case KindInvoice:
		return invoiceTemplate(s)
	case KindReceipt:
		return receiptTemplate(s)
	case KindStatement:
		return statementTemplate(s)
	}
	return nil
}

var itemHeaderWords = []string{"description", "item", "qty", "quantity", "product"}

// invoiceTemplate scans for a line-item table between an item header line
// and the first totals line.
func invoiceTemplate(s *docstruct.Structure) []domain.Candidate {
	start := -1
	for i, line := range s.Lines {
		lower := strings.ToLower(line)
		for _, w := range itemHeaderWords {
			if strings.Contains(lower, w) {
				start = i + 1
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil
	}

	var items []domain.LineItem
	for i := start; i < len(s.Lines); i++ {
		lower := strings.ToLower(s.Lines[i])
		if strings.Contains(lower, "subtotal") || strings.Contains(lower, "total") {
			break
		}
		cols := splitColumns(strings.TrimSpace(s.Lines[i]))
		if item, ok := parseItemRow(cols); ok {
			item.LineNumber = len(items) + 1
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return []domain.Candidate{{
		Field: domain.FieldLineItems, Value: string(encoded),
		Confidence: templateItemConfidence, Method: domain.MethodTemplate,
		Context: "invoice_items", Line: start,
	}}
}

// receiptTemplate treats the last amount on the page as the total.
func receiptTemplate(s *docstruct.Structure) []domain.Candidate {
	for i := len(s.Lines) - 1; i >= 0; i-- {
		if amt := inlineAmountRe.FindString(s.Lines[i]); amt != "" {
			if cleaned, ok := CleanValue(domain.FieldTotal, amt); ok {
				return []domain.Candidate{{
					Field: domain.FieldTotal, Value: cleaned,
					Confidence: templateTotalConfidence, Method: domain.MethodTemplate,
					Context: "receipt_last_amount", Line: i,
				}}
			}
		}
	}
	return nil
}

// statementTemplate pulls the closing balance as the total.
func statementTemplate(s *docstruct.Structure) []domain.Candidate {
	for i := len(s.Lines) - 1; i >= 0; i-- {
		lower := strings.ToLower(s.Lines[i])
		if !strings.Contains(lower, "balance") {
			continue
		}
		if amt := inlineAmountRe.FindString(s.Lines[i]); amt != "" {
			if cleaned, ok := CleanValue(domain.FieldTotal, amt); ok {
				return []domain.Candidate{{
					Field: domain.FieldTotal, Value: cleaned,
					Confidence: templateTotalConfidence, Method: domain.MethodTemplate,
					Context: "statement_balance", Line: i,
				}}
			}
		}
	}
	return nil
}
