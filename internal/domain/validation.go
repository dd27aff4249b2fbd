package domain

// ValidationError is a critical/major/minor inconsistency returned as data,
// never thrown.
type ValidationError struct {
	Field        string   `json:"field"`
	Message      string   `json:"message"`
	Severity     Severity `json:"severity"`
	SuggestedFix string   `json:"suggested_fix,omitempty"`
}

// ValidationWarning carries a negative confidence impact instead of a
// severity.
type ValidationWarning struct {
	Field            string  `json:"field"`
	Message          string  `json:"message"`
	ConfidenceImpact float64 `json:"confidence_impact"`
}

// ValidationResult is the outcome of the cross-field validator.
// IsValid means zero critical errors.
type ValidationResult struct {
	IsValid  bool                `json:"is_valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

// Counts returns the number of errors per severity.
func (r ValidationResult) Counts() (critical, major, minor int) {
	for _, e := range r.Errors {
		switch e.Severity {
		case SeverityCritical:
			critical++
		case SeverityMajor:
			major++
		case SeverityMinor:
			minor++
		}
	}
	return
}

// HasCritical reports whether any error is critical.
func (r ValidationResult) HasCritical() bool {
	c, _, _ := r.Counts()
	return c > 0
}
