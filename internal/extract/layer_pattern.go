package extract

import (
	"strings"

	"invox/internal/domain"
)

// patternLayer evaluates every matcher in the table against the full or
// position-restricted text. Match state is local to the call: the layer
// never keeps cursors between invocations.
func patternLayer(text string, matchers []Matcher) []domain.Candidate {
	var out []domain.Candidate
	lines := strings.Split(text, "\n")

	for _, m := range matchers {
		search := text
		if m.FirstLines > 0 && len(lines) > m.FirstLines {
			search = strings.Join(lines[:m.FirstLines], "\n")
		}

		var matches [][]int
		if m.Global {
			matches = m.Pattern.FindAllStringSubmatchIndex(search, -1)
		} else {
			if loc := m.Pattern.FindStringSubmatchIndex(search); loc != nil {
				matches = [][]int{loc}
			}
		}

		for _, loc := range matches {
			raw := search[loc[0]:loc[1]]
			value := raw
			if len(loc) >= 4 && loc[2] >= 0 {
				value = search[loc[2]:loc[3]]
			}
			if m.Exclude != nil && (m.Exclude.MatchString(value) || m.Exclude.MatchString(raw)) {
				continue
			}
			if !ValidValue(m.Field, value) {
				continue
			}
			cleaned, ok := CleanValue(m.Field, value)
			if !ok {
				continue
			}

			line := strings.Count(search[:loc[0]], "\n")
			conf := m.Confidence
			if line < 5 {
				conf += 0.10
			}
			if strings.Contains(raw, ":") {
				conf += 0.05
			}
			if len(strings.TrimSpace(value)) < 3 {
				conf -= 0.20
			}

			out = append(out, domain.Candidate{
				Field:      m.Field,
				Value:      cleaned,
				Confidence: clampConfidence(conf),
				Method:     domain.MethodPattern,
				Context:    m.Context,
				Line:       line,
			})
		}
	}
	return out
}

// clampConfidence bounds a per-candidate confidence to [0.1, 0.99].
func clampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 0.99 {
		return 0.99
	}
	return c
}
