// Package docstruct turns raw OCR text (plus optional markup of the same
// page) into a line-oriented document structure: headers, tables, sections,
// and key-value regions. The structure is derived per invocation and
// discarded after extraction.
package docstruct

import (
	"regexp"
	"strings"
	"unicode"
)

// Header is a line judged to be a document heading.
type Header struct {
	Text  string
	Level int
	Line  int
}

// Table is a contiguous block of multi-column delimited rows from markup.
type Table struct {
	StartLine int
	EndLine   int
	Header    []string
	Rows      [][]string
}

// KeyValue is one colon-style pair inside a key-value region.
type KeyValue struct {
	Key   string
	Value string
	Line  int
}

// KeyValueRegion is a run of adjacent lines that each contain a colon pair.
type KeyValueRegion struct {
	StartLine int
	EndLine   int
	Pairs     []KeyValue
}

// Section is a named region starting at a section-keyword line and
// extending until the next one.
type Section struct {
	Name      string
	StartLine int
	EndLine   int
	Lines     []string
}

// Structure is the full analyzer output for one document.
type Structure struct {
	Lines           []string
	MarkupLines     []string
	Headers         []Header
	Tables          []Table
	Sections        []Section
	KeyValueRegions []KeyValueRegion
}

// sectionKeywords anchor section starts. Matching is case-insensitive on
// the line prefix.
var sectionKeywords = []string{
	"bill to", "billed to", "ship to", "deliver to", "items", "description",
	"total", "terms", "payment", "notes", "remit to",
}

var (
	markupHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	tableRuleRe     = regexp.MustCompile(`^[\s|:\-]+$`)
)

// Analyze builds the document structure for text and optional markup.
// All state is local to the call; nothing is shared across invocations.
func Analyze(text, markup string) *Structure {
	s := &Structure{
		Lines:       splitLines(text),
		MarkupLines: splitLines(markup),
	}
	s.Headers = findHeaders(s.Lines, s.MarkupLines)
	s.Tables = findTables(s.MarkupLines)
	s.Sections = findSections(s.Lines)
	s.KeyValueRegions = findKeyValueRegions(s.Lines)
	return s
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}

// findHeaders marks short upper-case colon-free lines in the text and
// markup heading syntax.
func findHeaders(lines, markupLines []string) []Header {
	var headers []Header
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" || len(t) > 48 {
			continue
		}
		if strings.Contains(t, ":") {
			continue
		}
		if isUpperCase(t) && !startsWithDigit(t) {
			headers = append(headers, Header{Text: t, Level: 1, Line: i})
		}
	}
	for i, line := range markupLines {
		if m := markupHeadingRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			headers = append(headers, Header{Text: strings.TrimSpace(m[2]), Level: len(m[1]), Line: i})
		}
	}
	return headers
}

func isUpperCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// findTables collects contiguous pipe-delimited rows from the markup.
func findTables(markupLines []string) []Table {
	var tables []Table
	var current *Table
	flush := func(end int) {
		if current != nil && len(current.Rows) > 0 {
			current.EndLine = end
			tables = append(tables, *current)
		}
		current = nil
	}
	for i, line := range markupLines {
		cells, ok := SplitTableRow(line)
		if !ok {
			flush(i - 1)
			continue
		}
		if tableRuleRe.MatchString(strings.Join(cells, "")) {
			continue // separator row between header and body
		}
		if current == nil {
			current = &Table{StartLine: i, Header: cells}
			continue
		}
		current.Rows = append(current.Rows, cells)
	}
	flush(len(markupLines) - 1)
	return tables
}

// SplitTableRow splits a pipe-delimited markup row into trimmed cells.
// It reports false for lines that are not table rows.
func SplitTableRow(line string) ([]string, bool) {
	t := strings.TrimSpace(line)
	if !strings.Contains(t, "|") {
		return nil, false
	}
	t = strings.Trim(t, "|")
	parts := strings.Split(t, "|")
	if len(parts) < 2 {
		return nil, false
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells, true
}

// findSections anchors sections at keyword lines and extends each until the
// next keyword line.
func findSections(lines []string) []Section {
	type anchor struct {
		name string
		line int
	}
	var anchors []anchor
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, kw := range sectionKeywords {
			if strings.HasPrefix(lower, kw) {
				anchors = append(anchors, anchor{name: kw, line: i})
				break
			}
		}
	}
	sections := make([]Section, 0, len(anchors))
	for i, a := range anchors {
		end := len(lines) - 1
		if i+1 < len(anchors) {
			end = anchors[i+1].line - 1
		}
		sec := Section{Name: a.name, StartLine: a.line, EndLine: end}
		for j := a.line; j <= end && j < len(lines); j++ {
			sec.Lines = append(sec.Lines, lines[j])
		}
		sections = append(sections, sec)
	}
	return sections
}

// findKeyValueRegions merges adjacent colon-bearing lines into regions.
func findKeyValueRegions(lines []string) []KeyValueRegion {
	var regions []KeyValueRegion
	var current *KeyValueRegion
	flush := func() {
		if current != nil && len(current.Pairs) > 0 {
			regions = append(regions, *current)
		}
		current = nil
	}
	for i, line := range lines {
		key, value, ok := SplitColonPair(line)
		if !ok {
			flush()
			continue
		}
		if current == nil {
			current = &KeyValueRegion{StartLine: i}
		}
		current.EndLine = i
		current.Pairs = append(current.Pairs, KeyValue{Key: key, Value: value, Line: i})
	}
	flush()
	return regions
}

// SplitColonPair splits "Label: value" on the first colon. Lines without a
// colon, or with an empty label, are not pairs.
func SplitColonPair(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}
