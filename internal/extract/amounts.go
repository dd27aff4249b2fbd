package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountParser is one locale-specific money-cleaning strategy. Parsers are
// tried in order; additional locales are added by appending a parser, not by
// touching extraction code.
type AmountParser interface {
	Name() string
	// Parse cleans a raw money string and returns its value. The cleaned
	// value is never negative: leading non-numeric characters (currency
	// symbols, minus signs, labels) are stripped before the first numeric
	// token is read.
	Parse(raw string) (float64, bool)
}

var defaultAmountParsers = []AmountParser{dotLocale{}, commaLocale{}}

var (
	dotTokenRe   = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	commaTokenRe = regexp.MustCompile(`\d[\d.]*,\d+`)
)

// dotLocale handles decimal-point amounts with comma thousands separators,
// e.g. "$1,234.56".
type dotLocale struct{}

func (dotLocale) Name() string { return "decimal-dot" }

func (dotLocale) Parse(raw string) (float64, bool) {
	token := dotTokenRe.FindString(raw)
	if token == "" {
		return 0, false
	}
	token = strings.ReplaceAll(token, ",", "")
	d, err := decimal.NewFromString(token)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// commaLocale handles decimal-comma amounts with dot thousands separators
// and an optional trailing currency symbol, e.g. "1.234,56 €".
type commaLocale struct{}

func (commaLocale) Name() string { return "decimal-comma" }

func (commaLocale) Parse(raw string) (float64, bool) {
	token := commaTokenRe.FindString(raw)
	if token == "" {
		return 0, false
	}
	token = strings.ReplaceAll(token, ".", "")
	token = strings.ReplaceAll(token, ",", ".")
	d, err := decimal.NewFromString(token)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// ParseAmount runs the default locale parsers in order. A decimal-comma
// token is matched first when present, since the dot parser would read
// "1.234,56" as 1.234.
func ParseAmount(raw string) (float64, bool) {
	if commaTokenRe.MatchString(raw) {
		return commaLocale{}.Parse(raw)
	}
	for _, p := range defaultAmountParsers {
		if v, ok := p.Parse(raw); ok {
			return v, true
		}
	}
	return 0, false
}

// CleanAmountString normalizes a raw money string to a plain decimal-point
// representation with two fraction digits, used as candidate values so
// deduplication compares like with like.
func CleanAmountString(raw string) (string, bool) {
	v, ok := ParseAmount(raw)
	if !ok {
		return "", false
	}
	return decimal.NewFromFloat(v).StringFixed(2), true
}
