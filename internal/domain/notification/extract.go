package notification

import (
	"regexp"
	"strings"
)

// Keys of the default pattern table
const (
	FieldBankName      = "bankName"
	FieldAccountNumber = "accountNumber"
	FieldCurrency      = "currency"
)

// Pattern captures one labeled value from a message. Expr must have one
// capture group. StripMask removes a leading "..." or "…" from the capture.
type Pattern struct {
	Key       string
	Expr      *regexp.Regexp
	StripMask bool
}

// PatternTable is evaluated in order; every key appears in the result.
type PatternTable []Pattern

// Fields maps pattern keys to the captured value, nil when nothing matched.
type Fields map[string]*string

// Get returns the value for key or "" when it was not found.
func (f Fields) Get(key string) string {
	if v := f[key]; v != nil {
		return *v
	}
	return ""
}

// LabeledLine builds a case-insensitive pattern for lines such as
// "- Bank: First Union" or "Bank: First Union".
func LabeledLine(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:-[ \t]*)?` + regexp.QuoteMeta(label) + `[ \t]*:[ \t]*([^\r\n]*)`)
}

// DefaultPatterns recognizes the bank details the backend embeds in bank
// account notifications.
var DefaultPatterns = PatternTable{
	{Key: FieldBankName, Expr: LabeledLine("Bank")},
	{Key: FieldAccountNumber, Expr: LabeledLine("Account"), StripMask: true},
	{Key: FieldCurrency, Expr: LabeledLine("Currency")},
}

var maskPrefixes = []string{"...", "…"}

// Extract pulls the first capture of each pattern out of message. Missing
// labels are not an error; their value is nil.
func Extract(message string, patterns PatternTable) Fields {
	fields := make(Fields, len(patterns))
	for _, p := range patterns {
		fields[p.Key] = nil
		if p.Expr == nil {
			continue
		}
		m := p.Expr.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		v := strings.TrimSpace(m[1])
		if p.StripMask {
			v = stripMask(v)
		}
		if v == "" {
			continue
		}
		fields[p.Key] = &v
	}
	return fields
}

func stripMask(v string) string {
	for _, prefix := range maskPrefixes {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(v, prefix))
		}
	}
	return v
}
