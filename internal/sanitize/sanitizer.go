// Package sanitize detects and masks Norwegian personal identifiers, bank
// account numbers and payment card numbers in free text before it is sent to
// an external model or echoed back from retrieved documents.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

// Machine-readable category labels, used for metrics and audit events.
const (
	CategoryCreditCard     = "credit_card"
	CategoryPersonalNumber = "personal_number"
	CategoryBankAccount    = "bank_account"
)

// User-facing warnings, one per detected category.
const (
	WarningCreditCard     = "Teksten ser ut til å inneholde et kredittkortnummer. Nummeret er maskert før videre behandling."
	WarningPersonalNumber = "Teksten ser ut til å inneholde et fødselsnummer eller D-nummer. Nummeret er maskert før videre behandling."
	WarningBankAccount    = "Teksten ser ut til å inneholde et kontonummer. Nummeret er maskert før videre behandling."
)

// Candidate patterns. Go's RE2 has no lookaround, so the "not part of a
// longer digit run" boundary rule is enforced by adjacentDigit on each match
// rather than in the patterns themselves.
var (
	// 13-19 digits, optionally separated by space, dash or dot.
	cardCandidateRE = regexp.MustCompile(`(?:[0-9][.\- ]?){12,18}[0-9]`)

	// Birth number shapes: DD.MM.YY + 5, 6 + 5, and a bare 11-digit run.
	birthDottedRE = regexp.MustCompile(`[0-9]{2}\.[0-9]{2}\.[0-9]{2}[ \-][0-9]{5}`)
	birthSplitRE  = regexp.MustCompile(`[0-9]{6}[ \-][0-9]{5}`)
	elevenDigitRE = regexp.MustCompile(`[0-9]{11}`)

	// Bank account shape 4-2-5; the bare 11-digit shape reuses elevenDigitRE.
	accountFormattedRE = regexp.MustCompile(`[0-9]{4}[. \-][0-9]{2}[. \-][0-9]{5}`)
)

// Result is the outcome of one Sanitize call. Warnings holds one localized
// message per matched category, ordered credit card, personal number, bank
// account; Categories holds the matching machine-readable labels in the same
// order.
type Result struct {
	SanitizedText string
	Warnings      []string
	Categories    []string
}

// ContainsPII reports whether any category matched.
func (r Result) ContainsPII() bool {
	return len(r.Warnings) > 0
}

// Sanitizer masks sensitive identifiers in text. It holds no per-call state;
// one instance is safe for concurrent use.
type Sanitizer struct {
	logger *logging.Logger
}

// New creates a Sanitizer. A nil logger falls back to the default logger.
func New(logger *logging.Logger) *Sanitizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sanitizer{logger: logger}
}

// Sanitize runs the detection passes over text and returns the masked text
// plus warnings for every category that matched. It never fails: empty or
// whitespace-only input is returned unchanged, failed checksum candidates
// are left untouched, and the output always has exactly the same length as
// the input (digits are replaced with '*' in place, separators kept).
//
// The passes run in a fixed order, each over the output of the previous one:
// a span masked by an earlier pass contains no digits and can no longer
// match a later pattern.
func (s *Sanitizer) Sanitize(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{SanitizedText: text}
	}

	buf := []byte(text)
	var categories, warnings []string

	if maskMatches(buf, cardCandidateRE, false, validCardNumber) {
		categories = append(categories, CategoryCreditCard)
		warnings = append(warnings, WarningCreditCard)
	}

	// The specific separator-bearing shapes run before the bare 11-digit
	// shape; a span confirmed by one shape is already masked when the next
	// shape scans, while failed candidates stay untouched for the bank pass.
	birth := maskMatches(buf, birthDottedRE, true, validBirthNumber)
	birth = maskMatches(buf, birthSplitRE, true, validBirthNumber) || birth
	birth = maskMatches(buf, elevenDigitRE, true, validBirthNumber) || birth
	if birth {
		categories = append(categories, CategoryPersonalNumber)
		warnings = append(warnings, WarningPersonalNumber)
	}

	account := maskMatches(buf, accountFormattedRE, true, validAccountNumber)
	account = maskMatches(buf, elevenDigitRE, true, validAccountNumber) || account
	if account {
		categories = append(categories, CategoryBankAccount)
		warnings = append(warnings, WarningBankAccount)
	}

	if len(categories) > 0 {
		s.logger.Warn("masked sensitive identifiers in text",
			"categories", strings.Join(categories, ","),
			"text_length", len(text),
		)
	}

	return Result{
		SanitizedText: string(buf),
		Warnings:      warnings,
		Categories:    categories,
	}
}

// maskMatches scans buf for candidate spans, confirms each via valid on the
// stripped digits, and masks confirmed spans in place. When digitBoundary is
// set, candidates directly adjacent to another digit are skipped so that no
// partial match inside a longer digit run is ever masked. Returns whether at
// least one span was confirmed.
func maskMatches(buf []byte, re *regexp.Regexp, digitBoundary bool, valid func(string) bool) bool {
	masked := false
	for _, m := range re.FindAllIndex(buf, -1) {
		start, end := m[0], m[1]
		if digitBoundary && adjacentDigit(buf, start, end) {
			continue
		}
		if !valid(digitsOnly(buf[start:end])) {
			continue
		}
		for i := start; i < end; i++ {
			if isDigit(buf[i]) {
				buf[i] = '*'
			}
		}
		masked = true
	}
	return masked
}

// adjacentDigit reports whether the span [start, end) borders another digit.
func adjacentDigit(buf []byte, start, end int) bool {
	if start > 0 && isDigit(buf[start-1]) {
		return true
	}
	if end < len(buf) && isDigit(buf[end]) {
		return true
	}
	return false
}

func digitsOnly(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if isDigit(c) {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
