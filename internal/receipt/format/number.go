package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	seqPadRe     = regexp.MustCompile(`\{SEQ(\d+)\}`)
	unresolvedRe = regexp.MustCompile(`\{[A-Z0-9]*\}`)

	ErrEmptyTemplate   = errors.New("receipt number template is empty")
	ErrInvalidSequence = errors.New("invalid receipt sequence")
)

const DefaultNumberTemplate = "RECIBO-{SEQ8}"

// ReceiptNumber renders a receipt number from template, issue date and sequence.
// Supported tokens: {YYYY} {YY} {MM} {DD} {SEQ} and {SEQn} for zero padding to n digits.
func ReceiptNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", ErrEmptyTemplate
	}
	if seq <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidSequence, seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if unresolvedRe.MatchString(out) {
		return "", fmt.Errorf("unresolved token in receipt number template: %s", out)
	}
	return out, nil
}

// ValidateTemplate reports whether template contains a sequence token and
// resolves cleanly.
func ValidateTemplate(template string) error {
	if !strings.Contains(template, "{SEQ") {
		return fmt.Errorf("receipt number template %q has no sequence token", template)
	}
	_, err := ReceiptNumber(template, time.Now(), 1)
	return err
}
