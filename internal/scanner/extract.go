package scanner

import (
	"strings"
	"unicode"
)

// extractCode returns the suffix starting at the first ASCII letter and its index.
func extractCode(input string) (code string, codeStart int, err error) {
	for i := 0; i < len(input); i++ {
		if isLetter(input[i]) {
			return input[i:], i, nil
		}
	}
	return "", -1, ErrNoCode
}

// extractPieces scans backward from just before codeStart, skipping anything that is
// not a digit, and returns the first digit found with its index.
func extractPieces(input string, codeStart int) (pieces, pcsIndex int, err error) {
	for i := codeStart - 1; i >= 0; i-- {
		if isDigit(input[i]) {
			return int(input[i] - '0'), i, nil
		}
	}
	return 0, -1, ErrNoPieces
}

// cleanWeightBlock reduces the raw weight block to digits and dots.
func cleanWeightBlock(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	// Dots are collapsed before symbols are stripped, so "1.*.5" keeps both dots.
	for strings.Contains(cleaned, "..") {
		cleaned = collapseDots(cleaned)
	}

	var b strings.Builder
	b.Grow(len(cleaned))
	for i := 0; i < len(cleaned); i++ {
		if c := cleaned[i]; isDigit(c) || c == '.' {
			b.WriteByte(c)
		}
	}
	cleaned = b.String()

	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	if cleaned == "" || cleaned == "." {
		return "", ErrNoWeightData
	}
	return cleaned, nil
}

func collapseDots(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && i > 0 && s[i-1] == '.' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
