// Package parser normalizes heterogeneous listing text into comparable values.
// Every function is total over arbitrary input: failures surface as a false
// second return, never as an error or panic.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

var (
	currencyRe  = regexp.MustCompile(`([₩$€¥]|KRW)\s?([\d,.]+)`)
	numberRe    = regexp.MustCompile(`[\d,.]+`)
	koreanWonRe = regexp.MustCompile(`(\d+[.,]?\d*|\d*\.\d+)(억원|억|백만원|백만|십만원|십만|만원|만|천원|천|원)`)
	yearRe      = regexp.MustCompile(`(20\d{2})\s*년|'(\d{2})\s*년|\b(20\d{2})\b|(\d{2})년식`)
)

// wonScale maps a Korean price unit token to its multiplier. Longer tokens
// come first in koreanWonRe so 만원 never half-matches as 원.
var wonScale = map[string]float64{
	"억원":  1e8,
	"억":   1e8,
	"백만원": 1e6,
	"백만":  1e6,
	"십만원": 1e5,
	"십만":  1e5,
	"만원":  1e4,
	"만":   1e4,
	"천원":  1e3,
	"천":   1e3,
	"원":   1,
}

// ParsePrice extracts a non-negative price from free text. It tries the Korean
// amount+unit grammar first, summing matched terms left to right, then a
// currency-prefixed number, then any bare number substring.
func ParsePrice(text string) (float64, bool) {
	if v, ok := parseKoreanPrice(text); ok {
		return v, true
	}

	raw := ""
	if m := currencyRe.FindStringSubmatch(text); m != nil {
		raw = m[2]
	} else if m := numberRe.FindString(text); m != "" {
		raw = m
	} else {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseKoreanPrice(text string) (float64, bool) {
	s := strings.ReplaceAll(text, " ", "")
	total := 0.0
	matched := false
	for _, m := range koreanWonRe.FindAllStringSubmatch(s, -1) {
		num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		matched = true
		total += num * wonScale[m[2]]
	}
	if !matched || total <= 0 {
		return 0, false
	}
	return total, true
}

// GuessYear recognizes 2019년, '21년, bare 2021 and 23년식 forms. Two-digit
// years pivot at 50: below it maps to the 2000s, at or above to the 1900s.
func GuessYear(text string) (int, bool) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	for _, g := range []string{m[1], m[3]} {
		if g != "" {
			y, _ := strconv.Atoi(g)
			return y, true
		}
	}
	for _, g := range []string{m[2], m[4]} {
		if g != "" {
			yy, _ := strconv.Atoi(g)
			if yy < 50 {
				return 2000 + yy, true
			}
			return 1900 + yy, true
		}
	}
	return 0, false
}

// ParseDate fuzzily parses a posted-at string into a timestamp. Relative
// Korean forms like "3일 전" are not recognized and report false.
func ParseDate(text string) (time.Time, bool) {
	t, err := dateparse.ParseAny(strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeTitle lowers the title, strips punctuation and collapses runs of
// whitespace. The result is a comparison key only, never shown to users.
func NormalizeTitle(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
