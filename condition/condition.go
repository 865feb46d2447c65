// Package condition estimates an item's physical condition from listing text.
package condition

import (
	"strings"
	"unicode"
)

const (
	baseScore    = 0.6
	unknownScore = 0.5
	minScore     = 0.1
	maxScore     = 1.0

	positiveWeight = 0.05
	negativeWeight = 0.07
)

// negativeKeywords lists damage and fault terms, English and Korean.
var negativeKeywords = []string{
	"crack", "broken", "doesn't work", "malfunction", "repair", "fault", "scratch",
	"dent", "stain", "yellowing", "burn-in", "screen issue", "dead pixel", "water damage",
	"파손", "고장", "불량", "수리필요", "수리 필요", "수리요망", "침수", "잔상", "눌림", "백화", "번인",
	"스크래치", "찍힘", "까짐", "생활기스", "배터리노후", "배터리 노후", "하자",
}

// positiveKeywords lists like-new and sealed terms, English and Korean.
var positiveKeywords = []string{
	"like new", "unused", "sealed", "mint",
	"미개봉", "새제품", "새 상품", "거의새것", "거의 새것", "상태좋음", "상태 좋음", "풀박스", "박스풀",
	"영수증", "정품", "리퍼아님", "리퍼 아님", "as가능", "as 가능", "a/s 가능", "a/s가능",
}

// letterGrades maps seller condition grades to fixed scores. Single letters
// are matched as whole tokens only; a bare "a" inside a word is not a grade.
var letterGrades = map[string]float64{
	"a+": 0.95, "a": 0.9, "b+": 0.85, "b": 0.8, "c": 0.7,
}

// koreanGrades are distinctive enough to match as substrings.
var koreanGrades = map[string]float64{
	"s급": 0.98, "a급": 0.9, "b급": 0.8, "c급": 0.7,
}

// Score maps listing text to a condition estimate in [0.1, 1.0], higher being
// better. Empty text yields a flat 0.5: unknown condition, neither penalized
// nor rewarded. The year parameter is an extension hook for an age penalty and
// currently does not affect the result. Score is pure and never fails.
func Score(text string, year int) float64 {
	_ = year

	if strings.TrimSpace(text) == "" {
		return unknownScore
	}

	lower := strings.ToLower(text)
	score := baseScore
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score += positiveWeight
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			score -= negativeWeight
		}
	}

	if g, ok := gradeScore(lower); ok && g > score {
		score = g
	}

	return clamp(score)
}

// gradeScore returns the highest grade score present in the lowered text.
func gradeScore(lower string) (float64, bool) {
	best := 0.0
	found := false

	// '/' stays inside tokens so the "a" in "a/s" is not read as a grade.
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return r != '+' && r != '/' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if g, ok := letterGrades[tok]; ok && g > best {
			best = g
			found = true
		}
	}
	for grade, g := range koreanGrades {
		if strings.Contains(lower, grade) && g > best {
			best = g
			found = true
		}
	}
	return best, found
}

func clamp(v float64) float64 {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}
