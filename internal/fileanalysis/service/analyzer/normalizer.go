package analyzer

import (
	"strings"
	"unicode"
)

// Normalize приводит текст сдачи к канонической форме: нижний регистр,
// любая последовательность знаков пунктуации заменяется пробелом,
// последовательности пробельных символов схлопываются, края обрезаются.
// Поверхностные отличия форматирования не должны ломать поиск дубликатов.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, lowered)

	return strings.Join(strings.Fields(stripped), " ")
}

// Tokenize разбивает текст на слова по тем же правилам, что и Normalize.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
