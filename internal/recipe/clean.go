package recipe

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	spaceRE    = regexp.MustCompile(`\s+`)
	fillerRE   = regexp.MustCompile(`(?i)^(so|now|then|and|but|or|well|okay|ok|alright|right|yeah|yes|no|hmm|um|uh|hey|hi|hello)\s*,?\s*`)
	fillerKoRE = regexp.MustCompile(`^(이제|그래서|그리고|그런데|그럼|음|어|아|안녕)\s*,?\s*`)
)

// CollapseSpace normalizes all runs of whitespace to single spaces.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// stripFiller removes a leading conversational filler word in either language.
func stripFiller(s string) string {
	s = fillerRE.ReplaceAllString(s, "")
	return fillerKoRE.ReplaceAllString(s, "")
}

// cleanInstruction formats raw transcript text as a recipe instruction:
// collapsed whitespace, no leading filler, capitalized, terminal punctuation.
func cleanInstruction(text string) string {
	s := stripFiller(CollapseSpace(text))
	if s == "" {
		return ""
	}
	s = capitalize(s)
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
