package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

// Author-provided chapter markers in a video description. Two grammars,
// tried in order: "MM:SS Title" and the bracketed "[MM:SS] Title" variant.
// Titles of three characters or fewer are noise and dropped.
var (
	chapterRE    = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	chapterAltRE = regexp.MustCompile(`\[(\d{1,2}):(\d{2})\]`)
)

// ParseChapters extracts chapter markers from a description into ordered
// steps. Pure text matching; no transcript involvement.
func ParseChapters(description string) []Step {
	steps := chapterSteps(chapterRE, description, true)
	if len(steps) == 0 {
		steps = chapterSteps(chapterAltRE, description, false)
	}
	return steps
}

// chapterSteps matches only the timestamp tokens and slices each title as
// the text between one token and the next, cut at the first newline. RE2
// has no lookahead, so the title boundary cannot live in the pattern; a
// pattern that consumed up to the next token would swallow it and drop
// every chapter written on the same line.
func chapterSteps(re *regexp.Regexp, description string, requireGap bool) []Step {
	matches := re.FindAllStringSubmatchIndex(description, -1)
	var steps []Step
	for i, m := range matches {
		minutes, _ := strconv.Atoi(description[m[2]:m[3]])
		seconds, _ := strconv.Atoi(description[m[4]:m[5]])
		end := len(description)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		raw := description[m[1]:end]
		// The plain grammar needs whitespace after the token, otherwise a
		// bracketed "[0:15]" marker matches as a bare timestamp.
		if requireGap && (raw == "" || (raw[0] != ' ' && raw[0] != '\t')) {
			continue
		}
		if nl := strings.IndexByte(raw, '\n'); nl >= 0 {
			raw = raw[:nl]
		}
		title := strings.TrimSpace(raw)
		if len(title) <= 3 {
			continue
		}
		steps = append(steps, NewStep(minutes*60+seconds, title))
	}
	return steps
}
