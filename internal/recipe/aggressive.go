package recipe

import (
	"sort"
	"strings"
)

// Tier B — aggressive extraction. Used when the strict tier finds nothing:
// sample fixed time windows across the whole transcript regardless of
// content, rejecting only outright channel spam.

const (
	windowSeconds    = 5 // fixed chunk window
	closeStepSeconds = 5 // steps this close are duplicates
)

type textChunk struct {
	timestamp int
	texts     []string
}

func (c textChunk) combined() string {
	return strings.TrimSpace(strings.Join(c.texts, " "))
}

// chunkSegments slices segments into fixed windowSeconds windows anchored at
// each window's first segment.
func chunkSegments(segments []Segment, maxDuration int) []textChunk {
	var chunks []textChunk
	var current *textChunk

	for _, seg := range segments {
		ts := seg.StartSeconds()
		text := strings.TrimSpace(seg.Text)
		if (maxDuration > 0 && ts > maxDuration) || len(text) < 5 {
			continue
		}
		if current == nil || ts-current.timestamp > windowSeconds {
			if current != nil && len(current.texts) > 0 {
				chunks = append(chunks, *current)
			}
			current = &textChunk{timestamp: ts, texts: []string{text}}
		} else {
			current.texts = append(current.texts, text)
		}
	}
	if current != nil && len(current.texts) > 0 {
		chunks = append(chunks, *current)
	}
	return chunks
}

// ExtractStepsAggressive samples every Nth window (targeting roughly 6-8
// steps), keeps anything that is not channel spam, and force-includes the
// opening window when it introduces the recipe.
func ExtractStepsAggressive(segments []Segment, maxDuration int) []Step {
	if len(segments) == 0 {
		return nil
	}
	chunks := chunkSegments(segments, maxDuration)
	if len(chunks) == 0 {
		return nil
	}

	interval := len(chunks) / 8
	if interval < 2 {
		interval = 2
	}

	var steps []Step
	for i := 0; i < len(chunks); i += interval {
		combined := chunks[i].combined()
		if len(combined) < minInstructionLen {
			continue
		}
		cleaned := stripFiller(CollapseSpace(combined))
		if spamRE.MatchString(cleaned) {
			continue
		}
		steps = append(steps, NewStep(chunks[i].timestamp, cleanInstruction(cleaned)))
	}

	// The opening window usually names the dish and ingredients; keep it
	// when it looks like a recipe intro and nothing near it was sampled.
	first := chunks[0]
	firstText := first.combined()
	if recipeStartRE.MatchString(firstText) && len(firstText) > minInstructionLen && !hasStepWithin(steps, first.timestamp, closeStepSeconds) {
		steps = append([]Step{NewStep(first.timestamp, cleanInstruction(firstText))}, steps...)
	}

	steps = dropCloseSteps(steps, closeStepSeconds)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Timestamp < steps[j].Timestamp })
	return steps
}

// dropCloseSteps removes any step within gap seconds of an earlier one,
// keeping first occurrences.
func dropCloseSteps(steps []Step, gap int) []Step {
	var out []Step
	for _, step := range steps {
		if hasStepWithin(out, step.Timestamp, gap) {
			continue
		}
		out = append(out, step)
	}
	return out
}

func hasStepWithin(steps []Step, timestamp, gap int) bool {
	for _, s := range steps {
		if abs(s.Timestamp-timestamp) < gap {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
