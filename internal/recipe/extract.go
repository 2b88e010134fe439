package recipe

import "strings"

// Tier A — strict filtered extraction. Groups raw segments into
// time-coherent clusters, keeps only clusters that read like cooking
// instructions, then thins the result by time spacing and similarity.

const (
	groupGapSeconds   = 3  // new group when the next segment starts later than this after the current group ends
	minGroupChars     = 10 // groups with less combined text are dropped
	minInstructionLen = 15 // classified text shorter than this is noise
	minStepSpacing    = 20 // seconds between kept Tier A steps; closer steps are merged
	similarityCutoff  = 0.6
)

// segmentGroup is a temporally contiguous cluster of segments merged into
// one candidate instruction.
type segmentGroup struct {
	start int // seconds
	end   int // seconds
	text  string
}

// groupSegments clusters segments whose start falls within groupGapSeconds
// of the running group's end. Segments past maxDuration (when known) or
// shorter than 5 characters are skipped.
func groupSegments(segments []Segment, maxDuration int) []segmentGroup {
	var groups []segmentGroup
	var texts []string
	var current *segmentGroup

	flush := func() {
		if current == nil {
			return
		}
		combined := strings.TrimSpace(strings.Join(texts, " "))
		if len(combined) > minGroupChars {
			current.text = combined
			groups = append(groups, *current)
		}
		current = nil
		texts = nil
	}

	for _, seg := range segments {
		start := seg.StartSeconds()
		if maxDuration > 0 && start > maxDuration {
			continue
		}
		text := strings.TrimSpace(seg.Text)
		if len(text) < 5 {
			continue
		}

		if current == nil || start-current.end > groupGapSeconds {
			flush()
			current = &segmentGroup{start: start, end: seg.EndSeconds()}
			texts = []string{text}
		} else {
			texts = append(texts, text)
			if end := seg.EndSeconds(); end > current.end {
				current.end = end
			}
		}
	}
	flush()
	return groups
}

// ExtractSteps is the strict extraction tier. Returns nil when nothing in
// the transcript passes the instruction filters.
func ExtractSteps(segments []Segment, maxDuration int) []Step {
	if len(segments) == 0 {
		return nil
	}

	var candidates []Step
	for _, g := range groupSegments(segments, maxDuration) {
		if !isInstruction(g.text) || len(g.text) <= minInstructionLen {
			continue
		}
		instruction := cleanInstruction(g.text)
		if instruction == "" {
			continue
		}
		candidates = append(candidates, NewStep(g.start, instruction))
	}
	if len(candidates) == 0 {
		return nil
	}

	// Keep a step only when enough time has passed since the previous kept
	// one; otherwise its text belongs to the same real-world step.
	var spaced []Step
	for _, step := range candidates {
		if len(spaced) == 0 || step.Timestamp-spaced[len(spaced)-1].Timestamp >= minStepSpacing {
			spaced = append(spaced, step)
			continue
		}
		last := &spaced[len(spaced)-1]
		last.Instruction = last.Instruction + ". " + step.Instruction
	}

	// Final pass: drop steps too similar to the previously kept one.
	var final []Step
	for _, step := range spaced {
		if len(final) > 0 && Similarity(step.Instruction, final[len(final)-1].Instruction) > similarityCutoff {
			continue
		}
		final = append(final, step)
	}
	return final
}
