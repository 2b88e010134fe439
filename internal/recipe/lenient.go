package recipe

import "strings"

// Tier C — very lenient extraction. Last transcript-backed resort: split
// the raw segment sequence into a handful of contiguous chunks and emit one
// step per chunk that is not spam. Guarantees output whenever a transcript
// has any real content at all.

// ExtractStepsLenient emits a step per contiguous chunk of roughly
// len/6 segments (at least 10 per chunk).
func ExtractStepsLenient(segments []Segment, maxDuration int) []Step {
	if len(segments) == 0 {
		return nil
	}

	chunkSize := len(segments) / 6
	if chunkSize < 10 {
		chunkSize = 10
	}

	var steps []Step
	for i := 0; i < len(segments); i += chunkSize {
		end := i + chunkSize
		if end > len(segments) {
			end = len(segments)
		}
		chunk := segments[i:end]

		timestamp := chunk[0].StartSeconds()
		var texts []string
		for _, seg := range chunk {
			texts = append(texts, strings.TrimSpace(seg.Text))
		}
		combined := strings.TrimSpace(strings.Join(texts, " "))

		if maxDuration > 0 && timestamp > maxDuration {
			continue
		}
		if len(combined) < minGroupChars {
			continue
		}
		if spamRE.MatchString(combined) {
			continue
		}

		cleaned := stripFiller(CollapseSpace(combined))
		if len(cleaned) > minInstructionLen {
			steps = append(steps, NewStep(timestamp, cleanInstruction(cleaned)))
		}
	}
	return steps
}
