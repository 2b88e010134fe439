package recipe

import "sort"

// WithinDuration drops any step past the known video length. No-op when the
// duration is unknown (<= 0). Idempotent; applied after chapter parsing,
// after each extraction tier, and once more in finalization.
func WithinDuration(steps []Step, duration int) []Step {
	if duration <= 0 {
		return steps
	}
	out := steps[:0:0]
	for _, step := range steps {
		if step.Timestamp <= duration {
			out = append(out, step)
		}
	}
	return out
}

const (
	finalMinSpacing      = 10 // seconds
	finalSimilarityLimit = 0.6
)

// GroupSimilar walks steps in timestamp order and drops any step that sits
// within ten seconds of the previously kept one or whose instruction is
// near-identical to it.
func GroupSimilar(steps []Step) []Step {
	if len(steps) == 0 {
		return steps
	}
	sorted := append([]Step(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	kept := []Step{sorted[0]}
	for _, step := range sorted[1:] {
		last := kept[len(kept)-1]
		if step.Timestamp-last.Timestamp < finalMinSpacing {
			continue
		}
		if Similarity(step.Instruction, last.Instruction) > finalSimilarityLimit {
			continue
		}
		kept = append(kept, step)
	}
	return kept
}
