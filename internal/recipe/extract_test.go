package recipe

import (
	"strings"
	"testing"
)

func seg(offsetSec, durSec int, text string) Segment {
	return Segment{OffsetMs: offsetSec * 1000, DurationMs: durSec * 1000, Text: text}
}

func TestGroupSegments(t *testing.T) {
	segments := []Segment{
		seg(0, 2, "add the oil"),
		seg(2, 2, "to the hot pan"), // gap 0s from previous end → same group
		seg(10, 2, "chop the onions finely"),
	}
	groups := groupSegments(segments, 0)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(groups), groups)
	}
	if groups[0].text != "add the oil to the hot pan" {
		t.Errorf("first group text = %q", groups[0].text)
	}
	if groups[0].start != 0 || groups[0].end != 4 {
		t.Errorf("first group span = %d..%d, want 0..4", groups[0].start, groups[0].end)
	}
	if groups[1].start != 10 {
		t.Errorf("second group start = %d, want 10", groups[1].start)
	}
}

func TestGroupSegmentsSkipsShortAndLate(t *testing.T) {
	segments := []Segment{
		seg(0, 2, "ok"),                      // under 5 chars
		seg(10, 2, "stir the sauce gently"),  // kept
		seg(500, 2, "way past the duration"), // beyond maxDuration
	}
	groups := groupSegments(segments, 60)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d: %+v", len(groups), groups)
	}
	if groups[0].start != 10 {
		t.Errorf("group start = %d, want 10", groups[0].start)
	}
}

func TestExtractSteps(t *testing.T) {
	segments := []Segment{
		seg(5, 3, "add 2 cups of flour"),
		seg(8, 3, "and mix the batter well"),
		seg(40, 3, "chop the onion and the garlic"),
		seg(43, 3, "then add them to the pan"),
		seg(80, 3, "simmer the sauce on low heat for 10 분"),
	}
	steps := ExtractSteps(segments, 300)
	if len(steps) < 2 {
		t.Fatalf("expected at least 2 steps, got %d: %+v", len(steps), steps)
	}
	if steps[0].Timestamp != 5 {
		t.Errorf("first step at %d, want 5", steps[0].Timestamp)
	}
	if !strings.HasPrefix(steps[0].Instruction, "Add") {
		t.Errorf("instruction not cleaned: %q", steps[0].Instruction)
	}
	if !strings.HasSuffix(steps[0].Instruction, ".") {
		t.Errorf("instruction missing terminal punctuation: %q", steps[0].Instruction)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Timestamp-steps[i-1].Timestamp < minStepSpacing {
			t.Errorf("steps %d and %d closer than %ds", i-1, i, minStepSpacing)
		}
	}
}

func TestExtractStepsMergesCloseSteps(t *testing.T) {
	segments := []Segment{
		seg(10, 2, "add 2 cups of flour to the bowl"),
		seg(22, 2, "pour in 1 cup of cold water slowly"), // 12s later → merged into previous
	}
	steps := ExtractSteps(segments, 300)
	if len(steps) != 1 {
		t.Fatalf("expected 1 merged step, got %d: %+v", len(steps), steps)
	}
	if !strings.Contains(steps[0].Instruction, "flour") || !strings.Contains(steps[0].Instruction, "water") {
		t.Errorf("merged instruction lost text: %q", steps[0].Instruction)
	}
}

func TestExtractStepsDropsSimilar(t *testing.T) {
	segments := []Segment{
		seg(10, 2, "add the chopped onion to the pan now"),
		seg(40, 2, "add the chopped onion to the pan now"),
	}
	steps := ExtractSteps(segments, 300)
	if len(steps) != 1 {
		t.Fatalf("expected similar step dropped, got %d: %+v", len(steps), steps)
	}
}

func TestExtractStepsNoInstructions(t *testing.T) {
	segments := []Segment{
		seg(0, 2, "the mountain trail was quiet in winter"),
		seg(10, 2, "a gentle frost settled over the valley"),
	}
	if steps := ExtractSteps(segments, 300); steps != nil {
		t.Errorf("expected nil for non-cooking transcript, got %+v", steps)
	}
}

// Escalation: content that the strict tier rejects entirely must still be
// recoverable by the aggressive or lenient tiers.
func TestTierEscalation(t *testing.T) {
	var segments []Segment
	for i := 0; i < 36; i++ {
		segments = append(segments, seg(i*6, 2, "the quiet mountain valley stayed calm all winter"))
	}

	if steps := ExtractSteps(segments, 600); len(steps) != 0 {
		t.Fatalf("strict tier unexpectedly produced steps: %+v", steps)
	}
	aggressive := ExtractStepsAggressive(segments, 600)
	lenient := ExtractStepsLenient(segments, 600)
	if len(aggressive) == 0 && len(lenient) == 0 {
		t.Fatal("expected a lenient tier to recover steps from non-spam content")
	}
}
