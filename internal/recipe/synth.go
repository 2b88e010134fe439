package recipe

// Step synthesis for videos with no transcript and no chapters. Produces a
// few evenly spaced generic stage labels bounded by the known duration.
// Never invoked without a positive duration: there is nothing honest to
// synthesize without a bound.

const shortVideoSeconds = 300

var stageLabels = []string{
	"Introduction and ingredients overview",
	"Preparation and setup",
	"Start cooking process",
	"Main cooking steps",
	"Finishing touches",
	"Final presentation and serving",
}

// DefaultSteps synthesizes 2-4 generic steps for short videos and 3-6 for
// longer ones, spaced at duration/(count+1) intervals, each strictly inside
// the video. A 0:00 introduction is prepended when the video is longer than
// five seconds and nothing covers the opening.
func DefaultSteps(duration int) []Step {
	if duration <= 0 {
		return nil
	}

	count := duration / 60
	if duration < shortVideoSeconds {
		count = clamp(count, 2, 4)
	} else {
		count = clamp(count, 3, 6)
	}

	interval := duration / (count + 1)
	var steps []Step
	for i := 0; i < count; i++ {
		timestamp := interval * (i + 1)
		if timestamp >= duration {
			continue
		}
		label := stageLabels[i%len(stageLabels)]
		steps = append(steps, NewStep(timestamp, label))
	}

	if duration > 5 && (len(steps) == 0 || steps[0].Timestamp > 5) {
		steps = append([]Step{NewStep(0, "Introduction")}, steps...)
	}
	return steps
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
