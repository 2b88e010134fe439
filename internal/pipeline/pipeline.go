// Package pipeline turns a YouTube URL into an ordered list of recipe steps.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cheffyhq/cheffy-server/internal/engine/sources"
	"github.com/cheffyhq/cheffy-server/internal/recipe"
)

// TranscriptFunc fetches timed transcript segments for a video ID.
type TranscriptFunc func(ctx context.Context, videoID string) []recipe.Segment

// DescriptionFunc fetches the video description, "" when unavailable.
type DescriptionFunc func(ctx context.Context, videoID string) string

// Orchestrator sequences description/transcript acquisition, the extraction
// tiers, synthesis and the final guard for one parse request.
type Orchestrator struct {
	Transcript  TranscriptFunc
	Description DescriptionFunc
}

// New returns an Orchestrator wired to the live YouTube sources.
func New() *Orchestrator {
	return &Orchestrator{
		Transcript:  sources.FetchYouTubeTranscript,
		Description: sources.FetchYouTubeDescription,
	}
}

// Request is one parse invocation. Duration in seconds, 0 = unknown.
type Request struct {
	URL      string
	Duration int
}

// Parse runs the full extraction pipeline. The only hard error is a URL
// with no recognizable video ID; every fetch failure degrades to fewer or
// synthesized steps.
func (o *Orchestrator) Parse(ctx context.Context, req Request) (*recipe.Result, error) {
	videoID, err := sources.ExtractVideoID(req.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid YouTube URL: %w", err)
	}

	// Both sources are best-effort and independent.
	var (
		wg          sync.WaitGroup
		description string
		segments    []recipe.Segment
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		description = o.Description(ctx, videoID)
	}()
	go func() {
		defer wg.Done()
		segments = o.Transcript(ctx, videoID)
	}()
	wg.Wait()

	duration := req.Duration

	steps := recipe.WithinDuration(recipe.ParseChapters(description), duration)
	if len(steps) > 0 {
		slog.Info("parse: chapters found",
			slog.String("id", videoID), slog.Int("steps", len(steps)))
	}

	if len(segments) > 0 {
		// Transcript-derived steps beat chapter titles when available.
		if tier := recipe.WithinDuration(recipe.ExtractSteps(segments, duration), duration); len(tier) > 0 {
			steps = tier
		}
		if len(steps) == 0 {
			slog.Info("parse: strict extraction empty, going aggressive", slog.String("id", videoID))
			steps = recipe.WithinDuration(recipe.ExtractStepsAggressive(segments, duration), duration)
		}
		if len(steps) == 0 {
			slog.Info("parse: aggressive extraction empty, going lenient", slog.String("id", videoID))
			steps = recipe.WithinDuration(recipe.ExtractStepsLenient(segments, duration), duration)
		}
	}

	needsDuration := false
	if len(steps) == 0 && len(segments) == 0 {
		if duration > 0 {
			slog.Info("parse: no sources, synthesizing steps",
				slog.String("id", videoID), slog.Int("duration", duration))
			steps = recipe.DefaultSteps(duration)
		} else {
			// Never invent timestamps without a duration bound.
			needsDuration = true
		}
	}

	steps = recipe.WithinDuration(recipe.GroupSimilar(steps), duration)

	slog.Info("parse: done",
		slog.String("id", videoID),
		slog.Int("steps", len(steps)),
		slog.Int("segments", len(segments)),
		slog.Bool("needs_duration", needsDuration))

	return &recipe.Result{
		VideoID:       videoID,
		Steps:         steps,
		Duration:      duration,
		NeedsDuration: needsDuration,
	}, nil
}
