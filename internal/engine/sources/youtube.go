// Package sources fetches recipe raw material from YouTube.
//
//	youtube.go             — video ID extraction from user-supplied URLs
//	youtube_innertube.go   — Innertube API types, constants, and low-level HTTP primitives
//	youtube_transcript.go  — transcript acquisition (track fetch + language retries + page scrape)
//	youtube_description.go — video description extraction from watch page HTML
package sources

import (
	"errors"
	"regexp"
)

// Supported URL shapes. The ID is always the 11-char token after the marker.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com\/watch\?v=|youtu\.be\/|youtube\.com\/embed\/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com\/watch\?.*&v=([^&\n?#]+)`),
}

// ErrNoVideoID is returned when a URL carries no recognizable video identifier.
var ErrNoVideoID = errors.New("no video ID found in URL")

// ExtractVideoID pulls the video identifier out of a YouTube URL.
// Accepts watch?v=, youtu.be/ and embed/ shapes.
func ExtractVideoID(rawURL string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 && m[1] != "" {
			return m[1], nil
		}
	}
	return "", ErrNoVideoID
}
