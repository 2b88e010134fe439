package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cheffyhq/cheffy-server/internal/engine"
)

// Description extraction from the watch page, tried in order:
//  1. "shortDescription" JSON field
//  2. generic "description" JSON field
//  3. <meta name="description"> tag
//  4. ytInitialData secondary-info description runs
// First non-empty match wins. Best-effort: empty string on total failure.

var (
	shortDescriptionRE = regexp.MustCompile(`"shortDescription":"((?:[^"\\]|\\.)*)"`)
	descriptionRE      = regexp.MustCompile(`"description":"((?:[^"\\]|\\.)*)"`)
	unicodeEscapeRE    = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)
)

const ytInitialDataMarker = "var ytInitialData = "

// unescapeJSONString reverses the escapes found in inline JSON string blobs.
func unescapeJSONString(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = unicodeEscapeRE.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\'`, "'")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

// descriptionFromInitialData digs the description runs out of ytInitialData.
func descriptionFromInitialData(body []byte) string {
	idx := bytes.Index(body, []byte(ytInitialDataMarker))
	if idx < 0 {
		return ""
	}
	jsonData := extractJSON(body[idx+len(ytInitialDataMarker):])
	if jsonData == nil {
		return ""
	}

	var data struct {
		Contents struct {
			TwoColumnWatchNextResults struct {
				Results struct {
					Results struct {
						Contents []struct {
							VideoSecondaryInfoRenderer *struct {
								Description struct {
									Runs []struct {
										Text string `json:"text"`
									} `json:"runs"`
								} `json:"description"`
							} `json:"videoSecondaryInfoRenderer"`
						} `json:"contents"`
					} `json:"results"`
				} `json:"results"`
			} `json:"twoColumnWatchNextResults"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return ""
	}

	for _, c := range data.Contents.TwoColumnWatchNextResults.Results.Results.Contents {
		r := c.VideoSecondaryInfoRenderer
		if r == nil || len(r.Description.Runs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, run := range r.Description.Runs {
			sb.WriteString(run.Text)
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

// extractDescription runs the extraction strategies over watch page HTML.
func extractDescription(body []byte) string {
	if m := shortDescriptionRE.FindSubmatch(body); len(m) >= 2 && len(m[1]) > 0 {
		return unescapeJSONString(string(m[1]))
	}
	if m := descriptionRE.FindSubmatch(body); len(m) >= 2 && len(m[1]) > 0 {
		return unescapeJSONString(string(m[1]))
	}
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && content != "" {
			return content
		}
	}
	return descriptionFromInitialData(body)
}

// FetchYouTubeDescription fetches a video's description from its watch page.
// Best-effort: returns "" when the page cannot be fetched or holds no
// recognizable description.
func FetchYouTubeDescription(ctx context.Context, videoID string) string {
	if err := engine.WaitYouTube(ctx); err != nil {
		return ""
	}

	body, err := engine.FetchPage(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		slog.Warn("youtube: description page fetch failed",
			slog.String("id", videoID), slog.Any("err", err))
		return ""
	}

	desc := extractDescription(body)
	if desc == "" {
		slog.Warn("youtube: no description in watch page", slog.String("id", videoID))
	}
	return desc
}
