package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cheffyhq/cheffy-server/internal/engine"
	"github.com/cheffyhq/cheffy-server/internal/recipe"
)

// Transcript acquisition, strategy chain:
//  1. default caption track from the Innertube player response
//  2. explicit-language retries using languages mined from the failure message
//  3. fixed fallback languages (en, es, ko)
//  4. watch page HTML scrape → ytInitialPlayerResponse → caption track URL
//
// Each strategy is attempted only if the previous produced zero segments.
// Every failure is logged and swallowed; the caller gets whatever was found.

var fallbackLangs = []string{"en", "es", "ko"}

// availableLanguagesError reports a failed track selection and carries the
// track languages that do exist, so a later strategy can retry them.
type availableLanguagesError struct {
	requested string
	langs     []string
}

func (e *availableLanguagesError) Error() string {
	if e.requested == "" {
		return "no usable default track. Available languages: " + strings.Join(e.langs, ", ")
	}
	return fmt.Sprintf("no track for language %q. Available languages: %s", e.requested, strings.Join(e.langs, ", "))
}

// availableLangsRE mines the advertised language list back out of an error message.
var availableLangsRE = regexp.MustCompile(`Available languages: ([a-zA-Z0-9, _-]+)`)

// mineLanguages extracts language codes from a failure message, en first.
func mineLanguages(errMsg string) []string {
	m := availableLangsRE.FindStringSubmatch(errMsg)
	if len(m) < 2 {
		return nil
	}
	var langs []string
	hasEn := false
	for _, part := range strings.Split(m[1], ",") {
		lang := strings.TrimSpace(part)
		if lang == "" {
			continue
		}
		if lang == "en" {
			hasEn = true
			continue
		}
		langs = append(langs, lang)
	}
	if hasEn {
		langs = append([]string{"en"}, langs...)
	}
	return langs
}

// selectTrack picks a caption track. Empty lang means the default track.
// Tracks needing a PoToken are skipped. A miss returns availableLanguagesError
// listing what the video does have.
func selectTrack(tracks []captionTrack, lang string) (captionTrack, error) {
	usable := make([]captionTrack, 0, len(tracks))
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
			langs = append(langs, t.LanguageCode)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, errors.New("all caption tracks require PoToken")
	}
	if lang == "" {
		// Prefer a manual track over auto-generated for the default pick.
		for _, t := range usable {
			if t.Kind != "asr" {
				return t, nil
			}
		}
		return usable[0], nil
	}
	for _, t := range usable {
		if t.LanguageCode == lang {
			return t, nil
		}
	}
	return captionTrack{}, &availableLanguagesError{requested: lang, langs: langs}
}

// fetchTrackSegments downloads and parses one caption track.
func fetchTrackSegments(ctx context.Context, track captionTrack) ([]recipe.Segment, error) {
	body, err := fetchCaptionBody(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	segments := parseCaptionBody(body)
	if len(segments) == 0 {
		return nil, errors.New("empty caption payload")
	}
	return segments, nil
}

// parseCaptionBody decodes a caption payload into timed segments.
// Payloads are usually timedtext XML but some endpoints hand back JSON.
func parseCaptionBody(body []byte) []recipe.Segment {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	switch trimmed[0] {
	case '[':
		var items []map[string]any
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return nil
		}
		return normalizeRawItems(items)
	case '{':
		return parseJSON3Events([]byte(trimmed))
	default:
		return parseTimedText(body)
	}
}

// parseTimedText parses YouTube timedtext XML (<text start="S" dur="D">).
func parseTimedText(body []byte) []recipe.Segment {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil
	}
	segments := make([]recipe.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := engine.CleanHTML(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, recipe.Segment{
			OffsetMs:   int(line.Start * 1000),
			DurationMs: int(line.Dur * 1000),
			Text:       text,
		})
	}
	return segments
}

// json3Events is the fmt=json3 caption payload shape.
type json3Events struct {
	Events []struct {
		TStartMs    int `json:"tStartMs"`
		DDurationMs int `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func parseJSON3Events(body []byte) []recipe.Segment {
	var payload json3Events
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	var segments []recipe.Segment
	for _, ev := range payload.Events {
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" || text == "\n" {
			continue
		}
		segments = append(segments, recipe.Segment{
			OffsetMs:   ev.TStartMs,
			DurationMs: ev.DDurationMs,
			Text:       text,
		})
	}
	return segments
}

// Transcript item shapes vary by source. Known offset keys, in priority order,
// then duration and text keys.
var (
	offsetKeys   = []string{"offset", "start", "startTimeMs", "startTime", "time"}
	durationKeys = []string{"duration", "dur"}
	textKeys     = []string{"text", "transcript", "content"}
)

// normalizeRawItems converts loosely-shaped transcript items into segments.
func normalizeRawItems(items []map[string]any) []recipe.Segment {
	segments := make([]recipe.Segment, 0, len(items))
	for _, item := range items {
		if seg, ok := normalizeRawItem(item); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// normalizeRawItem maps one raw transcript item onto a Segment.
// Offset values under 100000 are assumed to be seconds and rescaled to
// milliseconds. Pure heuristic: no transcript starts 100000s in, and no
// source hands out sub-100ms millisecond offsets for every line.
func normalizeRawItem(item map[string]any) (recipe.Segment, bool) {
	offset, ok := firstNumber(item, offsetKeys)
	if !ok {
		return recipe.Segment{}, false
	}
	duration, _ := firstNumber(item, durationKeys)
	text, ok := firstString(item, textKeys)
	if !ok {
		return recipe.Segment{}, false
	}
	text = engine.CleanHTML(html.UnescapeString(text))
	if text == "" {
		return recipe.Segment{}, false
	}
	if offset < 100000 {
		offset *= 1000
	}
	return recipe.Segment{
		OffsetMs:   int(offset),
		DurationMs: int(duration),
		Text:       text,
	}, true
}

func firstNumber(item map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		switch v := item[key].(type) {
		case float64:
			return v, true
		case string:
			var f float64
			if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func firstString(item map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// Loose fallbacks when the player response JSON cannot be brace-walked.
var (
	captionTracksRE = regexp.MustCompile(`"captionTracks":(\[[^\]]*\])`)
	baseURLRE       = regexp.MustCompile(`"baseUrl":"([^"]+)"`)
)

// scrapeCaptionTracks extracts caption tracks from watch page HTML.
func scrapeCaptionTracks(body []byte) ([]captionTrack, error) {
	if idx := strings.Index(string(body), ytInitialPlayerResponseMarker); idx >= 0 {
		if jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):]); jsonData != nil {
			var playerResp innertubePlayerResp
			if err := json.Unmarshal(jsonData, &playerResp); err == nil {
				if tracks, err := captionTracksFor(&playerResp); err == nil {
					return tracks, nil
				}
			}
		}
	}

	// Looser scan: find the captionTracks array anywhere in the page.
	if m := captionTracksRE.FindSubmatch(body); len(m) >= 2 {
		var tracks []captionTrack
		if err := json.Unmarshal(m[1], &tracks); err == nil && len(tracks) > 0 {
			return tracks, nil
		}
	}

	// Last resort: any baseUrl that looks like a timedtext endpoint.
	for _, m := range baseURLRE.FindAllSubmatch(body, -1) {
		raw := strings.ReplaceAll(string(m[1]), `&`, "&")
		if strings.Contains(raw, "/api/timedtext") {
			return []captionTrack{{BaseURL: raw}}, nil
		}
	}

	return nil, errors.New("no caption tracks in watch page")
}

// fetchTranscriptViaPageScrape scrapes the watch page HTML for a caption
// track URL. Works where the Innertube API is blocked.
func fetchTranscriptViaPageScrape(ctx context.Context, videoID string) ([]recipe.Segment, error) {
	if err := engine.WaitYouTube(ctx); err != nil {
		return nil, err
	}

	body, err := engine.FetchPage(ctx, "https://www.youtube.com/watch?v="+videoID)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	tracks, err := scrapeCaptionTracks(body)
	if err != nil {
		return nil, err
	}

	// Prefer an English track.
	track := tracks[0]
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && !needsPoToken(t.BaseURL) {
			track = t
			break
		}
	}
	return fetchTrackSegments(ctx, track)
}

// FetchYouTubeTranscript fetches timed transcript segments for a video.
// Walks the strategy chain top of file describes. Never fails hard: an
// empty slice with a nil error means no transcript could be obtained.
func FetchYouTubeTranscript(ctx context.Context, videoID string) []recipe.Segment {
	engine.IncrTranscriptRequests()

	playerResp, playerErr := fetchPlayerResponse(ctx, videoID)
	var tracks []captionTrack
	if playerErr == nil {
		tracks, playerErr = captionTracksFor(playerResp)
	}

	var defaultErr error
	if playerErr == nil {
		track, err := selectTrack(tracks, "")
		if err == nil {
			segments, fetchErr := fetchTrackSegments(ctx, track)
			if fetchErr == nil {
				return segments
			}
			langs := make([]string, 0, len(tracks))
			for _, t := range tracks {
				langs = append(langs, t.LanguageCode)
			}
			defaultErr = fmt.Errorf("%w. Available languages: %s", fetchErr, strings.Join(langs, ", "))
		} else {
			defaultErr = err
		}
		slog.Warn("youtube: default track failed, trying explicit languages",
			slog.String("id", videoID), slog.Any("err", defaultErr))

		langs := mineLanguages(defaultErr.Error())
		if len(langs) == 0 {
			langs = fallbackLangs
		}
		if max := engine.Cfg.MaxLangRetries; max > 0 && len(langs) > max {
			langs = langs[:max]
		}
		for _, lang := range langs {
			track, err := selectTrack(tracks, lang)
			if err != nil {
				continue
			}
			segments, err := fetchTrackSegments(ctx, track)
			if err == nil {
				return segments
			}
			slog.Warn("youtube: language track failed",
				slog.String("id", videoID), slog.String("lang", lang), slog.Any("err", err))
		}
	} else {
		slog.Warn("youtube: player response failed, trying page scrape",
			slog.String("id", videoID), slog.Any("err", playerErr))
	}

	segments, err := fetchTranscriptViaPageScrape(ctx, videoID)
	if err != nil {
		slog.Warn("youtube: page scrape failed, no transcript",
			slog.String("id", videoID), slog.Any("err", err))
		engine.IncrTranscriptErrors()
		return nil
	}
	return segments
}
