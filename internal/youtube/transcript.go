package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrTranscriptUnavailable is returned when a video's captions cannot be fetched
// for any reason: no caption tracks, captions disabled, private or removed video,
// or a network failure. The underlying cause is kept in the wrapped message for
// logs; callers surface one generic message to the user.
var ErrTranscriptUnavailable = errors.New("transcript unavailable")

const (
	playerResponseMarker = "ytInitialPlayerResponse = "
	watchPageLimit       = 6 * 1024 * 1024
	timedTextLimit       = 512 * 1024
	defaultUserAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches caption transcripts by scraping the watch page's
// ytInitialPlayerResponse and downloading the chosen track's timedtext XML.
type Client struct {
	baseURL   string
	languages []string
	httpc     *http.Client
	logger    *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the YouTube base URL (tests point this at a local server).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets a logger for debug output (track selection, fetch failures).
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a transcript client. languages is the caption language
// preference order; timeout bounds each outbound request.
func NewClient(languages []string, timeout time.Duration, opts ...ClientOption) *Client {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	c := &Client{
		baseURL:   "https://www.youtube.com",
		languages: languages,
		httpc:     &http.Client{Timeout: timeout},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTranscript fetches the caption transcript for videoID and returns the
// caption lines joined by single spaces in their original temporal order.
// Every failure is collapsed into ErrTranscriptUnavailable; the cause is logged
// at debug level and kept in the wrapped message.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	text, err := c.fetchViaWatchPage(ctx, videoID)
	if err != nil {
		c.logger.Debug("transcript fetch failed",
			zap.String("video_id", videoID), zap.Error(err))
		return "", fmt.Errorf("%w for video %s: %v", ErrTranscriptUnavailable, videoID, err)
	}
	return text, nil
}

// fetchViaWatchPage scrapes the watch page HTML, extracts the player response,
// picks a caption track, and downloads its timedtext XML.
func (c *Client) fetchViaWatchPage(ctx context.Context, videoID string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/watch?v="+videoID, watchPageLimit)
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return "", errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return "", errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if player.Captions == nil {
		if ps := player.PlayabilityStatus; ps != nil && ps.Reason != "" {
			return "", fmt.Errorf("captions unavailable: %s", ps.Reason)
		}
		return "", errors.New("no captions in player response")
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", errors.New("no caption tracks")
	}

	track := pickTrack(tracks, c.languages)
	c.logger.Debug("caption track selected",
		zap.String("video_id", videoID),
		zap.String("language", track.LanguageCode),
		zap.String("kind", track.Kind))
	return c.fetchTimedText(ctx, track.BaseURL)
}

// pickTrack selects the caption track to use: a manual track in a preferred
// language first, then an auto-generated one, then any English track, then the
// first track available.
func pickTrack(tracks []captionTrack, langs []string) captionTrack {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// fetchTimedText downloads and parses a timedtext XML caption URL, joining the
// cleaned caption lines with single spaces.
func (c *Client) fetchTimedText(ctx context.Context, captionURL string) (string, error) {
	body, err := c.get(ctx, captionURL, timedTextLimit)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := cleanCaptionText(line.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	if sb.Len() == 0 {
		return "", errors.New("empty transcript")
	}
	return sb.String(), nil
}

func (c *Client) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// extractJSON returns the balanced JSON object starting at the first '{' in data,
// or nil if none is found. Tracks string literals so braces inside them don't count.
func extractJSON(data []byte) []byte {
	start := -1
	for i, b := range data {
		if b == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(data); i++ {
		b := data[i]
		if escaped {
			escaped = false
			continue
		}
		switch b {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[start : i+1]
				}
			}
		}
	}
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// cleanCaptionText unescapes HTML entities, strips markup tags, and collapses
// whitespace (caption lines often contain "&amp;#39;" style double escaping and
// embedded newlines).
func cleanCaptionText(s string) string {
	s = html.UnescapeString(html.UnescapeString(s))
	s = tagPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
