// Package youtube provides YouTube URL parsing and caption transcript fetching.
package youtube

import (
	"fmt"
	"regexp"
)

// videoIDPattern matches the four supported URL shapes, capturing the
// 11-character video identifier.
var videoIDPattern = regexp.MustCompile(
	`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID extracts the 11-character video identifier from a YouTube URL.
// Supported shapes: youtube.com/watch?v=, youtube.com/embed/, youtube.com/shorts/,
// and youtu.be/. Returns ("", false) when no shape matches; an unrecognized URL is
// not an error, the caller decides how to surface it.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ThumbnailURL returns the max-resolution thumbnail URL for a video.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

// WatchURL returns the canonical watch page URL for a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
