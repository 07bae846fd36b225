package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">Hello &amp;amp; welcome</text>
  <text start="2.5" dur="3.0">to the&amp;#39;s show</text>
  <text start="5.5" dur="1.0">   </text>
  <text start="6.5" dur="2.0"><![CDATA[<i>bye</i> now]]></text>
</transcript>`

// newTestServer serves a watch page whose player response points caption tracks
// at the same test server's /timedtext endpoint.
func newTestServer(t *testing.T, tracksJSON string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/watch"):
			tracks := strings.ReplaceAll(tracksJSON, "{{base}}", srv.URL)
			page := fmt.Sprintf(`<html><script>var ytInitialPlayerResponse = %s;</script></html>`, tracks)
			fmt.Fprint(w, page)
		case strings.HasPrefix(r.URL.Path, "/timedtext"):
			fmt.Fprint(w, sampleTimedText)
		default:
			http.NotFound(w, r)
		}
	}))
	return srv
}

func TestFetchTranscript(t *testing.T) {
	tracks := `{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
		{"baseUrl":"{{base}}/timedtext?lang=en","languageCode":"en"}]}}}`
	srv := newTestServer(t, tracks)
	defer srv.Close()

	c := NewClient([]string{"en"}, 5*time.Second, WithBaseURL(srv.URL))
	text, err := c.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchTranscript: %v", err)
	}
	want := "Hello & welcome to the's show bye now"
	if text != want {
		t.Errorf("transcript: got %q, want %q", text, want)
	}
}

func TestFetchTranscriptNoCaptions(t *testing.T) {
	srv := newTestServer(t, `{"playabilityStatus":{"status":"OK"}}`)
	defer srv.Close()

	c := NewClient([]string{"en"}, 5*time.Second, WithBaseURL(srv.URL))
	_, err := c.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrTranscriptUnavailable) {
		t.Errorf("expected ErrTranscriptUnavailable, got %v", err)
	}
}

func TestFetchTranscriptUnavailableReason(t *testing.T) {
	srv := newTestServer(t, `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"This video is private"}}`)
	defer srv.Close()

	c := NewClient([]string{"en"}, 5*time.Second, WithBaseURL(srv.URL))
	_, err := c.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrTranscriptUnavailable) {
		t.Fatalf("expected ErrTranscriptUnavailable, got %v", err)
	}
	// The underlying cause survives in the wrapped message for logs.
	if !strings.Contains(err.Error(), "private") {
		t.Errorf("cause lost from error: %v", err)
	}
}

func TestFetchTranscriptNetworkError(t *testing.T) {
	c := NewClient([]string{"en"}, 500*time.Millisecond, WithBaseURL("http://127.0.0.1:1"))
	_, err := c.FetchTranscript(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrTranscriptUnavailable) {
		t.Errorf("expected ErrTranscriptUnavailable, got %v", err)
	}
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1", LanguageCode: "de"},
		{BaseURL: "u2", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u3", LanguageCode: "en"},
	}
	got := pickTrack(tracks, []string{"en"})
	if got.BaseURL != "u3" {
		t.Errorf("manual en track should win, got %s", got.BaseURL)
	}

	// Only auto-generated in the preferred language
	got = pickTrack(tracks[:2], []string{"en"})
	if got.BaseURL != "u2" {
		t.Errorf("asr en track should be picked, got %s", got.BaseURL)
	}

	// No preferred language at all: fall back to first track
	got = pickTrack(tracks[:1], []string{"fr"})
	if got.BaseURL != "u1" {
		t.Errorf("first track fallback, got %s", got.BaseURL)
	}
}

func TestExtractJSON(t *testing.T) {
	data := []byte(`junk {"a":{"b":"closing } inside string"},"c":1}; more junk`)
	got := extractJSON(data)
	want := `{"a":{"b":"closing } inside string"},"c":1}`
	if string(got) != want {
		t.Errorf("extractJSON: got %s", got)
	}
	if extractJSON([]byte("no braces here")) != nil {
		t.Error("expected nil for input without JSON")
	}
	if extractJSON([]byte(`{"unterminated":`)) != nil {
		t.Error("expected nil for unbalanced JSON")
	}
}

func TestCleanCaptionText(t *testing.T) {
	if got := cleanCaptionText("it&amp;#39;s  <b>fine</b>\nnow"); got != "it's fine now" {
		t.Errorf("cleanCaptionText: got %q", got)
	}
}
