// Package transcript fetches YouTube caption tracks so a lecture video
// can serve as quiz source material.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	videoIDPattern = regexp.MustCompile(`(?:youtube\.com\/(?:[^\/]+\/.+\/|(?:v|e(?:mbed)?)\/|.*[?&]v=)|youtu\.be\/)([^"&?\/\s]{11})`)
	captionPattern = regexp.MustCompile(`<text start="[^"]*" dur="[^"]*">([^<]*)<\/text>`)
	titlePattern   = regexp.MustCompile(`<title>(.+?) - YouTube</title>`)
)

// ErrNoCaptions is returned when a video has no caption track to scrape.
var ErrNoCaptions = errors.New("no captions available for video")

// Fetcher scrapes the caption track of a YouTube video.
type Fetcher struct {
	client *http.Client
}

func New() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch returns the full caption text and the video title for a YouTube
// URL or bare 11-character video ID.
func (f *Fetcher) Fetch(url string) (text string, title string, err error) {
	videoID, err := parseVideoID(url)
	if err != nil {
		return "", "", err
	}

	pageBody, err := f.get(fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID))
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch video page: %w", err)
	}

	if m := titlePattern.FindSubmatch(pageBody); len(m) > 1 {
		title = html.UnescapeString(string(m[1]))
	}

	trackURL, err := captionTrackURL(pageBody, videoID)
	if err != nil {
		return "", "", err
	}

	trackBody, err := f.get(trackURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch caption track: %w", err)
	}

	var sb strings.Builder
	for _, m := range captionPattern.FindAllStringSubmatch(string(trackBody), -1) {
		sb.WriteString(html.UnescapeString(m[1]))
		sb.WriteString(" ")
	}
	if sb.Len() == 0 {
		return "", "", fmt.Errorf("%w: %s", ErrNoCaptions, videoID)
	}
	return sb.String(), title, nil
}

func (f *Fetcher) get(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// captionTrackURL digs the first caption track URL out of the embedded
// player JSON on the watch page.
func captionTrackURL(pageBody []byte, videoID string) (string, error) {
	parts := strings.SplitN(string(pageBody), `"captions":`, 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %s", ErrNoCaptions, videoID)
	}

	end := strings.Index(parts[1], `,"videoDetails`)
	if end < 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCaptions, videoID)
	}

	var captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []struct {
				BaseURL string `json:"baseUrl"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	}
	if err := json.Unmarshal([]byte(parts[1][:end]), &captions); err != nil {
		return "", fmt.Errorf("failed to parse captions metadata: %w", err)
	}

	tracks := captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCaptions, videoID)
	}
	return tracks[0].BaseURL, nil
}

func parseVideoID(url string) (string, error) {
	if len(url) == 11 && !strings.Contains(url, "/") {
		return url, nil
	}
	if m := videoIDPattern.FindStringSubmatch(url); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("invalid YouTube URL or video ID: %q", url)
}
