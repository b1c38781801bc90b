package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=shared&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		got, err := parseVideoID(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseVideoIDRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "https://example.com/watch?v=dQw4w9WgXcQ", "not a url", "short"} {
		_, err := parseVideoID(input)
		assert.Error(t, err, input)
	}
}

func TestCaptionTrackURL(t *testing.T) {
	page := []byte(`{"foo":1,"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc"}]}},"videoDetails":{"videoId":"abc"}}`)
	url, err := captionTrackURL(page, "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/api/timedtext?v=abc", url)
}

func TestCaptionTrackURLMissingCaptions(t *testing.T) {
	_, err := captionTrackURL([]byte(`{"videoDetails":{"videoId":"abc"}}`), "abc")
	assert.ErrorIs(t, err, ErrNoCaptions)

	_, err = captionTrackURL([]byte(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[]}},"videoDetails":{}}`), "abc")
	assert.ErrorIs(t, err, ErrNoCaptions)
}
