package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPassthroughForPlainText(t *testing.T) {
	e := New()

	for _, mimeType := range []string{"text/plain", "text/markdown"} {
		got, err := e.Text(context.Background(), []byte("# My Notes\nsome content"), mimeType)
		require.NoError(t, err, mimeType)
		assert.Equal(t, "# My Notes\nsome content", got)
	}
}

func TestTextRejectsEmptyFile(t *testing.T) {
	e := New()
	_, err := e.Text(context.Background(), nil, "text/plain")
	assert.Error(t, err)
}

func TestTextRejectsUnsupportedMIME(t *testing.T) {
	e := New()

	for _, mimeType := range []string{"application/zip", "video/mp4", "application/msword", ""} {
		_, err := e.Text(context.Background(), []byte("data"), mimeType)
		assert.ErrorIs(t, err, ErrUnsupportedType, mimeType)
	}
}

func TestTextRejectsCorruptPDF(t *testing.T) {
	e := New()
	_, err := e.Text(context.Background(), []byte("not a pdf at all"), "application/pdf")
	assert.Error(t, err)
}

func TestTooShort(t *testing.T) {
	assert.True(t, TooShort(""))
	assert.True(t, TooShort("   \n\t  "))
	assert.True(t, TooShort("123456789"))         // 9 chars
	assert.True(t, TooShort("  123456789  "))     // 9 after trimming
	assert.False(t, TooShort("1234567890"))       // exactly the floor
	assert.False(t, TooShort("plenty of content to work with"))
}
