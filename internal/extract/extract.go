// Package extract turns uploaded files into plain text. PDFs are read
// page by page from the text layer; images go through Tesseract OCR.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/otiai10/gosseract/v2"
)

// MinContentLength is the load-bearing floor from the product design: any
// trimmed source text shorter than this cannot produce a meaningful quiz
// and the pipeline must refuse to proceed.
const MinContentLength = 10

// ErrUnsupportedType is returned for MIME types the extractor cannot handle.
var ErrUnsupportedType = errors.New("unsupported content type")

// Extractor converts file bytes into plain text based on the declared
// MIME type.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Text dispatches on the declared MIME type. OCR quality is not checked;
// any non-empty output is accepted.
func (e *Extractor) Text(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file")
	}

	switch {
	case mimeType == "application/pdf":
		return e.pdfText(data)
	case strings.HasPrefix(mimeType, "image/"):
		return e.imageText(ctx, data)
	case mimeType == "text/plain" || mimeType == "text/markdown":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

// pdfText extracts the text layer of every page in document order and
// joins pages with a newline separator.
func (e *Extractor) pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF (encrypted or corrupt?): %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF page %d: %w", pageNum, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// imageText runs Tesseract over the full image. A fresh client per call
// keeps the extractor safe for concurrent requests.
func (e *Extractor) imageText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("failed to load image for OCR: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// TooShort reports whether trimmed content falls under MinContentLength.
func TooShort(content string) bool {
	return len(strings.TrimSpace(content)) < MinContentLength
}
