package groq

import (
	"encoding/json"
	"fmt"
	"strings"

	"quiznote/internal/models"
)

// ParseQuiz decodes the model's raw reply into a GeneratedQuiz. Code
// fences are stripped first; models occasionally wrap JSON in markdown
// even in JSON mode.
func ParseQuiz(raw string) (*models.GeneratedQuiz, error) {
	jsonText := stripCodeFences(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrMalformedOutput)
	}

	var quiz models.GeneratedQuiz
	if err := json.Unmarshal([]byte(jsonText), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if quiz.Summary == "" {
		return nil, fmt.Errorf("%w: missing summary", ErrMalformedOutput)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: missing questions", ErrMalformedOutput)
	}
	return &quiz, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block if present
// and returns the trimmed payload.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := 3
	if idx := strings.Index(content[start:], "\n"); idx != -1 {
		start += idx + 1
	}
	if end := strings.Index(content[start:], "```"); end != -1 {
		content = content[start : start+end]
	} else {
		content = content[start:]
	}
	return strings.TrimSpace(content)
}
