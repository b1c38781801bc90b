package groq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptEmbedsContentAndCount(t *testing.T) {
	prompt := BuildPrompt("The mitochondria is the powerhouse of the cell.", 12)

	assert.Contains(t, prompt, "exactly 12 multiple-choice questions")
	assert.Contains(t, prompt, "The mitochondria is the powerhouse of the cell.")
	assert.True(t, strings.HasSuffix(prompt, "The mitochondria is the powerhouse of the cell."),
		"the notes go at the end of the prompt")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	first := BuildPrompt("same notes", 5)
	second := BuildPrompt("same notes", 5)
	assert.Equal(t, first, second)
}

const validQuizJSON = `{
	"summary": "A short summary of the notes.",
	"questions": [
		{
			"question_text": "What is 2+2?",
			"question_type": "CBT",
			"options": ["1", "2", "3", "4"],
			"correct_answer": "4"
		}
	]
}`

func TestParseQuizValidJSON(t *testing.T) {
	quiz, err := ParseQuiz(validQuizJSON)
	require.NoError(t, err)

	assert.Equal(t, "A short summary of the notes.", quiz.Summary)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "What is 2+2?", quiz.Questions[0].QuestionText)
	assert.Equal(t, []string{"1", "2", "3", "4"}, quiz.Questions[0].Options)
	assert.Equal(t, "4", quiz.Questions[0].CorrectAnswer)
}

func TestParseQuizStripsCodeFences(t *testing.T) {
	wrapped := "```json\n" + validQuizJSON + "\n```"
	quiz, err := ParseQuiz(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "A short summary of the notes.", quiz.Summary)
}

func TestParseQuizStripsBareCodeFences(t *testing.T) {
	wrapped := "```\n" + validQuizJSON + "\n```"
	quiz, err := ParseQuiz(wrapped)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
}

func TestParseQuizRejectsEmptyResponse(t *testing.T) {
	_, err := ParseQuiz("")
	assert.ErrorIs(t, err, ErrMalformedOutput)

	_, err = ParseQuiz("```\n```")
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParseQuizRejectsInvalidJSON(t *testing.T) {
	_, err := ParseQuiz(`{"summary": "truncated`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParseQuizRejectsMissingSummary(t *testing.T) {
	_, err := ParseQuiz(`{"questions": [{"question_text": "q", "options": ["a","b","c","d"], "correct_answer": "a"}]}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestParseQuizRejectsMissingQuestions(t *testing.T) {
	_, err := ParseQuiz(`{"summary": "only a summary"}`)
	assert.ErrorIs(t, err, ErrMalformedOutput)
}
