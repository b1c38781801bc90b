package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// QuestionTypeCBT is the question tag produced by the generator. Every
// generated question is a computer-based-test multiple-choice item.
const QuestionTypeCBT = "CBT"

// OptionsPerQuestion is the fixed option count every question must carry.
const OptionsPerQuestion = 4

// User is an account row. Users sign in with Google or present the
// api_token as a bearer credential.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      pgtype.Text `json:"name"`
	GoogleID  pgtype.Text `json:"-"`
	Picture   pgtype.Text `json:"picture"`
	APIToken  pgtype.Text `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}

// Note is the captured source material for one generation request.
// Immutable after creation except for the optional file URL backfill.
type Note struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	FileURL   pgtype.Text `json:"file_url"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	CreatedAt time.Time   `json:"created_at"`
}

// Quiz summarizes one note. Structurally notes:quizzes is 1:N but the
// generator only ever creates one quiz per note.
type Quiz struct {
	ID        uuid.UUID `json:"id"`
	NoteID    uuid.UUID `json:"note_id"`
	Summary   string    `json:"summary"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Question is one multiple-choice item. Invariants enforced before
// persistence: exactly 4 options and CorrectAnswer equal to one of them.
type Question struct {
	ID            uuid.UUID `json:"id"`
	QuizID        uuid.UUID `json:"quiz_id"`
	QuestionText  string    `json:"question_text"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	QuestionType  string    `json:"question_type"`
	OwnerID       uuid.UUID `json:"owner_id"`
}

// GeneratedQuiz is the JSON object Groq is instructed to return.
type GeneratedQuiz struct {
	Summary   string              `json:"summary"`
	Questions []GeneratedQuestion `json:"questions"`
}

// GeneratedQuestion is one question as returned by the model, before
// validation.
type GeneratedQuestion struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizListItem is one row of the dashboard listing: the quiz joined with
// its note title and question count.
type QuizListItem struct {
	ID            uuid.UUID `json:"id"`
	NoteID        uuid.UUID `json:"note_id"`
	NoteTitle     string    `json:"note_title"`
	Summary       string    `json:"summary"`
	QuestionCount int64     `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorResponse is the JSON error envelope for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
