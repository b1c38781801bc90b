// Package generator orchestrates quiz generation: content resolution,
// the Groq call, invariant validation and persistence of the note, quiz
// and question rows.
package generator

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/google/uuid"

	"quiznote/internal/db"
	"quiznote/internal/extract"
	"quiznote/internal/models"
)

const (
	// DefaultTitle is used when a request names neither a title nor a file.
	DefaultTitle = "New Study Session"
	// MaxQuestionCount mirrors the largest count the generator UI offers.
	MaxQuestionCount = 70
)

// Store is the slice of the persistence gateway the pipeline needs.
type Store interface {
	CreateNote(ctx context.Context, params db.CreateNoteParams) (models.Note, error)
	DeleteNote(ctx context.Context, id, ownerID uuid.UUID) error
	CreateQuizWithQuestions(ctx context.Context, params db.CreateQuizParams, questions []models.GeneratedQuestion) (models.Quiz, error)
}

// ModelClient generates a quiz from plain text.
type ModelClient interface {
	GenerateQuiz(ctx context.Context, content string, count int) (*models.GeneratedQuiz, error)
}

// Extractor converts file bytes into plain text.
type Extractor interface {
	Text(ctx context.Context, data []byte, mimeType string) (string, error)
}

// TranscriptFetcher resolves a video URL into caption text and a title.
type TranscriptFetcher interface {
	Fetch(url string) (text string, title string, err error)
}

// Generator runs the generation pipeline. All collaborators are injected;
// the package holds no global state.
type Generator struct {
	store       Store
	model       ModelClient
	extractor   Extractor
	transcripts TranscriptFetcher
}

func New(store Store, model ModelClient, extractor Extractor, transcripts TranscriptFetcher) *Generator {
	return &Generator{
		store:       store,
		model:       model,
		extractor:   extractor,
		transcripts: transcripts,
	}
}

// Request carries one generation call. Exactly one content source is used,
// preferred in this order: FileData, VideoURL, Content.
type Request struct {
	Content  string
	Title    string
	Count    int
	VideoURL string
	FileData []byte
	FileName string
	FileMIME string
}

// Result identifies what a successful generation persisted.
type Result struct {
	NoteID        uuid.UUID `json:"noteId"`
	QuizID        uuid.UUID `json:"quizId"`
	Summary       string    `json:"summary"`
	QuestionCount int       `json:"questionCount"`
}

// Generate runs the pipeline for one owner. Every stage fails fast; after
// the note row exists, any later failure triggers a compensating note
// delete so no orphaned note survives a failed generation.
func (g *Generator) Generate(ctx context.Context, ownerID uuid.UUID, req Request) (*Result, error) {
	if req.Count < 1 || req.Count > MaxQuestionCount {
		return nil, fmt.Errorf("%w: question count must be between 1 and %d, got %d", ErrInvalidInput, MaxQuestionCount, req.Count)
	}

	content, title, err := g.resolveContent(ctx, req)
	if err != nil {
		return nil, err
	}
	if extract.TooShort(content) {
		return nil, fmt.Errorf("%w: content is too short to generate a quiz (need at least %d characters)", ErrInvalidInput, extract.MinContentLength)
	}

	note, err := g.store.CreateNote(ctx, db.CreateNoteParams{
		Title:   title,
		Content: content,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save note: %v", ErrPersistence, err)
	}

	generated, err := g.model.GenerateQuiz(ctx, content, req.Count)
	if err != nil {
		g.cleanupNote(ctx, note.ID, ownerID)
		return nil, err
	}

	if err := ValidateGenerated(generated); err != nil {
		g.cleanupNote(ctx, note.ID, ownerID)
		return nil, err
	}

	quiz, err := g.store.CreateQuizWithQuestions(ctx, db.CreateQuizParams{
		NoteID:  note.ID,
		Summary: generated.Summary,
		OwnerID: ownerID,
	}, generated.Questions)
	if err != nil {
		g.cleanupNote(ctx, note.ID, ownerID)
		return nil, fmt.Errorf("%w: failed to save quiz: %v", ErrPersistence, err)
	}

	return &Result{
		NoteID:        note.ID,
		QuizID:        quiz.ID,
		Summary:       quiz.Summary,
		QuestionCount: len(generated.Questions),
	}, nil
}

// resolveContent picks the content source and a note title for the request.
func (g *Generator) resolveContent(ctx context.Context, req Request) (content, title string, err error) {
	title = req.Title

	switch {
	case len(req.FileData) > 0:
		content, err = g.extractor.Text(ctx, req.FileData, req.FileMIME)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if title == "" {
			title = req.FileName
		}
	case req.VideoURL != "":
		var videoTitle string
		content, videoTitle, err = g.transcripts.Fetch(req.VideoURL)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if title == "" {
			title = videoTitle
		}
	default:
		content = req.Content
	}

	if title == "" {
		title = DefaultTitle
	}
	return content, title, nil
}

// cleanupNote is the compensating delete for failures past note creation.
// Best effort: a failed cleanup is logged, not returned.
func (g *Generator) cleanupNote(ctx context.Context, noteID, ownerID uuid.UUID) {
	if err := g.store.DeleteNote(ctx, noteID, ownerID); err != nil {
		log.Printf("WARN: failed to clean up note %s after aborted generation: %v", noteID, err)
	}
}

// ValidateGenerated asserts the quiz invariants on model output before
// anything is persisted: exactly 4 options per question and a correct
// answer that appears verbatim among them. One bad question fails the
// whole batch; silently dropping questions would undercount quizzes.
func ValidateGenerated(quiz *models.GeneratedQuiz) error {
	for i, q := range quiz.Questions {
		if q.QuestionText == "" {
			return fmt.Errorf("%w: question %d has empty text", ErrValidation, i+1)
		}
		if len(q.Options) != models.OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options, want %d", ErrValidation, i+1, len(q.Options), models.OptionsPerQuestion)
		}
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("%w: question %d correct answer %q is not one of its options", ErrValidation, i+1, q.CorrectAnswer)
		}
	}
	return nil
}
