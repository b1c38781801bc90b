package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"quiznote/internal/models"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx so the same queries
// run inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Queries is the hand-written query layer over DBTX.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given connection or pool.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// --- Users ---

type CreateUserParams struct {
	Email    string
	Name     pgtype.Text
	GoogleID pgtype.Text
	Picture  pgtype.Text
}

const createUser = `
INSERT INTO users (email, name, google_id, picture)
VALUES ($1, $2, $3, $4)
RETURNING id, email, name, google_id, picture, api_token, created_at`

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (models.User, error) {
	row := q.db.QueryRow(ctx, createUser, params.Email, params.Name, params.GoogleID, params.Picture)
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &u.Picture, &u.APIToken, &u.CreatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, name, google_id, picture, api_token, created_at
FROM users WHERE email = $1`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &u.Picture, &u.APIToken, &u.CreatedAt)
	return u, err
}

const getUserByAPIToken = `
SELECT id, email, name, google_id, picture, api_token, created_at
FROM users WHERE api_token = $1`

func (q *Queries) GetUserByAPIToken(ctx context.Context, token string) (models.User, error) {
	row := q.db.QueryRow(ctx, getUserByAPIToken, token)
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &u.Picture, &u.APIToken, &u.CreatedAt)
	return u, err
}

// --- Notes ---

type CreateNoteParams struct {
	Title   string
	Content string
	OwnerID uuid.UUID
}

const createNote = `
INSERT INTO notes (title, content, owner_id)
VALUES ($1, $2, $3)
RETURNING id, title, content, file_url, owner_id, created_at`

func (q *Queries) CreateNote(ctx context.Context, params CreateNoteParams) (models.Note, error) {
	row := q.db.QueryRow(ctx, createNote, params.Title, params.Content, params.OwnerID)
	var n models.Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.FileURL, &n.OwnerID, &n.CreatedAt)
	return n, err
}

const deleteNote = `DELETE FROM notes WHERE id = $1 AND owner_id = $2`

func (q *Queries) DeleteNote(ctx context.Context, id, ownerID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteNote, id, ownerID)
	return err
}

const setNoteFileURL = `UPDATE notes SET file_url = $3 WHERE id = $1 AND owner_id = $2`

func (q *Queries) SetNoteFileURL(ctx context.Context, id, ownerID uuid.UUID, fileURL string) error {
	_, err := q.db.Exec(ctx, setNoteFileURL, id, ownerID, fileURL)
	return err
}

// --- Quizzes ---

type CreateQuizParams struct {
	NoteID  uuid.UUID
	Summary string
	OwnerID uuid.UUID
}

const createQuiz = `
INSERT INTO quizzes (note_id, summary, owner_id)
VALUES ($1, $2, $3)
RETURNING id, note_id, summary, owner_id, created_at`

func (q *Queries) CreateQuiz(ctx context.Context, params CreateQuizParams) (models.Quiz, error) {
	row := q.db.QueryRow(ctx, createQuiz, params.NoteID, params.Summary, params.OwnerID)
	var qz models.Quiz
	err := row.Scan(&qz.ID, &qz.NoteID, &qz.Summary, &qz.OwnerID, &qz.CreatedAt)
	return qz, err
}

const getQuizByID = `
SELECT id, note_id, summary, owner_id, created_at
FROM quizzes WHERE id = $1 AND owner_id = $2`

// GetQuizByID fetches a quiz scoped to its owner. Another owner's quiz
// yields pgx.ErrNoRows, indistinguishable from a missing one.
func (q *Queries) GetQuizByID(ctx context.Context, id, ownerID uuid.UUID) (models.Quiz, error) {
	row := q.db.QueryRow(ctx, getQuizByID, id, ownerID)
	var qz models.Quiz
	err := row.Scan(&qz.ID, &qz.NoteID, &qz.Summary, &qz.OwnerID, &qz.CreatedAt)
	return qz, err
}

const listQuizzesByOwner = `
SELECT q.id, q.note_id, n.title, q.summary,
       (SELECT count(*) FROM questions qu WHERE qu.quiz_id = q.id) AS question_count,
       q.created_at
FROM quizzes q
JOIN notes n ON n.id = q.note_id
WHERE q.owner_id = $1
ORDER BY q.created_at DESC`

func (q *Queries) ListQuizzesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.QuizListItem, error) {
	rows, err := q.db.Query(ctx, listQuizzesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.QuizListItem
	for rows.Next() {
		var it models.QuizListItem
		if err := rows.Scan(&it.ID, &it.NoteID, &it.NoteTitle, &it.Summary, &it.QuestionCount, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const deleteQuiz = `DELETE FROM quizzes WHERE id = $1 AND owner_id = $2`

// DeleteQuiz removes a quiz owned by ownerID. Question rows go with it via
// ON DELETE CASCADE. Returns the number of rows deleted so callers can
// distinguish not-found.
func (q *Queries) DeleteQuiz(ctx context.Context, id, ownerID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuiz, id, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// --- Questions ---

// CreateQuestions bulk-inserts the generated questions for a quiz using
// the Postgres COPY protocol. IDs are generated client-side.
func (q *Queries) CreateQuestions(ctx context.Context, quizID, ownerID uuid.UUID, questions []models.GeneratedQuestion) (int64, error) {
	rows := make([][]any, len(questions))
	for i, question := range questions {
		questionType := question.QuestionType
		if questionType == "" {
			questionType = models.QuestionTypeCBT
		}
		rows[i] = []any{
			uuid.New(),
			quizID,
			question.QuestionText,
			question.Options,
			question.CorrectAnswer,
			questionType,
			ownerID,
		}
	}

	return q.db.CopyFrom(ctx,
		pgx.Identifier{"questions"},
		[]string{"id", "quiz_id", "question_text", "options", "correct_answer", "question_type", "owner_id"},
		pgx.CopyFromRows(rows),
	)
}

const getQuestionsByQuizID = `
SELECT id, quiz_id, question_text, options, correct_answer, question_type, owner_id
FROM questions WHERE quiz_id = $1 AND owner_id = $2
ORDER BY id`

// GetQuestionsByQuizID returns the master order used by quiz sessions.
func (q *Queries) GetQuestionsByQuizID(ctx context.Context, quizID, ownerID uuid.UUID) ([]models.Question, error) {
	rows, err := q.db.Query(ctx, getQuestionsByQuizID, quizID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		if err := rows.Scan(&question.ID, &question.QuizID, &question.QuestionText,
			&question.Options, &question.CorrectAnswer, &question.QuestionType, &question.OwnerID); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}
