package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"quiznote/internal/models"
)

// DB holds the database connection pool and the query layer.
type DB struct {
	Pool    *pgxpool.Pool
	Queries *Queries
}

// NewDB connects to Postgres using the given URL.
func NewDB(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &DB{
		Pool:    pool,
		Queries: New(pool),
	}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// CreateNote forwards to the query layer so *DB satisfies the generation
// pipeline's Store interface directly.
func (db *DB) CreateNote(ctx context.Context, params CreateNoteParams) (models.Note, error) {
	return db.Queries.CreateNote(ctx, params)
}

// DeleteNote forwards to the query layer.
func (db *DB) DeleteNote(ctx context.Context, id, ownerID uuid.UUID) error {
	return db.Queries.DeleteNote(ctx, id, ownerID)
}

// CreateQuizWithQuestions writes the quiz row and its questions in a single
// transaction so a quiz can never exist without its questions.
func (db *DB) CreateQuizWithQuestions(ctx context.Context, params CreateQuizParams, questions []models.GeneratedQuestion) (models.Quiz, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after a successful commit

	qtx := db.Queries.WithTx(tx)

	quiz, err := qtx.CreateQuiz(ctx, params)
	if err != nil {
		return models.Quiz{}, err
	}

	if _, err := qtx.CreateQuestions(ctx, quiz.ID, params.OwnerID, questions); err != nil {
		return models.Quiz{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Quiz{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return quiz, nil
}
