package quizsession

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryStartAndGet(t *testing.T) {
	r := NewRegistry()
	quizID, ownerID := uuid.New(), uuid.New()

	attempt, err := r.Start(quizID, ownerID, makeQuestions(3))
	require.NoError(t, err)
	assert.Equal(t, quizID, attempt.QuizID)
	assert.Equal(t, ownerID, attempt.OwnerID)

	got, ok := r.Get(attempt.ID, ownerID)
	require.True(t, ok)
	assert.Same(t, attempt, got)
}

func TestRegistryStartRejectsEmptyQuiz(t *testing.T) {
	r := NewRegistry()
	_, err := r.Start(uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestRegistryGetEnforcesOwnership(t *testing.T) {
	r := NewRegistry()
	attempt, err := r.Start(uuid.New(), uuid.New(), makeQuestions(2))
	require.NoError(t, err)

	_, ok := r.Get(attempt.ID, uuid.New())
	assert.False(t, ok, "another owner must not see the attempt")

	_, ok = r.Get(uuid.New(), attempt.OwnerID)
	assert.False(t, ok)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	attempt, err := r.Start(uuid.New(), uuid.New(), makeQuestions(2))
	require.NoError(t, err)

	// Removing with the wrong owner is a no-op.
	r.Remove(attempt.ID, uuid.New())
	_, ok := r.Get(attempt.ID, attempt.OwnerID)
	assert.True(t, ok)

	r.Remove(attempt.ID, attempt.OwnerID)
	_, ok = r.Get(attempt.ID, attempt.OwnerID)
	assert.False(t, ok)
}
