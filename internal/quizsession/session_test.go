package quizsession

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiznote/internal/models"
)

func makeQuestions(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:            uuid.New(),
			QuestionText:  "question " + string(rune('A'+i)),
			Options:       []string{"alpha", "beta", "gamma", "delta"},
			CorrectAnswer: "alpha",
			QuestionType:  models.QuestionTypeCBT,
		}
	}
	return questions
}

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()
	s, err := New(makeQuestions(n), WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, err)
	return s
}

func TestNewRejectsEmptyQuestionSet(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestShuffleIsPermutationOfInput(t *testing.T) {
	input := makeQuestions(10)
	s, err := New(input, WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)

	shuffled := s.Questions()
	require.Len(t, shuffled, len(input))

	seen := make(map[uuid.UUID]int)
	for _, q := range shuffled {
		seen[q.ID]++
	}
	for _, q := range input {
		assert.Equal(t, 1, seen[q.ID], "question %s should appear exactly once", q.ID)
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	input := makeQuestions(10)

	first, err := New(input, WithRand(rand.New(rand.NewSource(99))))
	require.NoError(t, err)
	second, err := New(input, WithRand(rand.New(rand.NewSource(99))))
	require.NoError(t, err)

	assert.Equal(t, first.Questions(), second.Questions())
}

func TestSelectValidatesOption(t *testing.T) {
	s := newTestSession(t, 3)

	require.NoError(t, s.Select("beta"))
	assert.Equal(t, "beta", s.Answers()[0])

	err := s.Select("epsilon")
	assert.Error(t, err)
	assert.Equal(t, "beta", s.Answers()[0], "a rejected option must not overwrite the answer")
}

func TestReselectOverwritesAnswer(t *testing.T) {
	s := newTestSession(t, 3)

	require.NoError(t, s.Select("beta"))
	require.NoError(t, s.Select("gamma"))
	assert.Equal(t, "gamma", s.Answers()[0])
}

func TestNextAtLastQuestionEntersReview(t *testing.T) {
	s := newTestSession(t, 2)

	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, PhaseAnswering, s.Phase())

	require.NoError(t, s.Next())
	assert.Equal(t, PhaseReviewing, s.Phase())
}

func TestPrevAtFirstQuestionIsNoOp(t *testing.T) {
	s := newTestSession(t, 3)

	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.CurrentIndex())

	require.NoError(t, s.Next())
	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestAnsweredGridTracksPartialProgress(t *testing.T) {
	s := newTestSession(t, 10)

	for i := 0; i < 7; i++ {
		require.NoError(t, s.Select("alpha"))
		require.NoError(t, s.Next())
	}
	require.NoError(t, s.Review())

	answered := s.Answered()
	require.Len(t, answered, 10)
	count := 0
	for _, a := range answered {
		if a {
			count++
		}
	}
	assert.Equal(t, 7, count)
}

func TestJumpReturnsToAnswering(t *testing.T) {
	s := newTestSession(t, 5)
	require.NoError(t, s.Review())

	assert.Error(t, s.Jump(5), "out-of-range index must be rejected")
	assert.Error(t, s.Jump(-1))

	require.NoError(t, s.Jump(3))
	assert.Equal(t, PhaseAnswering, s.Phase())
	assert.Equal(t, 3, s.CurrentIndex())
}

func TestSubmitScoresAgainstShuffledOrder(t *testing.T) {
	s := newTestSession(t, 4)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Select(s.Current().CorrectAnswer))
		require.NoError(t, s.Next())
	}

	result, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 4, result.Score)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, PhaseFinished, s.Phase())
}

func TestScoreIsIdempotent(t *testing.T) {
	s := newTestSession(t, 3)
	require.NoError(t, s.Select(s.Current().CorrectAnswer))
	require.NoError(t, s.Review())

	first, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, first, s.Score())
	assert.Equal(t, first, s.Score())
}

func TestPercentageRounds(t *testing.T) {
	s := newTestSession(t, 3)
	require.NoError(t, s.Select(s.Current().CorrectAnswer))
	require.NoError(t, s.Review())

	result, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 33, result.Percentage)
}

func TestUnansweredQuestionsScoreZero(t *testing.T) {
	s := newTestSession(t, 5)
	require.NoError(t, s.Review())

	result, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 0, result.Percentage)
}

func TestRetakeResetsAndReshuffles(t *testing.T) {
	s := newTestSession(t, 8)
	before := s.Questions()

	require.NoError(t, s.Select("beta"))
	require.NoError(t, s.Review())
	_, err := s.Submit()
	require.NoError(t, err)

	require.NoError(t, s.Retake())
	assert.Equal(t, PhaseAnswering, s.Phase())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Empty(t, s.Answers())

	// Same question set, independently shuffled from the master order.
	after := s.Questions()
	require.Len(t, after, len(before))
	ids := make(map[uuid.UUID]bool)
	for _, q := range before {
		ids[q.ID] = true
	}
	for _, q := range after {
		assert.True(t, ids[q.ID])
	}
}

func TestPhaseGuards(t *testing.T) {
	s := newTestSession(t, 2)

	// Answering: review-phase and finished-phase transitions rejected.
	assert.ErrorIs(t, s.Jump(0), ErrWrongPhase)
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.ErrorIs(t, s.Retake(), ErrWrongPhase)

	require.NoError(t, s.Review())

	// Reviewing: answering-phase transitions rejected.
	assert.ErrorIs(t, s.Select("alpha"), ErrWrongPhase)
	assert.ErrorIs(t, s.Next(), ErrWrongPhase)
	assert.ErrorIs(t, s.Prev(), ErrWrongPhase)
	assert.ErrorIs(t, s.Review(), ErrWrongPhase)

	_, err = s.Submit()
	require.NoError(t, err)

	// Finished: only retake is allowed.
	assert.ErrorIs(t, s.Select("alpha"), ErrWrongPhase)
	assert.ErrorIs(t, s.Jump(0), ErrWrongPhase)
	require.NoError(t, s.Retake())
}
