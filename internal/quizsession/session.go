// Package quizsession implements the interactive quiz-taking state
// machine. Sessions are ephemeral: they live in memory for the duration
// of an attempt and are never persisted.
package quizsession

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"quiznote/internal/models"
)

// Phase is the session state. Transitions:
// Answering -> Reviewing -> Finished, with Reviewing -> Answering (jump
// back to a question) and Finished -> Answering (retake).
type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseReviewing Phase = "reviewing"
	PhaseFinished  Phase = "finished"
)

var (
	// ErrNoQuestions is returned when a session is started on an empty
	// question set; the caller presents an empty state instead.
	ErrNoQuestions = errors.New("quiz has no questions")
	// ErrWrongPhase is returned by transitions invalid for the current phase.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
)

// Session holds one attempt. The master order is kept separately from the
// shuffled display order so a retake can reshuffle afresh. Scoring always
// runs against the shuffled order the user answered against.
type Session struct {
	master    []models.Question
	questions []models.Question
	current   int
	answers   map[int]string
	phase     Phase
	rng       *rand.Rand
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the shuffle source, letting tests run deterministically.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// New starts a session over the fetched question set. The set's fetch
// order becomes the master order; the display order is a fresh shuffle.
func New(questions []models.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	s := &Session{
		master:  append([]models.Question(nil), questions...),
		answers: make(map[int]string),
		phase:   PhaseAnswering,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s.questions = s.shuffled()
	return s, nil
}

// shuffled returns a Fisher–Yates permutation of the master order.
func (s *Session) shuffled() []models.Question {
	out := append([]models.Question(nil), s.master...)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// CurrentIndex returns the zero-based position in the shuffled order.
func (s *Session) CurrentIndex() int { return s.current }

// Current returns the question at the current position.
func (s *Session) Current() models.Question { return s.questions[s.current] }

// Questions returns the shuffled display order.
func (s *Session) Questions() []models.Question {
	return append([]models.Question(nil), s.questions...)
}

// Select records an answer for the current question without advancing.
// Re-selecting overwrites the previous choice.
func (s *Session) Select(option string) error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("%w: select during %s", ErrWrongPhase, s.phase)
	}
	found := false
	for _, o := range s.questions[s.current].Options {
		if o == option {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("option %q is not offered by the current question", option)
	}
	s.answers[s.current] = option
	return nil
}

// Next advances to the following question, or enters Reviewing when the
// current question is the last one.
func (s *Session) Next() error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("%w: next during %s", ErrWrongPhase, s.phase)
	}
	if s.current < len(s.questions)-1 {
		s.current++
	} else {
		s.phase = PhaseReviewing
	}
	return nil
}

// Prev steps back one question; at the first question it is a no-op.
func (s *Session) Prev() error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("%w: prev during %s", ErrWrongPhase, s.phase)
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Review jumps straight to the review grid.
func (s *Session) Review() error {
	if s.phase != PhaseAnswering {
		return fmt.Errorf("%w: review during %s", ErrWrongPhase, s.phase)
	}
	s.phase = PhaseReviewing
	return nil
}

// Jump returns from Reviewing to Answering at the chosen question.
func (s *Session) Jump(index int) error {
	if s.phase != PhaseReviewing {
		return fmt.Errorf("%w: jump during %s", ErrWrongPhase, s.phase)
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("question index %d out of range [0,%d)", index, len(s.questions))
	}
	s.current = index
	s.phase = PhaseAnswering
	return nil
}

// Result is the outcome of a finished session.
type Result struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Submit finalizes the attempt and computes the score.
func (s *Session) Submit() (Result, error) {
	if s.phase != PhaseReviewing {
		return Result{}, fmt.Errorf("%w: submit during %s", ErrWrongPhase, s.phase)
	}
	s.phase = PhaseFinished
	return s.Score(), nil
}

// Score counts answers matching the correct answer of the question at the
// same position in the shuffled order. Idempotent: no state changes.
func (s *Session) Score() Result {
	score := 0
	for i, q := range s.questions {
		if s.answers[i] == q.CorrectAnswer {
			score++
		}
	}
	total := len(s.questions)
	return Result{
		Score:      score,
		Total:      total,
		Percentage: int(math.Round(float64(score) / float64(total) * 100)),
	}
}

// Retake restarts a finished session: answers cleared, position reset and
// the display order reshuffled from the master order.
func (s *Session) Retake() error {
	if s.phase != PhaseFinished {
		return fmt.Errorf("%w: retake during %s", ErrWrongPhase, s.phase)
	}
	s.questions = s.shuffled()
	s.answers = make(map[int]string)
	s.current = 0
	s.phase = PhaseAnswering
	return nil
}

// Answered reports per-index whether an answer has been recorded, in
// shuffled order. This backs the review grid's Answered/Empty markers.
func (s *Session) Answered() []bool {
	out := make([]bool, len(s.questions))
	for i := range s.questions {
		_, out[i] = s.answers[i]
	}
	return out
}

// Answers returns a copy of the recorded answers keyed by shuffled index.
func (s *Session) Answers() map[int]string {
	out := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}
