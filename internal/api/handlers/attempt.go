package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"quiznote/internal/models"
	"quiznote/internal/quizsession"
)

// questionView is a question as shown while answering. The correct
// answer never leaves the server before the attempt is finished.
type questionView struct {
	Index        int      `json:"index"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

func viewOf(index int, q models.Question) questionView {
	return questionView{
		Index:        index,
		QuestionText: q.QuestionText,
		Options:      q.Options,
	}
}

// attemptState is the full session snapshot sent after every transition.
type attemptState struct {
	AttemptID       uuid.UUID           `json:"attemptId"`
	QuizID          uuid.UUID           `json:"quizId"`
	Phase           quizsession.Phase   `json:"phase"`
	Total           int                 `json:"total"`
	CurrentIndex    int                 `json:"currentIndex"`
	CurrentQuestion *questionView       `json:"currentQuestion,omitempty"`
	Answered        []bool              `json:"answered"`
	SelectedAnswer  string              `json:"selectedAnswer,omitempty"`
	Result          *quizsession.Result `json:"result,omitempty"`
}

func stateOf(attempt *quizsession.Attempt) attemptState {
	s := attempt.Session
	state := attemptState{
		AttemptID:    attempt.ID,
		QuizID:       attempt.QuizID,
		Phase:        s.Phase(),
		Total:        s.Len(),
		CurrentIndex: s.CurrentIndex(),
		Answered:     s.Answered(),
	}
	switch s.Phase() {
	case quizsession.PhaseAnswering:
		view := viewOf(s.CurrentIndex(), s.Current())
		state.CurrentQuestion = &view
		state.SelectedAnswer = s.Answers()[s.CurrentIndex()]
	case quizsession.PhaseFinished:
		result := s.Score()
		state.Result = &result
	}
	return state
}

// HandleStartAttempt begins an interactive session over a quiz's
// questions. A quiz with no questions yields an empty state rather than
// an error.
func (h *Handler) HandleStartAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	if _, err := h.DB.Queries.GetQuizByID(c.Request.Context(), quizID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}
		respondError(c, http.StatusInternalServerError, "fetch quiz", err)
		return
	}

	questions, err := h.DB.Queries.GetQuestionsByQuizID(c.Request.Context(), quizID, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "fetch questions", err)
		return
	}

	attempt, err := h.Attempts.Start(quizID, userID, questions)
	if err != nil {
		if errors.Is(err, quizsession.ErrNoQuestions) {
			c.JSON(http.StatusOK, gin.H{"empty": true, "quizId": quizID})
			return
		}
		respondError(c, http.StatusInternalServerError, "start attempt", err)
		return
	}

	c.JSON(http.StatusOK, stateOf(attempt))
}

// attemptFor resolves the attempt in the URL for the current user, or
// writes the error response and returns nil.
func (h *Handler) attemptFor(c *gin.Context) *quizsession.Attempt {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil
	}

	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attempt ID"})
		return nil
	}

	attempt, ok := h.Attempts.Get(attemptID, userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attempt not found"})
		return nil
	}
	return attempt
}

// transition applies a session mutation and responds with the updated
// state. Phase violations map to 409.
func (h *Handler) transition(c *gin.Context, apply func(*quizsession.Session) error) {
	attempt := h.attemptFor(c)
	if attempt == nil {
		return
	}

	if err := apply(attempt.Session); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, quizsession.ErrWrongPhase) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stateOf(attempt))
}

// HandleGetAttempt returns the current session state.
func (h *Handler) HandleGetAttempt(c *gin.Context) {
	attempt := h.attemptFor(c)
	if attempt == nil {
		return
	}
	c.JSON(http.StatusOK, stateOf(attempt))
}

// HandleSelectAnswer records an answer for the current question.
func (h *Handler) HandleSelectAnswer(c *gin.Context) {
	var body struct {
		Option string `json:"option"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must include an option"})
		return
	}
	h.transition(c, func(s *quizsession.Session) error {
		return s.Select(body.Option)
	})
}

// HandleNextQuestion advances the session, entering review after the
// last question.
func (h *Handler) HandleNextQuestion(c *gin.Context) {
	h.transition(c, (*quizsession.Session).Next)
}

// HandlePrevQuestion steps back one question.
func (h *Handler) HandlePrevQuestion(c *gin.Context) {
	h.transition(c, (*quizsession.Session).Prev)
}

// HandleReviewAttempt jumps straight to the review grid.
func (h *Handler) HandleReviewAttempt(c *gin.Context) {
	h.transition(c, (*quizsession.Session).Review)
}

// HandleJumpToQuestion returns from review to a chosen question.
func (h *Handler) HandleJumpToQuestion(c *gin.Context) {
	var body struct {
		Index *int `json:"index"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request must include a question index"})
		return
	}
	h.transition(c, func(s *quizsession.Session) error {
		return s.Jump(*body.Index)
	})
}

// HandleFinishAttempt submits the attempt and returns the score.
func (h *Handler) HandleFinishAttempt(c *gin.Context) {
	h.transition(c, func(s *quizsession.Session) error {
		_, err := s.Submit()
		return err
	})
}

// HandleRetakeAttempt restarts a finished attempt with a fresh shuffle.
func (h *Handler) HandleRetakeAttempt(c *gin.Context) {
	h.transition(c, (*quizsession.Session).Retake)
}

// HandleAbandonAttempt drops the attempt from the registry.
func (h *Handler) HandleAbandonAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attempt ID"})
		return
	}

	h.Attempts.Remove(attemptID, userID)
	c.Status(http.StatusNoContent)
}
