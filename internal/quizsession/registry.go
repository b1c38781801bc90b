package quizsession

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"quiznote/internal/models"
)

// Attempt binds a session to its quiz and owner. Attempts live only in
// this process; restarting the server abandons them.
type Attempt struct {
	ID        uuid.UUID
	QuizID    uuid.UUID
	OwnerID   uuid.UUID
	StartedAt time.Time
	Session   *Session
}

// Registry is the in-memory attempt table. The lock guards the map only;
// a single user drives a given session, so sessions themselves are not
// locked.
type Registry struct {
	mu       sync.RWMutex
	attempts map[uuid.UUID]*Attempt
}

func NewRegistry() *Registry {
	return &Registry{attempts: make(map[uuid.UUID]*Attempt)}
}

// Start creates an attempt over the given question set.
func (r *Registry) Start(quizID, ownerID uuid.UUID, questions []models.Question, opts ...Option) (*Attempt, error) {
	session, err := New(questions, opts...)
	if err != nil {
		return nil, err
	}

	attempt := &Attempt{
		ID:        uuid.New(),
		QuizID:    quizID,
		OwnerID:   ownerID,
		StartedAt: time.Now(),
		Session:   session,
	}

	r.mu.Lock()
	r.attempts[attempt.ID] = attempt
	r.mu.Unlock()
	return attempt, nil
}

// Get returns the attempt if it exists and belongs to ownerID.
func (r *Registry) Get(id, ownerID uuid.UUID) (*Attempt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attempt, ok := r.attempts[id]
	if !ok || attempt.OwnerID != ownerID {
		return nil, false
	}
	return attempt, true
}

// Remove drops an attempt owned by ownerID.
func (r *Registry) Remove(id, ownerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt, ok := r.attempts[id]; ok && attempt.OwnerID == ownerID {
		delete(r.attempts, id)
	}
}
