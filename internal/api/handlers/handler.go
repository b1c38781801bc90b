package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"quiznote/internal/db"
	"quiznote/internal/generator"
	"quiznote/internal/groq"
	"quiznote/internal/quizsession"
	"quiznote/internal/storage"
)

// Session keys shared with the auth middleware.
const (
	OauthStateSessionKey = "oauthstate"
	ProfileSessionKey    = "profile"
)

// UserProfile is the identity stored in the session cookie after login.
// DatabaseID is the internal user UUID every row is scoped by.
type UserProfile struct {
	DatabaseID    uuid.UUID `json:"-"`
	GoogleID      string    `json:"id"`
	Email         string    `json:"email"`
	VerifiedEmail bool      `json:"verified_email"`
	Name          string    `json:"name"`
	GivenName     string    `json:"given_name"`
	FamilyName    string    `json:"family_name"`
	Picture       string    `json:"picture"`
}

// Handler carries every dependency the route handlers need. All of them
// are constructed once in main and passed in; no package-level state.
type Handler struct {
	OauthConfig *oauth2.Config
	DB          *db.DB
	Generator   *generator.Generator
	Storage     *storage.Client
	Attempts    *quizsession.Registry
	FrontendURL string
}

// NewHandler wires the handler dependencies together.
func NewHandler(oauth *oauth2.Config, database *db.DB, gen *generator.Generator, store *storage.Client, frontendURL string) *Handler {
	return &Handler{
		OauthConfig: oauth,
		DB:          database,
		Generator:   gen,
		Storage:     store,
		Attempts:    quizsession.NewRegistry(),
		FrontendURL: frontendURL,
	}
}

// currentUserID reads the identity the auth middleware resolved for this
// request.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// respondError logs the failure and aborts the request with a JSON error
// envelope.
func respondError(c *gin.Context, status int, errorContext string, err error) {
	log.Printf("ERROR: %s: %v", errorContext, err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// statusFor maps pipeline errors onto the HTTP contract: 400 for problems
// with the caller's input, 500 for downstream failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrInvalidInput),
		errors.Is(err, generator.ErrExtraction):
		return http.StatusBadRequest
	case errors.Is(err, groq.ErrModelCall),
		errors.Is(err, groq.ErrMalformedOutput),
		errors.Is(err, generator.ErrValidation),
		errors.Is(err, generator.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
