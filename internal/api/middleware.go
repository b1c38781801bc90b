package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quiznote/internal/api/handlers"
	"quiznote/internal/db"
)

// CORSMiddleware adds CORS headers permitting the configured frontend
// origin. Credentials must be allowed for the session cookie, so the
// origin can never be "*".
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	origin := strings.TrimSuffix(frontendURL, "/")
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// AuthRequired resolves the caller's identity and sets "userID" in the
// context. A Bearer token is checked first so API clients can skip the
// cookie flow; otherwise the session profile from the OAuth login is
// used.
func AuthRequired(database *db.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			user, err := database.Queries.GetUserByAPIToken(c.Request.Context(), token)
			if err != nil {
				log.Printf("WARN: rejected request with unknown API token")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API token"})
				return
			}
			c.Set("userID", user.ID)
			c.Set("userProfile", handlers.UserProfile{
				DatabaseID: user.ID,
				Email:      user.Email,
				Name:       user.Name.String,
				Picture:    user.Picture.String,
			})
			c.Next()
			return
		}

		session := sessions.Default(c)
		profileValue := session.Get(handlers.ProfileSessionKey)

		profile, ok := profileValue.(handlers.UserProfile)
		if !ok || profileValue == nil || profile.DatabaseID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required or session invalid"})
			return
		}

		c.Set("userID", profile.DatabaseID)
		c.Set("userProfile", profile)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
