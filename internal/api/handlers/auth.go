package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"quiznote/internal/db"
)

// HandleGoogleLogin initiates the Google OAuth flow.
func (h *Handler) HandleGoogleLogin(c *gin.Context) {
	session := sessions.Default(c)

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		respondError(c, http.StatusInternalServerError, "generate oauth state", err)
		return
	}
	state := base64.URLEncoding.EncodeToString(stateBytes)

	session.Set(OauthStateSessionKey, state)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "save session", err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.OauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// HandleGoogleCallback handles the redirect back from Google, creating the
// user row on first login and storing the profile in the session.
func (h *Handler) HandleGoogleCallback(c *gin.Context) {
	session := sessions.Default(c)

	retrievedState := session.Get(OauthStateSessionKey)
	queryState := c.Query("state")
	if queryState == "" || retrievedState == nil || retrievedState.(string) != queryState {
		log.Printf("WARN: invalid oauth state parameter (session: %v, query: %q)", retrievedState, queryState)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid state parameter"})
		return
	}

	token, err := h.OauthConfig.Exchange(context.Background(), c.Query("code"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "exchange oauth code", err)
		return
	}
	if !token.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Retrieved invalid token"})
		return
	}

	client := h.OauthConfig.Client(context.Background(), token)
	oauth2Service, err := oauth2api.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "create oauth2 service", err)
		return
	}
	userinfo, err := oauth2Service.Userinfo.V2.Me.Get().Do()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "fetch user info", err)
		return
	}

	ctx := c.Request.Context()
	dbUser, err := h.DB.Queries.GetUserByEmail(ctx, userinfo.Email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusInternalServerError, "look up user", err)
			return
		}
		dbUser, err = h.DB.Queries.CreateUser(ctx, db.CreateUserParams{
			Email:    userinfo.Email,
			Name:     pgtype.Text{String: userinfo.Name, Valid: userinfo.Name != ""},
			GoogleID: pgtype.Text{String: userinfo.Id, Valid: userinfo.Id != ""},
			Picture:  pgtype.Text{String: userinfo.Picture, Valid: userinfo.Picture != ""},
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "create user", err)
			return
		}
		log.Printf("INFO: created user %s for %s", dbUser.ID, dbUser.Email)
	}

	profile := UserProfile{
		DatabaseID:    dbUser.ID,
		GoogleID:      userinfo.Id,
		Email:         userinfo.Email,
		VerifiedEmail: userinfo.VerifiedEmail != nil && *userinfo.VerifiedEmail,
		Name:          userinfo.Name,
		GivenName:     userinfo.GivenName,
		FamilyName:    userinfo.FamilyName,
		Picture:       userinfo.Picture,
	}

	session.Set(ProfileSessionKey, profile)
	session.Delete(OauthStateSessionKey)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "save session after login", err)
		return
	}

	log.Printf("INFO: user %s logged in (id %s)", profile.Email, dbUser.ID)
	c.Redirect(http.StatusTemporaryRedirect, h.FrontendURL)
}

// HandleAuthStatus reports whether the caller has a valid session.
func (h *Handler) HandleAuthStatus(c *gin.Context) {
	session := sessions.Default(c)
	profileData := session.Get(ProfileSessionKey)

	profile, ok := profileData.(UserProfile)
	if !ok || profileData == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          profile,
	})
}

// HandleUserProfile returns the authenticated user's profile.
func (h *Handler) HandleUserProfile(c *gin.Context) {
	value, exists := c.Get("userProfile")
	profile, ok := value.(UserProfile)
	if !exists || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// HandleLogout clears the session.
func (h *Handler) HandleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Printf("ERROR: failed to clear session during logout: %v", err)
	}
	c.Status(http.StatusOK)
}
