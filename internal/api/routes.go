// Package api wires the HTTP surface: routes, CORS and authentication
// middleware over the handlers package.
package api

import (
	"github.com/gin-gonic/gin"

	"quiznote/internal/api/handlers"
	"quiznote/internal/db"
)

// SetupRoutes registers every route on the router.
func SetupRoutes(router *gin.Engine, handler *handlers.Handler, database *db.DB, frontendURL string) {
	router.Use(CORSMiddleware(frontendURL))

	// --- Public auth routes ---
	router.GET("/login", handler.HandleGoogleLogin)
	router.GET("/auth/google/callback", handler.HandleGoogleCallback)

	// Top-level generation endpoint for API clients.
	router.POST("/generate", AuthRequired(database), handler.HandleGenerateQuiz)

	api := router.Group("/api")
	{
		api.GET("/auth/status", handler.HandleAuthStatus)

		authorized := api.Group("/")
		authorized.Use(AuthRequired(database))
		{
			authorized.GET("/user/profile", handler.HandleUserProfile)
			authorized.POST("/logout", handler.HandleLogout)

			authorized.POST("/quizzes/generate", handler.HandleGenerateQuiz)
			authorized.GET("/quizzes", handler.HandleListQuizzes)
			authorized.GET("/quizzes/:id", handler.HandleGetQuiz)
			authorized.DELETE("/quizzes/:id", handler.HandleDeleteQuiz)

			// --- Quiz attempt routes ---
			authorized.POST("/quizzes/:id/attempts", handler.HandleStartAttempt)
			authorized.GET("/attempts/:id", handler.HandleGetAttempt)
			authorized.POST("/attempts/:id/answers", handler.HandleSelectAnswer)
			authorized.POST("/attempts/:id/next", handler.HandleNextQuestion)
			authorized.POST("/attempts/:id/prev", handler.HandlePrevQuestion)
			authorized.POST("/attempts/:id/review", handler.HandleReviewAttempt)
			authorized.POST("/attempts/:id/jump", handler.HandleJumpToQuestion)
			authorized.POST("/attempts/:id/finish", handler.HandleFinishAttempt)
			authorized.POST("/attempts/:id/retake", handler.HandleRetakeAttempt)
			authorized.DELETE("/attempts/:id", handler.HandleAbandonAttempt)
		}
	}
}
