package main

import (
	"context"
	"database/sql"
	"encoding/gob"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiznote/internal/api"
	"quiznote/internal/api/handlers"
	"quiznote/internal/config"
	"quiznote/internal/db"
	"quiznote/internal/extract"
	"quiznote/internal/generator"
	"quiznote/internal/groq"
	"quiznote/internal/storage"
	"quiznote/internal/transcript"

	sessions "github.com/gin-contrib/sessions"
	gsessions "github.com/gin-contrib/sessions/postgres"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for the database/sql session store
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const storeName = "quiznote_session"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// The session cookie carries a gob-encoded profile.
	gob.Register(handlers.UserProfile{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: failed to connect to database: %v", err)
	}
	defer database.Close()

	groqClient := groq.NewClient(cfg.GroqAPIKey)

	storageClient, err := storage.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize object storage: %v", err)
	}

	gen := generator.New(database, groqClient, extract.New(), transcript.New())

	oauthConfig := &oauth2.Config{
		RedirectURL:  cfg.GoogleRedirectURL,
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	router := gin.Default()

	// The session store needs its own database/sql pool; the pgx pool in
	// db.DB cannot be shared with it.
	sessionDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: failed to open database connection for session store: %v", err)
	}
	defer sessionDB.Close()
	if err := sessionDB.Ping(); err != nil {
		log.Fatalf("FATAL: failed to ping database for session store: %v", err)
	}

	store, err := gsessions.NewStore(sessionDB, []byte(cfg.SessionSecret))
	if err != nil {
		log.Fatalf("FATAL: failed to create postgres session store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		Secure:   false, // TODO: set Secure=true once the deployment terminates TLS
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(storeName, store))

	handler := handlers.NewHandler(oauthConfig, database, gen, storageClient, cfg.FrontendURL)
	api.SetupRoutes(router, handler, database, cfg.FrontendURL)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("INFO: server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("FATAL: server forced to shutdown: %v", err)
	}

	log.Println("INFO: server exited")
}
