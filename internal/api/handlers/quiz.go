package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"quiznote/internal/generator"
	"quiznote/internal/models"
)

// maxUploadSize bounds multipart parsing for note file uploads.
const maxUploadSize = 64 << 20 // 64 MB

type generateJSONRequest struct {
	Content  string `json:"content"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
	VideoURL string `json:"videoUrl"`
}

// HandleGenerateQuiz runs the full generation pipeline for the
// authenticated user. Accepts either a multipart form with a `file`
// field or a JSON body with typed content or a video URL.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	req, err := h.parseGenerateRequest(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "parse generate request", err)
		return
	}

	result, err := h.Generator.Generate(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, statusFor(err), "generate quiz", err)
		return
	}

	// The original upload is kept for reference only; a failed upload
	// must not fail a generation that already succeeded.
	if len(req.FileData) > 0 && h.Storage != nil {
		fileURL, err := h.Storage.UploadNoteFile(c.Request.Context(), userID, result.NoteID, req.FileName, bytes.NewReader(req.FileData))
		if err != nil {
			log.Printf("WARN: failed to upload note file for note %s: %v", result.NoteID, err)
		} else if err := h.DB.Queries.SetNoteFileURL(c.Request.Context(), result.NoteID, userID, fileURL); err != nil {
			log.Printf("WARN: failed to record file URL for note %s: %v", result.NoteID, err)
		}
	}

	log.Printf("INFO: generated quiz %s (%d questions) for user %s", result.QuizID, result.QuestionCount, userID)
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"quizId":        result.QuizID,
		"noteId":        result.NoteID,
		"summary":       result.Summary,
		"questionCount": result.QuestionCount,
	})
}

// parseGenerateRequest reads a generation request from either a
// multipart form or a JSON body, based on Content-Type.
func (h *Handler) parseGenerateRequest(c *gin.Context) (generator.Request, error) {
	contentType := c.ContentType()

	if contentType == "multipart/form-data" {
		if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
			return generator.Request{}, err
		}

		req := generator.Request{
			Title:   c.PostForm("title"),
			Content: c.PostForm("content"),
		}
		if countStr := c.PostForm("count"); countStr != "" {
			count, err := strconv.Atoi(countStr)
			if err != nil {
				return generator.Request{}, errors.New("count must be a number")
			}
			req.Count = count
		}

		file, header, err := c.Request.FormFile("file")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				return generator.Request{}, err
			}
			req.FileData = data
			req.FileName = header.Filename
			req.FileMIME = header.Header.Get("Content-Type")
		} else if !errors.Is(err, http.ErrMissingFile) {
			return generator.Request{}, err
		}
		return req, nil
	}

	var body generateJSONRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		return generator.Request{}, err
	}
	return generator.Request{
		Content:  body.Content,
		Title:    body.Title,
		Count:    body.Count,
		VideoURL: body.VideoURL,
	}, nil
}

// HandleListQuizzes returns the authenticated user's quizzes, newest
// first.
func (h *Handler) HandleListQuizzes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	quizzes, err := h.DB.Queries.ListQuizzesByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "list quizzes", err)
		return
	}
	if quizzes == nil {
		quizzes = []models.QuizListItem{}
	}
	c.JSON(http.StatusOK, quizzes)
}

// HandleGetQuiz returns one quiz with its questions.
func (h *Handler) HandleGetQuiz(c *gin.Context) {
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

	quiz, err := h.DB.Queries.GetQuizByID(c.Request.Context(), quizID, userID)
	if err != nil {
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
	if questions == nil {
		questions = []models.Question{}
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz":      quiz,
		"questions": questions,
	})
}

// HandleDeleteQuiz removes a quiz and its questions.
func (h *Handler) HandleDeleteQuiz(c *gin.Context) {
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

	deleted, err := h.DB.Queries.DeleteQuiz(c.Request.Context(), quizID, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "delete quiz", err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	log.Printf("INFO: deleted quiz %s for user %s", quizID, userID)
	c.Status(http.StatusNoContent)
}
