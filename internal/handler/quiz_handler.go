package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/model"
	"github.com/stemsi/quizdoc/internal/quizfile"
	"github.com/stemsi/quizdoc/internal/response"
	"github.com/stemsi/quizdoc/internal/service"
	"github.com/stemsi/quizdoc/internal/validator"
)

// QuizHandler serves the generated quiz and runs extractions on uploads.
type QuizHandler struct {
	quizService    *service.QuizService
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, maxUploadBytes int64, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "quiz_handler").Logger(),
	}
}

// GetQuiz godoc
// GET /api/v1/quiz
// Returns the saved quiz document.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	doc, ok := h.loadQuiz(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": doc})
}

// ListQuestions godoc
// GET /api/v1/quiz/questions?page=1&per_page=10
// Lists the saved questions with pagination.
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	doc, ok := h.loadQuiz(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	pagination, start, end := response.NewPagination(page, perPage, len(doc.Questions))

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": doc.Questions[start:end]}, pagination)
}

// QuizFile godoc
// GET /questions.json
// Serves the saved document as is, for the browser quiz.
func (h *QuizHandler) QuizFile(c *gin.Context) {
	doc, ok := h.loadQuiz(c)
	if !ok {
		return
	}
	data, err := quizfile.Marshal(doc)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Extract godoc
// POST /api/v1/extract
// Parses an uploaded .docx and returns the quiz with its diagnostics.
// With save=true the quiz also replaces the saved document.
func (h *QuizHandler) Extract(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	var req model.ExtractRequest
	if fields := validator.Bind(c, &req); fields != nil {
		code := response.ErrValidation
		if _, malformed := fields["detail"]; malformed {
			code = response.ErrInvalidPayload
		}
		response.FailWithFields(c, http.StatusBadRequest, code, fields)
		return
	}

	if !strings.EqualFold(filepath.Ext(header.Filename), ".docx") {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}
	if header.Size > h.maxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if int64(len(content)) > h.maxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	res, err := h.quizService.BuildFromUpload(c.Request.Context(), content, req)
	if err != nil {
		var verr *service.QuizValidationError
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidDocument)
		case errors.As(err, &verr):
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, verr.Fields)
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	h.log.Info().
		Str("filename", header.Filename).
		Int("questions", res.Quiz.TotalQuestions).
		Int("incomplete", res.Report.IncompleteCount).
		Bool("save", req.Save).
		Msg("Document extracted")

	if req.Save {
		if err := h.quizService.Save(res.Quiz); err != nil {
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
	}

	response.Success(c, http.StatusOK, res)
}

func (h *QuizHandler) loadQuiz(c *gin.Context) (*model.QuizDocument, bool) {
	doc, err := h.quizService.Load()
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
			return nil, false
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}
	return doc, true
}
