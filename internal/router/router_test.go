package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/docx/docxtest"
	"github.com/stemsi/quizdoc/internal/handler"
	"github.com/stemsi/quizdoc/internal/middleware"
	"github.com/stemsi/quizdoc/internal/model"
	"github.com/stemsi/quizdoc/internal/response"
	"github.com/stemsi/quizdoc/internal/service"
)

type envelope struct {
	Data       json.RawMessage      `json:"data"`
	Error      *response.ErrorBody  `json:"error"`
	Pagination *response.Pagination `json:"pagination"`
	Metadata   response.Metadata    `json:"metadata"`
}

func newTestRouter(t *testing.T, rate int) (*gin.Engine, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		OutputPath:     filepath.Join(dir, "questions.json"),
		Title:          "Chủ nghĩa Xã hội Khoa học",
		Subtitle:       "Hệ thống câu hỏi trắc nghiệm ôn tập",
		GinMode:        gin.TestMode,
		MaxUploadBytes: 1 << 20,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zerolog.Nop()
	svc := service.NewQuizService(cfg, nil, log)
	handlers := &Handlers{Quiz: handler.NewQuizHandler(svc, cfg.MaxUploadBytes, log)}
	return SetupRouter(cfg, handlers, middleware.NewRateLimiter(ctx, rate, time.Minute), log), cfg
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return env
}

var sampleDocx = docxtest.Build(
	"Câu 1. What is X?", "A. foo", "*B. bar",
	"Câu 2. Y?", "A. a B. b", "*C. c D. d",
)

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, 10)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestQuizNotFoundBeforeSave(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	for _, path := range []string{"/api/v1/quiz", "/questions.json", "/api/v1/quiz/questions"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, w.Code)
			continue
		}
		if env := decode(t, w); env.Error == nil || env.Error.Code != response.ErrQuizNotFound {
			t.Errorf("%s: error = %+v", path, env.Error)
		}
	}
}

func TestExtractReturnsQuizWithoutSaving(t *testing.T) {
	r, cfg := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "đề.docx", sampleDocx, map[string]string{"title": "Đề thi thử"}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var res service.ExtractResult
	if err := json.Unmarshal(decode(t, w).Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Quiz.Title != "Đề thi thử" || res.Quiz.TotalQuestions != 2 {
		t.Fatalf("quiz = %+v", res.Quiz)
	}
	if q := res.Quiz.Questions[1]; q.CorrectAnswer != 2 || len(q.Options) != 4 {
		t.Errorf("question 2 = %+v", q)
	}
	if res.Report.IncompleteCount != 1 {
		t.Errorf("report = %+v", res.Report)
	}

	if _, err := os.Stat(cfg.OutputPath); err == nil {
		t.Error("quiz saved without save=true")
	}
}

func TestExtractSaveThenServe(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "de.DOCX", sampleDocx, map[string]string{"save": "true"}))
	if w.Code != http.StatusOK {
		t.Fatalf("extract status = %d body = %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/questions.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("questions.json status = %d", w.Code)
	}
	var doc model.QuizDocument
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.TotalQuestions != 2 || doc.Questions[0].Question != "What is X?" {
		t.Errorf("doc = %+v", doc)
	}
	if w.Header().Get("Cache-Control") != "no-cache" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quiz/questions?page=2&per_page=1", nil))
	env := decode(t, w)
	if env.Pagination == nil || env.Pagination.TotalPages != 2 || env.Pagination.Page != 2 {
		t.Fatalf("pagination = %+v", env.Pagination)
	}
	var page struct {
		Questions []model.Question `json:"questions"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Questions) != 1 || page.Questions[0].ID != 2 {
		t.Errorf("page = %+v", page.Questions)
	}
}

func TestListQuestionsPages(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "de.docx", sampleDocx, map[string]string{"save": "true"}))
	if w.Code != http.StatusOK {
		t.Fatalf("extract status = %d body = %s", w.Code, w.Body.String())
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{"defaults", "", []int{1, 2}},
		{"first page", "?page=1&per_page=1", []int{1}},
		{"past the end", "?page=3&per_page=1", []int{}},
		{"huge page", "?page=100000000000000001&per_page=100", []int{}},
		{"negative page", "?page=-4", []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quiz/questions"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
			}

			env := decode(t, w)
			if env.Pagination == nil || env.Pagination.TotalItems != 2 {
				t.Fatalf("pagination = %+v", env.Pagination)
			}
			var page struct {
				Questions []model.Question `json:"questions"`
			}
			if err := json.Unmarshal(env.Data, &page); err != nil {
				t.Fatal(err)
			}
			ids := []int{}
			for _, q := range page.Questions {
				ids = append(ids, q.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		fields   map[string]string
		status   int
		code     response.ErrCode
	}{
		{"missing file", "", nil, nil, http.StatusBadRequest, response.ErrFileRequired},
		{"wrong extension", "notes.pdf", sampleDocx, nil, http.StatusBadRequest, response.ErrUnsupportedFile},
		{"not a docx", "notes.docx", []byte("hello"), nil, http.StatusUnprocessableEntity, response.ErrInvalidDocument},
		{"too large", "big.docx", bytes.Repeat([]byte("x"), 2<<20), nil, http.StatusBadRequest, response.ErrFileTooLarge},
		{"title too long", "de.docx", sampleDocx, map[string]string{"title": string(bytes.Repeat([]byte("a"), 201))},
			http.StatusBadRequest, response.ErrValidation},
		{"save not a bool", "de.docx", sampleDocx, map[string]string{"save": "maybe"},
			http.StatusBadRequest, response.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t, 10)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, uploadRequest(t, tt.filename, tt.content, tt.fields))

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			if env := decode(t, w); env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want %s", env.Error, tt.code)
			}
		})
	}
}

func TestExtractRateLimited(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "de.docx", sampleDocx, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "de.docx", sampleDocx, nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
}
