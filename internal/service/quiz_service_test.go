package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/docx/docxtest"
	"github.com/stemsi/quizdoc/internal/model"
)

type memoryCache struct {
	entries map[string]*ExtractResult
	hits    int
}

func (m *memoryCache) Get(_ context.Context, digest string) (*ExtractResult, bool, error) {
	res, ok := m.entries[digest]
	if ok {
		m.hits++
	}
	return res, ok, nil
}

func (m *memoryCache) Set(_ context.Context, digest string, res *ExtractResult) error {
	m.entries[digest] = res
	return nil
}

func newTestService(t *testing.T, cache ResultCache) (*QuizService, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		OutputPath: filepath.Join(t.TempDir(), "questions.json"),
		Title:      "Chủ nghĩa Xã hội Khoa học",
		Subtitle:   "Hệ thống câu hỏi trắc nghiệm ôn tập",
	}
	return NewQuizService(cfg, cache, zerolog.Nop()), cfg
}

var sampleParagraphs = []string{
	"HỆ THỐNG CÂU HỎI TRẮC NGHIỆM",
	"Câu 1. What is X?",
	"A. foo",
	"*B. bar",
	"",
	"Câu 2: Thủ đô nước Pháp? A. Paris B. London C. Berlin *D. Rome",
}

func TestBuildFromFile(t *testing.T) {
	svc, cfg := newTestService(t, nil)
	path := filepath.Join(t.TempDir(), "đề.docx")
	if err := os.WriteFile(path, docxtest.Build(sampleParagraphs...), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := svc.BuildFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("BuildFromFile: %v", err)
	}

	if res.Quiz.Title != cfg.Title || res.Quiz.TotalQuestions != 2 {
		t.Fatalf("quiz = %+v", res.Quiz)
	}
	q := res.Quiz.Questions[1]
	if q.ID != 2 || q.Question != "Thủ đô nước Pháp?" || q.CorrectAnswer != 3 || q.Options[0] != "Paris" {
		t.Errorf("question 2 = %+v", q)
	}
	if res.Report.IncompleteCount != 1 || res.Report.Incomplete[0].ID != 1 {
		t.Errorf("report = %+v", res.Report)
	}
}

func TestBuildFromFileMissingWritesNothing(t *testing.T) {
	svc, cfg := newTestService(t, nil)

	_, err := svc.BuildFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.docx"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("output written despite failure: %v", statErr)
	}
}

func TestBuildFromFileNotDocx(t *testing.T) {
	svc, _ := newTestService(t, nil)
	path := filepath.Join(t.TempDir(), "notes.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.BuildFromFile(context.Background(), path); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}
}

func TestBuildFromFileCancelled(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.BuildFromFile(ctx, "unused.docx"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBuildFromUploadUsesCache(t *testing.T) {
	cache := &memoryCache{entries: map[string]*ExtractResult{}}
	svc, _ := newTestService(t, cache)
	content := docxtest.Build(sampleParagraphs...)

	first, err := svc.BuildFromUpload(context.Background(), content, model.ExtractRequest{Title: "Đề 1"})
	if err != nil {
		t.Fatalf("BuildFromUpload: %v", err)
	}
	if first.Quiz.Title != "Đề 1" || first.Quiz.Subtitle != "Hệ thống câu hỏi trắc nghiệm ôn tập" {
		t.Errorf("metadata = %q / %q", first.Quiz.Title, first.Quiz.Subtitle)
	}

	second, err := svc.BuildFromUpload(context.Background(), content, model.ExtractRequest{Title: "Đề 1"})
	if err != nil {
		t.Fatalf("BuildFromUpload (cached): %v", err)
	}
	if cache.hits != 1 || second != first {
		t.Errorf("expected cached result, hits = %d", cache.hits)
	}

	if _, err := svc.BuildFromUpload(context.Background(), content, model.ExtractRequest{Title: "Đề 2"}); err != nil {
		t.Fatal(err)
	}
	if cache.hits != 1 || len(cache.entries) != 2 {
		t.Errorf("different title should miss the cache: hits = %d entries = %d", cache.hits, len(cache.entries))
	}
}

func TestBuildFromUploadInvalid(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.BuildFromUpload(context.Background(), []byte("garbage"), model.ExtractRequest{}); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("err = %v, want ErrInvalidDocument", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	svc, _ := newTestService(t, nil)

	if _, err := svc.Load(); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("Load before save: err = %v, want ErrQuizNotFound", err)
	}

	doc := model.NewQuizDocument("T", "S", []model.Question{
		{ID: 1, Question: "Q?", Options: []string{"a", "b"}, CorrectAnswer: 1},
	})
	if err := svc.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := svc.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TotalQuestions != 1 || got.Questions[0].CorrectAnswer != 1 {
		t.Errorf("Load = %+v", got)
	}
}

func TestQuizValidationErrorUnwraps(t *testing.T) {
	err := error(&QuizValidationError{Fields: map[string]string{"title": "title is a required field"}})
	if !errors.Is(err, ErrInvalidQuiz) {
		t.Error("QuizValidationError should match ErrInvalidQuiz")
	}
}
