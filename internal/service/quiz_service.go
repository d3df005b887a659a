package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizdoc/internal/config"
	"github.com/stemsi/quizdoc/internal/docx"
	"github.com/stemsi/quizdoc/internal/extractor"
	"github.com/stemsi/quizdoc/internal/model"
	"github.com/stemsi/quizdoc/internal/quizfile"
	"github.com/stemsi/quizdoc/internal/validator"
)

// Sentinel errors for quiz building.
var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrInvalidQuiz     = errors.New("extracted quiz failed validation")
	ErrQuizNotFound    = errors.New("quiz not generated yet")
)

// QuizValidationError carries the translated field errors of a quiz that
// failed validation.
type QuizValidationError struct {
	Fields map[string]string
}

func (e *QuizValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInvalidQuiz, e.Fields)
}

func (e *QuizValidationError) Unwrap() error {
	return ErrInvalidQuiz
}

// ExtractResult is a built quiz together with its diagnostics.
type ExtractResult struct {
	Quiz   *model.QuizDocument `json:"quiz"`
	Report extractor.Report    `json:"report"`
}

// ResultCache stores extraction results by document digest.
type ResultCache interface {
	Get(ctx context.Context, digest string) (*ExtractResult, bool, error)
	Set(ctx context.Context, digest string, res *ExtractResult) error
}

// QuizService builds quiz documents from .docx sources.
type QuizService struct {
	cfg       *config.Config
	extractor *extractor.Extractor
	cache     ResultCache
	log       zerolog.Logger
}

// NewQuizService creates a new QuizService. cache may be nil.
func NewQuizService(cfg *config.Config, cache ResultCache, log zerolog.Logger) *QuizService {
	opts := []extractor.Option{extractor.WithLogger(log)}
	if len(cfg.SkipPrefixes) > 0 {
		opts = append(opts, extractor.WithSkipPrefixes(cfg.SkipPrefixes))
	}
	return &QuizService{
		cfg:       cfg,
		extractor: extractor.New(opts...),
		cache:     cache,
		log:       log.With().Str("component", "quiz_service").Logger(),
	}
}

// BuildFromFile reads the document at path and builds a quiz titled with the
// configured title and subtitle. A missing or unreadable file is returned as
// an error and nothing is built.
func (s *QuizService) BuildFromFile(ctx context.Context, path string) (*ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paragraphs, err := docx.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, path, err)
	}

	s.log.Debug().Str("path", path).Int("paragraphs", len(paragraphs)).Msg("Document read")

	return s.build(paragraphs, s.cfg.Title, s.cfg.Subtitle)
}

// BuildFromUpload builds a quiz from uploaded document bytes. Empty title or
// subtitle fall back to the configured ones. Results are cached by content
// digest when a cache is configured.
func (s *QuizService) BuildFromUpload(ctx context.Context, content []byte, req model.ExtractRequest) (*ExtractResult, error) {
	title := firstNonEmpty(req.Title, s.cfg.Title)
	subtitle := firstNonEmpty(req.Subtitle, s.cfg.Subtitle)
	digest := s.digest(content, title, subtitle)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, digest)
		if err != nil {
			s.log.Warn().Err(err).Str("digest", digest).Msg("Result cache read failed")
		} else if ok {
			s.log.Debug().Str("digest", digest).Msg("Result cache hit")
			return cached, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paragraphs, err := docx.ReadBytes(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	res, err := s.build(paragraphs, title, subtitle)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, digest, res); err != nil {
			s.log.Warn().Err(err).Str("digest", digest).Msg("Result cache write failed")
		}
	}
	return res, nil
}

// Save writes doc to the configured output path.
func (s *QuizService) Save(doc *model.QuizDocument) error {
	if err := quizfile.WriteFile(s.cfg.OutputPath, doc); err != nil {
		return err
	}
	s.log.Info().Str("path", s.cfg.OutputPath).Int("questions", doc.TotalQuestions).Msg("Quiz saved")
	return nil
}

// Load returns the last saved quiz.
func (s *QuizService) Load() (*model.QuizDocument, error) {
	doc, err := quizfile.ReadFile(s.cfg.OutputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return doc, nil
}

// OutputPath is where Save writes.
func (s *QuizService) OutputPath() string {
	return s.cfg.OutputPath
}

func (s *QuizService) build(paragraphs []string, title, subtitle string) (*ExtractResult, error) {
	res := s.extractor.Extract(paragraphs)
	doc := model.NewQuizDocument(title, subtitle, res.Questions)

	if err := validator.Struct(doc); err != nil {
		return nil, &QuizValidationError{Fields: validator.TranslateErrors(err)}
	}

	if res.Report.IncompleteCount > 0 {
		s.log.Warn().
			Int("incomplete", res.Report.IncompleteCount).
			Msg("Some questions do not have exactly 4 options")
	}

	return &ExtractResult{Quiz: doc, Report: res.Report}, nil
}

// digest identifies an upload together with everything that shapes its result.
func (s *QuizService) digest(content []byte, title, subtitle string) string {
	h := sha256.New()
	h.Write(content)
	for _, part := range []string{title, subtitle, strings.Join(s.cfg.SkipPrefixes, "\x1f")} {
		h.Write([]byte{0})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
