package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/quizdoc/internal/model"
)

// Custom tags reported by the struct-level checks.
const (
	tagCorrectAnswer  = "correct_answer"
	tagTotalQuestions = "total_questions"
)

var (
	// trans is the singleton English translator for validation errors.
	trans    ut.Translator
	validate *govalidator.Validate
	once     sync.Once
)

// Setup registers the validator with English translations on Gin's binding
// engine, plus the cross-field quiz checks. Safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			v = govalidator.New()
			v.SetTagName("binding")
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		v.RegisterStructValidation(questionStructLevel, model.Question{})
		v.RegisterStructValidation(quizStructLevel, model.QuizDocument{})

		// Register English translations.
		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerTranslation(v, tagCorrectAnswer, "{0} must index one of the options")
		registerTranslation(v, tagTotalQuestions, "{0} must equal the number of questions")

		validate = v
	})
}

// Struct validates a quiz value against its binding tags.
func Struct(s interface{}) error {
	Setup()
	return validate.Struct(s)
}

// questionStructLevel checks that the correct answer points at an option.
func questionStructLevel(sl govalidator.StructLevel) {
	q := sl.Current().Interface().(model.Question)
	if q.CorrectAnswer >= len(q.Options) {
		sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", tagCorrectAnswer, "")
	}
}

func quizStructLevel(sl govalidator.StructLevel) {
	doc := sl.Current().Interface().(model.QuizDocument)
	if doc.TotalQuestions != len(doc.Questions) {
		sl.ReportError(doc.TotalQuestions, "totalQuestions", "TotalQuestions", tagTotalQuestions, "")
	}
}

func registerTranslation(v *govalidator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			msg, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fieldKey(fe)] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., malformed form data).
	fields["detail"] = err.Error()
	return fields
}

// fieldKey names a field by its namespace below the root struct, e.g.
// "questions[3].options", so errors in different questions stay apart.
func fieldKey(fe govalidator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Bind binds and validates the multipart form into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	Setup()
	if err := c.ShouldBind(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
