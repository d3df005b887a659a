package model

// Question is one finalized multiple-choice question.
// Options hold display text only; the A–D labels and the correctness
// marker are stripped, and CorrectAnswer indexes into Options.
type Question struct {
	ID            int      `json:"id" binding:"min=1"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
}

// QuizDocument is the JSON file consumed by the quiz frontend.
type QuizDocument struct {
	Title          string     `json:"title" binding:"required"`
	Subtitle       string     `json:"subtitle"`
	TotalQuestions int        `json:"totalQuestions" binding:"min=0"`
	Questions      []Question `json:"questions" binding:"dive"`
}

// NewQuizDocument wraps questions with the quiz metadata.
func NewQuizDocument(title, subtitle string, questions []Question) *QuizDocument {
	if questions == nil {
		questions = []Question{}
	}
	return &QuizDocument{
		Title:          title,
		Subtitle:       subtitle,
		TotalQuestions: len(questions),
		Questions:      questions,
	}
}

// ExtractRequest is the form payload accompanying an uploaded document.
type ExtractRequest struct {
	Title    string `form:"title" json:"title" binding:"max=200"`
	Subtitle string `form:"subtitle" json:"subtitle" binding:"max=300"`
	Save     bool   `form:"save" json:"save"`
}
