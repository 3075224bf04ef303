package freetest

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/manhreal/web-2-grw-sub000/core"
)

// Duration records how long an attempt took, broken down for display.
type Duration struct {
	Minutes      int `json:"minutes" db:"-"`
	Seconds      int `json:"seconds" db:"-"`
	TotalSeconds int `json:"totalSeconds" db:"total_seconds"`
}

func NewDuration(totalSeconds int) Duration {
	return Duration{
		Minutes:      totalSeconds / 60,
		Seconds:      totalSeconds % 60,
		TotalSeconds: totalSeconds,
	}
}

// Attempt is one recorded sitting of a mock test. A candidate keeps at most
// one attempt per question-count "kind": the best one (see Service.SubmitResult).
type Attempt struct {
	TestID         null.Int  `json:"testId,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	TimeTaken      Duration  `json:"timeTaken"`
	SubmittedAt    time.Time `json:"submittedAt"` // UTC
}

// Candidate is a visitor registered for the free mock tests, along with their
// retained best attempts.
type Candidate struct {
	ID           int       `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"` // unique
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	RegisteredAt time.Time `json:"registeredAt"` // UTC
	History      []Attempt `json:"testHistory"`
}

// Test is a mock test definition served to the marketing site.
type Test struct {
	ID              int        `json:"id" db:"id"`
	Name            string     `json:"name" db:"name" validate:"required"`
	DurationMinutes int        `json:"durationMinutes" db:"duration_minutes" validate:"required,gt=0"`
	Questions       []Question `json:"questions" db:"-" validate:"omitempty,dive"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"` // UTC
}

type Question struct {
	ID          int      `json:"id"`
	Prompt      string   `json:"prompt" validate:"required"`
	Options     []string `json:"options" validate:"required,min=2"`
	AnswerIndex int      `json:"answerIndex" validate:"gte=0"`
}

func (t *Test) Validate() error {
	t.Name = core.CleanString(t.Name)
	if err := core.Validate.Struct(t); err != nil {
		return err
	}
	for _, q := range t.Questions {
		if q.AnswerIndex >= len(q.Options) {
			return core.NewValidationError(nil, core.FieldError{
				Field: "answerIndex", Error: "answer index out of range",
			})
		}
	}
	return nil
}

// NewCandidate contains the registration form fields.
type NewCandidate struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address"`
}

func (nc *NewCandidate) Validate() error {
	nc.FullName = core.CleanString(nc.FullName)
	nc.Email = core.CleanString(nc.Email, true /* lower */)
	nc.Phone = core.CleanString(nc.Phone)
	nc.Address = core.CleanString(nc.Address)
	return core.Validate.Struct(nc)
}

// Submission is one finished sitting reported by the frontend.
type Submission struct {
	Email            string   `json:"email" validate:"required,email"`
	TestID           null.Int `json:"testId,omitempty"`
	Score            int      `json:"score" validate:"gte=0"`
	TotalQuestions   int      `json:"totalQuestions" validate:"required,gt=0"`
	TimeTakenSeconds int      `json:"timeTakenSeconds" validate:"gte=0"`
}

func (s *Submission) Validate() error {
	s.Email = core.CleanString(s.Email, true /* lower */)
	if err := core.Validate.Struct(s); err != nil {
		return err
	}
	if s.Score > s.TotalQuestions {
		return core.NewValidationError(nil, core.FieldError{
			Field: "score", Error: "score cannot exceed the number of questions",
		})
	}
	return nil
}

// LeaderboardRow is a derived, non-persisted summary of one candidate's best
// overall result, used only for ranked display.
type LeaderboardRow struct {
	CandidateID    int       `json:"userId"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	BestScore      int       `json:"bestScore"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	TimeTaken      Duration  `json:"timeTaken"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
