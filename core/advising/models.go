package advising

import (
	"time"

	"github.com/manhreal/web-2-grw-sub000/core"
)

// Request is a consultation request submitted from the marketing site.
type Request struct {
	ID         int       `json:"id" db:"id"`
	FullName   string    `json:"fullName" db:"full_name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone" db:"phone"`
	CourseName string    `json:"courseName" db:"course_name"`
	Message    string    `json:"message" db:"message"`
	Handled    bool      `json:"handled" db:"handled"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"` // UTC
}

// NewRequest contains the public advising form fields.
type NewRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	CourseName string `json:"courseName"`
	Message    string `json:"message" validate:"max=2000"`
}

func (nr *NewRequest) Validate() error {
	nr.FullName = core.CleanString(nr.FullName)
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.Phone = core.CleanString(nr.Phone)
	nr.CourseName = core.CleanString(nr.CourseName)
	nr.Message = core.CleanString(nr.Message)
	return core.Validate.Struct(nr)
}
