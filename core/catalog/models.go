package catalog

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/manhreal/web-2-grw-sub000/core"
)

// Cache family keys, one per list endpoint. A mutation on an entity
// invalidates its family key only.
const (
	FamilyCourses  = "courses"
	FamilyTeachers = "teachers"
	FamilyNews     = "news"
	FamilyPartners = "partners"
	FamilyBanners  = "banners"
	FamilyStudents = "students"
)

type Course struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required"`
	Description string    `json:"description" db:"description"`
	Level       string    `json:"level" db:"level" validate:"omitempty,oneof=beginner intermediate advanced ielts toeic"`
	TuitionFee  null.Int  `json:"tuitionFee,omitempty" db:"tuition_fee"`
	ImageURL    string    `json:"imageUrl" db:"image_url" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"` // UTC
}

// Teacher is a staff profile shown on the marketing site, not a login account.
type Teacher struct {
	ID         int       `json:"id" db:"id"`
	FullName   string    `json:"fullName" db:"full_name" validate:"required"`
	Degree     string    `json:"degree" db:"degree"`
	Experience string    `json:"experience" db:"experience"`
	ImageURL   string    `json:"imageUrl" db:"image_url" validate:"omitempty,url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"` // UTC
}

type News struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required"`
	Summary     string    `json:"summary" db:"summary"`
	Body        string    `json:"body" db:"body" validate:"required"`
	ImageURL    string    `json:"imageUrl" db:"image_url" validate:"omitempty,url"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"` // UTC
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`     // UTC
}

type Partner struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name" validate:"required"`
	LogoURL    string    `json:"logoUrl" db:"logo_url" validate:"omitempty,url"`
	WebsiteURL string    `json:"websiteUrl" db:"website_url" validate:"omitempty,url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"` // UTC
}

type Banner struct {
	ID       int    `json:"id" db:"id"`
	Title    string `json:"title" db:"title" validate:"required"`
	ImageURL string `json:"imageUrl" db:"image_url" validate:"required,url"`
	LinkURL  string `json:"linkUrl" db:"link_url" validate:"omitempty,url"`
	Position int    `json:"position" db:"position" validate:"gte=0"`
}

// Student is a spotlight profile (notable alumni), not a test-taking candidate.
type Student struct {
	ID          int       `json:"id" db:"id"`
	FullName    string    `json:"fullName" db:"full_name" validate:"required"`
	Achievement string    `json:"achievement" db:"achievement" validate:"required"`
	ImageURL    string    `json:"imageUrl" db:"image_url" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"` // UTC
}

func (c *Course) Validate() error {
	c.Name = core.CleanString(c.Name)
	c.Level = core.CleanString(c.Level, true /* lower */)
	return core.Validate.Struct(c)
}

func (t *Teacher) Validate() error {
	t.FullName = core.CleanString(t.FullName)
	return core.Validate.Struct(t)
}

func (n *News) Validate() error {
	n.Title = core.CleanString(n.Title)
	return core.Validate.Struct(n)
}

func (p *Partner) Validate() error {
	p.Name = core.CleanString(p.Name)
	return core.Validate.Struct(p)
}

func (b *Banner) Validate() error {
	b.Title = core.CleanString(b.Title)
	return core.Validate.Struct(b)
}

func (s *Student) Validate() error {
	s.FullName = core.CleanString(s.FullName)
	s.Achievement = core.CleanString(s.Achievement)
	return core.Validate.Struct(s)
}
