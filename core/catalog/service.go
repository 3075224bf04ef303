package catalog

import (
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("catalog entry not found")

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		QueryCourses() ([]Course, error)
		GetCourseByID(id int) (Course, error)
		UpdateCourse(c Course) (Course, error)
		DeleteCourse(id int) error

		CreateTeacher(t Teacher) (Teacher, error)
		QueryTeachers() ([]Teacher, error)
		GetTeacherByID(id int) (Teacher, error)
		UpdateTeacher(t Teacher) (Teacher, error)
		DeleteTeacher(id int) error

		CreateNews(n News) (News, error)
		QueryNews() ([]News, error)
		GetNewsByID(id int) (News, error)
		UpdateNews(n News) (News, error)
		DeleteNews(id int) error

		CreatePartner(p Partner) (Partner, error)
		QueryPartners() ([]Partner, error)
		UpdatePartner(p Partner) (Partner, error)
		DeletePartner(id int) error

		CreateBanner(b Banner) (Banner, error)
		QueryBanners() ([]Banner, error)
		UpdateBanner(b Banner) (Banner, error)
		DeleteBanner(id int) error

		CreateStudent(s Student) (Student, error)
		QueryStudents() ([]Student, error)
		UpdateStudent(s Student) (Student, error)
		DeleteStudent(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Courses

func (svc *Service) CreateCourse(c Course) (Course, error) {
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	return svc.repo.CreateCourse(c)
}

func (svc *Service) QueryCourses() ([]Course, error) { return svc.repo.QueryCourses() }

func (svc *Service) GetCourse(id int) (Course, error) { return svc.repo.GetCourseByID(id) }

func (svc *Service) UpdateCourse(c Course) (Course, error) {
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(c)
}

func (svc *Service) DeleteCourse(id int) error { return svc.repo.DeleteCourse(id) }

// Teachers

func (svc *Service) CreateTeacher(t Teacher) (Teacher, error) {
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	return svc.repo.CreateTeacher(t)
}

func (svc *Service) QueryTeachers() ([]Teacher, error) { return svc.repo.QueryTeachers() }

func (svc *Service) GetTeacher(id int) (Teacher, error) { return svc.repo.GetTeacherByID(id) }

func (svc *Service) UpdateTeacher(t Teacher) (Teacher, error) {
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTeacher(t)
}

func (svc *Service) DeleteTeacher(id int) error { return svc.repo.DeleteTeacher(id) }

// News

func (svc *Service) CreateNews(n News) (News, error) {
	now := time.Now().UTC()
	if n.PublishedAt.IsZero() {
		n.PublishedAt = now
	}
	n.UpdatedAt = now
	return svc.repo.CreateNews(n)
}

func (svc *Service) QueryNews() ([]News, error) { return svc.repo.QueryNews() }

func (svc *Service) GetNews(id int) (News, error) { return svc.repo.GetNewsByID(id) }

func (svc *Service) UpdateNews(n News) (News, error) {
	n.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNews(n)
}

func (svc *Service) DeleteNews(id int) error { return svc.repo.DeleteNews(id) }

// Partners

func (svc *Service) CreatePartner(p Partner) (Partner, error) {
	p.CreatedAt = time.Now().UTC()
	return svc.repo.CreatePartner(p)
}

func (svc *Service) QueryPartners() ([]Partner, error) { return svc.repo.QueryPartners() }

func (svc *Service) UpdatePartner(p Partner) (Partner, error) { return svc.repo.UpdatePartner(p) }

func (svc *Service) DeletePartner(id int) error { return svc.repo.DeletePartner(id) }

// Banners

func (svc *Service) CreateBanner(b Banner) (Banner, error) { return svc.repo.CreateBanner(b) }

func (svc *Service) QueryBanners() ([]Banner, error) { return svc.repo.QueryBanners() }

func (svc *Service) UpdateBanner(b Banner) (Banner, error) { return svc.repo.UpdateBanner(b) }

func (svc *Service) DeleteBanner(id int) error { return svc.repo.DeleteBanner(id) }

// Students

func (svc *Service) CreateStudent(s Student) (Student, error) {
	s.CreatedAt = time.Now().UTC()
	return svc.repo.CreateStudent(s)
}

func (svc *Service) QueryStudents() ([]Student, error) { return svc.repo.QueryStudents() }

func (svc *Service) UpdateStudent(s Student) (Student, error) { return svc.repo.UpdateStudent(s) }

func (svc *Service) DeleteStudent(id int) error { return svc.repo.DeleteStudent(id) }
