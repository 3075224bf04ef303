package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core/catalog"
)

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func notFoundOr(err error, wrap string) error {
	if err == sql.ErrNoRows {
		return catalog.ErrNotFound
	}
	return errors.Wrap(err, wrap)
}

// Courses

func (repo *catalogRepository) CreateCourse(c catalog.Course) (catalog.Course, error) {
	const query = `
INSERT INTO course (name, description, level, tuition_fee, image_url, created_at, updated_at)
VALUES (:name, :description, :level, :tuition_fee, :image_url, :created_at, :updated_at)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, c)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "inserting course")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&c.ID); err != nil {
			return catalog.Course{}, errors.Wrap(err, "inserting course")
		}
	}
	return c, nil
}

func (repo *catalogRepository) QueryCourses() ([]catalog.Course, error) {
	var out []catalog.Course
	err := repo.db.Select(&out, `SELECT * FROM course ORDER BY id`)
	return out, errors.Wrap(err, "querying courses")
}

func (repo *catalogRepository) GetCourseByID(id int) (catalog.Course, error) {
	var c catalog.Course
	if err := repo.db.Get(&c, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		return catalog.Course{}, notFoundOr(err, "getting course")
	}
	return c, nil
}

func (repo *catalogRepository) UpdateCourse(c catalog.Course) (catalog.Course, error) {
	const query = `
UPDATE course SET name = :name, description = :description, level = :level,
	tuition_fee = :tuition_fee, image_url = :image_url, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExec(query, c)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Course{}, catalog.ErrNotFound
	}
	return c, nil
}

func (repo *catalogRepository) DeleteCourse(id int) error {
	return repo.deleteByID("course", id)
}

// Teachers

func (repo *catalogRepository) CreateTeacher(t catalog.Teacher) (catalog.Teacher, error) {
	const query = `
INSERT INTO teacher (full_name, degree, experience, image_url, created_at, updated_at)
VALUES (:full_name, :degree, :experience, :image_url, :created_at, :updated_at)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, t)
	if err != nil {
		return catalog.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&t.ID); err != nil {
			return catalog.Teacher{}, errors.Wrap(err, "inserting teacher")
		}
	}
	return t, nil
}

func (repo *catalogRepository) QueryTeachers() ([]catalog.Teacher, error) {
	var out []catalog.Teacher
	err := repo.db.Select(&out, `SELECT * FROM teacher ORDER BY id`)
	return out, errors.Wrap(err, "querying teachers")
}

func (repo *catalogRepository) GetTeacherByID(id int) (catalog.Teacher, error) {
	var t catalog.Teacher
	if err := repo.db.Get(&t, `SELECT * FROM teacher WHERE id = $1`, id); err != nil {
		return catalog.Teacher{}, notFoundOr(err, "getting teacher")
	}
	return t, nil
}

func (repo *catalogRepository) UpdateTeacher(t catalog.Teacher) (catalog.Teacher, error) {
	const query = `
UPDATE teacher SET full_name = :full_name, degree = :degree, experience = :experience,
	image_url = :image_url, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExec(query, t)
	if err != nil {
		return catalog.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Teacher{}, catalog.ErrNotFound
	}
	return t, nil
}

func (repo *catalogRepository) DeleteTeacher(id int) error {
	return repo.deleteByID("teacher", id)
}

// News

func (repo *catalogRepository) CreateNews(n catalog.News) (catalog.News, error) {
	const query = `
INSERT INTO news (title, summary, body, image_url, published_at, updated_at)
VALUES (:title, :summary, :body, :image_url, :published_at, :updated_at)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, n)
	if err != nil {
		return catalog.News{}, errors.Wrap(err, "inserting news")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&n.ID); err != nil {
			return catalog.News{}, errors.Wrap(err, "inserting news")
		}
	}
	return n, nil
}

func (repo *catalogRepository) QueryNews() ([]catalog.News, error) {
	var out []catalog.News
	err := repo.db.Select(&out, `SELECT * FROM news ORDER BY published_at DESC`)
	return out, errors.Wrap(err, "querying news")
}

func (repo *catalogRepository) GetNewsByID(id int) (catalog.News, error) {
	var n catalog.News
	if err := repo.db.Get(&n, `SELECT * FROM news WHERE id = $1`, id); err != nil {
		return catalog.News{}, notFoundOr(err, "getting news")
	}
	return n, nil
}

func (repo *catalogRepository) UpdateNews(n catalog.News) (catalog.News, error) {
	const query = `
UPDATE news SET title = :title, summary = :summary, body = :body,
	image_url = :image_url, published_at = :published_at, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExec(query, n)
	if err != nil {
		return catalog.News{}, errors.Wrap(err, "updating news")
	}
	if rowsAffected, _ := res.RowsAffected(); rowsAffected == 0 {
		return catalog.News{}, catalog.ErrNotFound
	}
	return n, nil
}

func (repo *catalogRepository) DeleteNews(id int) error {
	return repo.deleteByID("news", id)
}

// Partners

func (repo *catalogRepository) CreatePartner(p catalog.Partner) (catalog.Partner, error) {
	const query = `
INSERT INTO partner (name, logo_url, website_url, created_at)
VALUES (:name, :logo_url, :website_url, :created_at)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, p)
	if err != nil {
		return catalog.Partner{}, errors.Wrap(err, "inserting partner")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&p.ID); err != nil {
			return catalog.Partner{}, errors.Wrap(err, "inserting partner")
		}
	}
	return p, nil
}

func (repo *catalogRepository) QueryPartners() ([]catalog.Partner, error) {
	var out []catalog.Partner
	err := repo.db.Select(&out, `SELECT * FROM partner ORDER BY id`)
	return out, errors.Wrap(err, "querying partners")
}

func (repo *catalogRepository) UpdatePartner(p catalog.Partner) (catalog.Partner, error) {
	const query = `UPDATE partner SET name = :name, logo_url = :logo_url, website_url = :website_url WHERE id = :id`
	res, err := repo.db.NamedExec(query, p)
	if err != nil {
		return catalog.Partner{}, errors.Wrap(err, "updating partner")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Partner{}, catalog.ErrNotFound
	}
	return p, nil
}

func (repo *catalogRepository) DeletePartner(id int) error {
	return repo.deleteByID("partner", id)
}

// Banners

func (repo *catalogRepository) CreateBanner(b catalog.Banner) (catalog.Banner, error) {
	const query = `
INSERT INTO banner (title, image_url, link_url, position)
VALUES (:title, :image_url, :link_url, :position)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, b)
	if err != nil {
		return catalog.Banner{}, errors.Wrap(err, "inserting banner")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&b.ID); err != nil {
			return catalog.Banner{}, errors.Wrap(err, "inserting banner")
		}
	}
	return b, nil
}

func (repo *catalogRepository) QueryBanners() ([]catalog.Banner, error) {
	var out []catalog.Banner
	err := repo.db.Select(&out, `SELECT * FROM banner ORDER BY position, id`)
	return out, errors.Wrap(err, "querying banners")
}

func (repo *catalogRepository) UpdateBanner(b catalog.Banner) (catalog.Banner, error) {
	const query = `UPDATE banner SET title = :title, image_url = :image_url, link_url = :link_url, position = :position WHERE id = :id`
	res, err := repo.db.NamedExec(query, b)
	if err != nil {
		return catalog.Banner{}, errors.Wrap(err, "updating banner")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Banner{}, catalog.ErrNotFound
	}
	return b, nil
}

func (repo *catalogRepository) DeleteBanner(id int) error {
	return repo.deleteByID("banner", id)
}

// Students

func (repo *catalogRepository) CreateStudent(s catalog.Student) (catalog.Student, error) {
	const query = `
INSERT INTO student (full_name, achievement, image_url, created_at)
VALUES (:full_name, :achievement, :image_url, :created_at)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, s)
	if err != nil {
		return catalog.Student{}, errors.Wrap(err, "inserting student")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&s.ID); err != nil {
			return catalog.Student{}, errors.Wrap(err, "inserting student")
		}
	}
	return s, nil
}

func (repo *catalogRepository) QueryStudents() ([]catalog.Student, error) {
	var out []catalog.Student
	err := repo.db.Select(&out, `SELECT * FROM student ORDER BY id`)
	return out, errors.Wrap(err, "querying students")
}

func (repo *catalogRepository) UpdateStudent(s catalog.Student) (catalog.Student, error) {
	const query = `UPDATE student SET full_name = :full_name, achievement = :achievement, image_url = :image_url WHERE id = :id`
	res, err := repo.db.NamedExec(query, s)
	if err != nil {
		return catalog.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Student{}, catalog.ErrNotFound
	}
	return s, nil
}

func (repo *catalogRepository) DeleteStudent(id int) error {
	return repo.deleteByID("student", id)
}

func (repo *catalogRepository) deleteByID(table string, id int) error {
	res, err := repo.db.Exec(`DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting from "+table)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
