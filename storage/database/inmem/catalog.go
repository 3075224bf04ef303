package inmemdb

import (
	"sort"

	"github.com/manhreal/web-2-grw-sub000/core/catalog"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// Courses

func (repo *catalogRepository) CreateCourse(c catalog.Course) (catalog.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	c.ID = repo.db.nextID()
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *catalogRepository) QueryCourses() ([]catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]catalog.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (repo *catalogRepository) GetCourseByID(id int) (catalog.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	if c, ok := repo.db.courses[id]; ok {
		return *c, nil
	}
	return catalog.Course{}, catalog.ErrNotFound
}

func (repo *catalogRepository) UpdateCourse(c catalog.Course) (catalog.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.courses[c.ID]; !ok {
		return catalog.Course{}, catalog.ErrNotFound
	}
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *catalogRepository) DeleteCourse(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.courses[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(repo.db.courses, id)
	return nil
}

// Teachers

func (repo *catalogRepository) CreateTeacher(t catalog.Teacher) (catalog.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	t.ID = repo.db.nextID()
	repo.db.teachers[t.ID] = &t
	return t, nil
}

func (repo *catalogRepository) QueryTeachers() ([]catalog.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]catalog.Teacher, 0, len(repo.db.teachers))
	for _, t := range repo.db.teachers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (repo *catalogRepository) GetTeacherByID(id int) (catalog.Teacher, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	if t, ok := repo.db.teachers[id]; ok {
		return *t, nil
	}
	return catalog.Teacher{}, catalog.ErrNotFound
}

func (repo *catalogRepository) UpdateTeacher(t catalog.Teacher) (catalog.Teacher, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.teachers[t.ID]; !ok {
		return catalog.Teacher{}, catalog.ErrNotFound
	}
	repo.db.teachers[t.ID] = &t
	return t, nil
}

func (repo *catalogRepository) DeleteTeacher(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.teachers[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(repo.db.teachers, id)
	return nil
}

// News

func (repo *catalogRepository) CreateNews(n catalog.News) (catalog.News, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	n.ID = repo.db.nextID()
	repo.db.news[n.ID] = &n
	return n, nil
}

func (repo *catalogRepository) QueryNews() ([]catalog.News, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]catalog.News, 0, len(repo.db.news))
	for _, n := range repo.db.news {
		out = append(out, *n)
	}
	// newest first, matching the site's news feed
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (repo *catalogRepository) GetNewsByID(id int) (catalog.News, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	if n, ok := repo.db.news[id]; ok {
		return *n, nil
	}
	return catalog.News{}, catalog.ErrNotFound
}

func (repo *catalogRepository) UpdateNews(n catalog.News) (catalog.News, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.news[n.ID]; !ok {
		return catalog.News{}, catalog.ErrNotFound
	}
	repo.db.news[n.ID] = &n
	return n, nil
}

func (repo *catalogRepository) DeleteNews(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.news[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(repo.db.news, id)
	return nil
}

// Partners

func (repo *catalogRepository) CreatePartner(p catalog.Partner) (catalog.Partner, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	p.ID = repo.db.nextID()
	repo.db.partners[p.ID] = &p
	return p, nil
}

func (repo *catalogRepository) QueryPartners() ([]catalog.Partner, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]catalog.Partner, 0, len(repo.db.partners))
	for _, p := range repo.db.partners {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (repo *catalogRepository) UpdatePartner(p catalog.Partner) (catalog.Partner, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.partners[p.ID]; !ok {
		return catalog.Partner{}, catalog.ErrNotFound
	}
	repo.db.partners[p.ID] = &p
	return p, nil
}

func (repo *catalogRepository) DeletePartner(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.partners[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(repo.db.partners, id)
	return nil
}

// Banners

func (repo *catalogRepository) CreateBanner(b catalog.Banner) (catalog.Banner, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	b.ID = repo.db.nextID()
	repo.db.banners[b.ID] = &b
	return b, nil
}

func (repo *catalogRepository) QueryBanners() ([]catalog.Banner, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]catalog.Banner, 0, len(repo.db.banners))
	for _, b := range repo.db.banners {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (repo *catalogRepository) UpdateBanner(b catalog.Banner) (catalog.Banner, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.banners[b.ID]; !ok {
		return catalog.Banner{}, catalog.ErrNotFound
	}
	repo.db.banners[b.ID] = &b
	return b, nil
}

func (repo *catalogRepository) DeleteBanner(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.banners[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(repo.db.banners, id)
	return nil
}

// Students

func (repo *catalogRepository) CreateStudent(s catalog.Student) (catalog.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	s.ID = repo.db.nextID()
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *catalogRepository) QueryStudents() ([]catalog.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]catalog.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (repo *catalogRepository) UpdateStudent(s catalog.Student) (catalog.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.students[s.ID]; !ok {
		return catalog.Student{}, catalog.ErrNotFound
	}
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *catalogRepository) DeleteStudent(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	if _, ok := repo.db.students[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(repo.db.students, id)
	return nil
}
