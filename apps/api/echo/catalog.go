package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core/catalog"
)

// registerCatalogAPI mounts the content catalog families. Each family has a
// public cached list endpoint keyed by its family name; any admin mutation
// invalidates that one key and nothing else.
func (s *server) registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	svc := s.opts.CatalogSvc
	staff := []echo.MiddlewareFunc{jwt, staffMiddleware()}

	cg := g.Group("/courses")
	cg.GET("", cachedList(s.listCache, catalog.FamilyCourses, func(echo.Context) (interface{}, int, error) {
		courses, err := svc.QueryCourses()
		return courses, len(courses), err
	}))
	cg.GET("/:id", s.courseRetrieve)
	cg.POST("", s.courseCreate, staff...)
	cg.PUT("/:id", s.courseUpdate, staff...)
	cg.DELETE("/:id", s.courseDestroy, staff...)

	tg := g.Group("/teachers")
	tg.GET("", cachedList(s.listCache, catalog.FamilyTeachers, func(echo.Context) (interface{}, int, error) {
		teachers, err := svc.QueryTeachers()
		return teachers, len(teachers), err
	}))
	tg.GET("/:id", s.teacherRetrieve)
	tg.POST("", s.teacherCreate, staff...)
	tg.PUT("/:id", s.teacherUpdate, staff...)
	tg.DELETE("/:id", s.teacherDestroy, staff...)

	ng := g.Group("/news")
	ng.GET("", cachedList(s.listCache, catalog.FamilyNews, func(echo.Context) (interface{}, int, error) {
		news, err := svc.QueryNews()
		return news, len(news), err
	}))
	ng.GET("/:id", s.newsRetrieve)
	ng.POST("", s.newsCreate, staff...)
	ng.PUT("/:id", s.newsUpdate, staff...)
	ng.DELETE("/:id", s.newsDestroy, staff...)

	pg := g.Group("/partners")
	pg.GET("", cachedList(s.listCache, catalog.FamilyPartners, func(echo.Context) (interface{}, int, error) {
		partners, err := svc.QueryPartners()
		return partners, len(partners), err
	}))
	pg.POST("", s.partnerCreate, staff...)
	pg.PUT("/:id", s.partnerUpdate, staff...)
	pg.DELETE("/:id", s.partnerDestroy, staff...)

	bg := g.Group("/banners")
	bg.GET("", cachedList(s.listCache, catalog.FamilyBanners, func(echo.Context) (interface{}, int, error) {
		banners, err := svc.QueryBanners()
		return banners, len(banners), err
	}))
	bg.POST("", s.bannerCreate, staff...)
	bg.PUT("/:id", s.bannerUpdate, staff...)
	bg.DELETE("/:id", s.bannerDestroy, staff...)

	sg := g.Group("/students")
	sg.GET("", cachedList(s.listCache, catalog.FamilyStudents, func(echo.Context) (interface{}, int, error) {
		students, err := svc.QueryStudents()
		return students, len(students), err
	}))
	sg.POST("", s.studentCreate, staff...)
	sg.PUT("/:id", s.studentUpdate, staff...)
	sg.DELETE("/:id", s.studentDestroy, staff...)
}

func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

func catalogErr(err error) error {
	if errors.Cause(err) == catalog.ErrNotFound {
		return errHttpNotFound
	}
	return err
}

// Courses

func (s *server) courseRetrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	course, err := s.opts.CatalogSvc.GetCourse(id)
	if err != nil {
		return catalogErr(err)
	}
	return ctx.JSON(http.StatusOK, course)
}

func (s *server) courseCreate(ctx echo.Context) error {
	data := new(catalog.Course)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	course, err := s.opts.CatalogSvc.CreateCourse(*data)
	if err != nil {
		return err
	}
	s.listCache.Invalidate(catalog.FamilyCourses)
	return ctx.JSON(http.StatusCreated, course)
}

func (s *server) courseUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(catalog.Course)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	course, err := s.opts.CatalogSvc.UpdateCourse(*data)
	if err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyCourses)
	return ctx.JSON(http.StatusOK, course)
}

func (s *server) courseDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.CatalogSvc.DeleteCourse(id); err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyCourses)
	return ctx.NoContent(http.StatusNoContent)
}

// Teachers

func (s *server) teacherRetrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	teacher, err := s.opts.CatalogSvc.GetTeacher(id)
	if err != nil {
		return catalogErr(err)
	}
	return ctx.JSON(http.StatusOK, teacher)
}

func (s *server) teacherCreate(ctx echo.Context) error {
	data := new(catalog.Teacher)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	teacher, err := s.opts.CatalogSvc.CreateTeacher(*data)
	if err != nil {
		return err
	}
	s.listCache.Invalidate(catalog.FamilyTeachers)
	return ctx.JSON(http.StatusCreated, teacher)
}

func (s *server) teacherUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(catalog.Teacher)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	teacher, err := s.opts.CatalogSvc.UpdateTeacher(*data)
	if err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyTeachers)
	return ctx.JSON(http.StatusOK, teacher)
}

func (s *server) teacherDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.CatalogSvc.DeleteTeacher(id); err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyTeachers)
	return ctx.NoContent(http.StatusNoContent)
}

// News

func (s *server) newsRetrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	article, err := s.opts.CatalogSvc.GetNews(id)
	if err != nil {
		return catalogErr(err)
	}
	return ctx.JSON(http.StatusOK, article)
}

func (s *server) newsCreate(ctx echo.Context) error {
	data := new(catalog.News)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	article, err := s.opts.CatalogSvc.CreateNews(*data)
	if err != nil {
		return err
	}
	s.listCache.Invalidate(catalog.FamilyNews)
	return ctx.JSON(http.StatusCreated, article)
}

func (s *server) newsUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(catalog.News)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	article, err := s.opts.CatalogSvc.UpdateNews(*data)
	if err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyNews)
	return ctx.JSON(http.StatusOK, article)
}

func (s *server) newsDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.CatalogSvc.DeleteNews(id); err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyNews)
	return ctx.NoContent(http.StatusNoContent)
}

// Partners

func (s *server) partnerCreate(ctx echo.Context) error {
	data := new(catalog.Partner)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	partner, err := s.opts.CatalogSvc.CreatePartner(*data)
	if err != nil {
		return err
	}
	s.listCache.Invalidate(catalog.FamilyPartners)
	return ctx.JSON(http.StatusCreated, partner)
}

func (s *server) partnerUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(catalog.Partner)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	partner, err := s.opts.CatalogSvc.UpdatePartner(*data)
	if err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyPartners)
	return ctx.JSON(http.StatusOK, partner)
}

func (s *server) partnerDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.CatalogSvc.DeletePartner(id); err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyPartners)
	return ctx.NoContent(http.StatusNoContent)
}

// Banners

func (s *server) bannerCreate(ctx echo.Context) error {
	data := new(catalog.Banner)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	banner, err := s.opts.CatalogSvc.CreateBanner(*data)
	if err != nil {
		return err
	}
	s.listCache.Invalidate(catalog.FamilyBanners)
	return ctx.JSON(http.StatusCreated, banner)
}

func (s *server) bannerUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(catalog.Banner)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	banner, err := s.opts.CatalogSvc.UpdateBanner(*data)
	if err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyBanners)
	return ctx.JSON(http.StatusOK, banner)
}

func (s *server) bannerDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.CatalogSvc.DeleteBanner(id); err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyBanners)
	return ctx.NoContent(http.StatusNoContent)
}

// Students (success stories)

func (s *server) studentCreate(ctx echo.Context) error {
	data := new(catalog.Student)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	student, err := s.opts.CatalogSvc.CreateStudent(*data)
	if err != nil {
		return err
	}
	s.listCache.Invalidate(catalog.FamilyStudents)
	return ctx.JSON(http.StatusCreated, student)
}

func (s *server) studentUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(catalog.Student)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	student, err := s.opts.CatalogSvc.UpdateStudent(*data)
	if err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyStudents)
	return ctx.JSON(http.StatusOK, student)
}

func (s *server) studentDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.CatalogSvc.DeleteStudent(id); err != nil {
		return catalogErr(err)
	}
	s.listCache.Invalidate(catalog.FamilyStudents)
	return ctx.NoContent(http.StatusNoContent)
}
