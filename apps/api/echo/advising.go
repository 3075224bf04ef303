package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core/advising"
)

func (s *server) registerAdvisingAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	staff := []echo.MiddlewareFunc{jwt, staffMiddleware()}

	ag := g.Group("/advising")
	ag.POST("", s.advisingCreate)
	ag.GET("", s.advisingQuery, staff...)
	ag.GET("/:id", s.advisingRetrieve, staff...)
	ag.PATCH("/:id", s.advisingMarkHandled, staff...)
}

func (s *server) advisingCreate(ctx echo.Context) error {
	data := new(advising.NewRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	req, err := s.opts.AdvisingSvc.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, req)
}

func (s *server) advisingQuery(ctx echo.Context) error {
	reqs, err := s.opts.AdvisingSvc.Query()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (s *server) advisingRetrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	req, err := s.opts.AdvisingSvc.Get(id)
	if err != nil {
		if errors.Cause(err) == advising.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, req)
}

func (s *server) advisingMarkHandled(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	data := new(markHandledRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	req, err := s.opts.AdvisingSvc.MarkHandled(id, data.Handled)
	if err != nil {
		if errors.Cause(err) == advising.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, req)
}

type markHandledRequest struct {
	Handled bool `json:"handled"`
}
