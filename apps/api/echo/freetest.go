package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core/freetest"
)

const topUsersKey = "topUsers"

func testKey(id int) string { return "test-" + strconv.Itoa(id) }

func (s *server) registerFreetestAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	staff := []echo.MiddlewareFunc{jwt, staffMiddleware()}

	tg := g.Group("/tests")

	// static routes before the :id wildcard
	tg.POST("/register", s.candidateRegister)
	tg.POST("/submit", s.resultSubmit)
	tg.GET("/top-users", cachedJSON(s.topCache, staticKey(topUsersKey), func(echo.Context) (interface{}, error) {
		return s.opts.TestSvc.TopCandidates(freetest.DefaultLeaderboardSize)
	}))
	tg.GET("/candidates/:email", s.candidateRetrieve, staff...)

	tg.GET("", s.testQuery)
	tg.GET("/:id", cachedJSON(s.testCache, testKeyFromParam, s.testRetrieve))
	tg.POST("", s.testCreate, staff...)
	tg.PUT("/:id", s.testUpdate, staff...)
	tg.DELETE("/:id", s.testDestroy, staff...)
}

func testKeyFromParam(ctx echo.Context) string {
	id, _ := strconv.Atoi(ctx.Param("id"))
	return testKey(id)
}

func freetestErr(err error) error {
	switch errors.Cause(err) {
	case freetest.ErrTestNotFound, freetest.ErrCandidateNotFound:
		return errHttpNotFound
	}
	return err
}

func (s *server) testQuery(ctx echo.Context) error {
	tests, err := s.opts.TestSvc.QueryTests()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (s *server) testRetrieve(ctx echo.Context) (interface{}, error) {
	id, err := intParam(ctx, "id")
	if err != nil {
		return nil, err
	}
	test, err := s.opts.TestSvc.GetTest(id)
	if err != nil {
		return nil, freetestErr(err)
	}
	return test, nil
}

func (s *server) testCreate(ctx echo.Context) error {
	data := new(freetest.Test)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	test, err := s.opts.TestSvc.CreateTest(*data)
	if err != nil {
		return err
	}
	s.testCache.Invalidate(testKey(test.ID))
	return ctx.JSON(http.StatusCreated, test)
}

func (s *server) testUpdate(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	data := new(freetest.Test)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}
	data.ID = id

	test, err := s.opts.TestSvc.UpdateTest(*data)
	if err != nil {
		return freetestErr(err)
	}
	s.testCache.Invalidate(testKey(id))
	return ctx.JSON(http.StatusOK, test)
}

func (s *server) testDestroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err := s.opts.TestSvc.DeleteTest(id); err != nil {
		return freetestErr(err)
	}
	s.testCache.Invalidate(testKey(id))
	return ctx.NoContent(http.StatusNoContent)
}

// candidateRegister is idempotent: re-registering a known email refreshes the
// contact details and returns the existing record.
func (s *server) candidateRegister(ctx echo.Context) error {
	data := new(freetest.NewCandidate)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cand, err := s.opts.TestSvc.Register(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cand)
}

// resultSubmit records a finished sitting. The response status distinguishes a
// first attempt of its kind, an improvement, and a result that did not beat
// the stored best. Leaderboard and test caches are left alone; they expire on
// their own TTLs.
func (s *server) resultSubmit(ctx echo.Context) error {
	data := new(freetest.Submission)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	outcome, err := s.opts.TestSvc.SubmitResult(*data)
	if err != nil {
		if errors.Cause(err) == freetest.ErrCandidateNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "candidate not registered")
		}
		return err
	}

	code := http.StatusOK
	if outcome.Status == freetest.StatusSaved {
		code = http.StatusCreated
	}
	return ctx.JSON(code, outcome)
}

func (s *server) candidateRetrieve(ctx echo.Context) error {
	cand, err := s.opts.TestSvc.GetByEmail(ctx.Param("email"))
	if err != nil {
		return freetestErr(err)
	}
	return ctx.JSON(http.StatusOK, cand)
}
