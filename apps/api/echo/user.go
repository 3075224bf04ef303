package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

const noPermsToSetRolesErr = "not enough rights to set these roles"

func profileKey(email string) string { return "profile:" + email }

func (s *server) registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	svc := s.opts.UserSvc

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", s.userLogin)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.POST("/token-refresh", s.userRefreshToken)
	ag.GET("/me", s.userMe)
	ag.POST("/register", s.userCreate, adminMiddleware())
	ag.GET("", s.userQuery, adminMiddleware())
	ag.GET("/roles", s.userQueryRoles, adminMiddleware())

	// detail endpoints
	dg := ag.Group("/:id", ctxUserOrAdminMiddleware(svc))
	dg.GET("", s.userRetrieve)
	dg.PUT("", s.userUpdate)
	dg.DELETE("", s.userDestroy, adminMiddleware())
}

func (s *server) userLogin(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := s.auth.authenticate(data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := s.auth.generateToken(claims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (s *server) userRefreshToken(ctx echo.Context) error {
	token, err := s.auth.refreshToken(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// userMe serves the authenticated user's own profile through the short-lived
// profile cache, keyed by email.
func (s *server) userMe(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	return cachedList(s.profileCache, profileKey(claims.Email), func(ctx echo.Context) (interface{}, int, error) {
		usr, err := s.opts.UserSvc.GetByEmail(claims.Email)
		if err != nil {
			if errors.Cause(err) == user.ErrNotFound {
				return nil, 0, errHttpNotFound
			}
			return nil, 0, err
		}
		return usr, 1, nil
	})(ctx)
}

func (s *server) userCreate(ctx echo.Context) error {
	data := new(user.NewUser)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(s.opts.UserSvc); err != nil {
		return err
	}

	// ctxUser cannot set a role > their own max role
	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return err
	}
	if user.MaxRolePriority(data.Roles) > user.MaxRolePriority(ctxUsr.Roles) {
		return core.NewValidationError(nil, core.FieldError{Field: "roles", Error: noPermsToSetRolesErr})
	}

	usr, err := s.opts.UserSvc.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (s *server) userQuery(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return err
	}

	users, err := s.opts.UserSvc.Query(filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

func (s *server) userRetrieve(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errUsrNotFoundInCtx
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (s *server) userUpdate(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errUsrNotFoundInCtx
	}

	data := new(user.UpdateUser)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return err
	}
	if !ctxUsr.IsAdmin() {
		// user cannot edit other users
		if usr.ID != ctxUsr.ID {
			return errHttpForbidden
		}
		// `IsActive`, `Roles`, `Username` and `Email` can only be changed by admin
		if data.IsActive != nil || data.Roles != nil || data.Username != "" || data.Email != "" {
			return errHttpForbidden
		}
	}

	if err := data.Validate(usr, s.opts.UserSvc); err != nil {
		return err
	}

	// ctxUser cannot set a role > their own max role
	if user.MaxRolePriority(data.Roles) > user.MaxRolePriority(ctxUsr.Roles) {
		return core.NewValidationError(nil, core.FieldError{Field: "roles", Error: noPermsToSetRolesErr})
	}

	prevEmail := usr.Email
	usr, err = s.opts.UserSvc.Update(usr.ID, *data)
	if err != nil {
		return err
	}

	s.profileCache.Invalidate(profileKey(prevEmail))
	if usr.Email != prevEmail {
		s.profileCache.Invalidate(profileKey(usr.Email))
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (s *server) userDestroy(ctx echo.Context) error {
	usr, ok := ctx.Get("object").(user.User)
	if !ok {
		return errUsrNotFoundInCtx
	}

	// ctxUser cannot delete themselves
	ctxUsr, err := getContextUser(ctx, s.opts.UserSvc)
	if err != nil {
		return err
	}
	if usr.ID == ctxUsr.ID {
		return errHttpForbidden
	}

	if err := s.opts.UserSvc.Delete(usr.ID); err != nil {
		return err
	}
	s.profileCache.Invalidate(profileKey(usr.Email))
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) userQueryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

var errUsrNotFoundInCtx = errors.New("user object not found in echo.Context")

func ctxUserOrAdminMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := ctx.Param("id")
			ctxUsr, err := getContextUser(ctx, svc)
			if err != nil {
				return err
			}

			if id == ctxUsr.ID || ctxUsr.IsAdmin() {
				usr, err := svc.GetByID(id)
				if err == nil {
					ctx.Set("object", usr)
					return next(ctx)
				} else if errors.Cause(err) != user.ErrNotFound {
					return err
				}
			}
			return errHttpNotFound
		}
	}
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}
