package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/manhreal/web-2-grw-sub000/core"
	"github.com/manhreal/web-2-grw-sub000/core/advising"
	"github.com/manhreal/web-2-grw-sub000/core/catalog"
	"github.com/manhreal/web-2-grw-sub000/core/freetest"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf   *core.Config
		Logger core.Logger

		UserSvc     *user.Service
		CatalogSvc  *catalog.Service
		TestSvc     *freetest.Service
		AdvisingSvc *advising.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		auth     *authenticator
		shutdown chan struct{}

		// cache families; independently keyed and TTL'd, never coordinated
		listCache    *core.Cache
		testCache    *core.Cache
		topCache     *core.Cache
		profileCache *core.Cache
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:         opts,
		app:          echo.New(),
		auth:         newAuthenticator(opts.Conf, opts.UserSvc),
		shutdown:     make(chan struct{}, 1),
		listCache:    core.NewCache(opts.Conf.Cache.ListTTL),
		testCache:    core.NewCache(opts.Conf.Cache.TestTTL),
		topCache:     core.NewCache(opts.Conf.Cache.LeaderboardTTL),
		profileCache: core.NewCache(opts.Conf.Cache.ProfileTTL),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := s.auth.middleware()

	s.registerUserAPI(v1, jwt)
	s.registerCatalogAPI(v1, jwt)
	s.registerFreetestAPI(v1, jwt)
	s.registerAdvisingAPI(v1, jwt)
}

func (s *server) Start() {
	go func() {
		if err := s.app.Start(s.opts.Addr); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-s.shutdown:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown requests a graceful stop without killing in-flight requests;
// safe to call more than once.
func (s *server) signalShutdown() {
	select {
	case s.shutdown <- struct{}{}:
	default:
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Greenwich English API!")
}
