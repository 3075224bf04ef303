package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/manhreal/web-2-grw-sub000/core"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

type recordingLogger struct {
	errorMsg  string
	errorArgs []interface{}
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) {}
func (l *recordingLogger) Info(msg string, args ...interface{})  {}
func (l *recordingLogger) Warn(msg string, args ...interface{})  {}
func (l *recordingLogger) Error(msg string, args ...interface{}) {
	l.errorMsg = msg
	l.errorArgs = args
}
func (l *recordingLogger) Fatal(msg string, args ...interface{}) {}

func newErrorHandlerContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

var errDBDown = errors.New("pq: connection refused")

func Test_appHTTPErrorHandler_serverErrorLogsContextUser(t *testing.T) {
	logger := &recordingLogger{}
	handler := newAppHTTPErrorHandler(logger, func() {})

	ctx, rec := newErrorHandlerContext(t)
	ctx.Set(tokenContextKey, &jwt.Token{Claims: &Claims{
		StandardClaims: jwt.StandardClaims{Subject: "uid-1"},
		Username:       "awa",
		Email:          "awa@test.gw",
	}})

	handler(errors.Wrap(errDBDown, "getting courses"), ctx)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), logger.errorMsg)
	var usr user.User
	for _, arg := range logger.errorArgs {
		if u, ok := arg.(user.User); ok {
			usr = u
		}
	}
	assert.Equal(t, "uid-1", usr.ID)
	assert.Equal(t, "awa", usr.Username)
	assert.Equal(t, "awa@test.gw", usr.Email)
}

func Test_appHTTPErrorHandler_shutdownErrorSignalsServer(t *testing.T) {
	var signalled bool
	handler := newAppHTTPErrorHandler(&recordingLogger{}, func() { signalled = true })

	ctx, rec := newErrorHandlerContext(t)
	handler(errors.Wrap(core.NewShutdownError("integrity issue: courses table gone"), "getting courses"), ctx)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, signalled, "a shutdown error must trigger a graceful stop")

	// plain server errors must not
	signalled = false
	ctx, _ = newErrorHandlerContext(t)
	handler(errDBDown, ctx)
	assert.False(t, signalled)
}

func Test_server_signalShutdownIsIdempotent(t *testing.T) {
	s := &server{shutdown: make(chan struct{}, 1)}
	s.signalShutdown()
	s.signalShutdown() // must not block

	select {
	case <-s.shutdown:
	default:
		t.Fatal("shutdown was not signalled")
	}
}
