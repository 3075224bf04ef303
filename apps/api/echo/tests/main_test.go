package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	echoapi "github.com/manhreal/web-2-grw-sub000/apps/api/echo"
	"github.com/manhreal/web-2-grw-sub000/core"
	"github.com/manhreal/web-2-grw-sub000/core/advising"
	"github.com/manhreal/web-2-grw-sub000/core/catalog"
	"github.com/manhreal/web-2-grw-sub000/core/freetest"
	"github.com/manhreal/web-2-grw-sub000/core/user"
	emailsvc "github.com/manhreal/web-2-grw-sub000/services/email"
	logsvc "github.com/manhreal/web-2-grw-sub000/services/logger"
	inmemdb "github.com/manhreal/web-2-grw-sub000/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

func TestMain(m *testing.M) {
	core.InitValidators()
	os.Exit(m.Run())
}

type env struct {
	app echoapi.Server

	usrSvc      *user.Service
	catalogSvc  *catalog.Service
	testSvc     *freetest.Service
	advisingSvc *advising.Service
}

// setup builds a fresh server on a clean in-memory store; each test gets its
// own so cache state never leaks across tests.
func setup(t *testing.T) *env {
	t.Helper()

	db, err := inmemdb.Open()
	require.NoError(t, err)

	conf := &core.Config{
		AppName:             "greenwich",
		Env:                 "TEST",
		TestMode:            true,
		SecretKey:           "secret",
		DefaultFromEmail:    "noreply@test.gw",
		AdvisingNotifyEmail: "advising@test.gw",
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		Cache: core.CacheConfig{
			ListTTL:        20 * time.Minute,
			TestTTL:        20 * time.Minute,
			LeaderboardTTL: 20 * time.Minute,
			ProfileTTL:     5 * time.Minute,
		},
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf.AppName, conf.DefaultFromEmail)
	e := &env{
		usrSvc:      user.NewService(inmemdb.NewUserRepository(db)),
		catalogSvc:  catalog.NewService(inmemdb.NewCatalogRepository(db)),
		testSvc:     freetest.NewService(inmemdb.NewFreetestRepository(db)),
		advisingSvc: advising.NewService(inmemdb.NewAdvisingRepository(db), mailSvc, conf.AdvisingNotifyEmail),
	}
	e.app = echoapi.NewServer(&echoapi.Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
		UserSvc:        e.usrSvc,
		CatalogSvc:     e.catalogSvc,
		TestSvc:        e.testSvc,
		AdvisingSvc:    e.advisingSvc,
	})
	return e
}

func (e *env) createUser(t *testing.T, name, uname, email string, roles []string) user.User {
	t.Helper()
	usr, err := e.usrSvc.Create(user.NewUser{
		Name:            name,
		Username:        uname,
		Email:           email,
		Password:        "LeTest123",
		PasswordConfirm: "LeTest123",
		Roles:           roles,
	})
	require.NoError(t, err)
	return usr
}

// login authenticates through the API and returns the issued token.
func (e *env) login(t *testing.T, uname string) string {
	t.Helper()
	req, rec := newRequest(http.MethodPost, "/v1/users/login",
		marchallObj(t, echoapi.LoginRequest{Username: uname, Password: "LeTest123"}))
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp echoapi.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func itoa(id int) string { return strconv.Itoa(id) }

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// do runs one table entry against the server.
func (e *env) do(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	if tt.wantCode == 0 {
		tt.wantCode = http.StatusOK
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	e.app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
	return rec
}
