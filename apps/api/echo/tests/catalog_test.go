package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhreal/web-2-grw-sub000/core/catalog"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

type listResp struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Cached  bool            `json:"cached"`
	Data    json.RawMessage `json:"data"`
}

func getList(t *testing.T, e *env, path string) listResp {
	t.Helper()
	req, rec := newRequest(http.MethodGet, path)
	e.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp listResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func Test_catalogApi_listCaching(t *testing.T) {
	e := setup(t)
	_, err := e.catalogSvc.CreateCourse(catalog.Course{Name: "IELTS Fighter", Level: "ielts"})
	require.NoError(t, err)

	// first read is a miss, second is served from cache
	resp := getList(t, e, "/v1/courses")
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	assert.False(t, resp.Cached)

	resp = getList(t, e, "/v1/courses")
	assert.Equal(t, 1, resp.Count)
	assert.True(t, resp.Cached)

	// a write behind the cache's back stays invisible until invalidation
	_, err = e.catalogSvc.CreateCourse(catalog.Course{Name: "TOEIC 700+", Level: "toeic"})
	require.NoError(t, err)
	resp = getList(t, e, "/v1/courses")
	assert.Equal(t, 1, resp.Count)
	assert.True(t, resp.Cached)
}

func Test_catalogApi_mutationInvalidatesFamily(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Admin", "admin", "admin@test.gw", []string{user.RoleAdmin})
	token := e.login(t, "admin")

	_, err := e.catalogSvc.CreateTeacher(catalog.Teacher{FullName: "Jane Day"})
	require.NoError(t, err)
	_, err = e.catalogSvc.CreateCourse(catalog.Course{Name: "Starters"})
	require.NoError(t, err)

	// warm both families
	assert.False(t, getList(t, e, "/v1/teachers").Cached)
	assert.False(t, getList(t, e, "/v1/courses").Cached)
	assert.True(t, getList(t, e, "/v1/teachers").Cached)

	e.do(t, httpTest{
		name: "create teacher", method: http.MethodPost, path: "/v1/teachers", token: token,
		body:     marchallObj(t, catalog.Teacher{FullName: "John Night"}),
		wantCode: http.StatusCreated,
	})

	// teachers family was evicted, courses untouched
	resp := getList(t, e, "/v1/teachers")
	assert.False(t, resp.Cached)
	assert.Equal(t, 2, resp.Count)
	assert.True(t, getList(t, e, "/v1/courses").Cached)
}

func Test_catalogApi_adminRequired(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Plain", "plain", "plain@test.gw", nil)
	token := e.login(t, "plain")

	body := marchallObj(t, catalog.Banner{Title: "Summer", ImageURL: "https://cdn.test.gw/s.png"})
	permDenied := marchallObj(t, httpErr{Error: "permission denied"})

	tests := []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/v1/banners", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "staff required", method: http.MethodPost, path: "/v1/banners", body: body, token: token,
			wantCode: http.StatusForbidden, wantData: permDenied},
		{name: "delete forbidden", method: http.MethodDelete, path: "/v1/news/1", token: token,
			wantCode: http.StatusForbidden, wantData: permDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { e.do(t, tt) })
	}
}

func Test_catalogApi_editorCanManageContent(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Ed", "editor", "ed@test.gw", []string{user.RoleEditor})
	token := e.login(t, "editor")

	rec := e.do(t, httpTest{
		name: "create", method: http.MethodPost, path: "/v1/news", token: token,
		body:     marchallObj(t, catalog.News{Title: "Grand opening", Body: "We moved."}),
		wantCode: http.StatusCreated,
	})
	var article catalog.News
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	require.NotZero(t, article.ID)

	e.do(t, httpTest{
		name: "update", method: http.MethodPut, path: "/v1/news/" + itoa(article.ID), token: token,
		body: marchallObj(t, catalog.News{Title: "Grand opening", Body: "We moved downtown."}),
	})
	e.do(t, httpTest{
		name: "destroy", method: http.MethodDelete, path: "/v1/news/" + itoa(article.ID), token: token,
		wantCode: http.StatusNoContent,
	})
	e.do(t, httpTest{
		name: "gone", path: "/v1/news/" + itoa(article.ID),
		wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
	})
}

func Test_catalogApi_validation(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Admin", "admin", "admin@test.gw", []string{user.RoleAdmin})
	token := e.login(t, "admin")

	e.do(t, httpTest{
		name: "missing name", method: http.MethodPost, path: "/v1/courses", token: token,
		body:     marchallObj(t, catalog.Course{Level: "beginner"}),
		wantCode: http.StatusBadRequest,
	})
	e.do(t, httpTest{
		name: "bad level", method: http.MethodPost, path: "/v1/courses", token: token,
		body:     marchallObj(t, catalog.Course{Name: "X", Level: "wizard"}),
		wantCode: http.StatusBadRequest,
	})
}
