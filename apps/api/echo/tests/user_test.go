package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/manhreal/web-2-grw-sub000/apps/api/echo"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

func Test_userApi_login(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Linh", "linh", "linh@test.gw", nil)

	deactivated := e.createUser(t, "Gone", "gone", "gone@test.gw", nil)
	f := false
	_, err := e.usrSvc.Update(deactivated.ID, user.UpdateUser{IsActive: &f})
	require.NoError(t, err)

	authFailed := marchallObj(t, httpErr{Error: "authentication failed"})
	tests := []httpTest{
		{name: "ok", method: http.MethodPost, path: "/v1/users/login",
			body: marchallObj(t, echoapi.LoginRequest{Username: "linh", Password: "LeTest123"})},
		{name: "by email", method: http.MethodPost, path: "/v1/users/login",
			body: marchallObj(t, echoapi.LoginRequest{Username: "LINH@test.gw", Password: "LeTest123"})},
		{name: "bad password", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, echoapi.LoginRequest{Username: "linh", Password: "nope nope"}),
			wantCode: http.StatusBadRequest, wantData: authFailed},
		{name: "unknown user", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, echoapi.LoginRequest{Username: "ghost", Password: "LeTest123"}),
			wantCode: http.StatusBadRequest, wantData: authFailed},
		{name: "deactivated", method: http.MethodPost, path: "/v1/users/login",
			body:     marchallObj(t, echoapi.LoginRequest{Username: "gone", Password: "LeTest123"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"})},
		{name: "missing fields", method: http.MethodPost, path: "/v1/users/login",
			body: marchallObj(t, echoapi.LoginRequest{}), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(t, tt)
			if tt.wantCode == 0 { // success paths carry a token
				var resp echoapi.LoginResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Token)
			}
		})
	}
}

func Test_userApi_tokenRefresh(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Linh", "linh", "linh@test.gw", nil)
	token := e.login(t, "linh")

	rec := e.do(t, httpTest{name: "refresh", method: http.MethodPost, path: "/v1/users/token-refresh", token: token})
	var resp echoapi.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	e.do(t, httpTest{
		name: "no token", method: http.MethodPost, path: "/v1/users/token-refresh",
		wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
	})
}

func Test_userApi_me_profileCache(t *testing.T) {
	e := setup(t)
	usr := e.createUser(t, "Linh", "linh", "linh@test.gw", nil)
	token := e.login(t, "linh")

	var resp struct {
		Success bool      `json:"success"`
		Cached  bool      `json:"cached"`
		Data    user.User `json:"data"`
	}

	rec := e.do(t, httpTest{name: "miss", path: "/v1/users/me", token: token})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Cached)
	assert.Equal(t, usr.ID, resp.Data.ID)

	rec = e.do(t, httpTest{name: "hit", path: "/v1/users/me", token: token})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)

	// self-update evicts the profile entry
	e.do(t, httpTest{
		name: "update", method: http.MethodPut, path: "/v1/users/" + usr.ID, token: token,
		body: marchallObj(t, map[string]string{"name": "Linh Tran"}),
	})
	rec = e.do(t, httpTest{name: "fresh", path: "/v1/users/me", token: token})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Cached)
	assert.Equal(t, "Linh Tran", resp.Data.Name)
}

func Test_userApi_adminCRUD(t *testing.T) {
	e := setup(t)
	admin := e.createUser(t, "Admin", "admin", "admin@test.gw", []string{user.RoleAdmin})
	plain := e.createUser(t, "Plain", "plain", "plain@test.gw", nil)
	adminToken := e.login(t, "admin")
	plainToken := e.login(t, "plain")

	permDenied := marchallObj(t, httpErr{Error: "permission denied"})

	tests := []httpTest{
		{name: "query needs admin", path: "/v1/users", token: plainToken,
			wantCode: http.StatusForbidden, wantData: permDenied},
		{name: "query", path: "/v1/users", token: adminToken},
		{name: "roles", path: "/v1/users/roles", token: adminToken},
		{name: "retrieve self", path: "/v1/users/" + plain.ID, token: plainToken},
		{name: "retrieve other hidden", path: "/v1/users/" + admin.ID, token: plainToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
		{name: "plain cannot set roles", method: http.MethodPut, path: "/v1/users/" + plain.ID, token: plainToken,
			body:     marchallObj(t, map[string]interface{}{"roles": []string{user.RoleAdmin}}),
			wantCode: http.StatusForbidden, wantData: permDenied},
		{name: "self delete forbidden", method: http.MethodDelete, path: "/v1/users/" + admin.ID, token: adminToken,
			wantCode: http.StatusForbidden, wantData: permDenied},
		{name: "register needs admin", method: http.MethodPost, path: "/v1/users/register", token: plainToken,
			body: marchallObj(t, user.NewUser{
				Name: "New", Username: "newbie", Email: "new@test.gw",
				Password: "LeTest123", PasswordConfirm: "LeTest123",
			}),
			wantCode: http.StatusForbidden, wantData: permDenied},
		{name: "register", method: http.MethodPost, path: "/v1/users/register", token: adminToken,
			body: marchallObj(t, user.NewUser{
				Name: "New", Username: "newbie", Email: "new@test.gw",
				Password: "LeTest123", PasswordConfirm: "LeTest123",
			}),
			wantCode: http.StatusCreated},
		{name: "delete", method: http.MethodDelete, path: "/v1/users/" + plain.ID, token: adminToken,
			wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { e.do(t, tt) })
	}
}
