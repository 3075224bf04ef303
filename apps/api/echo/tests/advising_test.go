package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhreal/web-2-grw-sub000/core/advising"
	"github.com/manhreal/web-2-grw-sub000/core/user"
	emailsvc "github.com/manhreal/web-2-grw-sub000/services/email"
)

func Test_advisingApi_create(t *testing.T) {
	e := setup(t)
	emailsvc.ClearSentMessages()

	rec := e.do(t, httpTest{
		name: "create", method: http.MethodPost, path: "/v1/advising",
		body: marchallObj(t, advising.NewRequest{
			FullName:   "Minh Le",
			Email:      "minh@test.gw",
			Phone:      "+84 987 654 321",
			CourseName: "IELTS Fighter",
			Message:    "Which schedule fits working adults?",
		}),
		wantCode: http.StatusCreated,
	})

	var req advising.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
	assert.NotZero(t, req.ID)
	assert.False(t, req.Handled)

	// the advising team gets a heads-up
	require.Len(t, emailsvc.SentMessages, 1)
	assert.Equal(t, "advising@test.gw", emailsvc.SentMessages[0].To[0].Address)
	assert.Contains(t, emailsvc.SentMessages[0].Body, "IELTS Fighter")
}

func Test_advisingApi_createValidation(t *testing.T) {
	e := setup(t)

	tests := []httpTest{
		{name: "missing name", body: marchallObj(t, advising.NewRequest{Email: "a@test.gw", Phone: "+84 912 345 678"})},
		{name: "bad email", body: marchallObj(t, advising.NewRequest{FullName: "A", Email: "nope", Phone: "+84 912 345 678"})},
		{name: "bad phone", body: marchallObj(t, advising.NewRequest{FullName: "A", Email: "a@test.gw", Phone: "abc"})},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/advising"
		tt.wantCode = http.StatusBadRequest
		t.Run(tt.name, func(t *testing.T) { e.do(t, tt) })
	}
}

func Test_advisingApi_staffWorkflow(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Admin", "admin", "admin@test.gw", []string{user.RoleAdmin})
	token := e.login(t, "admin")

	created, err := e.advisingSvc.Create(advising.NewRequest{
		FullName: "Minh Le", Email: "minh@test.gw", Phone: "+84 987 654 321",
	})
	require.NoError(t, err)

	e.do(t, httpTest{
		name: "list needs staff", path: "/v1/advising",
		wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
	})
	e.do(t, httpTest{name: "list", path: "/v1/advising", token: token})

	rec := e.do(t, httpTest{
		name: "mark handled", method: http.MethodPatch, path: "/v1/advising/" + itoa(created.ID), token: token,
		body: marchallObj(t, map[string]bool{"handled": true}),
	})
	var req advising.Request
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
	assert.True(t, req.Handled)

	e.do(t, httpTest{
		name: "unknown id", method: http.MethodPatch, path: "/v1/advising/999", token: token,
		body:     marchallObj(t, map[string]bool{"handled": true}),
		wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
	})
}
