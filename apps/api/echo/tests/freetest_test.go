package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhreal/web-2-grw-sub000/core/freetest"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

func registerCandidate(t *testing.T, e *env, name, email string) freetest.Candidate {
	t.Helper()
	rec := e.do(t, httpTest{
		name: "register", method: http.MethodPost, path: "/v1/tests/register",
		body: marchallObj(t, freetest.NewCandidate{FullName: name, Email: email, Phone: "+84 912 345 678"}),
	})
	var cand freetest.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cand))
	return cand
}

func submit(t *testing.T, e *env, sub freetest.Submission, wantCode int) freetest.SubmitOutcome {
	t.Helper()
	rec := e.do(t, httpTest{
		name: "submit", method: http.MethodPost, path: "/v1/tests/submit",
		body: marchallObj(t, sub), wantCode: wantCode,
	})
	var outcome freetest.SubmitOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	return outcome
}

func Test_freetestApi_registerIsIdempotent(t *testing.T) {
	e := setup(t)

	cand := registerCandidate(t, e, "Linh Tran", "linh@test.gw")
	again := registerCandidate(t, e, "Linh T.", "linh@test.gw")

	assert.Equal(t, cand.ID, again.ID)
	assert.Equal(t, "Linh T.", again.FullName) // contact details refreshed
}

func Test_freetestApi_submitOutcomes(t *testing.T) {
	e := setup(t)
	registerCandidate(t, e, "Linh Tran", "linh@test.gw")

	sub := freetest.Submission{Email: "linh@test.gw", Score: 6, TotalQuestions: 10, TimeTakenSeconds: 300}

	out := submit(t, e, sub, http.StatusCreated)
	assert.Equal(t, freetest.StatusSaved, out.Status)

	// better score on the same kind of test updates in place
	sub.Score = 8
	out = submit(t, e, sub, http.StatusOK)
	assert.Equal(t, freetest.StatusUpdated, out.Status)
	assert.Equal(t, 8, out.Attempt.Score)

	// a worse run changes nothing; the losing attempt is echoed back
	sub.Score = 5
	out = submit(t, e, sub, http.StatusOK)
	assert.Equal(t, freetest.StatusUnchanged, out.Status)
	assert.Equal(t, 8, out.Attempt.Score)
	require.NotNil(t, out.Rejected)
	assert.Equal(t, 5, out.Rejected.Score)

	// a different question count is a new kind, saved alongside
	out = submit(t, e, freetest.Submission{
		Email: "linh@test.gw", Score: 3, TotalQuestions: 20, TimeTakenSeconds: 500,
	}, http.StatusCreated)
	assert.Equal(t, freetest.StatusSaved, out.Status)
}

func Test_freetestApi_submitValidation(t *testing.T) {
	e := setup(t)
	registerCandidate(t, e, "Linh Tran", "linh@test.gw")

	tests := []httpTest{
		{name: "unknown email", method: http.MethodPost, path: "/v1/tests/submit",
			body:     marchallObj(t, freetest.Submission{Email: "ghost@test.gw", Score: 1, TotalQuestions: 10}),
			wantCode: http.StatusNotFound},
		{name: "zero questions", method: http.MethodPost, path: "/v1/tests/submit",
			body:     marchallObj(t, freetest.Submission{Email: "linh@test.gw", Score: 0, TotalQuestions: 0}),
			wantCode: http.StatusBadRequest},
		{name: "score over total", method: http.MethodPost, path: "/v1/tests/submit",
			body:     marchallObj(t, freetest.Submission{Email: "linh@test.gw", Score: 11, TotalQuestions: 10}),
			wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { e.do(t, tt) })
	}
}

func Test_freetestApi_topUsers(t *testing.T) {
	e := setup(t)
	registerCandidate(t, e, "An", "an@test.gw")
	registerCandidate(t, e, "Binh", "binh@test.gw")

	submit(t, e, freetest.Submission{Email: "an@test.gw", Score: 9, TotalQuestions: 10, TimeTakenSeconds: 200}, http.StatusCreated)
	submit(t, e, freetest.Submission{Email: "binh@test.gw", Score: 7, TotalQuestions: 10, TimeTakenSeconds: 100}, http.StatusCreated)

	rec := e.do(t, httpTest{name: "top", path: "/v1/tests/top-users"})
	var rows []freetest.LeaderboardRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "an@test.gw", rows[0].Email)
	assert.Equal(t, 90, rows[0].Percentage)

	// the board is cached; later submissions surface only after the TTL
	submit(t, e, freetest.Submission{Email: "binh@test.gw", Score: 10, TotalQuestions: 10, TimeTakenSeconds: 90}, http.StatusOK)
	rec = e.do(t, httpTest{name: "top again", path: "/v1/tests/top-users"})
	rows = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Equal(t, "an@test.gw", rows[0].Email)
}

func Test_freetestApi_testCacheInvalidation(t *testing.T) {
	e := setup(t)
	e.createUser(t, "Admin", "admin", "admin@test.gw", []string{user.RoleAdmin})
	token := e.login(t, "admin")

	test, err := e.testSvc.CreateTest(freetest.Test{
		Name:            "Placement A",
		DurationMinutes: 30,
		Questions: []freetest.Question{
			{Prompt: "Pick one", Options: []string{"a", "b"}, AnswerIndex: 0},
		},
	})
	require.NoError(t, err)
	path := "/v1/tests/" + itoa(test.ID)

	// warm the per-test cache
	e.do(t, httpTest{name: "warm", path: path})

	// a direct service write is invisible through the cache
	test.Name = "Placement B"
	_, err = e.testSvc.UpdateTest(test)
	require.NoError(t, err)
	rec := e.do(t, httpTest{name: "stale", path: path})
	var got freetest.Test
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Placement A", got.Name)

	// an API update evicts "test-<id>"
	test.Name = "Placement C"
	e.do(t, httpTest{name: "update", method: http.MethodPut, path: path, token: token, body: marchallObj(t, test)})
	rec = e.do(t, httpTest{name: "fresh", path: path})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Placement C", got.Name)
}
