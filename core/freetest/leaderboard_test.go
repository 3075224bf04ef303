package freetest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manhreal/web-2-grw-sub000/core/freetest"
)

func Test_TopCandidates_ranking(t *testing.T) {
	svc := setup(t)

	register(t, svc, "Ninety", "ninety@test.vn")
	submit(t, svc, "ninety@test.vn", 9, 10, 100)
	register(t, svc, "NinetyFive", "ninetyfive@test.vn")
	submit(t, svc, "ninetyfive@test.vn", 19, 20, 400)
	register(t, svc, "Eighty", "eighty@test.vn")
	submit(t, svc, "eighty@test.vn", 8, 10, 50)

	rows, err := svc.TopCandidates(2)
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "ninetyfive@test.vn", rows[0].Email)
		assert.Equal(t, 95, rows[0].Percentage)
		assert.Equal(t, "ninety@test.vn", rows[1].Email)
		assert.Equal(t, 90, rows[1].Percentage)
	}
}

func Test_TopCandidates_bestAcrossWholeHistory(t *testing.T) {
	svc := setup(t)

	// two kinds: 60% on the 10-question test, 90% on the 20-question one;
	// the board must show the 90.
	register(t, svc, "Linh", "linh@test.vn")
	submit(t, svc, "linh@test.vn", 6, 10, 100)
	submit(t, svc, "linh@test.vn", 18, 20, 500)

	rows, err := svc.TopCandidates(5)
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, 90, rows[0].Percentage)
		assert.Equal(t, 18, rows[0].BestScore)
		assert.Equal(t, 20, rows[0].TotalQuestions)
	}
}

func Test_TopCandidates_ties(t *testing.T) {
	svc := setup(t)

	register(t, svc, "A", "a@test.vn")
	submit(t, svc, "a@test.vn", 10, 10, 100)
	register(t, svc, "B", "b@test.vn")
	submit(t, svc, "b@test.vn", 20, 20, 200)

	rows, err := svc.TopCandidates(5)
	assert.NoError(t, err)
	if assert.Len(t, rows, 2, "both perfect scores must appear") {
		assert.Equal(t, 100, rows[0].Percentage)
		assert.Equal(t, 100, rows[1].Percentage)
	}
}

func Test_TopCandidates_empty(t *testing.T) {
	svc := setup(t)

	rows, err := svc.TopCandidates(5)
	assert.NoError(t, err)
	assert.Empty(t, rows)

	// a registered candidate with no attempts stays off the board
	register(t, svc, "Quiet", "quiet@test.vn")
	rows, err = svc.TopCandidates(5)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func Test_TopCandidates_defaultLimit(t *testing.T) {
	svc := setup(t)

	emails := []string{"u1@test.vn", "u2@test.vn", "u3@test.vn", "u4@test.vn", "u5@test.vn", "u6@test.vn"}
	for i, email := range emails {
		register(t, svc, email, email)
		submit(t, svc, email, i+3, 10, 100)
	}

	rows, err := svc.TopCandidates(0)
	assert.NoError(t, err)
	assert.Len(t, rows, freetest.DefaultLeaderboardSize)
	assert.Equal(t, "u6@test.vn", rows[0].Email, "highest percentage first")
}
