package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/manhreal/web-2-grw-sub000/core/freetest"
)

type freetestRepository struct {
	db *sqlx.DB
}

func NewFreetestRepository(db *sqlx.DB) freetest.Repository {
	return &freetestRepository{db: db}
}

type questionRow struct {
	ID          int            `db:"id"`
	TestID      int            `db:"test_id"`
	Prompt      string         `db:"prompt"`
	Options     pq.StringArray `db:"options"`
	AnswerIndex int            `db:"answer_index"`
	Position    int            `db:"position"`
}

type attemptRow struct {
	ID             int       `db:"id"`
	CandidateID    int       `db:"candidate_id"`
	TestID         null.Int  `db:"test_id"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	Percentage     int       `db:"percentage"`
	TotalSeconds   int       `db:"total_seconds"`
	SubmittedAt    time.Time `db:"submitted_at"`
}

func (r attemptRow) toAttempt() freetest.Attempt {
	return freetest.Attempt{
		TestID:         r.TestID,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		TimeTaken:      freetest.NewDuration(r.TotalSeconds),
		SubmittedAt:    r.SubmittedAt,
	}
}

type candidateRow struct {
	ID           int       `db:"id"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	Address      string    `db:"address"`
	RegisteredAt time.Time `db:"registered_at"`
}

func (r candidateRow) toCandidate() freetest.Candidate {
	return freetest.Candidate{
		ID:           r.ID,
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		RegisteredAt: r.RegisteredAt,
	}
}

// Test definitions

func (repo *freetestRepository) CreateTest(t freetest.Test) (freetest.Test, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return freetest.Test{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRow(
		`INSERT INTO test (name, duration_minutes, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		t.Name, t.DurationMinutes, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return freetest.Test{}, errors.Wrap(err, "inserting test")
	}

	if err = insertQuestions(tx, t.ID, t.Questions); err != nil {
		return freetest.Test{}, err
	}
	for i := range t.Questions {
		t.Questions[i].ID = i + 1
	}
	if err = tx.Commit(); err != nil {
		return freetest.Test{}, errors.Wrap(err, "committing test")
	}
	return t, nil
}

func insertQuestions(tx *sqlx.Tx, testID int, questions []freetest.Question) error {
	const query = `INSERT INTO question (test_id, prompt, options, answer_index, position) VALUES ($1, $2, $3, $4, $5)`
	for i, q := range questions {
		if _, err := tx.Exec(query, testID, q.Prompt, pq.StringArray(q.Options), q.AnswerIndex, i); err != nil {
			return errors.Wrap(err, "inserting question")
		}
	}
	return nil
}

func (repo *freetestRepository) loadQuestions(testID int) ([]freetest.Question, error) {
	var rows []questionRow
	err := repo.db.Select(&rows, `SELECT * FROM question WHERE test_id = $1 ORDER BY position`, testID)
	if err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	questions := make([]freetest.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, freetest.Question{
			ID:          row.ID,
			Prompt:      row.Prompt,
			Options:     []string(row.Options),
			AnswerIndex: row.AnswerIndex,
		})
	}
	return questions, nil
}

func (repo *freetestRepository) QueryAllTests() ([]freetest.Test, error) {
	var tests []freetest.Test
	if err := repo.db.Select(&tests, `SELECT * FROM test ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying tests")
	}
	for i := range tests {
		questions, err := repo.loadQuestions(tests[i].ID)
		if err != nil {
			return nil, err
		}
		tests[i].Questions = questions
	}
	return tests, nil
}

func (repo *freetestRepository) GetTestByID(id int) (freetest.Test, error) {
	var t freetest.Test
	err := repo.db.Get(&t, `SELECT * FROM test WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return freetest.Test{}, freetest.ErrTestNotFound
	}
	if err != nil {
		return freetest.Test{}, errors.Wrap(err, "getting test")
	}
	if t.Questions, err = repo.loadQuestions(id); err != nil {
		return freetest.Test{}, err
	}
	return t, nil
}

func (repo *freetestRepository) UpdateTest(t freetest.Test) (freetest.Test, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return freetest.Test{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		`UPDATE test SET name = $2, duration_minutes = $3, updated_at = $4 WHERE id = $1`,
		t.ID, t.Name, t.DurationMinutes, t.UpdatedAt,
	)
	if err != nil {
		return freetest.Test{}, errors.Wrap(err, "updating test")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return freetest.Test{}, freetest.ErrTestNotFound
	}

	// questions are replaced wholesale; the admin UI always sends the full set
	if _, err = tx.Exec(`DELETE FROM question WHERE test_id = $1`, t.ID); err != nil {
		return freetest.Test{}, errors.Wrap(err, "clearing questions")
	}
	if err = insertQuestions(tx, t.ID, t.Questions); err != nil {
		return freetest.Test{}, err
	}
	if err = tx.Commit(); err != nil {
		return freetest.Test{}, errors.Wrap(err, "committing test")
	}
	return t, nil
}

func (repo *freetestRepository) DeleteTest(id int) error {
	res, err := repo.db.Exec(`DELETE FROM test WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting test")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return freetest.ErrTestNotFound
	}
	return nil
}

// Candidates

func (repo *freetestRepository) CreateCandidate(cand freetest.Candidate) (freetest.Candidate, error) {
	err := repo.db.QueryRow(
		`INSERT INTO candidate (full_name, email, phone, address, registered_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		cand.FullName, cand.Email, cand.Phone, cand.Address, cand.RegisteredAt,
	).Scan(&cand.ID)
	if err != nil {
		return freetest.Candidate{}, errors.Wrap(err, "inserting candidate")
	}
	return cand, nil
}

func (repo *freetestRepository) GetCandidateByEmail(email string) (freetest.Candidate, error) {
	var row candidateRow
	err := repo.db.Get(&row, `SELECT * FROM candidate WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return freetest.Candidate{}, freetest.ErrCandidateNotFound
	}
	if err != nil {
		return freetest.Candidate{}, errors.Wrap(err, "getting candidate")
	}

	cand := row.toCandidate()
	var attempts []attemptRow
	err = repo.db.Select(&attempts, `SELECT * FROM attempt WHERE candidate_id = $1 ORDER BY id`, cand.ID)
	if err != nil {
		return freetest.Candidate{}, errors.Wrap(err, "querying attempts")
	}
	for _, att := range attempts {
		cand.History = append(cand.History, att.toAttempt())
	}
	return cand, nil
}

func (repo *freetestRepository) UpdateCandidateContact(cand freetest.Candidate) (freetest.Candidate, error) {
	res, err := repo.db.Exec(
		`UPDATE candidate SET full_name = $2, phone = $3, address = $4 WHERE id = $1`,
		cand.ID, cand.FullName, cand.Phone, cand.Address,
	)
	if err != nil {
		return freetest.Candidate{}, errors.Wrap(err, "updating candidate")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return freetest.Candidate{}, freetest.ErrCandidateNotFound
	}
	return cand, nil
}

func (repo *freetestRepository) ReplaceHistory(candidateID int, history []freetest.Attempt) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`DELETE FROM attempt WHERE candidate_id = $1`, candidateID); err != nil {
		return errors.Wrap(err, "clearing attempts")
	}
	const query = `
INSERT INTO attempt (candidate_id, test_id, score, total_questions, percentage, total_seconds, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, att := range history {
		_, err = tx.Exec(query, candidateID, att.TestID, att.Score, att.TotalQuestions,
			att.Percentage, att.TimeTaken.TotalSeconds, att.SubmittedAt)
		if err != nil {
			return errors.Wrap(err, "inserting attempt")
		}
	}
	return errors.Wrap(tx.Commit(), "committing history")
}

func (repo *freetestRepository) QueryCandidatesWithAttempts() ([]freetest.Candidate, error) {
	var candRows []candidateRow
	err := repo.db.Select(&candRows,
		`SELECT c.* FROM candidate c WHERE EXISTS (SELECT 1 FROM attempt a WHERE a.candidate_id = c.id) ORDER BY c.id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying candidates")
	}

	var attRows []attemptRow
	if err = repo.db.Select(&attRows, `SELECT * FROM attempt ORDER BY candidate_id, id`); err != nil {
		return nil, errors.Wrap(err, "querying attempts")
	}
	byCandidate := make(map[int][]freetest.Attempt, len(candRows))
	for _, att := range attRows {
		byCandidate[att.CandidateID] = append(byCandidate[att.CandidateID], att.toAttempt())
	}

	cands := make([]freetest.Candidate, 0, len(candRows))
	for _, row := range candRows {
		cand := row.toCandidate()
		cand.History = byCandidate[cand.ID]
		cands = append(cands, cand)
	}
	return cands, nil
}
