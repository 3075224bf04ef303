package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core/advising"
)

type advisingRepository struct {
	db *sqlx.DB
}

func NewAdvisingRepository(db *sqlx.DB) advising.Repository {
	return &advisingRepository{db: db}
}

func (repo *advisingRepository) CreateRequest(req advising.Request) (advising.Request, error) {
	const query = `
INSERT INTO advising_request (full_name, email, phone, course_name, message, handled, created_at)
VALUES (:full_name, :email, :phone, :course_name, :message, :handled, :created_at)
RETURNING id`
	rows, err := repo.db.NamedQuery(query, req)
	if err != nil {
		return advising.Request{}, errors.Wrap(err, "inserting advising request")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&req.ID); err != nil {
			return advising.Request{}, errors.Wrap(err, "inserting advising request")
		}
	}
	return req, nil
}

func (repo *advisingRepository) QueryRequests() ([]advising.Request, error) {
	var out []advising.Request
	err := repo.db.Select(&out, `SELECT * FROM advising_request ORDER BY created_at DESC`)
	return out, errors.Wrap(err, "querying advising requests")
}

func (repo *advisingRepository) GetRequestByID(id int) (advising.Request, error) {
	var req advising.Request
	err := repo.db.Get(&req, `SELECT * FROM advising_request WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return advising.Request{}, advising.ErrNotFound
	}
	if err != nil {
		return advising.Request{}, errors.Wrap(err, "getting advising request")
	}
	return req, nil
}

func (repo *advisingRepository) SetRequestHandled(id int, handled bool) (advising.Request, error) {
	var req advising.Request
	err := repo.db.Get(&req,
		`UPDATE advising_request SET handled = $2 WHERE id = $1 RETURNING *`, id, handled)
	if err == sql.ErrNoRows {
		return advising.Request{}, advising.ErrNotFound
	}
	if err != nil {
		return advising.Request{}, errors.Wrap(err, "updating advising request")
	}
	return req, nil
}
