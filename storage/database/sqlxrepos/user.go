package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/manhreal/web-2-grw-sub000/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// userRow adds the array column sqlx cannot map onto User directly.
type userRow struct {
	user.User
	DBRoles pq.StringArray `db:"roles"`
}

func (r userRow) toUser() user.User {
	usr := r.User
	usr.Roles = []string(r.DBRoles)
	return usr
}

func toUsers(rows []userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users
}

const userColumns = `id, name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login`

func (repo *userRepository) CheckUsernameUniqueness(username, email string, excludedUsers ...user.User) error {
	query := `SELECT username, email FROM "user" WHERE (username = ? OR email = ?)`
	args := []interface{}{username, email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		query += ` AND id NOT IN (?)`
		var err error
		if query, args, err = sqlx.In(query, username, email, ids); err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
	}

	var row struct {
		Username string `db:"username"`
		Email    string `db:"email"`
	}
	err := repo.db.Get(&row, repo.db.Rebind(query), args...)
	switch err {
	case sql.ErrNoRows:
		return nil
	case nil:
		if row.Username == username {
			return user.ErrUsernameExists
		}
		return user.ErrEmailExists
	default:
		return errors.Wrap(err, "checking uniqueness")
	}
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	const query = `
INSERT INTO "user" (id, name, username, email, is_active, roles, password_hash, created_at, updated_at, last_login)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := repo.db.Exec(query,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.IsActive,
		pq.StringArray(usr.Roles), usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, `SELECT `+userColumns+` FROM "user" ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	var row userRow
	err := repo.db.Get(&row, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	var row userRow
	err := repo.db.Get(&row, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	var row userRow
	err := repo.db.Get(&row, `SELECT `+userColumns+` FROM "user" WHERE username = $1 OR email = $1`, username)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE 1=1`
	var args []interface{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += " AND (name ILIKE $" + itoa(n) + " OR username ILIKE $" + itoa(n) + " OR email ILIKE $" + itoa(n) + ")"
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += " AND is_active = $" + itoa(len(args))
	}
	query += " ORDER BY created_at"

	var rows []userRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering users")
	}
	return toUsers(rows), nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	const query = `
UPDATE "user" SET
	name          = COALESCE(NULLIF($2, ''), name),
	username      = COALESCE(NULLIF($3, ''), username),
	email         = COALESCE(NULLIF($4, ''), email),
	roles         = COALESCE($5, roles),
	password_hash = COALESCE($6, password_hash),
	is_active     = COALESCE($7, is_active),
	updated_at    = CASE WHEN $8 = 'epoch'::timestamptz THEN updated_at ELSE $8 END,
	last_login    = CASE WHEN $9 = 'epoch'::timestamptz THEN last_login ELSE $9 END
WHERE id = $1
RETURNING ` + userColumns
	var roles interface{}
	if usr.Roles != nil {
		roles = pq.StringArray(usr.Roles)
	}
	var pwdHash interface{}
	if usr.PasswordHash != nil {
		pwdHash = usr.PasswordHash
	}
	var active interface{}
	if isActive != nil {
		active = *isActive
	}

	var row userRow
	err := repo.db.Get(&row, query, usr.ID, usr.Name, usr.Username, usr.Email,
		roles, pwdHash, active, zeroAsEpoch(usr.UpdatedAt), zeroAsEpoch(usr.LastLogin))
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) DeleteUsersByID(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
