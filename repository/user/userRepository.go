package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"shareit/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken reports a users.email unique-constraint violation.
var ErrEmailTaken = errors.New("email already in use")

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (name, email)
VALUES ($1,$2)
RETURNING id`
	if err := r.db.QueryRowContext(ctx, q, u.Name, u.Email).Scan(&u.ID); err != nil {
		return mapUnique(err)
	}
	return nil
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	const q = `
UPDATE users
SET name = $2, email = $3
WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email); err != nil {
		return mapUnique(err)
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
SELECT id, name, email
FROM users
WHERE id = $1`
	u := &model.User{}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	const q = `
SELECT id, name, email
FROM users
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailTaken
	}
	return err
}
