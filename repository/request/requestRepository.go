package requestrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, excludeAuthorID int64, limit, offset int) ([]model.ItemRequest, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `
INSERT INTO item_requests (description, author_id, created_at)
VALUES ($1,$2,$3)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, req.Description, req.AuthorID, req.Created).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
SELECT id, description, author_id, created_at
FROM item_requests
WHERE id = $1`
	req := &model.ItemRequest{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&req.ID, &req.Description, &req.AuthorID, &req.Created)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ListByAuthor(ctx context.Context, authorID int64) ([]model.ItemRequest, error) {
	const q = `
SELECT id, description, author_id, created_at
FROM item_requests
WHERE author_id = $1
ORDER BY created_at DESC`
	return r.queryRequests(ctx, q, authorID)
}

func (r *repo) ListOthers(ctx context.Context, excludeAuthorID int64, limit, offset int) ([]model.ItemRequest, error) {
	const q = `
SELECT id, description, author_id, created_at
FROM item_requests
WHERE author_id <> $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	return r.queryRequests(ctx, q, excludeAuthorID, limit, offset)
}

func (r *repo) queryRequests(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.AuthorID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
