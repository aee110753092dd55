package itemrepo

import (
	"context"
	"database/sql"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	Search(ctx context.Context, text string) ([]model.Item, error)

	InsertComment(ctx context.Context, c *model.Comment) error
	ListComments(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
INSERT INTO items (name, description, available, owner_id, request_id)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		it.Name, it.Description, *it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
UPDATE items
SET name = $2, description = $3, available = $4
WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, *it.Available)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE id = $1`
	return scanItem(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE owner_id = $1
ORDER BY id ASC`
	return r.queryItems(ctx, q, ownerID)
}

func (r *repo) ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE request_id = $1
ORDER BY id ASC`
	return r.queryItems(ctx, q, requestID)
}

func (r *repo) Search(ctx context.Context, text string) ([]model.Item, error) {
	const q = `
SELECT id, name, description, available, owner_id, request_id
FROM items
WHERE available = TRUE
  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
ORDER BY id ASC`
	return r.queryItems(ctx, q, text)
}

func (r *repo) InsertComment(ctx context.Context, c *model.Comment) error {
	const q = `
INSERT INTO comments (text, item_id, author_id, created_at)
VALUES ($1,$2,$3,$4)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, c.Text, c.ItemID, c.AuthorID, c.Created).Scan(&c.ID)
}

func (r *repo) ListComments(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `
SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = $1
ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		var available bool
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		it.Available = &available
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanItem(row *sql.Row) (*model.Item, error) {
	it := &model.Item{}
	var available bool
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &available, &it.OwnerID, &it.RequestID); err != nil {
		return nil, err
	}
	it.Available = &available
	return it, nil
}
