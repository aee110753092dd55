package bookingrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shareit/model"
)

// StatusFilter is the query shape the listing endpoints select between.
// The WAITING and REJECTED state filters both resolve to
// FilterWaitingOrRejected; the listing endpoints share that query.
type StatusFilter string

const (
	FilterAll               StatusFilter = "ALL"
	FilterCurrent           StatusFilter = "CURRENT"
	FilterPast              StatusFilter = "PAST"
	FilterFuture            StatusFilter = "FUTURE"
	FilterWaitingOrRejected StatusFilter = "WAITING_OR_REJECTED"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error

	ListByBooker(ctx context.Context, bookerID int64, f StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, f StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error)

	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.Start, b.End, b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `
SELECT b.id, b.start_date, b.end_date, b.item_id, i.name, b.booker_id, b.status
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE b.id = $1`
	b := &model.Booking{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.BookerID, &b.Status,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	const q = `
UPDATE bookings
SET status = $2
WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, status)
	return err
}

const listColumns = `
SELECT b.id, b.start_date, b.end_date, b.item_id, i.name, b.booker_id, b.status
FROM bookings b
JOIN items i ON i.id = b.item_id
`

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, f StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	q, args := listQuery(`WHERE b.booker_id = $1`, f, bookerID, now, limit, offset)
	return r.queryBookings(ctx, q, args...)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, f StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	q, args := listQuery(`WHERE i.owner_id = $1`, f, ownerID, now, limit, offset)
	return r.queryBookings(ctx, q, args...)
}

func listQuery(who string, f StatusFilter, id int64, now time.Time, limit, offset int) (string, []any) {
	var clause string
	args := []any{id}
	switch f {
	case FilterCurrent:
		clause = ` AND b.start_date <= $2 AND b.end_date >= $2`
		args = append(args, now)
	case FilterPast:
		clause = ` AND b.end_date < $2`
		args = append(args, now)
	case FilterFuture:
		clause = ` AND b.start_date > $2`
		args = append(args, now)
	case FilterWaitingOrRejected:
		clause = ` AND b.status IN ('WAITING','REJECTED')`
	}
	n := len(args)
	q := listColumns + who + clause +
		fmt.Sprintf("\nORDER BY b.start_date DESC\nLIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)
	return q, args
}

func (r *repo) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1
    FROM bookings
    WHERE booker_id = $1 AND item_id = $2 AND end_date < $3
)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	const q = `
SELECT id, booker_id
FROM bookings
WHERE item_id = $1 AND status = 'APPROVED' AND start_date <= $2
ORDER BY start_date DESC
LIMIT 1`
	return r.querySummary(ctx, q, itemID, now)
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	const q = `
SELECT id, booker_id
FROM bookings
WHERE item_id = $1 AND status = 'APPROVED' AND start_date > $2
ORDER BY start_date ASC
LIMIT 1`
	return r.querySummary(ctx, q, itemID, now)
}

func (r *repo) querySummary(ctx context.Context, q string, itemID int64, now time.Time) (*model.BookingSummary, error) {
	s := &model.BookingSummary{}
	err := r.db.QueryRowContext(ctx, q, itemID, now).Scan(&s.ID, &s.BookerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.BookerID, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
