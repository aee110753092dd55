package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemrepo "shareit/repository/item"
	userrepo "shareit/repository/user"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrValidation   ErrCode = "VALIDATION"
	ErrAlreadyDone  ErrCode = "ALREADY_DONE"
	ErrUnknownState ErrCode = "UNKNOWN_STATE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string      { return e.msg }
func (e codedError) Code() ErrCode      { return e.code }
func makeErr(c ErrCode, m string) error { return codedError{code: c, msg: m} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	// Create places a booking request on an item; it waits for the owner's
	// decision (status WAITING).
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error)

	// SetApproval is the owner's WAITING -> APPROVED/REJECTED transition.
	SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error)

	// Get returns a booking to its booker or the item's owner; anyone else
	// sees it as absent.
	Get(ctx context.Context, requesterID, bookingID int64) (*model.Booking, error)

	ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
	ListForOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
}

type service struct {
	bookings bookingrepo.Repo
	items    itemrepo.Repo
	users    userrepo.Repo
}

func New(bookings bookingrepo.Repo, items itemrepo.Repo, users userrepo.Repo) Service {
	return &service{bookings: bookings, items: items, users: users}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	if _, err := s.users.ByID(ctx, bookerID); err != nil {
		return nil, asNotFound(err, "user not found")
	}
	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, asNotFound(err, "item not found")
	}
	if start.IsZero() || end.IsZero() {
		return nil, makeErr(ErrValidation, "start and end must be set")
	}
	if !start.Before(end) {
		return nil, makeErr(ErrValidation, "start must be before end")
	}
	if start.Before(time.Now()) {
		return nil, makeErr(ErrValidation, "start must not be in the past")
	}
	if item.Available == nil || !*item.Available {
		return nil, makeErr(ErrValidation, "item is not available")
	}
	// Owners cannot book their own items; reported as absence so the
	// response does not reveal ownership.
	if item.OwnerID == bookerID {
		return nil, makeErr(ErrNotFound, "item not found")
	}

	b := &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		ItemName: item.Name,
		BookerID: bookerID,
		Status:   model.BookingWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		return nil, asNotFound(err, "user not found")
	}
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, asNotFound(err, "booking not found")
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, asNotFound(err, "item not found")
	}
	if item.OwnerID != ownerID {
		return nil, makeErr(ErrNotFound, "booking not found")
	}
	if b.Status != model.BookingWaiting {
		return nil, makeErr(ErrAlreadyDone, "booking is already finalized")
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) Get(ctx context.Context, requesterID, bookingID int64) (*model.Booking, error) {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return nil, asNotFound(err, "booking not found")
	}
	item, err := s.items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, asNotFound(err, "item not found")
	}
	if requesterID != b.BookerID && requesterID != item.OwnerID {
		return nil, makeErr(ErrNotFound, "booking not found")
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	f, limit, offset, err := s.listParams(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	out, err := s.bookings.ListByBooker(ctx, userID, f, time.Now(), limit, offset)
	return normalize(out), err
}

func (s *service) ListForOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	f, limit, offset, err := s.listParams(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}
	out, err := s.bookings.ListByOwner(ctx, userID, f, time.Now(), limit, offset)
	return normalize(out), err
}

func (s *service) listParams(ctx context.Context, userID int64, state string, from, size int) (bookingrepo.StatusFilter, int, int, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return "", 0, 0, asNotFound(err, "user not found")
	}
	f, ok := model.ParseStateFilter(state)
	if !ok {
		return "", 0, 0, makeErr(ErrUnknownState, "Unknown state: "+state)
	}
	if from < 0 || size < 1 {
		return "", 0, 0, makeErr(ErrValidation, "from must be >= 0 and size >= 1")
	}
	// Page index is from/size; the window is that page, not an offset of
	// `from` rows.
	offset := (from / size) * size
	return statusFilter(f), size, offset, nil
}

// statusFilter maps the listing state to a repository query. WAITING and
// REJECTED intentionally share the waiting-or-rejected query.
func statusFilter(f model.StateFilter) bookingrepo.StatusFilter {
	switch f {
	case model.StateCurrent:
		return bookingrepo.FilterCurrent
	case model.StatePast:
		return bookingrepo.FilterPast
	case model.StateFuture:
		return bookingrepo.FilterFuture
	case model.StateWaiting, model.StateRejected:
		return bookingrepo.FilterWaitingOrRejected
	default:
		return bookingrepo.FilterAll
	}
}

func asNotFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound, msg)
	}
	return err
}

func normalize(bs []model.Booking) []model.Booking {
	if bs == nil {
		return []model.Booking{}
	}
	return bs
}
