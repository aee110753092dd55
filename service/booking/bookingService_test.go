package bookingsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemrepo "shareit/repository/item"
	userrepo "shareit/repository/user"

	"github.com/stretchr/testify/require"
)

type bookingRepoMock struct {
	createFn       func(ctx context.Context, b *model.Booking) error
	byIDFn         func(ctx context.Context, id int64) (*model.Booking, error)
	updateStatusFn func(ctx context.Context, id int64, status model.BookingStatus) error
	listByBookerFn func(ctx context.Context, bookerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error)
	listByOwnerFn  func(ctx context.Context, ownerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error)
}

var _ bookingrepo.Repo = (*bookingRepoMock)(nil)

func (m *bookingRepoMock) Create(ctx context.Context, b *model.Booking) error {
	return m.createFn(ctx, b)
}
func (m *bookingRepoMock) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return m.byIDFn(ctx, id)
}
func (m *bookingRepoMock) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *bookingRepoMock) ListByBooker(ctx context.Context, bookerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	return m.listByBookerFn(ctx, bookerID, f, now, limit, offset)
}
func (m *bookingRepoMock) ListByOwner(ctx context.Context, ownerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
	return m.listByOwnerFn(ctx, ownerID, f, now, limit, offset)
}
func (m *bookingRepoMock) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return false, nil
}
func (m *bookingRepoMock) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	return nil, nil
}
func (m *bookingRepoMock) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	return nil, nil
}

type userRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

var _ userrepo.Repo = (*userRepoMock)(nil)

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error { return nil }
func (m *userRepoMock) Update(ctx context.Context, u *model.User) error { return nil }
func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id, Name: "user", Email: "user@example.com"}, nil
	}
	return m.byIDFn(ctx, id)
}
func (m *userRepoMock) List(ctx context.Context) ([]model.User, error) { return nil, nil }
func (m *userRepoMock) Delete(ctx context.Context, id int64) error     { return nil }

type itemRepoMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Item, error)
}

var _ itemrepo.Repo = (*itemRepoMock)(nil)

func (m *itemRepoMock) Create(ctx context.Context, it *model.Item) error { return nil }
func (m *itemRepoMock) Update(ctx context.Context, it *model.Item) error { return nil }
func (m *itemRepoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.byIDFn(ctx, id)
}
func (m *itemRepoMock) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return nil, nil
}
func (m *itemRepoMock) ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	return nil, nil
}
func (m *itemRepoMock) Search(ctx context.Context, text string) ([]model.Item, error) {
	return nil, nil
}
func (m *itemRepoMock) InsertComment(ctx context.Context, c *model.Comment) error { return nil }
func (m *itemRepoMock) ListComments(ctx context.Context, itemID int64) ([]model.Comment, error) {
	return nil, nil
}

func boolPtr(b bool) *bool { return &b }

func availableItem(ownerID int64) *model.Item {
	return &model.Item{ID: 5, Name: "drill", Description: "a drill", Available: boolPtr(true), OwnerID: ownerID}
}

// --- Create ---

func TestCreate_UnknownBooker(t *testing.T) {
	svc := New(&bookingRepoMock{}, &itemRepoMock{}, &userRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	})

	_, err := svc.Create(context.Background(), 1, 5, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCreate_UnknownItem(t *testing.T) {
	svc := New(&bookingRepoMock{}, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return nil, sql.ErrNoRows },
	}, &userRepoMock{})

	_, err := svc.Create(context.Background(), 1, 5, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCreate_TemporalValidation(t *testing.T) {
	svc := New(&bookingRepoMock{}, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(2), nil },
	}, &userRepoMock{})
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, 5, time.Time{}, time.Now().Add(time.Hour))
	require.Equal(t, ErrValidation, Code(err))

	start := time.Now().Add(2 * time.Hour)
	_, err = svc.Create(ctx, 1, 5, start, start)
	require.Equal(t, ErrValidation, Code(err))

	_, err = svc.Create(ctx, 1, 5, start, start.Add(-time.Hour))
	require.Equal(t, ErrValidation, Code(err))

	_, err = svc.Create(ctx, 1, 5, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.Equal(t, ErrValidation, Code(err))
}

func TestCreate_ItemUnavailable(t *testing.T) {
	it := availableItem(2)
	it.Available = boolPtr(false)
	svc := New(&bookingRepoMock{}, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return it, nil },
	}, &userRepoMock{})

	_, err := svc.Create(context.Background(), 1, 5, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	require.Equal(t, ErrValidation, Code(err))
}

func TestCreate_OwnItemReportedAbsent(t *testing.T) {
	svc := New(&bookingRepoMock{}, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(1), nil },
	}, &userRepoMock{})

	_, err := svc.Create(context.Background(), 1, 5, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCreate_Success(t *testing.T) {
	bookings := &bookingRepoMock{
		createFn: func(ctx context.Context, b *model.Booking) error {
			b.ID = 77
			return nil
		},
	}
	svc := New(bookings, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(2), nil },
	}, &userRepoMock{})

	b, err := svc.Create(context.Background(), 1, 5, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(77), b.ID)
	require.Equal(t, model.BookingWaiting, b.Status)
	require.Equal(t, int64(1), b.BookerID)
	require.Equal(t, "drill", b.ItemName)
}

// --- SetApproval ---

func waitingBooking() *model.Booking {
	return &model.Booking{ID: 77, ItemID: 5, BookerID: 1, Status: model.BookingWaiting}
}

func TestSetApproval_ApproveAndReject(t *testing.T) {
	var updated model.BookingStatus
	bookings := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) { return waitingBooking(), nil },
		updateStatusFn: func(ctx context.Context, id int64, status model.BookingStatus) error {
			updated = status
			return nil
		},
	}
	svc := New(bookings, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(2), nil },
	}, &userRepoMock{})

	b, err := svc.SetApproval(context.Background(), 2, 77, true)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, b.Status)
	require.Equal(t, model.BookingApproved, updated)

	b, err = svc.SetApproval(context.Background(), 2, 77, false)
	require.NoError(t, err)
	require.Equal(t, model.BookingRejected, b.Status)
	require.Equal(t, model.BookingRejected, updated)
}

func TestSetApproval_NotOwnerReportedAbsent(t *testing.T) {
	bookings := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) { return waitingBooking(), nil },
	}
	svc := New(bookings, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(2), nil },
	}, &userRepoMock{})

	_, err := svc.SetApproval(context.Background(), 9, 77, true)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestSetApproval_AlreadyDone(t *testing.T) {
	b := waitingBooking()
	b.Status = model.BookingApproved
	bookings := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) { return b, nil },
	}
	svc := New(bookings, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(2), nil },
	}, &userRepoMock{})

	_, err := svc.SetApproval(context.Background(), 2, 77, false)
	require.Error(t, err)
	require.Equal(t, ErrAlreadyDone, Code(err))
}

func TestSetApproval_UnknownBooking(t *testing.T) {
	bookings := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) { return nil, sql.ErrNoRows },
	}
	svc := New(bookings, &itemRepoMock{}, &userRepoMock{})

	_, err := svc.SetApproval(context.Background(), 2, 404, true)
	require.Equal(t, ErrNotFound, Code(err))
}

// --- Get ---

func TestGet_AccessControl(t *testing.T) {
	bookings := &bookingRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) { return waitingBooking(), nil },
	}
	svc := New(bookings, &itemRepoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return availableItem(2), nil },
	}, &userRepoMock{})
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, 77) // booker
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, 77) // item owner
	require.NoError(t, err)

	_, err = svc.Get(ctx, 3, 77) // stranger
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

// --- listings ---

func TestList_UnknownState(t *testing.T) {
	svc := New(&bookingRepoMock{}, &itemRepoMock{}, &userRepoMock{})

	_, err := svc.ListForBooker(context.Background(), 1, "PENDING", 0, 10)
	require.Error(t, err)
	require.Equal(t, ErrUnknownState, Code(err))
	require.Equal(t, "Unknown state: PENDING", err.Error())

	// case-sensitive
	_, err = svc.ListForOwner(context.Background(), 1, "all", 0, 10)
	require.Equal(t, ErrUnknownState, Code(err))
}

func TestList_PageParamValidation(t *testing.T) {
	svc := New(&bookingRepoMock{}, &itemRepoMock{}, &userRepoMock{})

	_, err := svc.ListForBooker(context.Background(), 1, "ALL", -1, 10)
	require.Equal(t, ErrValidation, Code(err))

	_, err = svc.ListForOwner(context.Background(), 1, "ALL", 0, 0)
	require.Equal(t, ErrValidation, Code(err))
}

func TestList_FloorDivisionPaging(t *testing.T) {
	var gotLimit, gotOffset int
	bookings := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := New(bookings, &itemRepoMock{}, &userRepoMock{})
	ctx := context.Background()

	_, err := svc.ListForBooker(ctx, 1, "ALL", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 10, gotLimit)
	require.Equal(t, 0, gotOffset)

	_, err = svc.ListForBooker(ctx, 1, "ALL", 10, 10)
	require.NoError(t, err)
	require.Equal(t, 10, gotOffset)

	// from inside a page floors to that page's start
	_, err = svc.ListForBooker(ctx, 1, "ALL", 15, 10)
	require.NoError(t, err)
	require.Equal(t, 10, gotOffset)
}

func TestList_RejectedSharesWaitingQuery(t *testing.T) {
	var got []bookingrepo.StatusFilter
	bookings := &bookingRepoMock{
		listByOwnerFn: func(ctx context.Context, ownerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
			got = append(got, f)
			return nil, nil
		},
	}
	svc := New(bookings, &itemRepoMock{}, &userRepoMock{})
	ctx := context.Background()

	_, err := svc.ListForOwner(ctx, 1, "WAITING", 0, 10)
	require.NoError(t, err)
	_, err = svc.ListForOwner(ctx, 1, "REJECTED", 0, 10)
	require.NoError(t, err)

	require.Equal(t, []bookingrepo.StatusFilter{
		bookingrepo.FilterWaitingOrRejected,
		bookingrepo.FilterWaitingOrRejected,
	}, got)
}

func TestList_TemporalFilters(t *testing.T) {
	var got bookingrepo.StatusFilter
	bookings := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
			got = f
			return nil, nil
		},
	}
	svc := New(bookings, &itemRepoMock{}, &userRepoMock{})
	ctx := context.Background()

	for state, want := range map[string]bookingrepo.StatusFilter{
		"ALL":     bookingrepo.FilterAll,
		"CURRENT": bookingrepo.FilterCurrent,
		"PAST":    bookingrepo.FilterPast,
		"FUTURE":  bookingrepo.FilterFuture,
	} {
		_, err := svc.ListForBooker(ctx, 1, state, 0, 10)
		require.NoError(t, err)
		require.Equal(t, want, got, "state %s", state)
	}
}

func TestList_EmptyResultIsSlice(t *testing.T) {
	bookings := &bookingRepoMock{
		listByBookerFn: func(ctx context.Context, bookerID int64, f bookingrepo.StatusFilter, now time.Time, limit, offset int) ([]model.Booking, error) {
			return nil, nil
		},
	}
	svc := New(bookings, &itemRepoMock{}, &userRepoMock{})

	out, err := svc.ListForBooker(context.Background(), 1, "ALL", 0, 10)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}
