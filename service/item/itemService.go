package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	itemrepo "shareit/repository/item"
	userrepo "shareit/repository/user"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrValidation ErrCode = "VALIDATION"
	ErrForbidden  ErrCode = "FORBIDDEN"
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
	Create(ctx context.Context, ownerID int64, it model.Item) (*model.Item, error)

	// Update merges non-empty patch fields; only the owner may update.
	Update(ctx context.Context, itemID, requesterID int64, patch model.Item) (*model.Item, error)

	// Get returns the item with its comments; when requesterID is the
	// owner's id it also carries last/next approved-booking summaries.
	// requesterID 0 means anonymous.
	Get(ctx context.Context, requesterID, itemID int64) (*model.ItemDetail, error)

	// ListByOwner returns the caller's items in owner view.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.ItemDetail, error)

	Search(ctx context.Context, text string) ([]model.Item, error)

	// AddComment lets a user comment on an item they had a finished
	// booking of.
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error)
}

type service struct {
	items    itemrepo.Repo
	users    userrepo.Repo
	bookings bookingrepo.Repo
}

func New(items itemrepo.Repo, users userrepo.Repo, bookings bookingrepo.Repo) Service {
	return &service{items: items, users: users, bookings: bookings}
}

func (s *service) Create(ctx context.Context, ownerID int64, it model.Item) (*model.Item, error) {
	if strings.TrimSpace(it.Name) == "" {
		return nil, makeErr(ErrValidation, "name must not be blank")
	}
	if strings.TrimSpace(it.Description) == "" {
		return nil, makeErr(ErrValidation, "description must not be blank")
	}
	if it.Available == nil {
		return nil, makeErr(ErrValidation, "available must be set")
	}
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		return nil, asNotFound(err, "user not found")
	}
	it.OwnerID = ownerID
	if err := s.items.Create(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *service) Update(ctx context.Context, itemID, requesterID int64, patch model.Item) (*model.Item, error) {
	it, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, asNotFound(err, "item not found")
	}
	if it.OwnerID != requesterID {
		return nil, makeErr(ErrForbidden, "only the owner may update an item")
	}
	if patch.Name != "" {
		it.Name = patch.Name
	}
	if patch.Description != "" {
		it.Description = patch.Description
	}
	if patch.Available != nil {
		it.Available = patch.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, requesterID, itemID int64) (*model.ItemDetail, error) {
	it, err := s.items.ByID(ctx, itemID)
	if err != nil {
		return nil, asNotFound(err, "item not found")
	}
	return s.detail(ctx, it, requesterID == it.OwnerID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]model.ItemDetail, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		return nil, asNotFound(err, "user not found")
	}
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemDetail, 0, len(items))
	for i := range items {
		d, err := s.detail(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, makeErr(ErrValidation, "text must not be blank")
	}
	if _, err := s.items.ByID(ctx, itemID); err != nil {
		return nil, asNotFound(err, "item not found")
	}
	author, err := s.users.ByID(ctx, authorID)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	now := time.Now()
	ok, err := s.bookings.HasFinished(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrValidation, "user has no finished booking of this item")
	}
	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.items.InsertComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) detail(ctx context.Context, it *model.Item, ownerView bool) (*model.ItemDetail, error) {
	comments, err := s.items.ListComments(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	d := &model.ItemDetail{Item: *it, Comments: comments}
	if !ownerView {
		return d, nil
	}
	now := time.Now()
	if d.LastBooking, err = s.bookings.LastForItem(ctx, it.ID, now); err != nil {
		return nil, err
	}
	if d.NextBooking, err = s.bookings.NextForItem(ctx, it.ID, now); err != nil {
		return nil, err
	}
	return d, nil
}

func asNotFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound, msg)
	}
	return err
}
