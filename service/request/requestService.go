package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shareit/model"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrValidation ErrCode = "VALIDATION"
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
	Create(ctx context.Context, authorID int64, description string) (*model.ItemRequest, error)

	// Own lists the caller's requests, newest first.
	Own(ctx context.Context, userID int64) ([]model.ItemRequest, error)

	// AllOthers lists other users' requests, newest first, paged.
	AllOthers(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)

	Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error)
}

type service struct {
	requests requestrepo.Repo
	items    itemrepo.Repo
	users    userrepo.Repo
}

func New(requests requestrepo.Repo, items itemrepo.Repo, users userrepo.Repo) Service {
	return &service{requests: requests, items: items, users: users}
}

func (s *service) Create(ctx context.Context, authorID int64, description string) (*model.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, makeErr(ErrValidation, "description must not be blank")
	}
	if err := s.checkUser(ctx, authorID); err != nil {
		return nil, err
	}
	req := &model.ItemRequest{
		Description: description,
		AuthorID:    authorID,
		Created:     time.Now(),
		Items:       []model.Item{},
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Own(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, reqs)
}

func (s *service) AllOthers(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	if from < 0 || size < 1 {
		return nil, makeErr(ErrValidation, "from must be >= 0 and size >= 1")
	}
	offset := (from / size) * size
	reqs, err := s.requests.ListOthers(ctx, userID, size, offset)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, reqs)
}

func (s *service) Get(ctx context.Context, userID, requestID int64) (*model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.requests.ByID(ctx, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound, "request not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) checkUser(ctx context.Context, userID int64) error {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound, "user not found")
		}
		return err
	}
	return nil
}

// enrich attaches the items listed in answer to the request; the slice is
// empty, never nil, when nothing matches.
func (s *service) enrich(ctx context.Context, req *model.ItemRequest) error {
	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.Item{}
	}
	req.Items = items
	return nil
}

func (s *service) enrichAll(ctx context.Context, reqs []model.ItemRequest) ([]model.ItemRequest, error) {
	out := make([]model.ItemRequest, 0, len(reqs))
	for i := range reqs {
		if err := s.enrich(ctx, &reqs[i]); err != nil {
			return nil, err
		}
		out = append(out, reqs[i])
	}
	return out, nil
}
