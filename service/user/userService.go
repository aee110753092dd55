package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"shareit/model"
	userrepo "shareit/repository/user"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrValidation ErrCode = "VALIDATION"
	ErrEmailTaken ErrCode = "EMAIL_TAKEN"
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
	Create(ctx context.Context, u model.User) (*model.User, error)
	Update(ctx context.Context, userID int64, patch model.User) (*model.User, error)
	Get(ctx context.Context, userID int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, userID int64) error
}

type service struct{ r userrepo.Repo }

func New(r userrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, u model.User) (*model.User, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	if err := s.r.Create(ctx, &u); err != nil {
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return nil, makeErr(ErrEmailTaken, "email already in use")
		}
		return nil, err
	}
	return &u, nil
}

// Update merges only the fields present in the patch; the merged record must
// still pass full validation.
func (s *service) Update(ctx context.Context, userID int64, patch model.User) (*model.User, error) {
	u, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if err := validate(*u); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return nil, makeErr(ErrEmailTaken, "email already in use")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.get(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	users, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *service) Delete(ctx context.Context, userID int64) error {
	if _, err := s.get(ctx, userID); err != nil {
		return err
	}
	return s.r.Delete(ctx, userID)
}

func (s *service) get(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func validate(u model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return makeErr(ErrValidation, "name must not be blank")
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return makeErr(ErrValidation, "email must not be blank and must contain @")
	}
	return nil
}
