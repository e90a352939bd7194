package services

import (
	"context"
	"strings"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/repositories"
	"booking-system/airline/internal/models/dtos"
	gormModels "booking-system/airline/internal/models/gorm"
)

// TokenIssuer mints identity tokens for registered users.
type TokenIssuer interface {
	Issue(userID int64, isAdmin bool) (string, error)
}

type UserService struct {
	users      *repositories.UserRepositoryGORM
	tokens     TokenIssuer
	bcryptCost int
}

func NewUserService(store *db.Store, tokens TokenIssuer, bcryptCost int) *UserService {
	return &UserService{
		users:      repositories.NewUserRepositoryGORM(store.DB),
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a non-admin user and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, req dtos.RegisterUserReq) (*gormModels.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", db.TranslateError(err)
	}
	if existing == nil {
		existing, err = s.users.FindByUsername(ctx, username)
		if err != nil {
			return nil, "", db.TranslateError(err)
		}
	}
	if existing != nil {
		return nil, "", common.NewConflict(constants.MsgUserAlreadyExists)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", common.NewServerError(err)
	}

	user := &gormModels.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if common.IsCategory(db.TranslateError(err), common.CategoryConflict) {
			return nil, "", common.NewConflict(constants.MsgUserAlreadyExists)
		}
		return nil, "", db.TranslateError(err)
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", common.NewServerError(err)
	}
	return user, token, nil
}

// Login checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req dtos.LoginReq) (*gormModels.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, "", db.TranslateError(err)
	}
	if user == nil {
		return nil, "", common.NewUnauthenticated(constants.MsgInvalidCredentials)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, "", common.NewServerError(err)
	}
	if !ok {
		return nil, "", common.NewUnauthenticated(constants.MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", common.NewServerError(err)
	}
	return user, token, nil
}
