// Package users implements the account workflows: registration, login and
// profile lookup.
package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/libauth/internal/common"
	"github.com/dmitrijs2005/libauth/internal/logging"
	"github.com/dmitrijs2005/libauth/internal/server/auth"
	"github.com/dmitrijs2005/libauth/internal/server/models"
	usersrepo "github.com/dmitrijs2005/libauth/internal/server/repositories/users"
	"github.com/google/uuid"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) ([]byte, error)
	Verify(plaintext string, hash []byte) bool
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	UserType  models.UserType
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	User  *models.PublicUser
}

// Service orchestrates the credential store, the password hasher and the
// token issuer. It holds no per-request state.
type Service struct {
	repo   usersrepo.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	logger logging.Logger
	newID  func() string

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo usersrepo.Repository, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "users"),
		newID:  uuid.NewString,
	}
}

// Register hashes the password and stores a new user. A taken email yields
// common.ErrDuplicateEmail, a store failure common.ErrStorage.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		UserType:     in.UserType,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: error creating user: %v", common.ErrStorage, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "user_type", string(user.UserType))
	return user.Public(), nil
}

// Login checks email and password and issues a session token. An unknown
// email yields common.ErrUserNotFound and a wrong password
// common.ErrInvalidCredentials; callers must not reveal which one happened.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt time as a real check
			s.hasher.Verify(password, s.getDummyHash())
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: error searching user: %v", common.ErrStorage, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user.Public()}, nil
}

// GetProfile returns the public view of the user with the given id.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: error loading user: %v", common.ErrStorage, err)
	}
	return user.Public(), nil
}

func (s *Service) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
