package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teamfolio/teamfolio-go/internal/crypto"
	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/repository"
)

var (
	ErrUsernameRequired  = errors.New("username is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrEmailTaken        = errors.New("this email address is already in use")
	ErrIDTaken           = errors.New("this id is already in use")
	ErrUserNotRegistered = errors.New("user is not registered")
	ErrWrongPassword     = errors.New("wrong password")
)

// AuthService handles registration and login.
type AuthService struct {
	repo      UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns the stored user.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	switch {
	case req.Username == "":
		return nil, ErrUsernameRequired
	case req.Email == "":
		return nil, ErrEmailRequired
	case req.Password == "":
		return nil, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateID):
			return nil, ErrIDTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed identity token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	switch {
	case req.Email == "":
		return "", ErrEmailRequired
	case req.Password == "":
		return "", ErrPasswordRequired
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotRegistered
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return "", ErrWrongPassword
	}

	return crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
}
