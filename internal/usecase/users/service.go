// Package users implements registration, login and profile management.
package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

const minPasswordLen = 8

type Deps struct {
	Users    ports.UserRepository
	Settings ports.SettingsRepository
	Tokens   ports.TokenService
	Log      *log.Logger
}

type Service struct {
	d Deps
}

func New(d Deps) *Service {
	return &Service{d: d}
}

type RegisterArgs struct {
	Email    string
	Username string
	Password string
	FullName string
}

func (s *Service) Register(ctx context.Context, a RegisterArgs) (*domain.User, error) {
	a.Email = strings.TrimSpace(strings.ToLower(a.Email))
	a.Username = strings.TrimSpace(a.Username)
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return nil, &domain.ValidationError{Field: "email", Message: "invalid email address"}
	}
	if a.Username == "" {
		return nil, &domain.ValidationError{Field: "username", Message: "username is required"}
	}
	if len(a.Password) < minPasswordLen {
		return nil, &domain.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}

	if _, err := s.d.Users.GetByUsername(ctx, a.Username); err == nil {
		return nil, &domain.ValidationError{Field: "username", Message: "username already registered"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.d.Users.GetByEmail(ctx, a.Email); err == nil {
		return nil, &domain.ValidationError{Field: "email", Message: "email already registered"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.d.Tokens.HashPassword(a.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:          a.Email,
		Username:       a.Username,
		HashedPassword: hash,
		FullName:       a.FullName,
		IsActive:       true,
	}
	if err := s.d.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.d.Settings.Upsert(ctx, domain.DefaultUserSettings(u.ID)); err != nil {
		s.d.Log.Warn("failed to seed default settings", "user_id", u.ID, "err", err)
	}
	return u, nil
}

// Login exchanges credentials for a bearer token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.d.Users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrUnauthorized
	}
	if err != nil {
		return "", nil, err
	}
	if !u.IsActive || !s.d.Tokens.VerifyPassword(password, u.HashedPassword) {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := s.d.Tokens.Issue(u.Username)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.d.Tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.d.Users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

type ProfileArgs struct {
	Email    *string
	FullName *string
	Avatar   *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, a ProfileArgs) (*domain.User, error) {
	u, err := s.d.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*a.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, &domain.ValidationError{Field: "email", Message: "invalid email address"}
		}
		u.Email = email
	}
	if a.FullName != nil {
		u.FullName = *a.FullName
	}
	if a.Avatar != nil {
		u.Avatar = *a.Avatar
	}
	if err := s.d.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
