// Package auth is the identity service: password hashing, credential
// checks and bearer-token issuance/validation. It is the only
// authorization gate in the system.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/agendafacil/agenda-api/internal/apperr"
	"github.com/agendafacil/agenda-api/internal/models"
	"github.com/agendafacil/agenda-api/internal/repository"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	users  repository.UserRepository
	secret string
	ttl    time.Duration
}

func NewService(users repository.UserRepository, secret string) *Service {
	return &Service{users: users, secret: secret, ttl: tokenTTL}
}

// Register creates a user with a bcrypt-hashed credential and returns a
// fresh token. Email uniqueness is checked before the insert; the unique
// index backs it up under concurrent registration.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, *models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, apperr.Conflict("this email is already registered")
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, user, nil
}

// Login never tells the caller whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	badCredentials := apperr.Authentication("incorrect email or password")

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", nil, badCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, badCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, user, nil
}

// Authenticate resolves a raw bearer token to the user id it was issued
// for. Expiry is enforced by the jwt library during parsing.
func (s *Service) Authenticate(raw string) (string, error) {
	badToken := apperr.Authentication("invalid or expired token")

	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tok.Valid {
		return "", badToken
	}

	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", badToken
	}
	return claims.Subject, nil
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}
