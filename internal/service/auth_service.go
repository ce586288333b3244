package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"go-location-share/internal/model"
	"go-location-share/pkg/apierror"
)

type tokenIssuer interface {
	Issue(subject string, role string) (string, error)
}

// AdminCredentials is the single configured administrator.
// PasswordHash, when set, is a bcrypt hash and takes precedence over Password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

type AuthService struct {
	admin  AdminCredentials
	tokens tokenIssuer
}

func NewAuthService(admin AdminCredentials, tokens tokenIssuer) (*AuthService, error) {
	if strings.TrimSpace(admin.Username) == "" {
		return nil, errors.New("admin username is required")
	}
	if admin.Password == "" && admin.PasswordHash == "" {
		return nil, errors.New("admin password is required")
	}
	if tokens == nil {
		return nil, errors.New("token issuer is required")
	}

	return &AuthService{admin: admin, tokens: tokens}, nil
}

// Login is the only path that mints tokens. Wrong username and wrong password
// produce the same error.
func (s *AuthService) Login(_ context.Context, username string, password string) (model.LoginResponse, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passwordOK := s.passwordMatches(password)

	if !usernameOK || !passwordOK {
		return model.LoginResponse{}, apierror.Unauthenticated("invalid credentials")
	}

	token, err := s.tokens.Issue(username, model.RoleAdmin)
	if err != nil {
		slog.Error("token issuance failed", "error", err)
		return model.LoginResponse{}, apierror.Internal("could not issue token")
	}

	return model.LoginResponse{Token: token}, nil
}

func (s *AuthService) passwordMatches(password string) bool {
	if s.admin.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
}
