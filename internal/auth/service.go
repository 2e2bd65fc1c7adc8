package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abduss/memorial/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxPasswordLength = 72 // bcrypt limit
	issuer            = "memorial"
	audience          = "memorial-api"
	roleOperator      = "operator"
)

// Service authenticates the site operator, who curates the gallery.
type Service struct {
	cfg     config.AuthConfig
	nowFunc func() time.Time
	parser  *jwt.Parser
}

// NewService creates a Service from the operator settings.
func NewService(cfg config.AuthConfig) *Service {
	return &Service{
		cfg:     cfg,
		nowFunc: time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
	}
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login checks the operator credentials and issues an access token.
func (s *Service) Login(ctx context.Context, input LoginInput) (Token, error) {
	if s.cfg.OperatorPasswordHash == "" {
		return Token{}, ErrLoginDisabled
	}
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return Token{}, err
	}
	if !strings.EqualFold(strings.TrimSpace(input.Email), s.cfg.OperatorEmail) {
		return Token{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.OperatorPasswordHash), []byte(input.Password)); err != nil {
		return Token{}, ErrInvalidCredentials
	}

	return s.IssueToken()
}

// IssueToken signs a fresh operator token without checking a password.
func (s *Service) IssueToken() (Token, error) {
	now := s.nowFunc()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)
	claims := jwt.MapClaims{
		"sub":  s.cfg.OperatorEmail,
		"iss":  issuer,
		"aud":  audience,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
		"role": roleOperator,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessTokenSecret))
	if err != nil {
		return Token{}, fmt.Errorf("sign access token: %w", err)
	}
	return Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken verifies the token signature and extracts operator claims.
func (s *Service) ValidateAccessToken(tokenString string) (OperatorClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return OperatorClaims{}, ErrUnauthorized
	}

	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.AccessTokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return OperatorClaims{}, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return OperatorClaims{}, ErrUnauthorized
	}
	if role, _ := claims["role"].(string); role != roleOperator {
		return OperatorClaims{}, ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || !strings.EqualFold(sub, s.cfg.OperatorEmail) {
		return OperatorClaims{}, ErrUnauthorized
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || exp.Before(s.nowFunc()) {
		return OperatorClaims{}, ErrUnauthorized
	}

	var iat time.Time
	if issued, err := claims.GetIssuedAt(); err == nil && issued != nil {
		iat = issued.Time
	}

	return OperatorClaims{
		Email:     sub,
		ExpiresAt: exp.Time,
		IssuedAt:  iat,
	}, nil
}

// HashPassword returns a bcrypt hash suitable for MEMORIAL_OPERATOR_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < 8 || len(password) > maxPasswordLength {
		return "", fmt.Errorf("password must be between 8 and %d characters", maxPasswordLength)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func validateCredentials(email, password string) error {
	if len(strings.TrimSpace(email)) == 0 || len(strings.TrimSpace(password)) == 0 {
		return ErrInvalidCredentials
	}

	if len(password) < 8 || len(password) > maxPasswordLength {
		return ErrInvalidCredentials
	}
	return nil
}
