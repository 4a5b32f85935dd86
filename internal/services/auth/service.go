package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/wordbingo/internal/dependencies/clock"
	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/services/ids"
)

// MaxNicknameLength is the longest nickname accepted, in characters
const MaxNicknameLength = 20

// Errors
var (
	ErrInvalidSession  = errors.New("invalid or expired session")
	ErrInvalidNickname = errors.New("nickname must be 1 to 20 characters")
)

// Session identifies a user across rooms. The user id doubles as the
// player id in every game the user joins.
type Session struct {
	Token     string
	UserID    model.PlayerID
	Nickname  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// claims is the signed token payload
type claims struct {
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed session tokens. Sessions are
// stateless: everything needed to identify the user is in the token.
type Service struct {
	ids             ids.Generator
	clock           clock.Clock
	secret          []byte
	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	Secret          string
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		Secret:          "dev-secret-change-me",
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(idGen ids.Generator, clock clock.Clock, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.Secret == "" {
		cfg.Secret = defaults.Secret
	}
	return &Service{
		ids:             idGen,
		clock:           clock,
		secret:          []byte(cfg.Secret),
		sessionDuration: cfg.SessionDuration,
	}
}

// NormalizeNickname trims a nickname and checks its length
func NormalizeNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if n := utf8.RuneCountInString(nickname); n == 0 || n > MaxNicknameLength {
		return "", ErrInvalidNickname
	}
	return nickname, nil
}

// CreateSession starts a session for a new user
func (s *Service) CreateSession(nickname string) (*Session, error) {
	nickname, err := NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &Session{
		UserID:    model.PlayerID(s.ids.NewSessionID()),
		Nickname:  nickname,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(session.UserID),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	session.Token = signed

	return session, nil
}

// ValidateSession verifies a token and returns its session
func (s *Service) ValidateSession(token string) (*Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || c.Subject == "" {
		return nil, ErrInvalidSession
	}

	session := &Session{
		Token:    token,
		UserID:   model.PlayerID(c.Subject),
		Nickname: c.Nickname,
	}
	if c.IssuedAt != nil {
		session.CreatedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		session.ExpiresAt = c.ExpiresAt.Time
	}
	return session, nil
}
