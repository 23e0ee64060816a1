// Package token issues and verifies the HS256 session tokens carried in
// the Authorization header.
package token

import (
	"errors"
	"strconv"
	"time"

	"bookstore/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// 期限切れ
	ErrExpired = errors.New("token expired")
	// 署名不正・形式不正など
	ErrInvalid = errors.New("invalid token")
)

// Claims is what a session token proves about its bearer.
type Claims struct {
	UserID       int64
	Role         model.Role
	Name         string
	TokenVersion int
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

type jwtClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	TV   int    `json:"tv"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issueはnowから有効期限ttlのトークンを発行する
func (m *Manager) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.ttl)

	claims := jwtClaims{
		Role: string(user.Role),
		Name: user.Name,
		TV:   user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Parseは署名と期限を検証する。
// 期限切れはErrExpired、それ以外の失敗はすべてErrInvalid。
func (m *Manager) Parse(raw string) (Claims, error) {
	var c jwtClaims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrInvalid
	}

	//exp必須
	if c.ExpiresAt == nil {
		return Claims{}, ErrInvalid
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Claims{}, ErrInvalid
	}

	role := model.Role(c.Role)
	if !role.Valid() || c.TV < 0 {
		return Claims{}, ErrInvalid
	}

	out := Claims{
		UserID:       userID,
		Role:         role,
		Name:         c.Name,
		TokenVersion: c.TV,
		ExpiresAt:    c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	return out, nil
}
