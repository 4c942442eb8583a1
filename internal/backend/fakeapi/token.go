package fakeapi

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("fakeapi: bad credentials")

// HashPassword is a convenience for building a Config from a plain password.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

type issuer struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func (i *issuer) signIn(username, password string) (string, time.Time, error) {
	if !strings.EqualFold(username, i.username) {
		return "", time.Time{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(i.hash, []byte(password)); err != nil {
		return "", time.Time{}, ErrBadCredentials
	}

	now := i.now()
	exp := now.Add(i.ttl).Truncate(time.Millisecond)
	claims := jwt.RegisteredClaims{
		Subject:   i.username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// verify accepts the raw token the console sends and, leniently, a
// "Bearer " prefixed one.
func (i *issuer) verify(header string) (string, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return "", jwt.ErrTokenMalformed
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
