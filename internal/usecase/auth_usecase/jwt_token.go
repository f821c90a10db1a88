package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
)

// JWTに入れるclaims
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// HS256で署名・検証する。jtiを毎回変えるので同じ秒に2回ログインしても別トークンになる
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
	idGen  IDGenerator
}

func NewJWTTokenService(secret string, ttl time.Duration, idGen IDGenerator) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		idGen:  idGen,
	}
}

func (s *JWTTokenService) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.idGen.NewID(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *JWTTokenService) Verify(raw string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, usecase.ErrExpiredToken
		}
		return 0, usecase.ErrMalformedToken.Wrap(err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, usecase.ErrMalformedToken
	}
	return claims.UserID, nil
}
