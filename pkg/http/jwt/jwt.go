package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/edo/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/17 22:31
 * @file: jwt.go
 * @description: access / refresh token issuance
 */

const (
	issuer = "edo"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

type AuthClaims struct {
	UserId    string `json:"userId"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpireAt     time.Time `json:"expireAt"`
}

func newClaims(userId, tokenType string, now time.Time, ttl time.Duration) *AuthClaims {
	return &AuthClaims{
		UserId:    userId,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.GetUUID(),
			Issuer:    issuer,
			Subject:   userId,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// GenToken signs an access and a refresh token for userId with HS256.
func GenToken(userId string, secretKey []byte, accessExpire, refreshExpire time.Duration) (*TokenPair, error) {
	now := time.Now()

	aClaims := newClaims(userId, TokenTypeAccess, now, accessExpire)
	aToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	rClaims := newClaims(userId, TokenTypeRefresh, now, refreshExpire)
	rToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  aToken,
		RefreshToken: rToken,
		ExpireAt:     aClaims.ExpiresAt.Time,
	}, nil
}

// ParseToken validates an access token. Expiry is reported as jwt.ErrTokenExpired.
func ParseToken(aToken, secretKey string) (*AuthClaims, error) {
	return parse(aToken, secretKey, TokenTypeAccess)
}

// ParseRefreshToken validates a refresh token.
func ParseRefreshToken(rToken, secretKey string) (*AuthClaims, error) {
	return parse(rToken, secretKey, TokenTypeRefresh)
}

func parse(raw, secretKey, tokenType string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
