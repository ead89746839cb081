package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/17 22:47
 * @file: jwt_test.go
 * @description:
 */

const secretKey = "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

func TestGenAndParseToken(t *testing.T) {
	pair, err := GenToken("1b8be82017ba4d4982d9e6e429438cf9", []byte(secretKey), time.Hour, 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpireAt, 5*time.Second)

	claims, err := ParseToken(pair.AccessToken, secretKey)
	require.NoError(t, err)
	assert.Equal(t, "1b8be82017ba4d4982d9e6e429438cf9", claims.UserId)

	rClaims, err := ParseRefreshToken(pair.RefreshToken, secretKey)
	require.NoError(t, err)
	assert.Equal(t, claims.UserId, rClaims.UserId)
}

func TestParseToken_Errors(t *testing.T) {
	pair, err := GenToken("u1", []byte(secretKey), time.Hour, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		parse func() error
		isErr error
	}{
		{
			name: "refresh token used as access token",
			parse: func() error {
				_, err := ParseToken(pair.RefreshToken, secretKey)
				return err
			},
			isErr: ErrWrongTokenType,
		},
		{
			name: "access token used as refresh token",
			parse: func() error {
				_, err := ParseRefreshToken(pair.AccessToken, secretKey)
				return err
			},
			isErr: ErrWrongTokenType,
		},
		{
			name: "wrong secret",
			parse: func() error {
				_, err := ParseToken(pair.AccessToken, "another-secret")
				return err
			},
		},
		{
			name: "garbage",
			parse: func() error {
				_, err := ParseToken("not.a.token", secretKey)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			require.Error(t, err)
			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
		})
	}
}

func TestParseToken_Expired(t *testing.T) {
	pair, err := GenToken("u1", []byte(secretKey), -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(pair.AccessToken, secretKey)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
