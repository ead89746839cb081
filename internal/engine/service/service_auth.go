// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/http/jwt"
	"github.com/go-arcade/edo/pkg/log"
	goJwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	auth   http.Auth
	tokens cache.ICache
	users  repo.IUserRepository
}

func NewAuthService(auth http.Auth, tokens cache.ICache, users repo.IUserRepository) *AuthService {
	return &AuthService{auth: auth, tokens: tokens, users: users}
}

func (s *AuthService) Register(ctx context.Context, req *model.Register) (*model.User, error) {
	exists, err := s.users.ExistsEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, http.NewError(http.UserAlreadyExist, "")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := model.NewUser(req.Email, req.FirstName, req.LastName, req.Phone)
	u.Password = hash
	if req.UserType != "" {
		u.UserType = req.UserType
	}
	u.CompanyName = strings.TrimSpace(req.CompanyName)

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, http.NewError(http.UserAlreadyExist, "")
		}
		log.Errorw("register user failed", "email", u.Email, "error", err)
		return nil, err
	}
	log.Infow("user registered", "userId", u.UserId)
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, req *model.Login) (*model.LoginResp, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, http.NewError(http.UserIncorrectPassword, "")
		}
		return nil, err
	}
	if !comparePassword(u.Password, req.Password) {
		log.Debugw("incorrect password provided", "userId", u.UserId)
		return nil, http.NewError(http.UserIncorrectPassword, "")
	}
	if u.Status != model.UserStatusActive {
		return nil, http.NewForbidden("account is " + u.Status)
	}
	return s.issue(ctx, u)
}

func (s *AuthService) Refresh(ctx context.Context, req *model.RefreshReq) (*model.LoginResp, error) {
	claims, err := jwt.ParseRefreshToken(req.RefreshToken, s.auth.SecretKey)
	if err != nil {
		if errors.Is(err, goJwt.ErrTokenExpired) {
			return nil, http.NewError(http.TokenExpired, "")
		}
		return nil, http.Wrap(http.InvalidToken, "", err)
	}
	u, err := s.users.GetByUserId(ctx, claims.UserId)
	if err != nil {
		if isNotFound(err) {
			return nil, http.NewError(http.InvalidToken, "")
		}
		return nil, err
	}
	return s.issue(ctx, u)
}

// Logout revokes the access token currently stored for userId.
func (s *AuthService) Logout(ctx context.Context, userId string) error {
	if s.tokens == nil {
		return nil
	}
	if err := s.tokens.Del(ctx, s.auth.RedisKeyPrefix+userId).Err(); err != nil {
		log.Errorw("delete token failed", "userId", userId, "error", err)
		return err
	}
	return nil
}

// issue signs a token pair and stores the access token so that a later login
// or logout revokes it.
func (s *AuthService) issue(ctx context.Context, u *model.User) (*model.LoginResp, error) {
	pair, err := jwt.GenToken(u.UserId, []byte(s.auth.SecretKey), s.auth.AccessExpire, s.auth.RefreshExpire)
	if err != nil {
		log.Errorw("failed to generate tokens", "userId", u.UserId, "error", err)
		return nil, err
	}
	if s.tokens != nil {
		if err := s.tokens.Set(ctx, s.auth.RedisKeyPrefix+u.UserId, pair.AccessToken, s.auth.AccessExpire).Err(); err != nil {
			log.Errorw("store token failed", "userId", u.UserId, "error", err)
			return nil, err
		}
	}
	return &model.LoginResp{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpireAt:     pair.ExpireAt.Unix(),
		User:         u,
	}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func comparePassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
