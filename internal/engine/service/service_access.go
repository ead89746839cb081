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
	"fmt"
	"time"

	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
)

const identityTTL = 10 * time.Minute

// AccessService owns role membership and the ownership checks every record
// service runs before touching a row.
type AccessService struct {
	db       database.IDatabase
	users    repo.IUserRepository
	roles    repo.IRoleRepository
	props    repo.IPropertyRepository
	units    repo.IUnitRepository
	tenants  repo.ITenantRepository
	identity *cache.CachedQuery[*model.Identity]
}

func NewAccessService(db database.IDatabase, c cache.ICache, repos *repo.Repositories) *AccessService {
	return &AccessService{
		db:      db,
		users:   repos.User,
		roles:   repos.Role,
		props:   repos.Property,
		units:   repos.Unit,
		tenants: repos.Tenant,
		identity: cache.NewCachedQuery[*model.Identity](c,
			func(params ...any) string { return fmt.Sprintf("%s%v", consts.UserIdentityKey, params[0]) },
			cache.WithTTL[*model.Identity](identityTTL),
			cache.WithLogPrefix[*model.Identity]("[Identity]"),
		),
	}
}

// Identity resolves the business user id carried by a token. A user that no
// longer exists is treated as unauthenticated.
func (s *AccessService) Identity(ctx context.Context, userId string) (*model.Identity, error) {
	ident, err := s.identity.Get(ctx, func(ctx context.Context) (*model.Identity, error) {
		u, err := s.users.GetByUserId(ctx, userId)
		if err != nil {
			return nil, err
		}
		return u.Identity(), nil
	}, userId)
	if err != nil {
		if isNotFound(err) {
			return nil, http.ErrAuthRequired
		}
		return nil, err
	}
	return ident, nil
}

// Invalidate drops the cached identity of userId after the surrounding
// transaction, if any, has committed.
func (s *AccessService) Invalidate(ctx context.Context, userId string) {
	database.AfterCommit(ctx, func() {
		if err := s.identity.Invalidate(context.WithoutCancel(ctx), userId); err != nil {
			log.Warnw("invalidate cached identity failed", "userId", userId, "error", err)
		}
	})
}

func (s *AccessService) HasRole(ctx context.Context, userID uint64, name model.RoleName) (bool, error) {
	names, err := s.roles.RoleNames(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// EnsureRole fails with Forbidden unless ident holds one of names.
func (s *AccessService) EnsureRole(ident *model.Identity, names ...model.RoleName) error {
	if ident == nil {
		return http.ErrAuthRequired
	}
	if !ident.HasRole(names...) {
		return http.ErrForbidden
	}
	return nil
}

// AssignExclusiveRole replaces whatever exclusive role the user holds with
// name. Custom roles are left alone.
func (s *AccessService) AssignExclusiveRole(ctx context.Context, userID uint64, name model.RoleName) error {
	if !name.IsExclusive() {
		return http.NewValidationError("role", fmt.Sprintf("%q is not an exclusive role", name))
	}
	var userId string
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return repoErr(err, "user")
		}
		userId = u.UserId
		if _, err := s.roles.UnbindNames(ctx, userID, model.ExclusiveRoles()); err != nil {
			return err
		}
		role, err := s.roles.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		return s.roles.Bind(ctx, userID, role.ID)
	})
	if err != nil {
		return err
	}
	s.Invalidate(ctx, userId)
	log.Infow("exclusive role assigned", "userId", userId, "role", name)
	return nil
}

// RelinquishRole drops host, tenant or landlord. A user left without an
// exclusive role falls back to regular. The resulting role names are returned.
func (s *AccessService) RelinquishRole(ctx context.Context, userID uint64, name string) ([]string, error) {
	rn := model.NormalizeRoleName(name)
	if !rn.IsRelinquishable() {
		return nil, http.NewValidationError("role", "only host, tenant or landlord can be relinquished")
	}
	var (
		userId string
		result []model.RoleName
	)
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return repoErr(err, "user")
		}
		userId = u.UserId
		if !u.HasRole(rn) {
			return http.NewValidationError("role", fmt.Sprintf("you do not hold the %s role", rn))
		}
		if _, err := s.roles.UnbindNames(ctx, userID, []model.RoleName{rn}); err != nil {
			return err
		}
		remaining, err := s.roles.RoleNames(ctx, userID)
		if err != nil {
			return err
		}
		if !hasExclusive(remaining) {
			role, err := s.roles.GetOrCreate(ctx, model.RoleRegular)
			if err != nil {
				return err
			}
			if err := s.roles.Bind(ctx, userID, role.ID); err != nil {
				return err
			}
			remaining, err = s.roles.RoleNames(ctx, userID)
			if err != nil {
				return err
			}
		}
		result = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx, userId)
	log.Infow("role relinquished", "userId", userId, "role", rn)
	return model.RoleStrings(result), nil
}

// AssignRole is the admin path: exclusive roles replace, custom roles are added.
func (s *AccessService) AssignRole(ctx context.Context, userId, name string) ([]string, error) {
	rn := model.NormalizeRoleName(name)
	if !rn.Valid() {
		return nil, http.NewValidationError("role", fmt.Sprintf("must be 1-%d characters", model.MaxRoleNameLen))
	}
	u, err := s.users.GetByUserId(ctx, userId)
	if err != nil {
		return nil, repoErr(err, "user")
	}
	if rn.IsExclusive() {
		if err := s.AssignExclusiveRole(ctx, u.ID, rn); err != nil {
			return nil, err
		}
	} else {
		err := s.db.Transaction(ctx, func(ctx context.Context) error {
			role, err := s.roles.GetOrCreate(ctx, rn)
			if err != nil {
				return err
			}
			return s.roles.Bind(ctx, u.ID, role.ID)
		})
		if err != nil {
			return nil, err
		}
		s.Invalidate(ctx, u.UserId)
	}
	names, err := s.roles.RoleNames(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return model.RoleStrings(names), nil
}

func (s *AccessService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roles.List(ctx)
}

// SeedRoles creates the well-known role rows.
func (s *AccessService) SeedRoles(ctx context.Context) error {
	return s.roles.Seed(ctx, model.ExclusiveRoles()...)
}

// CleanupBindings removes bindings that point at deleted roles.
func (s *AccessService) CleanupBindings(ctx context.Context) (int64, error) {
	n, err := s.roles.DeleteOrphanBindings(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleanup role bindings: %w", err)
	}
	log.Infow("orphan role bindings removed", "count", n)
	return n, nil
}

// OwnProperty loads a property of landlordID. Anything else is NotFound.
func (s *AccessService) OwnProperty(ctx context.Context, landlordID, propertyID uint64) (*model.Property, error) {
	p, err := s.props.GetForLandlord(ctx, propertyID, landlordID)
	return p, repoErr(err, "property")
}

// OwnUnit follows unit→property to the landlord.
func (s *AccessService) OwnUnit(ctx context.Context, landlordID, unitID uint64) (*model.Unit, error) {
	u, err := s.units.GetForLandlord(ctx, unitID, landlordID)
	return u, repoErr(err, "unit")
}

// OwnTenant follows tenant→unit→property to the landlord.
func (s *AccessService) OwnTenant(ctx context.Context, landlordID, tenantID uint64) (*model.Tenant, error) {
	t, err := s.tenants.GetForLandlord(ctx, tenantID, landlordID)
	return t, repoErr(err, "tenant")
}

func hasExclusive(names []model.RoleName) bool {
	for _, n := range names {
		if n.IsExclusive() {
			return true
		}
	}
	return false
}
