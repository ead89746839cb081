package repo

import (
	"context"
	"fmt"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IRoleRepository interface {
	GetOrCreate(ctx context.Context, name model.RoleName) (*model.Role, error)
	List(ctx context.Context) ([]model.Role, error)
	RoleNames(ctx context.Context, userID uint64) ([]model.RoleName, error)
	Bind(ctx context.Context, userID, roleID uint64) error
	// UnbindNames removes the user's bindings to the named roles
	UnbindNames(ctx context.Context, userID uint64, names []model.RoleName) (int64, error)
	Seed(ctx context.Context, names ...model.RoleName) error
	// DeleteOrphanBindings removes bindings whose role row is gone
	DeleteOrphanBindings(ctx context.Context) (int64, error)
}

type RoleRepo struct {
	db database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{db: db}
}

func (rr *RoleRepo) GetOrCreate(ctx context.Context, name model.RoleName) (*model.Role, error) {
	return getOrCreateRole(rr.db.DB(ctx), name)
}

func (rr *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := rr.db.DB(ctx).Order("name").Find(&roles).Error
	return roles, err
}

func (rr *RoleRepo) RoleNames(ctx context.Context, userID uint64) ([]model.RoleName, error) {
	return roleNamesOf(rr.db.DB(ctx), userID)
}

func (rr *RoleRepo) Bind(ctx context.Context, userID, roleID uint64) error {
	return bindRole(rr.db.DB(ctx), userID, roleID)
}

func (rr *RoleRepo) UnbindNames(ctx context.Context, userID uint64, names []model.RoleName) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	tx := rr.db.DB(ctx)
	res := tx.Where("user_id = ?", userID).
		Where("role_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&model.Role{}).Select("id").Where("name IN ?", names)).
		Delete(&model.UserRoleBinding{})
	if res.Error != nil {
		return 0, fmt.Errorf("unbind roles of user %d: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

func (rr *RoleRepo) Seed(ctx context.Context, names ...model.RoleName) error {
	tx := rr.db.DB(ctx)
	for _, name := range names {
		if _, err := getOrCreateRole(tx, name); err != nil {
			return err
		}
	}
	return nil
}

func (rr *RoleRepo) DeleteOrphanBindings(ctx context.Context) (int64, error) {
	tx := rr.db.DB(ctx)
	res := tx.Where("role_id NOT IN (?)", tx.Session(&gorm.Session{NewDB: true}).Model(&model.Role{}).Select("id")).
		Delete(&model.UserRoleBinding{})
	return res.RowsAffected, res.Error
}

// getOrCreateRole tolerates a concurrent insert of the same name.
func getOrCreateRole(tx *gorm.DB, name model.RoleName) (*model.Role, error) {
	role := &model.Role{Name: string(name)}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(role).Error; err != nil {
		return nil, fmt.Errorf("create role %s: %w", name, err)
	}
	if role.ID == 0 {
		if err := tx.Where("name = ?", string(name)).First(role).Error; err != nil {
			return nil, fmt.Errorf("load role %s: %w", name, err)
		}
	}
	return role, nil
}

func bindRole(tx *gorm.DB, userID, roleID uint64) error {
	binding := &model.UserRoleBinding{UserID: userID, RoleID: roleID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
		DoNothing: true,
	}).Create(binding).Error
	if err != nil {
		return fmt.Errorf("bind role %d to user %d: %w", roleID, userID, err)
	}
	return nil
}
