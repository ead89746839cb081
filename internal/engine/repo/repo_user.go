package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"gorm.io/gorm"
)

type IUserRepository interface {
	// Create inserts u and binds u.Roles in one transaction
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByUserId(ctx context.Context, userId string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	Updates(ctx context.Context, id uint64, fields map[string]any) error
	SearchByEmail(ctx context.Context, q string, limit int) ([]model.User, error)
	ListByRole(ctx context.Context, role model.RoleName) ([]model.User, error)
}

type UserRepo struct {
	db        database.IDatabase
	userModel *model.User
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{
		db:        db,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) Create(ctx context.Context, u *model.User) error {
	return ur.db.Transaction(ctx, func(ctx context.Context) error {
		tx := ur.db.DB(ctx)
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		for _, name := range u.Roles {
			role, err := getOrCreateRole(tx, name)
			if err != nil {
				return err
			}
			if err := bindRole(tx, u.ID, role.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (ur *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return ur.first(ctx, "id = ?", id)
}

func (ur *UserRepo) GetByUserId(ctx context.Context, userId string) (*model.User, error) {
	return ur.first(ctx, "user_id = ?", userId)
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return ur.first(ctx, "email = ?", model.NormalizeEmail(email))
}

func (ur *UserRepo) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	u := &model.User{}
	if err := ur.db.DB(ctx).Where(query, args...).First(u).Error; err != nil {
		return nil, err
	}
	roles, err := roleNamesOf(ur.db.DB(ctx), u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

func (ur *UserRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	n, err := count(ur.db.DB(ctx).Model(ur.userModel).Where("email = ?", model.NormalizeEmail(email)))
	return n > 0, err
}

// Updates writes fields; user_id, email and password are not updatable here.
func (ur *UserRepo) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return ur.db.DB(ctx).Model(ur.userModel).
		Where("id = ?", id).
		Omit("user_id", "email", "password", "created_at").
		Updates(fields).Error
}

func (ur *UserRepo) SearchByEmail(ctx context.Context, q string, limit int) ([]model.User, error) {
	var users []model.User
	err := ur.db.DB(ctx).
		Where("email LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(q))+"%").
		Order("email").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (ur *UserRepo) ListByRole(ctx context.Context, role model.RoleName) ([]model.User, error) {
	var users []model.User
	err := ur.db.DB(ctx).
		Joins("JOIN t_user_role_binding b ON b.user_id = t_user.id").
		Joins("JOIN t_role r ON r.id = b.role_id").
		Where("r.name = ?", string(role)).
		Order("t_user.id").
		Find(&users).Error
	return users, err
}

// escapeLike escapes LIKE wildcards with '!', which every supported dialect accepts.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

func roleNamesOf(tx *gorm.DB, userID uint64) ([]model.RoleName, error) {
	var names []string
	err := tx.Table("t_role").
		Select("t_role.name").
		Joins("JOIN t_user_role_binding b ON b.role_id = t_role.id").
		Where("b.user_id = ?", userID).
		Order("t_role.name").
		Pluck("t_role.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("load roles of user %d: %w", userID, err)
	}
	out := make([]model.RoleName, len(names))
	for i, n := range names {
		out[i] = model.RoleName(n)
	}
	return out, nil
}
