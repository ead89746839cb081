package repo

import (
	"context"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
)

type ITenantRepository interface {
	Create(ctx context.Context, t *model.Tenant) error
	Get(ctx context.Context, id uint64) (*model.Tenant, error)
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Tenant, error)
	GetForUser(ctx context.Context, id, userID uint64) (*model.Tenant, error)
	ListForLandlord(ctx context.Context, landlordID uint64, page *model.Page) ([]model.Tenant, int64, error)
	// ListByUser returns every tenancy of userID, oldest first
	ListByUser(ctx context.Context, userID uint64) ([]model.Tenant, error)
	ExistsForUnit(ctx context.Context, unitID uint64) (bool, error)
	Updates(ctx context.Context, id uint64, fields map[string]any) error
	Delete(ctx context.Context, id uint64) error
	CountForLandlord(ctx context.Context, landlordID uint64) (int64, error)
	SearchByEmail(ctx context.Context, q string, limit int) ([]model.Tenant, error)
}

type TenantRepo struct {
	db database.IDatabase
}

func NewTenantRepo(db database.IDatabase) ITenantRepository {
	return &TenantRepo{db: db}
}

func (tr *TenantRepo) Create(ctx context.Context, t *model.Tenant) error {
	return tr.db.DB(ctx).Omit("User", "Unit").Create(t).Error
}

func (tr *TenantRepo) Get(ctx context.Context, id uint64) (*model.Tenant, error) {
	t := &model.Tenant{}
	if err := tr.db.DB(ctx).Preload("Unit.Property").First(t, id).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (tr *TenantRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Tenant, error) {
	t := &model.Tenant{}
	err := tr.db.DB(ctx).
		Scopes(landlordTenants(landlordID)).
		Preload("Unit.Property").
		Where("t_tenant.id = ?", id).
		First(t).Error
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (tr *TenantRepo) GetForUser(ctx context.Context, id, userID uint64) (*model.Tenant, error) {
	t := &model.Tenant{}
	err := tr.db.DB(ctx).
		Preload("Unit.Property").
		Where("id = ? AND user_id = ?", id, userID).
		First(t).Error
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (tr *TenantRepo) ListForLandlord(ctx context.Context, landlordID uint64, page *model.Page) ([]model.Tenant, int64, error) {
	query := database.ReadDB(tr.db.DB(ctx)).Model(&model.Tenant{}).
		Scopes(landlordTenants(landlordID))
	return paginate[model.Tenant](query, page, "t_tenant.id DESC", "Unit.Property")
}

func (tr *TenantRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Tenant, error) {
	var list []model.Tenant
	err := tr.db.DB(ctx).
		Preload("Unit.Property.Landlord").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&list).Error
	return list, err
}

func (tr *TenantRepo) ExistsForUnit(ctx context.Context, unitID uint64) (bool, error) {
	n, err := count(tr.db.DB(ctx).Model(&model.Tenant{}).Where("unit_id = ?", unitID))
	return n > 0, err
}

// Updates never moves a tenant to another unit or user.
func (tr *TenantRepo) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	return tr.db.DB(ctx).Model(&model.Tenant{}).
		Where("id = ?", id).
		Omit("unit_id", "user_id", "email", "created_at").
		Updates(fields).Error
}

func (tr *TenantRepo) Delete(ctx context.Context, id uint64) error {
	return tr.db.DB(ctx).Delete(&model.Tenant{}, id).Error
}

func (tr *TenantRepo) CountForLandlord(ctx context.Context, landlordID uint64) (int64, error) {
	return count(tr.db.DB(ctx).Model(&model.Tenant{}).Scopes(landlordTenants(landlordID)))
}

func (tr *TenantRepo) SearchByEmail(ctx context.Context, q string, limit int) ([]model.Tenant, error) {
	var list []model.Tenant
	err := tr.db.DB(ctx).
		Where("email LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(q))+"%").
		Order("email").
		Limit(limit).
		Find(&list).Error
	return list, err
}
