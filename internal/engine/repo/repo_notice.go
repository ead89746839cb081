package repo

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
)

type INoticeRepository interface {
	Create(ctx context.Context, n *model.Notice) error
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Notice, error)
	GetForTenantUser(ctx context.Context, id, userID uint64) (*model.Notice, error)
	ListForLandlord(ctx context.Context, landlordID uint64, page *model.Page) ([]model.Notice, int64, error)
	ListForTenantUser(ctx context.Context, userID uint64, page *model.Page) ([]model.Notice, int64, error)
	Updates(ctx context.Context, id uint64, fields map[string]any) error
	Delete(ctx context.Context, id uint64) error
}

type NoticeRepo struct {
	db database.IDatabase
}

func NewNoticeRepo(db database.IDatabase) INoticeRepository {
	return &NoticeRepo{db: db}
}

// visibleToTenant matches notices from the landlords of userID's units that are
// broadcast or aimed at one of the user's units or tenant rows.
const visibleToTenant = `t_notice.landlord_id IN (
	SELECT p.landlord_id FROM t_tenant t
	JOIN t_unit u ON u.id = t.unit_id
	JOIN t_property p ON p.id = u.property_id
	WHERE t.user_id = @user)
AND (
	(t_notice.unit_id IS NULL AND t_notice.tenant_id IS NULL)
	OR t_notice.unit_id IN (SELECT unit_id FROM t_tenant WHERE user_id = @user)
	OR t_notice.tenant_id IN (SELECT id FROM t_tenant WHERE user_id = @user))`

func (nr *NoticeRepo) Create(ctx context.Context, n *model.Notice) error {
	return nr.db.DB(ctx).Omit("Landlord", "Unit", "Tenant").Create(n).Error
}

func (nr *NoticeRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Notice, error) {
	n := &model.Notice{}
	if err := nr.db.DB(ctx).Where("id = ? AND landlord_id = ?", id, landlordID).First(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (nr *NoticeRepo) GetForTenantUser(ctx context.Context, id, userID uint64) (*model.Notice, error) {
	n := &model.Notice{}
	err := nr.db.DB(ctx).
		Where(visibleToTenant, map[string]any{"user": userID}).
		Where("t_notice.id = ?", id).
		First(n).Error
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (nr *NoticeRepo) ListForLandlord(ctx context.Context, landlordID uint64, page *model.Page) ([]model.Notice, int64, error) {
	query := database.ReadDB(nr.db.DB(ctx)).Model(&model.Notice{}).Where("landlord_id = ?", landlordID)
	return paginate[model.Notice](query, page, "date_sent DESC, id DESC")
}

func (nr *NoticeRepo) ListForTenantUser(ctx context.Context, userID uint64, page *model.Page) ([]model.Notice, int64, error) {
	query := database.ReadDB(nr.db.DB(ctx)).Model(&model.Notice{}).
		Where(visibleToTenant, map[string]any{"user": userID})
	return paginate[model.Notice](query, page, "t_notice.date_sent DESC, t_notice.id DESC")
}

func (nr *NoticeRepo) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	return nr.db.DB(ctx).Model(&model.Notice{}).
		Where("id = ?", id).
		Omit("landlord_id", "created_at").
		Updates(fields).Error
}

func (nr *NoticeRepo) Delete(ctx context.Context, id uint64) error {
	return nr.db.DB(ctx).Delete(&model.Notice{}, id).Error
}
