package repo

import (
	"context"
	"time"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/statemachine"
)

type IInvitationRepository interface {
	Create(ctx context.Context, inv *model.TenantInvitation) error
	GetByCode(ctx context.Context, code string) (*model.TenantInvitation, error)
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.TenantInvitation, error)
	List(ctx context.Context, landlordID uint64, q *model.InvitationQuery) ([]model.TenantInvitation, int64, error)
	// MarkAccepted moves a pending, unexpired invitation to accepted
	MarkAccepted(ctx context.Context, id uint64, now time.Time) (bool, error)
	// MarkExpired moves a pending invitation whose deadline has passed to expired
	MarkExpired(ctx context.Context, id uint64, now time.Time) (bool, error)
	Cancel(ctx context.Context, id uint64) (bool, error)
	CountPending(ctx context.Context, landlordID uint64) (int64, error)
}

type InvitationRepo struct {
	db database.IDatabase
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{db: db}
}

func (ir *InvitationRepo) Create(ctx context.Context, inv *model.TenantInvitation) error {
	return ir.db.DB(ctx).Omit("Landlord", "Unit").Create(inv).Error
}

func (ir *InvitationRepo) GetByCode(ctx context.Context, code string) (*model.TenantInvitation, error) {
	inv := &model.TenantInvitation{}
	err := ir.db.DB(ctx).
		Preload("Unit.Property").
		Preload("Landlord").
		Where("invitation_code = ?", code).
		First(inv).Error
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (ir *InvitationRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.TenantInvitation, error) {
	inv := &model.TenantInvitation{}
	err := ir.db.DB(ctx).
		Preload("Unit").
		Where("id = ? AND landlord_id = ?", id, landlordID).
		First(inv).Error
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (ir *InvitationRepo) List(ctx context.Context, landlordID uint64, q *model.InvitationQuery) ([]model.TenantInvitation, int64, error) {
	query := database.ReadDB(ir.db.DB(ctx)).Model(&model.TenantInvitation{}).Where("landlord_id = ?", landlordID)
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	return paginate[model.TenantInvitation](query, &q.Page, "id DESC", "Unit")
}

func (ir *InvitationRepo) MarkAccepted(ctx context.Context, id uint64, now time.Time) (bool, error) {
	res := ir.db.DB(ctx).Model(&model.TenantInvitation{}).
		Where("id = ? AND status = ? AND expires_at > ?", id, statemachine.InvitationPending, now).
		Update("status", statemachine.InvitationAccepted)
	return res.RowsAffected == 1, res.Error
}

func (ir *InvitationRepo) MarkExpired(ctx context.Context, id uint64, now time.Time) (bool, error) {
	res := ir.db.DB(ctx).Model(&model.TenantInvitation{}).
		Where("id = ? AND status = ? AND expires_at <= ?", id, statemachine.InvitationPending, now).
		Update("status", statemachine.InvitationExpired)
	return res.RowsAffected == 1, res.Error
}

func (ir *InvitationRepo) Cancel(ctx context.Context, id uint64) (bool, error) {
	res := ir.db.DB(ctx).Model(&model.TenantInvitation{}).
		Where("id = ? AND status = ?", id, statemachine.InvitationPending).
		Update("status", statemachine.InvitationCancelled)
	return res.RowsAffected == 1, res.Error
}

func (ir *InvitationRepo) CountPending(ctx context.Context, landlordID uint64) (int64, error) {
	return count(ir.db.DB(ctx).Model(&model.TenantInvitation{}).
		Where("landlord_id = ? AND status = ? AND expires_at > ?", landlordID, statemachine.InvitationPending, time.Now().UTC()))
}
