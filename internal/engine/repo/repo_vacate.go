package repo

import (
	"context"
	"time"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/statemachine"
	"gorm.io/gorm"
)

type IVacateRepository interface {
	Create(ctx context.Context, v *model.VacateRequest) error
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.VacateRequest, error)
	ListForLandlord(ctx context.Context, landlordID uint64, page *model.Page) ([]model.VacateRequest, int64, error)
	ListForTenantUser(ctx context.Context, userID uint64, page *model.Page) ([]model.VacateRequest, int64, error)
	// Respond moves a pending request to status, recording the landlord's answer
	Respond(ctx context.Context, id uint64, status statemachine.VacateStatus, response string, at time.Time) (bool, error)
	CountPendingForLandlord(ctx context.Context, landlordID uint64) (int64, error)
}

type VacateRepo struct {
	db database.IDatabase
}

func NewVacateRepo(db database.IDatabase) IVacateRepository {
	return &VacateRepo{db: db}
}

func landlordVacate(landlordID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN t_property ON t_property.id = t_vacate_request.property_id").
			Where("t_property.landlord_id = ?", landlordID)
	}
}

func (vr *VacateRepo) Create(ctx context.Context, v *model.VacateRequest) error {
	return vr.db.DB(ctx).Omit("Tenant", "Unit", "Property").Create(v).Error
}

func (vr *VacateRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.VacateRequest, error) {
	v := &model.VacateRequest{}
	err := vr.db.DB(ctx).Scopes(landlordVacate(landlordID)).Where("t_vacate_request.id = ?", id).First(v).Error
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (vr *VacateRepo) ListForLandlord(ctx context.Context, landlordID uint64, page *model.Page) ([]model.VacateRequest, int64, error) {
	query := database.ReadDB(vr.db.DB(ctx)).Model(&model.VacateRequest{}).Scopes(landlordVacate(landlordID))
	return paginate[model.VacateRequest](query, page, "t_vacate_request.id DESC")
}

func (vr *VacateRepo) ListForTenantUser(ctx context.Context, userID uint64, page *model.Page) ([]model.VacateRequest, int64, error) {
	query := database.ReadDB(vr.db.DB(ctx)).Model(&model.VacateRequest{}).
		Joins("JOIN t_tenant ON t_tenant.id = t_vacate_request.tenant_id").
		Where("t_tenant.user_id = ?", userID)
	return paginate[model.VacateRequest](query, page, "t_vacate_request.id DESC")
}

func (vr *VacateRepo) Respond(ctx context.Context, id uint64, status statemachine.VacateStatus, response string, at time.Time) (bool, error) {
	res := vr.db.DB(ctx).Model(&model.VacateRequest{}).
		Where("id = ? AND status = ?", id, statemachine.VacatePending).
		Updates(map[string]any{
			"status":            status,
			"landlord_response": response,
			"response_date":     at,
		})
	return res.RowsAffected == 1, res.Error
}

func (vr *VacateRepo) CountPendingForLandlord(ctx context.Context, landlordID uint64) (int64, error) {
	return count(vr.db.DB(ctx).Model(&model.VacateRequest{}).
		Scopes(landlordVacate(landlordID)).
		Where("t_vacate_request.status = ?", statemachine.VacatePending))
}
