package repo

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/statemachine"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assignment is the set of columns written when a ticket gets an assignee.
type Assignment struct {
	AssignedTo    *uint64
	AssigneeName  string
	AssigneePhone string
	ScheduledDate *datatypes.Date
}

type IMaintenanceRepository interface {
	Create(ctx context.Context, m *model.Maintenance) error
	Get(ctx context.Context, id uint64) (*model.Maintenance, error)
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Maintenance, error)
	GetForTenantUser(ctx context.Context, id, userID uint64) (*model.Maintenance, error)
	List(ctx context.Context, q *model.MaintenanceQuery) ([]model.Maintenance, int64, error)
	ListForLandlord(ctx context.Context, landlordID uint64, q *model.MaintenanceQuery) ([]model.Maintenance, int64, error)
	ListForTenantUser(ctx context.Context, userID uint64, q *model.MaintenanceQuery) ([]model.Maintenance, int64, error)
	// Assign writes the assignee on an open ticket and advances pending to in_progress
	Assign(ctx context.Context, id uint64, a Assignment) (bool, error)
	// UpdateStatus moves from → to; entering completed stamps completed_date once
	UpdateStatus(ctx context.Context, id uint64, from, to statemachine.MaintenanceStatus) (bool, error)
	Updates(ctx context.Context, id uint64, fields map[string]any) error
	UpdateImage(ctx context.Context, id uint64, url string) error
	Delete(ctx context.Context, id uint64) error
	CountOpenForLandlord(ctx context.Context, landlordID uint64) (int64, error)
	AddMessage(ctx context.Context, msg *model.MaintenanceMessage) error
	ListMessages(ctx context.Context, maintenanceID uint64) ([]model.MaintenanceMessage, error)
}

type MaintenanceRepo struct {
	db database.IDatabase
}

func NewMaintenanceRepo(db database.IDatabase) IMaintenanceRepository {
	return &MaintenanceRepo{db: db}
}

func landlordMaintenance(landlordID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN t_property ON t_property.id = t_maintenance.property_id").
			Where("t_property.landlord_id = ?", landlordID)
	}
}

func tenantMaintenance(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN t_tenant ON t_tenant.id = t_maintenance.tenant_id").
			Where("t_tenant.user_id = ?", userID)
	}
}

func filterMaintenance(q *model.MaintenanceQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Status != "" {
			db = db.Where("t_maintenance.status = ?", q.Status)
		}
		if q.Priority != "" {
			db = db.Where("t_maintenance.priority = ?", q.Priority)
		}
		return db
	}
}

func (mr *MaintenanceRepo) Create(ctx context.Context, m *model.Maintenance) error {
	return mr.db.DB(ctx).Omit("Property", "Unit", "Tenant", "Requester", "Assignee").Create(m).Error
}

func (mr *MaintenanceRepo) Get(ctx context.Context, id uint64) (*model.Maintenance, error) {
	m := &model.Maintenance{}
	if err := mr.db.DB(ctx).First(m, id).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (mr *MaintenanceRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Maintenance, error) {
	m := &model.Maintenance{}
	err := mr.db.DB(ctx).Scopes(landlordMaintenance(landlordID)).Where("t_maintenance.id = ?", id).First(m).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (mr *MaintenanceRepo) GetForTenantUser(ctx context.Context, id, userID uint64) (*model.Maintenance, error) {
	m := &model.Maintenance{}
	err := mr.db.DB(ctx).Scopes(tenantMaintenance(userID)).Where("t_maintenance.id = ?", id).First(m).Error
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (mr *MaintenanceRepo) List(ctx context.Context, q *model.MaintenanceQuery) ([]model.Maintenance, int64, error) {
	query := database.ReadDB(mr.db.DB(ctx)).Model(&model.Maintenance{}).Scopes(filterMaintenance(q))
	return paginate[model.Maintenance](query, &q.Page, "t_maintenance.created_at DESC, t_maintenance.id DESC")
}

func (mr *MaintenanceRepo) ListForLandlord(ctx context.Context, landlordID uint64, q *model.MaintenanceQuery) ([]model.Maintenance, int64, error) {
	query := database.ReadDB(mr.db.DB(ctx)).Model(&model.Maintenance{}).
		Scopes(landlordMaintenance(landlordID), filterMaintenance(q))
	return paginate[model.Maintenance](query, &q.Page, "t_maintenance.created_at DESC, t_maintenance.id DESC")
}

func (mr *MaintenanceRepo) ListForTenantUser(ctx context.Context, userID uint64, q *model.MaintenanceQuery) ([]model.Maintenance, int64, error) {
	query := database.ReadDB(mr.db.DB(ctx)).Model(&model.Maintenance{}).
		Scopes(tenantMaintenance(userID), filterMaintenance(q))
	return paginate[model.Maintenance](query, &q.Page, "t_maintenance.created_at DESC, t_maintenance.id DESC")
}

func (mr *MaintenanceRepo) Assign(ctx context.Context, id uint64, a Assignment) (bool, error) {
	fields := map[string]any{
		"assigned_to":    a.AssignedTo,
		"assignee_name":  a.AssigneeName,
		"assignee_phone": a.AssigneePhone,
		"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
			statemachine.MaintenancePending, statemachine.MaintenanceInProgress),
	}
	if a.ScheduledDate != nil {
		fields["scheduled_date"] = a.ScheduledDate
	}
	res := mr.db.DB(ctx).Model(&model.Maintenance{}).
		Where("id = ? AND status IN ?", id, []statemachine.MaintenanceStatus{
			statemachine.MaintenancePending, statemachine.MaintenanceInProgress,
		}).
		Updates(fields)
	return res.RowsAffected == 1, res.Error
}

func (mr *MaintenanceRepo) UpdateStatus(ctx context.Context, id uint64, from, to statemachine.MaintenanceStatus) (bool, error) {
	fields := map[string]any{"status": to}
	if to == statemachine.MaintenanceCompleted {
		fields["completed_date"] = gorm.Expr("COALESCE(completed_date, ?)", model.Today())
	}
	res := mr.db.DB(ctx).Model(&model.Maintenance{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	return res.RowsAffected == 1, res.Error
}

// Updates writes descriptive fields only; status and assignment have their own paths.
func (mr *MaintenanceRepo) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return mr.db.DB(ctx).Model(&model.Maintenance{}).
		Where("id = ?", id).
		Select("subject", "description", "priority", "scheduled_date").
		Updates(fields).Error
}

func (mr *MaintenanceRepo) UpdateImage(ctx context.Context, id uint64, url string) error {
	return mr.db.DB(ctx).Model(&model.Maintenance{}).Where("id = ?", id).Update("image", url).Error
}

func (mr *MaintenanceRepo) Delete(ctx context.Context, id uint64) error {
	return mr.db.DB(ctx).Delete(&model.Maintenance{}, id).Error
}

func (mr *MaintenanceRepo) CountOpenForLandlord(ctx context.Context, landlordID uint64) (int64, error) {
	return count(mr.db.DB(ctx).Model(&model.Maintenance{}).
		Scopes(landlordMaintenance(landlordID)).
		Where("t_maintenance.status IN ?", []statemachine.MaintenanceStatus{
			statemachine.MaintenancePending, statemachine.MaintenanceInProgress,
		}))
}

func (mr *MaintenanceRepo) AddMessage(ctx context.Context, msg *model.MaintenanceMessage) error {
	return mr.db.DB(ctx).Omit("Maintenance", "Sender").Create(msg).Error
}

func (mr *MaintenanceRepo) ListMessages(ctx context.Context, maintenanceID uint64) ([]model.MaintenanceMessage, error) {
	var list []model.MaintenanceMessage
	err := mr.db.DB(ctx).
		Where("maintenance_id = ?", maintenanceID).
		Order("timestamp, id").
		Find(&list).Error
	return list, err
}
