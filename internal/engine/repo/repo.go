package repo

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"gorm.io/gorm"
)

// Repositories 统一管理所有 repository
type Repositories struct {
	db database.IDatabase

	User        IUserRepository
	Role        IRoleRepository
	Property    IPropertyRepository
	Unit        IUnitRepository
	Tenant      ITenantRepository
	Payment     IPaymentRepository
	Notice      INoticeRepository
	Invitation  IInvitationRepository
	Maintenance IMaintenanceRepository
	Chat        IChatRepository
	Vacate      IVacateRepository
}

// NewRepositories 初始化所有 repository
func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepo(db),
		Role:        NewRoleRepo(db),
		Property:    NewPropertyRepo(db),
		Unit:        NewUnitRepo(db),
		Tenant:      NewTenantRepo(db),
		Payment:     NewPaymentRepo(db),
		Notice:      NewNoticeRepo(db),
		Invitation:  NewInvitationRepo(db),
		Maintenance: NewMaintenanceRepo(db),
		Chat:        NewChatRepo(db),
		Vacate:      NewVacateRepo(db),
	}
}

// DB 返回数据库实例, service 用它开启事务
func (r *Repositories) DB() database.IDatabase {
	return r.db
}

// paginate counts and fetches one page of query. Preloads apply to the fetch only.
func paginate[T any](query *gorm.DB, page *model.Page, order string, preloads ...string) ([]T, int64, error) {
	offset := page.Normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	list := make([]T, 0, page.PageSize)
	if total == 0 {
		return list, 0, nil
	}
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.Order(order).Offset(offset).Limit(page.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// landlordUnits scopes a unit query to the units of landlordID.
func landlordUnits(landlordID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN t_property ON t_property.id = t_unit.property_id").
			Where("t_property.landlord_id = ?", landlordID)
	}
}

// landlordTenants scopes a tenant query to the tenants of landlordID.
func landlordTenants(landlordID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN t_unit ON t_unit.id = t_tenant.unit_id").
			Joins("JOIN t_property ON t_property.id = t_unit.property_id").
			Where("t_property.landlord_id = ?", landlordID)
	}
}

func count(tx *gorm.DB) (int64, error) {
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
