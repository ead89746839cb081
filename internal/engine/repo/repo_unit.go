package repo

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
)

type UnitQuery struct {
	model.Page
	PropertyID uint64 `query:"propertyId"`
	Status     string `query:"status"`
}

type IUnitRepository interface {
	Create(ctx context.Context, u *model.Unit) error
	Get(ctx context.Context, id uint64) (*model.Unit, error)
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Unit, error)
	List(ctx context.Context, landlordID uint64, q *UnitQuery) ([]model.Unit, int64, error)
	Updates(ctx context.Context, id uint64, fields map[string]any) error
	Delete(ctx context.Context, id uint64) error
	// MarkOccupied flips vacant to occupied and reports whether this call did it
	MarkOccupied(ctx context.Context, id uint64) (bool, error)
	MarkVacant(ctx context.Context, id uint64) error
	CountForLandlord(ctx context.Context, landlordID uint64, status model.UnitStatus) (int64, error)
}

type UnitRepo struct {
	db database.IDatabase
}

func NewUnitRepo(db database.IDatabase) IUnitRepository {
	return &UnitRepo{db: db}
}

func (ur *UnitRepo) Create(ctx context.Context, u *model.Unit) error {
	return ur.db.DB(ctx).Omit("Property", "Tenant").Create(u).Error
}

func (ur *UnitRepo) Get(ctx context.Context, id uint64) (*model.Unit, error) {
	u := &model.Unit{}
	if err := ur.db.DB(ctx).Preload("Property").First(u, id).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UnitRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Unit, error) {
	u := &model.Unit{}
	err := ur.db.DB(ctx).
		Scopes(landlordUnits(landlordID)).
		Preload("Property").
		Preload("Tenant").
		Where("t_unit.id = ?", id).
		First(u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (ur *UnitRepo) List(ctx context.Context, landlordID uint64, q *UnitQuery) ([]model.Unit, int64, error) {
	query := database.ReadDB(ur.db.DB(ctx)).Model(&model.Unit{}).
		Scopes(landlordUnits(landlordID))
	if q.PropertyID != 0 {
		query = query.Where("t_unit.property_id = ?", q.PropertyID)
	}
	if q.Status != "" {
		query = query.Where("t_unit.status = ?", q.Status)
	}
	return paginate[model.Unit](query, &q.Page, "t_unit.id DESC", "Property", "Tenant")
}

// Updates never touches unit_id, status or property_id.
func (ur *UnitRepo) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	return ur.db.DB(ctx).Model(&model.Unit{}).
		Where("id = ?", id).
		Omit("unit_id", "status", "property_id", "created_at").
		Updates(fields).Error
}

func (ur *UnitRepo) Delete(ctx context.Context, id uint64) error {
	return ur.db.DB(ctx).Delete(&model.Unit{}, id).Error
}

func (ur *UnitRepo) MarkOccupied(ctx context.Context, id uint64) (bool, error) {
	res := ur.db.DB(ctx).Model(&model.Unit{}).
		Where("id = ? AND status = ?", id, model.UnitVacant).
		Update("status", model.UnitOccupied)
	return res.RowsAffected == 1, res.Error
}

func (ur *UnitRepo) MarkVacant(ctx context.Context, id uint64) error {
	return ur.db.DB(ctx).Model(&model.Unit{}).
		Where("id = ?", id).
		Update("status", model.UnitVacant).Error
}

func (ur *UnitRepo) CountForLandlord(ctx context.Context, landlordID uint64, status model.UnitStatus) (int64, error) {
	query := ur.db.DB(ctx).Model(&model.Unit{}).Scopes(landlordUnits(landlordID))
	if status != "" {
		query = query.Where("t_unit.status = ?", status)
	}
	return count(query)
}
