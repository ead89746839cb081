package repo

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
)

type IPropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	Get(ctx context.Context, id uint64) (*model.Property, error)
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Property, error)
	List(ctx context.Context, landlordID uint64, page *model.Page) ([]model.Property, int64, error)
	ListAll(ctx context.Context, landlordID uint64) ([]model.Property, error)
	Updates(ctx context.Context, id uint64, fields map[string]any) error
	Delete(ctx context.Context, id uint64) error
	CountByLandlord(ctx context.Context, landlordID uint64) (int64, error)
}

type PropertyRepo struct {
	db database.IDatabase
}

func NewPropertyRepo(db database.IDatabase) IPropertyRepository {
	return &PropertyRepo{db: db}
}

func (pr *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	return pr.db.DB(ctx).Create(p).Error
}

func (pr *PropertyRepo) Get(ctx context.Context, id uint64) (*model.Property, error) {
	p := &model.Property{}
	if err := pr.db.DB(ctx).Where("id = ?", id).First(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *PropertyRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Property, error) {
	p := &model.Property{}
	err := pr.db.DB(ctx).Where("id = ? AND landlord_id = ?", id, landlordID).First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *PropertyRepo) List(ctx context.Context, landlordID uint64, page *model.Page) ([]model.Property, int64, error) {
	query := database.ReadDB(pr.db.DB(ctx)).Model(&model.Property{}).Where("landlord_id = ?", landlordID)
	return paginate[model.Property](query, page, "id DESC")
}

func (pr *PropertyRepo) ListAll(ctx context.Context, landlordID uint64) ([]model.Property, error) {
	var list []model.Property
	err := pr.db.DB(ctx).Where("landlord_id = ?", landlordID).Order("id").Find(&list).Error
	return list, err
}

func (pr *PropertyRepo) Updates(ctx context.Context, id uint64, fields map[string]any) error {
	return pr.db.DB(ctx).Model(&model.Property{}).
		Where("id = ?", id).
		Omit("landlord_id", "created_at").
		Updates(fields).Error
}

// Delete relies on ON DELETE CASCADE for units and everything below them.
func (pr *PropertyRepo) Delete(ctx context.Context, id uint64) error {
	return pr.db.DB(ctx).Delete(&model.Property{}, id).Error
}

func (pr *PropertyRepo) CountByLandlord(ctx context.Context, landlordID uint64) (int64, error) {
	return count(pr.db.DB(ctx).Model(&model.Property{}).Where("landlord_id = ?", landlordID))
}
