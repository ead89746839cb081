package repo

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
)

// IPaymentRepository is append-only: there is no update or delete.
type IPaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Payment, error)
	GetForTenantUser(ctx context.Context, id, userID uint64) (*model.Payment, error)
	ListForLandlord(ctx context.Context, landlordID uint64, q *model.PaymentQuery) ([]model.Payment, int64, error)
	ListForTenantUser(ctx context.Context, userID uint64, q *model.PaymentQuery) ([]model.Payment, int64, error)
}

type PaymentRepo struct {
	db database.IDatabase
}

func NewPaymentRepo(db database.IDatabase) IPaymentRepository {
	return &PaymentRepo{db: db}
}

func (pr *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return pr.db.DB(ctx).Omit("Tenant", "Unit").Create(p).Error
}

func (pr *PaymentRepo) landlordScope(landlordID uint64) *paymentScope {
	return &paymentScope{join: "JOIN t_unit ON t_unit.id = t_payment.unit_id JOIN t_property ON t_property.id = t_unit.property_id", where: "t_property.landlord_id = ?", arg: landlordID}
}

func (pr *PaymentRepo) tenantScope(userID uint64) *paymentScope {
	return &paymentScope{join: "JOIN t_tenant ON t_tenant.id = t_payment.tenant_id", where: "t_tenant.user_id = ?", arg: userID}
}

func (pr *PaymentRepo) GetForLandlord(ctx context.Context, id, landlordID uint64) (*model.Payment, error) {
	return pr.get(ctx, id, pr.landlordScope(landlordID))
}

func (pr *PaymentRepo) GetForTenantUser(ctx context.Context, id, userID uint64) (*model.Payment, error) {
	return pr.get(ctx, id, pr.tenantScope(userID))
}

func (pr *PaymentRepo) ListForLandlord(ctx context.Context, landlordID uint64, q *model.PaymentQuery) ([]model.Payment, int64, error) {
	return pr.list(ctx, q, pr.landlordScope(landlordID))
}

func (pr *PaymentRepo) ListForTenantUser(ctx context.Context, userID uint64, q *model.PaymentQuery) ([]model.Payment, int64, error) {
	return pr.list(ctx, q, pr.tenantScope(userID))
}

type paymentScope struct {
	join  string
	where string
	arg   uint64
}

func (pr *PaymentRepo) get(ctx context.Context, id uint64, s *paymentScope) (*model.Payment, error) {
	p := &model.Payment{}
	err := pr.db.DB(ctx).
		Joins(s.join).
		Where(s.where, s.arg).
		Where("t_payment.id = ?", id).
		First(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (pr *PaymentRepo) list(ctx context.Context, q *model.PaymentQuery, s *paymentScope) ([]model.Payment, int64, error) {
	query := database.ReadDB(pr.db.DB(ctx)).Model(&model.Payment{}).
		Joins(s.join).
		Where(s.where, s.arg)
	if q.TenantID != 0 {
		query = query.Where("t_payment.tenant_id = ?", q.TenantID)
	}
	if q.UnitID != 0 {
		query = query.Where("t_payment.unit_id = ?", q.UnitID)
	}
	return paginate[model.Payment](query, &q.Page, "t_payment.payment_date DESC, t_payment.id DESC")
}
