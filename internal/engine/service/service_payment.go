package service

import (
	"context"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
)

// PaymentService records rent payments. There is no update or delete path.
type PaymentService struct {
	access   *AccessService
	payments repo.IPaymentRepository
}

func NewPaymentService(access *AccessService, repos *repo.Repositories) *PaymentService {
	return &PaymentService{access: access, payments: repos.Payment}
}

func (s *PaymentService) Create(ctx context.Context, ident *model.Identity, req *model.CreatePaymentReq) (*model.Payment, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, http.NewValidationError("amount", "must be greater than 0")
	}
	date, err := parseDate("paymentDate", req.PaymentDate)
	if err != nil {
		return nil, err
	}
	t, err := s.access.OwnTenant(ctx, ident.ID, req.TenantID)
	if err != nil {
		return nil, err
	}
	p := &model.Payment{
		TenantID:      t.ID,
		UnitID:        t.UnitID,
		Amount:        req.Amount,
		PaymentDate:   date,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Reference:     strings.TrimSpace(req.Reference),
		Notes:         req.Notes,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Infow("payment recorded", "paymentId", p.ID, "tenantId", t.ID, "amount", p.Amount)
	return p, nil
}

func (s *PaymentService) List(ctx context.Context, ident *model.Identity, q *model.PaymentQuery) (*http.PageResult[model.Payment], error) {
	var (
		list  []model.Payment
		total int64
		err   error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		list, total, err = s.payments.ListForLandlord(ctx, ident.ID, q)
	case ident.HasRole(model.RoleTenant):
		list, total, err = s.payments.ListForTenantUser(ctx, ident.ID, q)
	default:
		return nil, http.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, &q.Page), nil
}

func (s *PaymentService) Get(ctx context.Context, ident *model.Identity, id uint64) (*model.Payment, error) {
	var (
		p   *model.Payment
		err error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		p, err = s.payments.GetForLandlord(ctx, id, ident.ID)
	case ident.HasRole(model.RoleTenant):
		p, err = s.payments.GetForTenantUser(ctx, id, ident.ID)
	default:
		return nil, http.ErrForbidden
	}
	return p, repoErr(err, "payment")
}
