package service

import (
	"context"
	"time"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	sm "github.com/go-arcade/edo/pkg/statemachine"
)

// VacateService handles move-out notices from tenants and the landlord's answer.
type VacateService struct {
	publisher
	access  *AccessService
	tenants repo.ITenantRepository
	vacate  repo.IVacateRepository
	now     func() time.Time
}

func NewVacateService(access *AccessService, repos *repo.Repositories, pub publisher) *VacateService {
	return &VacateService{
		publisher: pub,
		access:    access,
		tenants:   repos.Tenant,
		vacate:    repos.Vacate,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *VacateService) Create(ctx context.Context, ident *model.Identity, req *model.CreateVacateReq) (*model.VacateRequest, error) {
	if err := s.access.EnsureRole(ident, model.RoleTenant); err != nil {
		return nil, err
	}
	moveOut, err := parseDate("moveOutDate", req.MoveOutDate)
	if err != nil {
		return nil, err
	}
	t, err := s.tenancy(ctx, ident, req.TenantID)
	if err != nil {
		return nil, err
	}
	v := &model.VacateRequest{
		TenantID:    t.ID,
		UnitID:      t.UnitID,
		PropertyID:  t.Unit.PropertyID,
		MoveOutDate: moveOut,
		Reason:      req.Reason,
		Status:      sm.VacatePending,
	}
	if err := s.vacate.Create(ctx, v); err != nil {
		return nil, err
	}
	log.Infow("vacate request created", "vacateId", v.ID, "tenantId", t.ID, "unitId", t.UnitID)
	return v, nil
}

func (s *VacateService) tenancy(ctx context.Context, ident *model.Identity, tenantID *uint64) (*model.Tenant, error) {
	if tenantID != nil {
		t, err := s.tenants.GetForUser(ctx, *tenantID, ident.ID)
		return t, repoErr(err, "tenant")
	}
	list, err := s.tenants.ListByUser(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, http.NewValidationError("tenantId", "no tenancy found for this user")
	}
	return &list[0], nil
}

func (s *VacateService) List(ctx context.Context, ident *model.Identity, page *model.Page) (*http.PageResult[model.VacateRequest], error) {
	var (
		list  []model.VacateRequest
		total int64
		err   error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		list, total, err = s.vacate.ListForLandlord(ctx, ident.ID, page)
	case ident.HasRole(model.RoleTenant):
		list, total, err = s.vacate.ListForTenantUser(ctx, ident.ID, page)
	default:
		return nil, http.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, page), nil
}

func (s *VacateService) Respond(ctx context.Context, ident *model.Identity, id uint64, req *model.RespondVacateReq) (*model.VacateRequest, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	to := sm.VacateStatus(req.Status)
	if !sm.VacatePending.CanTransitTo(to) {
		return nil, http.NewValidationError("status", "must be approved or rejected")
	}
	v, err := s.vacate.GetForLandlord(ctx, id, ident.ID)
	if err != nil {
		return nil, repoErr(err, "vacate request")
	}
	ok, err := s.vacate.Respond(ctx, v.ID, to, req.Response, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, http.NewConflict("vacate request is not pending")
	}
	s.publish(StatusEvent{
		Name:      EventVacateResponded,
		Aggregate: "vacate",
		ID:        v.ID,
		From:      string(sm.VacatePending),
		To:        string(to),
	})
	log.Infow("vacate request answered", "vacateId", v.ID, "status", to)
	v, err = s.vacate.GetForLandlord(ctx, id, ident.ID)
	return v, repoErr(err, "vacate request")
}
