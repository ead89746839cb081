package service

import (
	"context"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/util"
)

type UnitService struct {
	access *AccessService
	units  repo.IUnitRepository
}

func NewUnitService(access *AccessService, repos *repo.Repositories) *UnitService {
	return &UnitService{access: access, units: repos.Unit}
}

func (s *UnitService) List(ctx context.Context, ident *model.Identity, q *repo.UnitQuery) (*http.PageResult[model.Unit], error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	if q.Status != "" && q.Status != string(model.UnitVacant) && q.Status != string(model.UnitOccupied) {
		return nil, http.NewValidationError("status", "must be one of: vacant occupied")
	}
	list, total, err := s.units.List(ctx, ident.ID, q)
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, &q.Page), nil
}

func (s *UnitService) Create(ctx context.Context, ident *model.Identity, req *model.CreateUnitReq) (*model.Unit, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	if _, err := s.access.OwnProperty(ctx, ident.ID, req.PropertyID); err != nil {
		return nil, err
	}
	u := &model.Unit{
		PropertyID:      req.PropertyID,
		UnitId:          strings.TrimSpace(req.UnitId),
		Floor:           req.Floor,
		Bedrooms:        1,
		Bathrooms:       1,
		Size:            req.Size,
		RentAmount:      req.RentAmount,
		SecurityDeposit: req.SecurityDeposit,
		Status:          model.UnitVacant,
	}
	if req.Bedrooms != nil {
		u.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		u.Bathrooms = *req.Bathrooms
	}
	if err := s.units.Create(ctx, u); err != nil {
		return nil, repoErr(err, "unit "+u.UnitId)
	}
	log.Infow("unit created", "unitId", u.ID, "propertyId", u.PropertyID)
	return u, nil
}

func (s *UnitService) Get(ctx context.Context, ident *model.Identity, id uint64) (*model.Unit, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	return s.access.OwnUnit(ctx, ident.ID, id)
}

// Update rejects any change of the external unit id.
func (s *UnitService) Update(ctx context.Context, ident *model.Identity, id uint64, req *model.UpdateUnitReq) (*model.Unit, error) {
	u, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if req.UnitId != nil && strings.TrimSpace(*req.UnitId) != u.UnitId {
		return nil, http.NewValidationError("unitId", "cannot be changed after creation")
	}
	fields := make(map[string]any)
	util.SetIfNotNil(fields, "floor", req.Floor)
	util.SetIfNotNil(fields, "bedrooms", req.Bedrooms)
	util.SetIfNotNil(fields, "bathrooms", req.Bathrooms)
	util.SetIfNotNil(fields, "size", req.Size)
	util.SetIfNotNil(fields, "rent_amount", req.RentAmount)
	util.SetIfNotNil(fields, "security_deposit", req.SecurityDeposit)
	if len(fields) > 0 {
		if err := s.units.Updates(ctx, id, fields); err != nil {
			return nil, repoErr(err, "unit")
		}
	}
	return s.access.OwnUnit(ctx, ident.ID, id)
}

func (s *UnitService) Delete(ctx context.Context, ident *model.Identity, id uint64) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}
	if err := s.units.Delete(ctx, id); err != nil {
		return err
	}
	log.Infow("unit deleted", "unitId", id, "landlordId", ident.ID)
	return nil
}
