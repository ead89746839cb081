package service

import (
	"context"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
)

type PropertyService struct {
	access *AccessService
	props  repo.IPropertyRepository
	units  repo.IUnitRepository
}

func NewPropertyService(access *AccessService, repos *repo.Repositories) *PropertyService {
	return &PropertyService{access: access, props: repos.Property, units: repos.Unit}
}

func (s *PropertyService) List(ctx context.Context, ident *model.Identity, page *model.Page) (*http.PageResult[model.Property], error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	list, total, err := s.props.List(ctx, ident.ID, page)
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, page), nil
}

func (s *PropertyService) Create(ctx context.Context, ident *model.Identity, req *model.PropertyReq) (*model.Property, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	p := &model.Property{
		LandlordID:  ident.ID,
		Name:        strings.TrimSpace(req.Name),
		Type:        model.PropertyType(req.Type),
		Description: req.Description,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
	}
	if !p.Type.IsValid() {
		return nil, http.NewValidationError("type", "unknown property type")
	}
	if err := s.props.Create(ctx, p); err != nil {
		return nil, repoErr(err, "property")
	}
	log.Infow("property created", "propertyId", p.ID, "landlordId", ident.ID)
	return p, nil
}

func (s *PropertyService) Get(ctx context.Context, ident *model.Identity, id uint64) (*model.Property, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	return s.access.OwnProperty(ctx, ident.ID, id)
}

func (s *PropertyService) Update(ctx context.Context, ident *model.Identity, id uint64, req *model.PropertyReq) (*model.Property, error) {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return nil, err
	}
	if !model.PropertyType(req.Type).IsValid() {
		return nil, http.NewValidationError("type", "unknown property type")
	}
	err := s.props.Updates(ctx, id, map[string]any{
		"name":        strings.TrimSpace(req.Name),
		"type":        req.Type,
		"description": req.Description,
		"street":      req.Street,
		"city":        req.City,
		"state":       req.State,
		"zip_code":    req.ZipCode,
	})
	if err != nil {
		return nil, repoErr(err, "property")
	}
	return s.access.OwnProperty(ctx, ident.ID, id)
}

func (s *PropertyService) Delete(ctx context.Context, ident *model.Identity, id uint64) error {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return err
	}
	if err := s.props.Delete(ctx, id); err != nil {
		return err
	}
	log.Infow("property deleted", "propertyId", id, "landlordId", ident.ID)
	return nil
}

// Units lists the units of one property.
func (s *PropertyService) Units(ctx context.Context, ident *model.Identity, id uint64, page *model.Page) (*http.PageResult[model.Unit], error) {
	if _, err := s.Get(ctx, ident, id); err != nil {
		return nil, err
	}
	q := &repo.UnitQuery{Page: *page, PropertyID: id}
	list, total, err := s.units.List(ctx, ident.ID, q)
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, &q.Page), nil
}
