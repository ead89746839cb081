package service

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	access *AccessService
	repos  *repo.Repositories
}

func NewDashboardService(access *AccessService, repos *repo.Repositories) *DashboardService {
	return &DashboardService{access: access, repos: repos}
}

// Landlord gathers the landlord's counters concurrently.
func (s *DashboardService) Landlord(ctx context.Context, ident *model.Identity) (*model.LandlordDashboard, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	id := ident.ID
	d := &model.LandlordDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Properties, err = s.repos.Property.CountByLandlord(gctx, id)
		return
	})
	g.Go(func() (err error) {
		d.Units, err = s.repos.Unit.CountForLandlord(gctx, id, "")
		return
	})
	g.Go(func() (err error) {
		d.OccupiedUnits, err = s.repos.Unit.CountForLandlord(gctx, id, model.UnitOccupied)
		return
	})
	g.Go(func() (err error) {
		d.VacantUnits, err = s.repos.Unit.CountForLandlord(gctx, id, model.UnitVacant)
		return
	})
	g.Go(func() (err error) {
		d.Tenants, err = s.repos.Tenant.CountForLandlord(gctx, id)
		return
	})
	g.Go(func() (err error) {
		d.OpenMaintenance, err = s.repos.Maintenance.CountOpenForLandlord(gctx, id)
		return
	})
	g.Go(func() (err error) {
		d.PendingInvitations, err = s.repos.Invitation.CountPending(gctx, id)
		return
	})
	g.Go(func() (err error) {
		d.PendingVacateNotice, err = s.repos.Vacate.CountPendingForLandlord(gctx, id)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
