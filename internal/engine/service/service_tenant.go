package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	errUnitOccupied = http.NewConflict("unit is already occupied")
)

type TenantService struct {
	db      database.IDatabase
	access  *AccessService
	users   repo.IUserRepository
	units   repo.IUnitRepository
	tenants repo.ITenantRepository
}

func NewTenantService(db database.IDatabase, access *AccessService, repos *repo.Repositories) *TenantService {
	return &TenantService{
		db:      db,
		access:  access,
		users:   repos.User,
		units:   repos.Unit,
		tenants: repos.Tenant,
	}
}

func (s *TenantService) List(ctx context.Context, ident *model.Identity, page *model.Page) (*http.PageResult[model.Tenant], error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	list, total, err := s.tenants.ListForLandlord(ctx, ident.ID, page)
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, page), nil
}

// Create onboards a tenant directly, without an invitation.
func (s *TenantService) Create(ctx context.Context, ident *model.Identity, req *model.CreateTenantReq) (*model.Tenant, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	var t *model.Tenant
	err = s.db.Transaction(ctx, func(ctx context.Context) error {
		unit, err := s.access.OwnUnit(ctx, ident.ID, req.UnitID)
		if err != nil {
			return err
		}
		if unit.Status == model.UnitOccupied {
			return errUnitOccupied
		}
		user, err := s.findOrCreateUser(ctx, req.Email, req.FirstName, req.LastName, req.Phone, true)
		if err != nil {
			return err
		}
		t = &model.Tenant{
			UserID:                       user.ID,
			UnitID:                       unit.ID,
			FirstName:                    strings.TrimSpace(req.FirstName),
			LastName:                     strings.TrimSpace(req.LastName),
			Email:                        user.Email,
			Phone:                        strings.TrimSpace(req.Phone),
			LeaseType:                    leaseTypeOr(req.LeaseType),
			StartDate:                    start,
			EndDate:                      end,
			EmergencyContactName:         req.EmergencyContactName,
			EmergencyContactPhone:        req.EmergencyContactPhone,
			EmergencyContactRelationship: req.EmergencyContactRelationship,
		}
		return s.occupy(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	log.Infow("tenant created", "tenantId", t.ID, "unitId", t.UnitID, "landlordId", ident.ID)
	return t, nil
}

// Get returns a tenant of the landlord, or a tenancy of the caller.
func (s *TenantService) Get(ctx context.Context, ident *model.Identity, id uint64) (*model.Tenant, error) {
	switch {
	case ident.HasRole(model.RoleLandlord):
		return s.access.OwnTenant(ctx, ident.ID, id)
	case ident.HasRole(model.RoleTenant):
		t, err := s.tenants.GetForUser(ctx, id, ident.ID)
		return t, repoErr(err, "tenant")
	}
	return nil, http.ErrForbidden
}

func (s *TenantService) Update(ctx context.Context, ident *model.Identity, id uint64, req *model.UpdateTenantReq) (*model.Tenant, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	t, err := s.access.OwnTenant(ctx, ident.ID, id)
	if err != nil {
		return nil, err
	}
	if req.UnitID != nil && *req.UnitID != t.UnitID {
		return nil, http.NewValidationError("unitId", "cannot be changed, delete the tenant and create a new one")
	}

	fields := make(map[string]any)
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = strings.TrimSpace(*v)
		}
	}
	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("phone", req.Phone)
	setString("lease_type", req.LeaseType)
	setString("emergency_contact_name", req.EmergencyContactName)
	setString("emergency_contact_phone", req.EmergencyContactPhone)
	setString("emergency_contact_relationship", req.EmergencyContactRelationship)
	if req.StartDate != nil {
		d, err := parseDate("startDate", *req.StartDate)
		if err != nil {
			return nil, err
		}
		fields["start_date"] = d
	}
	if req.EndDate != nil {
		d, err := parseOptionalDate("endDate", *req.EndDate)
		if err != nil {
			return nil, err
		}
		fields["end_date"] = d
	}
	if len(fields) > 0 {
		if err := s.tenants.Updates(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.access.OwnTenant(ctx, ident.ID, id)
}

// Delete removes the tenant and frees its unit in one transaction.
func (s *TenantService) Delete(ctx context.Context, ident *model.Identity, id uint64) error {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return err
	}
	var unitID uint64
	err := s.db.Transaction(ctx, func(ctx context.Context) error {
		t, err := s.access.OwnTenant(ctx, ident.ID, id)
		if err != nil {
			return err
		}
		unitID = t.UnitID
		if err := s.tenants.Delete(ctx, t.ID); err != nil {
			return err
		}
		return s.units.MarkVacant(ctx, t.UnitID)
	})
	if err != nil {
		return err
	}
	log.Infow("tenant deleted", "tenantId", id, "unitId", unitID, "landlordId", ident.ID)
	return nil
}

// Rentals lists every tenancy of the caller with its unit, property and landlord.
func (s *TenantService) Rentals(ctx context.Context, ident *model.Identity) ([]model.Rental, error) {
	if err := s.access.EnsureRole(ident, model.RoleTenant); err != nil {
		return nil, err
	}
	list, err := s.tenants.ListByUser(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Rental, 0, len(list))
	for i := range list {
		t := &list[i]
		r := model.Rental{Tenant: t}
		if t.Unit != nil {
			r.Unit = t.Unit.Summary()
			if p := t.Unit.Property; p != nil {
				r.Property = p.Summary()
				if p.Landlord != nil {
					r.Landlord = contactOf(p.Landlord)
				}
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// findOrCreateUser returns the user owning email, creating it with the tenant
// role when missing. A user whose only exclusive role is regular is promoted
// to tenant. With refresh set, name and phone of an existing user are overwritten.
func (s *TenantService) findOrCreateUser(ctx context.Context, email, first, last, phone string, refresh bool) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if u == nil {
		u = model.NewUser(email, first, last, phone)
		u.Roles = []model.RoleName{model.RoleTenant}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, repoErr(err, "user")
		}
		log.Infow("user created for tenant", "userId", u.UserId)
		return u, nil
	}

	if refresh {
		fields := map[string]any{}
		if v := strings.TrimSpace(first); v != "" {
			fields["first_name"] = v
		}
		if v := strings.TrimSpace(last); v != "" {
			fields["last_name"] = v
		}
		if v := strings.TrimSpace(phone); v != "" {
			fields["phone"] = v
		}
		if err := s.users.Updates(ctx, u.ID, fields); err != nil {
			return nil, err
		}
	}

	if ex := u.ExclusiveRoles(); len(ex) == 0 || (len(ex) == 1 && ex[0] == model.RoleRegular) {
		if err := s.access.AssignExclusiveRole(ctx, u.ID, model.RoleTenant); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// occupy flips the unit to occupied and inserts t. Both must run in the
// caller's transaction.
func (s *TenantService) occupy(ctx context.Context, t *model.Tenant) error {
	ok, err := s.units.MarkOccupied(ctx, t.UnitID)
	if err != nil {
		return err
	}
	if !ok {
		return errUnitOccupied
	}
	if err := s.tenants.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errUnitOccupied
		}
		return err
	}
	return nil
}

func leaseTypeOr(v string) string {
	if v == "" {
		return model.LeaseRental
	}
	return v
}

func parseDate(field, s string) (datatypes.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return d, http.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func parseOptionalDate(field, s string) (*datatypes.Date, error) {
	d, err := model.ParseOptionalDate(s)
	if err != nil {
		return nil, http.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func contactOf(u *model.User) model.ContactSummary {
	return model.ContactSummary{
		UserId:   u.UserId,
		FullName: u.FullName(),
		Email:    u.Email,
		Phone:    u.Phone,
	}
}
