// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	sm "github.com/go-arcade/edo/pkg/statemachine"
	"github.com/go-arcade/edo/pkg/util"
)

var errTicketClosed = http.NewConflict("ticket is completed or cancelled")

type MaintenanceService struct {
	publisher
	db     database.IDatabase
	access *AccessService
	users  repo.IUserRepository
	units  repo.IUnitRepository
	tenant repo.ITenantRepository
	maint  repo.IMaintenanceRepository
	store  storage.StorageProvider
}

func NewMaintenanceService(
	db database.IDatabase,
	access *AccessService,
	repos *repo.Repositories,
	store storage.StorageProvider,
	pub publisher,
) *MaintenanceService {
	return &MaintenanceService{
		publisher: pub,
		db:        db,
		access:    access,
		users:     repos.User,
		units:     repos.Unit,
		tenant:    repos.Tenant,
		maint:     repos.Maintenance,
		store:     store,
	}
}

// Create files a ticket. Tenants are bound to their oldest tenancy, landlords
// to a unit of theirs and admins to any unit.
func (s *MaintenanceService) Create(ctx context.Context, ident *model.Identity, req *model.CreateMaintenanceReq) (*model.Maintenance, error) {
	priority := sm.PriorityMedium
	if req.Priority != "" {
		priority = sm.MaintenancePriority(req.Priority)
		if !priority.IsValid() {
			return nil, http.NewValidationError("priority", "must be one of: low medium high")
		}
	}
	scheduled, err := parseOptionalDate("scheduledDate", req.ScheduledDate)
	if err != nil {
		return nil, err
	}
	requester := ident.ID
	m := &model.Maintenance{
		Subject:       strings.TrimSpace(req.Subject),
		Description:   req.Description,
		Status:        sm.MaintenancePending,
		Priority:      priority,
		RequestedBy:   &requester,
		ScheduledDate: scheduled,
	}

	switch {
	case ident.HasRole(model.RoleTenant):
		tenancies, err := s.tenant.ListByUser(ctx, ident.ID)
		if err != nil {
			return nil, err
		}
		if len(tenancies) == 0 || tenancies[0].Unit == nil {
			return nil, http.NewValidationError("unitId", "you have no tenancy to file a request for")
		}
		t := tenancies[0]
		m.TenantID = &t.ID
		m.UnitID = t.UnitID
		m.PropertyID = t.Unit.PropertyID
	case ident.HasRole(model.RoleLandlord):
		if req.UnitID == nil {
			return nil, http.NewValidationError("unitId", "this field is required")
		}
		unit, err := s.access.OwnUnit(ctx, ident.ID, *req.UnitID)
		if err != nil {
			return nil, err
		}
		if err := s.bindUnit(m, unit, req.PropertyID); err != nil {
			return nil, err
		}
	case ident.HasRole(model.RoleAdmin):
		if req.UnitID == nil {
			return nil, http.NewValidationError("unitId", "this field is required")
		}
		unit, err := s.units.Get(ctx, *req.UnitID)
		if err != nil {
			return nil, repoErr(err, "unit")
		}
		if err := s.bindUnit(m, unit, req.PropertyID); err != nil {
			return nil, err
		}
	default:
		return nil, http.ErrForbidden
	}

	if err := s.maint.Create(ctx, m); err != nil {
		return nil, err
	}
	log.Infow("maintenance request created", "maintenanceId", m.ID, "unitId", m.UnitID, "priority", m.Priority)
	s.publish(StatusEvent{Name: EventMaintenanceCreated, Aggregate: "maintenance", ID: m.ID, To: string(m.Status)})
	return m, nil
}

func (s *MaintenanceService) bindUnit(m *model.Maintenance, unit *model.Unit, propertyID *uint64) error {
	if propertyID != nil && *propertyID != unit.PropertyID {
		return http.NewValidationError("propertyId", "does not match the unit's property")
	}
	m.UnitID = unit.ID
	m.PropertyID = unit.PropertyID
	if unit.Tenant != nil {
		m.TenantID = &unit.Tenant.ID
	}
	return nil
}

// List returns the caller's scope: tickets of owned properties for landlords,
// own tickets for tenants, every ticket for admins, nothing for anyone else.
func (s *MaintenanceService) List(ctx context.Context, ident *model.Identity, q *model.MaintenanceQuery) (*http.PageResult[model.Maintenance], error) {
	if err := validateMaintenanceQuery(q); err != nil {
		return nil, err
	}
	var (
		list  []model.Maintenance
		total int64
		err   error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		list, total, err = s.maint.ListForLandlord(ctx, ident.ID, q)
	case ident.HasRole(model.RoleTenant):
		list, total, err = s.maint.ListForTenantUser(ctx, ident.ID, q)
	case ident.HasRole(model.RoleAdmin):
		list, total, err = s.maint.List(ctx, q)
	default:
		q.Page.Normalize()
		list = []model.Maintenance{}
	}
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, &q.Page), nil
}

func (s *MaintenanceService) ListForLandlord(ctx context.Context, ident *model.Identity, q *model.MaintenanceQuery) (*http.PageResult[model.Maintenance], error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	return s.List(ctx, ident, q)
}

func (s *MaintenanceService) ListForTenant(ctx context.Context, ident *model.Identity, q *model.MaintenanceQuery) (*http.PageResult[model.Maintenance], error) {
	if err := s.access.EnsureRole(ident, model.RoleTenant); err != nil {
		return nil, err
	}
	return s.List(ctx, ident, q)
}

func validateMaintenanceQuery(q *model.MaintenanceQuery) error {
	if q.Status != "" && !sm.MaintenanceStatus(q.Status).IsValid() {
		return http.NewValidationError("status", "must be one of: pending in_progress completed cancelled")
	}
	if q.Priority != "" && !sm.MaintenancePriority(q.Priority).IsValid() {
		return http.NewValidationError("priority", "must be one of: low medium high")
	}
	return nil
}

// Get loads a ticket inside the caller's scope. Out of scope is NotFound.
func (s *MaintenanceService) Get(ctx context.Context, ident *model.Identity, id uint64) (*model.Maintenance, error) {
	var (
		m   *model.Maintenance
		err error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		m, err = s.maint.GetForLandlord(ctx, id, ident.ID)
	case ident.HasRole(model.RoleTenant):
		m, err = s.maint.GetForTenantUser(ctx, id, ident.ID)
	case ident.HasRole(model.RoleAdmin):
		m, err = s.maint.Get(ctx, id)
	default:
		return nil, http.NewNotFound("maintenance request")
	}
	return m, repoErr(err, "maintenance request")
}

// Assign sets a platform or free-text assignee. Landlord owners and admins only.
func (s *MaintenanceService) Assign(ctx context.Context, ident *model.Identity, id uint64, req *model.AssignMaintenanceReq) (*model.Maintenance, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord, model.RoleAdmin); err != nil {
		return nil, err
	}
	m, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	ev, err := s.assign(ctx, m, req)
	if err != nil {
		return nil, err
	}
	s.publish(*ev)
	return s.reload(ctx, id)
}

func (s *MaintenanceService) assign(ctx context.Context, m *model.Maintenance, req *model.AssignMaintenanceReq) (*StatusEvent, error) {
	if !req.HasAssignment() {
		if req.TouchesAssignee() {
			return nil, http.NewValidationError("assigneePhone", "requires assigneeName or assignedTo")
		}
		return nil, http.NewValidationError("assignedTo", "either assignedTo or assigneeName is required")
	}
	a := repo.Assignment{}
	if req.AssigneePhone != nil && *req.AssigneePhone != "" {
		phone := strings.TrimSpace(*req.AssigneePhone)
		if !http.PhonePattern.MatchString(phone) {
			return nil, http.NewValidationError("assigneePhone", "must be 7-20 characters of digits, '+', '-' or spaces")
		}
		a.AssigneePhone = phone
	}
	if m.Status.IsTerminal() {
		return nil, errTicketClosed
	}
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		u, err := s.users.GetByUserId(ctx, *req.AssignedTo)
		if err != nil {
			if isNotFound(err) {
				return nil, http.NewValidationError("assignedTo", "unknown user")
			}
			return nil, err
		}
		a.AssignedTo = &u.ID
	}
	if req.AssigneeName != nil {
		a.AssigneeName = strings.TrimSpace(*req.AssigneeName)
	}
	if req.ScheduledDate != nil {
		d, err := parseOptionalDate("scheduledDate", *req.ScheduledDate)
		if err != nil {
			return nil, err
		}
		a.ScheduledDate = d
	}

	ok, err := s.maint.Assign(ctx, m.ID, a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errTicketClosed
	}
	next := m.Status.StatusAfterAssignment()
	log.Infow("maintenance request assigned", "maintenanceId", m.ID, "from", m.Status, "to", next)
	ev := &StatusEvent{Name: EventMaintenanceAssigned, Aggregate: "maintenance", ID: m.ID,
		From: string(m.Status), To: string(next)}
	m.Status = next
	return ev, nil
}

// UpdateStatus applies one transition. Tenants may only cancel their own
// pending tickets.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, ident *model.Identity, id uint64, status string) (*model.Maintenance, error) {
	m, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	ev, err := s.transition(ctx, ident, m, sm.MaintenanceStatus(status))
	if err != nil {
		return nil, err
	}
	s.publish(*ev)
	return s.reload(ctx, id)
}

func (s *MaintenanceService) transition(ctx context.Context, ident *model.Identity, m *model.Maintenance, to sm.MaintenanceStatus) (*StatusEvent, error) {
	if !to.IsValid() {
		return nil, http.NewValidationError("status", "must be one of: pending in_progress completed cancelled")
	}
	if !ident.HasRole(model.RoleLandlord, model.RoleAdmin) {
		if !ident.HasRole(model.RoleTenant) {
			return nil, http.ErrForbidden
		}
		if to != sm.MaintenanceCancelled || m.Status != sm.MaintenancePending {
			return nil, http.NewForbidden("tenants may only cancel pending requests")
		}
	}
	from := m.Status
	if !from.CanTransitTo(to) {
		return nil, http.NewConflict(fmt.Sprintf("cannot move ticket from %s to %s", from, to))
	}
	ok, err := s.maint.UpdateStatus(ctx, m.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, http.NewConflict("ticket status changed concurrently, reload and retry")
	}
	log.Infow("maintenance status changed", "maintenanceId", m.ID, "from", from, "to", to)
	m.Status = to
	return &StatusEvent{Name: EventMaintenanceStatusChanged, Aggregate: "maintenance", ID: m.ID,
		From: string(from), To: string(to)}, nil
}

// Update edits descriptive fields. Assignment fields go through the assign
// rules and status through the transition rules, all in one transaction.
func (s *MaintenanceService) Update(ctx context.Context, ident *model.Identity, id uint64, req *model.UpdateMaintenanceReq) (*model.Maintenance, error) {
	m, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if !ident.HasRole(model.RoleLandlord, model.RoleAdmin) {
		// tenants may only cancel through this endpoint
		if req.Status == nil || req.Subject != nil || req.Description != nil || req.Priority != nil ||
			req.ScheduledDate != nil || req.TouchesAssignee() {
			return nil, http.ErrForbidden
		}
	}

	fields := make(map[string]any)
	util.SetIfNotNilFunc(fields, "subject", req.Subject, strings.TrimSpace)
	util.SetIfNotNil(fields, "description", req.Description)
	if req.Priority != nil {
		p := sm.MaintenancePriority(*req.Priority)
		if !p.IsValid() {
			return nil, http.NewValidationError("priority", "must be one of: low medium high")
		}
		fields["priority"] = p
	}
	if req.ScheduledDate != nil && !req.TouchesAssignee() {
		d, err := parseOptionalDate("scheduledDate", *req.ScheduledDate)
		if err != nil {
			return nil, err
		}
		fields["scheduled_date"] = d
	}

	var events []StatusEvent
	err = s.db.Transaction(ctx, func(ctx context.Context) error {
		if err := s.maint.Updates(ctx, id, fields); err != nil {
			return err
		}
		if req.TouchesAssignee() {
			ev, err := s.assign(ctx, m, &req.AssignMaintenanceReq)
			if err != nil {
				return err
			}
			events = append(events, *ev)
		}
		if req.Status != nil && sm.MaintenanceStatus(*req.Status) != m.Status {
			ev, err := s.transition(ctx, ident, m, sm.MaintenanceStatus(*req.Status))
			if err != nil {
				return err
			}
			events = append(events, *ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		s.publish(ev)
	}
	return s.reload(ctx, id)
}

func (s *MaintenanceService) Delete(ctx context.Context, ident *model.Identity, id uint64) error {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return err
	}
	m, err := s.maint.GetForLandlord(ctx, id, ident.ID)
	if err != nil {
		return repoErr(err, "maintenance request")
	}
	if err := s.maint.Delete(ctx, m.ID); err != nil {
		return err
	}
	log.Infow("maintenance request deleted", "maintenanceId", id, "landlordId", ident.ID)
	return nil
}

func (s *MaintenanceService) UploadImage(ctx context.Context, ident *model.Identity, id uint64, fh *multipart.FileHeader) (*model.Maintenance, error) {
	m, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	url, err := uploadImage(ctx, s.store, fmt.Sprintf("maintenance/%d", m.ID), fh)
	if err != nil {
		return nil, err
	}
	if err := s.maint.UpdateImage(ctx, m.ID, url); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *MaintenanceService) Messages(ctx context.Context, ident *model.Identity, id uint64) ([]model.MaintenanceMessage, error) {
	m, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	return s.maint.ListMessages(ctx, m.ID)
}

func (s *MaintenanceService) PostMessage(ctx context.Context, ident *model.Identity, id uint64, req *model.MaintenanceMessageReq) (*model.MaintenanceMessage, error) {
	m, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	sender := ident.ID
	msg := &model.MaintenanceMessage{
		MaintenanceID: m.ID,
		SenderID:      &sender,
		Message:       strings.TrimSpace(req.Message),
	}
	if msg.Message == "" {
		return nil, http.NewValidationError("message", "this field is required")
	}
	if err := s.maint.AddMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *MaintenanceService) reload(ctx context.Context, id uint64) (*model.Maintenance, error) {
	m, err := s.maint.Get(ctx, id)
	return m, repoErr(err, "maintenance request")
}
