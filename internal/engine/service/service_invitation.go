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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/pkg/notify"
	notifytpl "github.com/go-arcade/edo/internal/pkg/notify/template"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/id"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/statemachine"
)

const (
	DefaultInvitationTTL = 7 * 24 * time.Hour
	invitationCodeBytes  = 32
)

var (
	errInvitationExpired    = http.NewConflict("invitation has expired")
	errInvitationNotPending = http.NewConflict("invitation is not pending")

	// errAcceptLost marks a lost compare-and-set inside the accept transaction
	errAcceptLost = errors.New("invitation left pending concurrently")
)

// InvitationOptions carries the settings read from [invitation] and [notify].
type InvitationOptions struct {
	TTL         time.Duration
	FrontendURL string
}

type InvitationService struct {
	publisher
	db          database.IDatabase
	access      *AccessService
	tenants     *TenantService
	invitations repo.IInvitationRepository
	users       repo.IUserRepository
	sender      notify.Sender
	engine      *notifytpl.TemplateEngine
	opts        InvitationOptions
	now         func() time.Time
}

func NewInvitationService(
	db database.IDatabase,
	access *AccessService,
	tenants *TenantService,
	repos *repo.Repositories,
	sender notify.Sender,
	pub publisher,
	opts InvitationOptions,
) *InvitationService {
	if opts.TTL <= 0 {
		opts.TTL = DefaultInvitationTTL
	}
	return &InvitationService{
		publisher:   pub,
		db:          db,
		access:      access,
		tenants:     tenants,
		invitations: repos.Invitation,
		users:       repos.User,
		sender:      sender,
		engine:      notifytpl.NewTemplateEngine(),
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create issues an invitation for a vacant unit of the landlord and mails the
// invitee. A failed notification leaves the invitation in place.
func (s *InvitationService) Create(ctx context.Context, ident *model.Identity, req *model.CreateInvitationReq) (*model.CreateInvitationResp, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	unit, err := s.access.OwnUnit(ctx, ident.ID, req.UnitID)
	if err != nil {
		return nil, err
	}
	if unit.Status != model.UnitVacant || unit.Tenant != nil {
		return nil, http.NewConflict("unit is not vacant")
	}

	code, err := id.SecureToken(invitationCodeBytes)
	if err != nil {
		return nil, err
	}
	inv := &model.TenantInvitation{
		LandlordID:     ident.ID,
		UnitID:         unit.ID,
		Email:          model.NormalizeEmail(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		InvitationCode: code,
		Message:        req.Message,
		Status:         statemachine.InvitationPending,
		ExpiresAt:      s.now().Add(s.opts.TTL),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, repoErr(err, "invitation")
	}
	log.Infow("invitation created", "invitationId", inv.ID, "unitId", unit.ID, "landlordId", ident.ID)
	s.publish(StatusEvent{Name: EventInvitationCreated, Aggregate: "invitation", ID: inv.ID, To: string(inv.Status)})

	resp := &model.CreateInvitationResp{Invitation: inv, EmailSent: true}
	if err := s.notify(ctx, ident, unit, inv); err != nil {
		log.Warnw("invitation email not sent", "invitationId", inv.ID, "error", err)
		resp.EmailSent = false
		resp.Warning = "invitation created but the email could not be sent: " + err.Error()
	}
	return resp, nil
}

func (s *InvitationService) notify(ctx context.Context, ident *model.Identity, unit *model.Unit, inv *model.TenantInvitation) error {
	if s.sender == nil {
		return notify.ErrNoSender
	}
	landlord, err := s.users.GetByID(ctx, ident.ID)
	if err != nil {
		return err
	}
	data := notifytpl.InvitationData{
		LandlordName:     landlord.FullName(),
		UnitId:           unit.UnitId,
		Message:          inv.Message,
		ExpiresAt:        inv.ExpiresAt.Format("2006-01-02 15:04 MST"),
		CreateAccountURL: s.acceptURL(inv.InvitationCode, model.InvitationActionCreateAccount),
		ApproveURL:       s.acceptURL(inv.InvitationCode, model.InvitationActionApprove),
	}
	if unit.Property != nil {
		data.PropertyName = unit.Property.Name
	}
	subject, body, err := s.engine.RenderTemplate(notifytpl.TenantInvitation, data)
	if err != nil {
		return err
	}
	return s.sender.Send(ctx, inv.Email, subject, body)
}

func (s *InvitationService) acceptURL(code, action string) string {
	return fmt.Sprintf("%s/accept-invitation/%s?action=%s", strings.TrimRight(s.opts.FrontendURL, "/"), code, action)
}

func (s *InvitationService) List(ctx context.Context, ident *model.Identity, q *model.InvitationQuery) (*http.PageResult[model.TenantInvitation], error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	if q.Status != "" && !statemachine.InvitationStatus(q.Status).IsValid() {
		return nil, http.NewValidationError("status", "must be one of: pending accepted expired cancelled")
	}
	list, total, err := s.invitations.List(ctx, ident.ID, q)
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, &q.Page), nil
}

func (s *InvitationService) Cancel(ctx context.Context, ident *model.Identity, invID uint64) (*model.TenantInvitation, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	inv, err := s.invitations.GetForLandlord(ctx, invID, ident.ID)
	if err != nil {
		return nil, repoErr(err, "invitation")
	}
	ok, err := s.invitations.Cancel(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvitationNotPending
	}
	s.publish(StatusEvent{Name: EventInvitationCancelled, Aggregate: "invitation", ID: inv.ID,
		From: string(statemachine.InvitationPending), To: string(statemachine.InvitationCancelled)})
	inv.Status = statemachine.InvitationCancelled
	return inv, nil
}

// GetByCode is the public lookup behind the invitation link.
func (s *InvitationService) GetByCode(ctx context.Context, code string) (*model.InvitationView, error) {
	inv, err := s.pending(ctx, code)
	if err != nil {
		return nil, err
	}
	return viewOf(inv), nil
}

// Accept runs the invitee's choice. create_account only echoes the
// invitation; approve turns it into a tenancy exactly once.
func (s *InvitationService) Accept(ctx context.Context, code string, req *model.AcceptInvitationReq) (*model.AcceptInvitationResp, error) {
	action := req.Action
	if action == "" {
		action = model.InvitationActionApprove
	}
	if action != model.InvitationActionApprove && action != model.InvitationActionCreateAccount {
		return nil, http.NewValidationError("action", "must be one of: approve create_account")
	}

	inv, err := s.pending(ctx, code)
	if err != nil {
		return nil, err
	}
	if action == model.InvitationActionCreateAccount {
		return &model.AcceptInvitationResp{
			Action:     action,
			Message:    "Proceed with account creation",
			Invitation: viewOf(inv),
		}, nil
	}

	start := model.Today()
	if req.StartDate != "" {
		if start, err = parseDate("startDate", req.StartDate); err != nil {
			return nil, err
		}
	}
	end, err := parseOptionalDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var (
		t    *model.Tenant
		user *model.User
	)
	err = s.db.Transaction(ctx, func(ctx context.Context) error {
		ok, err := s.invitations.MarkAccepted(ctx, inv.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return errAcceptLost
		}
		phone := firstNonEmpty(req.Phone, inv.Phone)
		user, err = s.tenants.findOrCreateUser(ctx, inv.Email, req.FirstName, req.LastName, phone, false)
		if err != nil {
			return err
		}
		t = &model.Tenant{
			UserID:                       user.ID,
			UnitID:                       inv.UnitID,
			FirstName:                    firstNonEmpty(strings.TrimSpace(req.FirstName), user.FirstName),
			LastName:                     firstNonEmpty(strings.TrimSpace(req.LastName), user.LastName),
			Email:                        inv.Email,
			Phone:                        firstNonEmpty(phone, user.Phone),
			LeaseType:                    leaseTypeOr(req.LeaseType),
			StartDate:                    start,
			EndDate:                      end,
			EmergencyContactName:         req.EmergencyContactName,
			EmergencyContactPhone:        req.EmergencyContactPhone,
			EmergencyContactRelationship: req.EmergencyContactRelationship,
		}
		return s.tenants.occupy(ctx, t)
	})
	if errors.Is(err, errAcceptLost) {
		return nil, s.explainLost(ctx, code, now)
	}
	if err != nil {
		return nil, err
	}

	s.access.Invalidate(ctx, user.UserId)
	log.Infow("invitation accepted", "invitationId", inv.ID, "tenantId", t.ID, "unitId", t.UnitID)
	s.publish(StatusEvent{Name: EventInvitationAccepted, Aggregate: "invitation", ID: inv.ID,
		From: string(statemachine.InvitationPending), To: string(statemachine.InvitationAccepted)})

	return &model.AcceptInvitationResp{
		Action:  action,
		Message: "Invitation accepted",
		Tenant:  t,
	}, nil
}

// pending loads the invitation behind code and makes sure it can still be used.
// A pending invitation past its deadline is flipped to expired on the way out.
func (s *InvitationService) pending(ctx context.Context, code string) (*model.TenantInvitation, error) {
	inv, err := s.invitations.GetByCode(ctx, code)
	if err != nil {
		return nil, repoErr(err, "invitation")
	}
	now := s.now()
	switch {
	case inv.Status == statemachine.InvitationPending && inv.IsExpired(now):
		s.expire(ctx, inv, now)
		return nil, errInvitationExpired
	case inv.Status == statemachine.InvitationExpired:
		return nil, errInvitationExpired
	case inv.Status != statemachine.InvitationPending:
		return nil, errInvitationNotPending
	}
	return inv, nil
}

// explainLost re-reads an invitation whose accept CAS failed. A row that is
// still pending can only have failed on the deadline.
func (s *InvitationService) explainLost(ctx context.Context, code string, now time.Time) error {
	cur, err := s.invitations.GetByCode(ctx, code)
	if err != nil {
		return repoErr(err, "invitation")
	}
	switch cur.Status {
	case statemachine.InvitationPending:
		s.expire(ctx, cur, now)
		return errInvitationExpired
	case statemachine.InvitationExpired:
		return errInvitationExpired
	}
	return errInvitationNotPending
}

func (s *InvitationService) expire(ctx context.Context, inv *model.TenantInvitation, now time.Time) {
	ok, err := s.invitations.MarkExpired(ctx, inv.ID, now)
	if err != nil {
		log.Errorw("expire invitation failed", "invitationId", inv.ID, "error", err)
		return
	}
	if ok {
		log.Infow("invitation expired", "invitationId", inv.ID)
		s.publish(StatusEvent{Name: EventInvitationExpired, Aggregate: "invitation", ID: inv.ID,
			From: string(statemachine.InvitationPending), To: string(statemachine.InvitationExpired)})
	}
}

func viewOf(inv *model.TenantInvitation) *model.InvitationView {
	v := &model.InvitationView{
		ID:        inv.ID,
		Email:     inv.Email,
		Phone:     inv.Phone,
		Message:   inv.Message,
		Status:    inv.Status,
		ExpiresAt: inv.ExpiresAt,
	}
	if inv.Unit != nil {
		v.Unit = inv.Unit.Summary()
		if inv.Unit.Property != nil {
			v.Property = inv.Unit.Property.Summary()
		}
	}
	if inv.Landlord != nil {
		v.Landlord = contactOf(inv.Landlord)
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
