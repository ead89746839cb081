package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/http"
	sm "github.com/go-arcade/edo/pkg/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: recipient, subject: subject, body: body})
	return nil
}

type eventLog struct {
	mu    sync.Mutex
	names []string
}

func (l *eventLog) Handle(e event.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, e.EventName())
}

func (l *eventLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, v := range l.names {
		if v == name {
			n++
		}
	}
	return n
}

type harness struct {
	db     database.IDatabase
	svc    *Services
	repos  *repo.Repositories
	sender *fakeSender
	events *eventLog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb, err := database.NewDatabase(database.Database{
		Type:         database.TypeSQLite,
		MaxOpenConns: 1,
		SQLite: database.SQLiteConfig{
			Path: fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(gdb) })
	require.NoError(t, database.AutoMigrate(gdb))

	db := database.NewGormDB(gdb)
	repos := repo.NewRepositories(db)
	bus := event.NewEventBus()
	events := &eventLog{}
	bus.RegisterHandler(event.Wildcard, events)
	sender := &fakeSender{}

	auth := http.Auth{SecretKey: "test-secret", AccessExpire: time.Hour, RefreshExpire: 24 * time.Hour}
	svc := NewServices(db, nil, repos, bus, sender, nil, auth, InvitationOptions{FrontendURL: "https://edo.test/"})
	return &harness{db: db, svc: svc, repos: repos, sender: sender, events: events}
}

func (h *harness) user(t *testing.T, email string, roles ...model.RoleName) (*model.User, *model.Identity) {
	t.Helper()
	u := model.NewUser(email, "First", "Last", "")
	if len(roles) > 0 {
		u.Roles = roles
	}
	require.NoError(t, h.repos.User.Create(context.Background(), u))
	return u, h.ident(t, u)
}

func (h *harness) ident(t *testing.T, u *model.User) *model.Identity {
	t.Helper()
	ident, err := h.svc.Access.Identity(context.Background(), u.UserId)
	require.NoError(t, err)
	return ident
}

// portfolio creates one property with a vacant unit U101 for landlord.
func (h *harness) portfolio(t *testing.T, landlord *model.Identity) (*model.Property, *model.Unit) {
	t.Helper()
	ctx := context.Background()
	p, err := h.svc.Property.Create(ctx, landlord, &model.PropertyReq{
		Name: "Palm Court", Type: "Apartment", Street: "1 Marina", City: "Lagos", State: "LA", ZipCode: "100001",
	})
	require.NoError(t, err)
	u, err := h.svc.Unit.Create(ctx, landlord, &model.CreateUnitReq{PropertyID: p.ID, UnitId: "U101", RentAmount: 1000})
	require.NoError(t, err)
	require.Equal(t, model.UnitVacant, u.Status)
	return p, u
}

func (h *harness) unitStatus(t *testing.T, id uint64) model.UnitStatus {
	t.Helper()
	u, err := h.repos.Unit.Get(context.Background(), id)
	require.NoError(t, err)
	return u.Status
}

func assertKind(t *testing.T, err error, kind *http.Response) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, http.IsKind(err, kind), "expected %s, got %v", kind.Msg, err)
}

func TestAccess_ExclusiveRoleCardinality(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u, _ := h.user(t, "someone@example.com")

	for _, name := range []model.RoleName{model.RoleHost, model.RoleLandlord, model.RoleTenant, model.RoleAdmin} {
		require.NoError(t, h.svc.Access.AssignExclusiveRole(ctx, u.ID, name))
		got, err := h.repos.User.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []model.RoleName{name}, got.ExclusiveRoles())
	}

	err := h.svc.Access.AssignExclusiveRole(ctx, u.ID, model.RoleName("auditor"))
	assertKind(t, err, http.ValidationFailed)
}

func TestAccess_RelinquishFallsBackToRegular(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u, _ := h.user(t, "host@example.com", model.RoleHost)

	_, err := h.svc.Access.RelinquishRole(ctx, u.ID, "landlord")
	assertKind(t, err, http.ValidationFailed)

	_, err = h.svc.Access.RelinquishRole(ctx, u.ID, "admin")
	assertKind(t, err, http.ValidationFailed)

	roles, err := h.svc.Access.RelinquishRole(ctx, u.ID, "host")
	require.NoError(t, err)
	assert.Equal(t, []string{"regular"}, roles)

	got, err := h.repos.User.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.RoleName{model.RoleRegular}, got.ExclusiveRoles())
}

func TestAccess_IdentityInvalidatedAfterCommit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	fc := cache.NewFastCache(1 << 20)
	access := NewAccessService(h.db, fc, h.repos)
	u, _ := h.user(t, "late@example.com")

	stale, err := access.Identity(ctx, u.UserId)
	require.NoError(t, err)
	require.False(t, stale.HasRole(model.RoleTenant))

	err = h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := access.AssignExclusiveRole(ctx, u.ID, model.RoleTenant); err != nil {
			return err
		}
		// another request caching the pre-commit identity
		data, err := sonic.MarshalString(stale)
		if err != nil {
			return err
		}
		return fc.Set(ctx, consts.UserIdentityKey+u.UserId, data, time.Minute).Err()
	})
	require.NoError(t, err)

	fresh, err := access.Identity(ctx, u.UserId)
	require.NoError(t, err)
	assert.True(t, fresh.HasRole(model.RoleTenant))
	assert.False(t, fresh.HasRole(model.RoleRegular))
}

func TestAccess_EnsureRole(t *testing.T) {
	h := newHarness(t)
	_, tenant := h.user(t, "t@example.com", model.RoleTenant)

	assertKind(t, h.svc.Access.EnsureRole(nil, model.RoleLandlord), http.Unauthorized)
	assertKind(t, h.svc.Access.EnsureRole(tenant, model.RoleLandlord), http.Forbidden)
	assert.NoError(t, h.svc.Access.EnsureRole(tenant, model.RoleLandlord, model.RoleTenant))

	_, err := h.svc.Access.Identity(context.Background(), "missing")
	assertKind(t, err, http.Unauthorized)
}

func TestTenant_CreateOccupiesAndDeleteFrees(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	req := &model.CreateTenantReq{
		Email: "Tenant@Example.com", FirstName: "Ten", LastName: "Ant", Phone: "+234 800 000",
		UnitID: unit.ID, StartDate: "2026-01-01",
	}
	tn, err := h.svc.Tenant.Create(ctx, landlord, req)
	require.NoError(t, err)
	assert.Equal(t, "tenant@example.com", tn.Email)
	assert.Equal(t, model.UnitOccupied, h.unitStatus(t, unit.ID))

	user, err := h.repos.User.GetByEmail(ctx, "tenant@example.com")
	require.NoError(t, err)
	assert.Equal(t, []model.RoleName{model.RoleTenant}, user.ExclusiveRoles())

	req.Email = "second@example.com"
	_, err = h.svc.Tenant.Create(ctx, landlord, req)
	assertKind(t, err, http.Conflict)
	_, err = h.repos.User.GetByEmail(ctx, "second@example.com")
	assert.True(t, isNotFound(err), "failed create must not leave a user behind")

	require.NoError(t, h.svc.Tenant.Delete(ctx, landlord, tn.ID))
	assert.Equal(t, model.UnitVacant, h.unitStatus(t, unit.ID))

	_, err = h.svc.Tenant.Create(ctx, landlord, req)
	require.NoError(t, err)
	assert.Equal(t, model.UnitOccupied, h.unitStatus(t, unit.ID))
}

func TestTenant_CreateTargetsUnitByIdAcrossProperties(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, first := h.portfolio(t, landlord)
	second, err := h.svc.Property.Create(ctx, landlord, &model.PropertyReq{Name: "Harbour View", Type: "House"})
	require.NoError(t, err)
	twin, err := h.svc.Unit.Create(ctx, landlord, &model.CreateUnitReq{PropertyID: second.ID, UnitId: "U101", RentAmount: 800})
	require.NoError(t, err)

	_, err = h.svc.Tenant.Create(ctx, landlord, &model.CreateTenantReq{
		Email: "a@example.com", FirstName: "A", LastName: "A", Phone: "1234567", UnitID: first.ID, StartDate: "2026-01-01",
	})
	require.NoError(t, err)

	tn, err := h.svc.Tenant.Create(ctx, landlord, &model.CreateTenantReq{
		Email: "b@example.com", FirstName: "B", LastName: "B", Phone: "1234567", UnitID: twin.ID, StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, twin.ID, tn.UnitID)
	assert.Equal(t, model.UnitOccupied, h.unitStatus(t, first.ID))
	assert.Equal(t, model.UnitOccupied, h.unitStatus(t, twin.ID))

	_, err = h.svc.Tenant.Create(ctx, landlord, &model.CreateTenantReq{
		Email: "c@example.com", FirstName: "C", LastName: "C", Phone: "1234567", UnitID: twin.ID, StartDate: "2026-01-01",
	})
	assertKind(t, err, http.Conflict)
}

func TestTenant_OtherLandlordIsForbiddenOrNotFound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, owner := h.user(t, "owner@example.com", model.RoleLandlord)
	_, other := h.user(t, "other@example.com", model.RoleLandlord)
	_, tenantIdent := h.user(t, "t@example.com", model.RoleTenant)
	_, unit := h.portfolio(t, owner)

	tn, err := h.svc.Tenant.Create(ctx, owner, &model.CreateTenantReq{
		Email: "x@example.com", FirstName: "X", LastName: "Y", Phone: "1234567", UnitID: unit.ID, StartDate: "2026-01-01",
	})
	require.NoError(t, err)

	_, err = h.svc.Tenant.Get(ctx, other, tn.ID)
	assertKind(t, err, http.NotFound)
	assertKind(t, h.svc.Tenant.Delete(ctx, other, tn.ID), http.NotFound)
	_, err = h.svc.Tenant.Create(ctx, tenantIdent, &model.CreateTenantReq{UnitID: unit.ID, StartDate: "2026-01-01"})
	assertKind(t, err, http.Forbidden)
}

func TestInvitation_LandlordTenantScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	resp, err := h.svc.Invitation.Create(ctx, landlord, &model.CreateInvitationReq{
		UnitID: unit.ID, Email: "tenant@x.com", Message: "Welcome home",
	})
	require.NoError(t, err)
	inv := resp.Invitation
	assert.True(t, resp.EmailSent)
	assert.Equal(t, sm.InvitationPending, inv.Status)
	assert.GreaterOrEqual(t, len(inv.InvitationCode), 43)
	assert.WithinDuration(t, time.Now().UTC().Add(DefaultInvitationTTL), inv.ExpiresAt, time.Minute)

	require.Len(t, h.sender.sent, 1)
	mail := h.sender.sent[0]
	assert.Equal(t, "tenant@x.com", mail.to)
	assert.Contains(t, mail.body, "https://edo.test/accept-invitation/"+inv.InvitationCode+"?action=approve")
	assert.Contains(t, mail.body, "?action=create_account")
	assert.Contains(t, mail.body, "Welcome home")

	view, err := h.svc.Invitation.GetByCode(ctx, inv.InvitationCode)
	require.NoError(t, err)
	assert.Equal(t, "U101", view.Unit.UnitId)

	echo, err := h.svc.Invitation.Accept(ctx, inv.InvitationCode, &model.AcceptInvitationReq{Action: model.InvitationActionCreateAccount})
	require.NoError(t, err)
	assert.Nil(t, echo.Tenant)
	assert.Equal(t, model.UnitVacant, h.unitStatus(t, unit.ID))

	accepted, err := h.svc.Invitation.Accept(ctx, inv.InvitationCode, &model.AcceptInvitationReq{Action: model.InvitationActionApprove})
	require.NoError(t, err)
	require.NotNil(t, accepted.Tenant)
	assert.Equal(t, unit.ID, accepted.Tenant.UnitID)
	assert.Equal(t, model.UnitOccupied, h.unitStatus(t, unit.ID))

	stored, err := h.repos.Invitation.GetByCode(ctx, inv.InvitationCode)
	require.NoError(t, err)
	assert.Equal(t, sm.InvitationAccepted, stored.Status)

	_, err = h.svc.Invitation.Accept(ctx, inv.InvitationCode, &model.AcceptInvitationReq{Action: model.InvitationActionApprove})
	assertKind(t, err, http.Conflict)

	tenants, err := h.svc.Tenant.List(ctx, landlord, &model.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, tenants.Total)
	assert.Equal(t, 1, h.events.count(EventInvitationAccepted))
}

func TestInvitation_CreateRequiresVacantOwnedUnit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, other := h.user(t, "other@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	_, err := h.svc.Invitation.Create(ctx, other, &model.CreateInvitationReq{UnitID: unit.ID, Email: "a@x.com"})
	assertKind(t, err, http.NotFound)

	_, err = h.svc.Tenant.Create(ctx, landlord, &model.CreateTenantReq{
		Email: "t@x.com", FirstName: "T", LastName: "X", Phone: "1234567", UnitID: unit.ID, StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	_, err = h.svc.Invitation.Create(ctx, landlord, &model.CreateInvitationReq{UnitID: unit.ID, Email: "a@x.com"})
	assertKind(t, err, http.Conflict)
}

func TestInvitation_SendFailureIsSoft(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.sender.err = errors.New("smtp down")
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	resp, err := h.svc.Invitation.Create(ctx, landlord, &model.CreateInvitationReq{UnitID: unit.ID, Email: "a@x.com"})
	require.NoError(t, err)
	assert.False(t, resp.EmailSent)
	assert.Contains(t, resp.Warning, "smtp down")

	_, err = h.repos.Invitation.GetByCode(ctx, resp.Invitation.InvitationCode)
	assert.NoError(t, err)
}

func TestInvitation_ExpiredFetchThenAccept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	resp, err := h.svc.Invitation.Create(ctx, landlord, &model.CreateInvitationReq{UnitID: unit.ID, Email: "late@x.com"})
	require.NoError(t, err)
	code := resp.Invitation.InvitationCode

	later := time.Now().UTC().Add(DefaultInvitationTTL + time.Hour)
	h.svc.Invitation.now = func() time.Time { return later }

	_, err = h.svc.Invitation.GetByCode(ctx, code)
	assertKind(t, err, http.Conflict)

	stored, err := h.repos.Invitation.GetByCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, sm.InvitationExpired, stored.Status)
	assert.Equal(t, 1, h.events.count(EventInvitationExpired))

	_, err = h.svc.Invitation.Accept(ctx, code, &model.AcceptInvitationReq{})
	assertKind(t, err, http.Conflict)
	assert.Equal(t, model.UnitVacant, h.unitStatus(t, unit.ID))
}

func TestInvitation_ConcurrentAcceptOnlyOneWins(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	resp, err := h.svc.Invitation.Create(ctx, landlord, &model.CreateInvitationReq{UnitID: unit.ID, Email: "race@x.com"})
	require.NoError(t, err)
	code := resp.Invitation.InvitationCode

	const callers = 2
	var (
		wg   sync.WaitGroup
		errs = make([]error, callers)
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.svc.Invitation.Accept(ctx, code, &model.AcceptInvitationReq{Action: model.InvitationActionApprove})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case http.IsKind(err, http.Conflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	exists, err := h.repos.Tenant.ExistsForUnit(ctx, unit.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	tenants, err := h.svc.Tenant.List(ctx, landlord, &model.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, tenants.Total)
}

func TestInvitation_Cancel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, landlord := h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit := h.portfolio(t, landlord)

	resp, err := h.svc.Invitation.Create(ctx, landlord, &model.CreateInvitationReq{UnitID: unit.ID, Email: "c@x.com"})
	require.NoError(t, err)

	inv, err := h.svc.Invitation.Cancel(ctx, landlord, resp.Invitation.ID)
	require.NoError(t, err)
	assert.Equal(t, sm.InvitationCancelled, inv.Status)

	_, err = h.svc.Invitation.Cancel(ctx, landlord, resp.Invitation.ID)
	assertKind(t, err, http.Conflict)
	_, err = h.svc.Invitation.Accept(ctx, resp.Invitation.InvitationCode, &model.AcceptInvitationReq{})
	assertKind(t, err, http.Conflict)
}

// occupied sets up a landlord with unit U101 rented to a tenant user.
func (h *harness) occupied(t *testing.T) (landlord, tenant *model.Identity, unit *model.Unit) {
	t.Helper()
	ctx := context.Background()
	_, landlord = h.user(t, "landlord@example.com", model.RoleLandlord)
	_, unit = h.portfolio(t, landlord)
	_, err := h.svc.Tenant.Create(ctx, landlord, &model.CreateTenantReq{
		Email: "tenant@example.com", FirstName: "Ten", LastName: "Ant", Phone: "1234567", UnitID: unit.ID, StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	u, err := h.repos.User.GetByEmail(ctx, "tenant@example.com")
	require.NoError(t, err)
	return landlord, h.ident(t, u), unit
}

func TestMaintenance_AssignCompleteThenClosed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	landlord, _, unit := h.occupied(t)
	worker, _ := h.user(t, "fixer@example.com")

	m, err := h.svc.Maintenance.Create(ctx, landlord, &model.CreateMaintenanceReq{
		UnitID: &unit.ID, Subject: "Leaking tap", Description: "Kitchen tap drips",
	})
	require.NoError(t, err)
	assert.Equal(t, sm.MaintenancePending, m.Status)
	assert.Equal(t, sm.PriorityMedium, m.Priority)
	require.NotNil(t, m.TenantID)

	badPhone := "call me"
	_, err = h.svc.Maintenance.Assign(ctx, landlord, m.ID, &model.AssignMaintenanceReq{
		AssignedTo: &worker.UserId, AssigneePhone: &badPhone,
	})
	assertKind(t, err, http.ValidationFailed)

	m, err = h.svc.Maintenance.Assign(ctx, landlord, m.ID, &model.AssignMaintenanceReq{AssignedTo: &worker.UserId})
	require.NoError(t, err)
	assert.Equal(t, sm.MaintenanceInProgress, m.Status)
	require.NotNil(t, m.AssignedTo)
	assert.Equal(t, worker.ID, *m.AssignedTo)

	m, err = h.svc.Maintenance.UpdateStatus(ctx, landlord, m.ID, string(sm.MaintenanceCompleted))
	require.NoError(t, err)
	assert.Equal(t, sm.MaintenanceCompleted, m.Status)
	require.NotNil(t, m.CompletedDate)
	assert.Equal(t, time.Time(model.Today()).Format(http.DateLayout), time.Time(*m.CompletedDate).Format(http.DateLayout))

	name := "Plumber Joe"
	_, err = h.svc.Maintenance.Assign(ctx, landlord, m.ID, &model.AssignMaintenanceReq{AssigneeName: &name})
	assertKind(t, err, http.Conflict)

	_, err = h.svc.Maintenance.UpdateStatus(ctx, landlord, m.ID, string(sm.MaintenancePending))
	assertKind(t, err, http.Conflict)

	assert.Equal(t, 1, h.events.count(EventMaintenanceAssigned))
	assert.Equal(t, 1, h.events.count(EventMaintenanceStatusChanged))
}

func TestMaintenance_FreeTextAssigneeViaUpdate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	landlord, _, unit := h.occupied(t)

	m, err := h.svc.Maintenance.Create(ctx, landlord, &model.CreateMaintenanceReq{
		UnitID: &unit.ID, Subject: "Broken door", Description: "Hinge", Priority: "high",
	})
	require.NoError(t, err)

	name, phone, subject := "Joe", "+1 555-0100", "Broken front door"
	_, err = h.svc.Maintenance.Update(ctx, landlord, m.ID, &model.UpdateMaintenanceReq{
		Subject:              &subject,
		AssignMaintenanceReq: model.AssignMaintenanceReq{AssigneePhone: &phone},
	})
	assertKind(t, err, http.ValidationFailed)
	_, err = h.svc.Maintenance.Assign(ctx, landlord, m.ID, &model.AssignMaintenanceReq{AssigneePhone: &phone})
	assertKind(t, err, http.ValidationFailed)
	unchanged, err := h.svc.Maintenance.Get(ctx, landlord, m.ID)
	require.NoError(t, err)
	assert.Equal(t, sm.MaintenancePending, unchanged.Status)
	assert.Equal(t, "Broken door", unchanged.Subject)

	m, err = h.svc.Maintenance.Update(ctx, landlord, m.ID, &model.UpdateMaintenanceReq{
		Subject:              &subject,
		AssignMaintenanceReq: model.AssignMaintenanceReq{AssigneeName: &name, AssigneePhone: &phone},
	})
	require.NoError(t, err)
	assert.Equal(t, sm.MaintenanceInProgress, m.Status)
	assert.Equal(t, "Joe", m.AssigneeName)
	assert.Equal(t, subject, m.Subject)
}

func TestMaintenance_TenantTicketVisibility(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	landlord, tenant, unit := h.occupied(t)
	_, stranger := h.user(t, "stranger@example.com", model.RoleLandlord)
	_, regular := h.user(t, "regular@example.com")

	m, err := h.svc.Maintenance.Create(ctx, tenant, &model.CreateMaintenanceReq{
		Subject: "No hot water", Description: "Boiler off", Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, unit.ID, m.UnitID)
	assert.Equal(t, unit.PropertyID, m.PropertyID)
	assert.Equal(t, sm.PriorityHigh, m.Priority)
	require.NotNil(t, m.RequestedBy)
	assert.Equal(t, tenant.ID, *m.RequestedBy)

	mine, err := h.svc.Maintenance.ListForTenant(ctx, tenant, &model.MaintenanceQuery{})
	require.NoError(t, err)
	require.Len(t, mine.List, 1)
	assert.Equal(t, m.ID, mine.List[0].ID)

	theirs, err := h.svc.Maintenance.ListForLandlord(ctx, landlord, &model.MaintenanceQuery{})
	require.NoError(t, err)
	require.Len(t, theirs.List, 1)

	none, err := h.svc.Maintenance.List(ctx, stranger, &model.MaintenanceQuery{})
	require.NoError(t, err)
	assert.Empty(t, none.List)

	empty, err := h.svc.Maintenance.List(ctx, regular, &model.MaintenanceQuery{})
	require.NoError(t, err)
	assert.Empty(t, empty.List)

	_, admin := h.user(t, "admin@example.com", model.RoleAdmin)
	all, err := h.svc.Maintenance.List(ctx, admin, &model.MaintenanceQuery{})
	require.NoError(t, err)
	require.Len(t, all.List, 1)
	seen, err := h.svc.Maintenance.Get(ctx, admin, all.List[0].ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, seen.ID)

	_, err = h.svc.Maintenance.Get(ctx, stranger, m.ID)
	assertKind(t, err, http.NotFound)

	_, err = h.svc.Maintenance.UpdateStatus(ctx, tenant, m.ID, string(sm.MaintenanceCompleted))
	assertKind(t, err, http.Forbidden)

	msg, err := h.svc.Maintenance.PostMessage(ctx, tenant, m.ID, &model.MaintenanceMessageReq{Message: "Still cold"})
	require.NoError(t, err)
	thread, err := h.svc.Maintenance.Messages(ctx, landlord, m.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, msg.ID, thread[0].ID)
	_, err = h.svc.Maintenance.Messages(ctx, stranger, m.ID)
	assertKind(t, err, http.NotFound)

	m, err = h.svc.Maintenance.UpdateStatus(ctx, tenant, m.ID, string(sm.MaintenanceCancelled))
	require.NoError(t, err)
	assert.Equal(t, sm.MaintenanceCancelled, m.Status)
}

func TestMaintenance_TenantWithoutTenancy(t *testing.T) {
	h := newHarness(t)
	_, tenant := h.user(t, "t@example.com", model.RoleTenant)
	_, err := h.svc.Maintenance.Create(context.Background(), tenant, &model.CreateMaintenanceReq{Subject: "x", Description: "y"})
	assertKind(t, err, http.ValidationFailed)
}
