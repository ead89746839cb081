package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := database.NewDatabase(database.Database{
		Type:         database.TypeSQLite,
		MaxOpenConns: 1,
		SQLite: database.SQLiteConfig{
			Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))
	return NewRepositories(database.NewGormDB(db))
}

type fixture struct {
	landlord *model.User
	property *model.Property
	unit     *model.Unit
}

func seedLandlord(t *testing.T, r *Repositories, email string) *fixture {
	t.Helper()
	ctx := context.Background()

	u := model.NewUser(email, "Lan", "Lord", "")
	u.Roles = []model.RoleName{model.RoleLandlord}
	require.NoError(t, r.User.Create(ctx, u))

	p := &model.Property{LandlordID: u.ID, Name: "P", Type: model.PropertyApartment, City: "Lagos"}
	require.NoError(t, r.Property.Create(ctx, p))

	unit := &model.Unit{PropertyID: p.ID, UnitId: "U101", RentAmount: 1000, Bedrooms: 1, Bathrooms: 1, Status: model.UnitVacant}
	require.NoError(t, r.Unit.Create(ctx, unit))
	return &fixture{landlord: u, property: p, unit: unit}
}

func seedTenant(t *testing.T, r *Repositories, unitID uint64, email string) (*model.User, *model.Tenant) {
	t.Helper()
	ctx := context.Background()
	u := model.NewUser(email, "Ten", "Ant", "")
	u.Roles = []model.RoleName{model.RoleTenant}
	require.NoError(t, r.User.Create(ctx, u))
	tn := &model.Tenant{UserID: u.ID, UnitID: unitID, Email: u.Email, FirstName: "Ten", LastName: "Ant", StartDate: model.Today()}
	require.NoError(t, r.Tenant.Create(ctx, tn))
	return u, tn
}

func TestUserRepo_CreateBindsRoles(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	u := model.NewUser("Alice@Example.com", "Alice", "A", "")
	require.NoError(t, r.User.Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := r.User.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, []model.RoleName{model.RoleRegular}, got.Roles)

	exists, err := r.User.ExistsEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	dup := model.NewUser("alice@example.com", "B", "B", "")
	assert.ErrorIs(t, r.User.Create(ctx, dup), gorm.ErrDuplicatedKey)
}

func TestUserRepo_SearchByEmailEscapesWildcards(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	for _, email := range []string{"ab_c@x.com", "abxc@x.com", "zz@y.com"} {
		require.NoError(t, r.User.Create(ctx, model.NewUser(email, "f", "l", "")))
	}

	users, err := r.User.SearchByEmail(ctx, "b_c", 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ab_c@x.com", users[0].Email)

	users, err = r.User.SearchByEmail(ctx, "@x.com", 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRoleRepo_UnbindAndOrphans(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	u := model.NewUser("r@x.com", "R", "R", "")
	require.NoError(t, r.User.Create(ctx, u))

	role, err := r.Role.GetOrCreate(ctx, "auditor")
	require.NoError(t, err)
	again, err := r.Role.GetOrCreate(ctx, "auditor")
	require.NoError(t, err)
	assert.Equal(t, role.ID, again.ID)
	require.NoError(t, r.Role.Bind(ctx, u.ID, role.ID))
	require.NoError(t, r.Role.Bind(ctx, u.ID, role.ID))

	names, err := r.Role.RoleNames(ctx, u.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.RoleName{"auditor", model.RoleRegular}, names)

	n, err := r.Role.UnbindNames(ctx, u.ID, []model.RoleName{model.RoleRegular, model.RoleHost})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// drop the role row behind the binding's back
	require.NoError(t, r.DB().Database().Delete(&model.Role{}, role.ID).Error)
	n, err = r.Role.DeleteOrphanBindings(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	names, err = r.Role.RoleNames(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestUnitRepo_MarkOccupiedOnce(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	f := seedLandlord(t, r, "l@x.com")

	ok, err := r.Unit.MarkOccupied(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Unit.MarkOccupied(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := r.Unit.CountForLandlord(ctx, f.landlord.ID, model.UnitOccupied)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, r.Unit.MarkVacant(ctx, f.unit.ID))
	got, err := r.Unit.Get(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UnitVacant, got.Status)
}

func TestUnitRepo_ScopedToLandlord(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	a := seedLandlord(t, r, "a@x.com")
	b := seedLandlord(t, r, "b@x.com")

	_, err := r.Unit.GetForLandlord(ctx, a.unit.ID, b.landlord.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := r.Unit.GetForLandlord(ctx, a.unit.ID, a.landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, a.property.ID, got.Property.ID)

	list, total, err := r.Unit.List(ctx, b.landlord.ID, &UnitQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, b.unit.ID, list[0].ID)

	dup := &model.Unit{PropertyID: a.property.ID, UnitId: "U101", Status: model.UnitVacant}
	assert.ErrorIs(t, r.Unit.Create(ctx, dup), gorm.ErrDuplicatedKey)
}

func TestTenantRepo_UniqueUnitAndCascade(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	f := seedLandlord(t, r, "l@x.com")
	user, tenant := seedTenant(t, r, f.unit.ID, "t@x.com")

	second := &model.Tenant{UserID: user.ID, UnitID: f.unit.ID, StartDate: model.Today()}
	assert.ErrorIs(t, r.Tenant.Create(ctx, second), gorm.ErrDuplicatedKey)

	require.NoError(t, r.Payment.Create(ctx, &model.Payment{
		TenantID: tenant.ID, UnitID: f.unit.ID, Amount: 1000, PaymentDate: model.Today(), PaymentMethod: "cash",
	}))

	rentals, err := r.Tenant.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, f.landlord.ID, rentals[0].Unit.Property.Landlord.ID)

	// deleting the property removes units, tenants and payments
	require.NoError(t, r.Property.Delete(ctx, f.property.ID))
	exists, err := r.Tenant.ExistsForUnit(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, total, err := r.Payment.ListForTenantUser(ctx, user.ID, &model.PaymentQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInvitationRepo_Transitions(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	f := seedLandlord(t, r, "l@x.com")
	now := time.Now().UTC()

	inv := &model.TenantInvitation{
		LandlordID: f.landlord.ID, UnitID: f.unit.ID, Email: "t@x.com",
		InvitationCode: "code-1", Status: statemachine.InvitationPending, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, r.Invitation.Create(ctx, inv))

	ok, err := r.Invitation.MarkExpired(ctx, inv.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "not yet expired")

	ok, err = r.Invitation.MarkAccepted(ctx, inv.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Invitation.MarkAccepted(ctx, inv.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "accepted twice")

	ok, err = r.Invitation.Cancel(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	stale := &model.TenantInvitation{
		LandlordID: f.landlord.ID, UnitID: f.unit.ID, Email: "t@x.com",
		InvitationCode: "code-2", Status: statemachine.InvitationPending, ExpiresAt: now.Add(-time.Hour),
	}
	require.NoError(t, r.Invitation.Create(ctx, stale))
	ok, err = r.Invitation.MarkAccepted(ctx, stale.ID, now)
	require.NoError(t, err)
	assert.False(t, ok, "expired invitations cannot be accepted")
	ok, err = r.Invitation.MarkExpired(ctx, stale.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := r.Invitation.GetByCode(ctx, "code-2")
	require.NoError(t, err)
	assert.Equal(t, statemachine.InvitationExpired, got.Status)
	assert.Equal(t, f.property.ID, got.Unit.Property.ID)

	dup := &model.TenantInvitation{LandlordID: f.landlord.ID, UnitID: f.unit.ID, Email: "x@x.com", InvitationCode: "code-1", ExpiresAt: now}
	assert.ErrorIs(t, r.Invitation.Create(ctx, dup), gorm.ErrDuplicatedKey)
}

func TestMaintenanceRepo_AssignAndComplete(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	f := seedLandlord(t, r, "l@x.com")
	user, tenant := seedTenant(t, r, f.unit.ID, "t@x.com")

	m := &model.Maintenance{
		PropertyID: f.property.ID, UnitID: f.unit.ID, TenantID: &tenant.ID,
		Subject: "Leak", Description: "kitchen sink", Status: statemachine.MaintenancePending,
		Priority: statemachine.PriorityHigh, RequestedBy: &user.ID,
	}
	require.NoError(t, r.Maintenance.Create(ctx, m))

	ok, err := r.Maintenance.Assign(ctx, m.ID, Assignment{AssigneeName: "Bob", AssigneePhone: "+234 555 0101"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := r.Maintenance.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, statemachine.MaintenanceInProgress, got.Status)
	assert.Equal(t, "Bob", got.AssigneeName)

	ok, err = r.Maintenance.UpdateStatus(ctx, m.ID, statemachine.MaintenancePending, statemachine.MaintenanceCompleted)
	require.NoError(t, err)
	assert.False(t, ok, "stale from status")

	ok, err = r.Maintenance.UpdateStatus(ctx, m.ID, statemachine.MaintenanceInProgress, statemachine.MaintenanceCompleted)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = r.Maintenance.Get(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedDate)
	assert.Equal(t, time.Time(model.Today()).Format("2006-01-02"), time.Time(*got.CompletedDate).Format("2006-01-02"))

	ok, err = r.Maintenance.Assign(ctx, m.ID, Assignment{AssigneeName: "Carl"})
	require.NoError(t, err)
	assert.False(t, ok, "terminal ticket")

	require.NoError(t, r.Maintenance.AddMessage(ctx, &model.MaintenanceMessage{MaintenanceID: m.ID, SenderID: &user.ID, Message: "first"}))
	require.NoError(t, r.Maintenance.AddMessage(ctx, &model.MaintenanceMessage{MaintenanceID: m.ID, SenderID: &user.ID, Message: "second"}))
	msgs, err := r.Maintenance.ListMessages(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Message)
}

func TestMaintenanceRepo_Scoping(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	a := seedLandlord(t, r, "a@x.com")
	b := seedLandlord(t, r, "b@x.com")
	user, tenant := seedTenant(t, r, a.unit.ID, "t@x.com")

	m := &model.Maintenance{
		PropertyID: a.property.ID, UnitID: a.unit.ID, TenantID: &tenant.ID, Subject: "s", Description: "d",
		Status: statemachine.MaintenancePending, Priority: statemachine.PriorityHigh, RequestedBy: &user.ID,
	}
	require.NoError(t, r.Maintenance.Create(ctx, m))

	tests := []struct {
		name string
		list func() ([]model.Maintenance, int64, error)
		want int64
	}{
		{"owner landlord", func() ([]model.Maintenance, int64, error) {
			return r.Maintenance.ListForLandlord(ctx, a.landlord.ID, &model.MaintenanceQuery{Priority: "high"})
		}, 1},
		{"owner landlord filtered out", func() ([]model.Maintenance, int64, error) {
			return r.Maintenance.ListForLandlord(ctx, a.landlord.ID, &model.MaintenanceQuery{Status: "completed"})
		}, 0},
		{"unscoped", func() ([]model.Maintenance, int64, error) {
			return r.Maintenance.List(ctx, &model.MaintenanceQuery{Status: "pending"})
		}, 1},
		{"other landlord", func() ([]model.Maintenance, int64, error) {
			return r.Maintenance.ListForLandlord(ctx, b.landlord.ID, &model.MaintenanceQuery{})
		}, 0},
		{"requesting tenant", func() ([]model.Maintenance, int64, error) {
			return r.Maintenance.ListForTenantUser(ctx, user.ID, &model.MaintenanceQuery{})
		}, 1},
		{"unrelated user", func() ([]model.Maintenance, int64, error) {
			return r.Maintenance.ListForTenantUser(ctx, b.landlord.ID, &model.MaintenanceQuery{})
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := tt.list()
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}

	// deleting the requester keeps the ticket
	require.NoError(t, r.DB().Database().Delete(&model.User{}, user.ID).Error)
	got, err := r.Maintenance.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RequestedBy)
	assert.Nil(t, got.TenantID)
}

func TestChatRepo_HistoryAndRead(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	alice := model.NewUser("alice@x.com", "A", "A", "")
	bob := model.NewUser("bob@x.com", "B", "B", "")
	carol := model.NewUser("carol@x.com", "C", "C", "")
	for _, u := range []*model.User{alice, bob, carol} {
		require.NoError(t, r.User.Create(ctx, u))
	}

	var ids []uint64
	for i := range 5 {
		from, to := alice, bob
		if i%2 == 1 {
			from, to = bob, alice
		}
		msg := &model.ChatMessage{SenderID: &from.ID, RecipientID: &to.ID, Message: fmt.Sprintf("m%d", i)}
		require.NoError(t, r.Chat.Create(ctx, msg))
		ids = append(ids, msg.ID)
	}
	require.NoError(t, r.Chat.Create(ctx, &model.ChatMessage{SenderID: &carol.ID, RecipientID: &alice.ID, Message: "hi"}))

	list, err := r.Chat.History(ctx, &ChatHistoryQuery{UserID: alice.ID, PeerID: bob.ID, Limit: 3})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"m2", "m3", "m4"}, []string{list[0].Message, list[1].Message, list[2].Message})

	list, err = r.Chat.History(ctx, &ChatHistoryQuery{UserID: bob.ID, PeerID: alice.ID, BeforeID: ids[2], Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	unread, err := r.Chat.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	_, err = r.Chat.MarkRead(ctx, ids[1], bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "sender cannot mark read")

	msg, err := r.Chat.MarkRead(ctx, ids[1], alice.ID)
	require.NoError(t, err)
	assert.True(t, msg.IsRead)
	msg, err = r.Chat.MarkRead(ctx, ids[1], alice.ID)
	require.NoError(t, err)
	assert.True(t, msg.IsRead)

	peers, err := r.Chat.Peers(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{bob.ID, carol.ID}, peers)

	last, err := r.Chat.LastWith(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "m4", last.Message)
}

func TestNoticeRepo_TenantVisibility(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	a := seedLandlord(t, r, "a@x.com")
	b := seedLandlord(t, r, "b@x.com")
	user, tenant := seedTenant(t, r, a.unit.ID, "t@x.com")

	otherUnit := &model.Unit{PropertyID: a.property.ID, UnitId: "U102", Status: model.UnitVacant}
	require.NoError(t, r.Unit.Create(ctx, otherUnit))

	notices := []*model.Notice{
		{LandlordID: a.landlord.ID, NoticeType: "general", Title: "broadcast"},
		{LandlordID: a.landlord.ID, UnitID: &a.unit.ID, NoticeType: "general", Title: "my unit"},
		{LandlordID: a.landlord.ID, TenantID: &tenant.ID, NoticeType: "general", Title: "me"},
		{LandlordID: a.landlord.ID, UnitID: &otherUnit.ID, NoticeType: "general", Title: "other unit"},
		{LandlordID: b.landlord.ID, NoticeType: "general", Title: "other landlord"},
	}
	for _, n := range notices {
		n.Message = "m"
		n.DateSent = time.Now()
		n.EffectiveDate = model.Today()
		require.NoError(t, r.Notice.Create(ctx, n))
	}

	list, total, err := r.Notice.ListForTenantUser(ctx, user.ID, &model.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	titles := make([]string, 0, len(list))
	for _, n := range list {
		titles = append(titles, n.Title)
	}
	assert.ElementsMatch(t, []string{"broadcast", "my unit", "me"}, titles)

	_, err = r.Notice.GetForTenantUser(ctx, notices[3].ID, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, total, err = r.Notice.ListForLandlord(ctx, b.landlord.ID, &model.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestVacateRepo_RespondOnce(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	f := seedLandlord(t, r, "l@x.com")
	user, tenant := seedTenant(t, r, f.unit.ID, "t@x.com")

	v := &model.VacateRequest{
		TenantID: tenant.ID, UnitID: f.unit.ID, PropertyID: f.property.ID,
		MoveOutDate: model.Today(), Status: statemachine.VacatePending,
	}
	require.NoError(t, r.Vacate.Create(ctx, v))

	n, err := r.Vacate.CountPendingForLandlord(ctx, f.landlord.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := r.Vacate.Respond(ctx, v.ID, statemachine.VacateApproved, "fine", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Vacate.Respond(ctx, v.ID, statemachine.VacateRejected, "no", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	list, _, err := r.Vacate.ListForTenantUser(ctx, user.ID, &model.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, statemachine.VacateApproved, list[0].Status)
	assert.Equal(t, "fine", list[0].LandlordResponse)
}
