package service

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/pkg/notify"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/http"
)

// Services 统一管理所有 service
type Services struct {
	Access      *AccessService
	Auth        *AuthService
	User        *UserService
	Property    *PropertyService
	Unit        *UnitService
	Tenant      *TenantService
	Invitation  *InvitationService
	Maintenance *MaintenanceService
	Payment     *PaymentService
	Notice      *NoticeService
	Chat        *ChatService
	Vacate      *VacateService
	Dashboard   *DashboardService
}

// NewServices 初始化所有 service
func NewServices(
	db database.IDatabase,
	c cache.ICache,
	repos *repo.Repositories,
	bus *event.EventBus,
	sender notify.Sender,
	store storage.StorageProvider,
	auth http.Auth,
	invOpts InvitationOptions,
) *Services {
	pub := publisher{bus: bus}

	// 基础服务
	access := NewAccessService(db, c, repos)
	tenants := NewTenantService(db, access, repos)

	return &Services{
		Access:      access,
		Auth:        NewAuthService(auth, c, repos.User),
		User:        NewUserService(repos, store),
		Property:    NewPropertyService(access, repos),
		Unit:        NewUnitService(access, repos),
		Tenant:      tenants,
		Invitation:  NewInvitationService(db, access, tenants, repos, sender, pub, invOpts),
		Maintenance: NewMaintenanceService(db, access, repos, store, pub),
		Payment:     NewPaymentService(access, repos),
		Notice:      NewNoticeService(access, repos),
		Chat:        NewChatService(repos, pub),
		Vacate:      NewVacateService(access, repos, pub),
		Dashboard:   NewDashboardService(access, repos),
	}
}

func pageOf[T any](list []T, total int64, page *model.Page) *http.PageResult[T] {
	if list == nil {
		list = []T{}
	}
	return &http.PageResult[T]{List: list, Total: total, Page: page.Page, PageSize: page.PageSize}
}
