package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
)

type NoticeService struct {
	access  *AccessService
	notices repo.INoticeRepository
}

func NewNoticeService(access *AccessService, repos *repo.Repositories) *NoticeService {
	return &NoticeService{access: access, notices: repos.Notice}
}

func (s *NoticeService) Create(ctx context.Context, ident *model.Identity, req *model.NoticeReq) (*model.Notice, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	n := &model.Notice{LandlordID: ident.ID, DateSent: time.Now().UTC()}
	if err := s.fill(ctx, ident, n, req); err != nil {
		return nil, err
	}
	if err := s.notices.Create(ctx, n); err != nil {
		return nil, err
	}
	log.Infow("notice sent", "noticeId", n.ID, "landlordId", ident.ID, "broadcast", n.IsBroadcast())
	return n, nil
}

// fill validates req against the landlord's units and tenants and copies it onto n.
func (s *NoticeService) fill(ctx context.Context, ident *model.Identity, n *model.Notice, req *model.NoticeReq) error {
	effective, err := parseDate("effectiveDate", req.EffectiveDate)
	if err != nil {
		return err
	}
	if req.UnitID != nil {
		if _, err := s.access.OwnUnit(ctx, ident.ID, *req.UnitID); err != nil {
			return err
		}
	}
	if req.TenantID != nil {
		t, err := s.access.OwnTenant(ctx, ident.ID, *req.TenantID)
		if err != nil {
			return err
		}
		if req.UnitID != nil && t.UnitID != *req.UnitID {
			return http.NewValidationError("tenantId", "tenant does not live in the given unit")
		}
	}
	n.UnitID = req.UnitID
	n.TenantID = req.TenantID
	n.NoticeType = strings.TrimSpace(req.NoticeType)
	n.Title = strings.TrimSpace(req.Title)
	n.Message = req.Message
	n.EffectiveDate = effective
	n.Metadata = req.Metadata
	return nil
}

func (s *NoticeService) List(ctx context.Context, ident *model.Identity, page *model.Page) (*http.PageResult[model.Notice], error) {
	var (
		list  []model.Notice
		total int64
		err   error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		list, total, err = s.notices.ListForLandlord(ctx, ident.ID, page)
	case ident.HasRole(model.RoleTenant):
		list, total, err = s.notices.ListForTenantUser(ctx, ident.ID, page)
	default:
		return nil, http.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return pageOf(list, total, page), nil
}

func (s *NoticeService) Get(ctx context.Context, ident *model.Identity, id uint64) (*model.Notice, error) {
	var (
		n   *model.Notice
		err error
	)
	switch {
	case ident.HasRole(model.RoleLandlord):
		n, err = s.notices.GetForLandlord(ctx, id, ident.ID)
	case ident.HasRole(model.RoleTenant):
		n, err = s.notices.GetForTenantUser(ctx, id, ident.ID)
	default:
		return nil, http.ErrForbidden
	}
	return n, repoErr(err, "notice")
}

func (s *NoticeService) Update(ctx context.Context, ident *model.Identity, id uint64, req *model.NoticeReq) (*model.Notice, error) {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return nil, err
	}
	n, err := s.notices.GetForLandlord(ctx, id, ident.ID)
	if err != nil {
		return nil, repoErr(err, "notice")
	}
	if err := s.fill(ctx, ident, n, req); err != nil {
		return nil, err
	}
	err = s.notices.Updates(ctx, id, map[string]any{
		"unit_id":        n.UnitID,
		"tenant_id":      n.TenantID,
		"notice_type":    n.NoticeType,
		"title":          n.Title,
		"message":        n.Message,
		"effective_date": n.EffectiveDate,
		"metadata":       n.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ident, id)
}

func (s *NoticeService) Delete(ctx context.Context, ident *model.Identity, id uint64) error {
	if err := s.access.EnsureRole(ident, model.RoleLandlord); err != nil {
		return err
	}
	n, err := s.notices.GetForLandlord(ctx, id, ident.ID)
	if err != nil {
		return repoErr(err, "notice")
	}
	return s.notices.Delete(ctx, n.ID)
}
