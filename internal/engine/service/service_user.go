package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:44
 * @file: service_user.go
 * @description: profile, lookup and landlord directory
 */

const (
	minEmailQuery   = 2
	emailSuggestMax = 10
)

type UserService struct {
	users   repo.IUserRepository
	tenants repo.ITenantRepository
	props   repo.IPropertyRepository
	store   storage.StorageProvider
}

func NewUserService(repos *repo.Repositories, store storage.StorageProvider) *UserService {
	return &UserService{
		users:   repos.User,
		tenants: repos.Tenant,
		props:   repos.Property,
		store:   store,
	}
}

func (s *UserService) Me(ctx context.Context, ident *model.Identity) (*model.User, error) {
	u, err := s.users.GetByID(ctx, ident.ID)
	return u, repoErr(err, "user")
}

func (s *UserService) UpdateProfile(ctx context.Context, ident *model.Identity, req *model.UpdateProfileReq) (*model.User, error) {
	fields := make(map[string]any)
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.UserType != nil {
		fields["user_type"] = *req.UserType
	}
	if req.CompanyName != nil {
		fields["company_name"] = strings.TrimSpace(*req.CompanyName)
	}
	if err := s.users.Updates(ctx, ident.ID, fields); err != nil {
		return nil, err
	}
	return s.Me(ctx, ident)
}

func (s *UserService) UploadAvatar(ctx context.Context, ident *model.Identity, fh *multipart.FileHeader) (*model.User, error) {
	url, err := uploadImage(ctx, s.store, "avatars/"+ident.UserId, fh)
	if err != nil {
		return nil, err
	}
	if err := s.users.Updates(ctx, ident.ID, map[string]any{"profile_image": url}); err != nil {
		return nil, err
	}
	return s.Me(ctx, ident)
}

// SearchEmail suggests known addresses from users first, then tenant rows.
func (s *UserService) SearchEmail(ctx context.Context, q string) ([]model.EmailSuggestion, error) {
	q = strings.TrimSpace(q)
	out := make([]model.EmailSuggestion, 0, emailSuggestMax)
	if len(q) < minEmailQuery {
		return out, nil
	}
	users, err := s.users.SearchByEmail(ctx, q, emailSuggestMax)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenants.SearchByEmail(ctx, q, emailSuggestMax)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(users)+len(tenants))
	add := func(sg model.EmailSuggestion) {
		key := model.NormalizeEmail(sg.Email)
		if _, ok := seen[key]; ok || len(out) >= emailSuggestMax {
			return
		}
		seen[key] = struct{}{}
		out = append(out, sg)
	}
	for _, u := range users {
		add(model.EmailSuggestion{Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone, Source: "user"})
	}
	for _, t := range tenants {
		add(model.EmailSuggestion{Email: t.Email, FirstName: t.FirstName, LastName: t.LastName, Phone: t.Phone, Source: "tenant"})
	}
	return out, nil
}

func (s *UserService) CheckEmail(ctx context.Context, email string) (*model.CheckEmailResp, error) {
	if strings.TrimSpace(email) == "" {
		return nil, http.NewValidationError("email", "this field is required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return &model.CheckEmailResp{Exists: false}, nil
		}
		return nil, err
	}
	return &model.CheckEmailResp{Exists: true, User: u}, nil
}

func (s *UserService) Landlords(ctx context.Context) ([]model.LandlordSummary, error) {
	users, err := s.users.ListByRole(ctx, model.RoleLandlord)
	if err != nil {
		return nil, err
	}
	out := make([]model.LandlordSummary, 0, len(users))
	for i := range users {
		sum, err := s.landlordSummary(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

func (s *UserService) Landlord(ctx context.Context, userId string) (*model.LandlordDetail, error) {
	u, err := s.users.GetByUserId(ctx, userId)
	if err != nil {
		return nil, repoErr(err, "landlord")
	}
	if !u.HasRole(model.RoleLandlord) {
		return nil, http.NewNotFound("landlord")
	}
	props, err := s.props.ListAll(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	sum, err := s.landlordSummary(ctx, u)
	if err != nil {
		return nil, err
	}
	sum.PropertyCount = int64(len(props))
	return &model.LandlordDetail{LandlordSummary: sum, Properties: props}, nil
}

func (s *UserService) landlordSummary(ctx context.Context, u *model.User) (model.LandlordSummary, error) {
	n, err := s.props.CountByLandlord(ctx, u.ID)
	if err != nil {
		return model.LandlordSummary{}, err
	}
	return model.LandlordSummary{
		UserId:        u.UserId,
		Email:         u.Email,
		FullName:      u.FullName(),
		Phone:         u.Phone,
		CompanyName:   u.CompanyName,
		ProfileImage:  u.ProfileImage,
		PropertyCount: n,
	}, nil
}

// uploadImage validates fh and stores it under prefix.
func uploadImage(ctx context.Context, store storage.StorageProvider, prefix string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", http.NewValidationError("image", "this field is required")
	}
	img, err := storage.ReadImage(fh)
	if err != nil {
		return "", imageErr(err)
	}
	url, err := storage.UploadImage(ctx, store, prefix, img)
	if err != nil {
		log.Errorw("upload image failed", "prefix", prefix, "error", err)
		return "", imageErr(err)
	}
	return url, nil
}

func imageErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrImageTooLarge), errors.Is(err, storage.ErrUnsupportedImage):
		return http.NewValidationError("image", err.Error())
	case errors.Is(err, storage.ErrNotConfigured):
		return http.Wrap(http.InternalError, err.Error(), err)
	}
	return err
}
