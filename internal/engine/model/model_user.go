package model

import (
	"strings"

	"github.com/go-arcade/edo/pkg/id"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:19
 * @file: model_user.go
 * @description: user model
 */

const (
	UserTypeIndividual = "individual"
	UserTypeCompany    = "company"

	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"

	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
)

type User struct {
	BaseModel
	UserId             string `gorm:"column:user_id;size:32;not null;uniqueIndex" json:"userId"`
	Email              string `gorm:"column:email;size:191;not null;uniqueIndex" json:"email"`
	Password           string `gorm:"column:password;size:100" json:"-"`
	FirstName          string `gorm:"column:first_name;size:100" json:"firstName"`
	LastName           string `gorm:"column:last_name;size:100" json:"lastName"`
	Phone              string `gorm:"column:phone;size:20" json:"phone"`
	UserType           string `gorm:"column:user_type;size:20;default:individual" json:"userType"`
	CompanyName        string `gorm:"column:company_name;size:255" json:"companyName"`
	Status             string `gorm:"column:status;size:20;default:active" json:"status"`
	VerificationStatus string `gorm:"column:verification_status;size:20;default:unverified" json:"verificationStatus"`
	ProfileImage       string `gorm:"column:profile_image;size:512" json:"profileImage"`

	// Roles is loaded from t_user_role_binding, never stored on the row.
	Roles []RoleName `gorm:"-" json:"roles"`
}

func (User) TableName() string {
	return "t_user"
}

// NewUser builds an unsaved user that already holds the regular role.
// UserRepo.Create persists the row and its bindings together.
func NewUser(email, firstName, lastName, phone string) *User {
	return &User{
		UserId:             id.GetUUIDWithoutDashes(),
		Email:              NormalizeEmail(email),
		FirstName:          strings.TrimSpace(firstName),
		LastName:           strings.TrimSpace(lastName),
		Phone:              strings.TrimSpace(phone),
		UserType:           UserTypeIndividual,
		Status:             UserStatusActive,
		VerificationStatus: VerificationUnverified,
		Roles:              []RoleName{RoleRegular},
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// ExclusiveRoles returns the exclusive roles held, at most one after any write.
func (u *User) ExclusiveRoles() []RoleName {
	var out []RoleName
	for _, r := range u.Roles {
		if r.IsExclusive() {
			out = append(out, r)
		}
	}
	return out
}

type Register struct {
	Email       string `json:"email" validate:"required,email,max=191"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	UserType    string `json:"userType" validate:"omitempty,oneof=individual company"`
	CompanyName string `json:"companyName" validate:"max=255"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LoginResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpireAt     int64  `json:"expireAt"`
	User         *User  `json:"user"`
}

type UpdateProfileReq struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,phone"`
	UserType    *string `json:"userType" validate:"omitempty,oneof=individual company"`
	CompanyName *string `json:"companyName" validate:"omitempty,max=255"`
}

// EmailSuggestion is one entry of the email autocomplete.
type EmailSuggestion struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Source    string `json:"source"` // user or tenant
}

type CheckEmailResp struct {
	Exists bool  `json:"exists"`
	User   *User `json:"user,omitempty"`
}

type LandlordSummary struct {
	UserId        string `json:"userId"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	CompanyName   string `json:"companyName"`
	ProfileImage  string `json:"profileImage"`
	PropertyCount int64  `json:"propertyCount"`
}

type LandlordDetail struct {
	LandlordSummary
	Properties []Property `json:"properties"`
}

// Identity is the authenticated caller. It is cached per user and dropped
// whenever the user's roles change.
type Identity struct {
	ID     uint64     `json:"id"`
	UserId string     `json:"userId"`
	Email  string     `json:"email"`
	Roles  []RoleName `json:"roles"`
}

func (u *User) Identity() *Identity {
	roles := make([]RoleName, len(u.Roles))
	copy(roles, u.Roles)
	return &Identity{ID: u.ID, UserId: u.UserId, Email: u.Email, Roles: roles}
}

func (i *Identity) HasRole(names ...RoleName) bool {
	for _, r := range i.Roles {
		for _, n := range names {
			if r == n {
				return true
			}
		}
	}
	return false
}

// RoleStrings returns the role names as plain strings.
func RoleStrings(roles []RoleName) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
