package model

import "strings"

// RoleName is an open set of role names. The five well-known names are
// exclusive: a user holds at most one of them. Any other name is a custom role.
type RoleName string

const (
	RoleHost     RoleName = "host"
	RoleTenant   RoleName = "tenant"
	RoleLandlord RoleName = "landlord"
	RoleAdmin    RoleName = "admin"
	RoleRegular  RoleName = "regular"
)

const MaxRoleNameLen = 20

var exclusiveRoles = []RoleName{RoleHost, RoleTenant, RoleLandlord, RoleAdmin, RoleRegular}

// ExclusiveRoles returns the well-known names.
func ExclusiveRoles() []RoleName {
	out := make([]RoleName, len(exclusiveRoles))
	copy(out, exclusiveRoles)
	return out
}

func ExclusiveRoleNames() []string {
	out := make([]string, len(exclusiveRoles))
	for i, r := range exclusiveRoles {
		out[i] = string(r)
	}
	return out
}

// NormalizeRoleName trims and lowercases.
func NormalizeRoleName(name string) RoleName {
	return RoleName(strings.ToLower(strings.TrimSpace(name)))
}

func (r RoleName) IsExclusive() bool {
	for _, e := range exclusiveRoles {
		if r == e {
			return true
		}
	}
	return false
}

// IsRelinquishable reports whether a user may drop the role on their own.
func (r RoleName) IsRelinquishable() bool {
	return r == RoleHost || r == RoleTenant || r == RoleLandlord
}

// IsSelfAssignable reports whether a user may take the role on their own.
func (r RoleName) IsSelfAssignable() bool {
	return r.IsRelinquishable()
}

func (r RoleName) Valid() bool {
	return r != "" && len(r) <= MaxRoleNameLen
}

func (r RoleName) String() string {
	return string(r)
}

type Role struct {
	BaseModel
	Name        string `gorm:"column:name;size:20;not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;size:255" json:"description"`
}

func (Role) TableName() string {
	return "t_role"
}

// UserRoleBinding has no foreign key on role_id so bindings to a removed role
// survive until `edo roles cleanup` collects them.
type UserRoleBinding struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    uint64 `gorm:"column:user_id;not null;uniqueIndex:idx_user_role" json:"userId"`
	RoleID    uint64 `gorm:"column:role_id;not null;uniqueIndex:idx_user_role;index" json:"roleId"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (UserRoleBinding) TableName() string {
	return "t_user_role_binding"
}

type RoleReq struct {
	Role string `json:"role" validate:"required,max=20"`
}

type AssignRoleReq struct {
	UserId string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required,max=20"`
}

type RolesResp struct {
	Roles []string `json:"roles"`
}
