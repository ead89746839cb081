package model

import (
	"time"

	"github.com/go-arcade/edo/pkg/statemachine"
)

const (
	InvitationActionApprove       = "approve"
	InvitationActionCreateAccount = "create_account"
)

type TenantInvitation struct {
	BaseModel
	LandlordID     uint64                        `gorm:"column:landlord_id;not null;index" json:"landlordId"`
	Landlord       *User                         `gorm:"foreignKey:LandlordID;constraint:OnDelete:CASCADE" json:"-"`
	UnitID         uint64                        `gorm:"column:unit_id;not null;index" json:"unitId"`
	Unit           *Unit                         `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"unit,omitempty"`
	Email          string                        `gorm:"column:email;size:191;not null;index" json:"email"`
	Phone          string                        `gorm:"column:phone;size:20" json:"phone"`
	InvitationCode string                        `gorm:"column:invitation_code;size:100;not null;uniqueIndex" json:"invitationCode"`
	Message        string                        `gorm:"column:message;type:text" json:"message"`
	Status         statemachine.InvitationStatus `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	ExpiresAt      time.Time                     `gorm:"column:expires_at;not null" json:"expiresAt"`
}

func (TenantInvitation) TableName() string {
	return "t_tenant_invitation"
}

func (i *TenantInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

type CreateInvitationReq struct {
	UnitID  uint64 `json:"unitId" validate:"required"`
	Email   string `json:"email" validate:"required,email,max=191"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Message string `json:"message"`
}

type CreateInvitationResp struct {
	Invitation *TenantInvitation `json:"invitation"`
	EmailSent  bool              `json:"emailSent"`
	Warning    string            `json:"warning,omitempty"`
}

type InvitationQuery struct {
	Page
	Status string `query:"status"`
}

// AcceptInvitationReq is posted by the invitee, authenticated by the code only.
type AcceptInvitationReq struct {
	Action    string `json:"action" validate:"omitempty,oneof=approve create_account"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	LeaseType string `json:"leaseType" validate:"omitempty,oneof=rental lease"`
	StartDate string `json:"startDate" validate:"omitempty,date"`
	EndDate   string `json:"endDate" validate:"omitempty,date"`
	EmergencyContact
}

// InvitationView is returned by the public code lookup.
type InvitationView struct {
	ID        uint64                        `json:"id"`
	Email     string                        `json:"email"`
	Phone     string                        `json:"phone"`
	Message   string                        `json:"message"`
	Status    statemachine.InvitationStatus `json:"status"`
	ExpiresAt time.Time                     `json:"expiresAt"`
	Unit      UnitSummary                   `json:"unit"`
	Property  PropertySummary               `json:"property"`
	Landlord  ContactSummary                `json:"landlord"`
}

type AcceptInvitationResp struct {
	Action     string          `json:"action"`
	Message    string          `json:"message"`
	Invitation *InvitationView `json:"invitation,omitempty"`
	Tenant     *Tenant         `json:"tenant,omitempty"`
}
