package model

import (
	"gorm.io/datatypes"
)

const (
	LeaseRental = "rental"
	LeaseLease  = "lease"
)

type Tenant struct {
	BaseModel
	UserID                       uint64          `gorm:"column:user_id;not null;index" json:"userId"`
	User                         *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	UnitID                       uint64          `gorm:"column:unit_id;not null;uniqueIndex" json:"unitId"`
	Unit                         *Unit           `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"unit,omitempty"`
	FirstName                    string          `gorm:"column:first_name;size:100" json:"firstName"`
	LastName                     string          `gorm:"column:last_name;size:100" json:"lastName"`
	Email                        string          `gorm:"column:email;size:191;index" json:"email"`
	Phone                        string          `gorm:"column:phone;size:20" json:"phone"`
	LeaseType                    string          `gorm:"column:lease_type;size:20;default:rental" json:"leaseType"`
	StartDate                    datatypes.Date  `gorm:"column:start_date" json:"startDate"`
	EndDate                      *datatypes.Date `gorm:"column:end_date" json:"endDate"`
	EmergencyContactName         string          `gorm:"column:emergency_contact_name;size:100" json:"emergencyContactName"`
	EmergencyContactPhone        string          `gorm:"column:emergency_contact_phone;size:20" json:"emergencyContactPhone"`
	EmergencyContactRelationship string          `gorm:"column:emergency_contact_relationship;size:50" json:"emergencyContactRelationship"`
}

func (Tenant) TableName() string {
	return "t_tenant"
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// EmergencyContact is shared by tenant creation and invitation acceptance.
type EmergencyContact struct {
	EmergencyContactName         string `json:"emergencyContactName" validate:"max=100"`
	EmergencyContactPhone        string `json:"emergencyContactPhone" validate:"omitempty,phone"`
	EmergencyContactRelationship string `json:"emergencyContactRelationship" validate:"max=50"`
}

type CreateTenantReq struct {
	Email     string `json:"email" validate:"required,email,max=191"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,phone"`
	UnitID    uint64 `json:"unitId" validate:"required"`
	LeaseType string `json:"leaseType" validate:"omitempty,oneof=rental lease"`
	StartDate string `json:"startDate" validate:"required,date"`
	EndDate   string `json:"endDate" validate:"omitempty,date"`
	EmergencyContact
}

type UpdateTenantReq struct {
	FirstName                    *string `json:"firstName" validate:"omitempty,max=100"`
	LastName                     *string `json:"lastName" validate:"omitempty,max=100"`
	Phone                        *string `json:"phone" validate:"omitempty,phone"`
	LeaseType                    *string `json:"leaseType" validate:"omitempty,oneof=rental lease"`
	StartDate                    *string `json:"startDate" validate:"omitempty,date"`
	EndDate                      *string `json:"endDate" validate:"omitempty,date"`
	EmergencyContactName         *string `json:"emergencyContactName" validate:"omitempty,max=100"`
	EmergencyContactPhone        *string `json:"emergencyContactPhone" validate:"omitempty,phone"`
	EmergencyContactRelationship *string `json:"emergencyContactRelationship" validate:"omitempty,max=50"`
	UnitID                       *uint64 `json:"unitId"`
}

// Rental is a tenancy as seen by the tenant.
type Rental struct {
	Tenant   *Tenant         `json:"tenant"`
	Unit     UnitSummary     `json:"unit"`
	Property PropertySummary `json:"property"`
	Landlord ContactSummary  `json:"landlord"`
}

type ContactSummary struct {
	UserId   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}
