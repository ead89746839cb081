package model

import (
	"time"

	"github.com/go-arcade/edo/pkg/statemachine"
	"gorm.io/datatypes"
)

type VacateRequest struct {
	BaseModel
	TenantID         uint64                    `gorm:"column:tenant_id;not null;index" json:"tenantId"`
	Tenant           *Tenant                   `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	UnitID           uint64                    `gorm:"column:unit_id;not null;index" json:"unitId"`
	Unit             *Unit                     `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"-"`
	PropertyID       uint64                    `gorm:"column:property_id;not null;index" json:"propertyId"`
	Property         *Property                 `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	MoveOutDate      datatypes.Date            `gorm:"column:move_out_date;not null" json:"moveOutDate"`
	Reason           string                    `gorm:"column:reason;type:text" json:"reason"`
	Status           statemachine.VacateStatus `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	LandlordResponse string                    `gorm:"column:landlord_response;type:text" json:"landlordResponse"`
	ResponseDate     *time.Time                `gorm:"column:response_date" json:"responseDate"`
}

func (VacateRequest) TableName() string {
	return "t_vacate_request"
}

type CreateVacateReq struct {
	TenantID    *uint64 `json:"tenantId"`
	MoveOutDate string  `json:"moveOutDate" validate:"required,date"`
	Reason      string  `json:"reason"`
}

type RespondVacateReq struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Response string `json:"response"`
}

type LandlordDashboard struct {
	Properties          int64 `json:"properties"`
	Units               int64 `json:"units"`
	OccupiedUnits       int64 `json:"occupiedUnits"`
	VacantUnits         int64 `json:"vacantUnits"`
	Tenants             int64 `json:"tenants"`
	OpenMaintenance     int64 `json:"openMaintenance"`
	PendingInvitations  int64 `json:"pendingInvitations"`
	PendingVacateNotice int64 `json:"pendingVacateRequests"`
}
