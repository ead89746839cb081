package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notice is broadcast when both UnitID and TenantID are nil.
type Notice struct {
	BaseModel
	LandlordID    uint64         `gorm:"column:landlord_id;not null;index" json:"landlordId"`
	Landlord      *User          `gorm:"foreignKey:LandlordID;constraint:OnDelete:CASCADE" json:"-"`
	UnitID        *uint64        `gorm:"column:unit_id;index" json:"unitId"`
	Unit          *Unit          `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"-"`
	TenantID      *uint64        `gorm:"column:tenant_id;index" json:"tenantId"`
	Tenant        *Tenant        `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	NoticeType    string         `gorm:"column:notice_type;size:50;not null" json:"noticeType"`
	Title         string         `gorm:"column:title;size:255;not null" json:"title"`
	Message       string         `gorm:"column:message;type:text;not null" json:"message"`
	DateSent      time.Time      `gorm:"column:date_sent;not null" json:"dateSent"`
	EffectiveDate datatypes.Date `gorm:"column:effective_date;not null" json:"effectiveDate"`
	Metadata      datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
}

func (Notice) TableName() string {
	return "t_notice"
}

func (n *Notice) IsBroadcast() bool {
	return n.UnitID == nil && n.TenantID == nil
}

type NoticeReq struct {
	UnitID        *uint64        `json:"unitId"`
	TenantID      *uint64        `json:"tenantId"`
	NoticeType    string         `json:"noticeType" validate:"required,max=50"`
	Title         string         `json:"title" validate:"required,max=255"`
	Message       string         `json:"message" validate:"required"`
	EffectiveDate string         `json:"effectiveDate" validate:"required,date"`
	Metadata      datatypes.JSON `json:"metadata"`
}
