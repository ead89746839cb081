package model

import "gorm.io/datatypes"

// Payment rows are never updated or deleted through the API.
type Payment struct {
	BaseModel
	TenantID      uint64         `gorm:"column:tenant_id;not null;index" json:"tenantId"`
	Tenant        *Tenant        `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	UnitID        uint64         `gorm:"column:unit_id;not null;index" json:"unitId"`
	Unit          *Unit          `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"-"`
	Amount        float64        `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	PaymentDate   datatypes.Date `gorm:"column:payment_date;not null" json:"paymentDate"`
	PaymentMethod string         `gorm:"column:payment_method;size:50;not null" json:"paymentMethod"`
	Reference     string         `gorm:"column:reference;size:100" json:"reference"`
	Notes         string         `gorm:"column:notes;type:text" json:"notes"`
}

func (Payment) TableName() string {
	return "t_payment"
}

type CreatePaymentReq struct {
	TenantID      uint64  `json:"tenantId" validate:"required"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	PaymentDate   string  `json:"paymentDate" validate:"required,date"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,max=50"`
	Reference     string  `json:"reference" validate:"max=100"`
	Notes         string  `json:"notes"`
}

type PaymentQuery struct {
	Page
	TenantID uint64 `query:"tenantId"`
	UnitID   uint64 `query:"unitId"`
}
