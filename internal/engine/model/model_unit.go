package model

type UnitStatus string

const (
	UnitVacant   UnitStatus = "vacant"
	UnitOccupied UnitStatus = "occupied"
)

type Unit struct {
	BaseModel
	PropertyID      uint64     `gorm:"column:property_id;not null;uniqueIndex:idx_property_unit" json:"propertyId"`
	Property        *Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
	UnitId          string     `gorm:"column:unit_id;size:50;not null;uniqueIndex:idx_property_unit" json:"unitId"`
	Floor           string     `gorm:"column:floor;size:20" json:"floor"`
	Bedrooms        int        `gorm:"column:bedrooms;not null;default:1" json:"bedrooms"`
	Bathrooms       int        `gorm:"column:bathrooms;not null;default:1" json:"bathrooms"`
	Size            *float64   `gorm:"column:size;type:decimal(8,2)" json:"size"`
	RentAmount      float64    `gorm:"column:rent_amount;type:decimal(10,2);not null" json:"rentAmount"`
	SecurityDeposit *float64   `gorm:"column:security_deposit;type:decimal(10,2)" json:"securityDeposit"`
	Status          UnitStatus `gorm:"column:status;size:20;not null;default:vacant;index" json:"status"`

	Tenant *Tenant `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
}

func (Unit) TableName() string {
	return "t_unit"
}

type CreateUnitReq struct {
	PropertyID      uint64   `json:"propertyId" validate:"required"`
	UnitId          string   `json:"unitId" validate:"required,max=50"`
	Floor           string   `json:"floor" validate:"max=20"`
	Bedrooms        *int     `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms       *int     `json:"bathrooms" validate:"omitempty,min=0"`
	Size            *float64 `json:"size" validate:"omitempty,gt=0"`
	RentAmount      float64  `json:"rentAmount" validate:"gte=0"`
	SecurityDeposit *float64 `json:"securityDeposit" validate:"omitempty,gte=0"`
}

// UpdateUnitReq carries UnitId only to reject attempts to change it.
type UpdateUnitReq struct {
	UnitId          *string  `json:"unitId"`
	Floor           *string  `json:"floor" validate:"omitempty,max=20"`
	Bedrooms        *int     `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms       *int     `json:"bathrooms" validate:"omitempty,min=0"`
	Size            *float64 `json:"size" validate:"omitempty,gt=0"`
	RentAmount      *float64 `json:"rentAmount" validate:"omitempty,gte=0"`
	SecurityDeposit *float64 `json:"securityDeposit" validate:"omitempty,gte=0"`
}

type UnitSummary struct {
	ID         uint64     `json:"id"`
	UnitId     string     `json:"unitId"`
	Floor      string     `json:"floor"`
	Bedrooms   int        `json:"bedrooms"`
	Bathrooms  int        `json:"bathrooms"`
	RentAmount float64    `json:"rentAmount"`
	Status     UnitStatus `json:"status"`
}

func (u *Unit) Summary() UnitSummary {
	return UnitSummary{
		ID:         u.ID,
		UnitId:     u.UnitId,
		Floor:      u.Floor,
		Bedrooms:   u.Bedrooms,
		Bathrooms:  u.Bathrooms,
		RentAmount: u.RentAmount,
		Status:     u.Status,
	}
}
