package model

type PropertyType string

const (
	PropertyHouse      PropertyType = "House"
	PropertyApartment  PropertyType = "Apartment"
	PropertyVilla      PropertyType = "Villa"
	PropertyTownhouse  PropertyType = "Townhouse"
	PropertyOffice     PropertyType = "Office"
	PropertyCommercial PropertyType = "Commercial"
	PropertyOther      PropertyType = "Other"
)

func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyHouse, PropertyApartment, PropertyVilla, PropertyTownhouse,
		PropertyOffice, PropertyCommercial, PropertyOther:
		return true
	}
	return false
}

type Property struct {
	BaseModel
	LandlordID  uint64       `gorm:"column:landlord_id;not null;index" json:"landlordId"`
	Landlord    *User        `gorm:"foreignKey:LandlordID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string       `gorm:"column:name;size:255;not null" json:"name"`
	Type        PropertyType `gorm:"column:type;size:50;not null" json:"type"`
	Description string       `gorm:"column:description;type:text" json:"description"`
	Street      string       `gorm:"column:street;size:255" json:"street"`
	City        string       `gorm:"column:city;size:100" json:"city"`
	State       string       `gorm:"column:state;size:100" json:"state"`
	ZipCode     string       `gorm:"column:zip_code;size:20" json:"zipCode"`

	Units []Unit `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"units,omitempty"`
}

func (Property) TableName() string {
	return "t_property"
}

type PropertyReq struct {
	Name        string `json:"name" validate:"required,max=255"`
	Type        string `json:"type" validate:"required,oneof=House Apartment Villa Townhouse Office Commercial Other"`
	Description string `json:"description"`
	Street      string `json:"street" validate:"required,max=255"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	ZipCode     string `json:"zipCode" validate:"required,max=20"`
}

// PropertySummary is embedded in invitation and rental views.
type PropertySummary struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func (p *Property) Summary() PropertySummary {
	return PropertySummary{
		ID:      p.ID,
		Name:    p.Name,
		Street:  p.Street,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
	}
}
