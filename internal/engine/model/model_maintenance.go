package model

import (
	"time"

	"github.com/go-arcade/edo/pkg/statemachine"
	"gorm.io/datatypes"
)

type Maintenance struct {
	BaseModel
	PropertyID    uint64                           `gorm:"column:property_id;not null;index" json:"propertyId"`
	Property      *Property                        `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	UnitID        uint64                           `gorm:"column:unit_id;not null;index" json:"unitId"`
	Unit          *Unit                            `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE" json:"-"`
	TenantID      *uint64                          `gorm:"column:tenant_id;index" json:"tenantId"`
	Tenant        *Tenant                          `gorm:"foreignKey:TenantID;constraint:OnDelete:SET NULL" json:"-"`
	Subject       string                           `gorm:"column:subject;size:255;not null" json:"subject"`
	Description   string                           `gorm:"column:description;type:text;not null" json:"description"`
	Image         string                           `gorm:"column:image;size:512" json:"image"`
	Status        statemachine.MaintenanceStatus   `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	Priority      statemachine.MaintenancePriority `gorm:"column:priority;size:20;not null;default:medium" json:"priority"`
	RequestedBy   *uint64                          `gorm:"column:requested_by;index" json:"requestedBy"`
	Requester     *User                            `gorm:"foreignKey:RequestedBy;constraint:OnDelete:SET NULL" json:"-"`
	AssignedTo    *uint64                          `gorm:"column:assigned_to;index" json:"assignedTo"`
	Assignee      *User                            `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"-"`
	AssigneeName  string                           `gorm:"column:assignee_name;size:255" json:"assigneeName"`
	AssigneePhone string                           `gorm:"column:assignee_phone;size:20" json:"assigneePhone"`
	ScheduledDate *datatypes.Date                  `gorm:"column:scheduled_date" json:"scheduledDate"`
	CompletedDate *datatypes.Date                  `gorm:"column:completed_date" json:"completedDate"`
}

func (Maintenance) TableName() string {
	return "t_maintenance"
}

// IsAssigned reports whether a platform user or a free-text assignee is set.
func (m *Maintenance) IsAssigned() bool {
	return m.AssignedTo != nil || m.AssigneeName != ""
}

type MaintenanceMessage struct {
	ID            uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MaintenanceID uint64       `gorm:"column:maintenance_id;not null;index" json:"maintenanceId"`
	Maintenance   *Maintenance `gorm:"foreignKey:MaintenanceID;constraint:OnDelete:CASCADE" json:"-"`
	SenderID      *uint64      `gorm:"column:sender_id;index" json:"senderId"`
	Sender        *User        `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL" json:"-"`
	Message       string       `gorm:"column:message;type:text;not null" json:"message"`
	Timestamp     time.Time    `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
}

func (MaintenanceMessage) TableName() string {
	return "t_maintenance_message"
}

type CreateMaintenanceReq struct {
	PropertyID    *uint64 `json:"propertyId"`
	UnitID        *uint64 `json:"unitId"`
	Subject       string  `json:"subject" validate:"required,max=255"`
	Description   string  `json:"description" validate:"required"`
	Priority      string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	ScheduledDate string  `json:"scheduledDate" validate:"omitempty,date"`
}

type AssignMaintenanceReq struct {
	AssignedTo    *string `json:"assignedTo"` // user id (business key)
	AssigneeName  *string `json:"assigneeName" validate:"omitempty,max=255"`
	AssigneePhone *string `json:"assigneePhone" validate:"omitempty,phone"`
	ScheduledDate *string `json:"scheduledDate" validate:"omitempty,date"`
}

// HasAssignment reports whether the request names an assignee.
func (r *AssignMaintenanceReq) HasAssignment() bool {
	return (r.AssignedTo != nil && *r.AssignedTo != "") || (r.AssigneeName != nil && *r.AssigneeName != "")
}

// TouchesAssignee reports whether any assignee field is present, a bare phone included.
func (r *AssignMaintenanceReq) TouchesAssignee() bool {
	return r.HasAssignment() || (r.AssigneePhone != nil && *r.AssigneePhone != "")
}

type UpdateMaintenanceReq struct {
	Subject     *string `json:"subject" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignMaintenanceReq
}

type MaintenanceStatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

type MaintenanceQuery struct {
	Page
	Status   string `query:"status"`
	Priority string `query:"priority"`
}

type MaintenanceMessageReq struct {
	Message string `json:"message" validate:"required"`
}
