package model

import "time"

type ChatMessage struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID    *uint64   `gorm:"column:sender_id;index:idx_chat_pair" json:"senderId"`
	Sender      *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL" json:"-"`
	RecipientID *uint64   `gorm:"column:recipient_id;index:idx_chat_pair;index" json:"recipientId"`
	Recipient   *User     `gorm:"foreignKey:RecipientID;constraint:OnDelete:SET NULL" json:"-"`
	UnitID      *uint64   `gorm:"column:unit_id;index" json:"unitId"`
	Unit        *Unit     `gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL" json:"-"`
	PropertyID  *uint64   `gorm:"column:property_id;index" json:"propertyId"`
	Property    *Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL" json:"-"`
	Message     string    `gorm:"column:message;type:text;not null" json:"message"`
	Timestamp   time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
	IsRead      bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
}

func (ChatMessage) TableName() string {
	return "t_chat_message"
}

const (
	DefaultChatLimit = 30
	MaxChatLimit     = 200
)

type SendChatReq struct {
	RecipientId string  `json:"recipientId" validate:"required"`
	UnitID      *uint64 `json:"unitId"`
	PropertyID  *uint64 `json:"propertyId"`
	Message     string  `json:"message" validate:"required"`
}

type ChatQuery struct {
	With       string `query:"with"`
	UnitID     uint64 `query:"unitId"`
	PropertyID uint64 `query:"propertyId"`
	BeforeID   uint64 `query:"beforeId"`
	Limit      int    `query:"limit"`
}

// NormalizeLimit clamps the page size of a chat history request.
func (q *ChatQuery) NormalizeLimit() int {
	if q.Limit <= 0 {
		q.Limit = DefaultChatLimit
	}
	if q.Limit > MaxChatLimit {
		q.Limit = MaxChatLimit
	}
	return q.Limit
}

type Conversation struct {
	Peer        ContactSummary `json:"peer"`
	LastMessage *ChatMessage   `json:"lastMessage"`
	UnreadCount int64          `json:"unreadCount"`
}
