package repo

import (
	"context"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/database"
)

type ChatHistoryQuery struct {
	UserID     uint64
	PeerID     uint64
	UnitID     uint64
	PropertyID uint64
	BeforeID   uint64
	Limit      int
}

type IChatRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	// History returns the latest messages between two users, oldest first
	History(ctx context.Context, q *ChatHistoryQuery) ([]model.ChatMessage, error)
	// MarkRead flips is_read for the recipient; a second call is a no-op
	MarkRead(ctx context.Context, id, recipientID uint64) (*model.ChatMessage, error)
	UnreadCount(ctx context.Context, userID uint64) (int64, error)
	// Peers returns the ids of everyone userID has exchanged messages with
	Peers(ctx context.Context, userID uint64) ([]uint64, error)
	LastWith(ctx context.Context, userID, peerID uint64) (*model.ChatMessage, error)
	UnreadFrom(ctx context.Context, userID, peerID uint64) (int64, error)
}

type ChatRepo struct {
	db database.IDatabase
}

func NewChatRepo(db database.IDatabase) IChatRepository {
	return &ChatRepo{db: db}
}

const chatPair = "((sender_id = @a AND recipient_id = @b) OR (sender_id = @b AND recipient_id = @a))"

func (cr *ChatRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	return cr.db.DB(ctx).Omit("Sender", "Recipient", "Unit", "Property").Create(msg).Error
}

func (cr *ChatRepo) History(ctx context.Context, q *ChatHistoryQuery) ([]model.ChatMessage, error) {
	query := cr.db.DB(ctx).Where(chatPair, map[string]any{"a": q.UserID, "b": q.PeerID})
	if q.UnitID != 0 {
		query = query.Where("unit_id = ?", q.UnitID)
	}
	if q.PropertyID != 0 {
		query = query.Where("property_id = ?", q.PropertyID)
	}
	if q.BeforeID != 0 {
		query = query.Where("id < ?", q.BeforeID)
	}
	var list []model.ChatMessage
	if err := query.Order("id DESC").Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (cr *ChatRepo) MarkRead(ctx context.Context, id, recipientID uint64) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{}
	tx := cr.db.DB(ctx)
	if err := tx.Where("id = ? AND recipient_id = ?", id, recipientID).First(msg).Error; err != nil {
		return nil, err
	}
	if msg.IsRead {
		return msg, nil
	}
	if err := tx.Model(&model.ChatMessage{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true).Error; err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}

func (cr *ChatRepo) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return count(cr.db.DB(ctx).Model(&model.ChatMessage{}).Where("recipient_id = ? AND is_read = ?", userID, false))
}

func (cr *ChatRepo) Peers(ctx context.Context, userID uint64) ([]uint64, error) {
	var sent, received []uint64
	tx := cr.db.DB(ctx)
	if err := tx.Model(&model.ChatMessage{}).
		Where("sender_id = ? AND recipient_id IS NOT NULL", userID).
		Distinct().Pluck("recipient_id", &sent).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&model.ChatMessage{}).
		Where("recipient_id = ? AND sender_id IS NOT NULL", userID).
		Distinct().Pluck("sender_id", &received).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint64]struct{}, len(sent)+len(received))
	peers := make([]uint64, 0, len(sent)+len(received))
	for _, id := range append(sent, received...) {
		if _, ok := seen[id]; ok || id == userID {
			continue
		}
		seen[id] = struct{}{}
		peers = append(peers, id)
	}
	return peers, nil
}

func (cr *ChatRepo) LastWith(ctx context.Context, userID, peerID uint64) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{}
	err := cr.db.DB(ctx).
		Where(chatPair, map[string]any{"a": userID, "b": peerID}).
		Order("id DESC").
		Take(msg).Error
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (cr *ChatRepo) UnreadFrom(ctx context.Context, userID, peerID uint64) (int64, error) {
	return count(cr.db.DB(ctx).Model(&model.ChatMessage{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false))
}
