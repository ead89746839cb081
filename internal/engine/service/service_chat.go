package service

import (
	"context"
	"sort"
	"strings"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/2 20:14
 * @file: service_chat.go
 * @description: direct messages between two users
 */

type ChatService struct {
	publisher
	users repo.IUserRepository
	props repo.IPropertyRepository
	units repo.IUnitRepository
	chat  repo.IChatRepository
}

func NewChatService(repos *repo.Repositories, pub publisher) *ChatService {
	return &ChatService{publisher: pub, users: repos.User, props: repos.Property, units: repos.Unit, chat: repos.Chat}
}

func (s *ChatService) Send(ctx context.Context, ident *model.Identity, req *model.SendChatReq) (*model.ChatMessage, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, http.NewValidationError("message", "must not be empty")
	}
	peer, err := s.peer(ctx, ident, req.RecipientId, "recipientId")
	if err != nil {
		return nil, err
	}
	msg := &model.ChatMessage{
		SenderID:    &ident.ID,
		RecipientID: &peer.ID,
		Message:     req.Message,
	}
	if err := s.bindContext(ctx, msg, req.UnitID, req.PropertyID); err != nil {
		return nil, err
	}
	if err := s.chat.Create(ctx, msg); err != nil {
		return nil, err
	}
	log.Debugw("chat message sent", "messageId", msg.ID, "from", ident.UserId, "to", peer.UserId)
	s.publish(ChatEvent{Message: msg, From: ident.UserId, To: peer.UserId})
	return msg, nil
}

// bindContext attaches the optional unit and property. Both must exist, and
// a unit given with a property must belong to it.
func (s *ChatService) bindContext(ctx context.Context, msg *model.ChatMessage, unitID, propertyID *uint64) error {
	if propertyID != nil {
		p, err := s.props.Get(ctx, *propertyID)
		if err != nil {
			if isNotFound(err) {
				return http.NewValidationError("propertyId", "property does not exist")
			}
			return err
		}
		msg.PropertyID = &p.ID
	}
	if unitID == nil {
		return nil
	}
	unit, err := s.units.Get(ctx, *unitID)
	if err != nil {
		if isNotFound(err) {
			return http.NewValidationError("unitId", "unit does not exist")
		}
		return err
	}
	if msg.PropertyID != nil && *msg.PropertyID != unit.PropertyID {
		return http.NewValidationError("propertyId", "unit does not belong to this property")
	}
	msg.UnitID = &unit.ID
	msg.PropertyID = &unit.PropertyID
	return nil
}

// peer resolves a business user id that is not the caller.
func (s *ChatService) peer(ctx context.Context, ident *model.Identity, userId, field string) (*model.User, error) {
	userId = strings.TrimSpace(userId)
	if userId == "" {
		return nil, http.NewValidationError(field, "is required")
	}
	u, err := s.users.GetByUserId(ctx, userId)
	if err != nil {
		if isNotFound(err) {
			return nil, http.NewValidationError(field, "user does not exist")
		}
		return nil, err
	}
	if u.ID == ident.ID {
		return nil, http.NewValidationError(field, "cannot message yourself")
	}
	return u, nil
}

func (s *ChatService) History(ctx context.Context, ident *model.Identity, q *model.ChatQuery) ([]model.ChatMessage, error) {
	peer, err := s.peer(ctx, ident, q.With, "with")
	if err != nil {
		return nil, err
	}
	return s.chat.History(ctx, &repo.ChatHistoryQuery{
		UserID:     ident.ID,
		PeerID:     peer.ID,
		UnitID:     q.UnitID,
		PropertyID: q.PropertyID,
		BeforeID:   q.BeforeID,
		Limit:      q.NormalizeLimit(),
	})
}

func (s *ChatService) MarkRead(ctx context.Context, ident *model.Identity, id uint64) (*model.ChatMessage, error) {
	msg, err := s.chat.MarkRead(ctx, id, ident.ID)
	return msg, repoErr(err, "message")
}

func (s *ChatService) UnreadCount(ctx context.Context, ident *model.Identity) (int64, error) {
	return s.chat.UnreadCount(ctx, ident.ID)
}

// Conversations lists every peer of the caller, most recent first.
func (s *ChatService) Conversations(ctx context.Context, ident *model.Identity) ([]model.Conversation, error) {
	peers, err := s.chat.Peers(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	list := make([]model.Conversation, 0, len(peers))
	for _, id := range peers {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		last, err := s.chat.LastWith(ctx, ident.ID, id)
		if err != nil {
			return nil, err
		}
		unread, err := s.chat.UnreadFrom(ctx, ident.ID, id)
		if err != nil {
			return nil, err
		}
		list = append(list, model.Conversation{Peer: contactOf(u), LastMessage: last, UnreadCount: unread})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastMessage.ID > list[j].LastMessage.ID
	})
	return list, nil
}
