package repository

import (
	"context"

	"vendeya/internal/domain/entity"
)

type MessageRepository interface {
	ListConversations(ctx context.Context) ([]entity.Conversation, error)
	GetMessages(ctx context.Context, conversationID int) ([]entity.Message, error)
	StartConversation(ctx context.Context, counterpartID int, content string) (*entity.Conversation, error)
	SendMessage(ctx context.Context, conversationID int, content string) (*entity.Message, error)
	MarkRead(ctx context.Context, conversationID int) error
	UnreadCount(ctx context.Context) (int, error)
	SearchUsers(ctx context.Context, term string) ([]entity.User, error)
}
