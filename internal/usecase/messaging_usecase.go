package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
	"vendeya/pkg/logger"
	"vendeya/pkg/utils"
)

// MessagingUseCase owns the conversation list, the active conversation
// and its messages, the unread counter, and counterpart search. Sends are
// optimistic: a pending placeholder is appended immediately and either
// replaced in place by the server-confirmed message or purged on failure;
// a placeholder is never left dangling.
//
// List loads are guarded by per-slice sequence numbers: a response that
// resolves after a newer request has started is discarded instead of
// clobbering fresher state.
type MessagingUseCase struct {
	messageRepo repository.MessageRepository
	session     *SessionUseCase

	// Injectable for deterministic tests.
	now        func() time.Time
	newLocalID func() string

	mu            sync.Mutex
	conversations []entity.Conversation
	active        *entity.Conversation
	messages      []entity.Message
	unread        int
	searchResults []entity.User
	errMsg        string

	loadingConversations bool
	loadingMessages      bool
	sending              bool

	convSeq   uint64
	msgSeq    uint64
	searchSeq uint64
}

func NewMessagingUseCase(messageRepo repository.MessageRepository, session *SessionUseCase) *MessagingUseCase {
	return &MessagingUseCase{
		messageRepo: messageRepo,
		session:     session,
		now:         time.Now,
		newLocalID:  uuid.NewString,
	}
}

// LoadConversations replaces the conversation list wholesale. On failure
// the error slot is set and the prior list is left untouched.
func (uc *MessagingUseCase) LoadConversations(ctx context.Context) error {
	uc.mu.Lock()
	uc.convSeq++
	seq := uc.convSeq
	uc.loadingConversations = true
	uc.mu.Unlock()

	conversations, err := uc.messageRepo.ListConversations(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if seq != uc.convSeq {
		// A newer load is in flight or already landed; drop this one.
		return nil
	}
	uc.loadingConversations = false
	if err != nil {
		uc.errMsg = errors.UserMessage(err)
		return err
	}
	uc.conversations = conversations
	uc.errMsg = ""
	return nil
}

// OpenConversation fetches the conversation's messages, makes it the
// active one, marks it read on the backend and refreshes the unread
// counter. A failure surfaces an error but does not revert the selection.
func (uc *MessagingUseCase) OpenConversation(ctx context.Context, conversation entity.Conversation) error {
	uc.mu.Lock()
	uc.msgSeq++
	seq := uc.msgSeq
	uc.active = &conversation
	uc.loadingMessages = true
	uc.mu.Unlock()

	messages, err := uc.messageRepo.GetMessages(ctx, conversation.ID)

	uc.mu.Lock()
	if seq != uc.msgSeq {
		uc.mu.Unlock()
		return nil
	}
	uc.loadingMessages = false
	if err != nil {
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return err
	}
	uc.messages = messages
	uc.errMsg = ""
	uc.mu.Unlock()

	if err := uc.messageRepo.MarkRead(ctx, conversation.ID); err != nil {
		logger.Warn("Failed to mark conversation %d read: %v", conversation.ID, err)
	} else {
		uc.mu.Lock()
		for i := range uc.conversations {
			if uc.conversations[i].ID == conversation.ID {
				uc.conversations[i].UnreadCount = 0
			}
		}
		uc.mu.Unlock()
	}

	if err := uc.RefreshUnread(ctx); err != nil {
		logger.Warn("Failed to refresh unread counter: %v", err)
	}
	return nil
}

// SendMessage appends a pending placeholder immediately, then reconciles:
// on success the placeholder is replaced in place by the confirmed
// message and the conversation list is refreshed; on failure every
// pending entry is purged and the error is surfaced. The caller may retry
// by sending again.
func (uc *MessagingUseCase) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.BadRequest("El mensaje no puede estar vacío", nil)
	}

	user := uc.session.User()
	if user == nil {
		return errors.Unauthorized("Inicia sesión para enviar mensajes", nil)
	}

	uc.mu.Lock()
	if uc.active == nil {
		uc.mu.Unlock()
		return errors.BadRequest("No hay ninguna conversación abierta", nil)
	}
	conversationID := uc.active.ID
	placeholder := entity.Message{
		SenderID:   user.ID,
		ReceiverID: uc.active.CounterpartID,
		Content:    text,
		CreatedAt:  uc.now(),
		Delivery:   entity.DeliveryPending,
		LocalID:    uc.newLocalID(),
	}
	uc.messages = append(uc.messages, placeholder)
	uc.sending = true
	uc.mu.Unlock()

	confirmed, err := uc.messageRepo.SendMessage(ctx, conversationID, text)

	uc.mu.Lock()
	uc.sending = false
	if err != nil {
		// Rollback: no pending entry survives a failed send.
		kept := uc.messages[:0]
		for _, m := range uc.messages {
			if !m.IsPending() {
				kept = append(kept, m)
			}
		}
		uc.messages = kept
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return err
	}
	for i := range uc.messages {
		if uc.messages[i].LocalID == placeholder.LocalID {
			uc.messages[i] = *confirmed
			break
		}
	}
	uc.errMsg = ""
	uc.mu.Unlock()

	// Refresh the list so the preview and ordering reflect the new
	// last message.
	if err := uc.LoadConversations(ctx); err != nil {
		logger.Warn("Conversation list refresh after send failed: %v", err)
	}
	return nil
}

// StartConversation creates the conversation and its first message in one
// request, refreshes the list, and opens the new conversation.
func (uc *MessagingUseCase) StartConversation(ctx context.Context, counterpartID int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.BadRequest("El primer mensaje no puede estar vacío", nil)
	}

	conversation, err := uc.messageRepo.StartConversation(ctx, counterpartID, text)
	if err != nil {
		uc.mu.Lock()
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return err
	}

	if err := uc.LoadConversations(ctx); err != nil {
		logger.Warn("Conversation list refresh after start failed: %v", err)
	}
	return uc.OpenConversation(ctx, *conversation)
}

// SearchCounterparts looks up users to start a conversation with. A
// blank term clears the results without issuing a request.
func (uc *MessagingUseCase) SearchCounterparts(ctx context.Context, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		uc.mu.Lock()
		uc.searchSeq++
		uc.searchResults = nil
		uc.mu.Unlock()
		return nil
	}

	uc.mu.Lock()
	uc.searchSeq++
	seq := uc.searchSeq
	uc.mu.Unlock()

	users, err := uc.messageRepo.SearchUsers(ctx, term)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if seq != uc.searchSeq {
		return nil
	}
	if err != nil {
		uc.errMsg = errors.UserMessage(err)
		return err
	}
	uc.searchResults = users
	return nil
}

func (uc *MessagingUseCase) RefreshUnread(ctx context.Context) error {
	count, err := uc.messageRepo.UnreadCount(ctx)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	uc.unread = count
	uc.mu.Unlock()
	return nil
}

// FormatTimestamp labels a message timestamp the way the chat pane shows
// it, relative to the coordinator's clock.
func (uc *MessagingUseCase) FormatTimestamp(ts time.Time) string {
	return utils.FormatTimestamp(ts, uc.now())
}

func (uc *MessagingUseCase) Conversations() []entity.Conversation {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list := make([]entity.Conversation, len(uc.conversations))
	copy(list, uc.conversations)
	return list
}

func (uc *MessagingUseCase) Active() *entity.Conversation {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.active == nil {
		return nil
	}
	active := *uc.active
	return &active
}

func (uc *MessagingUseCase) Messages() []entity.Message {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list := make([]entity.Message, len(uc.messages))
	copy(list, uc.messages)
	return list
}

func (uc *MessagingUseCase) Unread() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.unread
}

func (uc *MessagingUseCase) SearchResults() []entity.User {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list := make([]entity.User, len(uc.searchResults))
	copy(list, uc.searchResults)
	return list
}

func (uc *MessagingUseCase) Sending() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sending
}

func (uc *MessagingUseCase) Error() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.errMsg
}

func (uc *MessagingUseCase) ClearError() {
	uc.mu.Lock()
	uc.errMsg = ""
	uc.mu.Unlock()
}
