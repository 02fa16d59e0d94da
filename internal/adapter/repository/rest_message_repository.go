package repository

import (
	"context"
	"net/url"
	"strconv"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/internal/infrastructure/rest"
)

type restMessageRepository struct {
	client *rest.Client
}

func NewRestMessageRepository(client *rest.Client) repository.MessageRepository {
	return &restMessageRepository{client: client}
}

func (r *restMessageRepository) ListConversations(ctx context.Context) ([]entity.Conversation, error) {
	var conversations []entity.Conversation
	if err := r.client.Get(ctx, "/mensajes/listar_conversaciones", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *restMessageRepository) GetMessages(ctx context.Context, conversationID int) ([]entity.Message, error) {
	query := url.Values{"conversacion_id": {strconv.Itoa(conversationID)}}
	var messages []entity.Message
	if err := r.client.Get(ctx, "/mensajes/obtener_mensajes", query, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *restMessageRepository) StartConversation(ctx context.Context, counterpartID int, content string) (*entity.Conversation, error) {
	body := map[string]interface{}{
		"receptor_id": counterpartID,
		"contenido":   content,
	}
	var conversation entity.Conversation
	if err := r.client.PostJSON(ctx, "/mensajes/iniciar_conversacion", body, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *restMessageRepository) SendMessage(ctx context.Context, conversationID int, content string) (*entity.Message, error) {
	body := map[string]interface{}{
		"conversacion_id": conversationID,
		"contenido":       content,
	}
	var message entity.Message
	if err := r.client.PostJSON(ctx, "/mensajes/enviar_mensaje", body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *restMessageRepository) MarkRead(ctx context.Context, conversationID int) error {
	body := map[string]interface{}{"conversacion_id": conversationID}
	return r.client.PostJSON(ctx, "/mensajes/marcar_leidos", body, nil)
}

func (r *restMessageRepository) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Unread int `json:"no_leidos"`
	}
	if err := r.client.Get(ctx, "/mensajes/no_leidos", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Unread, nil
}

func (r *restMessageRepository) SearchUsers(ctx context.Context, term string) ([]entity.User, error) {
	query := url.Values{"q": {term}}
	var users []entity.User
	if err := r.client.Get(ctx, "/mensajes/buscar_usuarios", query, &users); err != nil {
		return nil, err
	}
	return users, nil
}
