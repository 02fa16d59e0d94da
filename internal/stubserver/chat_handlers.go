package stubserver

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"vendeya/internal/domain/entity"
	"vendeya/pkg/errors"
	"vendeya/pkg/response"
)

// viewFor projects a stored conversation into the shape one participant
// sees: the counterpart, the last message preview and that participant's
// unread count. Callers hold s.mu.
func (s *Server) viewFor(conv *conversation, userID int) entity.Conversation {
	counterpartID := conv.userA
	if counterpartID == userID {
		counterpartID = conv.userB
	}
	counterpartName := ""
	if acc, ok := s.accounts[counterpartID]; ok {
		counterpartName = acc.user.Name
	}

	view := entity.Conversation{
		ID:              conv.id,
		CounterpartID:   counterpartID,
		CounterpartName: counterpartName,
		UpdatedAt:       conv.updated,
	}
	if len(conv.messages) > 0 {
		view.LastMessage = conv.messages[len(conv.messages)-1].Content
	}
	for _, message := range conv.messages {
		if message.ReceiverID == userID && !message.Read {
			view.UnreadCount++
		}
	}
	return view
}

func (s *Server) conversationOf(userID, conversationID int) *conversation {
	for _, conv := range s.conversations {
		if conv.id == conversationID && (conv.userA == userID || conv.userB == userID) {
			return conv
		}
	}
	return nil
}

func (s *Server) handleListConversations(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	views := []entity.Conversation{}
	for _, conv := range s.conversations {
		if conv.userA == userID || conv.userB == userID {
			views = append(views, s.viewFor(conv, userID))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].UpdatedAt.After(views[j].UpdatedAt) })
	return response.JSON(c, views)
}

func (s *Server) handleGetMessages(c echo.Context) error {
	userID := currentUser(c)
	conversationID, _ := strconv.Atoi(c.QueryParam("conversacion_id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.conversationOf(userID, conversationID)
	if conv == nil {
		return response.Error(c, errors.NotFound("Conversación", nil))
	}
	messages := make([]entity.Message, len(conv.messages))
	copy(messages, conv.messages)
	return response.JSON(c, messages)
}

func (s *Server) handleStartConversation(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ReceiverID int    `json:"receptor_id"`
		Content    string `json:"contenido"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if strings.TrimSpace(req.Content) == "" {
		return response.Error(c, errors.BadRequest("El mensaje no puede estar vacío", nil))
	}
	if req.ReceiverID == userID {
		return response.Error(c, errors.BadRequest("No puedes iniciar una conversación contigo mismo", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[req.ReceiverID]; !ok {
		return response.Error(c, errors.NotFound("Usuario", nil))
	}

	// Reuse the conversation if one already exists between the pair.
	var conv *conversation
	for _, existing := range s.conversations {
		if (existing.userA == userID && existing.userB == req.ReceiverID) ||
			(existing.userA == req.ReceiverID && existing.userB == userID) {
			conv = existing
			break
		}
	}
	if conv == nil {
		conv = &conversation{id: s.id(), userA: userID, userB: req.ReceiverID}
		s.conversations = append(s.conversations, conv)
	}

	now := time.Now()
	conv.messages = append(conv.messages, entity.Message{
		ID:         s.id(),
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		CreatedAt:  now,
	})
	conv.updated = now

	return response.Created(c, s.viewFor(conv, userID))
}

func (s *Server) handleSendMessage(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ConversationID int    `json:"conversacion_id"`
		Content        string `json:"contenido"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if strings.TrimSpace(req.Content) == "" {
		return response.Error(c, errors.BadRequest("El mensaje no puede estar vacío", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.conversationOf(userID, req.ConversationID)
	if conv == nil {
		return response.Error(c, errors.NotFound("Conversación", nil))
	}

	receiverID := conv.userA
	if receiverID == userID {
		receiverID = conv.userB
	}
	now := time.Now()
	message := entity.Message{
		ID:         s.id(),
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    req.Content,
		CreatedAt:  now,
	}
	conv.messages = append(conv.messages, message)
	conv.updated = now

	return response.Created(c, message)
}

func (s *Server) handleMarkRead(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ConversationID int `json:"conversacion_id"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.conversationOf(userID, req.ConversationID)
	if conv == nil {
		return response.Error(c, errors.NotFound("Conversación", nil))
	}
	for i := range conv.messages {
		if conv.messages[i].ReceiverID == userID {
			conv.messages[i].Read = true
		}
	}
	return response.JSON(c, echo.Map{"actualizado": true})
}

func (s *Server) handleUnreadCount(c echo.Context) error {
	userID := currentUser(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	unread := 0
	for _, conv := range s.conversations {
		if conv.userA != userID && conv.userB != userID {
			continue
		}
		for _, message := range conv.messages {
			if message.ReceiverID == userID && !message.Read {
				unread++
			}
		}
	}
	return response.JSON(c, echo.Map{"no_leidos": unread})
}

func (s *Server) handleListRatings(c echo.Context) error {
	productID, _ := strconv.Atoi(c.QueryParam("producto_id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	ratings := make([]entity.Rating, len(s.ratings[productID]))
	copy(ratings, s.ratings[productID])

	stats := entity.RatingStats{Total: len(ratings)}
	if stats.Total > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating.Score
		}
		stats.Average = roundTenth(float64(sum) / float64(stats.Total))
	}
	return response.JSON(c, echo.Map{"valoraciones": ratings, "estadisticas": stats})
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func (s *Server) ownRating(userID, productID int) *entity.Rating {
	for i := range s.ratings[productID] {
		if s.ratings[productID][i].UserID == userID {
			return &s.ratings[productID][i]
		}
	}
	return nil
}

func (s *Server) handleCreateRating(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		ProductID int    `json:"producto_id"`
		Score     int    `json:"puntuacion"`
		Comment   string `json:"comentario"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if req.Score < 1 || req.Score > 5 {
		return response.Error(c, errors.BadRequest("La puntuación debe estar entre 1 y 5", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.purchases[userID][req.ProductID] {
		return response.Error(c, errors.Forbidden("Solo puedes valorar productos que hayas comprado", nil))
	}
	if s.ownRating(userID, req.ProductID) != nil {
		return response.Error(c, errors.BadRequest("Ya has valorado este producto", nil))
	}

	name := ""
	if acc, ok := s.accounts[userID]; ok {
		name = acc.user.Name
	}
	rating := entity.Rating{
		ID:        s.id(),
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  name,
		Score:     req.Score,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	s.ratings[req.ProductID] = append(s.ratings[req.ProductID], rating)
	return response.Created(c, rating)
}

func (s *Server) handleUpdateRating(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		RatingID int    `json:"valoracion_id"`
		Score    int    `json:"puntuacion"`
		Comment  string `json:"comentario"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}
	if req.Score < 1 || req.Score > 5 {
		return response.Error(c, errors.BadRequest("La puntuación debe estar entre 1 y 5", nil))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for productID := range s.ratings {
		for i := range s.ratings[productID] {
			rating := &s.ratings[productID][i]
			if rating.ID != req.RatingID {
				continue
			}
			if rating.UserID != userID {
				return response.Error(c, errors.Forbidden("No autorizado para editar esta valoración", nil))
			}
			rating.Score = req.Score
			rating.Comment = req.Comment
			return response.JSON(c, rating)
		}
	}
	return response.Error(c, errors.NotFound("Valoración", nil))
}

func (s *Server) handleDeleteRating(c echo.Context) error {
	userID := currentUser(c)
	var req struct {
		RatingID int `json:"valoracion_id"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Cuerpo de la petición no válido", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for productID := range s.ratings {
		for i := range s.ratings[productID] {
			rating := s.ratings[productID][i]
			if rating.ID != req.RatingID {
				continue
			}
			if rating.UserID != userID {
				return response.Error(c, errors.Forbidden("No autorizado para eliminar esta valoración", nil))
			}
			s.ratings[productID] = append(s.ratings[productID][:i], s.ratings[productID][i+1:]...)
			return response.JSON(c, echo.Map{"eliminado": true})
		}
	}
	return response.Error(c, errors.NotFound("Valoración", nil))
}

func (s *Server) handleVerifyRating(c echo.Context) error {
	userID := currentUser(c)
	productID, _ := strconv.Atoi(c.QueryParam("producto_id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	own := s.ownRating(userID, productID)
	canRate := s.purchases[userID][productID] && own == nil
	return response.JSON(c, echo.Map{"puede_valorar": canRate, "valoracion": own})
}
