package stubserver

import (
	"time"

	"vendeya/internal/domain/entity"
)

// SeedDemo loads a small demo dataset: an admin, a seller with products,
// a customer with a past purchase, and a conversation between them.
// Credentials are the email with password "secreto".
func (s *Server) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := func(name, email, role string) entity.User {
		user := entity.User{ID: s.id(), Name: name, Email: email, Role: role}
		s.accounts[user.ID] = &account{user: user, password: "secreto"}
		s.emails[email] = user.ID
		return user
	}

	admin := seed("Admin", "admin@vendeya.test", entity.RoleAdmin)
	seller := seed("Marta Vendedora", "marta@vendeya.test", entity.RoleSeller)
	buyer := seed("Carlos Cliente", "carlos@vendeya.test", entity.RoleCustomer)
	_ = admin

	electronics := entity.Category{ID: s.id(), Name: "Electrónica"}
	phones := entity.Category{ID: s.id(), Name: "Móviles", ParentID: electronics.ID}
	home := entity.Category{ID: s.id(), Name: "Hogar"}
	s.categories = append(s.categories, electronics, phones, home)

	now := time.Now()
	products := []entity.Product{
		{
			SellerID:    seller.ID,
			SellerName:  seller.Name,
			CategoryID:  phones.ID,
			Name:        "Teléfono restaurado",
			Description: "Pantalla de 6 pulgadas, batería nueva.",
			Price:       149.99,
			Stock:       5,
			CreatedAt:   now.Add(-72 * time.Hour),
		},
		{
			SellerID:    seller.ID,
			SellerName:  seller.Name,
			CategoryID:  home.ID,
			Name:        "Lámpara de escritorio",
			Description: "Luz cálida regulable.",
			Price:       24.50,
			Stock:       12,
			CreatedAt:   now.Add(-48 * time.Hour),
		},
	}
	for i := range products {
		products[i].ID = s.id()
		s.products[products[i].ID] = &products[i]
	}

	// A delivered purchase so the customer can rate the phone.
	delivered := &order{
		id:      s.id(),
		buyerID: buyer.ID,
		created: now.Add(-24 * time.Hour),
		status:  entity.StatusDelivered,
		items: []entity.OrderItem{{
			ProductID: products[0].ID,
			Name:      products[0].Name,
			Quantity:  1,
			UnitPrice: products[0].Price,
		}},
		sellers: map[int]bool{seller.ID: true},
	}
	s.orders = append(s.orders, delivered)
	s.purchases[buyer.ID] = map[int]bool{products[0].ID: true}

	conv := &conversation{
		id:      s.id(),
		userA:   buyer.ID,
		userB:   seller.ID,
		updated: now.Add(-time.Hour),
	}
	conv.messages = append(conv.messages,
		entity.Message{
			ID:         s.id(),
			SenderID:   buyer.ID,
			ReceiverID: seller.ID,
			Content:    "¿El teléfono incluye cargador?",
			CreatedAt:  now.Add(-2 * time.Hour),
			Read:       true,
		},
		entity.Message{
			ID:         s.id(),
			SenderID:   seller.ID,
			ReceiverID: buyer.ID,
			Content:    "Sí, cargador y funda incluidos.",
			CreatedAt:  now.Add(-time.Hour),
		},
	)
	s.conversations = append(s.conversations, conv)
}
