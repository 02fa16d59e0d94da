package usecase

import (
	"context"
	"sync"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
)

// In-memory repository fakes recording the calls the coordinators issue.

type fakeAuthRepo struct {
	user  *entity.User
	token string
	err   error
}

func (f *fakeAuthRepo) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.token, nil
}

func (f *fakeAuthRepo) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.token, nil
}

type fakeCartRepo struct {
	items []entity.CartItem
	calls []string
	err   error
}

func (f *fakeCartRepo) List(ctx context.Context) ([]entity.CartItem, error) {
	f.calls = append(f.calls, "list")
	if f.err != nil {
		return nil, f.err
	}
	items := make([]entity.CartItem, len(f.items))
	copy(items, f.items)
	return items, nil
}

func (f *fakeCartRepo) Add(ctx context.Context, productID, quantity int) error {
	f.calls = append(f.calls, "add")
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, entity.CartItem{
		ID:        len(f.items) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	f.calls = append(f.calls, "update")
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeCartRepo) Remove(ctx context.Context, itemID int) error {
	f.calls = append(f.calls, "remove")
	if f.err != nil {
		return f.err
	}
	kept := f.items[:0]
	for _, item := range f.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeCartRepo) Empty(ctx context.Context) error {
	f.calls = append(f.calls, "empty")
	if f.err != nil {
		return f.err
	}
	f.items = nil
	return nil
}

type fakeMessageRepo struct {
	mu            sync.Mutex
	conversations []entity.Conversation
	messages      map[int][]entity.Message
	users         []entity.User
	unread        int

	sendErr    error
	listErr    error
	markedRead []int
	searches   []string
	nextID     int

	// When set, the next ListConversations call blocks until the
	// channel is closed.
	listGate chan struct{}
}

func (f *fakeMessageRepo) setConversations(conversations []entity.Conversation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations = conversations
}

func (f *fakeMessageRepo) ListConversations(ctx context.Context) ([]entity.Conversation, error) {
	f.mu.Lock()
	gate := f.listGate
	f.listGate = nil
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	list := make([]entity.Conversation, len(f.conversations))
	copy(list, f.conversations)
	return list, nil
}

func (f *fakeMessageRepo) GetMessages(ctx context.Context, conversationID int) ([]entity.Message, error) {
	list := make([]entity.Message, len(f.messages[conversationID]))
	copy(list, f.messages[conversationID])
	return list, nil
}

func (f *fakeMessageRepo) StartConversation(ctx context.Context, counterpartID int, content string) (*entity.Conversation, error) {
	conversation := entity.Conversation{
		ID:            len(f.conversations) + 100,
		CounterpartID: counterpartID,
		LastMessage:   content,
	}
	f.conversations = append(f.conversations, conversation)
	return &conversation, nil
}

func (f *fakeMessageRepo) SendMessage(ctx context.Context, conversationID int, content string) (*entity.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextID++
	message := entity.Message{
		ID:      f.nextID,
		Content: content,
		Read:    false,
	}
	if f.messages == nil {
		f.messages = make(map[int][]entity.Message)
	}
	f.messages[conversationID] = append(f.messages[conversationID], message)
	return &message, nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, conversationID int) error {
	f.markedRead = append(f.markedRead, conversationID)
	return nil
}

func (f *fakeMessageRepo) UnreadCount(ctx context.Context) (int, error) {
	return f.unread, nil
}

func (f *fakeMessageRepo) SearchUsers(ctx context.Context, term string) ([]entity.User, error) {
	f.searches = append(f.searches, term)
	return f.users, nil
}

type fakeRatingRepo struct {
	ratings     []entity.Rating
	stats       entity.RatingStats
	eligibility repository.RatingEligibility
	nextID      int
	err         error
}

func (f *fakeRatingRepo) List(ctx context.Context, productID int) ([]entity.Rating, *entity.RatingStats, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	stats := f.stats
	list := make([]entity.Rating, len(f.ratings))
	copy(list, f.ratings)
	return list, &stats, nil
}

func (f *fakeRatingRepo) Create(ctx context.Context, productID, score int, comment string) (*entity.Rating, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	return &entity.Rating{ID: f.nextID, ProductID: productID, Score: score, Comment: comment}, nil
}

func (f *fakeRatingRepo) Update(ctx context.Context, ratingID, score int, comment string) (*entity.Rating, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Rating{ID: ratingID, Score: score, Comment: comment}, nil
}

func (f *fakeRatingRepo) Delete(ctx context.Context, ratingID int) error {
	return f.err
}

func (f *fakeRatingRepo) Verify(ctx context.Context, productID int) (*repository.RatingEligibility, error) {
	if f.err != nil {
		return nil, f.err
	}
	eligibility := f.eligibility
	return &eligibility, nil
}

type fakeOrderRepo struct {
	sellerOrders []entity.SellerOrder
	ownOrders    []entity.Order
	createErr    error
	updateErr    error
	updated      map[int]entity.OrderStatus
}

func (f *fakeOrderRepo) Create(ctx context.Context) (*entity.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.Order{ID: 1, Status: entity.StatusPending}, nil
}

func (f *fakeOrderRepo) ListOwn(ctx context.Context) ([]entity.Order, error) {
	return f.ownOrders, nil
}

func (f *fakeOrderRepo) ListSellerOrders(ctx context.Context) ([]entity.SellerOrder, error) {
	list := make([]entity.SellerOrder, len(f.sellerOrders))
	copy(list, f.sellerOrders)
	return list, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int, status entity.OrderStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = make(map[int]entity.OrderStatus)
	}
	f.updated[orderID] = status
	return nil
}

type fakeCategoryRepo struct {
	categories []entity.Category
	nextID     int
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	list := make([]entity.Category, len(f.categories))
	copy(list, f.categories)
	return list, nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, name string, parentID int) (*entity.Category, error) {
	f.nextID++
	category := entity.Category{ID: f.nextID + 1000, Name: name, ParentID: parentID}
	f.categories = append(f.categories, category)
	return &category, nil
}

var errBackendDown = errors.Internal("Error al conectar con el servidor", nil)
