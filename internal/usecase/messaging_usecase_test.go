package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendeya/internal/domain/entity"
)

func newMessaging(t *testing.T, repo *fakeMessageRepo) *MessagingUseCase {
	t.Helper()
	messaging := NewMessagingUseCase(repo, loggedInSession(t))
	messaging.now = func() time.Time {
		return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return messaging
}

func TestSendMessageReplacesPlaceholderInPlace(t *testing.T) {
	repo := &fakeMessageRepo{
		messages: map[int][]entity.Message{
			1: {{ID: 10, Content: "hola"}},
		},
	}
	messaging := newMessaging(t, repo)
	require.NoError(t, messaging.OpenConversation(context.Background(), entity.Conversation{ID: 1, CounterpartID: 2}))

	require.NoError(t, messaging.SendMessage(context.Background(), "¿sigue disponible?"))

	messages := messaging.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "hola", messages[0].Content)
	assert.Equal(t, "¿sigue disponible?", messages[1].Content)
	assert.False(t, messages[1].IsPending())
	assert.NotZero(t, messages[1].ID)
}

func TestFailedSendPurgesEveryPendingMessage(t *testing.T) {
	repo := &fakeMessageRepo{
		messages: map[int][]entity.Message{1: {{ID: 10, Content: "hola"}}},
		sendErr:  errBackendDown,
	}
	messaging := newMessaging(t, repo)
	require.NoError(t, messaging.OpenConversation(context.Background(), entity.Conversation{ID: 1, CounterpartID: 2}))

	err := messaging.SendMessage(context.Background(), "no llega")

	require.Error(t, err)
	for _, message := range messaging.Messages() {
		assert.False(t, message.IsPending())
	}
	assert.Len(t, messaging.Messages(), 1)
	assert.NotEmpty(t, messaging.Error())
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	messaging := newMessaging(t, &fakeMessageRepo{})
	require.NoError(t, messaging.OpenConversation(context.Background(), entity.Conversation{ID: 1}))

	assert.Error(t, messaging.SendMessage(context.Background(), "   "))
	assert.Empty(t, messaging.Messages())
}

func TestSendMessageRequiresActiveConversation(t *testing.T) {
	messaging := newMessaging(t, &fakeMessageRepo{})

	assert.Error(t, messaging.SendMessage(context.Background(), "hola"))
}

func TestOpenConversationMarksReadAndRefreshesUnread(t *testing.T) {
	repo := &fakeMessageRepo{
		conversations: []entity.Conversation{{ID: 1, UnreadCount: 4}},
		messages:      map[int][]entity.Message{1: {{ID: 5, Content: "hola"}}},
		unread:        0,
	}
	messaging := newMessaging(t, repo)
	require.NoError(t, messaging.LoadConversations(context.Background()))

	require.NoError(t, messaging.OpenConversation(context.Background(), entity.Conversation{ID: 1, CounterpartID: 2}))

	assert.Equal(t, []int{1}, repo.markedRead)
	assert.Zero(t, messaging.Conversations()[0].UnreadCount)
	assert.Zero(t, messaging.Unread())
	require.NotNil(t, messaging.Active())
	assert.Equal(t, 1, messaging.Active().ID)
}

func TestLoadConversationsFailureKeepsPriorList(t *testing.T) {
	repo := &fakeMessageRepo{conversations: []entity.Conversation{{ID: 1, CounterpartName: "Ana"}}}
	messaging := newMessaging(t, repo)
	require.NoError(t, messaging.LoadConversations(context.Background()))

	repo.listErr = errBackendDown
	err := messaging.LoadConversations(context.Background())

	require.Error(t, err)
	require.Len(t, messaging.Conversations(), 1)
	assert.Equal(t, "Ana", messaging.Conversations()[0].CounterpartName)
	assert.NotEmpty(t, messaging.Error())
}

func TestStaleConversationLoadIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	repo := &fakeMessageRepo{
		conversations: []entity.Conversation{{ID: 1, CounterpartName: "vieja"}},
		listGate:      gate,
	}
	messaging := newMessaging(t, repo)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// First load: blocked on the gate, resolves last.
		messaging.LoadConversations(context.Background())
	}()

	// Give the first load time to claim its sequence number.
	time.Sleep(20 * time.Millisecond)

	repo.setConversations([]entity.Conversation{{ID: 2, CounterpartName: "nueva"}})
	require.NoError(t, messaging.LoadConversations(context.Background()))

	close(gate)
	wg.Wait()

	require.Len(t, messaging.Conversations(), 1)
	assert.Equal(t, "nueva", messaging.Conversations()[0].CounterpartName)
}

func TestBlankSearchClearsResultsWithoutRequest(t *testing.T) {
	repo := &fakeMessageRepo{users: []entity.User{{ID: 9, Name: "Mar"}}}
	messaging := newMessaging(t, repo)

	require.NoError(t, messaging.SearchCounterparts(context.Background(), "mar"))
	require.Len(t, messaging.SearchResults(), 1)

	require.NoError(t, messaging.SearchCounterparts(context.Background(), "   "))

	assert.Empty(t, messaging.SearchResults())
	assert.Equal(t, []string{"mar"}, repo.searches)
}

func TestStartConversationOpensIt(t *testing.T) {
	repo := &fakeMessageRepo{messages: map[int][]entity.Message{}}
	messaging := newMessaging(t, repo)

	require.NoError(t, messaging.StartConversation(context.Background(), 7, "hola, ¿está disponible?"))

	require.NotNil(t, messaging.Active())
	assert.Equal(t, 7, messaging.Active().CounterpartID)
	assert.NotEmpty(t, messaging.Conversations())
}

func TestStartConversationRejectsBlankFirstMessage(t *testing.T) {
	messaging := newMessaging(t, &fakeMessageRepo{})

	assert.Error(t, messaging.StartConversation(context.Background(), 7, ""))
	assert.Nil(t, messaging.Active())
}

func TestFormatTimestampUsesCoordinatorClock(t *testing.T) {
	messaging := newMessaging(t, &fakeMessageRepo{})

	sameDay := time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "09:30", messaging.FormatTimestamp(sameDay))

	yesterday := time.Date(2025, time.March, 14, 21, 5, 0, 0, time.UTC)
	assert.Equal(t, "Ayer 21:05", messaging.FormatTimestamp(yesterday))
}
