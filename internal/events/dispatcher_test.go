package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pet-service/internal/domain"
)

type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (stubHasher) Verify(plain, hashed string) bool  { return "hashed:"+plain == hashed }

func newTestUser(t *testing.T, username, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, email, nil, "Sup3rSecret", domain.RoleUser, stubHasher{}, domain.DefaultPasswordPolicy())
	require.NoError(t, err)
	return user
}

func TestDispatcherInvokesSubscribersInOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(domain.EventPetCreated, func(ctx context.Context, e domain.Event) error {
		calls = append(calls, "first")
		return nil
	})
	dispatcher.Subscribe(domain.EventPetCreated, func(ctx context.Context, e domain.Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), domain.Event{Type: domain.EventPetCreated})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(domain.EventPetDeleted, func(ctx context.Context, e domain.Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), domain.Event{Type: domain.EventPetCreated})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls []string
	dispatcher.Subscribe(domain.EventUserRegistered, func(ctx context.Context, e domain.Event) error {
		calls = append(calls, "failing")
		return errors.New("handler broke")
	})
	dispatcher.Subscribe(domain.EventUserRegistered, func(ctx context.Context, e domain.Event) error {
		calls = append(calls, "healthy")
		return nil
	})

	err := dispatcher.Publish(context.Background(), domain.Event{Type: domain.EventUserRegistered})
	require.NoError(t, err)
	assert.Equal(t, []string{"failing", "healthy"}, calls)
}

func TestPublisherDrainsAggregateInOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	publisher := NewPublisher(dispatcher)

	var seen []domain.EventType
	for _, et := range domain.AllEventTypes() {
		dispatcher.Subscribe(et, func(ctx context.Context, e domain.Event) error {
			seen = append(seen, e.Type)
			return nil
		})
	}

	user := newTestUser(t, "casey_r", "casey@example.com")
	require.NoError(t, user.UpdateUsername("casey_lynn"))

	require.NoError(t, publisher.PublishAggregate(context.Background(), user))

	assert.Equal(t, []domain.EventType{domain.EventUserRegistered, domain.EventUserUsernameChanged}, seen)
	assert.Empty(t, user.DomainEvents(), "events must be cleared after publication")

	// A second drain publishes nothing.
	seen = nil
	require.NoError(t, publisher.PublishAggregate(context.Background(), user))
	assert.Empty(t, seen)
}

func TestPublisherNilSafety(t *testing.T) {
	var publisher *Publisher
	assert.NoError(t, publisher.PublishAggregate(context.Background(), nil))
	assert.NoError(t, publisher.PublishEvent(context.Background(), domain.Event{Type: domain.EventPetCreated}))

	wired := NewPublisher(nil)
	user := newTestUser(t, "casey_r", "casey@example.com")
	assert.NoError(t, wired.PublishAggregate(context.Background(), user))
}

func TestPublisherPublishAggregates(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	publisher := NewPublisher(dispatcher)

	var ids []string
	dispatcher.Subscribe(domain.EventUserRegistered, func(ctx context.Context, e domain.Event) error {
		ids = append(ids, e.AggregateID)
		return nil
	})

	first := newTestUser(t, "casey_r", "casey@example.com")
	second := newTestUser(t, "jordan_p", "jordan@example.com")

	require.NoError(t, publisher.PublishAggregates(context.Background(), first, second))
	assert.Equal(t, []string{first.ID, second.ID}, ids)
}
