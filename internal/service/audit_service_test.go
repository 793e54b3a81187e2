package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/observability"
	"github.com/spec-kit/pet-service/internal/repository/memory"
)

func TestAuditServiceRecordsHistory(t *testing.T) {
	ctx := context.Background()

	dispatcher := events.NewInMemoryDispatcher()
	publisher := events.NewPublisher(dispatcher)
	metrics := observability.NewMetrics()

	audit := NewAuditService(dispatcher, memory.NewEventLogRepo(), metrics, zap.NewNop())
	audit.RegisterHandlers()

	users := NewUserService(UserDependencies{
		UserRepo:  memory.NewUserRepo(),
		Hasher:    plainHasher{},
		Publisher: publisher,
	})

	user := registerUser(t, users, "casey_r", "casey@example.com")
	_, err := users.UpdateUsername(ctx, user.ID, "casey_lynn")
	require.NoError(t, err)

	history, err := audit.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.EventUserRegistered, history[0].Type)
	assert.Equal(t, domain.EventUserUsernameChanged, history[1].Type)
	for _, event := range history {
		assert.Equal(t, user.ID, event.AggregateID)
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.OccurredAt.IsZero())
	}

	assert.Equal(t, int64(1), metrics.EventCount(string(domain.EventUserRegistered)))
	assert.Equal(t, int64(1), metrics.EventCount(string(domain.EventUserUsernameChanged)))
}

func TestAuditServiceHistoryEmpty(t *testing.T) {
	audit := NewAuditService(events.NewInMemoryDispatcher(), memory.NewEventLogRepo(), nil, zap.NewNop())

	history, err := audit.History(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, history)
}
