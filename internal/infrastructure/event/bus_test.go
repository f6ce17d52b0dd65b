package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

type recordingHandler struct {
	eventTypes []string
	received   []shared.DomainEvent
	err        error
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.eventTypes
}

type panickingHandler struct{}

func (h *panickingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	panic("boom")
}

func (h *panickingHandler) EventTypes() []string {
	return []string{waste.EventTypeReceptionCreated}
}

func newTestReception(t *testing.T) *waste.Reception {
	t.Helper()
	reception, err := waste.NewReception(uuid.New(), "REC-2024-00001", uuid.New(), nil, time.Now())
	require.NoError(t, err)
	return reception
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers event to subscribed handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{waste.EventTypeReceptionCreated}}
		bus.Subscribe(handler)

		event := waste.NewReceptionCreatedEvent(newTestReception(t))
		require.NoError(t, bus.Publish(ctx, event))

		require.Len(t, handler.received, 1)
		assert.Equal(t, waste.EventTypeReceptionCreated, handler.received[0].EventType())
	})

	t.Run("handler not subscribed to type receives nothing", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{waste.EventTypeReceptionConfirmed}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, waste.NewReceptionCreatedEvent(newTestReception(t))))
		assert.Empty(t, handler.received)
	})

	t.Run("wildcard handler receives all events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		reception := newTestReception(t)
		require.NoError(t, bus.Publish(ctx,
			waste.NewReceptionCreatedEvent(reception),
			waste.NewReceptionCancelledEvent(reception),
		))
		assert.Len(t, handler.received, 2)
	})

	t.Run("handler error does not stop other handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{
			eventTypes: []string{waste.EventTypeReceptionCreated},
			err:        errors.New("handler failure"),
		}
		healthy := &recordingHandler{eventTypes: []string{waste.EventTypeReceptionCreated}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, waste.NewReceptionCreatedEvent(newTestReception(t))))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		bus.Subscribe(&panickingHandler{})
		healthy := &recordingHandler{eventTypes: []string{waste.EventTypeReceptionCreated}}
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, waste.NewReceptionCreatedEvent(newTestReception(t))))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribe removes handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{eventTypes: []string{waste.EventTypeReceptionCreated}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, waste.NewReceptionCreatedEvent(newTestReception(t))))
		assert.Empty(t, handler.received)
	})

	t.Run("start and stop", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		require.NoError(t, bus.Start(ctx))
		require.NoError(t, bus.Stop(ctx))
	})
}
