package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	booking any
	order   any
	err     error
}

func (s *stubLoader) LoadBooking(context.Context, uint) (any, error) {
	return s.booking, s.err
}

func (s *stubLoader) LoadOrder(context.Context, uint) (any, error) {
	return s.order, s.err
}

type captured struct {
	event   string
	payload any
}

type captureBus struct {
	events []captured
}

func (b *captureBus) Broadcast(event string, payload any) {
	b.events = append(b.events, captured{event: event, payload: payload})
}

func newTestNotifier(loader DocLoader, bus Broadcaster) *Notifier {
	return New("postgres://test", loader, bus, zerolog.Nop())
}

func TestHandle_BookingUpdateEmitsTypedAndGenericEvents(t *testing.T) {
	bus := &captureBus{}
	loader := &stubLoader{booking: map[string]any{"id": uint(5), "status": "confirmed"}}
	n := newTestNotifier(loader, bus)

	n.Handle(context.Background(), Change{
		Table:   "bookings",
		Action:  "UPDATE",
		ID:      5,
		Changed: []string{"status"},
	})

	require.Len(t, bus.events, 2)
	assert.Equal(t, "booking_updated", bus.events[0].event)
	assert.Equal(t, "new_booking_activity", bus.events[1].event)

	payload, ok := bus.events[0].payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, uint(5), payload["id"])
	assert.Equal(t, loader.booking, payload["booking"])
	assert.Equal(t, []string{"status"}, payload["changed_fields"])

	// Both events carry the same payload.
	assert.Equal(t, bus.events[0].payload, bus.events[1].payload)
}

func TestHandle_OrderInsert(t *testing.T) {
	bus := &captureBus{}
	loader := &stubLoader{order: map[string]any{"number": "abc"}}
	n := newTestNotifier(loader, bus)

	n.Handle(context.Background(), Change{Table: "orders", Action: "INSERT", ID: 9})

	require.Len(t, bus.events, 2)
	assert.Equal(t, "order_created", bus.events[0].event)
	assert.Equal(t, "new_order_activity", bus.events[1].event)

	payload := bus.events[0].payload.(map[string]any)
	assert.Equal(t, loader.order, payload["order"])
	assert.NotContains(t, payload, "changed_fields")
}

func TestHandle_DeleteSkipsDocumentLoad(t *testing.T) {
	bus := &captureBus{}
	loader := &stubLoader{err: errors.New("must not be called")}
	n := newTestNotifier(loader, bus)

	n.Handle(context.Background(), Change{Table: "bookings", Action: "DELETE", ID: 3})

	require.Len(t, bus.events, 2)
	assert.Equal(t, "booking_deleted", bus.events[0].event)

	payload := bus.events[0].payload.(map[string]any)
	assert.Equal(t, uint(3), payload["id"])
	assert.NotContains(t, payload, "booking")
}

func TestHandle_LoadFailureSuppressesBroadcast(t *testing.T) {
	bus := &captureBus{}
	loader := &stubLoader{err: errors.New("row gone")}
	n := newTestNotifier(loader, bus)

	n.Handle(context.Background(), Change{Table: "bookings", Action: "UPDATE", ID: 4})

	assert.Empty(t, bus.events)
}

func TestHandle_IgnoresUnknownTableAndAction(t *testing.T) {
	bus := &captureBus{}
	n := newTestNotifier(&stubLoader{}, bus)

	n.Handle(context.Background(), Change{Table: "users", Action: "UPDATE", ID: 1})
	n.Handle(context.Background(), Change{Table: "bookings", Action: "TRUNCATE", ID: 1})

	assert.Empty(t, bus.events)
}

func TestEventsFor(t *testing.T) {
	event, generic, ok := eventsFor("booking", "INSERT")
	require.True(t, ok)
	assert.Equal(t, "booking_created", event)
	assert.Equal(t, "new_booking_activity", generic)

	_, _, ok = eventsFor("order", "VACUUM")
	assert.False(t, ok)
}
