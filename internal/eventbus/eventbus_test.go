package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyline/internal/domain"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := New()
	var got []string

	b.Subscribe(EventStoryOpened, func(e DomainEvent) { got = append(got, "first") })
	b.Subscribe(EventStoryOpened, func(e DomainEvent) { got = append(got, "second") })
	b.Subscribe(EventStoryClosed, func(e DomainEvent) { got = append(got, "closed") })

	b.Publish(StoryOpenedEvent{StoryID: "navigation/selectable-list"})

	assert.Equal(t, []string{"first", "second"}, got, "handlers run synchronously and in order")
}

func TestUnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := New()
	var a, c int

	unsubA := b.Subscribe(EventActionLogged, func(e DomainEvent) { a++ })
	b.Subscribe(EventActionLogged, func(e DomainEvent) { c++ })

	b.Publish(ActionLoggedEvent{})
	unsubA()
	unsubA()
	b.Publish(ActionLoggedEvent{})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, c)
}

func TestHandlerPanicDoesNotStopDelivery(t *testing.T) {
	b := New()
	delivered := false

	b.Subscribe(EventError, func(e DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(e DomainEvent) { delivered = true })

	require.NotPanics(t, func() {
		b.Publish(ErrorEvent{Message: "x"})
	})
	assert.True(t, delivered)
}

func TestHandlerMayUnsubscribeDuringPublish(t *testing.T) {
	b := New()
	calls := 0
	var unsub func()
	unsub = b.Subscribe(EventStoryClosed, func(e DomainEvent) {
		calls++
		unsub()
	})

	b.Publish(StoryClosedEvent{})
	b.Publish(StoryClosedEvent{})

	assert.Equal(t, 1, calls)
}

func TestActionEventCarriesPayload(t *testing.T) {
	b := New()
	var got domain.Action
	b.Subscribe(EventActionLogged, func(e DomainEvent) {
		got = e.(ActionLoggedEvent).Action
	})

	b.Publish(ActionLoggedEvent{Action: domain.Action{Name: "onSelect", Args: []any{"Banana", 1}}})

	assert.Equal(t, `onSelect("Banana", 1)`, got.String())
}

func TestNullBus(t *testing.T) {
	var b EventBus = NullBus{}
	called := false
	unsub := b.Subscribe(EventError, func(e DomainEvent) { called = true })
	b.Publish(ErrorEvent{})
	unsub()
	assert.False(t, called)
}
