package bus_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
)

func debug(payload string) core.Action {
	return core.Action{Type: core.ActionDebug, Payload: payload}
}

func recorder(log *[]string) bus.Callback {
	return func(a core.Action) error {
		*log = append(*log, a.Payload)
		return nil
	}
}

func TestBus_AllSubscribersSeeAllEventsInOrder(t *testing.T) {
	b := bus.New()
	logs := make([][]string, 3)
	for i := range logs {
		b.Subscribe(recorder(&logs[i]))
	}

	for i := 0; i < 4; i++ {
		require.NoError(t, b.Dispatch(debug(fmt.Sprint(i))))
	}

	for i, log := range logs {
		assert.Equal(t, []string{"0", "1", "2", "3"}, log, "subscriber %d", i)
	}
}

func TestBus_RegistrationOrder(t *testing.T) {
	b := bus.New()
	var order []int
	for i := 1; i <= 3; i++ {
		b.Subscribe(func(core.Action) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, b.Dispatch(debug("x")))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestBus_LateSubscriberSeesOnlyLaterEvents(t *testing.T) {
	b := bus.New()
	var early, late []string
	b.Subscribe(recorder(&early))

	require.NoError(t, b.Dispatch(debug("a")))
	require.NoError(t, b.Dispatch(debug("b")))

	b.Subscribe(recorder(&late))
	require.NoError(t, b.Dispatch(debug("c")))

	assert.Equal(t, []string{"a", "b", "c"}, early)
	assert.Equal(t, []string{"c"}, late)
}

func TestBus_ReentrantSubscribeMissesInFlightAction(t *testing.T) {
	b := bus.New()
	var nested []string
	subscribed := false
	b.Subscribe(func(core.Action) error {
		if !subscribed {
			subscribed = true
			b.Subscribe(recorder(&nested))
		}
		return nil
	})

	require.NoError(t, b.Dispatch(debug("in-flight")))
	assert.Empty(t, nested)
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Dispatch(debug("next")))
	assert.Equal(t, []string{"next"}, nested)
}

func TestBus_FailingSubscriberAbortsDispatch(t *testing.T) {
	b := bus.New()
	boom := errors.New("boom")
	var first, last []string
	b.Subscribe(recorder(&first))
	b.Subscribe(func(core.Action) error { return boom })
	b.Subscribe(recorder(&last))

	err := b.Dispatch(debug("x"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "subscriber 2")
	assert.Equal(t, []string{"x"}, first)
	assert.Empty(t, last)

	stats, ok := b.State().(bus.Stats)
	require.True(t, ok)
	assert.Equal(t, bus.Stats{Subscribers: 3, Dispatched: 1, Failed: 1}, stats)
}

func TestBus_PanicPropagates(t *testing.T) {
	b := bus.New()
	var after []string
	b.Subscribe(func(core.Action) error { panic("listener exploded") })
	b.Subscribe(recorder(&after))

	assert.PanicsWithValue(t, "listener exploded", func() {
		_ = b.Dispatch(debug("x"))
	})
	assert.Empty(t, after)
}

func TestBus_NoSubscribers(t *testing.T) {
	b := bus.New()
	assert.NoError(t, b.Dispatch(debug("nobody listens")))
	assert.Equal(t, "bus", b.ComponentType())
}

func TestBus_NilCallbackIgnored(t *testing.T) {
	b := bus.New()
	b.Subscribe(nil)
	assert.Equal(t, 0, b.Len())
}
