package lifecycle

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
)

func TestNewSource_ForwardsAndCloses(t *testing.T) {
	events := make(chan core.Event, 2)
	events <- core.Event{Type: core.EventCreate, ID: "people.yaml"}
	events <- core.Event{Type: core.EventDelete, ID: "countries.yaml"}
	close(events)

	src := NewSource(events)
	require.NoError(t, src.Start(context.Background()))

	var got []string
	for e := range src.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"CREATE people.yaml", "DELETE countries.yaml"}, got)
}

func TestNewSource_StopsOnCancel(t *testing.T) {
	src := NewSource(make(chan core.Event))
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))

	cancel()
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source not closed after cancel")
	}
}

func TestFromBus(t *testing.T) {
	b := bus.New()
	src := FromBus(b, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	require.NoError(t, b.Dispatch(core.Action{Type: core.ActionCreate, Payload: "one"}))
	require.NoError(t, b.Dispatch(core.Action{Type: core.ActionDebug, Payload: "two"}))

	for _, want := range []string{
		"Event type: create, payload: one",
		"Event type: debug, payload: two",
	} {
		select {
		case e := <-src.Events():
			assert.Equal(t, want, e.String())
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestFromBus_DispatchAfterStopDoesNotBlock(t *testing.T) {
	b := bus.New()
	src := FromBus(b, 1)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))
	cancel()
	for range src.Events() {
	}

	done := make(chan error, 1)
	go func() {
		for i := range 3 {
			if err := b.Dispatch(core.Action{Type: core.ActionDebug, Payload: strconv.Itoa(i)}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked after the source stopped")
	}
}
