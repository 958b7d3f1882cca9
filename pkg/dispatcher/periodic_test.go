package dispatcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lineage/pkg/bus"
	"github.com/aretw0/lineage/pkg/core"
)

type recordingBus struct {
	mu      sync.Mutex
	actions []core.Action
	at      []time.Time
	err     error
}

func (r *recordingBus) Dispatch(a core.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
	r.at = append(r.at, time.Now())
	return r.err
}

func (r *recordingBus) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}

func TestPeriodic_FiresExactlyCount(t *testing.T) {
	rec := &recordingBus{}
	p := New(rec, WithInterval(5*time.Millisecond), WithRandom(func() float64 { return 0.25 }))

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, DefaultCount, rec.count())
	assert.Equal(t, DefaultCount, p.Fired())

	for _, a := range rec.actions {
		assert.Equal(t, core.ActionDebug, a.Type)
		assert.Equal(t, "Random data: 2.500", a.Payload)
	}

	// No stray dispatch after Run returned.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, DefaultCount, rec.count())

	select {
	case <-p.Done():
	default:
		t.Fatal("Done not closed after Run")
	}
}

func TestPeriodic_FirstDispatchIsImmediate(t *testing.T) {
	rec := &recordingBus{}
	p := New(rec, WithInterval(time.Hour), WithCount(1))

	start := time.Now()
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 1, rec.count())
	assert.Less(t, rec.at[0].Sub(start), time.Second)
}

func TestPeriodic_Interval(t *testing.T) {
	rec := &recordingBus{}
	p := New(rec, WithInterval(20*time.Millisecond), WithCount(3))

	require.NoError(t, p.Run(context.Background()))
	require.Equal(t, 3, rec.count())
	assert.GreaterOrEqual(t, rec.at[2].Sub(rec.at[0]), 35*time.Millisecond)
}

func TestPeriodic_ZeroCount(t *testing.T) {
	rec := &recordingBus{}
	p := New(rec, WithCount(0))

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, 0, rec.count())
}

func TestPeriodic_Cancel(t *testing.T) {
	rec := &recordingBus{}
	p := New(rec, WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for rec.count() == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, rec.count())
}

func TestPeriodic_DispatchErrorStops(t *testing.T) {
	boom := errors.New("boom")
	rec := &recordingBus{err: boom}
	p := New(rec, WithInterval(time.Millisecond))

	err := p.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rec.count())
}

func TestPeriodic_RunOnce(t *testing.T) {
	p := New(&recordingBus{}, WithInterval(time.Millisecond), WithCount(1))

	require.NoError(t, p.Run(context.Background()))
	assert.ErrorIs(t, p.Run(context.Background()), ErrAlreadyStarted)
}

func TestPeriodic_ThroughBus(t *testing.T) {
	b := bus.New()
	outputs := make([][]string, 2)
	for i := range outputs {
		b.Subscribe(func(a core.Action) error {
			outputs[i] = append(outputs[i], a.String())
			return nil
		})
	}

	p := New(b, WithInterval(time.Millisecond), WithMax(1), WithRandom(func() float64 { return 0.5 }))
	require.NoError(t, p.Run(context.Background()))

	for _, out := range outputs {
		require.Len(t, out, DefaultCount)
		assert.Equal(t, "Event type: debug, payload: Random data: 0.500", out[0])
	}
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "Random data: 0.000", Payload(0))
	assert.Equal(t, "Random data: 9.999", Payload(9.9991))
}
