package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskscreen/internal/lifecycle"
)

func TestParsePhase(t *testing.T) {
	for _, p := range []lifecycle.Phase{lifecycle.Active, lifecycle.Inactive, lifecycle.Background} {
		got, err := lifecycle.ParsePhase(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := lifecycle.ParsePhase(" BACKGROUND ")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Background, got)

	_, err = lifecycle.ParsePhase("asleep")
	assert.Error(t, err)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "active", lifecycle.Active.String())
	assert.Equal(t, "inactive", lifecycle.Inactive.String())
	assert.Equal(t, "background", lifecycle.Background.String())
	assert.Equal(t, "phase(7)", lifecycle.Phase(7).String())
}

func TestPhase_Suspended(t *testing.T) {
	assert.False(t, lifecycle.Active.Suspended())
	assert.True(t, lifecycle.Inactive.Suspended())
	assert.True(t, lifecycle.Background.Suspended())
}

func TestBroadcaster_DeliversInOrder(t *testing.T) {
	b := lifecycle.NewBroadcaster(lifecycle.Active)
	assert.Equal(t, lifecycle.Active, b.Current())

	var first, second []lifecycle.Phase
	b.Subscribe(func(p lifecycle.Phase) { first = append(first, p) })
	b.Subscribe(func(p lifecycle.Phase) {
		// Subscribers run after the current phase is recorded.
		assert.Equal(t, p, b.Current())
		second = append(second, p)
	})

	b.Publish(lifecycle.Inactive)
	b.Publish(lifecycle.Background)
	b.Publish(lifecycle.Active)

	want := []lifecycle.Phase{lifecycle.Inactive, lifecycle.Background, lifecycle.Active}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := lifecycle.NewBroadcaster(lifecycle.Background)

	calls := 0
	unsubscribe := b.Subscribe(func(lifecycle.Phase) { calls++ })
	other := b.Subscribe(func(lifecycle.Phase) {})
	require.Equal(t, 2, b.Subscribers())

	b.Publish(lifecycle.Active)
	unsubscribe()
	unsubscribe()
	b.Publish(lifecycle.Background)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, b.Subscribers())
	assert.Equal(t, lifecycle.Background, b.Current())

	other()
	assert.Equal(t, 0, b.Subscribers())
}
