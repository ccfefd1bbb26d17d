package store_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskscreen/internal/lifecycle"
	"taskscreen/internal/store"
	"taskscreen/internal/task"
)

func twoTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "uno", State: task.NotDone},
		{ID: 2, Title: "dos", State: task.NotDone},
	}
}

func TestNew_StartsFromSeed(t *testing.T) {
	seed := task.MockedData()
	s := store.New(seed, nil)

	assert.Equal(t, seed, s.Tasks())
	assert.Equal(t, store.Pending{}, s.Pending())
	assert.Equal(t, lifecycle.Active, s.Phase())

	// The store keeps its own copy of the seed.
	seed[0].Title = "mutated"
	assert.NotEqual(t, "mutated", s.Tasks()[0].Title)
}

func TestNew_PhaseFromNotifier(t *testing.T) {
	b := lifecycle.NewBroadcaster(lifecycle.Background)
	s := store.New(twoTasks(), b)
	assert.Equal(t, lifecycle.Background, s.Phase())
}

func TestAddTask_AppendsWithNextID(t *testing.T) {
	s := store.New(task.MockedData(), nil)

	for i := 0; i < 5; i++ {
		before := s.Tasks()
		added := s.AddTask("t", "d")

		after := s.Tasks()
		require.Len(t, after, len(before)+1)
		assert.Equal(t, len(before)+1, added.ID)
		assert.Equal(t, before, after[:len(before)], "existing tasks keep their position")
		assert.Equal(t, task.Task{ID: len(before) + 1, Title: "t", Description: "d", State: task.NotDone}, after[len(before)])
	}
}

func TestAddTask_EmptyFieldsAllowed(t *testing.T) {
	s := store.New(nil, nil)
	added := s.AddTask("", "")
	assert.Equal(t, task.Task{ID: 1}, added)
	assert.Len(t, s.Tasks(), 1)
}

func TestAddTask_ClearsPending(t *testing.T) {
	s := store.New(task.MockedData(), nil)
	s.SetPendingTitle("Buy milk")
	s.SetPendingDescription("2%")
	require.Equal(t, store.Pending{Title: "Buy milk", Description: "2%"}, s.Pending())

	s.AddTask("Buy milk", "2%")
	assert.Equal(t, store.Pending{}, s.Pending())
}

func TestSubmit_UsesPending(t *testing.T) {
	s := store.New(twoTasks(), nil)
	s.SetPendingTitle("tres")
	s.SetPendingDescription("desc")

	added := s.Submit()
	assert.Equal(t, task.Task{ID: 3, Title: "tres", Description: "desc"}, added)
	assert.Equal(t, store.Pending{}, s.Pending())
}

func TestToggleTaskState_FlipsOnlyMatch(t *testing.T) {
	s := store.New(twoTasks(), nil)

	assert.Equal(t, 1, s.ToggleTaskState(1))
	got := s.Tasks()
	assert.Equal(t, task.Done, got[0].State)
	assert.Equal(t, task.NotDone, got[1].State)

	s.ToggleTaskState(1)
	assert.Equal(t, twoTasks(), s.Tasks())
}

func TestToggleTaskState_UnknownIDIsNoop(t *testing.T) {
	s := store.New(twoTasks(), nil)
	before := s.Snapshot()

	assert.Equal(t, 0, s.ToggleTaskState(99))
	after := s.Snapshot()
	assert.Equal(t, before.Tasks, after.Tasks)
	assert.Equal(t, before.Version, after.Version)
}

func TestToggleTaskState_DuplicateIDsAllFlip(t *testing.T) {
	seed := []task.Task{{ID: 1}, {ID: 1}, {ID: 2}}
	s := store.New(seed, nil)

	assert.Equal(t, 2, s.ToggleTaskState(1))
	got := s.Tasks()
	assert.Equal(t, task.Done, got[0].State)
	assert.Equal(t, task.Done, got[1].State)
	assert.Equal(t, task.NotDone, got[2].State)
}

func TestMutationsDoNotAlterEarlierSnapshots(t *testing.T) {
	s := store.New(twoTasks(), nil)
	old := s.Snapshot()

	s.ToggleTaskState(2)
	s.AddTask("x", "y")

	assert.Equal(t, twoTasks(), old.Tasks)
	assert.Greater(t, s.Snapshot().Version, old.Version)
}

func TestLifecycle_ResumeDiscardsEdits(t *testing.T) {
	b := lifecycle.NewBroadcaster(lifecycle.Active)
	seed := task.MockedData()
	s := store.New(seed, b)

	s.AddTask("X", "Y")
	s.ToggleTaskState(1)

	b.Publish(lifecycle.Background)
	assert.Len(t, s.Tasks(), len(seed)+1, "no reset while backgrounded")

	b.Publish(lifecycle.Active)
	assert.Equal(t, seed, s.Tasks())
	assert.Equal(t, lifecycle.Active, s.Phase())

	// Ids continue from the seed again after a reset.
	assert.Equal(t, len(seed)+1, s.AddTask("Z", "").ID)
}

func TestLifecycle_InactiveToActiveResets(t *testing.T) {
	s := store.New(twoTasks(), nil)
	s.ToggleTaskState(2)

	s.OnLifecycleChange(lifecycle.Inactive)
	s.OnLifecycleChange(lifecycle.Active)
	assert.Equal(t, twoTasks(), s.Tasks())
}

func TestLifecycle_ActiveToActiveKeepsEdits(t *testing.T) {
	s := store.New(twoTasks(), nil)
	s.AddTask("X", "Y")

	s.OnLifecycleChange(lifecycle.Active)
	assert.Len(t, s.Tasks(), 3)
}

func TestLifecycle_SuspendedTransitionsDoNotReset(t *testing.T) {
	s := store.New(twoTasks(), nil)
	s.AddTask("X", "Y")

	s.OnLifecycleChange(lifecycle.Inactive)
	s.OnLifecycleChange(lifecycle.Background)
	s.OnLifecycleChange(lifecycle.Inactive)
	assert.Len(t, s.Tasks(), 3)
	assert.Equal(t, lifecycle.Inactive, s.Phase())
}

func TestLifecycle_PendingSurvivesReset(t *testing.T) {
	s := store.New(twoTasks(), nil)
	s.SetPendingTitle("half typed")

	s.OnLifecycleChange(lifecycle.Background)
	s.OnLifecycleChange(lifecycle.Active)

	assert.Equal(t, "half typed", s.Pending().Title)
}

func TestDispose_StopsLifecycleDelivery(t *testing.T) {
	b := lifecycle.NewBroadcaster(lifecycle.Active)
	s := store.New(twoTasks(), b)
	require.Equal(t, 1, b.Subscribers())

	s.Dispose()
	s.Dispose()
	assert.Equal(t, 0, b.Subscribers())

	s.AddTask("X", "")
	b.Publish(lifecycle.Background)
	b.Publish(lifecycle.Active)
	assert.Len(t, s.Tasks(), 3)
	assert.Equal(t, lifecycle.Active, s.Phase())
}

func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	s := store.New(twoTasks(), nil)

	var got []store.Snapshot
	cancel := s.Subscribe(func(snap store.Snapshot) { got = append(got, snap) })

	s.SetPendingTitle("a")
	s.Submit()
	s.ToggleTaskState(3)
	s.ToggleTaskState(42)
	cancel()
	s.AddTask("ignored", "")

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Pending.Title)
	assert.Len(t, got[1].Tasks, 3)
	assert.Equal(t, task.Done, got[2].Tasks[2].State)
	assert.Less(t, got[0].Version, got[1].Version)
	assert.Less(t, got[1].Version, got[2].Version)
}

func TestConcurrentAddsKeepUniqueIDs(t *testing.T) {
	b := lifecycle.NewBroadcaster(lifecycle.Active)
	s := store.New(nil, b)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddTask("t", "")
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i, tk := range s.Tasks() {
		assert.False(t, seen[tk.ID], "duplicate id %d", tk.ID)
		seen[tk.ID] = true
		assert.Equal(t, i+1, tk.ID, "ids increase in insertion order")
	}
}

func TestWithLogger_LogsReset(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := store.New(twoTasks(), nil, store.WithLogger(logger))

	s.OnLifecycleChange(lifecycle.Background)
	s.OnLifecycleChange(lifecycle.Active)

	assert.Contains(t, buf.String(), "task list reset on resume")
	assert.Contains(t, buf.String(), "session=")
}
