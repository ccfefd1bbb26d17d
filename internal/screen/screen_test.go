package screen_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskscreen/internal/lifecycle"
	"taskscreen/internal/output"
	"taskscreen/internal/screen"
	"taskscreen/internal/store"
	"taskscreen/internal/task"
)

type session struct {
	store  *store.Store
	phases *lifecycle.Broadcaster
	screen *screen.Screen
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newSession(t *testing.T, seed []task.Task, opts ...screen.Option) *session {
	t.Helper()
	s := &session{phases: lifecycle.NewBroadcaster(lifecycle.Active)}
	s.store = store.New(seed, s.phases)
	t.Cleanup(s.store.Dispose)
	s.screen = screen.New(s.store, s.phases, &s.out, &s.errOut, opts...)
	return s
}

func (s *session) run(t *testing.T, lines ...string) {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, s.screen.Run(context.Background(), in))
}

func render(tasks []task.Task) string {
	var buf bytes.Buffer
	output.FormatTasks(&buf, tasks)
	return buf.String()
}

func TestRun_RendersInitialList(t *testing.T) {
	s := newSession(t, task.MockedData())
	s.run(t)

	assert.Equal(t, render(task.MockedData()), s.out.String())
	assert.Empty(t, s.errOut.String())
}

func TestRun_EmptyList(t *testing.T) {
	s := newSession(t, nil)
	s.run(t)
	assert.Equal(t, output.EmptyList+"\n", s.out.String())
}

func TestRun_TypeAndSubmit(t *testing.T) {
	s := newSession(t, nil)
	s.run(t,
		"title Buy milk",
		"desc 2%",
		"pending",
		"add",
		"pending",
	)

	want := output.EmptyList + "\n" +
		"------------\nTítulo:      Buy milk\nDescripción: 2%\n------------\n" +
		"added 1\n" +
		"------------\nTítulo:      \nDescripción: \n------------\n"
	assert.Equal(t, want, s.out.String())
	assert.Equal(t, []task.Task{{ID: 1, Title: "Buy milk", Description: "2%"}}, s.store.Tasks())
}

func TestRun_AddWithArguments(t *testing.T) {
	s := newSession(t, task.MockedData())
	s.run(t, "add Pan | integral", "add Leche")

	got := s.store.Tasks()
	require.Len(t, got, 6)
	assert.Equal(t, task.Task{ID: 5, Title: "Pan", Description: "integral"}, got[4])
	assert.Equal(t, task.Task{ID: 6, Title: "Leche"}, got[5])
	assert.Contains(t, s.out.String(), "added 5\nadded 6\n")
}

func TestRun_Toggle(t *testing.T) {
	s := newSession(t, task.MockedData())
	s.run(t, "toggle 1", "tap 2", "toggle 99")

	got := s.store.Tasks()
	assert.Equal(t, task.Done, got[0].State)
	assert.Equal(t, task.NotDone, got[1].State)
	assert.Empty(t, s.errOut.String(), "unknown id is not an error")
}

func TestRun_ToggleBadInput(t *testing.T) {
	s := newSession(t, task.MockedData())
	s.run(t, "toggle", "toggle uno")

	assert.Equal(t, "error: task id required\nerror: invalid task id: uno\n", s.errOut.String())
	assert.Equal(t, task.MockedData(), s.store.Tasks())
}

func TestRun_BackgroundResumeResets(t *testing.T) {
	s := newSession(t, task.MockedData())
	s.run(t, "add X | Y", "toggle 1", "background", "active", "list")

	assert.Equal(t, task.MockedData(), s.store.Tasks())

	// initial render, add, toggle, reset notice + render, explicit list
	want := render(task.MockedData()) +
		"added 5\n" +
		"ok\n" +
		"list reset\n" + render(task.MockedData()) +
		render(task.MockedData())
	assert.Equal(t, want, s.out.String())
}

func TestRun_ActiveToActiveKeepsEdits(t *testing.T) {
	s := newSession(t, task.MockedData())
	s.run(t, "add X", "active")

	assert.Len(t, s.store.Tasks(), 5)
	assert.NotContains(t, s.out.String(), "list reset")
}

func TestRun_Quiet(t *testing.T) {
	s := newSession(t, task.MockedData(), screen.WithQuiet(true))
	s.run(t, "add X", "toggle 1", "inactive", "active")

	assert.Equal(t, render(task.MockedData()), s.out.String())
	assert.Equal(t, task.MockedData(), s.store.Tasks())
}

func TestRun_QuitStopsReading(t *testing.T) {
	s := newSession(t, nil)
	s.run(t, "quit", "add ignored")
	assert.Empty(t, s.store.Tasks())
}

func TestRun_UnknownCommand(t *testing.T) {
	s := newSession(t, nil)
	s.run(t, "", "   ", "frobnicate now")
	assert.Equal(t, "error: unknown command: frobnicate\n", s.errOut.String())
}

func TestRun_ContextCancelled(t *testing.T) {
	s := newSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never yields data; Run must still return.
	pr, pw := io.Pipe()
	defer pw.Close()
	require.NoError(t, s.screen.Run(ctx, pr))
}

func TestRun_Export(t *testing.T) {
	s := newSession(t, []task.Task{{ID: 1, Title: "Pan", State: task.Done}})
	s.run(t, "export")

	assert.Contains(t, s.out.String(), "- id: 1\n  title: Pan\n  description: \"\"\n  state: Realizado\n")
}

func TestRun_Help(t *testing.T) {
	s := newSession(t, nil)
	s.run(t, "help")

	out := s.out.String()
	assert.Contains(t, out, "Commands:")
	for _, name := range []string{"list", "title", "description", "add", "toggle", "background", "quit"} {
		assert.Contains(t, out, "  "+name)
	}
}

func TestExec_LifecycleUnavailable(t *testing.T) {
	st := store.New(nil, nil)
	var out, errOut bytes.Buffer
	sc := screen.New(st, nil, &out, &errOut)

	assert.False(t, sc.Exec("background"))
	assert.Equal(t, "error: lifecycle simulation unavailable\n", errOut.String())
}
