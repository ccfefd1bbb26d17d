// Package screen is a line-oriented terminal rendition of the task screen.
//
// Each input line is one UI event: typing into an input, pressing the add
// button, tapping a task or a host lifecycle change. Lines are applied to
// the store strictly in the order they are read.
package screen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"taskscreen/internal/lifecycle"
	"taskscreen/internal/output"
	"taskscreen/internal/seed"
	"taskscreen/internal/store"
)

// Screen binds a store to a text input stream and an output stream.
type Screen struct {
	store  *store.Store
	phases *lifecycle.Broadcaster
	out    io.Writer
	errOut io.Writer
	quiet  bool
	logger *slog.Logger

	bindings map[string]*binding

	// Last snapshot seen by onChange. Snapshots may arrive out of order
	// when changes come from several goroutines.
	pmu         sync.Mutex
	lastPhase   lifecycle.Phase
	lastVersion uint64
}

type binding struct {
	name    string
	aliases []string
	usage   string
	run     func(s *Screen, args string) (quit bool)
}

// Option configures a Screen.
type Option func(*Screen)

// WithQuiet suppresses "ok" acknowledgements and automatic re-renders.
func WithQuiet(quiet bool) Option {
	return func(s *Screen) { s.quiet = quiet }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Screen. phases, when not nil, receives the phases entered
// with the active, inactive and background commands; it should be the
// notifier the store subscribed to.
func New(st *store.Store, phases *lifecycle.Broadcaster, out, errOut io.Writer, opts ...Option) *Screen {
	w := &lockedWriter{}
	s := &Screen{
		store:  st,
		phases: phases,
		out:    w.wrap(out),
		errOut: w.wrap(errOut),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.bindings = make(map[string]*binding)
	for _, b := range bindings {
		s.bindings[b.name] = b
		for _, a := range b.aliases {
			s.bindings[a] = b
		}
	}
	return s
}

// Run renders the list, then executes input lines until EOF, a quit
// command or ctx is done. Resets triggered by the host lifecycle while
// running are rendered as they happen.
//
// When ctx is done while a read from in is blocked, Run returns at once
// but the reading goroutine stays blocked until in yields a line or
// fails. Callers that need it gone must close in.
func (s *Screen) Run(ctx context.Context, in io.Reader) error {
	snap := s.store.Snapshot()
	s.pmu.Lock()
	s.lastPhase = snap.Phase
	s.lastVersion = snap.Version
	s.pmu.Unlock()

	unsubscribe := s.store.Subscribe(s.onChange)
	defer unsubscribe()

	// Stops the reader goroutine once the session ends.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	output.FormatTasks(s.out, s.store.Tasks())

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}
			if s.Exec(line) {
				return nil
			}
		}
	}
}

// Exec applies one input line and reports whether the session should end.
func (s *Screen) Exec(line string) bool {
	line = strings.TrimLeft(line, " \t")
	if strings.TrimSpace(line) == "" {
		return false
	}

	name, args, _ := strings.Cut(line, " ")
	b, ok := s.bindings[strings.ToLower(name)]
	if !ok {
		fmt.Fprintf(s.errOut, "error: unknown command: %s\n", name)
		return false
	}
	s.logger.Debug("screen command", "command", b.name)
	return b.run(s, args)
}

// onChange re-renders the list when the store came back from the
// background with a fresh seed copy. Snapshots older than the last one
// seen are dropped.
func (s *Screen) onChange(snap store.Snapshot) {
	s.pmu.Lock()
	defer s.pmu.Unlock()

	if snap.Version <= s.lastVersion {
		return
	}
	prev := s.lastPhase
	s.lastPhase = snap.Phase
	s.lastVersion = snap.Version

	if !prev.Suspended() || snap.Phase != lifecycle.Active || s.quiet {
		return
	}
	fmt.Fprintln(s.out, "list reset")
	output.FormatTasks(s.out, snap.Tasks)
}

func (s *Screen) ok() {
	if !s.quiet {
		fmt.Fprintln(s.out, "ok")
	}
}

var bindings = []*binding{
	{
		name:    "list",
		aliases: []string{"ls"},
		usage:   "list                         Show the task list",
		run: func(s *Screen, args string) bool {
			output.FormatTasks(s.out, s.store.Tasks())
			return false
		},
	},
	{
		name:  "title",
		usage: "title <text>                 Type into the title input",
		run: func(s *Screen, args string) bool {
			s.store.SetPendingTitle(args)
			return false
		},
	},
	{
		name:    "description",
		aliases: []string{"desc"},
		usage:   "description <text>           Type into the description input",
		run: func(s *Screen, args string) bool {
			s.store.SetPendingDescription(args)
			return false
		},
	},
	{
		name:  "pending",
		usage: "pending                      Show the input fields",
		run: func(s *Screen, args string) bool {
			output.FormatPending(s.out, s.store.Pending())
			return false
		},
	},
	{
		name:  "add",
		usage: "add [<title> [| <description>]]  Add a task (inputs when no arguments)",
		run: func(s *Screen, args string) bool {
			var id int
			if strings.TrimSpace(args) == "" {
				id = s.store.Submit().ID
			} else {
				title, description, _ := strings.Cut(args, "|")
				id = s.store.AddTask(strings.TrimSpace(title), strings.TrimSpace(description)).ID
			}
			if !s.quiet {
				fmt.Fprintf(s.out, "added %d\n", id)
			}
			return false
		},
	},
	{
		name:    "toggle",
		aliases: []string{"tap"},
		usage:   "toggle <id>                  Flip a task between done and not done",
		run: func(s *Screen, args string) bool {
			arg := strings.TrimSpace(args)
			if arg == "" {
				fmt.Fprintln(s.errOut, "error: task id required")
				return false
			}
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(s.errOut, "error: invalid task id: %s\n", arg)
				return false
			}
			s.store.ToggleTaskState(id)
			s.ok()
			return false
		},
	},
	{
		name:  "export",
		usage: "export                       Print the task list as YAML",
		run: func(s *Screen, args string) bool {
			if err := seed.Encode(s.out, s.store.Tasks()); err != nil {
				fmt.Fprintf(s.errOut, "error: %v\n", err)
			}
			return false
		},
	},
	phaseBinding(lifecycle.Active, "Simulate returning to the foreground"),
	phaseBinding(lifecycle.Inactive, "Simulate the app becoming inactive"),
	phaseBinding(lifecycle.Background, "Simulate moving to the background"),
	{
		name:    "help",
		aliases: []string{"?"},
		usage:   "help                         Show this help",
		run: func(s *Screen, args string) bool {
			s.printHelp()
			return false
		},
	},
	{
		name:    "quit",
		aliases: []string{"exit", "q"},
		usage:   "quit                         Leave the screen",
		run: func(s *Screen, args string) bool {
			return true
		},
	},
}

func phaseBinding(p lifecycle.Phase, synopsis string) *binding {
	return &binding{
		name:  p.String(),
		usage: fmt.Sprintf("%-29s%s", p.String(), synopsis),
		run: func(s *Screen, args string) bool {
			if s.phases == nil {
				fmt.Fprintln(s.errOut, "error: lifecycle simulation unavailable")
				return false
			}
			s.phases.Publish(p)
			return false
		},
	}
}

func (s *Screen) printHelp() {
	seen := make(map[string]bool)
	var usages []string
	for _, b := range s.bindings {
		if !seen[b.name] {
			seen[b.name] = true
			usages = append(usages, b.usage)
		}
	}
	sort.Strings(usages)

	fmt.Fprintln(s.out, "Commands:")
	for _, u := range usages {
		fmt.Fprintf(s.out, "  %s\n", u)
	}
}

// lockedWriter serializes writes from the input loop and from lifecycle
// notifications delivered on other goroutines.
type lockedWriter struct {
	mu sync.Mutex
}

func (l *lockedWriter) wrap(w io.Writer) io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		l.mu.Lock()
		defer l.mu.Unlock()
		return w.Write(p)
	})
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
