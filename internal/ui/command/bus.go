package command

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	Title  string
	Path   []string
	Action menu.Action
	Config menu.Config
}

// Result communicates the outcome of running an action.
type Result struct {
	Title   string
	Err     error
	Elapsed time.Duration
}

// PanicError wraps a value recovered from a panicking action.
type PanicError struct {
	Title     string
	Recovered interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("action %q panicked: %v", e.Title, e.Recovered)
}

// Bus coordinates the execution of menu actions.
type Bus struct {
	now func() time.Time
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{now: time.Now}
}

// Execute wraps an action into a Bubble Tea command while emitting trace
// logs. The command blocks until the action returns and always yields a
// Result, converting panics into errors.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.Title)
	return func() tea.Msg {
		if req.Action == nil {
			events.Command.Skip(req.Title)
			return Result{Title: req.Title}
		}
		start := b.now()
		err := b.run(ctx, req)
		elapsed := b.now().Sub(start)
		events.Command.Result(req.Title, elapsed.String(), err != nil)
		return Result{Title: req.Title, Err: err, Elapsed: elapsed}
	}
}

func (b *Bus) run(ctx context.Context, req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			events.Command.Panic(req.Title, fmt.Sprint(r))
			err = &PanicError{Title: req.Title, Recovered: r}
		}
	}()
	return req.Action(ctx, req.Config)
}
