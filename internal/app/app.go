package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/treemenu/internal/action"
	"github.com/atomicstack/treemenu/internal/definition"
	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/atomicstack/treemenu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the menu cannot take over the terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Config describes user-provided application options.
type Config struct {
	DefinitionPath string
	StartMenu      string
	Width          int
	Height         int
	ShowFooter     bool
	Verbose        bool
	Output         string
}

// Run bootstraps and executes the Bubble Tea program. Output written by the
// dispatched action is held back until the terminal has been restored.
func Run(cfg Config) error {
	r := runner{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		isTerminal: term.IsTerminal,
		program:    runProgram,
	}
	return r.run(cfg)
}

type runner struct {
	stdin      *os.File
	stdout     io.Writer
	isTerminal func(fd int) bool
	program    func(tea.Model) (tea.Model, error)
}

func (r runner) run(cfg Config) error {
	var output bytes.Buffer
	root, err := LoadTree(cfg, &output)
	if err != nil {
		return err
	}
	if r.stdin == nil || !r.isTerminal(int(r.stdin.Fd())) {
		return ErrNotTerminal
	}
	model := ui.NewModel(root, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, cfg.StartMenu)
	final, err := r.program(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Exit("killed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run menu: %w", err)
	}
	m, ok := final.(*ui.Model)
	if !ok {
		return nil
	}
	return finish(m.Outcome(), &output, r.stdout)
}

// LoadTree builds the action registry writing into out and loads the menu
// definition named by cfg, falling back to the built-in one.
func LoadTree(cfg Config, out io.Writer) (*menu.Menu, error) {
	registry, err := action.NewRegistry(out, cfg.Output)
	if err != nil {
		return nil, err
	}
	source := cfg.DefinitionPath
	var root *menu.Menu
	if source == "" {
		source = "default"
		root, err = definition.Default(registry)
	} else {
		root, err = definition.Load(source, registry)
	}
	if err != nil {
		return nil, err
	}
	events.App.Definition(source, root.Title())
	return root, nil
}

func finish(out ui.Outcome, buffered *bytes.Buffer, stdout io.Writer) error {
	switch {
	case out.Interrupted:
		events.App.Exit("interrupt")
		return nil
	case !out.Dispatched || !out.Completed:
		events.App.Exit("quit")
		return nil
	}
	if _, err := buffered.WriteTo(stdout); err != nil {
		return fmt.Errorf("write action output: %w", err)
	}
	if out.Err != nil {
		events.App.Exit("action failed")
		return fmt.Errorf("action %q: %w", out.Action, out.Err)
	}
	events.App.Exit("action finished")
	return nil
}

func runProgram(model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithAltScreen()).Run()
}
