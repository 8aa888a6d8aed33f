package ui

import (
	"context"
	"reflect"
	"strings"

	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/atomicstack/treemenu/internal/theme"
	"github.com/atomicstack/treemenu/internal/ui/command"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Outcome summarises how the menu session ended.
type Outcome struct {
	// Dispatched is set once an action has been handed to the command bus.
	Dispatched bool
	Action     string
	Path       []string
	Config     menu.Config
	// Completed is set when the action returned before the program quit.
	Completed   bool
	Err         error
	Interrupted bool
}

// Model implements the Bubble Tea model driving the menu tree. It owns the
// single focus reference into the tree.
type Model struct {
	root  *menu.Menu
	focus *menu.Menu

	suspendRender bool
	frame         string
	renders       int

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	errMsg      string
	infoMsg     string

	keys keyMap
	help help.Model

	handlers map[reflect.Type]msgHandler

	bus         *command.Bus
	dispatching bool
	cancel      context.CancelFunc
	outcome     Outcome
}

// NewModel initialises the UI state with the tree root focused. A non-empty
// startMenu moves the initial focus to the matching submenu.
func NewModel(root *menu.Menu, width, height int, showFooter, verbose bool, startMenu string) *Model {
	m := &Model{
		root:       root,
		focus:      root,
		showFooter: showFooter,
		verbose:    verbose,
		keys:       defaultKeyMap,
		help:       help.New(),
		bus:        command.New(),
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.applyStartMenu(startMenu)
	m.registerHandlers()
	m.render()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// View returns the last rendered frame. While an action runs the frame is
// frozen.
func (m *Model) View() string {
	return m.frame
}

// Focus returns the menu currently displayed.
func (m *Model) Focus() *menu.Menu {
	return m.focus
}

// Outcome reports the dispatch state once the program has finished.
func (m *Model) Outcome() Outcome {
	return m.outcome
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) applyStartMenu(requested string) {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" || m.root == nil {
		return
	}
	node, ok := menu.Find(m.root, trimmed)
	if !ok {
		m.errMsg = "Unknown start menu " + `"` + trimmed + `"`
		return
	}
	m.focus = node
}
