package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/atomicstack/treemenu/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return m.interrupt()
	}
	if m.dispatching {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.navigate(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.navigate(1)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveValue(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveValue(1)
	case key.Matches(keyMsg, m.keys.Select):
		return m.selectHighlighted()
	case key.Matches(keyMsg, m.keys.Back):
		m.goBack()
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.width
	m.render()
	return nil
}

func (m *Model) navigate(delta int) {
	if m.focus.Navigate(delta) {
		events.UI.MenuCursor(m.focus.Title(), m.focus.Selected())
	}
	m.render()
}

func (m *Model) moveValue(delta int) {
	if item, ok := m.focus.Highlighted(); ok {
		events.UI.ValueMove(m.focus.Title(), item.Title(), delta)
	}
	m.focus.Move(delta)
	m.render()
}

func (m *Model) selectHighlighted() tea.Cmd {
	current := m.focus
	item, ok := current.Highlighted()
	if !ok {
		m.render()
		return nil
	}
	events.UI.Select(current.Title(), item.Title())
	out := current.Select()
	if out.Descend != nil {
		events.UI.MenuEnter(current.Title(), out.Descend.Title())
		m.focus = out.Descend
		m.errMsg = ""
	}
	if out.Request != nil {
		return m.dispatch(out.Request)
	}
	m.render()
	return nil
}

func (m *Model) goBack() {
	if parent := m.focus.Parent(); parent != nil {
		events.UI.MenuBack(m.focus.Title(), parent.Title())
		m.focus = parent
	}
	m.errMsg = ""
	m.render()
}

// dispatch hands an action request to the command bus. The frame rendered
// here stays on screen until the program exits.
func (m *Model) dispatch(req *menu.Request) tea.Cmd {
	if m.dispatching {
		return nil
	}
	m.dispatching = true

	title := req.Source.Title()
	cfg := menu.Collect(req.Root)
	events.Action.Dispatch(req.Path, map[string]interface{}(cfg))
	m.outcome = Outcome{
		Dispatched: true,
		Action:     title,
		Path:       req.Path,
		Config:     cfg,
	}

	m.errMsg = ""
	m.infoMsg = fmt.Sprintf("Running %s…", title)
	m.render()
	m.suspendRender = true

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	return m.bus.Execute(ctx, command.Request{
		Title:  title,
		Path:   req.Path,
		Action: req.Action,
		Config: cfg,
	})
}

func (m *Model) interrupt() tea.Cmd {
	events.UI.Interrupt(m.dispatching)
	if m.cancel != nil {
		m.cancel()
	}
	m.outcome.Interrupted = true
	return tea.Quit
}
