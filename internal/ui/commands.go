package ui

import (
	"fmt"

	"github.com/atomicstack/treemenu/internal/logging"
	"github.com/atomicstack/treemenu/internal/logging/events"
	"github.com/atomicstack/treemenu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.outcome.Interrupted {
		return nil
	}
	m.outcome.Completed = true
	m.outcome.Err = result.Err
	if result.Err != nil {
		logging.Error(result.Err)
		events.Action.Error(result.Err)
	} else {
		events.Action.Success(fmt.Sprintf("%s finished in %s", result.Title, result.Elapsed))
	}
	return tea.Quit
}
