package events

import "github.com/atomicstack/treemenu/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) MenuEnter(from, to string) {
	logging.Trace("menu.enter", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) MenuBack(from, to string) {
	logging.Trace("menu.back", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) MenuCursor(menu string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"menu": menu, "cursor": cursor})
}

func (UITracer) ValueMove(menu, item string, direction int) {
	logging.Trace("menu.value.move", map[string]interface{}{"menu": menu, "item": item, "direction": direction})
}

func (UITracer) Select(menu, item string) {
	logging.Trace("menu.select", map[string]interface{}{"menu": menu, "item": item})
}

func (UITracer) Interrupt(dispatching bool) {
	logging.Trace("menu.interrupt", map[string]interface{}{"dispatching": dispatching})
}

func (ActionTracer) Dispatch(path []string, config map[string]interface{}) {
	logging.Trace("action.dispatch", map[string]interface{}{"path": path, "config": config})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(title string) {
	logging.Trace("command.queue", map[string]interface{}{"title": title})
}

func (CommandTracer) Skip(title string) {
	logging.Trace("command.skip", map[string]interface{}{"title": title})
}

func (CommandTracer) Panic(title, recovered string) {
	logging.Trace("command.panic", map[string]interface{}{"title": title, "recovered": recovered})
}

func (CommandTracer) Result(title, elapsed string, failed bool) {
	logging.Trace("command.result", map[string]interface{}{"title": title, "elapsed": elapsed, "failed": failed})
}
