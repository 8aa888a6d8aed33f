package events

import "github.com/atomicstack/treemenu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Definition(source, root string) {
	logging.Trace("app.definition", map[string]interface{}{"source": source, "root": root})
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", map[string]interface{}{"reason": reason})
}
