// Package action provides the named terminal actions a menu definition can
// bind to, and the built-in print action that reports the collected
// configuration.
package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/atomicstack/treemenu/internal/format/table"
	"github.com/atomicstack/treemenu/internal/menu"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the print action.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Registry maps action names to callables.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]menu.Action
}

// NewRegistry returns a registry holding the built-in actions. The print
// action writes to out using the given format.
func NewRegistry(out io.Writer, format string) (*Registry, error) {
	printer, err := Printer(out, format)
	if err != nil {
		return nil, err
	}
	r := &Registry{actions: make(map[string]menu.Action)}
	r.Register("print", printer)
	r.Register("none", func(context.Context, menu.Config) error { return nil })
	return r, nil
}

// Register adds or replaces an action.
func (r *Registry) Register(name string, fn menu.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.actions == nil {
		r.actions = make(map[string]menu.Action)
	}
	r.actions[name] = fn
}

// Lookup finds an action by name.
func (r *Registry) Lookup(name string) (menu.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.actions[name]
	return fn, ok
}

// Names lists registered actions in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Printer returns an action that writes the configuration to out.
func Printer(out io.Writer, format string) (menu.Action, error) {
	var encode func(io.Writer, menu.Config) error
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		encode = encodeJSON
	case FormatYAML:
		encode = encodeYAML
	case FormatText:
		encode = encodeText
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	return func(ctx context.Context, cfg menu.Config) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := encode(out, cfg); err != nil {
			return fmt.Errorf("print configuration: %w", err)
		}
		return nil
	}, nil
}

func encodeJSON(w io.Writer, cfg menu.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any(cfg))
}

func encodeYAML(w io.Writer, cfg menu.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(cfg)); err != nil {
		return err
	}
	return enc.Close()
}

func encodeText(w io.Writer, cfg menu.Config) error {
	keys := cfg.Keys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, textValue(cfg[key])})
	}
	for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func textValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case []string:
		if len(value) == 0 {
			return "-"
		}
		return strings.Join(value, ", ")
	}
	return fmt.Sprint(v)
}
