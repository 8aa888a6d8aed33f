package menu

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the behaviour of a Property.
type Kind int

const (
	KindToggle Kind = iota
	KindExclusive
	KindOptionalExclusive
	KindNumber
	KindAction
)

var kindNames = map[Kind]string{
	KindToggle:            "toggle",
	KindExclusive:         "exclusive",
	KindOptionalExclusive: "optional-exclusive",
	KindNumber:            "number",
	KindAction:            "action",
}

var kindAliases = map[string]Kind{
	"toggle":             KindToggle,
	"checkbox":           KindToggle,
	"exclusive":          KindExclusive,
	"radio":              KindExclusive,
	"optional-exclusive": KindOptionalExclusive,
	"radio-optional":     KindOptionalExclusive,
	"number":             KindNumber,
	"action":             KindAction,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind resolves a kind name, accepting the checkbox/radio aliases.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// exclusive reports whether the kind belongs to the radio family.
func (k Kind) exclusive() bool {
	return k == KindExclusive || k == KindOptionalExclusive
}

const (
	glyphToggleOn   = "▣"
	glyphToggleOff  = "□"
	glyphChoiceOn   = "◉"
	glyphChoiceOff  = "◯"
	unknownValueStr = "?"
)

// Bounds limits a number property. A nil side is unbounded.
type Bounds struct {
	Min *int
	Max *int
}

func (b Bounds) clamp(v int) int {
	if b.Min != nil && v < *b.Min {
		v = *b.Min
	}
	if b.Max != nil && v > *b.Max {
		v = *b.Max
	}
	return v
}

// Property is a typed, mutable leaf setting.
type Property struct {
	base
	kind    Kind
	key     string
	checked bool
	number  int
	bounds  Bounds
	action  Action
}

// PropertyOption customises a Property at construction time. Options that
// do not apply to the property's kind are ignored.
type PropertyOption func(*Property)

// WithKey sets the configuration key the property contributes under.
func WithKey(key string) PropertyOption {
	return func(p *Property) { p.key = key }
}

// WithChecked sets the initial state of toggle and exclusive kinds.
func WithChecked(checked bool) PropertyOption {
	return func(p *Property) {
		if p.kind == KindToggle || p.kind.exclusive() {
			p.checked = checked
		}
	}
}

// WithValue sets the initial value of a number property.
func WithValue(v int) PropertyOption {
	return func(p *Property) {
		if p.kind == KindNumber {
			p.number = v
		}
	}
}

func WithMin(min int) PropertyOption {
	return func(p *Property) { p.bounds.Min = &min }
}

func WithMax(max int) PropertyOption {
	return func(p *Property) { p.bounds.Max = &max }
}

func WithBounds(min, max int) PropertyOption {
	return func(p *Property) {
		p.bounds.Min = &min
		p.bounds.Max = &max
	}
}

// WithAction binds the callable run by an action property.
func WithAction(fn Action) PropertyOption {
	return func(p *Property) {
		if p.kind == KindAction && fn != nil {
			p.action = fn
		}
	}
}

// NewProperty creates a property and appends it to parent.
func NewProperty(parent *Menu, title string, kind Kind, opts ...PropertyOption) *Property {
	p := &Property{base: base{title: title, parent: parent}, kind: kind}
	if kind == KindAction {
		p.action = noop
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	attach(parent, p)
	return p
}

func (p *Property) Kind() Kind { return p.kind }

func (p *Property) Key() string { return p.key }

func (p *Property) Checked() bool { return p.checked }

func (p *Property) Value() int { return p.number }

func (p *Property) Bounds() Bounds { return p.bounds }

// SetChecked overwrites the boolean state without enforcing exclusivity.
func (p *Property) SetChecked(checked bool) {
	p.checked = checked
}

// DisplayText renders the glyph or value next to the title.
func (p *Property) DisplayText() string {
	switch p.kind {
	case KindAction:
		return p.title
	case KindToggle:
		if p.checked {
			return glyphToggleOn + " " + p.title
		}
		return glyphToggleOff + " " + p.title
	case KindExclusive, KindOptionalExclusive:
		if p.checked {
			return glyphChoiceOn + " " + p.title
		}
		return glyphChoiceOff + " " + p.title
	case KindNumber:
		return fmt.Sprintf("%s: %d", p.title, p.number)
	}
	return p.title + ": " + unknownValueStr
}

// OnSelect mutates the property according to its kind. Action properties
// return a request that is bubbled by the parent menu.
func (p *Property) OnSelect() Outcome {
	switch p.kind {
	case KindToggle:
		p.checked = !p.checked
	case KindExclusive:
		p.checked = true
		p.clearSiblings()
	case KindOptionalExclusive:
		p.checked = !p.checked
		if p.checked {
			p.clearSiblings()
		}
	case KindAction:
		return Outcome{Request: &Request{Source: p, Action: p.action}}
	}
	return Outcome{}
}

func (p *Property) clearSiblings() {
	if p.parent == nil {
		return
	}
	for _, child := range p.parent.children {
		sibling, ok := child.(*Property)
		if !ok || sibling == p || sibling.kind != p.kind {
			continue
		}
		sibling.checked = false
	}
}

// Move adjusts number properties by direction, clamped into the bounds.
func (p *Property) Move(direction int) {
	if p.kind != KindNumber {
		return
	}
	p.number = p.bounds.clamp(p.number + direction)
}

// Data returns the keyed value, or absent when the property has no key.
// Action properties never contribute.
func (p *Property) Data() Data {
	if p.key == "" {
		return Data{}
	}
	switch p.kind {
	case KindNumber:
		return Value(p.key, p.number)
	case KindAction:
		return Data{}
	default:
		return Value(p.key, p.checked)
	}
}
