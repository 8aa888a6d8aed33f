package menu

import "context"

// Node is a vertex of the menu tree: either a *Menu or a *Property.
type Node interface {
	Title() string
	Parent() *Menu
	DisplayText() string
	OnSelect() Outcome
	Move(direction int)
	Data() Data
}

// Action is the terminal operation triggered by an action property. It
// receives the flattened configuration of the whole tree.
type Action func(ctx context.Context, cfg Config) error

// Outcome reports what a selection asks the controller to do next.
type Outcome struct {
	// Descend is set when the selected node is a submenu to focus.
	Descend *Menu
	// Request is set when an action property was selected.
	Request *Request
}

// Request carries an action up from the property that raised it to the root.
type Request struct {
	Source *Property
	Action Action
	// Path holds the titles from the root down to the source property.
	Path []string
	// Root is the tree the configuration should be collected from.
	Root *Menu
}

// base holds identity shared by every node kind.
type base struct {
	title  string
	parent *Menu
}

func (b *base) Title() string { return b.title }

func (b *base) Parent() *Menu { return b.parent }

func (b *base) DisplayText() string { return b.title }

func attach(parent *Menu, child Node) {
	if parent == nil {
		return
	}
	parent.children = append(parent.children, child)
}

func noop(context.Context, Config) error { return nil }
