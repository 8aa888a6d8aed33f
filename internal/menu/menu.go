package menu

// Menu is a composite node: an ordered list of children with a cursor.
type Menu struct {
	base
	children      []Node
	selected      int
	valueSelector bool
	key           string
}

// MenuOption customises a Menu at construction time.
type MenuOption func(*Menu)

// AsValueSelector makes the menu aggregate its children into one keyed value.
func AsValueSelector(key string) MenuOption {
	return func(m *Menu) {
		m.valueSelector = true
		m.key = key
	}
}

// NewMenu creates a menu and appends it to parent. A nil parent makes a root.
func NewMenu(parent *Menu, title string, opts ...MenuOption) *Menu {
	m := &Menu{base: base{title: title, parent: parent}}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	attach(parent, m)
	return m
}

func (m *Menu) Children() []Node { return m.children }

func (m *Menu) Len() int { return len(m.children) }

func (m *Menu) Key() string { return m.key }

func (m *Menu) IsValueSelector() bool { return m.valueSelector }

// Selected returns the cursor index, or -1 for an empty menu.
func (m *Menu) Selected() int {
	if len(m.children) == 0 {
		return -1
	}
	return m.selected
}

// Highlighted returns the child under the cursor.
func (m *Menu) Highlighted() (Node, bool) {
	if len(m.children) == 0 {
		return nil, false
	}
	return m.children[m.selected], true
}

// Navigate moves the cursor by direction unless that leaves the list.
func (m *Menu) Navigate(direction int) bool {
	next := m.selected + direction
	if next < 0 || next >= len(m.children) {
		return false
	}
	m.selected = next
	return true
}

// Move forwards a value adjustment to the highlighted child.
func (m *Menu) Move(direction int) {
	if child, ok := m.Highlighted(); ok {
		child.Move(direction)
	}
}

// Select forwards to the highlighted child. Action requests raised by the
// child are bubbled to the root before being returned.
func (m *Menu) Select() Outcome {
	child, ok := m.Highlighted()
	if !ok {
		return Outcome{}
	}
	out := child.OnSelect()
	if out.Request != nil {
		out.Request = m.Raise(out.Request)
	}
	return out
}

// OnSelect on a menu asks the controller to descend into it.
func (m *Menu) OnSelect() Outcome {
	return Outcome{Descend: m}
}

// Raise walks the parent chain to the root, recording the path taken.
func (m *Menu) Raise(req *Request) *Request {
	if req == nil {
		return nil
	}
	if len(req.Path) == 0 && req.Source != nil {
		req.Path = []string{req.Source.Title()}
	}
	req.Path = append([]string{m.title}, req.Path...)
	if m.parent == nil {
		req.Root = m
		return req
	}
	return m.parent.Raise(req)
}

// Root returns the top of the tree containing m.
func (m *Menu) Root() *Menu {
	node := m
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// Path returns the titles from the root down to m.
func (m *Menu) Path() []string {
	var path []string
	for node := m; node != nil; node = node.parent {
		path = append([]string{node.title}, path...)
	}
	return path
}

// DisplayText summarises a radio-style value selector as "title: choice".
func (m *Menu) DisplayText() string {
	if m.valueSelector && m.homogeneous(Kind.exclusive) {
		return m.title + ": " + m.firstChecked()
	}
	return m.title
}

// Data aggregates the children. A plain menu returns the nested list of
// child data. A value selector collapses into one entry; a selector over
// mixed children contributes nothing.
func (m *Menu) Data() Data {
	if !m.valueSelector {
		items := make([]Data, 0, len(m.children))
		for _, child := range m.children {
			items = append(items, child.Data())
		}
		return List(items...)
	}
	switch {
	case m.homogeneous(Kind.exclusive):
		if title := m.firstChecked(); title != "" {
			return Value(m.key, title)
		}
		return Value(m.key, nil)
	case m.homogeneous(func(k Kind) bool { return k == KindToggle }):
		titles := make([]string, 0, len(m.children))
		for _, child := range m.children {
			if p := child.(*Property); p.checked {
				titles = append(titles, p.title)
			}
		}
		return Value(m.key, titles)
	}
	return Data{}
}

// homogeneous reports whether every child is a property matching accept.
// An empty menu is homogeneous for any predicate.
func (m *Menu) homogeneous(accept func(Kind) bool) bool {
	for _, child := range m.children {
		p, ok := child.(*Property)
		if !ok || !accept(p.kind) {
			return false
		}
	}
	return true
}

// firstChecked returns the title of the first checked child in cursor order.
func (m *Menu) firstChecked() string {
	for _, child := range m.children {
		if p, ok := child.(*Property); ok && p.checked {
			return p.title
		}
	}
	return ""
}
