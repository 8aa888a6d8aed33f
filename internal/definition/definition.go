// Package definition builds menu trees from HCL files.
//
// A definition holds exactly one top-level menu block plus optional locals.
// Inside a menu, child blocks keep their source order, which becomes the
// cursor order of the tree:
//
//	menu "<title>"      nested submenu
//	selector "<title>"  value-selector submenu built from a list of options
//	property "<title>"  single typed setting
//	action "<title>"    terminal action bound by name
//
// Expressions may reference env.NAME for process environment variables and
// local.NAME for values declared in a locals block.
package definition

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

//go:embed default.hcl
var defaultSource []byte

const defaultFilename = "default.hcl"

var (
	ErrUnknownKind   = errors.New("unknown property kind")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoRootMenu    = errors.New("definition must contain exactly one top-level menu")
)

// Actions resolves action names referenced by action blocks.
type Actions interface {
	Lookup(name string) (menu.Action, bool)
}

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "locals"},
		{Type: "menu", LabelNames: []string{"title"}},
	},
}

var menuSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "menu", LabelNames: []string{"title"}},
		{Type: "selector", LabelNames: []string{"title"}},
		{Type: "property", LabelNames: []string{"title"}},
		{Type: "action", LabelNames: []string{"title"}},
	},
}

type propertyBlock struct {
	Kind    string `hcl:"kind"`
	Key     string `hcl:"key,optional"`
	Checked *bool  `hcl:"checked,optional"`
	Value   *int   `hcl:"value,optional"`
	Min     *int   `hcl:"min,optional"`
	Max     *int   `hcl:"max,optional"`
}

type selectorBlock struct {
	Kind     string   `hcl:"kind"`
	Key      string   `hcl:"key"`
	Options  []string `hcl:"options"`
	Selected []string `hcl:"selected,optional"`
}

type actionBlock struct {
	Run string `hcl:"run,optional"`
}

// Default returns the built-in image conversion settings tree.
func Default(actions Actions) (*menu.Menu, error) {
	return Parse(defaultSource, defaultFilename, actions)
}

// Load reads and builds the definition stored at path.
func Load(path string, actions Actions) (*menu.Menu, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse definition %s: %w", path, diags)
	}
	return build(file, path, actions)
}

// Parse builds a definition from in-memory source.
func Parse(src []byte, filename string, actions Actions) (*menu.Menu, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse definition %s: %w", filename, diags)
	}
	return build(file, filename, actions)
}

func build(file *hcl.File, filename string, actions Actions) (*menu.Menu, error) {
	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode definition %s: %w", filename, diags)
	}
	b := &builder{actions: actions, ctx: baseContext(os.Environ())}
	var roots []*hcl.Block
	for _, block := range content.Blocks {
		switch block.Type {
		case "locals":
			if err := b.addLocals(block); err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
		case "menu":
			roots = append(roots, block)
		}
	}
	if len(roots) != 1 {
		return nil, fmt.Errorf("%s: %w (found %d)", filename, ErrNoRootMenu, len(roots))
	}
	root := menu.NewMenu(nil, roots[0].Labels[0])
	if err := b.fill(root, roots[0].Body); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return root, nil
}

type builder struct {
	actions Actions
	ctx     *hcl.EvalContext
	locals  map[string]cty.Value
}

func baseContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":   cty.ObjectVal(env),
			"local": cty.EmptyObjectVal,
		},
	}
}

func (b *builder) addLocals(block *hcl.Block) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	if b.locals == nil {
		b.locals = make(map[string]cty.Value, len(attrs))
	}
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(b.ctx)
		if diags.HasErrors() {
			return diags
		}
		b.locals[name] = value
	}
	b.ctx.Variables["local"] = cty.ObjectVal(b.locals)
	return nil
}

func (b *builder) fill(parent *menu.Menu, body hcl.Body) error {
	content, diags := body.Content(menuSchema)
	if diags.HasErrors() {
		return diags
	}
	for _, block := range content.Blocks {
		title := block.Labels[0]
		var err error
		switch block.Type {
		case "menu":
			err = b.fill(menu.NewMenu(parent, title), block.Body)
		case "selector":
			err = b.selector(parent, title, block.Body)
		case "property":
			err = b.property(parent, title, block.Body)
		case "action":
			err = b.action(parent, title, block.Body)
		}
		if err != nil {
			return fmt.Errorf("%s %q: %w", block.Type, title, err)
		}
	}
	return nil
}

func (b *builder) property(parent *menu.Menu, title string, body hcl.Body) error {
	var decl propertyBlock
	if diags := gohcl.DecodeBody(body, b.ctx, &decl); diags.HasErrors() {
		return diags
	}
	kind, ok := menu.ParseKind(decl.Kind)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKind, decl.Kind)
	}
	if kind == menu.KindAction {
		return fmt.Errorf("kind %q must be declared with an action block", decl.Kind)
	}
	opts := []menu.PropertyOption{menu.WithKey(decl.Key)}
	if decl.Checked != nil {
		opts = append(opts, menu.WithChecked(*decl.Checked))
	}
	if decl.Value != nil {
		opts = append(opts, menu.WithValue(*decl.Value))
	}
	if decl.Min != nil {
		opts = append(opts, menu.WithMin(*decl.Min))
	}
	if decl.Max != nil {
		opts = append(opts, menu.WithMax(*decl.Max))
	}
	if decl.Min != nil && decl.Max != nil && *decl.Min > *decl.Max {
		return fmt.Errorf("min %d exceeds max %d", *decl.Min, *decl.Max)
	}
	menu.NewProperty(parent, title, kind, opts...)
	return nil
}

func (b *builder) selector(parent *menu.Menu, title string, body hcl.Body) error {
	var decl selectorBlock
	if diags := gohcl.DecodeBody(body, b.ctx, &decl); diags.HasErrors() {
		return diags
	}
	kind, ok := menu.ParseKind(decl.Kind)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKind, decl.Kind)
	}
	switch kind {
	case menu.KindToggle, menu.KindExclusive, menu.KindOptionalExclusive:
	default:
		return fmt.Errorf("selector kind must be toggle, exclusive or optional-exclusive, got %q", decl.Kind)
	}
	if kind != menu.KindToggle && len(decl.Selected) > 1 {
		return fmt.Errorf("%s selector allows at most one selected option, got %d", kind, len(decl.Selected))
	}
	selected := make(map[string]bool, len(decl.Selected))
	for _, s := range decl.Selected {
		selected[s] = true
	}
	sel := menu.NewMenu(parent, title, menu.AsValueSelector(decl.Key))
	for _, option := range decl.Options {
		menu.NewProperty(sel, option, kind, menu.WithChecked(selected[option]))
		delete(selected, option)
	}
	for missing := range selected {
		return fmt.Errorf("selected option %q is not one of the options", missing)
	}
	return nil
}

func (b *builder) action(parent *menu.Menu, title string, body hcl.Body) error {
	var decl actionBlock
	if diags := gohcl.DecodeBody(body, b.ctx, &decl); diags.HasErrors() {
		return diags
	}
	var fn menu.Action
	if decl.Run != "" {
		if b.actions == nil {
			return fmt.Errorf("%w %q", ErrUnknownAction, decl.Run)
		}
		resolved, ok := b.actions.Lookup(decl.Run)
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownAction, decl.Run)
		}
		fn = resolved
	}
	menu.NewProperty(parent, title, menu.KindAction, menu.WithAction(fn))
	return nil
}
