package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/treemenu/internal/menu"
	"github.com/atomicstack/treemenu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

// newTestTree builds:
//
//	Main Menu
//	  Resolution Settings / Max Size (optional selector: 1920, 1280, 640)
//	  File Format / Output Format (JPEG, WEBP*), Quality 100 [0,100]
//	  Copy files (toggle)
//	  Empty
//	  Transform (action)
func newTestTree(action menu.Action) *menu.Menu {
	if action == nil {
		action = func(context.Context, menu.Config) error { return nil }
	}
	root := menu.NewMenu(nil, "Main Menu")
	resolution := menu.NewMenu(root, "Resolution Settings")
	size := menu.NewMenu(resolution, "Max Size", menu.AsValueSelector("maxSize"))
	for _, title := range []string{"1920", "1280", "640"} {
		menu.NewProperty(size, title, menu.KindOptionalExclusive)
	}
	format := menu.NewMenu(root, "File Format")
	output := menu.NewMenu(format, "Output Format", menu.AsValueSelector("outputFormat"))
	menu.NewProperty(output, "JPEG", menu.KindExclusive)
	menu.NewProperty(output, "WEBP", menu.KindExclusive, menu.WithChecked(true))
	menu.NewProperty(format, "Quality", menu.KindNumber, menu.WithKey("quality"), menu.WithValue(100), menu.WithBounds(0, 100))
	menu.NewProperty(root, "Copy files", menu.KindToggle, menu.WithKey("copy"))
	menu.NewMenu(root, "Empty")
	menu.NewProperty(root, "Transform", menu.KindAction, menu.WithAction(action))
	return root
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func TestDispatchRunsActionWithCollectedConfig(t *testing.T) {
	var calls int
	var got menu.Config
	root := newTestTree(func(_ context.Context, cfg menu.Config) error {
		calls++
		got = cfg
		return nil
	})
	h := NewHarness(NewModel(root, 0, 0, false, false, ""))
	h.Keys("down", "down", "down", "down", "enter")

	if !h.Quit() {
		t.Fatalf("expected program to quit after the action finished")
	}
	if calls != 1 {
		t.Fatalf("expected action to run once, ran %d times", calls)
	}
	want := menu.Config{
		"maxSize":      nil,
		"outputFormat": "WEBP",
		"quality":      100,
		"copy":         false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	out := h.Model().Outcome()
	if !out.Dispatched || !out.Completed || out.Interrupted || out.Err != nil {
		t.Fatalf("unexpected outcome %#v", out)
	}
	if out.Action != "Transform" {
		t.Fatalf("expected action title Transform, got %q", out.Action)
	}
	if diff := cmp.Diff([]string{"Main Menu", "Transform"}, out.Path); diff != "" {
		t.Fatalf("unexpected path (-want +got):\n%s", diff)
	}
}

func TestDispatchSeesEditedValues(t *testing.T) {
	var got menu.Config
	root := newTestTree(func(_ context.Context, cfg menu.Config) error {
		got = cfg
		return nil
	})
	h := NewHarness(NewModel(root, 0, 0, false, false, ""))
	// Max Size: pick 1280.
	h.Keys("enter", "enter", "down", "enter", "backspace", "backspace")
	// Quality: lower by three.
	h.Keys("down", "enter", "down", "left", "left", "left", "backspace")
	// Copy files on, then run.
	h.Keys("down", "space", "down", "down", "enter")

	if got == nil {
		t.Fatalf("expected action to run")
	}
	if v, _ := got.String("maxSize"); v != "1280" {
		t.Fatalf("expected maxSize 1280, got %#v", got["maxSize"])
	}
	if v, _ := got.Int("quality"); v != 97 {
		t.Fatalf("expected quality 97, got %#v", got["quality"])
	}
	if v, _ := got.Bool("copy"); !v {
		t.Fatalf("expected copy true, got %#v", got["copy"])
	}
}

func TestDispatchFreezesFrameAndIgnoresKeys(t *testing.T) {
	m := NewModel(newTestTree(nil), 0, 0, false, false, "")
	for i := 0; i < 4; i++ {
		m.Update(keyMsg("down"))
	}
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected dispatch command")
	}
	frame := m.View()
	if !strings.Contains(ansi.Strip(frame), "Running Transform…") {
		t.Fatalf("expected running status in frame, got:\n%s", ansi.Strip(frame))
	}
	renders := m.renders

	for _, name := range []string{"up", "left", "enter", "backspace", "space"} {
		if _, next := m.Update(keyMsg(name)); next != nil {
			t.Fatalf("expected %q to be ignored while dispatching", name)
		}
	}
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if m.View() != frame || m.renders != renders {
		t.Fatalf("expected frozen frame while the action runs")
	}
	if m.Focus().Selected() != 4 {
		t.Fatalf("expected cursor to stay on the action, got %d", m.Focus().Selected())
	}

	result := cmd()
	if _, ok := result.(command.Result); !ok {
		t.Fatalf("expected command.Result, got %T", result)
	}
	_, quit := m.Update(result)
	if quit == nil {
		t.Fatalf("expected quit command after result")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestInterruptCancelsRunningAction(t *testing.T) {
	root := newTestTree(func(ctx context.Context, _ menu.Config) error {
		<-ctx.Done()
		return ctx.Err()
	})
	m := NewModel(root, 0, 0, false, false, "")
	for i := 0; i < 4; i++ {
		m.Update(keyMsg("down"))
	}
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected dispatch command")
	}
	_, quit := m.Update(keyMsg("ctrl+c"))
	if quit == nil {
		t.Fatalf("expected interrupt to quit")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	result, ok := cmd().(command.Result)
	if !ok {
		t.Fatalf("expected command.Result")
	}
	if !errors.Is(result.Err, context.Canceled) {
		t.Fatalf("expected cancelled context, got %v", result.Err)
	}
	if _, next := m.Update(result); next != nil {
		t.Fatalf("expected late result to be ignored after interrupt")
	}
	out := m.Outcome()
	if !out.Interrupted || !out.Dispatched || out.Completed {
		t.Fatalf("unexpected outcome %#v", out)
	}
}

func TestInterruptBeforeDispatch(t *testing.T) {
	h := NewHarness(NewModel(newTestTree(nil), 0, 0, false, false, ""))
	h.Keys("down", "ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
	out := h.Model().Outcome()
	if !out.Interrupted || out.Dispatched {
		t.Fatalf("unexpected outcome %#v", out)
	}
}

func TestActionErrorIsReported(t *testing.T) {
	boom := errors.New("boom")
	root := newTestTree(func(context.Context, menu.Config) error { return boom })
	h := NewHarness(NewModel(root, 0, 0, false, false, ""))
	h.Keys("down", "down", "down", "down", "enter")
	if !h.Quit() {
		t.Fatalf("expected quit after failed action")
	}
	if err := h.Model().Outcome().Err; !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestActionPanicIsReported(t *testing.T) {
	root := newTestTree(func(context.Context, menu.Config) error { panic("kaput") })
	h := NewHarness(NewModel(root, 0, 0, false, false, ""))
	h.Keys("down", "down", "down", "down", "enter")
	var perr *command.PanicError
	if !errors.As(h.Model().Outcome().Err, &perr) {
		t.Fatalf("expected panic error, got %v", h.Model().Outcome().Err)
	}
}

func TestStartMenuOverride(t *testing.T) {
	m := NewModel(newTestTree(nil), 0, 0, false, false, "file")
	if got := m.Focus().Title(); got != "File Format" {
		t.Fatalf("expected File Format focus, got %q", got)
	}
	if !strings.Contains(plainView(m), "FILE FORMAT") {
		t.Fatalf("expected submenu header, got:\n%s", plainView(m))
	}
}

func TestStartMenuNested(t *testing.T) {
	m := NewModel(newTestTree(nil), 0, 0, false, false, "resolution/max")
	if got := m.Focus().Title(); got != "Max Size" {
		t.Fatalf("expected Max Size focus, got %q", got)
	}
}

func TestUnknownStartMenuStaysAtRoot(t *testing.T) {
	m := NewModel(newTestTree(nil), 0, 0, false, false, "nope")
	if m.Focus().Title() != "Main Menu" {
		t.Fatalf("expected root focus, got %q", m.Focus().Title())
	}
	if !strings.Contains(plainView(m), `Error: Unknown start menu "nope"`) {
		t.Fatalf("expected error line, got:\n%s", plainView(m))
	}
}

func TestHandlerForIgnoresUnknownMessages(t *testing.T) {
	m := NewModel(newTestTree(nil), 0, 0, false, false, "")
	renders := m.renders
	if _, cmd := m.Update(struct{}{}); cmd != nil {
		t.Fatalf("expected no command for unknown message")
	}
	if m.renders != renders {
		t.Fatalf("expected no render for unknown message")
	}
}
