package ui

import (
	"io"
	"testing"

	"github.com/atomicstack/treemenu/internal/action"
	"github.com/atomicstack/treemenu/internal/definition"
	"github.com/atomicstack/treemenu/internal/testutil"
)

func newDefaultModel(t *testing.T) *Model {
	t.Helper()
	registry, err := action.NewRegistry(io.Discard, action.FormatJSON)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	root, err := definition.Default(registry)
	if err != nil {
		t.Fatalf("default definition: %v", err)
	}
	return NewModel(root, 0, 0, false, false, "")
}

func TestDefaultMenuGoldenFrames(t *testing.T) {
	h := NewHarness(newDefaultModel(t))
	testutil.AssertGolden(t, "default_root.golden", plainView(h.Model()))

	h.Keys("down", "enter")
	testutil.AssertGolden(t, "default_file_format.golden", plainView(h.Model()))
}
