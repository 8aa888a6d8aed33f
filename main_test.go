package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/atomicstack/treemenu/internal/app"
	"github.com/atomicstack/treemenu/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DefinitionPath: "menu.hcl",
			StartMenu:      "file format",
			Width:          80,
			Height:         24,
			ShowFooter:     true,
			Verbose:        true,
			Output:         "yaml",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"definition": "menu.hcl",
			"start":      "file format",
			"width":      "80",
			"height":     "24",
			"footer":     "true",
			"verbose":    "true",
			"output":     "yaml",
		},
		Args: []string{"-definition", "menu.hcl"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	for key, want := range map[string]interface{}{
		"definition": "menu.hcl",
		"start":      "file format",
		"width":      "80",
		"height":     "24",
		"footer":     "true",
		"verbose":    "true",
		"output":     "yaml",
		"trace":      true,
		"logFile":    "trace.log",
	} {
		if flagsValue[key] != want {
			t.Fatalf("expected flag %s=%v, got %v", key, want, flagsValue[key])
		}
	}
	if payload["definition"] != "menu.hcl" {
		t.Fatalf("expected definition source, got %v", payload["definition"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestStartupTracePayloadDefaultDefinition(t *testing.T) {
	payload := startupTracePayload(config.Config{})
	if payload["definition"] != "default" {
		t.Fatalf("expected default definition, got %v", payload["definition"])
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(fmt.Errorf("run: %w", app.ErrNotTerminal)); got != 2 {
		t.Fatalf("expected exit code 2 for missing terminal, got %d", got)
	}
	if got := exitCode(errors.New("boom")); got != 1 {
		t.Fatalf("expected exit code 1, got %d", got)
	}
}
