package scenario

import (
	"path/filepath"
	"testing"
)

func TestLoadStringBuildsSteps(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("test run")
s:trigger({kind = "crisis", type = "epidemic", duration = 3})
s:progress(3)
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if s.Name != "test run" {
		t.Fatalf("expected name %q, got %q", "test run", s.Name)
	}
	if len(s.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(s.Steps))
	}
	if s.Steps[0].Kind != "trigger" {
		t.Fatalf("expected first step trigger, got %q", s.Steps[0].Kind)
	}
	if got := s.Steps[0].Args["type"]; got != "epidemic" {
		t.Fatalf("expected type epidemic, got %v", got)
	}
	if got := s.Steps[1].Args["elapsed"]; got != 3 {
		t.Fatalf("expected elapsed 3, got %v", got)
	}
}

func TestLoadStringDefaultName(t *testing.T) {
	s, err := LoadString(`return Scenario.new()`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if s.Name != "scenario" {
		t.Fatalf("expected default name, got %q", s.Name)
	}
}

func TestLoadStringRejectsNonScenario(t *testing.T) {
	if _, err := LoadString(`return 42`); err == nil {
		t.Fatal("expected error for non-scenario return")
	}
	if _, err := LoadString(`local x =`); err == nil {
		t.Fatal("expected error for invalid lua")
	}
}

func TestLoadFileNameFromPath(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "epidemic_winter.lua"))
	if err != nil {
		t.Fatalf("load scenario file: %v", err)
	}
	if s.Name != "epidemic winter" {
		t.Fatalf("expected scripted name, got %q", s.Name)
	}
	if len(s.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(s.Steps))
	}
}

func TestNestedTablesConvert(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("nested")
s:resolve({kind = "opportunity", id = 1, refugees = {"Amara", "Kofi"}, notes = {weather = "harsh"}})
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	args := s.Steps[0].Args
	refugees, ok := args["refugees"].([]any)
	if !ok || len(refugees) != 2 {
		t.Fatalf("expected refugee array, got %v", args["refugees"])
	}
	notes, ok := args["notes"].(map[string]any)
	if !ok || notes["weather"] != "harsh" {
		t.Fatalf("expected notes map, got %v", args["notes"])
	}
}
