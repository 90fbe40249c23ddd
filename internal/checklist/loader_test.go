package checklist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const yamlRubric = `name: desk
alert_score: 75
legacy_signals: true
criteria:
  - key: trend
    name: Trend
    category: Trend
    weight: 50
  - key: level
    name: Level
    category: Structure
    weight: 30
  - key: risk
    name: Risk ok
    category: Risk
    weight: 20
ladder:
  - label: Strong
    min_score: 70
    color: green
  - label: Medium
    min_score: 60
    color: yellow
default:
  label: Weak
  color: red
`

const tomlRubric = `name = "desk"

[[criteria]]
key = "trend"
weight = 50

[[criteria]]
key = "level"
weight = 50

[[ladder]]
label = "Strong"
min_score = 70

[default]
label = "Weak"
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRubric_YAML(t *testing.T) {
	r, err := LoadRubric(writeFile(t, "desk.yaml", yamlRubric))
	if err != nil {
		t.Fatal(err)
	}
	if r.Name() != "desk" || len(r.Criteria()) != 3 {
		t.Fatalf("unexpected rubric %s with %d criteria", r.Name(), len(r.Criteria()))
	}
	if r.AlertScore() != 75 || !r.LegacySignals() {
		t.Errorf("expected alert 75 and legacy signals, got %d/%v", r.AlertScore(), r.LegacySignals())
	}
	res, err := r.Score(map[string]bool{"trend": true, "risk": true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 70 || res.Tier.Label != "Strong" {
		t.Errorf("expected 70/Strong, got %d/%s", res.Total, res.Tier.Label)
	}
}

func TestLoadRubric_TOML(t *testing.T) {
	r, err := LoadRubric(writeFile(t, "desk.toml", tomlRubric))
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Classify(50).Label; got != "Weak" {
		t.Errorf("expected Weak, got %q", got)
	}
	if got := r.Classify(100).Label; got != "Strong" {
		t.Errorf("expected Strong, got %q", got)
	}
}

func TestLoadRubric_Errors(t *testing.T) {
	if _, err := LoadRubric(writeFile(t, "desk.json", "{}")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	bad := writeFile(t, "bad.yaml", "name: bad\ncriteria:\n  - key: a\n    weight: 10\nladder:\n  - label: X\n    min_score: 50\ndefault:\n  label: Y\n")
	if _, err := LoadRubric(bad); !errors.Is(err, ErrWeightSum) {
		t.Errorf("expected ErrWeightSum, got %v", err)
	}
	if _, err := LoadRubric(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolve(t *testing.T) {
	r, err := Resolve("", "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Name() != DefaultRevision {
		t.Errorf("expected %s, got %s", DefaultRevision, r.Name())
	}
	r, err = Resolve("v1", writeFile(t, "desk.yaml", yamlRubric))
	if err != nil {
		t.Fatal(err)
	}
	if r.Name() != "desk" {
		t.Errorf("rubric file should win over revision, got %s", r.Name())
	}
}

func TestLoadRubric_ExampleFile(t *testing.T) {
	r, err := LoadRubric(filepath.Join("..", "..", "configs", "rubric.example.toml"))
	if err != nil {
		t.Fatalf("load example: %v", err)
	}
	if r.Name() != "scalp" || r.AlertScore() != 75 || len(r.Criteria()) != 4 {
		t.Errorf("unexpected rubric: %s %d %d", r.Name(), r.AlertScore(), len(r.Criteria()))
	}
	if got := r.Classify(60).Label; got != "Medium" {
		t.Errorf("classify 60: expected Medium, got %q", got)
	}
}
