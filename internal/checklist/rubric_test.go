package checklist

import (
	"errors"
	"testing"

	"ChecklistSentinel/internal/model"
)

func validSpec() Spec {
	return Spec{
		Name: "test",
		Criteria: []model.Criterion{
			{Key: "a", Weight: 60},
			{Key: "b", Weight: 40},
		},
		Ladder:  []model.Tier{{Label: "High", MinScore: 70}, {Label: "Mid", MinScore: 50}},
		Default: model.Tier{Label: "Low"},
	}
}

func TestRevisions_SumTo100(t *testing.T) {
	names := RevisionNames()
	if len(names) != 4 {
		t.Fatalf("expected 4 revisions, got %v", names)
	}
	for _, name := range names {
		r, err := Revision(name)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0
		for _, c := range r.Criteria() {
			sum += c.Weight
		}
		if sum != 100 {
			t.Errorf("%s: weights sum to %d", name, sum)
		}
	}
}

func TestRevisions_Evolution(t *testing.T) {
	v1, _ := Revision("v1")
	v2, _ := Revision("v2")
	v3, _ := Revision("v3")
	if !v1.Has("liquidity_zone") || !v2.Has("liquidity_zone") || v3.Has("liquidity_zone") {
		t.Error("liquidity should exist in v1 and v2 only")
	}
	category := func(r *Rubric, key string) string {
		for _, c := range r.Criteria() {
			if c.Key == key {
				return c.Category
			}
		}
		return ""
	}
	if category(v1, "volume_above_average") == category(v2, "volume_above_average") {
		t.Error("volume should move category between v1 and v2")
	}
	if !v1.LegacySignals() || !v2.LegacySignals() || v3.LegacySignals() {
		t.Error("simplified divergence belongs to v1 and v2 only")
	}
	if len(v1.Ladder()) != 4 || len(v3.Ladder()) != 3 {
		t.Errorf("unexpected ladder sizes: v1=%d v3=%d", len(v1.Ladder()), len(v3.Ladder()))
	}
}

func TestRevision_Unknown(t *testing.T) {
	if _, err := Revision("v9"); !errors.Is(err, ErrUnknownRevision) {
		t.Errorf("expected ErrUnknownRevision, got %v", err)
	}
}

func TestNewRubric_RejectsScenarioTable(t *testing.T) {
	s := validSpec()
	s.Criteria = scenarioTable()
	if _, err := NewRubric(s); !errors.Is(err, ErrWeightSum) {
		t.Errorf("expected ErrWeightSum for a table summing to 103, got %v", err)
	}
}

func TestNewRubric_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
		want   error
	}{
		{"sum below 100", func(s *Spec) { s.Criteria[1].Weight = 30 }, ErrWeightSum},
		{"negative weight", func(s *Spec) { s.Criteria = append(s.Criteria, model.Criterion{Key: "c", Weight: -1}) }, ErrNegativeWeight},
		{"duplicate key", func(s *Spec) { s.Criteria[1].Key = "a" }, ErrDuplicateCriterion},
		{"empty ladder", func(s *Spec) { s.Ladder = nil }, ErrInvalidLadder},
		{"ascending ladder", func(s *Spec) { s.Ladder[0].MinScore = 40 }, ErrInvalidLadder},
		{"equal thresholds", func(s *Spec) { s.Ladder[1].MinScore = 70 }, ErrInvalidLadder},
		{"threshold above max", func(s *Spec) { s.Ladder[0].MinScore = 101 }, ErrInvalidLadder},
		{"zero threshold", func(s *Spec) { s.Ladder[1].MinScore = 0 }, ErrInvalidLadder},
		{"default without label", func(s *Spec) { s.Default.Label = "" }, ErrInvalidLadder},
	}
	for _, tt := range tests {
		s := validSpec()
		s.Criteria = append([]model.Criterion(nil), s.Criteria...)
		s.Ladder = append([]model.Tier(nil), s.Ladder...)
		tt.mutate(&s)
		if _, err := NewRubric(s); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestNewRubric_Defaults(t *testing.T) {
	r, err := NewRubric(validSpec())
	if err != nil {
		t.Fatal(err)
	}
	if r.AlertScore() != 70 {
		t.Errorf("expected alert score to default to top threshold 70, got %d", r.AlertScore())
	}
	if r.Criteria()[0].Name != "a" {
		t.Errorf("expected name to default to key, got %q", r.Criteria()[0].Name)
	}
	if _, err := NewRubric(Spec{}); err == nil {
		t.Error("expected error for empty spec")
	}
}

func TestRubric_IsImmutable(t *testing.T) {
	s := validSpec()
	r, err := NewRubric(s)
	if err != nil {
		t.Fatal(err)
	}
	s.Criteria[0].Weight = 0
	got := r.Criteria()
	got[1].Weight = 99
	res, _ := r.Score(map[string]bool{"a": true, "b": true})
	if res.Total != 100 {
		t.Errorf("rubric changed through caller slices: total %d", res.Total)
	}
}
