package checklist

import (
	"errors"
	"fmt"
	"strings"

	"ChecklistSentinel/internal/model"
)

// MaxScore is the required sum of all weights in a rubric.
const MaxScore = 100

var (
	ErrWeightSum          = errors.New("weights do not sum to 100")
	ErrNegativeWeight     = errors.New("negative weight")
	ErrDuplicateCriterion = errors.New("duplicate criterion")
	ErrUnknownCriterion   = errors.New("unknown criterion")
	ErrInvalidLadder      = errors.New("invalid tier ladder")
	ErrUnknownRevision    = errors.New("unknown revision")
)

// Spec describes a rubric before validation. It is the shape of rubric files.
type Spec struct {
	Name          string            `json:"name" yaml:"name" toml:"name"`
	Criteria      []model.Criterion `json:"criteria" yaml:"criteria" toml:"criteria"`
	Ladder        []model.Tier      `json:"ladder" yaml:"ladder" toml:"ladder"`
	Default       model.Tier        `json:"default" yaml:"default" toml:"default"`
	AlertScore    int               `json:"alert_score" yaml:"alert_score" toml:"alert_score"`
	LegacySignals bool              `json:"legacy_signals" yaml:"legacy_signals" toml:"legacy_signals"`
}

// Rubric is an immutable weight table plus threshold ladder.
type Rubric struct {
	name          string
	criteria      []model.Criterion
	index         map[string]int
	ladder        []model.Tier
	def           model.Tier
	alertScore    int
	legacySignals bool
}

// NewRubric validates the spec and builds a Rubric.
// The ladder must be strictly descending with thresholds in (0, 100]; the default tier covers the rest.
func NewRubric(s Spec) (*Rubric, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, errors.New("rubric name is required")
	}
	if len(s.Criteria) == 0 {
		return nil, fmt.Errorf("rubric %s: no criteria", name)
	}

	r := &Rubric{
		name:          name,
		criteria:      make([]model.Criterion, len(s.Criteria)),
		index:         make(map[string]int, len(s.Criteria)),
		ladder:        make([]model.Tier, len(s.Ladder)),
		def:           s.Default,
		alertScore:    s.AlertScore,
		legacySignals: s.LegacySignals,
	}
	copy(r.criteria, s.Criteria)
	copy(r.ladder, s.Ladder)

	sum := 0
	for i, c := range r.criteria {
		if c.Key == "" {
			return nil, fmt.Errorf("rubric %s: criterion %d has no key", name, i)
		}
		if _, dup := r.index[c.Key]; dup {
			return nil, fmt.Errorf("rubric %s: %w: %s", name, ErrDuplicateCriterion, c.Key)
		}
		if c.Weight < 0 {
			return nil, fmt.Errorf("rubric %s: %w: %s=%d", name, ErrNegativeWeight, c.Key, c.Weight)
		}
		if r.criteria[i].Name == "" {
			r.criteria[i].Name = c.Key
		}
		r.index[c.Key] = i
		sum += c.Weight
	}
	if sum != MaxScore {
		return nil, fmt.Errorf("rubric %s: %w (got %d)", name, ErrWeightSum, sum)
	}

	if len(r.ladder) == 0 {
		return nil, fmt.Errorf("rubric %s: %w: empty ladder", name, ErrInvalidLadder)
	}
	prev := MaxScore + 1
	for _, t := range r.ladder {
		if t.Label == "" {
			return nil, fmt.Errorf("rubric %s: %w: tier without label", name, ErrInvalidLadder)
		}
		if t.MinScore <= 0 || t.MinScore > MaxScore {
			return nil, fmt.Errorf("rubric %s: %w: %s threshold %d outside (0, %d]", name, ErrInvalidLadder, t.Label, t.MinScore, MaxScore)
		}
		if t.MinScore >= prev {
			return nil, fmt.Errorf("rubric %s: %w: thresholds must strictly descend", name, ErrInvalidLadder)
		}
		prev = t.MinScore
	}
	if r.def.Label == "" {
		return nil, fmt.Errorf("rubric %s: %w: default tier without label", name, ErrInvalidLadder)
	}
	r.def.MinScore = 0

	if r.alertScore == 0 {
		r.alertScore = r.ladder[0].MinScore
	}
	if r.alertScore < 0 || r.alertScore > MaxScore {
		return nil, fmt.Errorf("rubric %s: alert score %d outside [0, %d]", name, r.alertScore, MaxScore)
	}
	return r, nil
}

// MustRubric is NewRubric for static tables; it panics on an invalid spec.
func MustRubric(s Spec) *Rubric {
	r, err := NewRubric(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rubric) Name() string { return r.name }

// Criteria returns a copy of the weight table in display order.
func (r *Rubric) Criteria() []model.Criterion {
	out := make([]model.Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Ladder returns the tiers from highest threshold down, followed by the default tier.
func (r *Rubric) Ladder() []model.Tier {
	out := make([]model.Tier, 0, len(r.ladder)+1)
	out = append(out, r.ladder...)
	return append(out, r.def)
}

// AlertScore is the total at or above which a high-score alert fires.
func (r *Rubric) AlertScore() int { return r.alertScore }

// LegacySignals reports whether the simplified divergence rule belongs to this revision.
func (r *Rubric) LegacySignals() bool { return r.legacySignals }

// Has reports whether key is a criterion of the rubric.
func (r *Rubric) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Keys returns the criterion keys in display order.
func (r *Rubric) Keys() []string {
	keys := make([]string, len(r.criteria))
	for i, c := range r.criteria {
		keys[i] = c.Key
	}
	return keys
}

// Spec returns the rubric as a spec, suitable for writing out.
func (r *Rubric) Spec() Spec {
	return Spec{
		Name:          r.name,
		Criteria:      r.Criteria(),
		Ladder:        append([]model.Tier(nil), r.ladder...),
		Default:       r.def,
		AlertScore:    r.alertScore,
		LegacySignals: r.legacySignals,
	}
}
