package checklist

import (
	"fmt"
	"sort"

	"ChecklistSentinel/internal/model"
)

// Total sums the weights of the criteria whose flag is set. Flags missing from the map count as false.
func Total(criteria []model.Criterion, flags map[string]bool) int {
	total := 0
	for _, c := range criteria {
		if flags[c.Key] {
			total += c.Weight
		}
	}
	return total
}

// Classify walks the ladder from the highest threshold down; the first tier whose
// threshold the total reaches wins, otherwise def.
func Classify(ladder []model.Tier, def model.Tier, total int) model.Tier {
	for _, t := range ladder {
		if total >= t.MinScore {
			return t
		}
	}
	return def
}

// Classify maps a total score to one of the rubric's tiers.
func (r *Rubric) Classify(total int) model.Tier {
	return Classify(r.ladder, r.def, total)
}

// Score evaluates the flags against the rubric. Every flag key must name a criterion.
func (r *Rubric) Score(flags map[string]bool) (*model.ScoreResult, error) {
	if unknown := r.unknownKeys(flags); len(unknown) > 0 {
		return nil, fmt.Errorf("rubric %s: %w: %v", r.name, ErrUnknownCriterion, unknown)
	}

	rows := make([]model.Row, len(r.criteria))
	for i, c := range r.criteria {
		checked := flags[c.Key]
		score := 0
		if checked {
			score = c.Weight
		}
		rows[i] = model.Row{
			Key:      c.Key,
			Name:     c.Name,
			Category: c.Category,
			Weight:   c.Weight,
			Checked:  checked,
			Score:    score,
			Note:     c.Note,
		}
	}

	total := Total(r.criteria, flags)
	return &model.ScoreResult{
		Rubric: r.name,
		Rows:   rows,
		Total:  total,
		Max:    MaxScore,
		Tier:   r.Classify(total),
	}, nil
}

func (r *Rubric) unknownKeys(flags map[string]bool) []string {
	var unknown []string
	for k := range flags {
		if !r.Has(k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}
