package model

// Criterion is one manually ticked entry condition with its fixed point weight.
type Criterion struct {
	Key      string `json:"key" yaml:"key" toml:"key"`
	Name     string `json:"name" yaml:"name" toml:"name"`
	Category string `json:"category" yaml:"category" toml:"category"`
	Weight   int    `json:"weight" yaml:"weight" toml:"weight"`
	Note     string `json:"note,omitempty" yaml:"note" toml:"note"`
}

// Tier maps a minimum total score to a label.
type Tier struct {
	Label    string `json:"label" yaml:"label" toml:"label"`
	MinScore int    `json:"min_score" yaml:"min_score" toml:"min_score"`
	Color    string `json:"color" yaml:"color" toml:"color"`
}

// Row is the per-criterion line of a scored checklist.
type Row struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
	Checked  bool   `json:"checked"`
	Score    int    `json:"score"`
	Note     string `json:"note,omitempty"`
}

// ScoreResult is the output of the checklist scorer.
type ScoreResult struct {
	Rubric string `json:"rubric"`
	Rows   []Row  `json:"rows"`
	Total  int    `json:"total"`
	Max    int    `json:"max"`
	Tier   Tier   `json:"tier"`
}

// AllChecked reports whether every criterion is ticked.
func (r *ScoreResult) AllChecked() bool {
	if r == nil || len(r.Rows) == 0 {
		return false
	}
	for _, row := range r.Rows {
		if !row.Checked {
			return false
		}
	}
	return true
}
