package models

// Stage describes one board column. Value is the key stored on deals,
// Label is what gets displayed.
type Stage struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// StageValues returns the keys of the given stages in display order
func StageValues(stages []Stage) []string {
	values := make([]string, len(stages))
	for i, s := range stages {
		values[i] = s.Value
	}
	return values
}

// FindStage returns the stage with the given value
func FindStage(stages []Stage, value string) (Stage, bool) {
	for _, s := range stages {
		if s.Value == value {
			return s, true
		}
	}
	return Stage{}, false
}
