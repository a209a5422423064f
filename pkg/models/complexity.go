package models

// ComplexityLevel is the 3-tier classification shared by every
// complexity-bearing entity: files, modules, and synthetic nodes alike.
type ComplexityLevel string

const (
	LevelLow    ComplexityLevel = "low"
	LevelMedium ComplexityLevel = "medium"
	LevelHigh   ComplexityLevel = "high"
)

// String returns the string representation.
func (l ComplexityLevel) String() string {
	return string(l)
}

// Classification thresholds. These are fixed across all entity types;
// views that deal in wide-range metrics (commit counts, lines changed)
// rescale onto this axis rather than defining their own tiers.
const (
	LowThreshold    = 5.0
	MediumThreshold = 10.0
)

// ClassifyScore maps a complexity score onto the fixed 3-tier scale.
func ClassifyScore(score float64) ComplexityLevel {
	switch {
	case score <= LowThreshold:
		return LevelLow
	case score <= MediumThreshold:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// LevelColor returns the presentation color hint for a level.
func LevelColor(level ComplexityLevel) string {
	switch level {
	case LevelLow:
		return "#90EE90"
	case LevelMedium:
		return "#FFD700"
	default:
		return "#FF6347"
	}
}

// FileComplexity holds per-file complexity measurements.
type FileComplexity struct {
	Cyclomatic           int             `json:"cyclomaticComplexity"`
	Cognitive            int             `json:"cognitiveComplexity"`
	LinesOfCode          int             `json:"linesOfCode"`
	MaintainabilityIndex float64         `json:"maintainabilityIndex"`
	Score                float64         `json:"score"`
	Level                ComplexityLevel `json:"level"`
	Color                string          `json:"color"`
}

// NewFileComplexity derives level and color from the score so the
// level-from-score invariant holds at construction time.
func NewFileComplexity(cyclomatic, cognitive, lines int, maintainability, score float64) FileComplexity {
	level := ClassifyScore(score)
	return FileComplexity{
		Cyclomatic:           cyclomatic,
		Cognitive:            cognitive,
		LinesOfCode:          lines,
		MaintainabilityIndex: maintainability,
		Score:                score,
		Level:                level,
		Color:                LevelColor(level),
	}
}

// ModuleComplexity holds aggregate statistics over a module's files.
type ModuleComplexity struct {
	TotalFiles        int             `json:"totalFiles"`
	AverageComplexity float64         `json:"averageComplexity"`
	MaxComplexity     float64         `json:"maxComplexity"`
	TotalLinesOfCode  int             `json:"totalLinesOfCode"`
	Level             ComplexityLevel `json:"level"`
}

// Distribution counts nodes per complexity level.
type Distribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Count returns the bucket for the given level.
func (d Distribution) Count(level ComplexityLevel) int {
	switch level {
	case LevelLow:
		return d.Low
	case LevelMedium:
		return d.Medium
	case LevelHigh:
		return d.High
	}
	return 0
}

// Add increments the bucket for the given level.
func (d *Distribution) Add(level ComplexityLevel) {
	switch level {
	case LevelLow:
		d.Low++
	case LevelMedium:
		d.Medium++
	case LevelHigh:
		d.High++
	}
}
