package models

import "testing"

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  ComplexityLevel
	}{
		{"zero", 0, LevelLow},
		{"low boundary", 5, LevelLow},
		{"just above low", 6, LevelMedium},
		{"medium boundary", 10, LevelMedium},
		{"just above medium", 11, LevelHigh},
		{"fractional low", 5.5, LevelMedium},
		{"very high", 100, LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyScore(tt.score); got != tt.want {
				t.Errorf("ClassifyScore(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestNewFileComplexity(t *testing.T) {
	fc := NewFileComplexity(12, 8, 200, 65.0, 12)

	if fc.Level != LevelHigh {
		t.Errorf("Level = %v, want %v", fc.Level, LevelHigh)
	}
	if fc.Color != LevelColor(LevelHigh) {
		t.Errorf("Color = %q, want %q", fc.Color, LevelColor(LevelHigh))
	}
	if fc.Cyclomatic != 12 || fc.Cognitive != 8 || fc.LinesOfCode != 200 {
		t.Errorf("unexpected metrics: %+v", fc)
	}
}

func TestLevelColor(t *testing.T) {
	if LevelColor(LevelLow) == LevelColor(LevelHigh) {
		t.Error("low and high levels should map to distinct colors")
	}
}

func TestDistribution(t *testing.T) {
	var d Distribution
	d.Add(LevelLow)
	d.Add(LevelLow)
	d.Add(LevelMedium)
	d.Add(LevelHigh)

	if d.Count(LevelLow) != 2 {
		t.Errorf("Count(low) = %d, want 2", d.Count(LevelLow))
	}
	if d.Count(LevelMedium) != 1 {
		t.Errorf("Count(medium) = %d, want 1", d.Count(LevelMedium))
	}
	if d.Count(LevelHigh) != 1 {
		t.Errorf("Count(high) = %d, want 1", d.Count(LevelHigh))
	}
}
