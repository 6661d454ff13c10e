package analysis

import "testing"

func TestClassifyCorrelation_Bands(t *testing.T) {
	tests := []struct {
		coefficient float64
		want        CorrelationStrength
	}{
		{1.0, StrengthStrongPositive},
		{0.7, StrengthStrongPositive},
		{0.699, StrengthModeratePositive},
		{0.4, StrengthModeratePositive},
		{0.399, StrengthWeakPositive},
		{0.1, StrengthWeakPositive},
		{0.099, StrengthNone},
		{0.0, StrengthNone},
		{-0.099, StrengthNone},
		{-0.1, StrengthWeakNegative},
		{-0.4, StrengthWeakNegative},
		{-0.401, StrengthModerateNegative},
		{-0.7, StrengthModerateNegative},
		{-0.701, StrengthStrongNegative},
		{-1.0, StrengthStrongNegative},
	}

	for _, tt := range tests {
		if got := ClassifyCorrelation(tt.coefficient); got != tt.want {
			t.Errorf("ClassifyCorrelation(%v) = %s, want %s", tt.coefficient, got, tt.want)
		}
	}
}

func TestCorrelationStrength_Predicates(t *testing.T) {
	if !StrengthStrongNegative.IsStrong() || StrengthModeratePositive.IsStrong() {
		t.Error("IsStrong misclassifies bands")
	}
	if !StrengthModerateNegative.IsModerate() || StrengthWeakPositive.IsModerate() {
		t.Error("IsModerate misclassifies bands")
	}
}
