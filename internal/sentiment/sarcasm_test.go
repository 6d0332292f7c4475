package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSarcasmDetector_Detect(t *testing.T) {
	detector := NewSarcasmDetector()

	tests := []struct {
		name  string
		text  string
		score float64
		want  bool
	}{
		{
			name:  "oh great pattern",
			text:  "oh great, another breakdown on the highway",
			score: 0.1,
			want:  true,
		},
		{
			name:  "just perfect pattern",
			text:  "battery died in the rain, just perfect",
			score: -0.1,
			want:  true,
		},
		{
			name:  "fantastic followed by problem",
			text:  "fantastic scooter, shame about the charging problem",
			score: 0.2,
			want:  true,
		},
		{
			name:  "love when things fail",
			text:  "i love it when the app fails to unlock the scooter",
			score: 0.0,
			want:  true,
		},
		{
			name:  "contradiction: positive wording, negative score",
			text:  "such an amazing scooter",
			score: -0.5,
			want:  true,
		},
		{
			name:  "positive wording with mildly negative score",
			text:  "such an amazing scooter",
			score: -0.2,
			want:  false,
		},
		{
			name:  "negative score without positive wording",
			text:  "the motor burnt out within a month",
			score: -0.8,
			want:  false,
		},
		{
			name:  "plain positive comment",
			text:  "really happy with the range",
			score: 0.7,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.text, tt.score))
		})
	}
}
