package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

func TestComparisonDetector_Detect(t *testing.T) {
	detector := NewComparisonDetector(models.DefaultBrandRegistry())

	tests := []struct {
		name       string
		text       string
		wantHas    bool
		wantBrands []string
	}{
		{
			name:       "phrase plus two brands",
			text:       "Ola S1 battery dies fast but the Ather is better than this",
			wantHas:    true,
			wantBrands: []string{"ather_energy", "ola_electric"},
		},
		{
			name:       "two brands without phrase",
			text:       "got an ather after selling the revolt",
			wantHas:    true,
			wantBrands: []string{"ather_energy", "revolt_motors"},
		},
		{
			name:       "phrase with a single brand",
			text:       "the ola electric is better than my old petrol scooter",
			wantHas:    true,
			wantBrands: []string{"ola_electric"},
		},
		{
			name:       "single brand, no phrase",
			text:       "ola electric delivery took three weeks",
			wantHas:    false,
			wantBrands: []string{"ola_electric"},
		},
		{
			name:    "no brands, no phrase",
			text:    "electric scooters are the future",
			wantHas: false,
		},
		{
			name:       "versus phrasing",
			text:       "tvs iqube vs bajaj chetak, which one?",
			wantHas:    true,
			wantBrands: []string{"bajaj_chetak", "tvs_iqube"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.Detect(tt.text)
			assert.Equal(t, tt.wantHas, got.HasComparison)
			assert.Equal(t, tt.wantBrands, got.MentionedBrands)
		})
	}
}

func TestComparisonDetector_Idempotent(t *testing.T) {
	detector := NewComparisonDetector(models.DefaultBrandRegistry())
	text := "ather 450x compared to ola s1 and revolt rv400"

	first := detector.Detect(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, detector.Detect(text))
	}
	assert.True(t, first.HasComparison)
	assert.Equal(t, []string{"ather_energy", "ola_electric", "revolt_motors"}, first.MentionedBrands)
}
