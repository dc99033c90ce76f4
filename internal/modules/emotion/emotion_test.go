package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominantUniqueMax(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
		want string
	}{
		{"happy wins", Distribution{Happy: 62, Sad: 10, Fear: 8, Disgust: 5, Anger: 15}, LabelHappy},
		{"anger wins", Distribution{Happy: 5, Sad: 10, Fear: 8, Disgust: 7, Anger: 70}, LabelAnger},
		{"fear wins", Distribution{Fear: 0.1}, LabelFear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dominant(tt.dist))
		})
	}
}

func TestDominantTieIsEmpty(t *testing.T) {
	assert.Equal(t, "", Dominant(Distribution{Happy: 40, Sad: 40, Fear: 10, Disgust: 5, Anger: 5}))
}

func TestDominantAllZeroIsEmpty(t *testing.T) {
	assert.Equal(t, "", Dominant(ZeroDistribution()))
}

func TestDominantTieBrokenByLaterMax(t *testing.T) {
	// sad and fear tie but disgust exceeds both
	assert.Equal(t, LabelDisgust, Dominant(Distribution{Sad: 30, Fear: 30, Disgust: 35, Anger: 5}))
}
