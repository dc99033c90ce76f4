package emotion

// Canonical emotion labels, in the order the model is asked to score them.
const (
	LabelHappy   = "happy"
	LabelSad     = "sad"
	LabelFear    = "fear"
	LabelDisgust = "disgust"
	LabelAnger   = "anger"
)

// Labels lists every emotion the classifier scores.
var Labels = []string{LabelHappy, LabelSad, LabelFear, LabelDisgust, LabelAnger}

// Distribution holds emotion scores as percentages (0-100).
type Distribution struct {
	Happy   float64 `json:"happy"`
	Sad     float64 `json:"sad"`
	Fear    float64 `json:"fear"`
	Disgust float64 `json:"disgust"`
	Anger   float64 `json:"anger"`
}

// ZeroDistribution is the fallback when classification fails.
func ZeroDistribution() Distribution {
	return Distribution{}
}

// Dominant returns the label with the strictly highest score, or "" when
// two or more labels tie for the maximum.
func Dominant(d Distribution) string {
	scores := []struct {
		label string
		value float64
	}{
		{LabelHappy, d.Happy},
		{LabelSad, d.Sad},
		{LabelFear, d.Fear},
		{LabelDisgust, d.Disgust},
		{LabelAnger, d.Anger},
	}

	best := scores[0]
	tied := false
	for _, s := range scores[1:] {
		switch {
		case s.value > best.value:
			best = s
			tied = false
		case s.value == best.value:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return best.label
}
