package habit

// Bucket groups a success probability into one of three display bands. A
// single bucket drives every colour derived from a probability so the badge,
// its background and the chart accent always agree.
type Bucket int

const (
	Negative Bucket = iota
	Cautionary
	Positive
)

const (
	PositiveThreshold   = 0.8
	CautionaryThreshold = 0.5
)

func BucketFor(p float64) Bucket {
	switch {
	case p >= PositiveThreshold:
		return Positive
	case p >= CautionaryThreshold:
		return Cautionary
	default:
		return Negative
	}
}

func (b Bucket) String() string {
	switch b {
	case Positive:
		return "positive"
	case Cautionary:
		return "cautionary"
	default:
		return "negative"
	}
}

// DisplayProbability returns the insight's probability once one has loaded
// and the habit's baseline otherwise. The two are never combined.
func DisplayProbability(h Habit, in *Insight) float64 {
	if in != nil {
		return in.SuccessProbability
	}
	return h.SuccessProbability
}
