package detpass

// Rating is a presentation-ready view of a strength score.
type Rating struct {
	// Score is the raw strength score.
	Score float64
	// Label is the human-readable bucket.
	Label string
	// Fraction is Score clamped to [0, 1], suitable for a progress bar.
	Fraction float64
}

// ratingBuckets maps exclusive upper bounds to labels, in ascending order.
var ratingBuckets = []struct {
	below float64
	label string
}{
	{0.25, "ridiculously low"},
	{0.375, "very low"},
	{0.5, "low"},
	{0.625, "fair"},
	{0.75, "good"},
	{0.875, "great"},
	{1.0, "excellent"},
}

// OverkillLabel is the label of scores of 1.0 and above.
const OverkillLabel = "overkill"

// Rate buckets a strength score.
func Rate(score float64) Rating {
	label := OverkillLabel
	for _, b := range ratingBuckets {
		if score < b.below {
			label = b.label
			break
		}
	}

	return Rating{
		Score:    score,
		Label:    label,
		Fraction: max(0, min(1, score)),
	}
}
