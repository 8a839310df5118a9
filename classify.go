package simlab

// MatchLabel classifies a similarity score against a user threshold.
type MatchLabel string

const (
	LabelMatch      MatchLabel = "match"
	LabelBorderline MatchLabel = "borderline"
	LabelNoMatch    MatchLabel = "no_match"
)

// BorderlineMargin is how far below the threshold a score may fall and
// still be reported as borderline rather than a miss.
const BorderlineMargin = 0.10

// Classify labels a score relative to the match threshold.
func Classify(score, threshold float64) MatchLabel {
	switch {
	case score >= threshold:
		return LabelMatch
	case score >= threshold-BorderlineMargin:
		return LabelBorderline
	default:
		return LabelNoMatch
	}
}
