package analyzer

const (
	baseScore       = 10.0
	penaltyPerIssue = 0.5
	minScore        = 1.0
)

// Score converts an issue count into a quality score in [1.0, 10.0].
// Pure: 10.0 only for zero issues, clamped at 1.0 no matter how many
// issues a file accumulates.
func Score(issueCount int) float64 {
	score := baseScore - float64(issueCount)*penaltyPerIssue
	if score < minScore {
		return minScore
	}
	return score
}
