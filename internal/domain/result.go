package domain

// Depth selects how thorough a single-file analysis is.
type Depth string

const (
	DepthBasic    Depth = "Basic"
	DepthStandard Depth = "Standard"
	DepthDeep     Depth = "Deep"
)

// AnalysisResult is the outcome of analyzing one file.
// QualityScore is always within [1.0, 10.0].
type AnalysisResult struct {
	QualityScore float64      `json:"quality_score"`
	Issues       []Issue      `json:"issues"`
	Suggestions  []Suggestion `json:"suggestions"`
}

// FileResult ties an analysis result to the repository file it came from.
type FileResult struct {
	Path   string         `json:"file"`
	Result AnalysisResult `json:"result"`
}

// MeanScore returns the average quality score across results,
// or 0 when there are none.
func MeanScore(results []FileResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Result.QualityScore
	}
	return sum / float64(len(results))
}
