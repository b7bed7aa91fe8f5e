// Package analyzer implements the pattern-based code quality engine:
// per-language regex rules, structural heuristics, a derived quality
// score, and before/after improvement suggestions.
package analyzer

import (
	"math/rand"
	"strings"
	"time"

	"github.com/repolens/repolens/internal/domain"
)

// maintainabilityChance is the probability of the extra maintainability
// finding appended at Deep analysis depth.
const maintainabilityChance = 0.3

// Analyzer produces an AnalysisResult for a single file. It holds no
// cross-call state besides the random source, so calls are independent
// and may run concurrently across files when each Analyzer has its own
// source.
type Analyzer struct {
	rng *rand.Rand
}

// New returns an Analyzer with a time-seeded random source.
func New() *Analyzer {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns an Analyzer using the given random source.
// Tests pass a fixed seed to make the Deep-depth path deterministic.
func NewWithSource(src rand.Source) *Analyzer {
	return &Analyzer{rng: rand.New(src)}
}

// Analyze runs the full per-file analysis. The caller supplies decoded
// text; binary content must be filtered or replaced with a placeholder
// before reaching here. Empty or whitespace-only input short-circuits to
// a fixed degenerate result. Never returns an error: every input branch
// yields a well-formed result.
func (a *Analyzer) Analyze(code, filename, lang string, depth domain.Depth) domain.AnalysisResult {
	if strings.TrimSpace(code) == "" {
		return domain.AnalysisResult{
			QualityScore: 5.0,
			Issues: []domain.Issue{{
				Category:    domain.CategoryEmptyFile,
				Description: "The file appears to be empty or contains only whitespace.",
			}},
		}
	}

	issues := Scan(code, lang)
	issues = append(issues, Heuristics(code, lang)...)

	if depth == domain.DepthDeep && a.rng.Float64() < maintainabilityChance {
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryMaintainability,
			Description: "Consider adding more inline documentation to improve code maintainability.",
		})
	}

	return domain.AnalysisResult{
		QualityScore: Score(len(issues)),
		Issues:       issues,
		Suggestions:  Suggest(issues, lang),
	}
}
