// Package report renders analysis results as markdown and HTML
// documents plus an interactive chart page.
package report

import (
	"time"

	"github.com/repolens/repolens/internal/domain"
)

// Report is everything one analysis run produced for a repository.
type Report struct {
	Date         time.Time
	Repo         domain.Repository
	Commits      []domain.Commit
	Files        []domain.FileResult
	OverallScore float64
	Depth        domain.Depth
}

// TotalIssues counts issues across all analyzed files.
func (r *Report) TotalIssues() int {
	count := 0
	for _, f := range r.Files {
		count += len(f.Result.Issues)
	}
	return count
}

// TotalSuggestions counts suggestions across all analyzed files.
func (r *Report) TotalSuggestions() int {
	count := 0
	for _, f := range r.Files {
		count += len(f.Result.Suggestions)
	}
	return count
}

// IssuesByCategory tallies issue counts per category across files.
func (r *Report) IssuesByCategory() map[domain.Category]int {
	counts := make(map[domain.Category]int)
	for _, f := range r.Files {
		for _, issue := range f.Result.Issues {
			counts[issue.Category]++
		}
	}
	return counts
}

// HasFindings reports whether any file produced at least one issue.
func (r *Report) HasFindings() bool {
	return r.TotalIssues() > 0
}

// RecentCommits returns up to n commits for the report table.
func (r *Report) RecentCommits(n int) []domain.Commit {
	if len(r.Commits) <= n {
		return r.Commits
	}
	return r.Commits[:n]
}
