package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/domain"
)

func sampleReport() *Report {
	return &Report{
		Date: time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC),
		Repo: domain.Repository{
			Name:        "hello-world",
			FullName:    "octocat/hello-world",
			Description: "My first repository",
			Owner:       "octocat",
			Language:    "Python",
			Stars:       80,
			License:     "MIT License",
		},
		Commits: []domain.Commit{
			{SHA: "aaa", Author: "Octo Cat", Date: "2023-06-01", Message: "initial commit", FilesChanged: 3},
			{SHA: "bbb", Author: "Octo Cat", Date: "2023-06-03", Message: "fix bug", FilesChanged: 1},
		},
		Files: []domain.FileResult{
			{
				Path: "src/main.py",
				Result: domain.AnalysisResult{
					QualityScore: 9.5,
					Issues: []domain.Issue{
						{Category: domain.CategoryHardcodedSecrets, Description: "Potential hardcoded secrets found on lines: 3", Lines: []int{3}},
					},
					Suggestions: []domain.Suggestion{
						{
							Issue:      "Hardcoded credentials or API keys were found in your code.",
							Advice:     "Use environment variables or a secure configuration system for sensitive data.",
							CodeBefore: "api_key = 'ac87520ee84f3'",
							CodeAfter:  "import os\napi_key = os.environ.get('API_KEY')",
						},
					},
				},
			},
			{
				Path:   "src/clean.py",
				Result: domain.AnalysisResult{QualityScore: 10.0},
			},
		},
		OverallScore: 9.75,
		Depth:        domain.DepthStandard,
	}
}

func TestToMarkdown(t *testing.T) {
	f := NewFormatter("")
	md := f.ToMarkdown(sampleReport())

	assert.Contains(t, md, "# Repository Analysis: octocat/hello-world")
	assert.Contains(t, md, "| Owner | octocat |")
	assert.Contains(t, md, "Total commits fetched: **2**")
	assert.Contains(t, md, "initial commit")
	assert.Contains(t, md, "### src/main.py — 9.5/10")
	assert.Contains(t, md, "**Hardcoded Secrets**")
	assert.Contains(t, md, "No significant issues detected.")
	assert.Contains(t, md, "```python\napi_key = 'ac87520ee84f3'\n```")
	assert.Contains(t, md, "os.environ.get")
	assert.Contains(t, md, "Overall score: **9.8/10**")
}

func TestToMarkdownNoSuggestions(t *testing.T) {
	rpt := sampleReport()
	rpt.Files[0].Result.Suggestions = nil

	f := NewFormatter("")
	md := f.ToMarkdown(rpt)

	assert.Contains(t, md, "No improvement suggestions. Your code looks good!")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	f := NewFormatter(dir)

	path, err := f.Write(sampleReport())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello-world-2023-06-15.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "octocat/hello-world")
}

func TestToHTML(t *testing.T) {
	f := NewFormatter("")
	html := f.ToHTML(sampleReport())

	assert.Contains(t, html, "<h1>Repository Analysis: octocat/hello-world</h1>")
	assert.Contains(t, html, "Overall Score: 9.8/10")
	assert.Contains(t, html, "Hardcoded Secrets")
	// Descriptions are escaped.
	assert.NotContains(t, html, "<script>")
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "#EF4444", ScoreColor(5.0))
	assert.Equal(t, "#EF4444", ScoreColor(5.9))
	assert.Equal(t, "#F59E0B", ScoreColor(6.0))
	assert.Equal(t, "#F59E0B", ScoreColor(7.9))
	assert.Equal(t, "#10B981", ScoreColor(8.0))
	assert.Equal(t, "#10B981", ScoreColor(10.0))
}

func TestReportTallies(t *testing.T) {
	rpt := sampleReport()

	assert.Equal(t, 1, rpt.TotalIssues())
	assert.Equal(t, 1, rpt.TotalSuggestions())
	assert.True(t, rpt.HasFindings())
	assert.Equal(t, map[domain.Category]int{domain.CategoryHardcodedSecrets: 1}, rpt.IssuesByCategory())
	assert.Len(t, rpt.RecentCommits(5), 2)
	assert.Len(t, rpt.RecentCommits(1), 1)
}

func TestWriteCharts(t *testing.T) {
	dir := t.TempDir()
	f := NewFormatter(dir)

	path, err := f.WriteCharts(sampleReport())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hello-world-2023-06-15-charts.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Commit Activity Over Time")
	assert.Contains(t, string(data), "Code Quality Scores by File")
	assert.Contains(t, string(data), "Issues by Type")
}

func TestFillDateRange(t *testing.T) {
	dates := fillDateRange(map[string]int{
		"2023-06-01": 2,
		"2023-06-04": 1,
	})

	assert.Equal(t, []string{"2023-06-01", "2023-06-02", "2023-06-03", "2023-06-04"}, dates)
}

func TestMeanScore(t *testing.T) {
	assert.Equal(t, 0.0, domain.MeanScore(nil))

	results := []domain.FileResult{
		{Result: domain.AnalysisResult{QualityScore: 9.0}},
		{Result: domain.AnalysisResult{QualityScore: 7.0}},
	}
	assert.Equal(t, 8.0, domain.MeanScore(results))
}
