package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/repolens/repolens/internal/util"
)

// recentCommitRows is how many commits the report tables show.
const recentCommitRows = 5

// Formatter writes reports to disk and renders them for email delivery.
type Formatter struct {
	outputDir string
}

// NewFormatter creates a Formatter writing into outputDir.
func NewFormatter(outputDir string) *Formatter {
	return &Formatter{outputDir: outputDir}
}

// Write renders the report as markdown and saves it as
// <outputDir>/<repo>-<date>.md, returning the path.
func (f *Formatter) Write(rpt *Report) (string, error) {
	if err := util.EnsureDir(f.outputDir); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.md", rpt.Repo.Name, rpt.Date.Format("2006-01-02"))
	path := filepath.Join(f.outputDir, name)

	if err := os.WriteFile(path, []byte(f.ToMarkdown(rpt)), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}

// ToMarkdown renders the full report body as markdown.
func (f *Formatter) ToMarkdown(rpt *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Repository Analysis: %s\n\n", rpt.Repo.FullName)
	fmt.Fprintf(&sb, "_%s_\n\n", rpt.Date.Format("January 2, 2006"))

	sb.WriteString("## Overview\n\n")
	fmt.Fprintf(&sb, "%s\n\n", rpt.Repo.Description)
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Owner | %s |\n", rpt.Repo.Owner)
	fmt.Fprintf(&sb, "| Language | %s |\n", rpt.Repo.Language)
	fmt.Fprintf(&sb, "| Stars | %d |\n", rpt.Repo.Stars)
	fmt.Fprintf(&sb, "| Forks | %d |\n", rpt.Repo.Forks)
	fmt.Fprintf(&sb, "| Open issues | %d |\n", rpt.Repo.OpenIssues)
	fmt.Fprintf(&sb, "| Created | %s |\n", rpt.Repo.CreatedAt)
	fmt.Fprintf(&sb, "| Last updated | %s |\n", rpt.Repo.UpdatedAt)
	fmt.Fprintf(&sb, "| License | %s |\n", rpt.Repo.License)
	if len(rpt.Repo.Topics) > 0 {
		fmt.Fprintf(&sb, "| Topics | %s |\n", strings.Join(rpt.Repo.Topics, ", "))
	}
	sb.WriteString("\n")

	if len(rpt.Commits) > 0 {
		sb.WriteString("## Commit History\n\n")
		fmt.Fprintf(&sb, "Total commits fetched: **%d**\n\n", len(rpt.Commits))
		sb.WriteString("| Author | Date | Message | Files changed |\n|---|---|---|---|\n")
		for _, c := range rpt.RecentCommits(recentCommitRows) {
			fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n",
				c.Author, c.Date, util.Truncate(firstLine(c.Message), 60), c.FilesChanged)
		}
		sb.WriteString("\n")
	}

	if len(rpt.Files) > 0 {
		sb.WriteString("## Code Quality\n\n")
		fmt.Fprintf(&sb, "Overall score: **%.1f/10** across %d files (depth: %s)\n\n",
			rpt.OverallScore, len(rpt.Files), rpt.Depth)

		for _, file := range rpt.Files {
			fmt.Fprintf(&sb, "### %s — %.1f/10\n\n", file.Path, file.Result.QualityScore)
			if len(file.Result.Issues) == 0 {
				sb.WriteString("No significant issues detected.\n\n")
				continue
			}
			for _, issue := range file.Result.Issues {
				fmt.Fprintf(&sb, "- **%s**: %s\n", issue.Category, issue.Description)
			}
			sb.WriteString("\n")
		}

		f.writeSuggestions(&sb, rpt)
	}

	return sb.String()
}

func (f *Formatter) writeSuggestions(sb *strings.Builder, rpt *Report) {
	if rpt.TotalSuggestions() == 0 {
		sb.WriteString("## Improvement Suggestions\n\nNo improvement suggestions. Your code looks good!\n")
		return
	}

	sb.WriteString("## Improvement Suggestions\n\n")
	fmt.Fprintf(sb, "Found %d suggestions across the analyzed files.\n\n", rpt.TotalSuggestions())

	for _, file := range rpt.Files {
		for _, s := range file.Result.Suggestions {
			fmt.Fprintf(sb, "### %s\n\n", file.Path)
			fmt.Fprintf(sb, "**Issue:** %s\n\n", s.Issue)
			fmt.Fprintf(sb, "**Suggestion:** %s\n\n", s.Advice)
			lang := langTag(file.Path)
			fmt.Fprintf(sb, "Current code:\n\n```%s\n%s\n```\n\n", lang, s.CodeBefore)
			if s.CodeAfter != "" {
				fmt.Fprintf(sb, "Suggested improvement:\n\n```%s\n%s\n```\n\n", lang, s.CodeAfter)
			}
		}
	}
}

// ToHTML renders the report as a self-contained HTML document for email
// delivery.
func (f *Formatter) ToHTML(rpt *Report) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"></head>")
	sb.WriteString("<body style=\"font-family: sans-serif; max-width: 720px; margin: 0 auto;\">")

	fmt.Fprintf(&sb, "<h1>Repository Analysis: %s</h1>", html.EscapeString(rpt.Repo.FullName))
	fmt.Fprintf(&sb, "<p><em>%s</em></p>", rpt.Date.Format("January 2, 2006"))
	fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(rpt.Repo.Description))

	if len(rpt.Files) > 0 {
		fmt.Fprintf(&sb, "<h2 style=\"color: %s\">Overall Score: %.1f/10</h2>",
			ScoreColor(rpt.OverallScore), rpt.OverallScore)

		for _, file := range rpt.Files {
			fmt.Fprintf(&sb, "<h3>%s &mdash; %.1f/10</h3>",
				html.EscapeString(file.Path), file.Result.QualityScore)
			if len(file.Result.Issues) == 0 {
				sb.WriteString("<p>No significant issues detected.</p>")
				continue
			}
			sb.WriteString("<ul>")
			for _, issue := range file.Result.Issues {
				fmt.Fprintf(&sb, "<li><strong>%s</strong>: %s</li>",
					html.EscapeString(string(issue.Category)), html.EscapeString(issue.Description))
			}
			sb.WriteString("</ul>")
		}
	}

	sb.WriteString("</body></html>")
	return sb.String()
}

// ScoreColor maps a quality score to the display color used across the
// report, charts, and terminal summary: red below 6, yellow below 8,
// green otherwise.
func ScoreColor(score float64) string {
	switch {
	case score < 6:
		return "#EF4444"
	case score < 8:
		return "#F59E0B"
	default:
		return "#10B981"
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// langTag maps a file path to a markdown code-fence language tag.
func langTag(path string) string {
	switch util.FileExtension(path) {
	case "py":
		return "python"
	case "js", "ts":
		return "javascript"
	case "java":
		return "java"
	default:
		return ""
	}
}
