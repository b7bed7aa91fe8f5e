package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/domain"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/notify"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/internal/review"
	"github.com/repolens/repolens/internal/util"
)

// Runner orchestrates the full repository analysis flow
type Runner struct {
	config    *config.Config
	logger    *log.Logger
	analyzer  *analyzer.Analyzer
	formatter *report.Formatter
	ai        *review.Provider
	notify    *notify.Service
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config) *Runner {
	logger := log.New(os.Stdout, "[repolens] ", log.LstdFlags)

	return &Runner{
		config:    cfg,
		logger:    logger,
		analyzer:  analyzer.New(),
		formatter: report.NewFormatter(cfg.Reports.OutputDir),
		// ai and notify initialized in Run() after validation
	}
}

// Run executes the full analysis pipeline for one repository URL
func (r *Runner) Run(ctx context.Context, repoURL string) error {
	startTime := time.Now()

	if err := r.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	owner, name := util.ParseRepoURL(repoURL)
	if owner == "" || name == "" {
		return fmt.Errorf("invalid GitHub repository URL: %s", repoURL)
	}

	client := github.NewClient(r.config.GitHub.BaseURL, owner, name, r.config.GitHub.Token, r.logger)
	if !client.Authenticated() {
		r.logger.Printf("Warning: no GitHub token provided, API rate limits will be restricted")
	}

	r.log("Fetching repository %s/%s", owner, name)
	repo, err := client.Repository(ctx)
	if err != nil {
		return fmt.Errorf("fetching repository: %w", err)
	}

	rpt := &report.Report{
		Date:  time.Now(),
		Repo:  repo,
		Depth: domain.Depth(r.config.Analysis.Depth),
	}

	if r.config.Analysis.IncludeCommits {
		r.log("Fetching commit history...")
		commits, err := client.Commits(ctx, r.config.Analysis.CommitLimit)
		if err != nil {
			r.log("Warning: fetching commits failed: %v", err)
		} else {
			rpt.Commits = commits
			// Changed-file counts only for the commits the report shows.
			recent := len(rpt.Commits)
			if recent > 5 {
				recent = 5
			}
			for i := 0; i < recent; i++ {
				if err := client.EnrichCommit(ctx, &rpt.Commits[i]); err != nil {
					r.log("Warning: fetching commit detail %s: %v", rpt.Commits[i].SHA, err)
				}
			}
			r.log("Fetched %d commits", len(commits))
		}
	}

	r.log("Listing files (max %d, types %v)...", r.config.Analysis.MaxFiles, r.config.Analysis.FileTypes)
	files, err := client.Files(ctx, r.config.Analysis.MaxFiles, r.config.Analysis.FileTypes)
	if err != nil {
		return fmt.Errorf("listing repository files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no matching files found for analysis; try different file types")
	}
	r.log("Found %d files to analyze", len(files))

	if r.config.AI.Enabled {
		provider, err := review.NewProvider(r.config.AI, r.logger)
		if err != nil {
			return fmt.Errorf("initializing model provider: %w", err)
		}
		r.ai = provider
	}

	rpt.Files = r.analyzeFiles(ctx, client, files)
	rpt.OverallScore = domain.MeanScore(rpt.Files)

	reportPath, err := r.formatter.Write(rpt)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	r.log("Report saved to %s", reportPath)

	if r.config.Reports.Charts {
		chartPath, err := r.formatter.WriteCharts(rpt)
		if err != nil {
			return fmt.Errorf("writing charts: %w", err)
		}
		r.log("Charts saved to %s", chartPath)
	}

	r.printSummary(rpt, reportPath)

	if r.config.Email.Enabled && rpt.HasFindings() {
		r.log("Sending email notification...")
		notifier, err := notify.NewService(r.config.Email, r.logger)
		if err != nil {
			return fmt.Errorf("initializing email service: %w", err)
		}
		r.notify = notifier

		if err := r.notify.SendReport(ctx, rpt); err != nil {
			return fmt.Errorf("sending email: %w", err)
		}
		r.log("Email sent successfully")
	}

	elapsed := time.Since(startTime)
	r.log("Analysis complete in %s", elapsed.Round(time.Millisecond))

	return nil
}

// analyzeFiles fetches each file's content and runs the analyzer.
// Unfetchable files are skipped. When the model provider is enabled its
// issues are merged in and the score and suggestions recomputed, keeping
// the core analyzer deterministic.
func (r *Runner) analyzeFiles(ctx context.Context, client *github.Client, files []domain.RemoteFile) []domain.FileResult {
	depth := domain.Depth(r.config.Analysis.Depth)

	var results []domain.FileResult
	for i, file := range files {
		r.log("Analyzing %s (%d/%d)", file.Path, i+1, len(files))

		content, err := client.FileContent(ctx, file.Path)
		if err != nil {
			r.log("Warning: fetching %s failed: %v", file.Path, err)
			continue
		}

		result := r.analyzer.Analyze(content, file.Name, file.Extension, depth)

		if r.ai != nil {
			extra := r.ai.Analyze(ctx, content, file.Name)
			if len(extra) > 0 {
				result.Issues = append(result.Issues, extra...)
				result.QualityScore = analyzer.Score(len(result.Issues))
				result.Suggestions = analyzer.Suggest(result.Issues, file.Extension)
			}
		}

		results = append(results, domain.FileResult{Path: file.Path, Result: result})
	}

	return results
}

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	summaryTitle = lipgloss.NewStyle().Bold(true)
	summaryDim   = lipgloss.NewStyle().Faint(true)
)

// printSummary writes a short colorized summary to stdout. Unlike the
// verbose log lines this always prints.
func (r *Runner) printSummary(rpt *report.Report, reportPath string) {
	scoreStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(report.ScoreColor(rpt.OverallScore)))

	body := fmt.Sprintf("%s\n%s\n\nFiles analyzed: %d\nIssues found:   %d\nSuggestions:    %d\n\n%s",
		summaryTitle.Render(rpt.Repo.FullName),
		scoreStyle.Render(fmt.Sprintf("Overall score: %.1f/10", rpt.OverallScore)),
		len(rpt.Files),
		rpt.TotalIssues(),
		rpt.TotalSuggestions(),
		summaryDim.Render("Report: "+reportPath),
	)

	fmt.Println(summaryBox.Render(body))
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.config.Verbose {
		r.logger.Printf(format, args...)
	}
}
