package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/repolens/repolens/internal/domain"
	"github.com/repolens/repolens/internal/util"
)

// goodScoreThreshold marks the reference line on the quality chart.
const goodScoreThreshold = 8.0

// WriteCharts renders the interactive chart page as
// <outputDir>/<repo>-<date>-charts.html and returns the path.
func (f *Formatter) WriteCharts(rpt *Report) (string, error) {
	if err := util.EnsureDir(f.outputDir); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s — Analysis Charts", rpt.Repo.FullName)

	if len(rpt.Commits) > 0 {
		page.AddCharts(commitActivityChart(rpt.Commits))
	}
	if len(rpt.Files) > 0 {
		page.AddCharts(qualityChart(rpt.Files))
		page.AddCharts(issuesByTypeChart(rpt))
	}

	name := fmt.Sprintf("%s-%s-charts.html", rpt.Repo.Name, rpt.Date.Format("2006-01-02"))
	path := filepath.Join(f.outputDir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating chart page: %w", err)
	}
	defer out.Close()

	if err := page.Render(out); err != nil {
		return "", fmt.Errorf("rendering charts: %w", err)
	}

	return path, nil
}

// commitActivityChart is a bar chart of commits per day over the fetched
// history, with zero-filled gaps so quiet days are visible.
func commitActivityChart(commits []domain.Commit) *charts.Bar {
	counts := make(map[string]int)
	for _, c := range commits {
		counts[c.Date]++
	}

	dates := fillDateRange(counts)

	var values []opts.BarData
	for _, d := range dates {
		values = append(values, opts.BarData{Value: counts[d]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Commit Activity Over Time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Commits"}),
	)
	bar.SetXAxis(dates).AddSeries("Commits", values,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#2563EB"}))

	return bar
}

// qualityChart is a per-file score bar chart colored by the shared score
// thresholds, with a dotted reference line at the good-score mark.
func qualityChart(files []domain.FileResult) *charts.Bar {
	var names []string
	var values []opts.BarData

	for _, f := range files {
		names = append(names, util.Truncate(filepath.Base(f.Path), 23))
		values = append(values, opts.BarData{
			Value:     f.Result.QualityScore,
			ItemStyle: &opts.ItemStyle{Color: ScoreColor(f.Result.QualityScore)},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Code Quality Scores by File"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Files", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Quality Score (0-10)", Max: 10.5}),
	)
	bar.SetXAxis(names).
		AddSeries("Quality Score", values).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
				Name:  "Good Score Threshold",
				YAxis: goodScoreThreshold,
			}),
			charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
				LineStyle: &opts.LineStyle{Color: "green", Type: "dotted"},
			}),
		)

	return bar
}

// issuesByTypeChart tallies issue categories across all files, most
// frequent first.
func issuesByTypeChart(rpt *Report) *charts.Bar {
	counts := rpt.IssuesByCategory()

	type pair struct {
		name  string
		count int
	}
	var pairs []pair
	for cat, n := range counts {
		pairs = append(pairs, pair{string(cat), n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].name < pairs[j].name
	})

	var names []string
	var values []opts.BarData
	for _, p := range pairs {
		names = append(names, p.name)
		values = append(values, opts.BarData{Value: p.count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Issues by Type"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Issue Type", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Occurrences"}),
	)
	bar.SetXAxis(names).AddSeries("Issues", values,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#F59E0B"}))

	return bar
}

// fillDateRange returns every day between the earliest and latest keys of
// counts in ascending order. Unparseable dates fall back to the sorted
// keys alone.
func fillDateRange(counts map[string]int) []string {
	var keys []string
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return nil
	}

	const layout = "2006-01-02"
	first, err1 := time.Parse(layout, keys[0])
	last, err2 := time.Parse(layout, keys[len(keys)-1])
	if err1 != nil || err2 != nil {
		return keys
	}

	var dates []string
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(layout))
	}
	return dates
}
