package analyzer

import (
	"fmt"
	"strings"

	"github.com/repolens/repolens/internal/domain"
)

// description templates keyed by rule name. Templates with WithLines set
// interpolate the comma-joined 1-based line numbers of every match. A rule
// without an entry here never produces an issue, even when it matches;
// complex_method is deliberately absent.
type descTemplate struct {
	Text      string
	WithLines bool
}

var ruleDescriptions = map[string]descTemplate{
	"hardcoded_secrets": {"Potential hardcoded secrets found on lines: %s", true},
	"print_statements":  {"Print statements found on lines: %s", true},
	"todo_comments":     {"TODO comments found on lines: %s", true},
	"long_lines":        {"Long lines (>80 chars) found on lines: %s", true},
	"complex_function":  {"Complex function detected. Consider breaking it down.", false},
	"unused_imports":    {"Potentially unused imports detected.", false},
	"bare_except":       {"Bare except clauses found. Consider catching specific exceptions.", false},
	"global_variables":  {"Global variables detected. Consider encapsulation.", false},
	"console_log":       {"Console log statements found on lines: %s", true},
	"var_use":           {"Use of 'var' keyword. Consider using 'let' or 'const'.", false},
	"eval_use":          {"Use of eval() detected. This can be a security risk.", false},
	"system_out":        {"System.out.println found on lines: %s", true},
	"catch_exception":   {"Catching generic Exception. Consider catching specific exceptions.", false},
	"magic_numbers":     {"Magic numbers detected. Consider using named constants.", false},
}

// Scan applies the catalog rules for lang to each line of code and returns
// one issue per rule that matched at least once, in catalog order. Callers
// must filter out empty input before calling.
func Scan(code, lang string) []domain.Issue {
	lines := strings.Split(code, "\n")

	var issues []domain.Issue
	for _, rule := range RulesFor(lang) {
		var matches []int
		for i, line := range lines {
			if rule.Pattern.MatchString(line) {
				matches = append(matches, i+1)
			}
		}
		if len(matches) == 0 {
			continue
		}

		tmpl, ok := ruleDescriptions[rule.Name]
		if !ok {
			continue
		}

		desc := tmpl.Text
		if tmpl.WithLines {
			desc = fmt.Sprintf(tmpl.Text, joinLines(matches))
		}

		issues = append(issues, domain.Issue{
			Category:    rule.Category,
			Description: desc,
			Lines:       matches,
		})
	}

	return issues
}

func joinLines(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
