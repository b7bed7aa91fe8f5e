package analyzer

import (
	"strings"

	"github.com/repolens/repolens/internal/domain"
)

const (
	// largeFileLines is the line count above which a file is flagged.
	largeFileLines = 200
	// maxIndentWidth is the leading-whitespace width above which nesting
	// is flagged (more than 4 levels at 4-space indent).
	maxIndentWidth = 16
	// largeMainLines is the line count above which a Java file with a
	// main method is flagged.
	largeMainLines = 100
)

// Heuristics runs the structural checks that operate on the file as a
// whole rather than on regex rules: size, nesting depth, and a few
// language-specific keyword checks. Each check fires at most once per
// file, in a fixed order. The function is a deterministic stand-in for a
// model-backed analysis and shares its Issue-producing contract, so a
// model provider can substitute for it without changing callers.
func Heuristics(code, lang string) []domain.Issue {
	var issues []domain.Issue

	lines := strings.Split(code, "\n")
	if len(lines) > largeFileLines {
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryCodeSize,
			Description: "File is quite large. Consider breaking it into smaller modules.",
		})
	}

	maxIndent := 0
	for _, line := range lines {
		if indent := leadingWhitespace(line); indent > maxIndent {
			maxIndent = indent
		}
	}
	if maxIndent > maxIndentWidth {
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryDeepNesting,
			Description: "Code contains deeply nested blocks. Consider refactoring to reduce nesting.",
		})
	}

	switch lang {
	case "py":
		if strings.Contains(code, "except Exception as e:") || strings.Contains(code, "except:") {
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryExceptionHandling,
				Description: "Generic exception handling detected. Consider catching specific exceptions.",
			})
		}
	case "js":
		if strings.Contains(code, "==") && !strings.Contains(code, "===") {
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryTypeComparison,
				Description: "Use of loose equality (==) detected. Consider using strict equality (===).",
			})
		}
	case "java":
		if strings.Contains(code, "public static void main") && len(lines) > largeMainLines {
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryMainMethodSize,
				Description: "Large main method detected. Consider breaking functionality into separate methods.",
			})
		}
	}

	return issues
}

// leadingWhitespace counts space and tab characters before the first
// non-whitespace character. Whitespace-only lines count in full.
func leadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
