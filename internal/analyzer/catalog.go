package analyzer

import (
	"regexp"

	"github.com/repolens/repolens/internal/domain"
)

// Rule is a named regular-expression check applied to each source line.
type Rule struct {
	Name     string
	Category domain.Category
	Pattern  *regexp.Regexp
}

// DefaultLanguage is the catalog key used when a file's extension is not
// recognized.
const DefaultLanguage = "default"

// catalog maps a language key to its ordered rule set. Order matters:
// issues are reported in rule order, so the tables are slices rather than
// maps. Built once at init and never mutated.
var catalog = map[string][]Rule{
	"py": {
		{"hardcoded_secrets", domain.CategoryHardcodedSecrets, regexp.MustCompile(`(password|secret|api_key|apikey|token)\s*=\s*['"][^'"]+['"]`)},
		{"print_statements", domain.CategoryPrintStatements, regexp.MustCompile(`print\(`)},
		{"todo_comments", domain.CategoryTodoComments, regexp.MustCompile(`#\s*TODO`)},
		{"long_lines", domain.CategoryLongLines, regexp.MustCompile(`^.{80,}$`)},
		{"complex_function", domain.CategoryComplexFunction, regexp.MustCompile(`def\s+\w+\s*\([^)]*\):\s*(?:\n\s+.*){20,}`)},
		{"unused_imports", domain.CategoryUnusedImports, regexp.MustCompile(`^\s*import\s+\w+\s*$`)},
		{"bare_except", domain.CategoryBareExcept, regexp.MustCompile(`except:`)},
		{"global_variables", domain.CategoryGlobalVariables, regexp.MustCompile(`^[A-Z_][A-Z0-9_]*\s*=`)},
	},
	"js": {
		{"hardcoded_secrets", domain.CategoryHardcodedSecrets, regexp.MustCompile(`(password|secret|apiKey|token)\s*=\s*['"][^'"]+['"]`)},
		{"console_log", domain.CategoryConsoleLog, regexp.MustCompile(`console\.log\(`)},
		{"todo_comments", domain.CategoryTodoComments, regexp.MustCompile(`//\s*TODO`)},
		{"long_lines", domain.CategoryLongLines, regexp.MustCompile(`^.{80,}$`)},
		{"complex_function", domain.CategoryComplexFunction, regexp.MustCompile(`function\s+\w+\s*\([^)]*\)\s*{(?:\n\s+.*){20,}}`)},
		{"var_use", domain.CategoryVarUse, regexp.MustCompile(`var\s+`)},
		{"eval_use", domain.CategoryEvalUse, regexp.MustCompile(`eval\(`)},
	},
	"java": {
		{"hardcoded_secrets", domain.CategoryHardcodedSecrets, regexp.MustCompile(`(password|secret|apiKey|token)\s*=\s*['"][^'"]+['"]`)},
		{"system_out", domain.CategorySystemOut, regexp.MustCompile(`System\.out\.println`)},
		{"todo_comments", domain.CategoryTodoComments, regexp.MustCompile(`//\s*TODO`)},
		{"long_lines", domain.CategoryLongLines, regexp.MustCompile(`^.{80,}$`)},
		{"complex_method", domain.CategoryComplexFunction, regexp.MustCompile(`(public|private|protected)\s+\w+\s+\w+\s*\([^)]*\)\s*{(?:\n\s+.*){20,}}`)},
		{"catch_exception", domain.CategoryCatchException, regexp.MustCompile(`catch\s*\(\s*Exception\s+`)},
		{"magic_numbers", domain.CategoryMagicNumbers, regexp.MustCompile(`[^\\]\s+[0-9]+\s+`)},
	},
	DefaultLanguage: {
		{"hardcoded_secrets", domain.CategoryHardcodedSecrets, regexp.MustCompile(`(password|secret|apiKey|token)\s*=\s*['"][^'"]+['"]`)},
		{"todo_comments", domain.CategoryTodoComments, regexp.MustCompile(`(//|#)\s*TODO`)},
		{"long_lines", domain.CategoryLongLines, regexp.MustCompile(`^.{80,}$`)},
	},
}

// RulesFor returns the rule set for a language key, falling back to the
// default set for unrecognized keys.
func RulesFor(lang string) []Rule {
	if rules, ok := catalog[lang]; ok {
		return rules
	}
	return catalog[DefaultLanguage]
}
