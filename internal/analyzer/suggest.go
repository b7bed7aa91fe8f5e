package analyzer

import (
	"github.com/repolens/repolens/internal/domain"
)

// template is the fixed improvement advice for one issue category.
// codeAfter is keyed by language code; a language with no entry yields a
// suggestion without an after example.
type template struct {
	issue      string
	advice     string
	codeBefore string
	codeAfter  map[string]string
}

var suggestionTemplates = map[domain.Category]template{
	domain.CategoryHardcodedSecrets: {
		issue:      "Hardcoded credentials or API keys were found in your code.",
		advice:     "Use environment variables or a secure configuration system for sensitive data.",
		codeBefore: "api_key = 'ac87520ee84f3'",
		codeAfter: map[string]string{
			"py":   "import os\napi_key = os.environ.get('API_KEY')",
			"js":   "const apiKey = process.env.API_KEY;",
			"java": "String apiKey = System.getenv(\"API_KEY\");",
		},
	},
	domain.CategoryPrintStatements: {
		issue:      "Debug print statements were found in production code.",
		advice:     "Replace print statements with proper logging mechanisms.",
		codeBefore: "print('Debug value:', x)",
		codeAfter: map[string]string{
			"py":   "import logging\nlogging.debug('Debug value: %s', x)",
			"js":   "if (process.env.NODE_ENV !== 'production') {\n  console.log('Debug value:', x);\n}",
			"java": "Logger logger = Logger.getLogger(MyClass.class.getName());\nlogger.fine(\"Debug value: \" + x);",
		},
	},
	domain.CategoryLongLines: {
		issue:      "Code contains excessively long lines that reduce readability.",
		advice:     "Break long lines into multiple lines following style guides.",
		codeBefore: "def very_long_function_name(extremely_long_parameter_name1, extremely_long_parameter_name2, extremely_long_parameter_name3, extremely_long_parameter_name4):",
		codeAfter: map[string]string{
			"py":   "def very_long_function_name(\n    extremely_long_parameter_name1,\n    extremely_long_parameter_name2,\n    extremely_long_parameter_name3,\n    extremely_long_parameter_name4\n):",
			"js":   "function veryLongFunctionName(\n  extremelyLongParameterName1,\n  extremelyLongParameterName2,\n  extremelyLongParameterName3,\n  extremelyLongParameterName4\n) {",
			"java": "public void veryLongMethodName(\n    String extremelyLongParameterName1,\n    String extremelyLongParameterName2,\n    String extremelyLongParameterName3,\n    String extremelyLongParameterName4\n) {",
		},
	},
	domain.CategoryComplexFunction: {
		issue:      "Complex, lengthy functions were detected.",
		advice:     "Break down complex functions into smaller, more manageable ones that follow the single responsibility principle.",
		codeBefore: "def process_data(data):\n    # 50+ lines of code with multiple responsibilities",
		codeAfter: map[string]string{
			"py":   "def process_data(data):\n    validated_data = validate_data(data)\n    processed_data = transform_data(validated_data)\n    return save_results(processed_data)\n\ndef validate_data(data):\n    # Validation logic here\n    return validated_data\n\ndef transform_data(data):\n    # Transformation logic here\n    return transformed_data\n\ndef save_results(data):\n    # Saving logic here\n    return result",
			"js":   "function processData(data) {\n  const validatedData = validateData(data);\n  const processedData = transformData(validatedData);\n  return saveResults(processedData);\n}\n\nfunction validateData(data) {\n  // Validation logic here\n  return validatedData;\n}\n\nfunction transformData(data) {\n  // Transformation logic here\n  return transformedData;\n}\n\nfunction saveResults(data) {\n  // Saving logic here\n  return result;\n}",
			"java": "public Result processData(Data data) {\n    Data validatedData = validateData(data);\n    Data processedData = transformData(validatedData);\n    return saveResults(processedData);\n}\n\nprivate Data validateData(Data data) {\n    // Validation logic here\n    return validatedData;\n}\n\nprivate Data transformData(Data data) {\n    // Transformation logic here\n    return transformedData;\n}\n\nprivate Result saveResults(Data data) {\n    // Saving logic here\n    return result;\n}",
		},
	},
	domain.CategoryConsoleLog: {
		issue:      "Debug console.log statements were found in production code.",
		advice:     "Replace console.log with proper logging mechanisms or remove them in production.",
		codeBefore: "console.log('Debug info:', data);",
		codeAfter: map[string]string{
			"js": "import logger from './logger';\nlogger.debug('Debug info:', data);",
		},
	},
	domain.CategoryVarUse: {
		issue:      "Usage of 'var' keyword which has function scope.",
		advice:     "Replace 'var' with 'const' for variables that don't change, or 'let' for those that do.",
		codeBefore: "var userId = 42;",
		codeAfter: map[string]string{
			"js": "const userId = 42;",
		},
	},
	domain.CategoryBareExcept: {
		issue:      "Catching exceptions without specifying the exception type.",
		advice:     "Catch specific exceptions rather than using bare except clauses.",
		codeBefore: "try:\n    risky_operation()\nexcept:\n    handle_error()",
		codeAfter: map[string]string{
			"py": "try:\n    risky_operation()\nexcept ValueError as e:\n    handle_specific_error(e)\nexcept Exception as e:\n    handle_general_error(e)",
		},
	},
}

// excludedCategories never produce a suggestion.
var excludedCategories = map[domain.Category]bool{
	domain.CategoryTodoComments: true,
	domain.CategoryAIError:      true,
}

// languageCodes maps a file extension to the code-example language.
// Unrecognized extensions resolve to no code examples.
var languageCodes = map[string]string{
	"py":   "py",
	"js":   "js",
	"ts":   "js",
	"java": "java",
}

// Suggest maps issues to improvement suggestions. Lookup is an exact
// category-to-template resolution, at most one suggestion per issue. The
// result is deduplicated by advice text, first occurrence wins, order
// preserved. Issues with no template silently produce nothing.
func Suggest(issues []domain.Issue, lang string) []domain.Suggestion {
	code := languageCodes[lang]

	var suggestions []domain.Suggestion
	seen := make(map[string]bool)

	for _, issue := range issues {
		if excludedCategories[issue.Category] {
			continue
		}

		tmpl, ok := suggestionTemplates[issue.Category]
		if !ok {
			continue
		}
		if seen[tmpl.advice] {
			continue
		}
		seen[tmpl.advice] = true

		suggestions = append(suggestions, domain.Suggestion{
			Issue:      tmpl.issue,
			Advice:     tmpl.advice,
			CodeBefore: tmpl.codeBefore,
			CodeAfter:  tmpl.codeAfter[code],
		})
	}

	return suggestions
}
