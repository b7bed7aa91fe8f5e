package domain

// Category identifies the kind of concern an issue reports.
// Values double as display labels in reports.
type Category string

const (
	CategoryHardcodedSecrets Category = "Hardcoded Secrets"
	CategoryPrintStatements  Category = "Print Statements"
	CategoryTodoComments     Category = "Todo Comments"
	CategoryLongLines        Category = "Long Lines"
	CategoryComplexFunction  Category = "Complex Function"
	CategoryUnusedImports    Category = "Unused Imports"
	CategoryBareExcept       Category = "Bare Except"
	CategoryGlobalVariables  Category = "Global Variables"
	CategoryConsoleLog       Category = "Console Log"
	CategoryVarUse           Category = "Var Use"
	CategoryEvalUse          Category = "Eval Use"
	CategorySystemOut        Category = "System Out"
	CategoryCatchException   Category = "Catch Exception"
	CategoryMagicNumbers     Category = "Magic Numbers"

	CategoryCodeSize          Category = "Code Size"
	CategoryDeepNesting       Category = "Deep Nesting"
	CategoryExceptionHandling Category = "Exception Handling"
	CategoryTypeComparison    Category = "Type Comparison"
	CategoryMainMethodSize    Category = "Main Method Size"

	CategoryEmptyFile       Category = "Empty File"
	CategoryMaintainability Category = "Code Maintainability"
	CategoryAIDetected      Category = "AI Detected Issue"
	CategoryAIError         Category = "AI Analysis Error"
)

// Issue is one detected concern in an analyzed file.
// Lines holds 1-based line numbers in ascending order; it is empty for
// issues that are not tied to specific lines.
type Issue struct {
	Category    Category `json:"type"`
	Description string   `json:"description"`
	Lines       []int    `json:"lines,omitempty"`
}
