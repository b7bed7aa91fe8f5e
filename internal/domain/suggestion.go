package domain

// Suggestion pairs detected-issue advice with before/after code examples.
// CodeAfter is empty when no example exists for the file's language.
type Suggestion struct {
	Issue      string `json:"issue"`
	Advice     string `json:"suggestion"`
	CodeBefore string `json:"code_before"`
	CodeAfter  string `json:"code_after,omitempty"`
}
