package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/domain"
)

func issueOf(cat domain.Category) domain.Issue {
	return domain.Issue{Category: cat, Description: "test issue"}
}

func TestSuggestHardcodedSecretsPython(t *testing.T) {
	suggestions := Suggest([]domain.Issue{issueOf(domain.CategoryHardcodedSecrets)}, "py")

	require.Len(t, suggestions, 1)
	s := suggestions[0]
	assert.Contains(t, s.Advice, "environment variables")
	assert.Contains(t, s.CodeBefore, "ac87520ee84f3")
	assert.Contains(t, s.CodeAfter, "os.environ.get")
}

func TestSuggestLanguageSpecificExamples(t *testing.T) {
	issues := []domain.Issue{issueOf(domain.CategoryHardcodedSecrets)}

	js := Suggest(issues, "js")
	require.Len(t, js, 1)
	assert.Contains(t, js[0].CodeAfter, "process.env.API_KEY")

	java := Suggest(issues, "java")
	require.Len(t, java, 1)
	assert.Contains(t, java[0].CodeAfter, "System.getenv")

	// TypeScript shares the JavaScript examples.
	ts := Suggest(issues, "ts")
	require.Len(t, ts, 1)
	assert.Equal(t, js[0].CodeAfter, ts[0].CodeAfter)
}

func TestSuggestUnknownLanguageOmitsCodeAfter(t *testing.T) {
	suggestions := Suggest([]domain.Issue{issueOf(domain.CategoryHardcodedSecrets)}, "rb")

	require.Len(t, suggestions, 1)
	assert.NotEmpty(t, suggestions[0].CodeBefore)
	assert.Empty(t, suggestions[0].CodeAfter)
}

func TestSuggestMissingLanguageEntryOmitsCodeAfter(t *testing.T) {
	// The bare-except template only carries a python example.
	suggestions := Suggest([]domain.Issue{issueOf(domain.CategoryBareExcept)}, "java")

	require.Len(t, suggestions, 1)
	assert.Empty(t, suggestions[0].CodeAfter)
}

func TestSuggestDeduplicatesByAdvice(t *testing.T) {
	issues := []domain.Issue{
		issueOf(domain.CategoryHardcodedSecrets),
		issueOf(domain.CategoryHardcodedSecrets),
	}

	suggestions := Suggest(issues, "py")
	assert.Len(t, suggestions, 1)
}

func TestSuggestNoDuplicateAdvice(t *testing.T) {
	issues := []domain.Issue{
		issueOf(domain.CategoryHardcodedSecrets),
		issueOf(domain.CategoryPrintStatements),
		issueOf(domain.CategoryLongLines),
		issueOf(domain.CategoryHardcodedSecrets),
		issueOf(domain.CategoryBareExcept),
		issueOf(domain.CategoryPrintStatements),
	}

	suggestions := Suggest(issues, "py")

	seen := make(map[string]bool)
	for _, s := range suggestions {
		assert.False(t, seen[s.Advice], "duplicate advice: %s", s.Advice)
		seen[s.Advice] = true
	}
	assert.Len(t, suggestions, 4)
}

func TestSuggestExcludedCategories(t *testing.T) {
	issues := []domain.Issue{
		issueOf(domain.CategoryTodoComments),
		issueOf(domain.CategoryAIError),
	}

	assert.Empty(t, Suggest(issues, "py"))
}

func TestSuggestUnmappedCategorySilentlySkipped(t *testing.T) {
	issues := []domain.Issue{
		issueOf(domain.CategoryCodeSize),
		issueOf(domain.CategoryDeepNesting),
		issueOf(domain.CategoryMagicNumbers),
	}

	assert.Empty(t, Suggest(issues, "java"))
}

func TestSuggestPreservesIssueOrder(t *testing.T) {
	issues := []domain.Issue{
		issueOf(domain.CategoryVarUse),
		issueOf(domain.CategoryConsoleLog),
	}

	suggestions := Suggest(issues, "js")

	require.Len(t, suggestions, 2)
	assert.Contains(t, suggestions[0].Advice, "'const'")
	assert.Contains(t, suggestions[1].Advice, "console.log")
}
