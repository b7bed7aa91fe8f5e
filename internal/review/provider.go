// Package review provides an optional model-backed issue provider. It
// shares the analyzer's Issue-producing contract, so the deterministic
// heuristics and the model can be swapped without changing callers. The
// provider is opt-in; the default pipeline never touches a model.
package review

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	oai "github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/domain"
	"github.com/repolens/repolens/internal/util"
)

// maxPromptChars caps how much source is sent to the model per file.
const maxPromptChars = 4000

// Provider asks a model for quality issues in a file.
type Provider struct {
	config  config.AIConfig
	logger  *log.Logger
	genkit  *genkit.Genkit
	modelID string
}

// NewProvider creates a Provider for the configured model backend.
func NewProvider(cfg config.AIConfig, logger *log.Logger) (*Provider, error) {
	ctx := context.Background()

	var g *genkit.Genkit
	var modelID string

	switch cfg.Provider {
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}

		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}

		plugin := &oai.OpenAI{
			APIKey: apiKey,
			Opts:   opts,
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gpt-4o-mini"
		}
		if !strings.Contains(modelID, "/") {
			modelID = "openai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(plugin),
		)

	case "googleai":
		fallthrough
	default:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				apiKey = os.Getenv("GOOGLE_API_KEY")
			}
		}

		modelID = cfg.Model
		if modelID == "" {
			modelID = "gemini-2.0-flash"
		}
		if !strings.Contains(modelID, "/") {
			modelID = "googleai/" + modelID
		}

		g = genkit.Init(ctx,
			genkit.WithDefaultModel(modelID),
			genkit.WithPlugins(&googlegenai.GoogleAI{
				APIKey: apiKey,
			}),
		)
	}

	return &Provider{
		config:  cfg,
		logger:  logger,
		genkit:  g,
		modelID: modelID,
	}, nil
}

// Analyze asks the model for quality issues in code. Model failures do
// not abort the pipeline: a single analysis-error issue is returned
// instead, which the suggestion synthesizer ignores.
func (p *Provider) Analyze(ctx context.Context, code, filename string) []domain.Issue {
	prompt := p.buildPrompt(code, filename)

	answer, err := genkit.GenerateText(ctx, p.genkit,
		ai.WithModelName(p.modelID),
		ai.WithPrompt(prompt),
	)
	if err != nil {
		p.logger.Printf("Warning: model analysis of %s failed: %v", filename, err)
		return []domain.Issue{{
			Category:    domain.CategoryAIError,
			Description: fmt.Sprintf("Error during AI analysis: %v. Falling back to pattern-based analysis.", err),
		}}
	}

	return parseIssues(answer)
}

func (p *Provider) buildPrompt(code, filename string) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following code and identify quality issues.\n")
	sb.WriteString("List each issue on its own line after a line reading \"Issues:\".\n")
	sb.WriteString("If there are no issues, respond with \"Issues:\" and nothing else.\n\n")
	fmt.Fprintf(&sb, "File: %s\n\n", filename)
	sb.WriteString(util.Truncate(code, maxPromptChars))

	return sb.String()
}

// parseIssues extracts one issue per non-empty line after the "Issues:"
// marker. Responses without the marker yield nothing.
func parseIssues(answer string) []domain.Issue {
	_, rest, found := strings.Cut(answer, "Issues:")
	if !found {
		return nil
	}

	var issues []domain.Issue
	for _, line := range strings.Split(rest, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
		if line == "" {
			continue
		}
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryAIDetected,
			Description: line,
		})
	}

	return issues
}
