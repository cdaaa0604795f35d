package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/codenerd-labs/revcrew/internal/issue"
	"github.com/codenerd-labs/revcrew/internal/logging"
)

// issueSchema constrains Gemini's structured output to the Issue shape.
var issueSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"issues": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"kind":        {Type: genai.TypeString, Enum: []string{"security", "quality", "performance", "testing", "documentation", "style", "bug"}},
					"severity":    {Type: genai.TypeString, Enum: []string{"critical", "high", "medium", "low", "info"}},
					"line":        {Type: genai.TypeInteger, Nullable: true},
					"description": {Type: genai.TypeString},
					"suggestion":  {Type: genai.TypeString, Nullable: true},
					"snippet":     {Type: genai.TypeString, Nullable: true},
					"confidence":  {Type: genai.TypeNumber},
				},
				Required: []string{"kind", "severity", "description"},
			},
		},
	},
	Required: []string{"issues"},
}

// geminiIssue mirrors issueSchema for JSON unmarshalling.
type geminiIssue struct {
	Kind        string   `json:"kind"`
	Severity    string   `json:"severity"`
	Line        *int     `json:"line"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion"`
	Snippet     string   `json:"snippet"`
	Confidence  *float64 `json:"confidence"`
}

type geminiResponse struct {
	Issues []geminiIssue `json:"issues"`
}

// GeminiGateway implements Gateway on top of google.golang.org/genai,
// grounded on the teacher's internal/embedding/genai.go client
// construction and call style.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

// NewGeminiGateway creates a gateway bound to the given API key and
// model (defaulting to "gemini-2.0-flash" when model is empty).
func NewGeminiGateway(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini gateway: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini gateway: failed to create client: %w", err)
	}
	return &GeminiGateway{client: client, model: model}, nil
}

// Invoke implements Gateway. A failed GenerateContent call is treated
// as retryable (TransientError); an empty response, or one that does
// not decode into the issues schema, is fatal, since retrying won't
// change the model's adherence to the contract.
func (g *GeminiGateway) Invoke(ctx context.Context, promptTemplate string, vars Variables) (Result, error) {
	prompt := renderPrompt(promptTemplate, vars)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   issueSchema,
	})
	if err != nil {
		logging.For(logging.CategoryGateway).Warnw("gemini call failed", "error", err)
		return Result{}, NewTransientError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return Result{}, NewFatalError(fmt.Errorf("gemini gateway: empty response"))
	}

	var parsed geminiResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return Result{}, NewFatalError(fmt.Errorf("gemini gateway: response did not match issues schema: %w", err))
	}

	issues := make([]issue.Issue, 0, len(parsed.Issues))
	for _, gi := range parsed.Issues {
		it := issue.Issue{
			Kind:        issue.Kind(gi.Kind),
			Severity:    issue.Severity(gi.Severity),
			Description: gi.Description,
			Suggestion:  gi.Suggestion,
			Snippet:     gi.Snippet,
		}
		if gi.Line != nil {
			it = it.WithLine(*gi.Line)
		}
		if gi.Confidence != nil {
			it.Confidence = *gi.Confidence
		}
		it.Clamp()
		issues = append(issues, it)
	}

	return Result{Issues: issues}, nil
}

func renderPrompt(template string, vars Variables) string {
	replacer := strings.NewReplacer(
		"{format_instructions}", vars.FormatInstructions,
		"{file_path}", vars.FilePath,
		"{file_type}", vars.FileType,
		"{code}", vars.Code,
		"{diff}", vars.Diff,
	)
	return replacer.Replace(template)
}
