package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/syncapply/syncapply/internal/core"
	"github.com/syncapply/syncapply/internal/textutil"
)

// GeminiClient is an implementation of the LLMClient interface using Google Gemini
type GeminiClient struct {
	client       *genai.Client
	model        *genai.GenerativeModel
	modelName    string
	maxBodySize  int
	logger       *zap.Logger
	promptFormat string
}

// classificationResponse represents the structured response from the LLM
type classificationResponse struct {
	IsJobApplication bool   `json:"is_job_application"`
	Reasoning        string `json:"reasoning"`
	CompanyName      string `json:"company_name"`
	JobTitle         string `json:"job_title"`
	Status           string `json:"status"`
	EmailID          string `json:"email_id"`
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClient{
		client:       client,
		model:        model,
		modelName:    modelName,
		maxBodySize:  maxBodySize,
		logger:       logger,
		promptFormat: classificationPrompt,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Classify sends the email text to Gemini and parses its verdict
func (c *GeminiClient) Classify(ctx context.Context, emailText string) (*core.ClassificationResult, error) {
	prompt := fmt.Sprintf(c.promptFormat, textutil.Prepare(emailText, c.maxBodySize))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	parsed, err := parseClassification(responseText)
	if err != nil {
		return nil, err
	}
	return toResult(parsed), nil
}

// parseClassification parses the model's JSON verdict. The model should
// return bare JSON, but it sometimes wraps the object in markdown or prose,
// so a failed direct parse falls back to the first-to-last brace span.
func parseClassification(responseText string) (*classificationResponse, error) {
	var parsed classificationResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err == nil {
		return &parsed, nil
	}

	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(responseText); i++ {
		if responseText[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(responseText) - 1; i >= 0; i-- {
		if responseText[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, core.ErrUnparseableResponse
	}
	if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd]), &parsed); err != nil {
		return nil, core.ErrUnparseableResponse
	}
	return &parsed, nil
}

// toResult converts a parsed response into a ClassificationResult,
// clearing the extracted fields for non-applications.
func toResult(parsed *classificationResponse) *core.ClassificationResult {
	if !parsed.IsJobApplication {
		return &core.ClassificationResult{
			IsJobApplication: false,
			Reasoning:        parsed.Reasoning,
		}
	}
	return &core.ClassificationResult{
		IsJobApplication: true,
		Reasoning:        parsed.Reasoning,
		CompanyName:      parsed.CompanyName,
		JobTitle:         parsed.JobTitle,
		Status:           parsed.Status,
		EmailRef:         parsed.EmailID,
	}
}
