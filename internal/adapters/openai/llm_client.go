package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/core"
	"github.com/syncapply/syncapply/internal/textutil"
)

// OpenAIClient is an implementation of the LLMClient interface using OpenAI
type OpenAIClient struct {
	client       *openai.Client
	modelName    string
	maxTokens    int
	temperature  float32
	topP         float32
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

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
) *OpenAIClient {
	return &OpenAIClient{
		client:       client,
		modelName:    modelName,
		maxTokens:    maxTokens,
		temperature:  temperature,
		topP:         topP,
		maxBodySize:  maxBodySize,
		logger:       logger,
		promptFormat: classificationPrompt,
	}
}

// Classify sends the email text to OpenAI and parses its verdict
func (c *OpenAIClient) Classify(ctx context.Context, emailText string) (*core.ClassificationResult, error) {
	prompt := fmt.Sprintf(c.promptFormat, textutil.Prepare(emailText, c.maxBodySize))

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a job application email classifier. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	parsed, err := parseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return toResult(parsed), nil
}

// parseClassification parses the model's JSON verdict, falling back to the
// first-to-last brace span when the object is wrapped in extra text.
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
