package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Classifier wraps an LLMClient with a per-call timeout and normalizes
// every failure into a "not a job application" result. It never returns an
// error: callers always receive a usable ClassificationResult, which keeps
// classification failures from aborting the surrounding tracking flow.
type Classifier struct {
	llm     LLMClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewClassifier creates a classifier. A non-positive timeout disables the
// deadline (the transport default still applies).
func NewClassifier(llm LLMClient, timeout time.Duration, logger *zap.Logger) *Classifier {
	return &Classifier{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
	}
}

// Classify runs the model on the email text. Transport failures and
// timeouts come back as a null result carrying the error text; unparseable
// model output comes back with a fixed reasoning string.
func (c *Classifier) Classify(ctx context.Context, emailText string) *ClassificationResult {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.llm.Classify(ctx, emailText)
	if err != nil {
		if errors.Is(err, ErrUnparseableResponse) {
			c.logger.Warn("Could not parse LLM response as JSON")
			return &ClassificationResult{
				IsJobApplication: false,
				Reasoning:        "Failed to parse LLM response",
			}
		}
		c.logger.Error("LLM classification failed", zap.Error(err))
		return &ClassificationResult{
			IsJobApplication: false,
			Reasoning:        "Error: " + err.Error(),
			Err:              err.Error(),
		}
	}

	if result.Reasoning == "" {
		result.Reasoning = "No reasoning provided"
	}
	if result.IsJobApplication && !isKnownStatus(result.Status) {
		// Unknown status values are kept; the prompt only encourages the enum.
		c.logger.Warn("Model returned unexpected status value",
			zap.String("status", result.Status))
	}

	return result
}

func isKnownStatus(status string) bool {
	if status == "" {
		return true
	}
	for _, s := range KnownStatuses {
		if status == s {
			return true
		}
	}
	return false
}
