package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeLLM struct {
	result *ClassificationResult
	err    error

	calls     int
	lastText  string
	waitOnCtx bool
}

func (f *fakeLLM) Classify(ctx context.Context, emailText string) (*ClassificationResult, error) {
	f.calls++
	f.lastText = emailText
	if f.waitOnCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func TestClassifyHappyPath(t *testing.T) {
	llm := &fakeLLM{result: &ClassificationResult{
		IsJobApplication: true,
		Reasoning:        "confirmation email",
		CompanyName:      "Acme",
		JobTitle:         "Engineer",
		Status:           "applied",
	}}
	c := NewClassifier(llm, 0, zap.NewNop())

	result := c.Classify(context.Background(), "email text")
	if !result.IsJobApplication {
		t.Fatal("expected a positive verdict")
	}
	if result.CompanyName != "Acme" || result.Status != "applied" {
		t.Fatalf("result = %+v", result)
	}
	if llm.lastText != "email text" {
		t.Fatalf("llm received %q", llm.lastText)
	}
}

func TestClassifyUnparseableResponse(t *testing.T) {
	llm := &fakeLLM{err: ErrUnparseableResponse}
	c := NewClassifier(llm, 0, zap.NewNop())

	result := c.Classify(context.Background(), "text")
	if result.IsJobApplication {
		t.Fatal("parse failure must not be a positive verdict")
	}
	if result.Reasoning != "Failed to parse LLM response" {
		t.Fatalf("Reasoning = %q", result.Reasoning)
	}
	if result.Err != "" {
		t.Fatalf("Err = %q, want empty for a parse failure", result.Err)
	}
}

func TestClassifyTransportError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("connection refused")}
	c := NewClassifier(llm, 0, zap.NewNop())

	result := c.Classify(context.Background(), "text")
	if result.IsJobApplication {
		t.Fatal("transport failure must not be a positive verdict")
	}
	if !strings.HasPrefix(result.Reasoning, "Error: ") {
		t.Fatalf("Reasoning = %q", result.Reasoning)
	}
	if result.Err != "connection refused" {
		t.Fatalf("Err = %q", result.Err)
	}
}

func TestClassifyTimeout(t *testing.T) {
	llm := &fakeLLM{waitOnCtx: true}
	c := NewClassifier(llm, 10*time.Millisecond, zap.NewNop())

	result := c.Classify(context.Background(), "text")
	if result.IsJobApplication {
		t.Fatal("a timed-out call must not be a positive verdict")
	}
	if result.Err == "" {
		t.Fatal("timeout must surface in Err")
	}
}

func TestClassifyDefaultReasoning(t *testing.T) {
	llm := &fakeLLM{result: &ClassificationResult{IsJobApplication: false}}
	c := NewClassifier(llm, 0, zap.NewNop())

	result := c.Classify(context.Background(), "text")
	if result.Reasoning != "No reasoning provided" {
		t.Fatalf("Reasoning = %q", result.Reasoning)
	}
}

func TestClassifyUnknownStatusKept(t *testing.T) {
	llm := &fakeLLM{result: &ClassificationResult{
		IsJobApplication: true,
		Reasoning:        "r",
		Status:           "ghosted",
	}}
	c := NewClassifier(llm, 0, zap.NewNop())

	result := c.Classify(context.Background(), "text")
	if result.Status != "ghosted" {
		t.Fatalf("Status = %q, want the model value kept", result.Status)
	}
}
