package gemini

import (
	"errors"
	"testing"

	"github.com/syncapply/syncapply/internal/core"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    classificationResponse
		wantErr bool
	}{
		{
			name:  "bare-json",
			input: `{"is_job_application": true, "reasoning": "confirmation", "company_name": "Acme", "job_title": "Engineer", "status": "applied"}`,
			want: classificationResponse{
				IsJobApplication: true,
				Reasoning:        "confirmation",
				CompanyName:      "Acme",
				JobTitle:         "Engineer",
				Status:           "applied",
			},
		},
		{
			name:  "markdown-fenced",
			input: "```json\n{\"is_job_application\": false, \"reasoning\": \"newsletter\"}\n```",
			want: classificationResponse{
				IsJobApplication: false,
				Reasoning:        "newsletter",
			},
		},
		{
			name:  "prose-wrapped",
			input: `Sure! Here is the verdict: {"is_job_application": true, "company_name": "Acme"} Hope that helps.`,
			want: classificationResponse{
				IsJobApplication: true,
				CompanyName:      "Acme",
			},
		},
		{
			name:    "no-json",
			input:   "I cannot determine this.",
			wantErr: true,
		},
		{
			name:    "malformed-json",
			input:   `{"is_job_application": tru`,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseClassification(tc.input)
			if tc.wantErr {
				if !errors.Is(err, core.ErrUnparseableResponse) {
					t.Fatalf("err = %v, want ErrUnparseableResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if *got != tc.want {
				t.Fatalf("got %+v, want %+v", *got, tc.want)
			}
		})
	}
}

func TestToResultClearsFieldsForNegatives(t *testing.T) {
	result := toResult(&classificationResponse{
		IsJobApplication: false,
		Reasoning:        "not a job email",
		CompanyName:      "leaked",
		JobTitle:         "leaked",
		Status:           "applied",
	})
	if result.IsJobApplication {
		t.Fatal("verdict flipped")
	}
	if result.CompanyName != "" || result.JobTitle != "" || result.Status != "" {
		t.Fatalf("extracted fields must be cleared: %+v", result)
	}
	if result.Reasoning != "not a job email" {
		t.Fatalf("Reasoning = %q", result.Reasoning)
	}
}

func TestToResultKeepsFieldsForPositives(t *testing.T) {
	result := toResult(&classificationResponse{
		IsJobApplication: true,
		Reasoning:        "offer letter",
		CompanyName:      "Acme",
		JobTitle:         "Engineer",
		Status:           "offer",
		EmailID:          "REF-123",
	})
	if !result.IsJobApplication {
		t.Fatal("verdict flipped")
	}
	if result.CompanyName != "Acme" || result.Status != "offer" {
		t.Fatalf("result = %+v", result)
	}
	if result.EmailRef != "REF-123" {
		t.Fatalf("EmailRef = %q", result.EmailRef)
	}
}
