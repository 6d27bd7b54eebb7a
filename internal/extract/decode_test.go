package extract

import (
	"encoding/base64"
	"testing"
)

func TestDecodeBase64URL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "padded",
			input: base64.URLEncoding.EncodeToString([]byte("Hello")),
			want:  "Hello",
		},
		{
			name:  "unpadded",
			input: base64.RawURLEncoding.EncodeToString([]byte("Hello, world")),
			want:  "Hello, world",
		},
		{
			name:  "url-safe-alphabet",
			input: "Pj4_",
			want:  ">>?",
		},
		{
			name:  "invalid",
			input: "not base64!!",
			want:  "",
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeBase64URL(tc.input)
			if got != tc.want {
				t.Fatalf("DecodeBase64URL(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDecodeBase64URLLatin1Fallback(t *testing.T) {
	// 0xe9 is "é" in Latin-1 but not valid UTF-8 on its own.
	input := base64.RawURLEncoding.EncodeToString([]byte{'c', 'a', 'f', 0xe9})
	got := DecodeBase64URL(input)
	if got != "café" {
		t.Fatalf("DecodeBase64URL latin-1 fallback = %q, want %q", got, "café")
	}
}
