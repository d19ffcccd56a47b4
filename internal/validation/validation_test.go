package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
		wantErr error
	}{
		{
			name:   "valid query",
			input:  "What is the weather in Paris?",
			maxLen: 500,
			want:   "What is the weather in Paris?",
		},
		{
			name:   "whitespace trimmed",
			input:  "  weather in Oslo  ",
			maxLen: 500,
			want:   "weather in Oslo",
		},
		{
			name:    "empty",
			input:   "",
			maxLen:  500,
			wantErr: ErrQueryEmpty,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			maxLen:  500,
			wantErr: ErrQueryEmpty,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a", 501),
			maxLen:  500,
			wantErr: ErrQueryTooLong,
		},
		{
			name:   "exactly at limit",
			input:  strings.Repeat("a", 500),
			maxLen: 500,
			want:   strings.Repeat("a", 500),
		},
		{
			name:   "multibyte runes counted as runes",
			input:  strings.Repeat("ü", 500),
			maxLen: 500,
			want:   strings.Repeat("ü", 500),
		},
		{
			name:   "zero max disables length check",
			input:  strings.Repeat("a", 10000),
			maxLen: 0,
			want:   strings.Repeat("a", 10000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateQuery(tt.input, tt.maxLen)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidateQuery() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateQuery() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ValidateQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateRegionCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "uppercase", input: "CA", want: "CA"},
		{name: "lowercase normalized", input: "ny", want: "NY"},
		{name: "whitespace trimmed", input: " tx ", want: "TX"},
		{name: "too long", input: "CAL", wantErr: true},
		{name: "too short", input: "C", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "digits", input: "C1", wantErr: true},
		{name: "punctuation", input: "C-", wantErr: true},
		{name: "non-ascii letters", input: "ÀÉ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRegionCode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRegionCode) {
					t.Errorf("ValidateRegionCode(%q) error = %v, want ErrInvalidRegionCode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateRegionCode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateRegionCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
