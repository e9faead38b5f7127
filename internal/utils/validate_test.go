package utils

import (
	"strings"
	"testing"
)

func TestIsValidTarget(t *testing.T) {
	tests := []struct {
		target string
		valid  bool
	}{
		{"example.com", true},
		{"sub.example.co.uk", true},
		{"_dmarc.example.com", true},
		{"xn--bcher-kva.example", true},
		{"", false},
		{"nodots", false},
		{"bad input.com", false},
		{"evil.com;rm -rf", false},
		{strings.Repeat("a", 250) + ".com.toolong", false},
	}

	for _, tt := range tests {
		if got := IsValidTarget(tt.target); got != tt.valid {
			t.Errorf("IsValidTarget(%q) = %v, want %v", tt.target, got, tt.valid)
		}
	}
}
