package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "empty input",
			input:  "",
			expect: "",
		},
		{
			name:   "whitespace only",
			input:  " \t\n ",
			expect: "",
		},
		{
			name:   "superscripts removed",
			input:  "₹6 LPA¹ to ₹10 LPA²³ ⁴⁵⁹",
			expect: "₹6 LPA to ₹10 LPA",
		},
		{
			name:   "quotes and backticks removed",
			input:  "`it’s` the ‘best’ role's",
			expect: "its the best roles",
		},
		{
			name:   "dashes become hyphens",
			input:  "₹4–6 LPA — entry level",
			expect: "₹4-6 LPA - entry level",
		},
		{
			name:   "whitespace collapsed and trimmed",
			input:  "  ₹8   LPA\n\t(avg)  ",
			expect: "₹8 LPA (avg)",
		},
		{
			name:   "mixed noise",
			input:  "café¹ — test’s",
			expect: "café - tests",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain",
		"café¹ — test’s",
		"  a  ¹ ² b – c ‘d’ `e` ",
		"⁰¹²³⁴⁵⁶⁷⁸⁹",
		"line\nbreak nbsp",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("normalize is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeStripsNoise(t *testing.T) {
	t.Parallel()

	got := Normalize("café¹ — test’s")

	if strings.ContainsAny(got, "¹²³⁰⁴⁵⁶⁷⁸⁹") {
		t.Fatalf("superscripts left in %q", got)
	}
	if strings.ContainsAny(got, "‘’`") {
		t.Fatalf("quotes left in %q", got)
	}
	if strings.ContainsAny(got, "–—") {
		t.Fatalf("long dashes left in %q", got)
	}
	if !strings.Contains(got, "-") {
		t.Fatalf("expected hyphen in %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Fatalf("double spaces left in %q", got)
	}
}
