package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercase", "Domicile Certificate", "domicile certificate"},
		{"punctuation to space", "domicile---certificate!", "domicile certificate"},
		{"collapse whitespace", "  income \t certificate \n", "income certificate"},
		{"underscore kept", "birth_certificate", "birth_certificate"},
		{"digits kept", "form 16A", "form 16a"},
		{"hindi preserved", "आय प्रमाण पत्र", "आय प्रमाण पत्र"},
		{"hindi punctuation stripped", "आय-प्रमाण पत्र।", "आय प्रमाण पत्र"},
		{"only punctuation", "!!!???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Domicile Certificate",
		"  आय-प्रमाण   पत्र ",
		"caste/income (certificate)",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
