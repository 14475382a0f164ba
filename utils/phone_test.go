package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+33 6 12 34 56 78", "+33612345678"},
		{"0033 6 12 34 56 78", "+33612345678"},
		{"06 12 34 56 78", "0612345678"},
		{"(555) 123-4567", "5551234567"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhoneNumber(tt.in); got != tt.want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"+33612345678", "0612345678", "555-1234"}
	for _, v := range valid {
		if !ValidatePhoneNumber(v) {
			t.Errorf("expected %q to be valid", v)
		}
	}
	invalid := []string{"", "123", "12345678901234567890"}
	for _, v := range invalid {
		if ValidatePhoneNumber(v) {
			t.Errorf("expected %q to be invalid", v)
		}
	}
}
