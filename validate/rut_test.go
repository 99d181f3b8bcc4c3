package validate

import "testing"

func TestCheckRUT(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"check digit one", "11111111-1", true},
		{"check digit five", "12345678-5", true},
		{"check digit k", "20961605-k", true},
		{"uppercase k accepted", "20961605-K", true},
		{"dots stripped", "20.961.605-k", true},
		{"surrounding spaces stripped", " 11111111-1 ", true},
		{"wrong check digit", "21503678-5", false},
		{"non numeric body", "abc-5", false},
		{"empty", "", false},
		{"missing hyphen", "111111111", false},
		{"body too short", "12345-6", false},
		{"body too long", "123456789-1", false},
		{"two check characters", "11111111-12", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := validRUT(tc.input)
			if got != tc.valid {
				t.Fatalf("validRUT(%q) = %v, expected %v", tc.input, got, tc.valid)
			}

			err := CheckRUT(tc.input)
			if tc.valid && err != nil {
				t.Fatalf("CheckRUT(%q): unexpected error: %v", tc.input, err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("CheckRUT(%q): expected an error", tc.input)
			}
		})
	}
}
