package fipe

import "testing"

func TestFormatPlate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"antiga minúscula", "abc1234", "ABC-1234"},
		{"antiga já com hífen", "ABC-1234", "ABC-1234"},
		{"antiga com espaços", " abc 1234 ", "ABC-1234"},
		{"mercosul fica sem hífen", "ABC1D23", "ABC1D23"},
		{"mercosul digitada com hífen", "abc-1d23", "ABC1D23"},
		{"inválida passa limpa", "XYZ", "XYZ"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPlate(tc.input); got != tc.want {
				t.Fatalf("FormatPlate(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"abc-1234", "ABC1234"},
		{"ABC 1D23", "ABC1D23"},
		{"a.b.c/1:2;3!4", "ABC1234"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePlate(tc.input); got != tc.want {
			t.Fatalf("NormalizePlate(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestIsValidPlate(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"ABC1234", true},
		{"abc-1234", true},
		{"ABC1D23", true},
		{"abc1d23", true},
		{"ABCD123", false},
		{"AB12345", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsValidPlate(tc.input); got != tc.want {
			t.Fatalf("IsValidPlate(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
