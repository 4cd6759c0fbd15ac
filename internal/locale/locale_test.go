package locale

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "thousand dot decimal comma", input: "1.234,56", want: 1234.56},
		{name: "decimal comma", input: "3,49", want: 3.49},
		{name: "decimal dot", input: "3.49", want: 3.49},
		{name: "empty", input: "", want: 0},
		{name: "negative", input: "-12,00", want: -12},
		{name: "currency suffix", input: "9,08 EUR", want: 9.08},
		{name: "currency symbol", input: "€ 5,00", want: 5},
		{name: "garbage", input: "n/a", want: 0},
		{name: "ocr noise", input: "~1.250,00~", want: 1250},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseNumber(tc.input); got != tc.want {
				t.Fatalf("ParseNumber(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "17.02.2026", want: "2026-02-17"},
		{input: "Datum: 01.01.49 12:30", want: "2049-01-01"},
		{input: "01.01.51", want: "1951-01-01"},
		{input: "1.3.2024", want: "2024-03-01"},
	}
	for _, tc := range cases {
		got := ParseDate(tc.input)
		if got == nil || *got != tc.want {
			t.Fatalf("ParseDate(%q) = %v, want %q", tc.input, got, tc.want)
		}
	}

	for _, invalid := range []string{"31.02.2020", "32.01.2020", "01.13.2020", "kein Datum", ""} {
		if got := ParseDate(invalid); got != nil {
			t.Fatalf("ParseDate(%q) = %q, want nil", invalid, *got)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	cases := map[string]string{
		"ST":     UnitPiece,
		"stk":    UnitPiece,
		"Stück":  UnitPiece,
		"M":      UnitMeter,
		"lfm":    UnitMeter,
		"KG":     UnitKilogram,
		"Ltr.":   UnitLiter,
		"m2":     UnitSquareMeter,
		"qm":     UnitSquareMeter,
		"to":     UnitTonne,
		"Pak":    UnitPackage,
		"ROL":    UnitRoll,
		"DS":     UnitCan,
		"Satz":   UnitSet,
		" Palette ": "Palette",
	}
	for input, want := range cases {
		if got := NormalizeUnit(input); got != want {
			t.Fatalf("NormalizeUnit(%q) = %q, want %q", input, got, want)
		}
	}
}
