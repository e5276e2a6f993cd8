package latex

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`M{\"u}ller`, "Müller"},
		{`M\"uller`, "Müller"},
		{`{\"{u}}`, "ü"},
		{`Caf{\'e}`, "Café"},
		{`Se{\~n}or`, "Señor"},
		{`{\c c}a`, "ça"},
		{`Gro{\ss}e`, "Große"},
		{`{\oe}uvre`, "œuvre"},
		{`{\o}l`, "øl"},
		{`Fish \& Chips`, "Fish & Chips"},
		{`100\% pure`, "100% pure"},
		{`pages 1--10`, "pages 1–10"},
		{`wait---now`, "wait—now"},
		{"``quoted''", "“quoted”"},
		{`\unknowncmd{x}`, `\unknowncmd{x}`},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := Decode(tt.in); got != tt.want {
			t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Müller", `M{\"u}ller`},
		{"Café", `Caf{\'e}`},
		{"Señor", `Se{\~n}or`},
		{"ça", `{\c c}a`},
		{"Große", `Gro{\ss}e`},
		{"Fish & Chips", `Fish \& Chips`},
		{"50% off", `50\% off`},
		{"a_b", `a\_b`},
		{"x^2", `x\textasciicircum{}2`},
		{"~user", `\textasciitilde{}user`},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"Müller", "Café Société", "Großer Ölberg", "œuvre"}
	for _, in := range inputs {
		if got := Decode(Encode(in)); got != in {
			t.Errorf("Decode(Encode(%q)) = %q", in, got)
		}
	}
}
