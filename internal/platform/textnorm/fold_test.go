package textnorm

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain ascii", in: "Haaland", want: "haaland"},
		{name: "umlaut", in: "Müller", want: "muller"},
		{name: "o slash", in: "Sørloth", want: "sorloth"},
		{name: "cedilla and tilde", in: "João Cancelo", want: "joao cancelo"},
		{name: "l stroke", in: "Łukasz Fabiański", want: "lukasz fabianski"},
		{name: "d stroke", in: "Filip Đuričić", want: "filip duricic"},
		{name: "sharp s", in: "Großkreutz", want: "grosskreutz"},
		{name: "ae ligature", in: "Kjær", want: "kjaer"},
		{name: "hangul passes through", in: "손흥민", want: "손흥민"},
		{name: "surrounding space", in: "  Saka  ", want: "saka"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.in); got != tc.want {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFoldEqual(t *testing.T) {
	if !FoldEqual("Müller", "MULLER") {
		t.Fatal("expected folded names to compare equal")
	}
	if !FoldEqual("Ødegaard", "Odegaard") {
		t.Fatal("expected o-slash to match its ascii spelling")
	}
	if FoldEqual("Kane", "Son") {
		t.Fatal("expected distinct names to compare unequal")
	}
}
