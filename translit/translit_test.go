package translit

import "testing"

func TestTransliterate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ıİğĞüÜşŞöÖçÇ", "iIgGuUsSoOcC"},
		{"Örnek Şirket", "Ornek Sirket"},
		{"İstanbul Bankası A.Ş.", "Istanbul Bankasi A.S."},
		{"plain ascii 123", "plain ascii 123"},
	}
	for _, c := range cases {
		if got := Transliterate(c.in); got != c.want {
			t.Errorf("Transliterate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTransliteratePassesThroughOtherUnicode(t *testing.T) {
	// Accented characters outside the Turkish table must survive unchanged.
	in := "café crème — naïve £500 日本"
	if got := Transliterate(in); got != in {
		t.Errorf("Transliterate(%q) = %q, want unchanged", in, got)
	}
}

func TestTransliterateIdempotent(t *testing.T) {
	samples := []string{
		"",
		"ıİğĞüÜşŞöÖçÇ",
		"Çalışkan Holding, Büyükdere Cad. No:1, Şişli/İstanbul",
		"café naïve",
		"mixed Ş and ü with plain text",
	}
	for _, s := range samples {
		once := Transliterate(s)
		twice := Transliterate(once)
		if once != twice {
			t.Errorf("Transliterate not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}
