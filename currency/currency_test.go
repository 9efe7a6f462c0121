package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUSDValueDividesByRate(t *testing.T) {
	cases := []struct {
		amount string
		code   string
		want   string
	}{
		{"1000", "USD", "1000"},
		{"924", "EUR", "1000"},
		{"783", "GBP", "1000"},
		{"18330", "MXN", "1000"},
		{"32867", "TRY", "1000"},
		{"3673", "AED", "1000"},
		{"1370", "CAD", "1000"},
		{"0", "EUR", "0"},
		{"1.848", "EUR", "2"},
	}

	for _, c := range cases {
		amount := decimal.RequireFromString(c.amount)
		got := USDValue(amount, c.code)
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("USDValue(%s, %s) = %s, want %s", c.amount, c.code, got, c.want)
		}
	}
}

func TestUSDValueMatchesTableDivision(t *testing.T) {
	amounts := []decimal.Decimal{
		decimal.NewFromInt(0),
		decimal.NewFromInt(1),
		decimal.NewFromFloat(10500.75),
		decimal.NewFromInt(9999999),
	}
	for code, rate := range rates {
		for _, a := range amounts {
			want := a.Div(rate)
			if got := USDValue(a, code); !got.Equal(want) {
				t.Errorf("USDValue(%s, %s) = %s, want %s", a, code, got, want)
			}
		}
	}
}

func TestUSDValueUnknownCurrencyIsIdentity(t *testing.T) {
	for _, code := range []string{"", "XXX", "usd", "JPY"} {
		a := decimal.NewFromFloat(123.45)
		if got := USDValue(a, code); !got.Equal(a) {
			t.Errorf("USDValue(123.45, %q) = %s, want identity", code, got)
		}
	}
}

func TestSupported(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "MXN", "TRY", "AED", "CAD"} {
		if !Supported(code) {
			t.Errorf("Supported(%q) = false", code)
		}
	}
	if Supported("") || Supported("JPY") {
		t.Error("unsupported code reported as supported")
	}
}

func TestUSDFloat(t *testing.T) {
	if got := USDFloat(924, "EUR"); got != 1000 {
		t.Errorf("USDFloat(924, EUR) = %v, want 1000", got)
	}
	if got := USDFloat(55.5, ""); got != 55.5 {
		t.Errorf("USDFloat(55.5, \"\") = %v, want 55.5", got)
	}
}
