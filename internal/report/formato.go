package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Euro formats an amount the Italian way, rounded half away from zero to the
// cent: 22267.1567 -> "€ 22.267,16".
func Euro(v float64) string {
	return "€ " + numero(decimal.NewFromFloat(v), 2)
}

// Percentuale formats a fraction as a percentage: 0.0919 -> "9,19%".
func Percentuale(v float64) string {
	p := decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100))
	s := numero(p, 2)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ",")
	return s + "%"
}

// Giorni formats a day or hour count with two decimals.
func Giorni(v float64) string {
	return numero(decimal.NewFromFloat(v), 2)
}

func numero(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intero, frazione, _ := strings.Cut(s, ".")
	out := addDotSep(intero)
	if frazione != "" {
		out += "," + frazione
	}
	if neg && strings.Trim(out, "0.,") != "" {
		out = "-" + out
	}
	return out
}

func addDotSep(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	return addDotSep(s[:n-3]) + "." + s[n-3:]
}

// transliterate maps the characters the core PDF fonts cannot encode.
func transliterate(s string) string {
	replacer := strings.NewReplacer(
		"à", "a", "è", "e", "é", "e", "ì", "i", "ò", "o", "ù", "u",
		"À", "A", "È", "E", "É", "E", "Ì", "I", "Ò", "O", "Ù", "U",
		"≤", "<=", "≥", ">=",
		"€", "EUR", "–", "-", "‘", "'", "’", "'",
		"“", "\"", "”", "\"",
	)
	return replacer.Replace(s)
}
