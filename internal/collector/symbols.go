package collector

import (
	"strings"
	"unicode"
)

// indexAliases maps dashboard names to their quote-provider tickers.
var indexAliases = map[string]string{
	"TAIEX": "^TWII",
	"TWII":  "^TWII",
	"OTC":   "^TWOII",
	"TPEX":  "^TWOII",
}

// NormalizeSymbol upper-cases symbol and appends the TWSE suffix to bare
// numeric stock codes: "2330" becomes "2330.TW".
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if mapped, ok := indexAliases[s]; ok {
		return mapped
	}
	if s == "" || strings.Contains(s, ".") || strings.HasPrefix(s, "^") {
		return s
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return s
		}
	}
	return s + ".TW"
}
