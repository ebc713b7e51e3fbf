package layout

import (
	"strconv"
	"strings"
)

// parseAmount converts an amount string like "1,234.56" to a float64.
// Statement amounts use commas as thousands separators only; an empty
// band maps to zero.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
