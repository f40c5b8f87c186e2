package templating

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v with six fixed decimals, then
// drops trailing zeros and a dangling decimal point:
// 2.5 is "2.5", 5 is "5", 1/3 is "0.333333". Infinities
// render as "inf" and "-inf", NaN as "nan", and negative
// zero keeps its sign.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}
