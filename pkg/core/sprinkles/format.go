package sprinkles

import "strconv"

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
