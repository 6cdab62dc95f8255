package util

import (
	"strconv"
	"strings"
)

// FormatThousands 천 단위 구분 (예: 1234567 → "1,234,567")
func FormatThousands(value int) string {
	s := strconv.Itoa(value)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
