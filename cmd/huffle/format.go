package main

import (
	"strconv"
	"strings"
)

// groupDigits renders n with comma separators, e.g. 1234567 -> "1,234,567".
func groupDigits(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// groupDigitsSigned is groupDigits for values that may be negative,
// such as space saved on an incompressible input.
func groupDigitsSigned(n int64) string {
	if n < 0 {
		return "-" + groupDigits(uint64(-n))
	}
	return groupDigits(uint64(n))
}
