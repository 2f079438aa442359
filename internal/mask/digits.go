package mask

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// CountDigits returns the number of ASCII digits in runes.
func CountDigits(runes []rune) int {
	n := 0
	for _, r := range runes {
		if IsDigit(r) {
			n++
		}
	}
	return n
}

// ExtractDigits returns the ASCII digits of s in order.
func ExtractDigits(s string) []rune {
	var out []rune
	for _, r := range s {
		if IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

// CaretAfterDigits returns the rune offset just after the n-th digit of
// runes. For n <= 0 it returns the offset of the first digit, or 0 when
// there are none. If runes holds fewer than n digits it returns len(runes).
func CaretAfterDigits(runes []rune, n int) int {
	if n <= 0 {
		for i, r := range runes {
			if IsDigit(r) {
				return i
			}
		}
		return 0
	}

	seen := 0
	for i, r := range runes {
		if IsDigit(r) {
			seen++
			if seen == n {
				return i + 1
			}
		}
	}
	return len(runes)
}
