package headers

import (
	"strconv"
	"strings"
)

// Render substitutes format tokens against the counter state for a heading
// at the given level.
//
// Tokens:
//
//	%n        current level's counter, decimal
//	%A / %a   counter as base-26 alphabetic label (1=A, 26=Z, 27=AA)
//	%R / %r   counter as Roman numeral
//	%o        counter as English ordinal (1st, 2nd); falls back to %n output
//	%l1..%l9  current counter value at that specific level
//	%0Xn      %n zero-padded to X digits
//	%0Xl#     %l# zero-padded to X digits
//
// Unknown or malformed tokens are left verbatim so a broken custom format is
// visibly wrong instead of silently mangled.
func Render(format string, level int, st *State) string {
	var out strings.Builder
	i := 0
	for i < len(format) {
		if format[i] != '%' {
			out.WriteByte(format[i])
			i++
			continue
		}
		consumed, text, ok := renderToken(format[i+1:], level, st)
		if !ok {
			out.WriteByte('%')
			i++
			continue
		}
		out.WriteString(text)
		i += 1 + consumed
	}
	return out.String()
}

// renderToken interprets the token body following a '%'. It returns the
// number of bytes consumed from rest and the rendered text, or ok=false if
// the token is not recognized.
func renderToken(rest string, level int, st *State) (int, string, bool) {
	if rest == "" {
		return 0, "", false
	}
	n := st.Counter(level)
	switch rest[0] {
	case 'n':
		return 1, strconv.Itoa(n), true
	case 'A':
		return 1, alphaLabel(n, true), true
	case 'a':
		return 1, alphaLabel(n, false), true
	case 'R':
		return 1, romanNumeral(n, true), true
	case 'r':
		return 1, romanNumeral(n, false), true
	case 'o':
		return 1, ordinal(n), true
	case 'l':
		if len(rest) >= 2 && rest[1] >= '1' && rest[1] <= '9' {
			return 2, strconv.Itoa(st.Counter(int(rest[1] - '0'))), true
		}
		return 0, "", false
	case '0':
		return renderPadded(rest, level, st)
	default:
		return 0, "", false
	}
}

// renderPadded handles %0Xn and %0Xl# where X is the zero-padded width.
func renderPadded(rest string, level int, st *State) (int, string, bool) {
	// rest starts with '0'; the width digits follow.
	i := 1
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	width, err := strconv.Atoi(rest[1:i])
	if err != nil || width <= 0 || i >= len(rest) {
		return 0, "", false
	}
	switch rest[i] {
	case 'n':
		return i + 1, pad(st.Counter(level), width), true
	case 'l':
		if i+1 < len(rest) && rest[i+1] >= '1' && rest[i+1] <= '9' {
			return i + 2, pad(st.Counter(int(rest[i+1]-'0')), width), true
		}
	}
	return 0, "", false
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// alphaLabel renders n as a bijective base-26 alphabetic label.
// Non-positive counters render as their decimal value.
func alphaLabel(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	s := string(b)
	if !upper {
		s = strings.ToLower(s)
	}
	return s
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// romanNumeral renders n as a Roman numeral. Counters outside the classic
// representable range render as their decimal value.
func romanNumeral(n int, upper bool) string {
	if n <= 0 || n > 3999 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	remaining := n
	for _, rv := range romanValues {
		for remaining >= rv.value {
			b.WriteString(rv.symbol)
			remaining -= rv.value
		}
	}
	s := b.String()
	if !upper {
		s = strings.ToLower(s)
	}
	return s
}

// ordinal renders n with its English ordinal suffix.
func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
		// 11th, 12th, 13th
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
