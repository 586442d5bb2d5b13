package naming

import "strconv"

var cjkDigits = map[rune]int{
	'零': 0, '一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// parseNumber reads either an ASCII digit run or a Chinese numeral. Callers
// fold full-width digits before matching, so only the narrow forms arrive
// here. Mixed strings like "2十" do not parse.
func parseNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if isASCIIDigits(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return parseCJKNumber(s)
}

func isASCIIDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseCJKNumber converts Chinese numerals up to the hundreds, covering the
// forms that show up in episode names: 一, 十, 十二, 二十, 二十一, 一百零五.
func parseCJKNumber(s string) (int, bool) {
	total, current := 0, 0
	seen := false
	for _, r := range s {
		switch r {
		case '十':
			if current == 0 {
				current = 1
			}
			total += current * 10
			current = 0
			seen = true
		case '百':
			if current == 0 {
				current = 1
			}
			total += current * 100
			current = 0
			seen = true
		default:
			d, ok := cjkDigits[r]
			if !ok {
				return 0, false
			}
			current = d
			seen = true
		}
	}
	if !seen {
		return 0, false
	}
	return total + current, true
}
