package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// IsPersonnummer accepts a Swedish personal identity number in the 10 digit
// (YYMMDD-NNNC) or 12 digit (YYYYMMDDNNNC) form. The check digit is a Luhn
// digit over the last ten digits.
func IsPersonnummer(s string) bool {
	digits := strings.NewReplacer("-", "", "+", "", " ", "").Replace(strings.TrimSpace(s))
	switch len(digits) {
	case 10:
	case 12:
		digits = digits[2:]
	default:
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	if !validDate(digits[2:4], digits[4:6]) {
		return false
	}
	return goluhn.Validate(digits) == nil
}

// validDate checks month and day. Coordination numbers add 60 to the day.
func validDate(month, day string) bool {
	m := (int(month[0]-'0') * 10) + int(month[1]-'0')
	d := (int(day[0]-'0') * 10) + int(day[1]-'0')
	if d > 60 {
		d -= 60
	}
	return m >= 1 && m <= 12 && d >= 1 && d <= 31
}
