package validate

import (
	"errors"
	"regexp"
	"strings"
)

// After normalization a RUT must be 6 to 8 body digits, a hyphen and a
// single check character.
var rutShape = regexp.MustCompile(`^[0-9]{6,8}-[0-9k]$`)

// CheckRUT verifies the modulo-11 check digit of a Chilean RUT.
func CheckRUT(rut string) error {
	if !validRUT(rut) {
		return errors.New("RUT is not valid")
	}
	return nil
}

func validRUT(input string) bool {
	var b strings.Builder
	for _, r := range strings.ToLower(input) {
		if (r >= '0' && r <= '9') || r == 'k' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	if !rutShape.MatchString(clean) {
		return false
	}

	body := clean[:len(clean)-2]
	check := clean[len(clean)-1]

	sum := 0
	mul := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mul
		if mul == 7 {
			mul = 2
		} else {
			mul++
		}
	}

	var expected byte
	switch computed := 11 - sum%11; computed {
	case 11:
		expected = '0'
	case 10:
		expected = 'k'
	default:
		expected = byte('0' + computed)
	}

	return check == expected
}
