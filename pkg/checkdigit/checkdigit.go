// Package checkdigit implements the GS1 weighted modulo-10 check digit used by
// GTIN, GLN and SSCC.
//
// Starting with the rightmost digit, digits are weighted 3, 1, 3, 1 ... and
// summed; the check digit is (10 - sum%10) % 10. For GTIN-14 09501101530003
// the body 0950110153000 sums to 57, giving 3.
package checkdigit

import (
	"github.com/ssargent/gs1kit/pkg/gs1err"
)

// Calculate returns the check digit for a digit string that does not include one
func Calculate(digits string) (int, error) {
	if digits == "" {
		return 0, gs1err.New(gs1err.EmptyInput, "check digit input cannot be empty")
	}

	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, gs1err.New(gs1err.NotNumeric, "check digit input must be numeric, got %q", digits)
		}
		sum += int(c-'0') * weight
		weight = 4 - weight
	}

	return (10 - sum%10) % 10, nil
}

// Validate reports whether the final digit of number is its correct check digit
func Validate(number string) (bool, error) {
	if number == "" {
		return false, gs1err.New(gs1err.EmptyInput, "number cannot be empty")
	}

	last := number[len(number)-1]
	if last < '0' || last > '9' {
		return false, gs1err.New(gs1err.NotNumeric, "number must be numeric, got %q", number)
	}

	expected, err := Calculate(number[:len(number)-1])
	if err != nil {
		return false, err
	}

	return int(last-'0') == expected, nil
}

// Append returns digits with its check digit appended
func Append(digits string) (string, error) {
	d, err := Calculate(digits)
	if err != nil {
		return "", err
	}
	return digits + string(rune('0'+d)), nil
}
