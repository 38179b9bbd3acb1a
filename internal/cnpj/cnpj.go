// Package cnpj validates and formats Brazilian company tax ids.
package cnpj

import (
	"errors"
	"strings"
)

const Length = 14

var (
	ErrLength   = errors.New("CNPJ deve ter 14 dígitos")
	ErrChecksum = errors.New("CNPJ inválido")
)

// Strip drops every non-digit rune ("11.222.333/0001-81" -> "11222333000181").
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize strips the input and checks both verification digits. An empty
// input is allowed and returns "".
func Normalize(s string) (string, error) {
	digits := Strip(s)
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	if err := Validate(digits); err != nil {
		return "", err
	}
	return digits, nil
}

// Validate expects digits only.
func Validate(digits string) error {
	if len(digits) != Length || Strip(digits) != digits {
		return ErrLength
	}
	if strings.Count(digits, digits[:1]) == Length {
		return ErrChecksum
	}
	if checkDigit(digits[:12]) != digits[12] || checkDigit(digits[:13]) != digits[13] {
		return ErrChecksum
	}
	return nil
}

// Mask formats 14 digits as 00.000.000/0000-00; anything else is returned unchanged.
func Mask(s string) string {
	d := Strip(s)
	if len(d) != Length {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// weights cycle 2..9 from the rightmost digit.
func checkDigit(base string) byte {
	sum, weight := 0, 2
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}
