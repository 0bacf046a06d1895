// Package unit validates unit expressions such as "kg", "m^2" or "N/m^2".
//
// The grammar is factor ('/' factor)*, where a factor is a run of letters
// optionally followed by '^' and digits. A Catalog restricts factors to
// known unit symbols.
package unit

import "unicode"

// Valid reports whether text is a unit expression. With isFinal false, text
// may stop anywhere a longer expression could continue, e.g. after '^' or '/'.
func Valid(text string, isFinal bool) bool {
	if text == "" {
		return false
	}

	const (
		factorStart = iota // expecting the first letter of a factor
		letters            // inside the letters of a factor
		caret              // after '^', expecting a digit
		power              // inside the digits of a power
	)

	state := factorStart
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			if state != factorStart && state != letters {
				return false
			}
			state = letters
		case r == '^':
			if state != letters {
				return false
			}
			state = caret
		case r >= '0' && r <= '9':
			if state != caret && state != power {
				return false
			}
			state = power
		case r == '/':
			if state != letters && state != power {
				return false
			}
			state = factorStart
		default:
			return false
		}
	}

	if !isFinal {
		return true
	}
	return state == letters || state == power
}

// Factors splits a valid expression into its letter parts, dropping powers.
// "N/m^2" yields ["N", "m"].
func Factors(text string) []string {
	var out []string
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, text[start:])
	}
	return out
}
