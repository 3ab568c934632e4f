package problemgen

import (
	"errors"
	"strconv"
	"unicode"
)

// ErrNotANumber is returned by ParseAnswer when the input has no leading
// integer.
var ErrNotANumber = errors.New("not a number")

// ParseAnswer reads an integer from learner input the way a lenient
// numeric coercion would:
//   - leading whitespace is skipped
//   - an optional '+' or '-' sign is accepted
//   - the longest run of decimal digits is read; anything after it is ignored
//
// "7" and " 7" and "7abc" and "7.9" all parse to 7. Input with no digits
// ("", "abc", "-") returns ErrNotANumber.
func ParseAnswer(input string) (int, error) {
	runes := []rune(input)
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}

	start := i
	if i < len(runes) && (runes[i] == '+' || runes[i] == '-') {
		i++
	}

	digitsStart := i
	for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0, ErrNotANumber
	}

	n, err := strconv.Atoi(string(runes[start:i]))
	if err != nil {
		// Only overflow gets here; an overflowing value can never match a
		// generated answer.
		return 0, ErrNotANumber
	}
	return n, nil
}

// CheckAnswer reports whether input parses to the exercise's answer.
// Unparseable input is never correct.
func CheckAnswer(input string, ex Exercise) bool {
	n, err := ParseAnswer(input)
	if err != nil {
		return false
	}
	return n == ex.Answer
}
