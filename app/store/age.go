package store

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Age is a numeric age as entered in the login form. It is float-backed so
// that input which is not a number survives as NaN instead of failing the
// login.
type Age float64

// decimalLiteral matches the decimal forms a browser accepts as a number.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// CoerceAge converts form input to an Age the way a browser coerces a
// string to a number: surrounding whitespace is ignored, the empty string is
// 0, "0x", "0o" and "0b" prefixes select a base, "Infinity" is accepted with
// an optional sign, and anything else that is not a decimal literal is NaN.
func CoerceAge(input string) Age {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return Age(math.Inf(1))
	case "-Infinity":
		return Age(math.Inf(-1))
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseBase(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return Age(math.NaN())
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Age(math.NaN())
	}
	return Age(f)
}

// parseBase parses unsigned digits in base. Values beyond uint64 are
// accumulated as floats.
func parseBase(digits string, base int) Age {
	if digits == "" || strings.ContainsAny(digits, "+-_") {
		return Age(math.NaN())
	}
	if n, err := strconv.ParseUint(digits, base, 64); err == nil {
		return Age(float64(n))
	}
	var f float64
	for _, r := range digits {
		d, err := strconv.ParseUint(string(r), base, 8)
		if err != nil {
			return Age(math.NaN())
		}
		f = f*float64(base) + float64(d)
	}
	return Age(f)
}

// IsNaN reports whether the age is not a number.
func (a Age) IsNaN() bool {
	return math.IsNaN(float64(a))
}

// String formats the age the way a browser prints a number: integers
// without a fraction, "NaN" and "Infinity" spelled out, and exponent form
// only for very large or very small magnitudes.
func (a Age) String() string {
	f := float64(a)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits ("1e-07").
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
