// Package roman implements funk's numeric transport: converting between
// base-10 floating-point values and the Roman-numeral strings the
// language uses as its only numeric literal form (spec.md §4.6).
package roman

import (
	"math"
	"strings"

	"github.com/funk-lang/funk/pkg/object"
)

// weights pairs each Roman numeral (including the six subtractive forms)
// with its value, ordered largest-first so numberToString's greedy
// subtraction always picks the biggest symbol that fits.
var weights = []struct {
	symbol string
	value  int
}{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// maxFractionDigits bounds the number of fractional Roman digits
// NumberToString emits. The scaling loop that picks a fractional
// denominator (10^digits) isn't guaranteed to terminate for an arbitrary
// binary float — most decimal fractions aren't exactly representable —
// so this clamp is the documented, deliberate stopping point (spec.md's
// REDESIGN FLAGS calls this out explicitly).
const maxFractionDigits = 5

// parseRomanInt parses s as a plain (non-subtractive-aware in the naive
// sense — the pairwise algorithm below still recognizes subtractive
// pairs like "IV") sequence of Roman digits, returning its value and
// whether s was entirely consumed by valid digits.
func parseRomanInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	total := 0
	i := 0
	for i < len(s) {
		matched := false
		for _, w := range weights {
			if strings.HasPrefix(s[i:], w.symbol) {
				total += w.value
				i += len(w.symbol)
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}
	return total, true
}

// digitCount returns the number of decimal digits in n (n >= 0), with
// digitCount(0) == 0.
func digitCount(n int) int {
	if n == 0 {
		return 0
	}
	count := 0
	for n > 0 {
		count++
		n /= 10
	}
	return count
}

// ToNumber converts fn to a float64 per spec.md §4.6 by reading fn's name
// as a signed, optionally-fractional Roman-numeral string. It never runs
// fn: pkg/roman has no VM dependency, so a caller holding a function that
// carries code invokes it first and passes the result (vm.VM.ToNumber
// does this). The special name "NULLA" denotes zero. An unparseable name
// yields 0.
func ToNumber(fn object.Value) float64 {
	name := object.ToString(fn)
	if name == "NULLA" {
		return 0
	}

	negative := false
	if strings.HasPrefix(name, "-") {
		negative = true
		name = name[1:]
	}

	intPart := name
	fracPart := ""
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		intPart = name[:idx]
		fracPart = name[idx+1:]
	}

	var intValue int
	if intPart == "NULLA" {
		intValue = 0
	} else {
		var ok bool
		intValue, ok = parseRomanInt(intPart)
		if !ok {
			return 0
		}
	}

	result := float64(intValue)

	if fracPart != "" {
		fracValue, ok := parseRomanInt(fracPart)
		if !ok {
			return 0
		}
		result += float64(fracValue) / math.Pow(10, float64(digitCount(fracValue)))
	}

	if negative {
		result = -result
	}
	return result
}

// encodeInt renders n (n >= 0) as Roman digits via greedy subtraction
// against weights.
func encodeInt(n int) string {
	var b strings.Builder
	for _, w := range weights {
		for n >= w.value {
			b.WriteString(w.symbol)
			n -= w.value
		}
	}
	return b.String()
}

// NumberToString renders value as funk's canonical Roman-numeral string,
// per spec.md §4.6. Zero renders as "NULLA".
func NumberToString(value float64) string {
	if value == 0 {
		return "NULLA"
	}

	negative := value < 0
	value = math.Abs(value)

	intPart := math.Floor(value)
	frac := value - intPart

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if intPart == 0 && frac > 0 {
		b.WriteString("NULLA")
	} else {
		b.WriteString(encodeInt(int(intPart)))
	}

	if frac > 0 {
		digits := 0
		scaled := 0.0
		for digits < maxFractionDigits {
			digits++
			exact := frac * math.Pow(10, float64(digits))
			scaled = math.Round(exact)
			// Stop once scaling by this many digits reproduces frac
			// to float64 precision, trimming trailing zeros so
			// e.g. 0.5 encodes as ".V" rather than ".L" at 2 digits.
			if math.Abs(exact-scaled) < 1e-9 {
				break
			}
		}
		for digits > 1 && math.Mod(scaled, 10) == 0 {
			scaled /= 10
			digits--
		}
		if scaled > 0 {
			b.WriteByte('.')
			b.WriteString(encodeInt(int(scaled)))
		}
	}

	return b.String()
}

// IsTrue reports whether fn is funk's truthy sentinel: if fn carries
// code its caller is expected to have already invoked it and passed the
// result in fn's place (pkg/roman has no VM dependency), so this simply
// compares fn's name against the literal "true".
func IsTrue(fn object.Value) bool {
	return object.ToString(fn) == "true"
}
