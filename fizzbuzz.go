package fizzbuzz

import "strconv"

// The non-numeric labels returned by Classify.
const (
	Fizz     = "Fizz"
	Buzz     = "Buzz"
	FizzBuzz = "FizzBuzz"
)

// Kind identifies which rule was applied to classify a number.
type Kind uint8

// The supported kinds.
const (
	KindNumber Kind = iota
	KindFizz
	KindBuzz
	KindFizzBuzz
)

// String returns a lower-case name for the kind. The returned values are
// stable and are suitable for use as metric label values.
func (k Kind) String() string {
	switch k {
	case KindFizz:
		return "fizz"
	case KindBuzz:
		return "buzz"
	case KindFizzBuzz:
		return "fizzbuzz"
	default:
		return "number"
	}
}

// KindOf returns the Kind of rule that applies to n. The rules are checked
// in the following order:
// - KindFizzBuzz if n is divisible by both 3 and 5
// - KindFizz if n is divisible by 3
// - KindBuzz if n is divisible by 5
// - KindNumber otherwise
func KindOf(n int) Kind {
	switch {
	case n%3 == 0 && n%5 == 0:
		return KindFizzBuzz
	case n%3 == 0:
		return KindFizz
	case n%5 == 0:
		return KindBuzz
	default:
		return KindNumber
	}
}

// Classify implements the fizzbuzz logic for the integer value n and returns:
// - "FizzBuzz" if n is divisible by both 3 and 5
// - "Fizz" if n is divisible by 3
// - "Buzz" if n is divisible by 5
// - the decimal representation of n otherwise
//
// Zero is divisible by both 3 and 5 and is therefore classified as "FizzBuzz".
func Classify(n int) string {
	switch KindOf(n) {
	case KindFizzBuzz:
		return FizzBuzz
	case KindFizz:
		return Fizz
	case KindBuzz:
		return Buzz
	}
	return strconv.Itoa(n)
}
