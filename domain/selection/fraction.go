package selection

import "fmt"

// gcd is Euclid's algorithm on non-negative integers. gcd(0, 0) is 1 so that
// callers can always divide by the result.
func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// AspectFraction formats w:h reduced by their greatest common divisor,
// e.g. 1920x1080 -> "16:9".
func AspectFraction(w, h int) string {
	d := gcd(w, h)
	return fmt.Sprintf("%d:%d", w/d, h/d)
}
