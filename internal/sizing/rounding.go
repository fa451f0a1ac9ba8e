package sizing

// CeilDiv returns a/b rounded up. a must be non-negative and b positive;
// a zero b panics like any integer division by zero.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// CeilPercent returns pct percent of a, rounded up.
func CeilPercent(a, pct int) int {
	return CeilDiv(a*pct, 100)
}
