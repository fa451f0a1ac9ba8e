package sizing

import (
	"fmt"
	"math"
	"math/bits"
)

// MaxInput bounds every input field and the replicated dataset size. Inside
// these bounds the server count and per-server quantities cannot overflow;
// only the costs still can, which CheckRange detects.
const MaxInput = math.MaxInt32

// RangeError reports a cost too large to represent.
type RangeError struct {
	Quantity string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s exceeds %d", e.Quantity, math.MaxInt)
}

// CheckRange computes in and reports a *RangeError if any cost leaves the
// int range. in must already satisfy the bounds request.Validate enforces.
func CheckRange(in Input) error {
	res := ComputeInput(in)
	if q := price(&res, in.Hardware, in.Facility, in.Profile); q != "" {
		return &RangeError{Quantity: q}
	}
	return nil
}

// checked is int arithmetic on non-negative operands that remembers whether
// a result left the int range. Results after an overflow are meaningless.
type checked struct {
	overflow bool
	first    string
}

func (c *checked) mul(a, b int) int {
	if a < 0 || b < 0 {
		c.overflow = true
		return a * b
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		c.overflow = true
	}
	return a * b
}

func (c *checked) add(a, b int) int {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		c.overflow = true
	}
	return a + b
}

func (c *checked) ceilDiv(a, b int) int {
	return c.add(a, b-1) / b
}

// mark names quantity as the first casualty if an overflow has happened.
func (c *checked) mark(quantity string) {
	if c.overflow && c.first == "" {
		c.first = quantity
	}
}
