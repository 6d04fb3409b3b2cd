// Package seq provides a growable integer sequence with an explicit,
// caller-tunable growth policy for accumulating values of unknown count.
package seq

import (
	"errors"
	"math"
)

// ErrCapacityOverflow is returned by Append when the next capacity the
// growth policy asks for cannot be represented. The sequence is unchanged
// when this happens.
var ErrCapacityOverflow = errors.New("sequence capacity overflow")

// IntSeq is a mutable sequence of ints that manages the capacity of its
// backing storage itself rather than relying on the runtime's append policy.
// A growth increment of one or less doubles the capacity whenever it is
// exhausted (starting at one slot); a larger increment grows by exactly that
// many slots each time. Callers that know the expected size can pick an
// increment that results in a single allocation.
//
// The zero value is ready to use and behaves like New(0).
type IntSeq struct {
	data   []int
	growBy int
}

// New returns an empty sequence using the given growth increment.
// No storage is allocated until the first Append.
func New(growBy int) *IntSeq {
	return &IntSeq{growBy: growBy}
}

// Append stores v at the end of the sequence, growing the backing storage
// first when length has reached capacity. The capacity check happens before
// any allocation; on ErrCapacityOverflow the sequence is left untouched.
func (s *IntSeq) Append(v int) error {
	if len(s.data) == cap(s.data) {
		next, err := s.nextCap()
		if err != nil {
			return err
		}
		grown := make([]int, len(s.data), next)
		copy(grown, s.data)
		s.data = grown
	}
	s.data = append(s.data, v)
	return nil
}

// nextCap computes the capacity the growth policy dictates for the next
// allocation.
func (s *IntSeq) nextCap() (int, error) {
	c := cap(s.data)
	if s.growBy <= 1 {
		if c == 0 {
			return 1, nil
		}
		if c > math.MaxInt/2 {
			return 0, ErrCapacityOverflow
		}
		return c * 2, nil
	}
	if c > math.MaxInt-s.growBy {
		return 0, ErrCapacityOverflow
	}
	return c + s.growBy, nil
}

// Release drops the backing storage and resets length, capacity and the
// growth increment to zero. Calling it on an empty or already-released
// sequence is a no-op.
func (s *IntSeq) Release() {
	s.data = nil
	s.growBy = 0
}

// Len returns the number of values appended so far.
func (s *IntSeq) Len() int {
	return len(s.data)
}

// Cap returns the number of slots currently allocated.
func (s *IntSeq) Cap() int {
	return cap(s.data)
}

// At returns the i-th appended value. It panics when i is out of range,
// matching slice indexing.
func (s *IntSeq) At(i int) int {
	return s.data[i]
}

// Values returns the live backing slice of the sequence. The slice remains
// valid until the next Append or Release; callers must not modify it.
func (s *IntSeq) Values() []int {
	return s.data
}
