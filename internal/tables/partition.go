package tables

import (
	"errors"
	"fmt"
)

var ErrPartition = errors.New("invalid partition")

// Partition identifies slice Part of NumParts, 1-based. Partition p covers
// global indices [⌊(p−1)·N/n⌋, ⌊p·N/n⌋); over all parts the slices tile
// [0, N) exactly.
type Partition struct {
	Part     int
	NumParts int
}

func (p Partition) Validate() error {
	if p.NumParts < 1 {
		return fmt.Errorf("%w: num_parts=%d, want >= 1", ErrPartition, p.NumParts)
	}
	if p.Part < 1 || p.Part > p.NumParts {
		return fmt.Errorf("%w: part=%d not in [1, %d]", ErrPartition, p.Part, p.NumParts)
	}
	return nil
}

// Bounds returns the half-open index range of this partition over total rows.
func (p Partition) Bounds(total int64) (lo, hi int64) {
	n := int64(p.NumParts)
	lo = int64(p.Part-1) * total / n
	hi = int64(p.Part) * total / n
	return lo, hi
}

// Iterator walks one partition's indices in order. It is lazy, finite and
// restartable; re-iterating yields the same sequence because rows are pure
// functions of index.
type Iterator struct {
	lo, hi int64
	next   int64
}

func NewIterator(gen Generator, p Partition) (*Iterator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	lo, hi := p.Bounds(gen.RowCount())
	return &Iterator{lo: lo, hi: hi, next: lo}, nil
}

// Next returns the next global row index, or false when the partition is
// exhausted.
func (it *Iterator) Next() (int64, bool) {
	if it.next >= it.hi {
		return 0, false
	}
	i := it.next
	it.next++
	return i, true
}

func (it *Iterator) Reset() {
	it.next = it.lo
}

// Remaining reports how many indices are left.
func (it *Iterator) Remaining() int64 {
	return it.hi - it.next
}

// Len reports the partition's total size.
func (it *Iterator) Len() int64 {
	return it.hi - it.lo
}
