/*
 * um32 - Array heap
 *
 * Owns every allocated platter array, keyed by a 32-bit identifier.
 * Identifier 0 is reserved for the program array and is never handed
 * out by Allocate. Freed identifiers are recycled by a freelist before
 * the next-id counter is advanced, per the arena + index design in
 * the spec's Design Notes: ids are opaque 32-bit values, never host
 * pointers.
 */

package heap

import "fmt"

// Kind distinguishes the heap-level fatal conditions from allocation
// failure, so callers can report the operator that triggered them.
type Kind int

const (
	KindUnmappedID Kind = iota
	KindOutOfRange
	KindFreeZero
)

// Error reports a Fatal array-heap condition.
type Error struct {
	Kind Kind
	ID   uint32
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (id=%d)", e.Msg, e.ID)
}

func newError(kind Kind, id uint32, msg string) *Error {
	return &Error{Kind: kind, ID: id, Msg: msg}
}

// Heap is the array arena. The zero value is not ready for use; call New.
type Heap struct {
	arrays   map[uint32][]uint32
	freelist []uint32
	next     uint32 // next fresh id to hand out once freelist is empty
}

// New creates a heap with array 0 present and empty, as the program array.
func New() *Heap {
	h := &Heap{
		arrays: make(map[uint32][]uint32),
		next:   1,
	}
	h.arrays[0] = nil
	return h
}

// Allocate returns a fresh non-zero id mapping to n platters, all 0.
func (h *Heap) Allocate(n uint32) uint32 {
	var id uint32
	if l := len(h.freelist); l > 0 {
		id = h.freelist[l-1]
		h.freelist = h.freelist[:l-1]
	} else {
		id = h.next
		h.next++
	}
	h.arrays[id] = make([]uint32, n)
	return id
}

// Free removes the mapping for id. id == 0 and unmapped ids are Fatal.
func (h *Heap) Free(id uint32) error {
	if id == 0 {
		return newError(KindFreeZero, id, "abandonment of the program array")
	}
	if _, ok := h.arrays[id]; !ok {
		return newError(KindUnmappedID, id, "free of unmapped array")
	}
	delete(h.arrays, id)
	h.freelist = append(h.freelist, id)
	return nil
}

// Read returns heap[id][offset]. Out-of-range offset or unmapped id is Fatal.
func (h *Heap) Read(id, offset uint32) (uint32, error) {
	arr, ok := h.arrays[id]
	if !ok {
		return 0, newError(KindUnmappedID, id, "index of unmapped array")
	}
	if int(offset) >= len(arr) {
		return 0, newError(KindOutOfRange, id, "index offset out of range")
	}
	return arr[offset], nil
}

// Write stores value at heap[id][offset]. Out-of-range or unmapped id is Fatal.
func (h *Heap) Write(id, offset, value uint32) error {
	arr, ok := h.arrays[id]
	if !ok {
		return newError(KindUnmappedID, id, "amendment of unmapped array")
	}
	if int(offset) >= len(arr) {
		return newError(KindOutOfRange, id, "amendment offset out of range")
	}
	arr[offset] = value
	return nil
}

// ReplaceZeroFrom replaces array 0's contents with a deep copy of
// heap[id]. If id == 0 this is a no-op. Unmapped non-zero id is Fatal.
func (h *Heap) ReplaceZeroFrom(id uint32) error {
	if id == 0 {
		return nil
	}
	src, ok := h.arrays[id]
	if !ok {
		return newError(KindUnmappedID, id, "load-program from unmapped array")
	}
	dup := make([]uint32, len(src))
	copy(dup, src)
	h.arrays[0] = dup
	return nil
}

// SetZero installs platters as array 0 wholesale, used by the program loader.
func (h *Heap) SetZero(platters []uint32) {
	h.arrays[0] = platters
}

// Len returns the length of array 0, for the execution core's bounds check.
func (h *Heap) Len() uint32 {
	return uint32(len(h.arrays[0]))
}

// ZeroAt returns array 0's platter at offset without bounds checking;
// callers must have already checked offset < Len().
func (h *Heap) ZeroAt(offset uint32) uint32 {
	return h.arrays[0][offset]
}

// LiveIDs returns the set of currently-mapped array identifiers, for tests.
func (h *Heap) LiveIDs() []uint32 {
	ids := make([]uint32, 0, len(h.arrays))
	for id := range h.arrays {
		ids = append(ids, id)
	}
	return ids
}
