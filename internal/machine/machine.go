/*
 * um32 - Machine state and initialization
 *
 * Eight general-purpose registers, an execution finger into array 0,
 * and a handle on the array heap. All state is owned exclusively by
 * this struct; registers and the finger never hold direct references
 * into array storage, only identifiers and offsets (spec.md §5).
 */

package machine

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/brandonto/um32/internal/heap"
	"github.com/brandonto/um32/internal/ioport"
)

// State is the machine's run state: two values, Running and Halted,
// with Halted terminal.
type State int

const (
	Running State = iota
	Halted
)

func (s State) String() string {
	if s == Halted {
		return "halted"
	}
	return "running"
}

// Machine holds all UM-32 execution state.
type Machine struct {
	Regs   [8]uint32
	Finger uint32
	Heap   *heap.Heap
	State  State

	In  ioport.Source
	Out ioport.Sink
}

// New creates a machine with all registers and the finger zeroed, array 0
// empty, and the given I/O ports. In/Out may be nil; Step panics only if an
// IN/OUT operator is actually reached with a nil port, which a well-formed
// caller avoids by always supplying both.
func New(in ioport.Source, out ioport.Sink) *Machine {
	return &Machine{
		Heap:  heap.New(),
		State: Running,
		In:    in,
		Out:   out,
	}
}

// LoadProgram reads a byte source of length 4*L bytes, decodes each 4-byte
// big-endian group as a platter, installs the resulting length-L sequence as
// array 0, and resets the finger to 0. A source whose length is not a
// multiple of 4 is FailLoad.
func (m *Machine) LoadProgram(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return &FailLoadError{Reason: err.Error()}
	}
	if len(raw)%4 != 0 {
		return &FailLoadError{Reason: fmt.Sprintf("image length %d is not a multiple of 4", len(raw))}
	}
	platters := make([]uint32, len(raw)/4)
	for i := range platters {
		platters[i] = binary.BigEndian.Uint32(raw[i*4 : i*4+4])
	}
	m.Heap.SetZero(platters)
	m.Finger = 0
	m.State = Running
	return nil
}
