/*
 * um32 - Execution core
 *
 * The fetch-advance-decode-execute loop and the 14-operator dispatch.
 * Fetch is strictly followed by finger advance before the operator
 * runs, so an operator that overwrites the finger (LOADP) sees its
 * write take effect rather than being clobbered by the advance.
 *
 * No operator holds a reference into array storage across a call that
 * could resize the heap: every (id, offset) access goes back through
 * Heap.Read/Write, resolved fresh each time.
 */

package machine

import "github.com/brandonto/um32/internal/codec"

const eofSentinel = 0xFFFFFFFF

// Step executes exactly one spin cycle: fetch, advance, decode, dispatch.
// It returns the machine's resulting State. Once Halted is returned, the
// machine must not be stepped again.
func (m *Machine) Step() (State, error) {
	if m.State == Halted {
		return Halted, nil
	}
	if m.Finger >= m.Heap.Len() {
		m.State = Halted
		return Halted, nil
	}

	w := m.Heap.ZeroAt(m.Finger)
	m.Finger++

	ins := codec.Decode(w)
	if err := m.dispatch(ins); err != nil {
		m.State = Halted
		return Halted, err
	}
	return m.State, nil
}

// Run steps the machine to completion: normal halt, fall-off-the-end, or a
// Fatal error. It returns nil on normal termination.
func (m *Machine) Run() error {
	for m.State == Running {
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func opName(op codec.Op) string {
	switch op {
	case codec.OpCondMove:
		return "CMOV"
	case codec.OpArrayIndex:
		return "INDEX"
	case codec.OpArrayAmend:
		return "AMEND"
	case codec.OpAdd:
		return "ADD"
	case codec.OpMul:
		return "MUL"
	case codec.OpDiv:
		return "DIV"
	case codec.OpNand:
		return "NAND"
	case codec.OpHalt:
		return "HALT"
	case codec.OpAlloc:
		return "ALLOC"
	case codec.OpFree:
		return "FREE"
	case codec.OpOutput:
		return "OUT"
	case codec.OpInput:
		return "IN"
	case codec.OpLoadProgram:
		return "LOADP"
	case codec.OpOrthography:
		return "ORTHO"
	default:
		return "UNKNOWN"
	}
}

func (m *Machine) dispatch(ins codec.Instruction) error {
	switch ins.Op {
	case codec.OpCondMove:
		if m.Regs[ins.C] != 0 {
			m.Regs[ins.A] = m.Regs[ins.B]
		}

	case codec.OpArrayIndex:
		v, err := m.Heap.Read(m.Regs[ins.B], m.Regs[ins.C])
		if err != nil {
			return fatal(opName(ins.Op), m.Finger, err.Error(), err)
		}
		m.Regs[ins.A] = v

	case codec.OpArrayAmend:
		if err := m.Heap.Write(m.Regs[ins.A], m.Regs[ins.B], m.Regs[ins.C]); err != nil {
			return fatal(opName(ins.Op), m.Finger, err.Error(), err)
		}

	case codec.OpAdd:
		m.Regs[ins.A] = m.Regs[ins.B] + m.Regs[ins.C]

	case codec.OpMul:
		m.Regs[ins.A] = m.Regs[ins.B] * m.Regs[ins.C]

	case codec.OpDiv:
		if m.Regs[ins.C] == 0 {
			return fatal(opName(ins.Op), m.Finger, "division by zero", nil)
		}
		m.Regs[ins.A] = m.Regs[ins.B] / m.Regs[ins.C]

	case codec.OpNand:
		m.Regs[ins.A] = ^(m.Regs[ins.B] & m.Regs[ins.C])

	case codec.OpHalt:
		m.State = Halted

	case codec.OpAlloc:
		m.Regs[ins.B] = m.Heap.Allocate(m.Regs[ins.C])

	case codec.OpFree:
		if err := m.Heap.Free(m.Regs[ins.C]); err != nil {
			return fatal(opName(ins.Op), m.Finger, err.Error(), err)
		}

	case codec.OpOutput:
		v := m.Regs[ins.C]
		if v > 255 {
			return fatal(opName(ins.Op), m.Finger, "output value out of range 0..255", nil)
		}
		if err := m.Out.Put(byte(v)); err != nil {
			return fatal(opName(ins.Op), m.Finger, "output write failed", err)
		}

	case codec.OpInput:
		b, ok := m.In.Get()
		if !ok {
			m.Regs[ins.C] = eofSentinel
		} else {
			m.Regs[ins.C] = uint32(b)
		}

	case codec.OpLoadProgram:
		src := m.Regs[ins.B]
		newFinger := m.Regs[ins.C]
		if src != 0 {
			if err := m.Heap.ReplaceZeroFrom(src); err != nil {
				return fatal(opName(ins.Op), m.Finger, err.Error(), err)
			}
		}
		m.Finger = newFinger

	case codec.OpOrthography:
		m.Regs[ins.A] = ins.Value

	default:
		return fatal("UNKNOWN", m.Finger, "undefined operator", nil)
	}

	return nil
}
