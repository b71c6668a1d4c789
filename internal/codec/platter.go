/*
 * um32 - Platter codec
 *
 * Decodes a 32-bit UM-32 instruction word into operator and operand
 * fields, and normalizes the big-endian program image to host order.
 */

package codec

// Op identifies one of the 14 UM-32 operators.
type Op uint8

const (
	OpCondMove Op = iota
	OpArrayIndex
	OpArrayAmend
	OpAdd
	OpMul
	OpDiv
	OpNand
	OpHalt
	OpAlloc
	OpFree
	OpOutput
	OpInput
	OpLoadProgram
	OpOrthography
)

// Instruction is the decoded form of one platter: a standard-form
// (op, A, B, C) triple, or for OpOrthography, A and a 25-bit Value.
type Instruction struct {
	Op    Op
	A     uint32
	B     uint32
	C     uint32
	Value uint32 // only meaningful when Op == OpOrthography
}

// Decode extracts the operator and operands from a raw platter.
// Standard form: op = bits 31..28, A = bits 8..6, B = bits 5..3, C = bits 2..0.
// Special form (op 13): A = bits 27..25, Value = bits 24..0.
func Decode(w uint32) Instruction {
	op := Op(w >> 28)
	if op == OpOrthography {
		return Instruction{
			Op:    op,
			A:     (w >> 25) & 0x7,
			Value: w & 0x01FFFFFF,
		}
	}
	return Instruction{
		Op: op,
		A:  (w >> 6) & 0x7,
		B:  (w >> 3) & 0x7,
		C:  w & 0x7,
	}
}

// DecodeBigEndian reassembles a 32-bit platter from four big-endian bytes.
func DecodeBigEndian(b0, b1, b2, b3 byte) uint32 {
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3)
}
