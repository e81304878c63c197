package vm

import (
	"fmt"

	"brookshear/internal/bitfield"
	"brookshear/toolerr"
)

// Option configures an Instance at construction time.
type Option func(*Instance) error

// WithMemory loads img into memory starting at address 0. It is an error
// for img to be longer than 256 bytes.
func WithMemory(img []byte) Option {
	return func(in *Instance) error {
		if len(img) > len(in.Memory) {
			return toolerr.New(toolerr.Range, "memory image", "", fmt.Sprintf("image is %d bytes, exceeds 256-byte memory", len(img)))
		}
		copy(in.Memory[:], img)
		return nil
	}
}

// WithRegister presets register r to value v before execution starts.
func WithRegister(r, v byte) Option {
	return func(in *Instance) error {
		if r > 0xF {
			return toolerr.New(toolerr.Range, "register preset", fmt.Sprintf("R%X", r), "register index does not fit in a nibble")
		}
		in.Registers[r] = v
		return nil
	}
}

// Instance is one machine: 16 registers, 256 bytes of memory, a program
// counter and a halted flag. The zero value is a valid, empty machine; use
// New to apply Options.
type Instance struct {
	Registers [16]byte
	Memory    [256]byte
	PC        byte
	Halted    bool

	// StepCount counts completed Step calls, for diagnostics and tracing.
	StepCount int64
}

// New builds an Instance and applies opts in order.
func New(opts ...Option) (*Instance, error) {
	in := &Instance{}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Run steps the machine until it halts or Step returns an error.
func (in *Instance) Run() error {
	for !in.Halted {
		if err := in.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, decodes and executes exactly one instruction. Calling Step
// on an already-halted Instance is a no-op.
func (in *Instance) Step() error {
	if in.Halted {
		return nil
	}

	w := bitfield.NewWord(in.Memory[in.PC], in.Memory[in.PC+1])
	op := Opcode(bitfield.Nibble(w, 0))
	a := bitfield.Nibble(w, 1)
	b := bitfield.Nibble(w, 2)
	c := bitfield.Nibble(w, 3)

	jumped, err := in.execute(op, a, b, c)
	if err != nil {
		return err
	}
	in.StepCount++
	if !jumped {
		in.PC += 2
	}
	return nil
}

// execute runs one decoded instruction, returning whether it altered PC
// itself (a taken jump), in which case Step must not auto-advance it.
func (in *Instance) execute(op Opcode, a, b, c byte) (jumped bool, err error) {
	r := &in.Registers

	switch op {
	case opNop:
		return false, nil

	case OpMovLoadDirect:
		addr := b<<4 | c
		r[a] = in.Memory[addr]
		return false, nil

	case OpMovImmediate:
		r[a] = b<<4 | c
		return false, nil

	case OpMovStoreDirect:
		addr := b<<4 | c
		in.Memory[addr] = r[a]
		return false, nil

	case OpMovReg:
		r[c] = r[b]
		return false, nil

	case OpAddInt:
		r[a] = r[b] + r[c]
		return false, nil

	case OpAddFloat:
		// Unspecified by the instruction set: the reference behaves as a
		// second integer add until a float representation is defined.
		r[a] = r[b] + r[c]
		return false, nil

	case OpOr:
		r[a] = r[b] | r[c]
		return false, nil

	case OpAnd:
		r[a] = r[b] & r[c]
		return false, nil

	case OpXor:
		r[a] = r[b] ^ r[c]
		return false, nil

	case OpRot:
		r[a] = rotateRight(r[a], c)
		return false, nil

	case OpJmpImmediate:
		addr := b<<4 | c
		if a == 0 {
			in.PC = addr
			return true, nil
		}
		if r[a] == r[0] {
			in.PC = addr
			return true, nil
		}
		return false, nil

	case OpHalt:
		in.Halted = true
		return false, nil

	case OpMovLoadIndir:
		r[b] = in.Memory[r[c]]
		return false, nil

	case OpMovStoreIndir:
		in.Memory[r[c]] = r[b]
		return false, nil

	case OpJmpRegister:
		if b == 0 && c == 0 {
			in.PC = r[a]
			return true, nil
		}
		if condTest(b).eval(r[c], r[0]) {
			in.PC = r[a]
			return true, nil
		}
		return false, nil

	default:
		return false, toolerr.New(toolerr.Decode, fmt.Sprintf("pc=%02X", in.PC), fmt.Sprintf("%X", byte(op)), "unrecognized opcode family")
	}
}

// rotateRight rotates the 8-bit value v right by k bits, k taken mod 8.
func rotateRight(v, k byte) byte {
	k &= 7
	if k == 0 {
		return v
	}
	return v>>k | v<<(8-k)
}
