package vm

import "brookshear/asm"

// WithProgram loads an assembled asm.Program's instruction and data bytes
// into memory at their assembled addresses: instructions at 0, data
// immediately following.
func WithProgram(p *asm.Program) Option {
	return WithMemory(p.Image())
}
