package asm

import (
	"fmt"
	"strings"

	"brookshear/internal/bitfield"
)

// Disassemble renders each instruction word in instructions as one mnemonic line,
// best-effort: it never fails, since every op nibble corresponds to exactly
// one decoded family even when the operands are semantically meaningless.
func Disassemble(instructions []byte) []string {
	lines := make([]string, 0, len(instructions)/2)
	for i := 0; i+1 < len(instructions); i += 2 {
		w := bitfield.NewWord(instructions[i], instructions[i+1])
		lines = append(lines, disassembleWord(w))
	}
	return lines
}

func disassembleWord(w bitfield.Word) string {
	op := bitfield.Nibble(w, 0)
	a := bitfield.Nibble(w, 1)
	b := bitfield.Nibble(w, 2)
	c := bitfield.Nibble(w, 3)

	switch op {
	case 0x0:
		return "NOP"
	case 0x1:
		return fmt.Sprintf("MOV [%02X] -> R%X", b<<4|c, a)
	case 0x2:
		return fmt.Sprintf("MOV %02X -> R%X", b<<4|c, a)
	case 0x3:
		return fmt.Sprintf("MOV R%X -> [%02X]", a, b<<4|c)
	case 0x4:
		return fmt.Sprintf("MOV R%X -> R%X", b, c)
	case 0x5:
		return fmt.Sprintf("ADDI R%X , R%X -> R%X", b, c, a)
	case 0x6:
		return fmt.Sprintf("ADDF R%X , R%X -> R%X", b, c, a)
	case 0x7:
		return fmt.Sprintf("OR R%X , R%X -> R%X", b, c, a)
	case 0x8:
		return fmt.Sprintf("AND R%X , R%X -> R%X", b, c, a)
	case 0x9:
		return fmt.Sprintf("XOR R%X , R%X -> R%X", b, c, a)
	case 0xA:
		return fmt.Sprintf("ROT R%X , %X", a, c)
	case 0xB:
		if a == 0 {
			return fmt.Sprintf("JMP %02X", b<<4|c)
		}
		return fmt.Sprintf("JMPEQ %02X , R%X", b<<4|c, a)
	case 0xC:
		return "HALT"
	case 0xD:
		return fmt.Sprintf("MOV [R%X] -> R%X", c, b)
	case 0xE:
		return fmt.Sprintf("MOV R%X -> [R%X]", b, c)
	case 0xF:
		if b == 0 && c == 0 {
			return fmt.Sprintf("JMP R%X", a)
		}
		return fmt.Sprintf("%s R%X , R%X", condMnemonic(b), c, a)
	default:
		return fmt.Sprintf("; invalid opcode %X", op)
	}
}

func condMnemonic(testCode byte) string {
	switch testCode {
	case 0:
		return "JMPEQ"
	case 1:
		return "JMPNE"
	case 2:
		return "JMPGE"
	case 3:
		return "JMPLE"
	case 4:
		return "JMPGT"
	case 5:
		return "JMPLT"
	default:
		return "JMP?"
	}
}

// String renders a disassembly listing, one instruction per line.
func String(instructions []byte) string {
	return strings.Join(Disassemble(instructions), "\n")
}
