package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"brookshear/internal/bitfield"
	"brookshear/toolerr"
)

// Assemble reads a complete source program from r and produces its
// instruction bytes, data bytes and label table. It is fatal-on-first-error:
// no partial Program is returned when err is non-nil.
func Assemble(r io.Reader) (*Program, error) {
	instrLines, labels, data, err := clean(r)
	if err != nil {
		return nil, err
	}
	finalLabels, substituted, err := resolve(instrLines, labels, data)
	if err != nil {
		return nil, err
	}

	instructions := make([]byte, 0, 2*len(substituted))
	for i, line := range substituted {
		where := fmt.Sprintf("instruction %d", i+1)
		hi, lo, eerr := encodeLine(where, line)
		if eerr != nil {
			return nil, eerr
		}
		instructions = append(instructions, hi, lo)
	}

	return &Program{Instructions: instructions, Data: data, Labels: finalLabels}, nil
}

// tokenize splits a fully-substituted instruction line into its words,
// padding the punctuation that separates operands so each becomes its own
// token.
func tokenize(line string) []string {
	r := strings.NewReplacer(
		"->", " -> ",
		",", " , ",
		"[", " [ ",
		"]", " ] ",
	)
	return strings.Fields(r.Replace(line))
}

// encodeLine matches a tokenized instruction line against exactly one of the
// package's supported shapes and packs it into two bytes.
func encodeLine(where, line string) (hi, lo byte, err error) {
	tok := tokenize(line)
	if len(tok) == 0 {
		return 0, 0, toolerr.New(toolerr.Syntax, where, line, "empty instruction")
	}

	mnemonic := tok[0]
	rest := tok[1:]

	switch mnemonic {
	case "NOP":
		if len(rest) != 0 {
			return 0, 0, shapeErr(where, line)
		}
		return pack(0x0, 0xF, 0xF, 0xF)

	case "HALT":
		if len(rest) != 0 {
			return 0, 0, shapeErr(where, line)
		}
		return pack(0xC, 0x0, 0x0, 0x0)

	case "MOV":
		return encodeMov(where, line, rest)

	case "ADDI":
		return encodeTriReg(where, line, rest, 0x5)

	case "ADDF":
		return encodeTriReg(where, line, rest, 0x6)

	case "OR":
		return encodeTriReg(where, line, rest, 0x7)

	case "AND":
		return encodeTriReg(where, line, rest, 0x8)

	case "XOR":
		return encodeTriReg(where, line, rest, 0x9)

	case "ROT":
		return encodeRot(where, line, rest)

	case "JMP":
		return encodeJmp(where, line, rest)

	case "JMPEQ":
		return encodeCondJmp(where, line, rest, 0)
	case "JMPNE":
		return encodeCondJmp(where, line, rest, 1)
	case "JMPGE":
		return encodeCondJmp(where, line, rest, 2)
	case "JMPLE":
		return encodeCondJmp(where, line, rest, 3)
	case "JMPGT":
		return encodeCondJmp(where, line, rest, 4)
	case "JMPLT":
		return encodeCondJmp(where, line, rest, 5)

	default:
		return 0, 0, toolerr.New(toolerr.Syntax, where, mnemonic, "unknown mnemonic")
	}
}

func pack(op, a, b, c byte) (byte, byte, error) {
	hi, lo := bitfield.PackBytes(op, a, b, c)
	return hi, lo, nil
}

func shapeErr(where, line string) error {
	return toolerr.New(toolerr.Syntax, where, line, "operands do not match any known shape for this mnemonic")
}

// encodeMov dispatches the six MOV shapes:
//
//	MOV V -> Rn          (immediate load)
//	MOV [addr] -> Rn      (direct load)
//	MOV Rm -> [addr]      (direct store)
//	MOV Rm -> Rn          (register copy)
//	MOV [Rm] -> Rn        (indirect load)
//	MOV Rm -> [Rn]        (indirect store)
func encodeMov(where, line string, rest []string) (byte, byte, error) {
	arrow := indexOf(rest, "->")
	if arrow < 0 || arrow == 0 || arrow == len(rest)-1 {
		return 0, 0, shapeErr(where, line)
	}
	src := rest[:arrow]
	dst := rest[arrow+1:]

	switch {
	case len(src) == 3 && src[0] == "[" && src[2] == "]" && len(dst) == 1:
		// MOV [Rm] -> Rn
		if isRegister(src[1]) {
			m, err := regIndex(where, src[1])
			if err != nil {
				return 0, 0, err
			}
			n, err := regOperand(where, dst[0])
			if err != nil {
				return 0, 0, err
			}
			return pack(0xD, 0x0, n, m)
		}
		// MOV [addr] -> Rn
		addr, err := byteLiteral(where, src[1])
		if err != nil {
			return 0, 0, err
		}
		n, err := regOperand(where, dst[0])
		if err != nil {
			return 0, 0, err
		}
		hib, lob := splitByteNibbles(addr)
		return pack(0x1, n, hib, lob)

	case len(src) == 1 && len(dst) == 3 && dst[0] == "[" && dst[2] == "]":
		// MOV Rm -> [Rn]  or  MOV Rm -> [addr]
		m, err := regOperand(where, src[0])
		if err != nil {
			return 0, 0, err
		}
		if isRegister(dst[1]) {
			n, err := regIndex(where, dst[1])
			if err != nil {
				return 0, 0, err
			}
			return pack(0xE, 0x0, m, n)
		}
		addr, err := byteLiteral(where, dst[1])
		if err != nil {
			return 0, 0, err
		}
		hib, lob := splitByteNibbles(addr)
		return pack(0x3, m, hib, lob)

	case len(src) == 1 && len(dst) == 1 && isRegister(src[0]) && isRegister(dst[0]):
		// MOV Rm -> Rn
		m, err := regIndex(where, src[0])
		if err != nil {
			return 0, 0, err
		}
		n, err := regIndex(where, dst[0])
		if err != nil {
			return 0, 0, err
		}
		return pack(0x4, 0x0, m, n)

	case len(src) == 1 && len(dst) == 1:
		// MOV V -> Rn
		v, err := byteLiteral(where, src[0])
		if err != nil {
			return 0, 0, err
		}
		n, err := regOperand(where, dst[0])
		if err != nil {
			return 0, 0, err
		}
		hib, lob := splitByteNibbles(v)
		return pack(0x2, n, hib, lob)

	default:
		return 0, 0, shapeErr(where, line)
	}
}

// encodeTriReg dispatches the <MNEMONIC> Rm , Rn -> Rp shape shared by
// ADDI, ADDF, OR, AND and XOR.
func encodeTriReg(where, line string, rest []string, op byte) (byte, byte, error) {
	comma := indexOf(rest, ",")
	arrow := indexOf(rest, "->")
	if comma != 1 || arrow != 3 || len(rest) != 5 {
		return 0, 0, shapeErr(where, line)
	}
	m, err := regOperand(where, rest[0])
	if err != nil {
		return 0, 0, err
	}
	n, err := regOperand(where, rest[2])
	if err != nil {
		return 0, 0, err
	}
	p, err := regOperand(where, rest[4])
	if err != nil {
		return 0, 0, err
	}
	return pack(op, p, m, n)
}

// encodeRot dispatches ROT Rn , k.
func encodeRot(where, line string, rest []string) (byte, byte, error) {
	comma := indexOf(rest, ",")
	if comma != 1 || len(rest) != 3 {
		return 0, 0, shapeErr(where, line)
	}
	n, err := regOperand(where, rest[0])
	if err != nil {
		return 0, 0, err
	}
	k, err := nibbleLiteral(where, rest[2])
	if err != nil {
		return 0, 0, err
	}
	return pack(0xA, n, 0x0, k)
}

// encodeJmp dispatches the unconditional forms: JMP addr and JMP Rn.
func encodeJmp(where, line string, rest []string) (byte, byte, error) {
	if len(rest) != 1 {
		return 0, 0, shapeErr(where, line)
	}
	if isRegister(rest[0]) {
		n, err := regIndex(where, rest[0])
		if err != nil {
			return 0, 0, err
		}
		return pack(0xF, n, 0x0, 0x0)
	}
	addr, err := byteLiteral(where, rest[0])
	if err != nil {
		return 0, 0, err
	}
	hib, lob := splitByteNibbles(addr)
	return pack(0xB, 0x0, hib, lob)
}

// encodeCondJmp dispatches the conditional forms. JMPEQ addr, Rn is the
// immediate-target shape (B-family); every JMPcc Rn, Rm is the
// register-target shape (F-family, test code in nibble b).
func encodeCondJmp(where, line string, rest []string, testCode byte) (byte, byte, error) {
	comma := indexOf(rest, ",")
	if comma != 1 || len(rest) != 3 {
		return 0, 0, shapeErr(where, line)
	}
	if testCode == 0 && !isRegister(rest[0]) {
		// JMPEQ addr, Rn
		addr, err := byteLiteral(where, rest[0])
		if err != nil {
			return 0, 0, err
		}
		n, err := regOperand(where, rest[2])
		if err != nil {
			return 0, 0, err
		}
		hib, lob := splitByteNibbles(addr)
		return pack(0xB, n, hib, lob)
	}
	// JMPcc Rn, Rm: target is the value held in Rm, compared register is Rn.
	n, err := regOperand(where, rest[0])
	if err != nil {
		return 0, 0, err
	}
	m, err := regOperand(where, rest[2])
	if err != nil {
		return 0, 0, err
	}
	return pack(0xF, m, testCode, n)
}

func indexOf(tok []string, s string) int {
	for i, t := range tok {
		if t == s {
			return i
		}
	}
	return -1
}

func isRegister(tok string) bool {
	return len(tok) == 2 && (tok[0] == 'R') && isHexDigit(tok[1])
}

// regIndex parses a register token already known to match isRegister.
func regIndex(where, tok string) (byte, error) {
	v, err := strconv.ParseUint(tok[1:2], 16, 8)
	if err != nil {
		return 0, toolerr.New(toolerr.Syntax, where, tok, "malformed register operand")
	}
	return byte(v), nil
}

// regOperand parses a token expected to be a register, raising Syntax if it
// is not of the form Rn.
func regOperand(where, tok string) (byte, error) {
	if !isRegister(tok) {
		return 0, toolerr.New(toolerr.Syntax, where, tok, "expected a register operand Rn")
	}
	return regIndex(where, tok)
}

// byteLiteral parses a two-hex-digit address/immediate byte. An
// identifier-shaped, non-hex token that is not two characters long is a
// name resolve found no binding for and raises Resolution; any other
// malformed token raises Syntax.
func byteLiteral(where, tok string) (byte, error) {
	if len(tok) != 2 || !isHex(tok) {
		if len(tok) != 2 && !isHex(tok) && looksLikeIdentifier(tok) {
			return 0, toolerr.New(toolerr.Resolution, where, tok, "unresolved identifier")
		}
		return 0, toolerr.New(toolerr.Syntax, where, tok, "expected a 2-digit hex byte")
	}
	v, err := strconv.ParseUint(tok, 16, 8)
	if err != nil {
		return 0, toolerr.New(toolerr.Range, where, tok, "value does not fit in 8 bits")
	}
	return byte(v), nil
}

// nibbleLiteral parses a single hex digit rotate amount.
func nibbleLiteral(where, tok string) (byte, error) {
	if len(tok) != 1 || !isHexDigit(tok[0]) {
		return 0, toolerr.New(toolerr.Syntax, where, tok, "expected a single hex digit")
	}
	v, err := strconv.ParseUint(tok, 16, 8)
	if err != nil {
		return 0, toolerr.New(toolerr.Range, where, tok, "value does not fit in 4 bits")
	}
	return byte(v), nil
}

func splitByteNibbles(b byte) (hi, lo byte) {
	return b >> 4, b & 0xF
}

func looksLikeIdentifier(tok string) bool {
	if tok == "" {
		return false
	}
	for _, c := range tok {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
