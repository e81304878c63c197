package vm

import (
	"testing"

	"brookshear/toolerr"
)

func newWithImage(t *testing.T, img []byte) *Instance {
	t.Helper()
	in, err := New(WithMemory(img))
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return in
}

func TestStepNop(t *testing.T) {
	in := newWithImage(t, []byte{0x0F, 0xFF})
	if err := in.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if in.PC != 2 {
		t.Errorf("PC = %d, want 2", in.PC)
	}
	if in.Halted {
		t.Errorf("Halted = true after NOP")
	}
}

func TestStepHalt(t *testing.T) {
	in := newWithImage(t, []byte{0xC0, 0x00})
	if err := in.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !in.Halted {
		t.Errorf("Halted = false after HALT")
	}
	// Stepping again is a no-op.
	pc := in.PC
	if err := in.Step(); err != nil {
		t.Fatalf("Step after halt: %v", err)
	}
	if in.PC != pc {
		t.Errorf("PC moved after halted Step: %d -> %d", pc, in.PC)
	}
}

func TestMovImmediateAndAdd(t *testing.T) {
	// MOV 05 -> R1 ; MOV 03 -> R2 ; ADDI R1,R2 -> R3 ; HALT
	img := []byte{0x21, 0x05, 0x22, 0x03, 0x53, 0x12, 0xC0, 0x00}
	in := newWithImage(t, img)
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.Registers[3] != 8 {
		t.Errorf("R3 = %d, want 8", in.Registers[3])
	}
	if in.Registers[1] != 5 || in.Registers[2] != 3 {
		t.Errorf("R1=%d R2=%d, want 5,3", in.Registers[1], in.Registers[2])
	}
}

func TestAddIntWrapsModulo256(t *testing.T) {
	img := []byte{0x21, 0xFF, 0x22, 0x02, 0x53, 0x12, 0xC0, 0x00}
	in := newWithImage(t, img)
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.Registers[3] != 0x01 {
		t.Errorf("R3 = %02X, want 01 (wrapped)", in.Registers[3])
	}
}

func TestLogicalOps(t *testing.T) {
	cases := []struct {
		name   string
		opWord []byte
		r1, r2 byte
		want   byte
	}{
		{"or", []byte{0x73, 0x12}, 0x0F, 0xF0, 0xFF},
		{"and", []byte{0x83, 0x12}, 0x0F, 0xFF, 0x0F},
		{"xor", []byte{0x93, 0x12}, 0xFF, 0x0F, 0xF0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img := append([]byte{0x21, tc.r1, 0x22, tc.r2}, tc.opWord...)
			img = append(img, 0xC0, 0x00)
			in := newWithImage(t, img)
			if err := in.Run(); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if in.Registers[3] != tc.want {
				t.Errorf("R3 = %02X, want %02X", in.Registers[3], tc.want)
			}
		})
	}
}

func TestRotateRight(t *testing.T) {
	// MOV 01 -> R1 ; ROT R1, 1 ; HALT : 0x01 rotated right by 1 = 0x80.
	img := []byte{0x21, 0x01, 0xA1, 0x01, 0xC0, 0x00}
	in := newWithImage(t, img)
	if err := in.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.Registers[1] != 0x80 {
		t.Errorf("R1 = %02X, want 80", in.Registers[1])
	}
}

func TestJumpImmediateUnconditional(t *testing.T) {
	// JMP 04 ; HALT (skipped) ; HALT
	img := []byte{0xB0, 0x04, 0xC0, 0x00, 0xC0, 0x00}
	in := newWithImage(t, img)
	if err := in.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if in.PC != 4 {
		t.Errorf("PC = %d, want 4", in.PC)
	}
}

func TestJumpImmediateConditional(t *testing.T) {
	// R3 == R0 (both zero) so JMPEQ 04, R3 should jump.
	img := []byte{0xB3, 0x04, 0xC0, 0x00, 0xC0, 0x00}
	in := newWithImage(t, img)
	if err := in.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if in.PC != 4 {
		t.Errorf("PC = %d, want 4 (condition true)", in.PC)
	}
}

func TestJumpRegisterUnconditional(t *testing.T) {
	// MOV 06 -> R2 ; JMP R2 ; HALT (skipped) ; HALT
	img := []byte{0x22, 0x06, 0xF2, 0x00, 0xC0, 0x00, 0xC0, 0x00}
	in := newWithImage(t, img)
	if err := in.Step(); err != nil {
		t.Fatalf("Step (mov): %v", err)
	}
	if err := in.Step(); err != nil {
		t.Fatalf("Step (jmp): %v", err)
	}
	if in.PC != 6 {
		t.Errorf("PC = %d, want 6", in.PC)
	}
}

func TestJumpRegisterConditionalTests(t *testing.T) {
	cases := []struct {
		name     string
		testCode byte
		r0, rn   byte
		want     bool
	}{
		{"eq true", 0, 5, 5, true},
		{"eq false", 0, 5, 6, false},
		{"ne true", 1, 5, 6, true},
		{"ge true", 2, 5, 5, true},
		{"le true", 3, 5, 5, true},
		{"gt false", 4, 6, 5, false}, // R[n]=5 > R[0]=6 is false
		{"lt true", 5, 6, 5, true},  // R[n]=5 < R[0]=6
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := newWithImage(t, nil)
			in.Registers[0] = tc.r0
			in.Registers[3] = tc.rn // compared register Rn = R3
			in.Registers[1] = 6     // target register Rm = R1, holds address 6
			in.Memory[0], in.Memory[1] = 0xF1, tc.testCode<<4|0x3
			if err := in.Step(); err != nil {
				t.Fatalf("Step: %v", err)
			}
			wantPC := byte(0)
			if tc.want {
				wantPC = 6
			} else {
				wantPC = 2
			}
			if in.PC != wantPC {
				t.Errorf("PC = %d, want %d", in.PC, wantPC)
			}
		})
	}
}

func TestMovIndirect(t *testing.T) {
	// R4 = 10 (address). Memory[10] = 0x99. MOV [R4] -> R2 loads 0x99 into R2.
	in := newWithImage(t, nil)
	in.Registers[4] = 10
	in.Memory[10] = 0x99
	in.Memory[0], in.Memory[1] = 0xD0, 0x24 // MOV [R4] -> R2
	if err := in.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if in.Registers[2] != 0x99 {
		t.Errorf("R2 = %02X, want 99", in.Registers[2])
	}
}

func TestMovIndirectStore(t *testing.T) {
	in := newWithImage(t, nil)
	in.Registers[2] = 0x55
	in.Registers[4] = 20
	in.Memory[0], in.Memory[1] = 0xE0, 0x24 // MOV R2 -> [R4]
	if err := in.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if in.Memory[20] != 0x55 {
		t.Errorf("Memory[20] = %02X, want 55", in.Memory[20])
	}
}

func TestDecodeErrorOnInvalidOpcode(t *testing.T) {
	// all sixteen op nibbles 0x0-0xF are defined, so a decode error cannot
	// arise from a top nibble; execute's default case exists for defense of
	// the Opcode type's invariant and is exercised directly here.
	in := newWithImage(t, nil)
	_, err := in.execute(Opcode(0x10), 0, 0, 0)
	if err == nil {
		t.Fatalf("execute: expected a decode error")
	}
	if !toolerr.Is(err, toolerr.Decode) {
		t.Errorf("execute: error %v is not a Decode error", err)
	}
}

func TestWithMemoryRejectsOversizedImage(t *testing.T) {
	_, err := New(WithMemory(make([]byte, 257)))
	if err == nil {
		t.Fatalf("New: expected a range error for an oversized image")
	}
	if !toolerr.Is(err, toolerr.Range) {
		t.Errorf("New: error %v is not a Range error", err)
	}
}
