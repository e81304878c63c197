// Package vm implements the cycle-accurate emulator for the 16-register,
// 256-byte Brookshear-style machine assembled by package asm.
//
// An Instance holds 16 8-bit registers (R0..RF) and a flat 256-byte memory.
// Register R0 is not special-cased by the hardware: it is an ordinary
// register that the conditional-jump encodings happen to always compare
// against. The program counter addresses memory directly; each instruction
// occupies exactly two bytes, and Step advances it by two unless the
// instruction just executed was a taken jump.
//
// Step decodes one instruction per call; Run loops Step until the machine
// halts or a decode error occurs. Every error Step or Run can return is a
// *toolerr.Error of kind Decode: a malformed program is a construction bug
// in the assembler or the caller, not a recoverable runtime condition.
package vm
