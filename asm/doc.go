// Package asm assembles and disassembles programs for the 16-register,
// 256-byte Brookshear-style machine.
//
// Supported instructions:
//
//	mnemonic                op a b c          description
//	NOP                     0 F F F           no operation
//	MOV V -> Rn             2 n Vhi Vlo       R[n] <- V (immediate)
//	MOV [addr] -> Rn        1 n ahi alo       R[n] <- M[addr]
//	MOV Rm -> [addr]        3 m ahi alo       M[addr] <- R[m]
//	MOV Rm -> Rn            4 0 m n           R[n] <- R[m]
//	ADDI Rm, Rn -> Rp       5 p m n           R[p] <- R[m] + R[n] (mod 256)
//	ADDF Rm, Rn -> Rp       6 p m n           reserved, unspecified (see package vm)
//	OR Rm, Rn -> Rp         7 p m n           R[p] <- R[m] | R[n]
//	AND Rm, Rn -> Rp        8 p m n           R[p] <- R[m] & R[n]
//	XOR Rm, Rn -> Rp        9 p m n           R[p] <- R[m] ^ R[n]
//	ROT Rn, k               A n 0 k           R[n] <- rotate_right(R[n], k)
//	JMPEQ addr, Rn          B n ahi alo       if R[n]==R[0] then PC <- addr
//	JMP addr                B 0 ahi alo       PC <- addr
//	HALT                    C 0 0 0           stop
//	MOV [Rm] -> Rn          D 0 n m           R[n] <- M[R[m]]
//	MOV Rm -> [Rn]          E 0 m n           M[R[n]] <- R[m]
//	JMP Rn                  F n 0 0           PC <- R[n]
//	JMPEQ Rn, Rm            F m 0 n           if R[n]==R[0] then PC <- R[m]
//	JMPNE Rn, Rm            F m 1 n           if R[n]!=R[0] then PC <- R[m]
//	JMPGE Rn, Rm            F m 2 n           if R[n]>=R[0] then PC <- R[m]
//	JMPLE Rn, Rm            F m 3 n           if R[n]<=R[0] then PC <- R[m]
//	JMPGT Rn, Rm            F m 4 n           if R[n]>R[0] then PC <- R[m]
//	JMPLT Rn, Rm            F m 5 n           if R[n]<R[0] then PC <- R[m]
//
// Nibbles are labeled [op][a][b][c] from most to least significant: the
// first emitted byte is op<<4|a and the second is b<<4|c. Package
// internal/bitfield is the single source of truth for that packing, shared
// with the decoder in package vm.
//
// Source syntax, one statement per line:
//
//	[label:] mnemonic operands   // optional comment
//	label: DATA <literal>
//
// Comments start with // and run to end of line. Numeric literals are hex
// digits with no prefix. Register names are R followed by one hex digit,
// case-sensitive. Whitespace between tokens is flexible; , separates
// operands in arithmetic/compare forms, -> separates source from
// destination in moves, and [ ] mark a memory dereference.
//
// A DATA directive's literal may be an 8-character binary string, a
// 2-character hex byte, a single decimal digit, or a single-quoted ASCII
// string (one byte per character):
//
//	table: DATA 'AB'
//	flag:  DATA 1
package asm
