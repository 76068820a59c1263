// Package wire owns the SMC call contract and record codec.
//
// Ownership boundary:
// - fixed 80-byte call record layout and offsets
// - key and type-tag four-character codes
// - opcode, selector, and result constants
package wire
