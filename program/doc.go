// Package program encodes instructions for, and decodes accounts of, the Pyth
// Lazer Solana program.
//
// The program is an Anchor program: every instruction starts with the first
// eight bytes of sha256("global:<instruction>") and every account with the
// first eight bytes of sha256("account:<Type>"). Arguments and account fields
// are Borsh encoded.
package program
