// Package cursor provides a rewindable position over a buffered character sequence.
//
// A Cursor is a small value: copying it produces an independent fork that shares the
// underlying buffer, so speculative matches can be attempted and then either committed
// back into the original or simply dropped.
package cursor
