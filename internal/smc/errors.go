package smc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported reports the far side's result-132 rejection of a
	// key metadata lookup.
	ErrNotSupported = errors.New("smc: key not supported")

	// ErrInvalidArgument reports a write payload that is too long or
	// does not match the key's declared data size.
	ErrInvalidArgument = errors.New("smc: invalid argument")

	// ErrKeyListSize reports a #KEY read whose declared size is not the
	// 4 bytes the protocol requires.
	ErrKeyListSize = errors.New("smc: unexpected #KEY data size")

	// ErrClosed reports use of a client after Close.
	ErrClosed = errors.New("smc: client closed")
)

// CallError is a non-success status from the underlying channel. The
// code is opaque to the engine and surfaced verbatim; rendering it as
// text is the caller's concern.
type CallError struct {
	Code int32
}

func (e *CallError) Error() string {
	return fmt.Sprintf("smc: channel call failed: code %#08x", uint32(e.Code))
}
