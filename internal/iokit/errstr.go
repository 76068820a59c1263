//go:build !darwin || !cgo

package iokit

import "fmt"

// Describe renders a kernel return code as text. Display only; nothing
// branches on the rendered string. Off darwin there is no
// mach_error_string, so a table of the common codes stands in.
func Describe(code int32) string {
	if s, ok := kernErrors[code]; ok {
		return s
	}
	return fmt.Sprintf("unknown error %#08x", uint32(code))
}

var kernErrors = map[int32]string{
	KernSuccess:         "(os/kern) successful",
	KernInvalidAddress:  "(os/kern) invalid address",
	KernProtectionFail:  "(os/kern) protection failure",
	KernInvalidArgument: "(os/kern) invalid argument",
	KernFailure:         "(os/kern) failure",
	KernNotSupported:    "(os/kern) not supported",
	KernNotFound:        "(os/kern) not found",
	KernNoAccess:        "(os/kern) no access",
}
