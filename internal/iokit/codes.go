package iokit

// Kernel return codes the tool commonly sees. The full space is opaque;
// these named values exist for tests and for the fallback Describe
// table, not for control flow.
const (
	KernSuccess         int32 = 0
	KernInvalidAddress  int32 = 1
	KernProtectionFail  int32 = 2
	KernInvalidArgument int32 = 4
	KernFailure         int32 = 5
	KernNotSupported    int32 = 46
	KernNotFound        int32 = 56
	KernNoAccess        int32 = 8
)
