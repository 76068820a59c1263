// Package iokit owns the platform channel boundary.
//
// Ownership boundary:
// - acquisition and release of the privileged AppleSMC connection
// - the raw struct-method call carrying one record each way
// - rendering kernel return codes as text
//
// Everything above this boundary treats the connection as an opaque
// Channel and its error codes as opaque numbers.
package iokit
