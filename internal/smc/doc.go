// Package smc owns the key protocol engine.
//
// Ownership boundary:
// - two-phase keyinfo/read sequencing over one record pair
// - write size verification
// - index enumeration and the value iterator
// - typed decoding of key payloads
//
// The engine issues exactly one blocking round trip per call and never
// retries. A Client is not safe for concurrent use; the underlying
// channel has no request identifiers, so there is one in-flight call
// per channel at a time.
package smc
