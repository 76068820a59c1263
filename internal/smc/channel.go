package smc

import "github.com/danmuck/smcctl/internal/smc/wire"

// Channel is the privileged transport the engine drives. One Call is
// one round trip: the full request record goes out, a same-sized
// response record comes back. Implementations report a non-success
// status as *CallError and perform no retries or interpretation.
//
// A Channel is owned exclusively by one Client and is closed exactly
// once, by that Client.
type Channel interface {
	Call(selector uint32, req, resp *wire.Record) error
	Close() error
}
