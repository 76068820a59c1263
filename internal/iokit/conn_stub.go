//go:build !darwin || !cgo

package iokit

import (
	"errors"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

var ErrUnsupportedPlatform = errors.New("iokit: SMC access requires darwin with cgo")

// Open fails off darwin; the SMC only exists behind IOKit.
func Open() (*Conn, error) {
	return nil, ErrUnsupportedPlatform
}

// Conn is never handed out on this platform; the methods exist so the
// type satisfies smc.Channel everywhere the tool builds.
type Conn struct{}

func (c *Conn) Call(selector uint32, req, resp *wire.Record) error {
	return ErrUnsupportedPlatform
}

func (c *Conn) Close() error {
	return ErrUnsupportedPlatform
}
