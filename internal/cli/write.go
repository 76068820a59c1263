package cli

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

var ErrBadPayload = errors.New("cli: malformed hex payload")

// NewWriteCommand creates the write command.
func NewWriteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "write KEY HEXVALUE",
		Short: "Write a value to a key",
		Long: `Write raw bytes to a key. The value is hex pairs without a 0x prefix:
to write the three bytes 0x03 0x10 0x00, pass 031000. An empty string
writes zero bytes, for keys that declare a zero data size. The payload
length must match the key's declared data size exactly. Usually requires
root.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(opts, args[0], args[1])
		},
	}
}

// ParsePayload turns a hex-pair string into write bytes. An empty
// string is a zero-byte payload. Boundary validation only; the engine
// enforces the key's declared size.
func ParsePayload(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: want an even number of hex digits", ErrBadPayload)
	}
	if len(s)/2 > wire.BytesLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d-byte payload limit", ErrBadPayload, len(s)/2, wire.BytesLen)
	}
	payload, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadPayload, s)
	}
	return payload, nil
}

func runWrite(opts *RootOptions, name, value string) error {
	key, err := wire.ParseKey(name)
	if err != nil {
		return err
	}
	payload, err := ParsePayload(value)
	if err != nil {
		return err
	}
	c, err := opts.OpenEngine()
	if err != nil {
		return err
	}
	defer c.Close()

	return c.WriteKey(key, payload)
}
