package smc

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/smcctl/internal/smc/wire"
)

// Client drives the key protocol over one exclusively-owned channel.
// It is synchronous: every operation is a single blocking
// request/response exchange (or a short fixed sequence of them) and
// must not be invoked concurrently.
type Client struct {
	ch        Channel
	closeOnce sync.Once
	closeErr  error
	closed    bool
}

// NewClient takes exclusive ownership of ch. The channel is released by
// Close and by nothing else.
func NewClient(ch Channel) *Client {
	return &Client{ch: ch}
}

// Close releases the channel. Safe to call more than once; the channel
// itself is closed exactly once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		c.closeErr = c.ch.Close()
	})
	return c.closeErr
}

func (c *Client) call(in, out *wire.Record) error {
	if c.closed {
		return ErrClosed
	}
	return c.ch.Call(wire.KernelIndexSMC, in, out)
}

// keyInfoPhase issues the metadata lookup for in.Key. The caller
// prepares in; out receives the populated key-info sub-record.
func (c *Client) keyInfoPhase(in, out *wire.Record) error {
	in.Command = wire.CmdReadKeyInfo
	if err := c.call(in, out); err != nil {
		return err
	}
	if out.Result == wire.ResultNotSupported {
		return fmt.Errorf("%w: %s", ErrNotSupported, in.Key)
	}
	return nil
}

// readPhase issues the payload read using the metadata a preceding
// keyInfoPhase left in out. The same record pair is threaded through
// both phases: the far side validates that the request echoes the
// size/type it just reported, so the records must not be re-zeroed
// between phases.
func (c *Client) readPhase(in, out *wire.Record) (KeyValue, error) {
	kv := KeyValue{Key: in.Key, Info: out.Info}
	in.Info.Size = out.Info.Size
	in.Info.Type = out.Info.Type
	in.Command = wire.CmdReadBytes
	if err := c.call(in, out); err != nil {
		return KeyValue{}, err
	}
	kv.Bytes = out.Bytes
	return kv, nil
}

// GetKeyInfo fetches a key's metadata without reading its value.
func (c *Client) GetKeyInfo(key wire.Key) (wire.KeyInfo, error) {
	in := wire.Record{Key: key}
	var out wire.Record
	if err := c.keyInfoPhase(&in, &out); err != nil {
		return wire.KeyInfo{}, err
	}
	return out.Info, nil
}

// ReadKey reads a key's current value. The metadata lookup and the
// payload read are one logical operation over a single record pair.
func (c *Client) ReadKey(key wire.Key) (KeyValue, error) {
	in := wire.Record{Key: key}
	var out wire.Record
	if err := c.keyInfoPhase(&in, &out); err != nil {
		return KeyValue{}, err
	}
	kv, err := c.readPhase(&in, &out)
	if err != nil {
		return KeyValue{}, err
	}
	log.Debug().
		Str("key", key.String()).
		Str("type", kv.Info.Type.String()).
		Uint32("size", kv.Info.Size).
		Msg("smc read")
	return kv, nil
}

// WriteKey stores value under key. The key's declared data size must
// exactly equal len(value); the check reads the key first and rejects a
// mismatch before any write call is issued, preventing partial or
// misaligned writes. Usually requires elevated privileges.
func (c *Client) WriteKey(key wire.Key, value []byte) error {
	if len(value) > wire.BytesLen {
		return fmt.Errorf("%w: payload %d bytes exceeds %d", ErrInvalidArgument, len(value), wire.BytesLen)
	}
	current, err := c.ReadKey(key)
	if err != nil {
		return err
	}
	if current.Info.Size != uint32(len(value)) {
		return fmt.Errorf("%w: key %s holds %d bytes, payload is %d",
			ErrInvalidArgument, key, current.Info.Size, len(value))
	}

	in := wire.Record{
		Key:     key,
		Command: wire.CmdWriteBytes,
		Info:    wire.KeyInfo{Size: uint32(len(value))},
	}
	copy(in.Bytes[:], value)
	var out wire.Record
	if err := c.call(&in, &out); err != nil {
		return err
	}
	log.Debug().
		Str("key", key.String()).
		Int("size", len(value)).
		Msg("smc write")
	return nil
}

// KeysCount reads the reserved #KEY register holding the total number
// of keys. Its payload is a big-endian 32-bit count and must be exactly
// 4 bytes; anything else is a protocol violation.
func (c *Client) KeysCount() (uint32, error) {
	kv, err := c.ReadKey(wire.KeyListKey)
	if err != nil {
		return 0, err
	}
	if kv.Info.Size != 4 {
		return 0, fmt.Errorf("%w: %d", ErrKeyListSize, kv.Info.Size)
	}
	return binary.BigEndian.Uint32(kv.Bytes[:4]), nil
}

// readIndexPhase maps a 0-based index to its key, leaving the key in
// out.Key. First sub-phase of an enumeration step.
func (c *Client) readIndexPhase(index uint32, in, out *wire.Record) error {
	in.Command = wire.CmdReadIndex
	in.Index = index
	return c.call(in, out)
}

// ReadIndex reads the value of the index-th key. The three sub-phases
// (index lookup, metadata, payload) share one record pair.
func (c *Client) ReadIndex(index uint32) (KeyValue, error) {
	var in, out wire.Record
	if err := c.readIndexPhase(index, &in, &out); err != nil {
		return KeyValue{}, err
	}
	in.Key = out.Key
	if err := c.keyInfoPhase(&in, &out); err != nil {
		return KeyValue{}, err
	}
	return c.readPhase(&in, &out)
}

// ListAll eagerly reads every key, silently dropping any index that
// fails at any step. Use Values when per-step failure detail matters.
func (c *Client) ListAll() ([]KeyValue, error) {
	total, err := c.KeysCount()
	if err != nil {
		return nil, err
	}
	values := make([]KeyValue, 0, total)
	skipped := 0
	for i := uint32(0); i < total; i++ {
		kv, err := c.ReadIndex(i)
		if err != nil {
			skipped++
			continue
		}
		values = append(values, kv)
	}
	log.Debug().
		Uint32("total", total).
		Int("skipped", skipped).
		Msg("smc list")
	return values, nil
}
