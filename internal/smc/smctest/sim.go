// Package smctest provides an in-memory channel speaking the real wire
// format against a fixed key table, with per-key fault injection. It
// exists so the protocol engine can be exercised without hardware.
package smctest

import (
	"encoding/binary"

	"github.com/danmuck/smcctl/internal/iokit"
	"github.com/danmuck/smcctl/internal/smc"
	"github.com/danmuck/smcctl/internal/smc/wire"
)

// Entry is one simulated key: its type tag and current payload.
type Entry struct {
	Key        wire.Key
	Type       wire.TypeTag
	Bytes      []byte
	Attributes uint8
}

// E builds an entry from string codes. Panics on malformed codes; test
// fixtures only.
func E(key, typ string, payload ...byte) Entry {
	k, err := wire.ParseKey(key)
	if err != nil {
		panic(err)
	}
	if len(typ) != 4 {
		panic("smctest: type tag must be 4 characters: " + typ)
	}
	var tag wire.TypeTag
	copy(tag[:], typ)
	return Entry{Key: k, Type: tag, Bytes: payload}
}

// Sim is a Channel backed by an ordered key table. Index order is table
// order. The reserved #KEY register is synthesized from the table
// length unless an explicit override is installed.
type Sim struct {
	entries []Entry
	byKey   map[wire.Key]int

	notSupported map[wire.Key]bool
	failKeyInfo  map[wire.Key]int32
	failRead     map[wire.Key]int32
	failWrite    map[wire.Key]int32
	failIndex    map[uint32]int32

	keyList *Entry

	Calls      int
	CloseCalls int
	closed     bool
}

func New(entries ...Entry) *Sim {
	s := &Sim{
		entries:      entries,
		byKey:        make(map[wire.Key]int, len(entries)),
		notSupported: make(map[wire.Key]bool),
		failKeyInfo:  make(map[wire.Key]int32),
		failRead:     make(map[wire.Key]int32),
		failWrite:    make(map[wire.Key]int32),
		failIndex:    make(map[uint32]int32),
	}
	for i, e := range entries {
		s.byKey[e.Key] = i
	}
	return s
}

// MarkNotSupported makes metadata lookups for key come back with the
// result-132 sentinel.
func (s *Sim) MarkNotSupported(key wire.Key) { s.notSupported[key] = true }

// FailKeyInfo injects a channel status on the metadata call for key.
func (s *Sim) FailKeyInfo(key wire.Key, code int32) { s.failKeyInfo[key] = code }

// FailRead injects a channel status on the payload read for key.
func (s *Sim) FailRead(key wire.Key, code int32) { s.failRead[key] = code }

// FailWrite injects a channel status on writes to key.
func (s *Sim) FailWrite(key wire.Key, code int32) { s.failWrite[key] = code }

// FailIndex injects a channel status on the index lookup for index.
func (s *Sim) FailIndex(index uint32, code int32) { s.failIndex[index] = code }

// OverrideKeyList replaces the synthesized #KEY register, e.g. to
// present a count with a wrong declared size.
func (s *Sim) OverrideKeyList(typ wire.TypeTag, payload []byte) {
	s.keyList = &Entry{Key: wire.KeyListKey, Type: typ, Bytes: payload}
}

// Bytes returns the current payload stored for key.
func (s *Sim) Bytes(key wire.Key) ([]byte, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return s.entries[i].Bytes, true
}

func (s *Sim) lookup(key wire.Key) (Entry, bool) {
	if key == wire.KeyListKey {
		if s.keyList != nil {
			return *s.keyList, true
		}
		count := make([]byte, 4)
		binary.BigEndian.PutUint32(count, uint32(len(s.entries)))
		var tag wire.TypeTag
		copy(tag[:], "ui32")
		return Entry{Key: key, Type: tag, Bytes: count}, true
	}
	i, ok := s.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Call decodes the request through the real record codec, serves it
// from the table, and encodes the response the same way.
func (s *Sim) Call(selector uint32, req, resp *wire.Record) error {
	s.Calls++
	if s.closed {
		return &smc.CallError{Code: iokit.KernInvalidArgument}
	}
	if selector != wire.KernelIndexSMC {
		return &smc.CallError{Code: iokit.KernInvalidArgument}
	}

	buf := req.Marshal()
	in, err := wire.UnmarshalRecord(buf[:])
	if err != nil {
		return err
	}

	// echo fields the far side does not touch
	out := in

	switch in.Command {
	case wire.CmdReadKeyInfo:
		if code, ok := s.failKeyInfo[in.Key]; ok {
			return &smc.CallError{Code: code}
		}
		e, ok := s.lookup(in.Key)
		if !ok || s.notSupported[in.Key] {
			out.Result = wire.ResultNotSupported
			break
		}
		out.Info = wire.KeyInfo{Size: uint32(len(e.Bytes)), Type: e.Type, Attributes: e.Attributes}
		out.Result = 0

	case wire.CmdReadBytes:
		if code, ok := s.failRead[in.Key]; ok {
			return &smc.CallError{Code: code}
		}
		e, ok := s.lookup(in.Key)
		if !ok {
			return &smc.CallError{Code: iokit.KernNotFound}
		}
		// the far side validates the echoed metadata
		if in.Info.Size != uint32(len(e.Bytes)) || in.Info.Type != e.Type {
			return &smc.CallError{Code: iokit.KernInvalidArgument}
		}
		out.Bytes = [wire.BytesLen]byte{}
		copy(out.Bytes[:], e.Bytes)
		out.Result = 0

	case wire.CmdWriteBytes:
		if code, ok := s.failWrite[in.Key]; ok {
			return &smc.CallError{Code: code}
		}
		i, ok := s.byKey[in.Key]
		if !ok {
			return &smc.CallError{Code: iokit.KernNotFound}
		}
		if in.Info.Size != uint32(len(s.entries[i].Bytes)) {
			return &smc.CallError{Code: iokit.KernInvalidArgument}
		}
		stored := make([]byte, in.Info.Size)
		copy(stored, in.Bytes[:in.Info.Size])
		s.entries[i].Bytes = stored
		out.Result = 0

	case wire.CmdReadIndex:
		if code, ok := s.failIndex[in.Index]; ok {
			return &smc.CallError{Code: code}
		}
		if in.Index >= uint32(len(s.entries)) {
			return &smc.CallError{Code: iokit.KernFailure}
		}
		out.Key = s.entries[in.Index].Key
		out.Result = 0

	default:
		return &smc.CallError{Code: iokit.KernInvalidArgument}
	}

	enc := out.Marshal()
	r, err := wire.UnmarshalRecord(enc[:])
	if err != nil {
		return err
	}
	*resp = r
	return nil
}

func (s *Sim) Close() error {
	s.CloseCalls++
	s.closed = true
	return nil
}
