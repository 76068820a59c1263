package wire

import (
	"encoding/binary"
	"errors"
)

// Selector and opcodes for the privileged SMC call.
const (
	KernelIndexSMC uint32 = 2

	CmdReadBytes   uint8 = 5
	CmdWriteBytes  uint8 = 6
	CmdReadIndex   uint8 = 8
	CmdReadKeyInfo uint8 = 9
)

// ResultNotSupported is the far side's sentinel for a key that does not
// support the requested operation.
const ResultNotSupported uint8 = 132

// BytesLen is the fixed payload buffer length of every record.
const BytesLen = 32

// KeyListKey is the reserved key holding the total key count.
var KeyListKey = Key{'#', 'K', 'E', 'Y'}

// Record byte layout. The record mirrors the kernel's C struct: integer
// fields are little-endian in memory, and the vers/plimit blocks carry
// trailing struct padding that brings the total to 80 bytes.
const (
	offKey       = 0
	offVers      = 4  // 6 bytes + 2 padding
	offPLimit    = 12 // 16 bytes
	offInfoSize  = 28
	offInfoType  = 32
	offInfoAttrs = 36 // + 3 padding
	offResult    = 40
	offStatus    = 41
	offCommand   = 42 // + 1 padding
	offIndex     = 44
	offBytes     = 48

	// RecordLen is the full size of one call record in either direction.
	RecordLen = 80
)

var ErrShortRecord = errors.New("wire: short record")

// KeyInfo is the metadata sub-record describing one key's stored value.
type KeyInfo struct {
	Size       uint32
	Type       TypeTag
	Attributes uint8
}

// Record is the single structure exchanged in every privileged call,
// used for both request and response. The far side echoes back any field
// it does not modify, so a request record must be fully zeroed before
// the fields for the current phase are set.
type Record struct {
	Key     Key
	Vers    [6]byte
	PLimit  [16]byte
	Info    KeyInfo
	Result  uint8
	Status  uint8
	Command uint8
	Index   uint32
	Bytes   [BytesLen]byte
}

// Marshal encodes r into the kernel struct layout.
func (r *Record) Marshal() [RecordLen]byte {
	var buf [RecordLen]byte
	binary.LittleEndian.PutUint32(buf[offKey:], r.Key.Uint32())
	copy(buf[offVers:], r.Vers[:])
	copy(buf[offPLimit:], r.PLimit[:])
	binary.LittleEndian.PutUint32(buf[offInfoSize:], r.Info.Size)
	binary.LittleEndian.PutUint32(buf[offInfoType:], r.Info.Type.Uint32())
	buf[offInfoAttrs] = r.Info.Attributes
	buf[offResult] = r.Result
	buf[offStatus] = r.Status
	buf[offCommand] = r.Command
	binary.LittleEndian.PutUint32(buf[offIndex:], r.Index)
	copy(buf[offBytes:], r.Bytes[:])
	return buf
}

// UnmarshalRecord decodes a response buffer. The buffer must hold at
// least RecordLen bytes.
func UnmarshalRecord(buf []byte) (Record, error) {
	if len(buf) < RecordLen {
		return Record{}, ErrShortRecord
	}
	r := Record{
		Key: KeyFromUint32(binary.LittleEndian.Uint32(buf[offKey:])),
		Info: KeyInfo{
			Size:       binary.LittleEndian.Uint32(buf[offInfoSize:]),
			Type:       TypeTagFromUint32(binary.LittleEndian.Uint32(buf[offInfoType:])),
			Attributes: buf[offInfoAttrs],
		},
		Result:  buf[offResult],
		Status:  buf[offStatus],
		Command: buf[offCommand],
		Index:   binary.LittleEndian.Uint32(buf[offIndex:]),
	}
	copy(r.Vers[:], buf[offVers:])
	copy(r.PLimit[:], buf[offPLimit:])
	copy(r.Bytes[:], buf[offBytes:])
	return r, nil
}
